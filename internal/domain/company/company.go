package company

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var innRegex = regexp.MustCompile(`^[0-9]{9,20}$`)

// Company is the external organization a request is filed on behalf of.
type Company struct {
	id        uint
	inn       string
	name      string
	createdAt time.Time
	updatedAt time.Time
}

// NormalizeINN strips surrounding whitespace and inner spaces.
func NormalizeINN(inn string) string {
	return strings.ReplaceAll(strings.TrimSpace(inn), " ", "")
}

// ValidateINN checks the tax ID is 9 to 20 digits.
func ValidateINN(inn string) error {
	if !innRegex.MatchString(inn) {
		return fmt.Errorf("INN must contain 9 to 20 digits")
	}
	return nil
}

func NewCompany(inn, name string) (*Company, error) {
	inn = NormalizeINN(inn)
	if err := ValidateINN(inn); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("company name is required")
	}
	now := time.Now().UTC()
	return &Company{inn: inn, name: name, createdAt: now, updatedAt: now}, nil
}

func ReconstructCompany(id uint, inn, name string, createdAt, updatedAt time.Time) (*Company, error) {
	if id == 0 {
		return nil, fmt.Errorf("company ID cannot be zero")
	}
	return &Company{id: id, inn: inn, name: name, createdAt: createdAt, updatedAt: updatedAt}, nil
}

func (c *Company) ID() uint             { return c.id }
func (c *Company) INN() string          { return c.inn }
func (c *Company) Name() string         { return c.name }
func (c *Company) CreatedAt() time.Time { return c.createdAt }
func (c *Company) UpdatedAt() time.Time { return c.updatedAt }

func (c *Company) SetID(id uint) error {
	if c.id != 0 {
		return fmt.Errorf("company ID is already set")
	}
	c.id = id
	return nil
}

// Rename keeps the stored name in sync with the latest submission and
// reports whether anything changed.
func (c *Company) Rename(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" || name == c.name {
		return false
	}
	c.name = name
	c.updatedAt = time.Now().UTC()
	return true
}
