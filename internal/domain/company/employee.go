package company

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.Und)

// NormalizePersonName trims, collapses inner whitespace and title-cases.
func NormalizePersonName(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return ""
	}
	return titleCaser.String(strings.ToLower(s))
}

// Employee is the company contact person who submitted a request.
type Employee struct {
	id         uint
	companyID  uint
	firstName  string
	lastName   string
	middleName string
	phone      string
	email      string
}

func NewEmployee(companyID uint, firstName, lastName, middleName, phone, email string) (*Employee, error) {
	if companyID == 0 {
		return nil, fmt.Errorf("company ID is required")
	}
	e := &Employee{
		companyID:  companyID,
		firstName:  NormalizePersonName(firstName),
		lastName:   NormalizePersonName(lastName),
		middleName: NormalizePersonName(middleName),
		phone:      strings.TrimSpace(phone),
		email:      strings.ToLower(strings.TrimSpace(email)),
	}
	if e.firstName == "" || e.lastName == "" {
		return nil, fmt.Errorf("first and last name are required")
	}
	return e, nil
}

func ReconstructEmployee(id, companyID uint, firstName, lastName, middleName, phone, email string) (*Employee, error) {
	if id == 0 {
		return nil, fmt.Errorf("company employee ID cannot be zero")
	}
	return &Employee{
		id:         id,
		companyID:  companyID,
		firstName:  firstName,
		lastName:   lastName,
		middleName: middleName,
		phone:      phone,
		email:      email,
	}, nil
}

func (e *Employee) ID() uint           { return e.id }
func (e *Employee) CompanyID() uint    { return e.companyID }
func (e *Employee) FirstName() string  { return e.firstName }
func (e *Employee) LastName() string   { return e.lastName }
func (e *Employee) MiddleName() string { return e.middleName }
func (e *Employee) Phone() string      { return e.phone }
func (e *Employee) Email() string      { return e.email }

func (e *Employee) SetID(id uint) error {
	if e.id != 0 {
		return fmt.Errorf("company employee ID is already set")
	}
	e.id = id
	return nil
}

// FillBlanks copies contact details from a newer submission only into
// fields that are still empty, and reports whether anything changed.
func (e *Employee) FillBlanks(middleName, phone, email string) bool {
	changed := false
	if e.middleName == "" {
		if v := NormalizePersonName(middleName); v != "" {
			e.middleName = v
			changed = true
		}
	}
	if e.phone == "" {
		if v := strings.TrimSpace(phone); v != "" {
			e.phone = v
			changed = true
		}
	}
	if e.email == "" {
		if v := strings.ToLower(strings.TrimSpace(email)); v != "" {
			e.email = v
			changed = true
		}
	}
	return changed
}
