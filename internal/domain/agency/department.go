package agency

import (
	"fmt"
	"strings"
)

// Department is an org-chart unit requests can be routed to.
type Department struct {
	id       uint
	name     string
	code     string
	isActive bool
}

func ReconstructDepartment(id uint, name, code string, isActive bool) (*Department, error) {
	if id == 0 {
		return nil, fmt.Errorf("department ID cannot be zero")
	}
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("department name is required")
	}
	return &Department{id: id, name: name, code: code, isActive: isActive}, nil
}

func (d *Department) ID() uint       { return d.id }
func (d *Department) Name() string   { return d.name }
func (d *Department) Code() string   { return d.code }
func (d *Department) IsActive() bool { return d.isActive }
