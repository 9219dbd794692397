package agency

import (
	"fmt"
	"strings"
)

// Employee is an agency staff member linked to a login account.
type Employee struct {
	id           uint
	userID       uint
	departmentID *uint
	firstName    string
	lastName     string
	middleName   string
	position     string
	isActive     bool
	roles        []string
}

func ReconstructEmployee(
	id uint,
	userID uint,
	departmentID *uint,
	firstName, lastName, middleName, position string,
	isActive bool,
	roles []string,
) (*Employee, error) {
	if id == 0 {
		return nil, fmt.Errorf("employee ID cannot be zero")
	}
	if roles == nil {
		roles = []string{}
	}
	return &Employee{
		id:           id,
		userID:       userID,
		departmentID: departmentID,
		firstName:    firstName,
		lastName:     lastName,
		middleName:   middleName,
		position:     position,
		isActive:     isActive,
		roles:        roles,
	}, nil
}

func (e *Employee) ID() uint            { return e.id }
func (e *Employee) UserID() uint        { return e.userID }
func (e *Employee) DepartmentID() *uint { return e.departmentID }
func (e *Employee) Position() string    { return e.position }
func (e *Employee) IsActive() bool      { return e.isActive }

func (e *Employee) Roles() []string {
	out := make([]string, len(e.roles))
	copy(out, e.roles)
	return out
}

// Role resolves the employee's effective workflow role.
func (e *Employee) Role() Role {
	if !e.isActive {
		return RoleNone
	}
	return ResolveRole(e.roles)
}

// HasRole reports raw membership, ignoring precedence.
func (e *Employee) HasRole(r Role) bool {
	for _, m := range e.roles {
		if Role(m) == r {
			return true
		}
	}
	return false
}

// FullName renders "Last First Middle", skipping empty parts.
func (e *Employee) FullName() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{e.lastName, e.firstName, e.middleName} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return fmt.Sprintf("employee #%d", e.id)
	}
	return strings.Join(parts, " ")
}
