package agency

// Actor is an authenticated internal user resolved to one workflow role.
// EmployeeID and DepartmentID are zero when the account has no employee
// profile or the employee has no department.
type Actor struct {
	UserID       uint
	Role         Role
	EmployeeID   uint
	DepartmentID uint
}

// Anonymous is the actor for public, unauthenticated operations.
var Anonymous = Actor{Role: RoleNone}

// HasEmployee reports whether the actor is linked to an agency employee.
func (a Actor) HasEmployee() bool {
	return a.EmployeeID != 0
}

// NewActor builds an actor from an employee profile.
func NewActor(userID uint, emp *Employee) Actor {
	if emp == nil {
		return Actor{UserID: userID, Role: RoleNone}
	}
	actor := Actor{
		UserID:     userID,
		Role:       emp.Role(),
		EmployeeID: emp.ID(),
	}
	if dep := emp.DepartmentID(); dep != nil {
		actor.DepartmentID = *dep
	}
	return actor
}
