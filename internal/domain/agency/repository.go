package agency

import "context"

// Lookups return (nil, nil) when nothing matches.
type EmployeeRepository interface {
	GetByID(ctx context.Context, id uint) (*Employee, error)
	GetByUserID(ctx context.Context, userID uint) (*Employee, error)
	ListByRole(ctx context.Context, role Role) ([]*Employee, error)
}

type DepartmentRepository interface {
	GetByID(ctx context.Context, id uint) (*Department, error)
	ListActive(ctx context.Context) ([]*Department, error)
}

// RoleResolver maps an authenticated user to exactly one Actor.
type RoleResolver interface {
	Resolve(ctx context.Context, userID uint) (Actor, error)
}
