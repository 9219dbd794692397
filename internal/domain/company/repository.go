package company

import "context"

type Repository interface {
	Create(ctx context.Context, c *Company) error
	Update(ctx context.Context, c *Company) error
	GetByID(ctx context.Context, id uint) (*Company, error)
	// GetByINN returns (nil, nil) when no company has the tax ID.
	GetByINN(ctx context.Context, inn string) (*Company, error)
}

type EmployeeRepository interface {
	Create(ctx context.Context, e *Employee) error
	Update(ctx context.Context, e *Employee) error
	// FindByIdentity returns (nil, nil) when there is no match.
	FindByIdentity(ctx context.Context, companyID uint, firstName, lastName, middleName string) (*Employee, error)
}

type DirectionRepository interface {
	// GetByIDs returns the directions that exist, in id order.
	GetByIDs(ctx context.Context, ids []uint) ([]Direction, error)
}
