package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/adli-inc/adli/internal/domain/agency"
	"github.com/adli-inc/adli/internal/infrastructure/persistence/mappers"
	"github.com/adli-inc/adli/internal/infrastructure/persistence/models"
	"github.com/adli-inc/adli/internal/shared/db"
)

// AgencyEmployeeRepository reads the org chart. Employees are loaded with
// their role memberships.
type AgencyEmployeeRepository struct {
	db     *gorm.DB
	mapper mappers.AgencyMapper
}

func NewAgencyEmployeeRepository(gormDB *gorm.DB) *AgencyEmployeeRepository {
	return &AgencyEmployeeRepository{db: gormDB, mapper: mappers.NewAgencyMapper()}
}

func (r *AgencyEmployeeRepository) GetByID(ctx context.Context, id uint) (*agency.Employee, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *AgencyEmployeeRepository) GetByUserID(ctx context.Context, userID uint) (*agency.Employee, error) {
	return r.first(ctx, "user_id = ?", userID)
}

func (r *AgencyEmployeeRepository) first(ctx context.Context, cond string, arg any) (*agency.Employee, error) {
	var model models.AgencyEmployeeModel
	if err := db.GetTxFromContext(ctx, r.db).Where(cond, arg).Take(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}
	roles, err := r.roles(ctx, []uint{model.ID})
	if err != nil {
		return nil, err
	}
	return r.mapper.EmployeeToDomain(&model, roles)
}

// ListByRole returns active employees holding role, ordered by last name.
func (r *AgencyEmployeeRepository) ListByRole(ctx context.Context, role agency.Role) ([]*agency.Employee, error) {
	var rows []models.AgencyEmployeeModel
	if err := db.GetTxFromContext(ctx, r.db).
		Where("is_active = ?", true).
		Where("id IN (?)", db.GetTxFromContext(ctx, r.db).
			Model(&models.AgencyEmployeeRoleModel{}).
			Select("employee_id").
			Where("role = ?", role.String())).
		Order("last_name ASC").Order("first_name ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list employees by role: %w", err)
	}

	ids := make([]uint, len(rows))
	for i := range rows {
		ids[i] = rows[i].ID
	}
	roles, err := r.roles(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]*agency.Employee, 0, len(rows))
	for i := range rows {
		e, err := r.mapper.EmployeeToDomain(&rows[i], roles)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func (r *AgencyEmployeeRepository) roles(ctx context.Context, employeeIDs []uint) ([]models.AgencyEmployeeRoleModel, error) {
	if len(employeeIDs) == 0 {
		return nil, nil
	}
	var rows []models.AgencyEmployeeRoleModel
	if err := db.GetTxFromContext(ctx, r.db).
		Where("employee_id IN ?", employeeIDs).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load employee roles: %w", err)
	}
	return rows, nil
}

type DepartmentRepository struct {
	db     *gorm.DB
	mapper mappers.AgencyMapper
}

func NewDepartmentRepository(gormDB *gorm.DB) *DepartmentRepository {
	return &DepartmentRepository{db: gormDB, mapper: mappers.NewAgencyMapper()}
}

func (r *DepartmentRepository) GetByID(ctx context.Context, id uint) (*agency.Department, error) {
	var model models.DepartmentModel
	if err := db.GetTxFromContext(ctx, r.db).Where("id = ?", id).Take(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get department: %w", err)
	}
	return r.mapper.DepartmentToDomain(&model)
}

func (r *DepartmentRepository) ListActive(ctx context.Context) ([]*agency.Department, error) {
	var rows []models.DepartmentModel
	if err := db.GetTxFromContext(ctx, r.db).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	out := make([]*agency.Department, 0, len(rows))
	for i := range rows {
		d, err := r.mapper.DepartmentToDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}
