package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/adli-inc/adli/internal/domain/company"
	"github.com/adli-inc/adli/internal/infrastructure/persistence/mappers"
	"github.com/adli-inc/adli/internal/infrastructure/persistence/models"
	"github.com/adli-inc/adli/internal/shared/db"
)

// CompanyRepository reads and upserts intake reference data: companies,
// their contact people and direction tags.
type CompanyRepository struct {
	db     *gorm.DB
	mapper mappers.CompanyMapper
}

func NewCompanyRepository(gormDB *gorm.DB) *CompanyRepository {
	return &CompanyRepository{db: gormDB, mapper: mappers.NewCompanyMapper()}
}

func (r *CompanyRepository) Create(ctx context.Context, c *company.Company) error {
	model := r.mapper.ToModel(c)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create company: %w", err)
	}
	return c.SetID(model.ID)
}

func (r *CompanyRepository) Update(ctx context.Context, c *company.Company) error {
	if err := db.GetTxFromContext(ctx, r.db).
		Model(&models.CompanyModel{}).
		Where("id = ?", c.ID()).
		Updates(map[string]any{"name": c.Name(), "updated_at": c.UpdatedAt()}).Error; err != nil {
		return fmt.Errorf("failed to update company: %w", err)
	}
	return nil
}

func (r *CompanyRepository) GetByID(ctx context.Context, id uint) (*company.Company, error) {
	return r.first(db.GetTxFromContext(ctx, r.db).Where("id = ?", id))
}

func (r *CompanyRepository) GetByINN(ctx context.Context, inn string) (*company.Company, error) {
	return r.first(db.GetTxFromContext(ctx, r.db).Where("inn = ?", inn))
}

func (r *CompanyRepository) first(query *gorm.DB) (*company.Company, error) {
	var model models.CompanyModel
	if err := query.Take(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}
	return r.mapper.ToDomain(&model)
}

// GetNames maps company IDs to names for list views.
func (r *CompanyRepository) GetNames(ctx context.Context, ids []uint) (map[uint]string, error) {
	out := make(map[uint]string, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []models.CompanyModel
	if err := db.GetTxFromContext(ctx, r.db).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load company names: %w", err)
	}
	for _, row := range rows {
		out[row.ID] = row.Name
	}
	return out, nil
}

// CompanyEmployeeRepository stores company contact people.
type CompanyEmployeeRepository struct {
	db     *gorm.DB
	mapper mappers.CompanyMapper
}

func NewCompanyEmployeeRepository(gormDB *gorm.DB) *CompanyEmployeeRepository {
	return &CompanyEmployeeRepository{db: gormDB, mapper: mappers.NewCompanyMapper()}
}

func (r *CompanyEmployeeRepository) Create(ctx context.Context, e *company.Employee) error {
	model := r.mapper.EmployeeToModel(e)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create company employee: %w", err)
	}
	return e.SetID(model.ID)
}

func (r *CompanyEmployeeRepository) Update(ctx context.Context, e *company.Employee) error {
	if err := db.GetTxFromContext(ctx, r.db).
		Model(&models.CompanyEmployeeModel{}).
		Where("id = ?", e.ID()).
		Updates(map[string]any{
			"middle_name": e.MiddleName(),
			"phone":       e.Phone(),
			"email":       e.Email(),
		}).Error; err != nil {
		return fmt.Errorf("failed to update company employee: %w", err)
	}
	return nil
}

func (r *CompanyEmployeeRepository) FindByIdentity(ctx context.Context, companyID uint, firstName, lastName, middleName string) (*company.Employee, error) {
	var model models.CompanyEmployeeModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("company_id = ? AND first_name = ? AND last_name = ? AND middle_name = ?",
			companyID, firstName, lastName, middleName).
		Order("id ASC").
		Take(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find company employee: %w", err)
	}
	return r.mapper.EmployeeToDomain(&model)
}

type DirectionRepository struct {
	db *gorm.DB
}

func NewDirectionRepository(gormDB *gorm.DB) *DirectionRepository {
	return &DirectionRepository{db: gormDB}
}

func (r *DirectionRepository) GetByIDs(ctx context.Context, ids []uint) ([]company.Direction, error) {
	if len(ids) == 0 {
		return []company.Direction{}, nil
	}
	var rows []models.DirectionModel
	if err := db.GetTxFromContext(ctx, r.db).Where("id IN ?", ids).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load directions: %w", err)
	}
	out := make([]company.Direction, len(rows))
	for i, row := range rows {
		out[i] = company.Direction{ID: row.ID, Title: row.Title}
	}
	return out, nil
}
