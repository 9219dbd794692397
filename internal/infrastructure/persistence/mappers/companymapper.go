package mappers

import (
	"github.com/adli-inc/adli/internal/domain/company"
	"github.com/adli-inc/adli/internal/infrastructure/persistence/models"
)

type CompanyMapper interface {
	ToModel(c *company.Company) *models.CompanyModel
	ToDomain(model *models.CompanyModel) (*company.Company, error)
	EmployeeToModel(e *company.Employee) *models.CompanyEmployeeModel
	EmployeeToDomain(model *models.CompanyEmployeeModel) (*company.Employee, error)
}

type CompanyMapperImpl struct{}

func NewCompanyMapper() CompanyMapper {
	return &CompanyMapperImpl{}
}

func (m *CompanyMapperImpl) ToModel(c *company.Company) *models.CompanyModel {
	return &models.CompanyModel{
		ID:        c.ID(),
		INN:       c.INN(),
		Name:      c.Name(),
		CreatedAt: c.CreatedAt(),
		UpdatedAt: c.UpdatedAt(),
	}
}

func (m *CompanyMapperImpl) ToDomain(model *models.CompanyModel) (*company.Company, error) {
	return company.ReconstructCompany(model.ID, model.INN, model.Name, model.CreatedAt.UTC(), model.UpdatedAt.UTC())
}

func (m *CompanyMapperImpl) EmployeeToModel(e *company.Employee) *models.CompanyEmployeeModel {
	return &models.CompanyEmployeeModel{
		ID:         e.ID(),
		CompanyID:  e.CompanyID(),
		FirstName:  e.FirstName(),
		LastName:   e.LastName(),
		MiddleName: e.MiddleName(),
		Phone:      e.Phone(),
		Email:      e.Email(),
	}
}

func (m *CompanyMapperImpl) EmployeeToDomain(model *models.CompanyEmployeeModel) (*company.Employee, error) {
	return company.ReconstructEmployee(
		model.ID,
		model.CompanyID,
		model.FirstName,
		model.LastName,
		model.MiddleName,
		model.Phone,
		model.Email,
	)
}
