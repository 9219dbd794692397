package mappers

import (
	"github.com/adli-inc/adli/internal/domain/agency"
	"github.com/adli-inc/adli/internal/infrastructure/persistence/models"
)

type AgencyMapper interface {
	EmployeeToDomain(model *models.AgencyEmployeeModel, roles []models.AgencyEmployeeRoleModel) (*agency.Employee, error)
	DepartmentToDomain(model *models.DepartmentModel) (*agency.Department, error)
}

type AgencyMapperImpl struct{}

func NewAgencyMapper() AgencyMapper {
	return &AgencyMapperImpl{}
}

func (m *AgencyMapperImpl) EmployeeToDomain(model *models.AgencyEmployeeModel, roles []models.AgencyEmployeeRoleModel) (*agency.Employee, error) {
	names := make([]string, 0, len(roles))
	for _, r := range roles {
		if r.EmployeeID == model.ID {
			names = append(names, r.Role)
		}
	}
	return agency.ReconstructEmployee(
		model.ID,
		model.UserID,
		model.DepartmentID,
		model.FirstName,
		model.LastName,
		model.MiddleName,
		model.Position,
		model.IsActive,
		names,
	)
}

func (m *AgencyMapperImpl) DepartmentToDomain(model *models.DepartmentModel) (*agency.Department, error) {
	return agency.ReconstructDepartment(model.ID, model.Name, model.Code, model.IsActive)
}
