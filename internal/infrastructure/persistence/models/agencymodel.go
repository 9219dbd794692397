package models

import (
	"time"

	"github.com/adli-inc/adli/internal/shared/constants"
)

type DepartmentModel struct {
	ID       uint   `gorm:"primaryKey"`
	Name     string `gorm:"size:255;not null"`
	Code     string `gorm:"size:32;index"`
	IsActive bool   `gorm:"not null;default:true"`
}

func (DepartmentModel) TableName() string {
	return constants.TableDepartments
}

type AgencyEmployeeModel struct {
	ID           uint   `gorm:"primaryKey"`
	UserID       uint   `gorm:"not null;uniqueIndex"`
	DepartmentID *uint  `gorm:"index"`
	FirstName    string `gorm:"size:100;not null"`
	LastName     string `gorm:"size:100;not null"`
	MiddleName   string `gorm:"size:100"`
	Position     string `gorm:"size:255"`
	IsActive     bool   `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (AgencyEmployeeModel) TableName() string {
	return constants.TableAgencyEmployees
}

// AgencyEmployeeRoleModel is one workflow group membership.
type AgencyEmployeeRoleModel struct {
	ID         uint   `gorm:"primaryKey"`
	EmployeeID uint   `gorm:"not null;uniqueIndex:idx_employee_role,priority:1"`
	Role       string `gorm:"size:32;not null;uniqueIndex:idx_employee_role,priority:2;index"`
}

func (AgencyEmployeeRoleModel) TableName() string {
	return constants.TableAgencyEmployeeRole
}
