package models

import (
	"time"

	"github.com/adli-inc/adli/internal/shared/constants"
)

type CompanyModel struct {
	ID        uint      `gorm:"primaryKey"`
	INN       string    `gorm:"column:inn;size:20;not null;uniqueIndex"`
	Name      string    `gorm:"size:255;not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (CompanyModel) TableName() string {
	return constants.TableCompanies
}

type CompanyEmployeeModel struct {
	ID         uint      `gorm:"primaryKey"`
	CompanyID  uint      `gorm:"not null;index:idx_company_employee_identity,priority:1"`
	LastName   string    `gorm:"size:100;not null;index:idx_company_employee_identity,priority:2"`
	FirstName  string    `gorm:"size:100;not null;index:idx_company_employee_identity,priority:3"`
	MiddleName string    `gorm:"size:100;not null;default:'';index:idx_company_employee_identity,priority:4"`
	Phone      string    `gorm:"size:32"`
	Email      string    `gorm:"size:255"`
	CreatedAt  time.Time `gorm:"not null"`
	UpdatedAt  time.Time `gorm:"not null"`
}

func (CompanyEmployeeModel) TableName() string {
	return constants.TableCompanyEmployees
}

type DirectionModel struct {
	ID    uint   `gorm:"primaryKey"`
	Title string `gorm:"size:255;not null"`
}

func (DirectionModel) TableName() string {
	return constants.TableDirections
}
