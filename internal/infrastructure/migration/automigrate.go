package migration

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/adli-inc/adli/internal/infrastructure/persistence/models"
	"github.com/adli-inc/adli/internal/shared/logger"
)

// AutoMigrateModels lists every persisted model. Development databases and
// tests build their schema from it; SQL scripts are authoritative for MySQL.
func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.CompanyModel{},
		&models.CompanyEmployeeModel{},
		&models.DirectionModel{},
		&models.DepartmentModel{},
		&models.AgencyEmployeeModel{},
		&models.AgencyEmployeeRoleModel{},
		&models.RequestModel{},
		&models.RequestDirectionModel{},
		&models.RequestCounterModel{},
		&models.RequestResolutionModel{},
		&models.RequestStepModel{},
		&models.RequestFileModel{},
		&models.RequestHistoryModel{},
	}
}

// GormAutoMigrateStrategy builds the schema from model structs.
type GormAutoMigrateStrategy struct {
	logger logger.Interface
}

func NewGormAutoMigrateStrategy() *GormAutoMigrateStrategy {
	return &GormAutoMigrateStrategy{
		logger: logger.NewLogger().With("component", "migration.automigrate"),
	}
}

func (s *GormAutoMigrateStrategy) GetName() string {
	return "gorm_auto_migrate"
}

func (s *GormAutoMigrateStrategy) Migrate(db *gorm.DB, models ...interface{}) error {
	if len(models) == 0 {
		models = AutoMigrateModels()
	}
	if err := db.AutoMigrate(models...); err != nil {
		s.logger.Errorw("auto migrate failed", "error", err)
		return fmt.Errorf("failed to auto migrate: %w", err)
	}
	s.logger.Infow("auto migrate completed", "models", len(models))
	return nil
}
