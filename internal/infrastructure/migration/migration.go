package migration

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/adli-inc/adli/internal/shared/constants"
	"github.com/adli-inc/adli/internal/shared/logger"
)

// requiredTables must exist after any strategy has run. The lifecycle
// service cannot start against a schema missing one of them.
var requiredTables = []string{
	constants.TableRequests,
	constants.TableRequestCounters,
	constants.TableRequestResolutions,
	constants.TableRequestSteps,
	constants.TableRequestFiles,
	constants.TableRequestHistory,
	constants.TableRequestDirections,
	constants.TableCompanies,
	constants.TableCompanyEmployees,
	constants.TableDirections,
	constants.TableDepartments,
	constants.TableAgencyEmployees,
	constants.TableAgencyEmployeeRole,
}

// Manager applies the schema with one strategy and then checks that the
// case tables are present.
type Manager struct {
	strategy Strategy
	logger   logger.Interface
}

// NewManager picks auto-migrate for development and the goose scripts
// everywhere else.
func NewManager(environment string) *Manager {
	if strings.ToLower(environment) == constants.EnvDevelopment {
		return NewManagerWithStrategy(NewGormAutoMigrateStrategy())
	}
	return NewManagerWithStrategy(NewGooseStrategy())
}

func NewManagerWithStrategy(strategy Strategy) *Manager {
	return &Manager{
		strategy: strategy,
		logger:   logger.WithComponent("migration.manager"),
	}
}

func (m *Manager) Migrate(db *gorm.DB) error {
	name := m.strategy.GetName()
	m.logger.Infow("applying schema", "strategy", name)

	if err := m.strategy.Migrate(db); err != nil {
		m.logger.Errorw("migration failed", "strategy", name, "error", err)
		return fmt.Errorf("migration failed with strategy %s: %w", name, err)
	}

	if missing := MissingTables(db); len(missing) > 0 {
		return fmt.Errorf("schema incomplete after %s: missing %s", name, strings.Join(missing, ", "))
	}

	m.logger.Infow("schema ready", "strategy", name, "tables", len(requiredTables))
	return nil
}

// MissingTables lists required tables absent from db.
func MissingTables(db *gorm.DB) []string {
	var missing []string
	migrator := db.Migrator()
	for _, table := range requiredTables {
		if !migrator.HasTable(table) {
			missing = append(missing, table)
		}
	}
	return missing
}

func (m *Manager) GetStrategy() Strategy {
	return m.strategy
}
