package migration

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/adli-inc/adli/internal/shared/logger"
)

// DefaultScriptsPath is where new scripts are written during development.
// They are embedded at build time.
const DefaultScriptsPath = "./internal/infrastructure/migration/scripts"

var migrationNameRegex = regexp.MustCompile(`^[a-z0-9_]+$`)

// Generator handles creation of new migration files
type Generator struct {
	scriptsPath string
	logger      logger.Interface
	now         func() time.Time
}

func NewGenerator(scriptsPath string) *Generator {
	return &Generator{
		scriptsPath: scriptsPath,
		logger:      logger.NewLogger().With("component", "migration.generator"),
		now:         time.Now,
	}
}

// CreateMigration writes an empty goose script and returns its path.
func (g *Generator) CreateMigration(name string) (string, error) {
	if !migrationNameRegex.MatchString(name) {
		return "", fmt.Errorf("migration name must be snake_case: %q", name)
	}

	now := g.now().UTC()
	fileName := fmt.Sprintf("%s_%s.sql", now.Format("20060102150405"), name)
	path := filepath.Join(g.scriptsPath, fileName)

	if err := os.MkdirAll(g.scriptsPath, 0o755); err != nil {
		return "", fmt.Errorf("failed to create scripts directory: %w", err)
	}

	content := fmt.Sprintf(`-- Migration: %s
-- Created: %s

-- +goose Up
-- +goose StatementBegin

-- +goose StatementEnd

-- +goose Down
-- +goose StatementBegin

-- +goose StatementEnd
`, name, now.Format(time.DateTime))

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("failed to write migration file: %w", err)
	}

	g.logger.Infow("migration file created", "file", path)
	return path, nil
}
