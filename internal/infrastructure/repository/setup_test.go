package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/adli-inc/adli/internal/domain/request"
	"github.com/adli-inc/adli/internal/infrastructure/migration"
	"github.com/adli-inc/adli/internal/infrastructure/persistence/models"
)

// setupTestDB opens an in-memory database on a single connection so every
// transaction sees the same schema and writers serialize.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:  gormlogger.Default.LogMode(gormlogger.Silent),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(migration.AutoMigrateModels()...))
	return db
}

func seedCompany(t *testing.T, db *gorm.DB, inn, name string) uint {
	t.Helper()
	now := time.Now().UTC()
	m := models.CompanyModel{INN: inn, Name: name, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, db.Create(&m).Error)
	return m.ID
}

func seedEmployee(t *testing.T, db *gorm.DB, userID uint, departmentID *uint, lastName string, active bool, roles ...string) uint {
	t.Helper()
	m := models.AgencyEmployeeModel{
		UserID:       userID,
		DepartmentID: departmentID,
		FirstName:    "Test",
		LastName:     lastName,
		IsActive:     true,
	}
	require.NoError(t, db.Create(&m).Error)
	if !active {
		require.NoError(t, db.Model(&m).Update("is_active", false).Error)
	}
	for _, role := range roles {
		require.NoError(t, db.Create(&models.AgencyEmployeeRoleModel{EmployeeID: m.ID, Role: role}).Error)
	}
	return m.ID
}

func seedDepartment(t *testing.T, db *gorm.DB, name string) uint {
	t.Helper()
	m := models.DepartmentModel{Name: name, Code: name, IsActive: true}
	require.NoError(t, db.Create(&m).Error)
	return m.ID
}

var seqCounter int64

// storeRequest persists a new request with the next test public ID.
func storeRequest(t *testing.T, repo *RequestRepository, companyID uint, description string, createdAt time.Time, directions ...uint) *request.Request {
	t.Helper()
	r, err := request.NewRequest(companyID, nil, description, directions, createdAt)
	require.NoError(t, err)
	seqCounter++
	require.NoError(t, r.AssignPublicID(2026, seqCounter))
	require.NoError(t, repo.Create(context.Background(), r))
	return r
}

func uintPtr(v uint) *uint { return &v }
