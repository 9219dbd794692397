package permission

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/adli-inc/adli/internal/domain/agency"
	"github.com/adli-inc/adli/internal/shared/logger"
)

const testPolicy = `
roles:
  chancellery:
    request: [read, register, send_for_resolution]
  deputy_assistant:
    request: [read, resolve]
  executor:
    request: [read, add_step, mark_done]
inherits:
  directors: [chancellery]
`

func newTestEnforcer(t *testing.T) *Enforcer {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	e, err := NewEnforcer(db, logger.NewLogger())
	require.NoError(t, err)
	return e
}

func TestEnforcer_SeedAndEnforce(t *testing.T) {
	e := newTestEnforcer(t)
	set, err := ParsePolicy([]byte(testPolicy))
	require.NoError(t, err)
	require.NoError(t, e.Seed(set))

	tests := []struct {
		role   agency.Role
		action string
		want   bool
	}{
		{agency.RoleChancellery, agency.PermRegister, true},
		{agency.RoleChancellery, agency.PermAddStep, false},
		{agency.RoleDirectors, agency.PermRegister, true},
		{agency.RoleDeputyAssistant, agency.PermResolve, true},
		{agency.RoleDeputyAssistant, agency.PermMarkDone, false},
		{agency.RoleExecutor, agency.PermMarkDone, true},
		{agency.RoleHeadOfDepartment, agency.PermRead, false},
		{agency.RoleNone, agency.PermRead, false},
	}
	for _, tt := range tests {
		t.Run(tt.role.String()+"/"+tt.action, func(t *testing.T) {
			got, err := e.Enforce(tt.role.String(), agency.ResourceRequest, tt.action)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEnforcer_SeedIsIdempotentAndPersisted(t *testing.T) {
	e := newTestEnforcer(t)
	set, err := ParsePolicy([]byte(testPolicy))
	require.NoError(t, err)
	require.NoError(t, e.Seed(set))
	require.NoError(t, e.Seed(set))

	require.NoError(t, e.LoadPolicy())
	ok, err := e.Enforce("executor", agency.ResourceRequest, agency.PermAddStep)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestParsePolicy_RejectsUnknownRoles(t *testing.T) {
	_, err := ParsePolicy([]byte("roles:\n  janitor:\n    request: [read]\n"))
	assert.Error(t, err)

	_, err = ParsePolicy([]byte("inherits:\n  directors: [janitor]\n"))
	assert.Error(t, err)

	_, err = ParsePolicy([]byte("roles: [broken"))
	assert.Error(t, err)
}

func TestPolicySet_RulesAreSorted(t *testing.T) {
	set, err := ParsePolicy([]byte(testPolicy))
	require.NoError(t, err)
	rules := set.rules()
	require.NotEmpty(t, rules)
	assert.Equal(t, []string{"chancellery", "request", "read"}, rules[0])
	assert.Len(t, rules, 8)
}
