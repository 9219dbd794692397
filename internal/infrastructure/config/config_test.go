package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsAndEnvOverride(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Chdir(t.TempDir())
	t.Setenv("ADLI_SERVER_PORT", "9090")
	t.Setenv("ADLI_REDIS_COUNTS_TTL_SECS", "5")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "Asia/Tashkent", cfg.Server.Timezone)
	assert.Equal(t, 5, cfg.Redis.CountsTTLSecs)
	assert.Equal(t, 10, cfg.Intake.MaxAttachmentMB)
	assert.Equal(t, []string{"pdf", "doc", "docx", "xls", "xlsx"}, cfg.Intake.AllowedExtensions)
	assert.Equal(t, 10, cfg.Intake.RateLimitPerMinute)
	assert.False(t, cfg.Redis.Enabled)
	assert.Same(t, cfg, Get())
}

func TestLoad_ReleaseRequiresSecret(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Chdir(t.TempDir())

	_, err := Load("release")
	assert.Error(t, err)
}
