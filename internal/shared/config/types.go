package config

import "fmt"

type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	Mode           string   `mapstructure:"mode"`
	Timezone       string   `mapstructure:"timezone"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

// GetDSN stores and reads times in UTC; business-day boundaries are
// computed by biztime, never by the driver.
func (d *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&collation=utf8mb4_general_ci&parseTime=true&loc=UTC",
		d.Username, d.Password, d.Host, d.Port, d.Database)
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type JWTConfig struct {
	Secret     string `mapstructure:"secret"`
	Issuer     string `mapstructure:"issuer"`
	ExpMinutes int    `mapstructure:"exp_minutes"`
}

type AuthConfig struct {
	JWT JWTConfig `mapstructure:"jwt"`
}

// RedisConfig is optional; with Enabled false counters are always read
// from the database and public endpoints are not rate limited.
type RedisConfig struct {
	Enabled       bool   `mapstructure:"enabled"`
	Host          string `mapstructure:"host"`
	Port          int    `mapstructure:"port"`
	Password      string `mapstructure:"password"`
	DB            int    `mapstructure:"db"`
	CountsTTLSecs int    `mapstructure:"counts_ttl_secs"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type EmailConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	SMTPHost     string `mapstructure:"smtp_host"`
	SMTPPort     int    `mapstructure:"smtp_port"`
	SMTPUser     string `mapstructure:"smtp_user"`
	SMTPPassword string `mapstructure:"smtp_password"`
	FromAddress  string `mapstructure:"from_address"`
	FromName     string `mapstructure:"from_name"`
}

type PermissionConfig struct {
	PolicyFile string `mapstructure:"policy_file"`
}

// IntakeConfig limits what the public form accepts.
type IntakeConfig struct {
	MaxAttachmentMB     int      `mapstructure:"max_attachment_mb"`
	AllowedExtensions   []string `mapstructure:"allowed_extensions"`
	RateLimitPerMinute  int      `mapstructure:"rate_limit_per_minute"`
	TrackLimitPerMinute int      `mapstructure:"track_limit_per_minute"`
}

type RoleCacheConfig struct {
	TTLSecs int `mapstructure:"ttl_secs"`
}

// SchedulerConfig controls background refresh of the workload gauges.
// A zero interval disables the job.
type SchedulerConfig struct {
	WorkloadRefreshSecs int `mapstructure:"workload_refresh_secs"`
}
