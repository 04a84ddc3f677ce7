package config

import "fmt"

// Config holds all application configuration.
// It is loaded once at startup by Load and passed by injection to every
// component that needs it; there is no package-level instance.
type Config struct {
	App      AppConfig      `mapstructure:"app"      validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	CORS     CORSConfig     `mapstructure:"cors"`
	Log      LogConfig      `mapstructure:"log"      validate:"required"`
}

// AppConfig contains identity and HTTP surface settings.
type AppConfig struct {
	Name      string `mapstructure:"name"       validate:"required"`
	Version   string `mapstructure:"version"    validate:"required"`
	Debug     bool   `mapstructure:"debug"`
	APIPrefix string `mapstructure:"api_prefix" validate:"required,startswith=/"`
	Port      int    `mapstructure:"port"       validate:"required,gt=0,lt=65536"`
}

// AuthConfig contains token signing settings. The token service built from
// these is not mounted on any route; the settings exist so tokens can be
// introduced later without a config migration.
type AuthConfig struct {
	SecretKey            string `mapstructure:"secret_key"             validate:"required,min=32"`
	Algorithm            string `mapstructure:"algorithm"              validate:"required,oneof=HS256 HS384 HS512"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
}

// DatabaseConfig contains PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string `mapstructure:"host"     validate:"required"`
	Port     int    `mapstructure:"port"     validate:"required,gt=0,lt=65536"`
	User     string `mapstructure:"user"     validate:"required"`
	Password string `mapstructure:"password" validate:"required"`
	Name     string `mapstructure:"name"     validate:"required"`

	// SlowQueryThresholdMS is the duration in milliseconds above which a
	// statement is logged at WARN level. Zero disables the check.
	SlowQueryThresholdMS int `mapstructure:"slow_query_threshold_ms" validate:"gte=0"`
}

// URL assembles a pgx-compatible connection string from the individual
// connection settings.
func (c DatabaseConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s",
		c.User, c.Password, c.Host, c.Port, c.Name)
}

// CORSConfig contains the cross-origin allow-list. An empty list disables
// cross-origin access entirely.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// LogConfig contains structured logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"  validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"required,oneof=json text"`

	// File is an optional log file path. When set, log output is teed to
	// the file with rotation; when empty, logs go to stdout only.
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"  validate:"gte=0"`
	MaxBackups int    `mapstructure:"max_backups"  validate:"gte=0"`
	MaxAgeDays int    `mapstructure:"max_age_days" validate:"gte=0"`
}
