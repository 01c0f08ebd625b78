// Package config defines the service configuration and how it is loaded.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Config contains process configuration.
type Config struct {
	// Port is the TCP port the HTTP server listens on.
	Port int `koanf:"port"`

	// Env is the runtime environment: development, staging or production.
	Env string `koanf:"env"`

	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// DBDriver selects the storage backend: sqlite or postgres.
	DBDriver string `koanf:"db_driver"`

	// DBDSN is a file path for sqlite or a connection string for postgres.
	DBDSN string `koanf:"db_dsn"`

	DBMaxOpenConns int           `koanf:"db_max_open_conns"`
	DBMaxIdleConns int           `koanf:"db_max_idle_conns"`
	DBMaxIdleTime  time.Duration `koanf:"db_max_idle_time"`

	// Per-client token bucket settings. Off unless enabled explicitly.
	LimiterEnabled bool    `koanf:"limiter_enabled"`
	LimiterRPS     float64 `koanf:"limiter_rps"`
	LimiterBurst   int     `koanf:"limiter_burst"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		Port:           5000,
		Env:            "development",
		LogLevel:       "info",
		DBDriver:       "sqlite",
		DBDSN:          "books.db",
		DBMaxOpenConns: 25,
		DBMaxIdleConns: 25,
		DBMaxIdleTime:  15 * time.Minute,
		LimiterEnabled: false,
		LimiterRPS:     10,
		LimiterBurst:   20,
	}
}

// Validate reports the first setting that cannot be used to start the service.
func (c *Config) Validate() error {
	switch {
	case c.Port < 1 || c.Port > 65535:
		return fmt.Errorf("%w: port %d out of range", ErrInvalidConfig, c.Port)
	case c.DBDriver != "sqlite" && c.DBDriver != "postgres":
		return fmt.Errorf("%w: unknown db_driver %q", ErrInvalidConfig, c.DBDriver)
	case strings.TrimSpace(c.DBDSN) == "":
		return fmt.Errorf("%w: db_dsn must not be empty", ErrInvalidConfig)
	case c.LimiterEnabled && (c.LimiterRPS <= 0 || c.LimiterBurst <= 0):
		return fmt.Errorf("%w: limiter_rps and limiter_burst must be positive", ErrInvalidConfig)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// SlogLevel returns the configured level, falling back to info.
func (c *Config) SlogLevel() slog.Level {
	level, err := ParseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

// ParseLevel accepts debug, info, warn/warning, error (case-insensitive).
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level: %s", level)
	}
}
