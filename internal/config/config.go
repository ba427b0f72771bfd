// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"os"
	"time"
)

// Config holds everything the wheel service needs to start.
type Config struct {
	// HTTPAddr is the listen address for the API server.
	HTTPAddr string

	// DBPath is the SQLite database file. Set to "off" to run without
	// persistence (sessions are still replayable by seed).
	DBPath string

	// PoolPath points at a YAML prize catalog. Empty means the embedded
	// default catalog.
	PoolPath string

	// PoolSource labels sessions drawn from this deployment's catalog.
	PoolSource string

	// ShutdownTimeout bounds graceful shutdown on SIGINT/SIGTERM.
	ShutdownTimeout time.Duration
}

// Persist reports whether sessions should be written to SQLite.
func (c Config) Persist() bool {
	return c.DBPath != "off"
}

// Load reads configuration from WHEEL_* environment variables, falling
// back to defaults suitable for local development.
func Load() (Config, error) {
	c := Config{
		HTTPAddr:        envOr("WHEEL_HTTP_ADDR", ":8080"),
		DBPath:          envOr("WHEEL_DB_PATH", "prizewheel.db"),
		PoolPath:        os.Getenv("WHEEL_POOL_PATH"),
		PoolSource:      envOr("WHEEL_POOL_SOURCE", "default-pool"),
		ShutdownTimeout: 10 * time.Second,
	}

	if v := os.Getenv("WHEEL_SHUTDOWN_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid WHEEL_SHUTDOWN_TIMEOUT %q: %w", v, err)
		}
		if d <= 0 {
			return Config{}, fmt.Errorf("WHEEL_SHUTDOWN_TIMEOUT must be positive, got %q", v)
		}
		c.ShutdownTimeout = d
	}

	return c, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
