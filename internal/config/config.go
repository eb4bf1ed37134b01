// Package config provides application configuration management.
// Configuration is loaded from environment variables following 12-factor
// principles, with an optional .env file for local development.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
// All fields are populated from environment variables.
type Config struct {
	// Remote API
	APIBaseURL  string        `env:"BLIIC_API_URL" envDefault:"https://api.bliic.app"`
	HTTPTimeout time.Duration `env:"BLIIC_HTTP_TIMEOUT" envDefault:"30s"`

	// Session persistence. Empty means the default per-user config path.
	SessionFile string `env:"BLIIC_SESSION_FILE" envDefault:""`

	// Notifications
	NotifyTTL time.Duration `env:"BLIIC_NOTIFY_TTL" envDefault:"4s"`

	// Logging
	LogLevel  string `env:"BLIIC_LOG_LEVEL" envDefault:"warn"`
	LogFormat string `env:"BLIIC_LOG_FORMAT" envDefault:"text"`

	// Dev server (cmd/devserver only)
	DevServerPort   int           `env:"BLIIC_DEV_PORT" envDefault:"8080"`
	ReadTimeout     time.Duration `env:"BLIIC_DEV_READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"BLIIC_DEV_WRITE_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"BLIIC_DEV_SHUTDOWN_TIMEOUT" envDefault:"30s"`
}

// Load parses environment variables and returns a Config.
// A .env file in the working directory is applied first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}
