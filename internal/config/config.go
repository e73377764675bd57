// Package config loads service settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds all runtime settings. Every field has a default.
type Config struct {
	Port     int    `env:"PORT" envDefault:"8080"`
	BasePath string `env:"BASE_PATH" envDefault:"/api/java"`
	Greeting string `env:"GREETING" envDefault:"Hello from the service!"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// DocsEnabled serves the OpenAPI document and docs UI under BasePath.
	DocsEnabled bool `env:"DOCS_ENABLED" envDefault:"false"`

	// ProjectID links request logs to Cloud Trace. Empty disables trace fields.
	ProjectID string `env:"GOOGLE_CLOUD_PROJECT"`

	Server ServerConfig
}

// ServerConfig holds http.Server timeouts.
type ServerConfig struct {
	ReadTimeout       time.Duration `env:"READ_TIMEOUT" envDefault:"5s"`
	ReadHeaderTimeout time.Duration `env:"READ_HEADER_TIMEOUT" envDefault:"2s"`
	WriteTimeout      time.Duration `env:"WRITE_TIMEOUT" envDefault:"10s"`
	IdleTimeout       time.Duration `env:"IDLE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout   time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Load reads an optional .env file from the working directory, then parses
// the environment. Variables already set win over the file.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	return parse(env.Options{})
}

func parse(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if !strings.HasPrefix(c.BasePath, "/") {
		return fmt.Errorf("base path must start with '/': %q", c.BasePath)
	}
	if len(c.BasePath) > 1 && strings.HasSuffix(c.BasePath, "/") {
		return fmt.Errorf("base path must not end with '/': %q", c.BasePath)
	}
	if strings.TrimSpace(c.Greeting) == "" {
		return errors.New("greeting must not be empty")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	timeouts := []struct {
		name string
		d    time.Duration
	}{
		{"read timeout", c.Server.ReadTimeout},
		{"read header timeout", c.Server.ReadHeaderTimeout},
		{"write timeout", c.Server.WriteTimeout},
		{"idle timeout", c.Server.IdleTimeout},
		{"shutdown timeout", c.Server.ShutdownTimeout},
	}
	for _, to := range timeouts {
		if to.d <= 0 {
			return fmt.Errorf("%s must be positive, got %s", to.name, to.d)
		}
	}
	return nil
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
