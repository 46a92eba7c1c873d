// Package config loads runtime settings from STERIL_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

const defaultDirName = ".steril"

type Config struct {
	DBPath       string        `env:"STERIL_DB"`
	LogDir       string        `env:"STERIL_LOG_DIR"`
	Debug        bool          `env:"STERIL_DEBUG" envDefault:"false"`
	Owner        string        `env:"STERIL_OWNER" envDefault:"local"`
	Timezone     string        `env:"STERIL_TIMEZONE" envDefault:"Local"`
	TickInterval time.Duration `env:"STERIL_TICK_INTERVAL" envDefault:"1s"`
}

// Load reads the process environment.
func Load() (*Config, error) {
	return parse(env.Options{})
}

// LoadFrom reads settings from environ instead of the process environment.
func LoadFrom(environ map[string]string) (*Config, error) {
	return parse(env.Options{Environment: environ})
}

func parse(opts env.Options) (*Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return nil, fmt.Errorf("environment variables are invalid: %w", err)
	}
	if cfg.DBPath == "" || cfg.LogDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("finding home directory: %w", err)
		}
		base := filepath.Join(home, defaultDirName)
		if cfg.DBPath == "" {
			cfg.DBPath = filepath.Join(base, "steril.db")
		}
		if cfg.LogDir == "" {
			cfg.LogDir = base
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.Owner) == "" {
		return fmt.Errorf("STERIL_OWNER must not be empty")
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("STERIL_TICK_INTERVAL must be positive, got %s", c.TickInterval)
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("STERIL_TIMEZONE is invalid: %w", err)
	}
	return nil
}

// Location resolves Timezone; "Local" and empty mean the host zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || strings.EqualFold(c.Timezone, "local") {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}
