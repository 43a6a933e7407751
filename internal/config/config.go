// Package config reads the process configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the process configuration. Command-line flags override it.
type Config struct {
	// Namespace prefixes every registry key, e.g. "ottocraft:smelting_iron".
	Namespace         string        `env:"OTTOCRAFT_NAMESPACE" envDefault:"ottocraft"`
	RecipeDirs        []string      `env:"OTTOCRAFT_RECIPE_DIRS" envDefault:"recipes" envSeparator:","`
	RecipeFiles       []string      `env:"OTTOCRAFT_RECIPE_FILES" envSeparator:","`
	Debug             bool          `env:"OTTOCRAFT_DEBUG"`
	DisabledProviders []string      `env:"OTTOCRAFT_DISABLED_PROVIDERS" envSeparator:","`
	WatchInterval     time.Duration `env:"OTTOCRAFT_WATCH_INTERVAL" envDefault:"2s"`
	// StrictKeys rejects unknown keys in recipe files.
	StrictKeys bool `env:"OTTOCRAFT_STRICT_KEYS" envDefault:"true"`
}

// Load parses the configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.WatchInterval <= 0 {
		return Config{}, fmt.Errorf("parse env: OTTOCRAFT_WATCH_INTERVAL must be positive, got %s", cfg.WatchInterval)
	}
	return cfg, nil
}
