// Package config manages environment variables.
//
// It reads variables from the process environment (and a `.env`
// file when present), loads them into structured Go types, and
// validates them so they can be reused across the application runtime.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured Go config (structs).
//   - Validate required values so the app fails fast on bad config.
//   - Provide sane defaults for optional blocks (logging, validation).
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	// Side-effect import: if a `.env` file exists, it gets loaded into
	// the process env before any variable is read.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

/*
	Env vars are read using the prefix NOTES_. Keys are lowercased, the
	prefix is removed and a double underscore marks nesting:

	  NOTES_LOGGING__LEVEL=debug  ->  logging.level  ->  Config.Logging.Level
	  NOTES_VALIDATION__TAGS=Work,Personal  ->  validation.tags
*/

// EnvPrefix is the prefix every recognized variable carries.
const EnvPrefix = "NOTES_"

// Config is the root configuration object for the application.
type Config struct {
	Primary    Primary          `koanf:"primary"`
	Logging    LoggingConfig    `koanf:"logging"`
	Validation ValidationConfig `koanf:"validation"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required,oneof=development staging production test"`
}

// ValidationConfig tunes the request validator.
type ValidationConfig struct {
	// TagList is the comma-separated tag vocabulary. Empty means the default one.
	TagList string `koanf:"tags"`

	// AbortEarly reports only the first violation per request.
	AbortEarly bool `koanf:"abort_early"`
}

// Tags splits TagList, dropping blanks. Nil means "use the default vocabulary".
func (v ValidationConfig) Tags() []string {
	var tags []string
	for _, tag := range strings.Split(v.TagList, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// LoadConfig loads configuration from environment variables, unmarshals it
// into Config, applies defaults and validates the result.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	mainConfig := &Config{}
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal config: %w", err)
	}

	mainConfig.applyDefaults()

	if err := validator.New().Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if err := mainConfig.Logging.Validate(); err != nil {
		return nil, fmt.Errorf("invalid logging config: %w", err)
	}

	return mainConfig, nil
}

func (c *Config) applyDefaults() {
	if c.Primary.Env == "" {
		c.Primary.Env = "development"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = c.DefaultLogLevel()
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "json"
	}
}

// DefaultLogLevel picks the level by environment:
// "debug" in development, "info" everywhere else.
func (c *Config) DefaultLogLevel() string {
	if c.Primary.Env == "development" {
		return "debug"
	}
	return "info"
}

// IsProduction reports whether the application is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Primary.Env == "production"
}
