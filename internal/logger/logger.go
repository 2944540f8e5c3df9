// Package logger configures the application's logging.
//
// It uses *ZeroLog* for structured logs: JSON for log pipelines,
// a console writer for humans.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/deppfellow/notes-validator/internal/config"
	"github.com/rs/zerolog"
)

// New builds the application logger from the logging config, writing to stderr.
func New(cfg config.LoggingConfig, env string) zerolog.Logger {
	return NewWithWriter(cfg, env, os.Stderr)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(cfg config.LoggingConfig, env string, w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	out := w
	if cfg.Format == "console" {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	return zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("service", "notes-validator").
		Str("environment", env).
		Logger()
}
