package app

import (
	"errors"
	"fmt"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	InputPath  string // CSL source file
	Skin       string // built-in skin name or skin file
	OutputPath string

	LogFormat string
	LogLevel  string

	// Check enumerates the search space after translating it.
	Check      bool
	CheckLimit int
}

// NewConfig validates cfg and returns a copy of it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.InputPath == "" {
		return nil, errors.New("InputPath is a required configuration field and cannot be empty")
	}

	switch cfg.LogFormat {
	case "", "text", "json":
	default:
		return nil, fmt.Errorf("invalid log format %q: must be 'text' or 'json'", cfg.LogFormat)
	}
	switch cfg.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid log level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.LogLevel)
	}
	if cfg.CheckLimit < 0 {
		return nil, fmt.Errorf("check limit must not be negative, got %d", cfg.CheckLimit)
	}

	return &cfg, nil
}
