package app

import (
	"io"
	"log/slog"

	"github.com/specialistvlad/cslgen/internal/space"
	"github.com/specialistvlad/cslgen/internal/translate"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW       io.Writer
	logger     *slog.Logger
	config     *Config
	translator *translate.Translator
	explorer   *space.Explorer
}

// NewApp is the constructor for the main application. Rendered text goes to
// outW and logs to logW, through a logger of the App's own.
func NewApp(outW, logW io.Writer, cfg *Config, parser translate.Parser, skins translate.SkinLoader) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.", "level", cfg.LogLevel, "format", cfg.LogFormat)

	return &App{
		outW:       outW,
		logger:     logger,
		config:     cfg,
		translator: translate.New(parser, skins),
		explorer:   space.New(cfg.CheckLimit),
	}
}

// Logger returns the application's logger. This is primarily for testing.
func (a *App) Logger() *slog.Logger {
	return a.logger
}
