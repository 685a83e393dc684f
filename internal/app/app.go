package app

import (
	"io"
	"log/slog"

	"github.com/specialistvlad/netmacro/internal/compute"
	"github.com/specialistvlad/netmacro/internal/config"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	loader config.Loader
	calc   compute.Calculator
	config *Config
}

// NewApp is the constructor for the main application. Results go to outW,
// logs to logW.
func NewApp(outW, logW io.Writer, cfg *Config, loader config.Loader) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	return &App{
		outW:   outW,
		logger: logger,
		loader: loader,
		calc:   compute.New(compute.WithLogger(logger)),
		config: cfg,
	}
}
