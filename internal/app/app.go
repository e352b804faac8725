package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/valv/kitbag/internal/config"
	"github.com/valv/kitbag/internal/ctxlog"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
	file   *config.File

	httpServer *http.Server // health check server, worker mode only
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger and resolved
// configuration. A failure to load the config file is a fatal startup
// error and panics; the entrypoint recovers it into a clean exit.
func NewApp(outW io.Writer, appConfig *Config) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	logger.Debug("Logger configured successfully.")

	file, err := config.Load(appConfig.ConfigPath)
	if err != nil {
		panic(fmt.Errorf("failed to load configuration: %w", err))
	}
	logger.Debug("Configuration resolved.", "server", file.Server.Addr, "tubes", len(file.Tubes))

	return &App{
		outW:   outW,
		logger: logger,
		config: appConfig,
		file:   file,
	}
}

// File returns the resolved tool configuration. This is primarily for testing.
func (a *App) File() *config.File {
	return a.file
}

// Run dispatches the configured command.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "command", a.config.Command)

	var err error
	switch a.config.Command {
	case "put":
		err = a.runPut(ctx)
	case "reserve":
		err = a.runReserve(ctx)
	case "stats":
		err = a.runStats(ctx)
	case "tubes":
		err = a.runTubes(ctx)
	case "fetch":
		err = a.runFetch(ctx)
	case "worker":
		err = a.runWorker(ctx)
	default:
		// NewConfig validates against the Commands set, so this is a
		// programmer error.
		err = fmt.Errorf("command %q has no handler", a.config.Command)
	}

	a.logger.Debug("App.Run method finished.")
	return err
}
