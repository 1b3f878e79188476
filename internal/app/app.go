package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/vk/expc/internal/ctxlog"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW    io.Writer
	errW    io.Writer
	logger  *slog.Logger
	config  *Config
	logFile io.Closer
}

// NewApp is the constructor for the main application. Logs go to outW (and
// the log file, when configured); diagnostics go to errW.
func NewApp(outW, errW io.Writer, cfg *Config) (*App, error) {
	a := &App{outW: outW, errW: errW, config: cfg}

	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		a.logFile = f
		a.logger = newFanoutLogger(cfg.LogLevel, cfg.LogFormat, outW, f)
	} else {
		a.logger = newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	}
	a.logger.Debug("Logger configured successfully.", "log_file", cfg.LogFile)
	return a, nil
}

// Close releases the log file, if any.
func (a *App) Close() error {
	if a.logFile == nil {
		return nil
	}
	return a.logFile.Close()
}

// Run compiles the configured source, or serves it when a preview address is
// set. It returns the process exit code; a non-nil error always comes with
// ExitInternal.
func (a *App) Run(ctx context.Context) (int, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "source", a.config.SourcePath)

	if a.config.ServeAddr != "" {
		if err := a.serve(ctx, a.config.SourcePath, a.config.ServeAddr); err != nil {
			return ExitInternal, err
		}
		return ExitOK, nil
	}

	sources, root, err := a.sources(ctx)
	if err != nil {
		return ExitInternal, err
	}

	code := ExitOK
	for _, source := range sources {
		dest, err := a.destination(source, root)
		if err != nil {
			return ExitInternal, err
		}
		res, err := a.Compile(ctx, source, dest)
		if err != nil {
			if root == "" {
				return ExitInternal, err
			}
			a.logger.Error("Compilation failed.", "source", source, "error", err)
			code = worse(code, ExitInternal)
			continue
		}
		code = worse(code, res.Code)
	}

	a.logger.Debug("App.Run method finished.", "exit_code", code)
	return code, nil
}
