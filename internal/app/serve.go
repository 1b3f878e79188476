package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/vk/expc/internal/ctxlog"
	"github.com/vk/expc/internal/preview"
)

// pageCompiler recompiles one workbook for every preview request.
type pageCompiler struct {
	app    *App
	source string
}

func (p pageCompiler) CompilePage(ctx context.Context) (*preview.Page, error) {
	res, err := p.app.compile(ctx, p.source)
	if err != nil {
		return nil, err
	}
	return &preview.Page{
		HTML:        res.Script,
		Diagnostics: res.Sink.Entries(),
		Failed:      res.Script == "" || (res.Code == ExitErrors && !p.app.config.Force),
	}, nil
}

// serve runs the preview server until ctx is cancelled.
func (a *App) serve(ctx context.Context, source, addr string) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Configuring preview server.")

	info, err := os.Stat(source)
	if err != nil {
		return fmt.Errorf("failed to stat source: %w", err)
	}
	if info.IsDir() {
		return errors.New("the preview server needs a single workbook, not a directory")
	}

	srv := preview.New(pageCompiler{app: a, source: source}, logger)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("🔎 Preview server starting", "address", fmt.Sprintf("http://%s/", addr))
		errCh <- srv.Start(addr)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("preview server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("🔎 Shutting down preview server...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Preview server shutdown failed", "error", err)
		return err
	}
	logger.Debug("Preview server shut down gracefully.")
	return nil
}
