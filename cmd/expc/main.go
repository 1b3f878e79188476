package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/vk/expc/internal/app"
	"github.com/vk/expc/internal/cli"
)

// main is the entrypoint for the expc compiler.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	// The real main function handles errors and exit codes.
	if err := run(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			if exitErr.Message != "" {
				fmt.Fprintln(os.Stderr, exitErr.Message)
			}
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(app.ExitInternal)
	}
}

// run encapsulates the main application logic for easier testing and error
// handling. Logs go to outW and diagnostics to errW.
func run(outW, errW io.Writer, args []string) error {
	appConfig, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	compiler, err := app.NewApp(outW, errW, appConfig)
	if err != nil {
		return &cli.ExitError{Code: app.ExitInternal, Message: err.Error()}
	}
	defer compiler.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	code, err := compiler.Run(ctx)
	if err != nil {
		return &cli.ExitError{Code: code, Message: err.Error()}
	}
	if code != app.ExitOK {
		return &cli.ExitError{Code: code}
	}
	return nil
}
