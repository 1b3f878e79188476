package app

import (
	"io"
	"log/slog"

	slogmulti "github.com/samber/slog-multi"
)

func parseLevel(levelStr string) slog.Level {
	switch levelStr {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// newLogger creates and configures a new slog.Logger instance. It does not
// set the global logger, allowing for isolated logger instances.
func newLogger(levelStr, formatStr string, outW io.Writer) *slog.Logger {
	return slog.New(newHandler(levelStr, formatStr, outW))
}

func newHandler(levelStr, formatStr string, outW io.Writer) slog.Handler {
	handlerOpts := &slog.HandlerOptions{Level: parseLevel(levelStr)}
	if formatStr == "json" {
		return slog.NewJSONHandler(outW, handlerOpts)
	}
	return slog.NewTextHandler(outW, handlerOpts)
}

// newFanoutLogger logs to outW in the requested format and, as JSON at the
// same level, to fileW.
func newFanoutLogger(levelStr, formatStr string, outW, fileW io.Writer) *slog.Logger {
	return slog.New(slogmulti.Fanout(
		newHandler(levelStr, formatStr, outW),
		newHandler(levelStr, "json", fileW),
	))
}
