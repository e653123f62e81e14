// Package logging builds the process-wide structured loggers on log/slog.
package logging

import (
	"log/slog"
	"os"
	"strings"
)

// NewLogger creates a structured logger with JSON output. The level comes
// from LOG_LEVEL (debug, info, warn, error); default is info.
func NewLogger() *slog.Logger {
	level := levelFromEnv()
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
		// Add source code location when running at debug level
		AddSource: level <= slog.LevelDebug,
	})
	return slog.New(handler)
}

// NewTextLogger creates a logger with human-readable text output for local
// development.
func NewTextLogger() *slog.Logger {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: levelFromEnv(),
	})
	return slog.New(handler)
}

func levelFromEnv() slog.Level {
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
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
