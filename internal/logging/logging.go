// Package logging configures structured JSON logging and propagates
// per-request identifiers through context.Context.
package logging

import (
	"log/slog"
	"os"
	"strings"
)

// Setup installs a JSON handler on stdout as the default slog logger and
// returns it. JSON output is what log collectors in container
// environments expect.
func Setup(level string) *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: ParseLevel(level),
	}))
	slog.SetDefault(logger)
	return logger
}

// ParseLevel maps a configuration string to a slog.Level.
// Unknown values fall back to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
