// Package logger builds slog loggers from configuration. It writes to
// stdout only; destination selection for the long-lived application
// logger lives in internal/iologger.
package logger

import (
	"log/slog"
	"os"
	"strings"

	"github.com/seqlims/seqdb/pkg/config"
)

// New creates a slog.Logger honoring the configured level and format.
// Invalid values degrade to info level and text format.
func New(cfg *config.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: ParseLevel(cfg.Level),
	}

	var handler slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "json":
		handler = slog.NewJSONHandler(os.Stdout, opts)
	default:
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}

// ParseLevel converts a string log level to slog.Level. Valid levels
// are debug, info, warn and error, case-insensitive; anything else is
// info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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
