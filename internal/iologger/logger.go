// Package iologger provides slog-based logging initialization.
package iologger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/seqlims/seqdb/pkg/config"
	"github.com/seqlims/seqdb/pkg/logger"
)

// Init initializes the global slog logger with the given configuration.
// Creates the log file in logDir if destination is "file".
// If append is true, appends to an existing log file; otherwise the
// file is truncated.
func Init(logDir string, cfg config.LogConfig, append bool) error {
	var writer io.Writer

	switch cfg.Destination {
	case "stdout":
		writer = os.Stdout
	case "stderr":
		writer = os.Stderr
	case "file":
		logPath := filepath.Join(logDir, "seqdb.log")
		var file *os.File
		var err error

		if append {
			file, err = os.OpenFile(
				logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644,
			)
		} else {
			file, err = os.Create(logPath)
		}

		if err != nil {
			return CreateLogFileError(logPath, err)
		}
		writer = file
	default:
		writer = os.Stderr
	}

	level := logger.ParseLevel(cfg.Level)

	var handler slog.Handler
	handlerOpts := &slog.HandlerOptions{
		Level: level,
	}

	switch cfg.Format {
	case "text":
		handler = slog.NewTextHandler(writer, handlerOpts)
	default:
		handler = slog.NewJSONHandler(writer, handlerOpts)
	}

	slog.SetDefault(slog.New(handler))

	return nil
}
