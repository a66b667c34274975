package logger_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/seqlims/seqdb/pkg/config"
	"github.com/seqlims/seqdb/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	fn()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	_, err = io.Copy(&buf, r)
	require.NoError(t, err)
	return buf.String()
}

func TestNew_TextFormat(t *testing.T) {
	cfg := &config.LogConfig{
		Level:  "info",
		Format: "text",
	}

	output := captureStdout(t, func() {
		l := logger.New(cfg)
		l.Info("test message", "key", "value")
	})

	assert.Contains(t, output, "test message")
	assert.Contains(t, output, "key=value")
	assert.Contains(t, output, "level=INFO")
}

func TestNew_JSONFormat(t *testing.T) {
	cfg := &config.LogConfig{
		Level:  "info",
		Format: "json",
	}

	output := captureStdout(t, func() {
		l := logger.New(cfg)
		l.Info("test message", "key", "value")
	})

	var logEntry map[string]interface{}
	err := json.Unmarshal([]byte(output), &logEntry)
	require.NoError(t, err, "Output should be valid JSON")

	assert.Equal(t, "test message", logEntry["msg"])
	assert.Equal(t, "value", logEntry["key"])
	assert.Equal(t, "INFO", logEntry["level"])
	assert.Contains(t, logEntry, "time")
}

func TestNew_LogLevelFiltering(t *testing.T) {
	tests := []struct {
		name          string
		configLevel   string
		logFunc       func(*slog.Logger)
		shouldContain string
		shouldLog     bool
	}{
		{
			name:          "info level shows info messages",
			configLevel:   "info",
			logFunc:       func(l *slog.Logger) { l.Info("info message") },
			shouldContain: "info message",
			shouldLog:     true,
		},
		{
			name:          "info level hides debug messages",
			configLevel:   "info",
			logFunc:       func(l *slog.Logger) { l.Debug("debug message") },
			shouldContain: "debug message",
			shouldLog:     false,
		},
		{
			name:          "debug level shows debug messages",
			configLevel:   "debug",
			logFunc:       func(l *slog.Logger) { l.Debug("debug message") },
			shouldContain: "debug message",
			shouldLog:     true,
		},
		{
			name:          "warn level hides info messages",
			configLevel:   "warn",
			logFunc:       func(l *slog.Logger) { l.Info("info message") },
			shouldContain: "info message",
			shouldLog:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.LogConfig{
				Level:  tt.configLevel,
				Format: "text",
			}

			output := captureStdout(t, func() {
				l := logger.New(cfg)
				tt.logFunc(l)
			})

			if tt.shouldLog {
				assert.Contains(t, output, tt.shouldContain)
			} else {
				assert.NotContains(t, output, tt.shouldContain)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"WARNING", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, logger.ParseLevel(tt.input), tt.input)
	}
}
