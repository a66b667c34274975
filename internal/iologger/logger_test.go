package iologger_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/seqlims/seqdb/internal/iologger"
	"github.com/seqlims/seqdb/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitFileDestination(t *testing.T) {
	logDir := t.TempDir()
	cfg := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}

	err := iologger.Init(logDir, cfg, false)
	require.NoError(t, err)

	slog.Info("file destination works")

	data, err := os.ReadFile(filepath.Join(logDir, "seqdb.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "file destination works")
}

func TestInitTruncatesByDefault(t *testing.T) {
	logDir := t.TempDir()
	logPath := filepath.Join(logDir, "seqdb.log")
	require.NoError(t, os.WriteFile(logPath, []byte("old entry\n"), 0644))

	cfg := config.LogConfig{
		Format:      "text",
		Level:       "info",
		Destination: "file",
	}
	require.NoError(t, iologger.Init(logDir, cfg, false))

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "old entry")
}

func TestInitAppendPreservesLog(t *testing.T) {
	logDir := t.TempDir()
	logPath := filepath.Join(logDir, "seqdb.log")
	require.NoError(t, os.WriteFile(logPath, []byte("old entry\n"), 0644))

	cfg := config.LogConfig{
		Format:      "text",
		Level:       "info",
		Destination: "file",
	}
	require.NoError(t, iologger.Init(logDir, cfg, true))

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "old entry")
}

func TestInitBadLogDir(t *testing.T) {
	cfg := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}
	err := iologger.Init(filepath.Join(t.TempDir(), "missing"), cfg, false)
	assert.Error(t, err)
}
