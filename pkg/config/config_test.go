package config_test

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/seqlims/seqdb/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirs(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}

	tempHome := t.TempDir()

	tests := []struct {
		msg string
		fn  func(string) string
		res string
	}{
		{
			msg: "config dir",
			fn:  config.ConfigDir,
			res: filepath.Join(tempHome, ".config", "seqdb"),
		},
		{
			msg: "cache dir",
			fn:  config.CacheDir,
			res: filepath.Join(tempHome, ".cache", "seqdb"),
		},
		{
			msg: "log dir",
			fn:  config.LogDir,
			res: filepath.Join(tempHome, ".local", "share", "seqdb", "logs"),
		},
		{
			msg: "facilities file",
			fn:  config.FacilitiesFilePath,
			res: filepath.Join(tempHome, ".config", "seqdb", "facilities.yaml"),
		},
	}

	for _, v := range tests {
		res := v.fn(tempHome)
		assert.Equal(t, v.res, res, v.msg)
	}
}

func TestNew(t *testing.T) {
	cfg := config.New()

	t.Run("creates valid default config", func(t *testing.T) {
		require.NotNil(t, cfg)

		// Database defaults
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "postgres", cfg.Database.User)
		assert.Equal(t, "postgres", cfg.Database.Password)
		assert.Equal(t, "seqdb", cfg.Database.Database)
		assert.Equal(t, "disable", cfg.Database.SSLMode)
		assert.Equal(t, 5_000, cfg.Database.BatchSize)

		// Log defaults
		assert.Equal(t, "json", cfg.Log.Format)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "file", cfg.Log.Destination)

		// JobsNumber defaults to CPU count
		assert.Equal(t, runtime.NumCPU(), cfg.JobsNumber)
	})
}

func TestOptionDatabaseHost(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "sets valid host",
			input:    "db.example.com",
			expected: "db.example.com",
		},
		{
			name:     "trims whitespace",
			input:    "  db.example.com  ",
			expected: "db.example.com",
		},
		{
			name:     "ignores empty string",
			input:    "",
			expected: "localhost", // Should keep default
		},
		{
			name:     "ignores whitespace-only",
			input:    "   ",
			expected: "localhost", // Should keep default
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptDatabaseHost(tt.input)})
			assert.Equal(t, tt.expected, cfg.Database.Host)
		})
	}
}

func TestOptionLogEnums(t *testing.T) {
	tests := []struct {
		name     string
		opt      config.Option
		check    func(*config.Config) string
		expected string
	}{
		{
			name:     "sets valid format",
			opt:      config.OptLogFormat("text"),
			check:    func(c *config.Config) string { return c.Log.Format },
			expected: "text",
		},
		{
			name:     "rejects unknown format",
			opt:      config.OptLogFormat("xml"),
			check:    func(c *config.Config) string { return c.Log.Format },
			expected: "json",
		},
		{
			name:     "normalizes level case",
			opt:      config.OptLogLevel("DEBUG"),
			check:    func(c *config.Config) string { return c.Log.Level },
			expected: "debug",
		},
		{
			name:     "rejects unknown destination",
			opt:      config.OptLogDestination("syslog"),
			check:    func(c *config.Config) string { return c.Log.Destination },
			expected: "file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{tt.opt})
			assert.Equal(t, tt.expected, tt.check(cfg))
		})
	}
}

func TestToOptionsRoundTrip(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptDatabaseHost("db.lims.local"),
		config.OptDatabasePort(5433),
		config.OptDatabaseDatabase("lims"),
		config.OptJobsNumber(4),
	})

	restored := config.New()
	restored.Update(cfg.ToOptions())

	assert.Equal(t, cfg.Database, restored.Database)
	assert.Equal(t, cfg.Log, restored.Log)
	assert.Equal(t, cfg.JobsNumber, restored.JobsNumber)
}

func TestRuntimeOnlyFieldsNotInToOptions(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptImportFacilityProfile("gtac"),
		config.OptImportActorID("user-42"),
		config.OptHomeDir("/home/elsa"),
	})

	restored := config.New()
	restored.Update(cfg.ToOptions())

	assert.Empty(t, restored.Import.FacilityProfile)
	assert.Empty(t, restored.Import.ActorID)
	assert.Empty(t, restored.HomeDir)
}
