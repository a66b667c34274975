package ioconfig_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/seqlims/seqdb/internal/ioconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	res, err := ioconfig.Load("")
	require.NoError(t, err)

	assert.Equal(t, "defaults", res.Source)
	assert.Empty(t, res.SourcePath)
	assert.Equal(t, "localhost", res.Config.Database.Host)
	assert.Equal(t, 5432, res.Config.Database.Port)
	assert.Equal(t, "seqdb", res.Config.Database.Database)
	assert.NotEmpty(t, res.Config.HomeDir)
}

func TestLoadExplicitFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(home, "custom.yaml")
	data := []byte(`
database:
  host: db.example.org
  port: 5433
log:
  level: debug
`)
	require.NoError(t, os.WriteFile(path, data, 0644))

	res, err := ioconfig.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "file", res.Source)
	assert.Equal(t, path, res.SourcePath)
	assert.Equal(t, "db.example.org", res.Config.Database.Host)
	assert.Equal(t, 5433, res.Config.Database.Port)
	assert.Equal(t, "debug", res.Config.Log.Level)
	// Values the file omits keep their defaults.
	assert.Equal(t, "seqdb", res.Config.Database.Database)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	_, err := ioconfig.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("SEQDB_DATABASE_HOST", "env-host")

	res, err := ioconfig.Load("")
	require.NoError(t, err)

	assert.Equal(t, "defaults+env", res.Source)
	assert.Equal(t, "env-host", res.Config.Database.Host)
}
