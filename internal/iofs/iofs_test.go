package iofs_test

import (
	"os"
	"testing"

	"github.com/seqlims/seqdb/internal/iofs"
	"github.com/seqlims/seqdb/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureDirs(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, iofs.EnsureDirs(home))

	for _, dir := range []string{
		config.ConfigDir(home),
		config.CacheDir(home),
		config.LogDir(home),
	} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}

	// Idempotent.
	assert.NoError(t, iofs.EnsureDirs(home))
}

func TestEnsureConfigFile(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, iofs.EnsureDirs(home))
	require.NoError(t, iofs.EnsureConfigFile(home))

	data, err := os.ReadFile(config.ConfigFilePath(home))
	require.NoError(t, err)
	assert.Contains(t, string(data), "database:")

	// An existing file is never overwritten.
	path := config.ConfigFilePath(home)
	require.NoError(t, os.WriteFile(path, []byte("# custom"), 0644))
	require.NoError(t, iofs.EnsureConfigFile(home))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# custom", string(data))
}

func TestEnsureFacilitiesFile(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, iofs.EnsureDirs(home))
	require.NoError(t, iofs.EnsureFacilitiesFile(home))

	data, err := os.ReadFile(config.FacilitiesFilePath(home))
	require.NoError(t, err)
	assert.Contains(t, string(data), "facilities:")
}
