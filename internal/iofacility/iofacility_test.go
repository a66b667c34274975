package iofacility_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/seqlims/seqdb/internal/iofacility"
	"github.com/seqlims/seqdb/pkg/templates"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFacilities(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "facilities.yaml")
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeFacilities(t, `
facilities:
  - name: vienna-core
    sequencer_type: NovaSeq
    base_directory: /data/vbcf
    file_pattern_r1: _R1_001.fastq.gz
    file_pattern_r2: _R2_001.fastq.gz
  - name: basel-core
    base_directory: /data/basel
`)

	cfg, err := iofacility.New(path).Load()
	require.NoError(t, err)
	require.Len(t, cfg.Profiles, 2)
	assert.Empty(t, cfg.Warnings)

	p, ok := cfg.Profile("Vienna-Core")
	require.True(t, ok, "lookup should be case-insensitive")
	assert.Equal(t, "/data/vbcf", p.BaseDirectory)
	assert.Equal(t, "_R1_001.fastq.gz", p.FilePatternR1)

	_, ok = cfg.Profile("unknown")
	assert.False(t, ok)
}

func TestLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "facilities.yaml")

	cfg, err := iofacility.New(path).Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.Profiles)
}

func TestLoadMalformedFile(t *testing.T) {
	path := writeFacilities(t, "facilities: [unterminated")

	_, err := iofacility.New(path).Load()
	assert.Error(t, err)
}

func TestLoadCollectsWarnings(t *testing.T) {
	path := writeFacilities(t, `
facilities:
  - name: core
  - name: CORE
  - sequencer_type: MiSeq
`)

	cfg, err := iofacility.New(path).Load()
	require.NoError(t, err)
	assert.Len(t, cfg.Warnings, 2)
}

func TestLoadEmbeddedTemplate(t *testing.T) {
	path := writeFacilities(t, templates.FacilitiesYAML)

	cfg, err := iofacility.New(path).Load()
	require.NoError(t, err)
	require.Len(t, cfg.Profiles, 1)
	assert.Empty(t, cfg.Warnings)

	p, ok := cfg.Profile("example-core")
	require.True(t, ok)
	assert.Equal(t, "NovaSeq", p.SequencerType)
}
