package ioimport_test

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/seqlims/seqdb/internal/ioimport"
	"github.com/seqlims/seqdb/pkg/ingest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

// writeManifest creates a minimal batch manifest with the given sample
// names and returns its path.
func writeManifest(t *testing.T, names ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "batch.sqlite")

	sqlDB, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer sqlDB.Close()

	_, err = sqlDB.Exec(`
CREATE TABLE run_info (
  service_request_number TEXT,
  flowcell_id            TEXT,
  pool_name              TEXT,
  completion_date        TEXT,
  sequencer_type         TEXT,
  base_directory         TEXT,
  file_pattern_r1        TEXT,
  file_pattern_r2        TEXT
);
CREATE TABLE samples (
  facility_sample_name TEXT,
  library_id           TEXT,
  esp_id               TEXT,
  index_sequence       TEXT,
  flowcell_lane        TEXT,
  species              TEXT,
  library_type         TEXT,
  sample_type          TEXT,
  total_reads          TEXT,
  total_bases          TEXT,
  pct_q30_r1           REAL,
  pct_q30_r2           REAL,
  avg_q_score_r1       REAL,
  avg_q_score_r2       REAL,
  phix_error_rate_r1   REAL,
  phix_error_rate_r2   REAL,
  pct_pass_filter_r1   REAL,
  pct_pass_filter_r2   REAL
);`)
	require.NoError(t, err)

	_, err = sqlDB.Exec(`
INSERT INTO run_info VALUES
  ('SR-2024-0117', 'HVX3LDRX5', 'pool-42', '2024-03-15',
   'NovaSeq', '/data/sequencing', '_R1.fastq.gz', '_R2.fastq.gz')`)
	require.NoError(t, err)

	for _, name := range names {
		_, err = sqlDB.Exec(`
INSERT INTO samples (facility_sample_name, library_id, species,
                     total_reads, pct_q30_r1)
VALUES (?, 'L7701', 'Homo sapiens', '1,613,040', 92.5)`, name)
		require.NoError(t, err)
	}
	return path
}

func TestManifestRunMetadata(t *testing.T) {
	path := writeManifest(t, "I13129_39552_a")

	m, err := ioimport.OpenManifest(path)
	require.NoError(t, err)
	defer m.Close()

	meta, err := m.RunMetadata()
	require.NoError(t, err)

	assert.Equal(t, "SR-2024-0117", meta.ServiceRequestNumber)
	assert.Equal(t, "HVX3LDRX5", meta.FlowcellID)
	assert.Equal(t, "pool-42", meta.PoolName)
	assert.Equal(t, "NovaSeq", meta.SequencerType)
	assert.Equal(t, "/data/sequencing", meta.BaseDirectory)
	require.NotNil(t, meta.CompletionDate)
	assert.Equal(t, 2024, meta.CompletionDate.Year())
}

func TestManifestSampleRows(t *testing.T) {
	path := writeManifest(t,
		"I13129_39552_a", "I13129_39553_b", "I13129_39554_c")

	m, err := ioimport.OpenManifest(path)
	require.NoError(t, err)
	defer m.Close()

	n, err := m.CountSamples()
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	var all []ingest.SampleRow
	var batches int
	err = m.SampleRows(2, func(rows []ingest.SampleRow) error {
		batches++
		all = append(all, rows...)
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, 2, batches)
	require.Len(t, all, 3)
	assert.Equal(t, "I13129_39552_a", all[0].FacilitySampleName)
	assert.Equal(t, "L7701", all[0].LibraryID)
	assert.Equal(t, "1,613,040", all[0].TotalReads)
	require.NotNil(t, all[0].PctQ30R1)
	assert.InDelta(t, 92.5, *all[0].PctQ30R1, 0.001)
	assert.Nil(t, all[0].PctQ30R2, "absent metric stays nil")
}

func TestManifestMissingTables(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.sqlite")
	sqlDB, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	require.NoError(t, sqlDB.Ping())
	sqlDB.Close()

	m, err := ioimport.OpenManifest(path)
	require.NoError(t, err)
	defer m.Close()

	_, err = m.RunMetadata()
	assert.Error(t, err)
}
