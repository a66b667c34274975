package ioimport

import (
	"database/sql"
	"time"

	"github.com/seqlims/seqdb/pkg/ingest"

	_ "modernc.org/sqlite"
)

// Manifest reads one facility batch manifest: a SQLite file with a
// single-row run_info table and a samples table. Upstream collaborators
// convert the facility's spreadsheet deliveries into this format; the
// importer consumes it as already-parsed structure.
type Manifest struct {
	path string
	db   *sql.DB
}

// OpenManifest opens a batch manifest file.
func OpenManifest(path string) (*Manifest, error) {
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, ManifestOpenError(path, err)
	}
	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, ManifestOpenError(path, err)
	}
	return &Manifest{path: path, db: sqlDB}, nil
}

// Close releases the underlying file handle.
func (m *Manifest) Close() error {
	return m.db.Close()
}

// RunMetadata reads the single run_info row.
func (m *Manifest) RunMetadata() (ingest.RunMetadata, error) {
	var meta ingest.RunMetadata
	var srn, fcID, pool, completion, seqType sql.NullString
	var baseDir, patR1, patR2 sql.NullString

	q := `
SELECT service_request_number, flowcell_id, pool_name, completion_date,
       sequencer_type, base_directory, file_pattern_r1, file_pattern_r2
  FROM run_info
 LIMIT 1`
	err := m.db.QueryRow(q).Scan(
		&srn, &fcID, &pool, &completion,
		&seqType, &baseDir, &patR1, &patR2,
	)
	if err != nil {
		return meta, ManifestReadError(m.path, err)
	}

	meta.ServiceRequestNumber = srn.String
	meta.FlowcellID = fcID.String
	meta.PoolName = pool.String
	meta.SequencerType = seqType.String
	meta.BaseDirectory = baseDir.String
	meta.FilePatternR1 = patR1.String
	meta.FilePatternR2 = patR2.String

	if completion.Valid && completion.String != "" {
		t, err := time.Parse("2006-01-02", completion.String)
		if err != nil {
			return meta, ManifestReadError(m.path, err)
		}
		meta.CompletionDate = &t
	}

	return meta, nil
}

// SampleRows streams the samples table in batches of batchSize rows,
// calling handle for each batch. Rows keep their manifest order.
func (m *Manifest) SampleRows(
	batchSize int,
	handle func(rows []ingest.SampleRow) error,
) error {
	q := `
SELECT facility_sample_name, library_id, esp_id, index_sequence,
       flowcell_lane, species, library_type, sample_type,
       total_reads, total_bases,
       pct_q30_r1, pct_q30_r2, avg_q_score_r1, avg_q_score_r2,
       phix_error_rate_r1, phix_error_rate_r2,
       pct_pass_filter_r1, pct_pass_filter_r2
  FROM samples
 ORDER BY rowid`
	rows, err := m.db.Query(q)
	if err != nil {
		return ManifestReadError(m.path, err)
	}
	defer rows.Close()

	batch := make([]ingest.SampleRow, 0, batchSize)
	for rows.Next() {
		var row ingest.SampleRow
		var name, libID, espID, index sql.NullString
		var lane, species, libType, sampleType sql.NullString
		var reads, bases sql.NullString
		metrics := make([]sql.NullFloat64, 8)

		err := rows.Scan(
			&name, &libID, &espID, &index,
			&lane, &species, &libType, &sampleType,
			&reads, &bases,
			&metrics[0], &metrics[1], &metrics[2], &metrics[3],
			&metrics[4], &metrics[5], &metrics[6], &metrics[7],
		)
		if err != nil {
			return ManifestReadError(m.path, err)
		}

		row.FacilitySampleName = name.String
		row.LibraryID = libID.String
		row.ESPID = espID.String
		row.IndexSequence = index.String
		row.FlowcellLane = lane.String
		row.Species = species.String
		row.LibraryType = libType.String
		row.SampleType = sampleType.String
		row.TotalReads = reads.String
		row.TotalBases = bases.String
		row.PctQ30R1 = fromNullFloat(metrics[0])
		row.PctQ30R2 = fromNullFloat(metrics[1])
		row.AvgQScoreR1 = fromNullFloat(metrics[2])
		row.AvgQScoreR2 = fromNullFloat(metrics[3])
		row.PhixErrorR1 = fromNullFloat(metrics[4])
		row.PhixErrorR2 = fromNullFloat(metrics[5])
		row.PctPassFilterR1 = fromNullFloat(metrics[6])
		row.PctPassFilterR2 = fromNullFloat(metrics[7])

		batch = append(batch, row)
		if len(batch) == batchSize {
			if err := handle(batch); err != nil {
				return err
			}
			batch = make([]ingest.SampleRow, 0, batchSize)
		}
	}
	if err := rows.Err(); err != nil {
		return ManifestReadError(m.path, err)
	}

	if len(batch) > 0 {
		return handle(batch)
	}
	return nil
}

// CountSamples returns the number of sample rows in the manifest.
func (m *Manifest) CountSamples() (int, error) {
	var n int
	err := m.db.QueryRow("SELECT count(*) FROM samples").Scan(&n)
	if err != nil {
		return 0, ManifestReadError(m.path, err)
	}
	return n, nil
}

func fromNullFloat(f sql.NullFloat64) *float64 {
	if !f.Valid {
		return nil
	}
	v := f.Float64
	return &v
}
