package iodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/seqlims/seqdb/pkg/db"
	"github.com/seqlims/seqdb/pkg/schema"
)

// pgxStore implements db.Store on top of a pgxpool.Pool.
type pgxStore struct {
	pool *pgxpool.Pool
}

// NewPgxStore creates the PostgreSQL-backed store used by the import,
// query, and lifecycle services. The operator must already be
// connected.
func NewPgxStore(op db.Operator) db.Store {
	return &pgxStore{pool: op.Pool()}
}

const runColumns = `id, uuid, run_number, service_request_number,
	flowcell_id, pool_name, completion_date, sequencer_type,
	base_directory, file_pattern_r1, file_pattern_r2, created_by,
	created_at`

func scanRun(row pgx.Row) (*schema.SequencingRun, error) {
	var run schema.SequencingRun
	err := row.Scan(
		&run.ID, &run.UUID, &run.RunNumber, &run.ServiceRequestNumber,
		&run.FlowcellID, &run.PoolName, &run.CompletionDate,
		&run.SequencerType, &run.BaseDirectory, &run.FilePatternR1,
		&run.FilePatternR2, &run.CreatedBy, &run.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// Begin opens a pgx transaction wrapped as db.Tx.
func (s *pgxStore) Begin(ctx context.Context) (db.Tx, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, BeginTxError(err)
	}
	return &pgxTx{tx: tx}, nil
}

// ListRuns returns all sequencing runs, newest first.
func (s *pgxStore) ListRuns(
	ctx context.Context,
) ([]schema.SequencingRun, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM sequencing_runs
		 ORDER BY created_at DESC, id DESC`, runColumns)

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query sequencing runs: %w", err)
	}
	defer rows.Close()

	var runs []schema.SequencingRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sequencing run: %w", err)
		}
		runs = append(runs, *run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read sequencing runs: %w", err)
	}
	return runs, nil
}

// GetRun returns one run or db.ErrRunNotFound.
func (s *pgxStore) GetRun(
	ctx context.Context,
	runID int64,
) (*schema.SequencingRun, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM sequencing_runs WHERE id = $1`, runColumns)

	run, err := scanRun(s.pool.QueryRow(ctx, query, runID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, db.ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get sequencing run %d: %w",
			runID, err)
	}
	return run, nil
}

// CountSamplesByStatus returns per-status sample counts for one run.
func (s *pgxStore) CountSamplesByStatus(
	ctx context.Context,
	runID int64,
) (map[string]int, error) {
	query := `
		SELECT link_status, COUNT(*)
		FROM sequencing_samples
		WHERE sequencing_run_id = $1
		GROUP BY link_status
	`

	rows, err := s.pool.Query(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to count samples for run %d: %w", runID, err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan sample count: %w", err)
		}
		counts[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read sample counts: %w", err)
	}
	return counts, nil
}

// ListRunSamples returns the run's samples ordered by WUID ascending,
// joined with specimen display fields. Samples without a WUID sort
// last; ties break on insertion order.
func (s *pgxStore) ListRunSamples(
	ctx context.Context,
	runID int64,
) ([]db.SampleWithSpecimen, error) {
	query := `
		SELECT ss.id, ss.sample_uuid, ss.sequencing_run_id,
			ss.specimen_id, ss.facility_sample_name, ss.wuid,
			ss.library_id, ss.esp_id, ss.index_sequence, ss.flowcell_lane,
			ss.fastq_r1_path, ss.fastq_r2_path,
			ss.species, ss.species_canonical,
			ss.library_type, ss.sample_type,
			ss.total_reads, ss.total_bases,
			ss.pct_q30_r1, ss.pct_q30_r2,
			ss.avg_q_score_r1, ss.avg_q_score_r2,
			ss.phix_error_rate_r1, ss.phix_error_rate_r2,
			ss.pct_pass_filter_r1, ss.pct_pass_filter_r2,
			ss.link_status, ss.link_error, ss.linked_at, ss.created_at,
			COALESCE(sp.specimen_number, 0),
			COALESCE(sp.description, ''),
			COALESCE(sp.project_name, ''),
			COALESCE(sp.collaborator_name, '')
		FROM sequencing_samples ss
		LEFT JOIN specimens sp ON sp.id = ss.specimen_id
		WHERE ss.sequencing_run_id = $1
		ORDER BY ss.wuid ASC NULLS LAST, ss.id ASC
	`

	rows, err := s.pool.Query(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to query samples for run %d: %w", runID, err)
	}
	defer rows.Close()

	var samples []db.SampleWithSpecimen
	for rows.Next() {
		var sm db.SampleWithSpecimen
		err := rows.Scan(
			&sm.ID, &sm.SampleUUID, &sm.SequencingRunID,
			&sm.SpecimenID, &sm.FacilitySampleName, &sm.WUID,
			&sm.LibraryID, &sm.ESPID, &sm.IndexSequence, &sm.FlowcellLane,
			&sm.FastqR1Path, &sm.FastqR2Path,
			&sm.Species, &sm.SpeciesCanonical,
			&sm.LibraryType, &sm.SampleType,
			&sm.TotalReads, &sm.TotalBases,
			&sm.PctQ30R1, &sm.PctQ30R2,
			&sm.AvgQScoreR1, &sm.AvgQScoreR2,
			&sm.PhixErrorR1, &sm.PhixErrorR2,
			&sm.PctPassFilterR1, &sm.PctPassFilterR2,
			&sm.LinkStatus, &sm.LinkError, &sm.LinkedAt, &sm.CreatedAt,
			&sm.SpecimenNumber,
			&sm.SpecimenDescription,
			&sm.ProjectName,
			&sm.CollaboratorName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sample row: %w", err)
		}
		samples = append(samples, sm)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read sample rows: %w", err)
	}
	return samples, nil
}

// pgxTx implements db.Tx on a pgx.Tx.
type pgxTx struct {
	tx pgx.Tx
}

// LockRunKeys takes transaction-scoped advisory locks on both run keys.
// The locks release automatically at commit or rollback, serializing
// concurrent registrations of the same facility batch without blocking
// unrelated batches.
func (t *pgxTx) LockRunKeys(
	ctx context.Context,
	serviceRequestNumber, flowcellID string,
) error {
	// Key strings are namespaced so a service request number can never
	// collide with an equal flowcell id.
	keys := make([]string, 0, 2)
	if serviceRequestNumber != "" {
		keys = append(keys, "srn:"+serviceRequestNumber)
	}
	if flowcellID != "" {
		keys = append(keys, "fc:"+flowcellID)
	}
	for _, key := range keys {
		_, err := t.tx.Exec(ctx,
			"SELECT pg_advisory_xact_lock(hashtext($1))", key)
		if err != nil {
			return fmt.Errorf("failed to lock run key %q: %w", key, err)
		}
	}
	return nil
}

// FindRunByServiceRequest returns the run registered under the given
// service request number, or db.ErrRunNotFound.
func (t *pgxTx) FindRunByServiceRequest(
	ctx context.Context,
	serviceRequestNumber string,
) (*schema.SequencingRun, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM sequencing_runs
		 WHERE service_request_number = $1`, runColumns)

	run, err := scanRun(t.tx.QueryRow(ctx, query, serviceRequestNumber))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, db.ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf(
			"failed to find run by service request %q: %w",
			serviceRequestNumber, err)
	}
	return run, nil
}

// FindRunByFlowcell returns the run registered under the given flowcell
// id, or db.ErrRunNotFound.
func (t *pgxTx) FindRunByFlowcell(
	ctx context.Context,
	flowcellID string,
) (*schema.SequencingRun, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM sequencing_runs WHERE flowcell_id = $1`,
		runColumns)

	run, err := scanRun(t.tx.QueryRow(ctx, query, flowcellID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, db.ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf(
			"failed to find run by flowcell %q: %w", flowcellID, err)
	}
	return run, nil
}

// NextRunNumber allocates the next human-facing run number.
func (t *pgxTx) NextRunNumber(ctx context.Context) (int, error) {
	var n int
	err := t.tx.QueryRow(ctx,
		"SELECT nextval('"+schema.RunNumberSequence+"')").Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to allocate run number: %w", err)
	}
	return n, nil
}

// InsertRun persists a newly registered run and fills in its ID and
// creation timestamp.
func (t *pgxTx) InsertRun(
	ctx context.Context,
	run *schema.SequencingRun,
) error {
	query := `
		INSERT INTO sequencing_runs
			(uuid, run_number, service_request_number, flowcell_id,
			 pool_name, completion_date, sequencer_type, base_directory,
			 file_pattern_r1, file_pattern_r2, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, now())
		RETURNING id, created_at
	`
	err := t.tx.QueryRow(ctx, query,
		run.UUID, run.RunNumber, run.ServiceRequestNumber,
		run.FlowcellID, run.PoolName, run.CompletionDate,
		run.SequencerType, run.BaseDirectory,
		run.FilePatternR1, run.FilePatternR2, run.CreatedBy,
	).Scan(&run.ID, &run.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert sequencing run: %w", err)
	}
	return nil
}

// FindSpecimenIDByNumber resolves a WUID to a specimen's internal id.
// Returns db.ErrSpecimenNotFound when no specimen carries the number;
// any other error is an infrastructure failure.
func (t *pgxTx) FindSpecimenIDByNumber(
	ctx context.Context,
	wuid int64,
) (int64, error) {
	var id int64
	err := t.tx.QueryRow(ctx,
		"SELECT id FROM specimens WHERE specimen_number = $1", wuid,
	).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, db.ErrSpecimenNotFound
	}
	if err != nil {
		return 0, fmt.Errorf(
			"failed to look up specimen %d: %w", wuid, err)
	}
	return id, nil
}

// InsertSample persists one sample row and fills in its ID and creation
// timestamp.
func (t *pgxTx) InsertSample(
	ctx context.Context,
	sample *schema.SequencingSample,
) error {
	query := `
		INSERT INTO sequencing_samples
			(sample_uuid, sequencing_run_id, specimen_id,
			 facility_sample_name, wuid, library_id, esp_id,
			 index_sequence, flowcell_lane, fastq_r1_path, fastq_r2_path,
			 species, species_canonical, library_type, sample_type,
			 total_reads, total_bases,
			 pct_q30_r1, pct_q30_r2, avg_q_score_r1, avg_q_score_r2,
			 phix_error_rate_r1, phix_error_rate_r2,
			 pct_pass_filter_r1, pct_pass_filter_r2,
			 link_status, link_error, linked_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
			$14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25,
			$26, $27, $28, now())
		RETURNING id, created_at
	`
	err := t.tx.QueryRow(ctx, query,
		sample.SampleUUID, sample.SequencingRunID, sample.SpecimenID,
		sample.FacilitySampleName, sample.WUID, sample.LibraryID,
		sample.ESPID, sample.IndexSequence, sample.FlowcellLane,
		sample.FastqR1Path, sample.FastqR2Path,
		sample.Species, sample.SpeciesCanonical,
		sample.LibraryType, sample.SampleType,
		sample.TotalReads, sample.TotalBases,
		sample.PctQ30R1, sample.PctQ30R2,
		sample.AvgQScoreR1, sample.AvgQScoreR2,
		sample.PhixErrorR1, sample.PhixErrorR2,
		sample.PctPassFilterR1, sample.PctPassFilterR2,
		sample.LinkStatus, sample.LinkError, sample.LinkedAt,
	).Scan(&sample.ID, &sample.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert sequencing sample: %w", err)
	}
	return nil
}

// DeleteRunSamples deletes all samples of a run.
func (t *pgxTx) DeleteRunSamples(
	ctx context.Context,
	runID int64,
) (int64, error) {
	tag, err := t.tx.Exec(ctx,
		"DELETE FROM sequencing_samples WHERE sequencing_run_id = $1",
		runID)
	if err != nil {
		return 0, fmt.Errorf(
			"failed to delete samples of run %d: %w", runID, err)
	}
	return tag.RowsAffected(), nil
}

// DeleteRun deletes the run row itself.
func (t *pgxTx) DeleteRun(
	ctx context.Context,
	runID int64,
) (int64, error) {
	tag, err := t.tx.Exec(ctx,
		"DELETE FROM sequencing_runs WHERE id = $1", runID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete run %d: %w", runID, err)
	}
	return tag.RowsAffected(), nil
}

// Commit commits the transaction.
func (t *pgxTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

// Rollback aborts the transaction. pgx returns pgx.ErrTxClosed after a
// commit; that is the expected no-op on the deferred release path.
func (t *pgxTx) Rollback(ctx context.Context) error {
	err := t.tx.Rollback(ctx)
	if errors.Is(err, pgx.ErrTxClosed) {
		return nil
	}
	return err
}
