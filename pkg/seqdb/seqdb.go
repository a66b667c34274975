// Package seqdb defines the service contracts of the sequencing-run
// ingestion core. Implementations live in internal/io* packages; this
// package stays free of I/O so callers can depend on the contracts
// alone.
package seqdb

import (
	"context"

	"github.com/seqlims/seqdb/pkg/db"
	"github.com/seqlims/seqdb/pkg/ingest"
	"github.com/seqlims/seqdb/pkg/schema"
)

// Importer runs one batch import inside a single transaction: register
// the owning run exactly once, then process every row sequentially,
// classifying each outcome. Business outcomes (no identifier, no
// specimen match) never abort the batch; run-registration and commit
// failures roll back everything and return an error.
type Importer interface {
	// Import persists the parsed rows under the run described by meta.
	// actorID is recorded as created_by on a newly registered run.
	// A returned result means the batch committed, even when
	// FailedCount > 0; a returned error means nothing persisted.
	Import(
		ctx context.Context,
		rows []ingest.SampleRow,
		meta ingest.RunMetadata,
		actorID string,
	) (*ingest.ImportResult, error)
}

// RunSummary is a run with its per-status sample counts.
type RunSummary struct {
	Run schema.SequencingRun

	TotalSamples int
	Linked       int
	NoMatch      int
	Failed       int
}

// RunQuery is the read side: run listings with per-status counts and
// per-run sample listings with joined specimen display fields.
type RunQuery interface {
	// Runs returns all runs with sample counts, newest first.
	Runs(ctx context.Context) ([]RunSummary, error)

	// Run returns one run summary, or db.ErrRunNotFound.
	Run(ctx context.Context, runID int64) (*RunSummary, error)

	// RunSamples returns the run's samples ordered by WUID ascending,
	// or db.ErrRunNotFound when the run does not exist.
	RunSamples(ctx context.Context, runID int64) ([]db.SampleWithSpecimen, error)
}

// RunLifecycle deletes a run and its samples in one explicit,
// auditable transaction instead of relying on an implicit database
// cascade.
type RunLifecycle interface {
	// DeleteRun removes the run and all of its samples. Returns
	// db.ErrRunNotFound (wrapped) when the run does not exist; any
	// error rolls the transaction back.
	DeleteRun(ctx context.Context, runID int64, actorID string) error
}

// SchemaManager defines the interface for database schema management.
// It uses GORM AutoMigrate to handle both initial schema creation and
// migrations, plus the run-number sequence. Schema management is
// idempotent - safe to run multiple times.
type SchemaManager interface {
	// Create creates the initial database schema using GORM AutoMigrate
	// and the run-number sequence.
	Create(ctx context.Context) error

	// Migrate updates the database schema to the latest version using
	// GORM AutoMigrate. GORM handles schema version tracking
	// automatically.
	Migrate(ctx context.Context) error
}
