package db

import (
	"context"
	"errors"

	"github.com/seqlims/seqdb/pkg/schema"
)

// Sentinel errors that represent business outcomes of store lookups.
// They are distinct from infrastructure failures (connectivity,
// timeouts), which propagate as ordinary wrapped errors and must never
// be conflated with these.
var (
	// ErrSpecimenNotFound means no specimen carries the requested
	// specimen number. A business outcome, not an infrastructure error.
	ErrSpecimenNotFound = errors.New("specimen not found")

	// ErrRunNotFound means no sequencing run exists with the requested
	// identifier.
	ErrRunNotFound = errors.New("sequencing run not found")
)

// Store is the transactional data store the import, query, and
// lifecycle services are injected with. The PostgreSQL implementation
// lives in internal/iodb; internal/iotesting provides an in-memory
// implementation so the importer's classification and atomicity
// behavior is testable without a database.
type Store interface {
	// Begin opens a transaction. The caller must resolve it with
	// Commit or Rollback on every exit path.
	Begin(ctx context.Context) (Tx, error)

	// ListRuns returns all sequencing runs, newest first.
	ListRuns(ctx context.Context) ([]schema.SequencingRun, error)

	// GetRun returns one run or ErrRunNotFound.
	GetRun(ctx context.Context, runID int64) (*schema.SequencingRun, error)

	// CountSamplesByStatus returns the number of samples per link
	// status for one run. Statuses with no samples are absent from the
	// map.
	CountSamplesByStatus(
		ctx context.Context, runID int64,
	) (map[string]int, error)

	// ListRunSamples returns the run's samples ordered by WUID
	// ascending, each joined with specimen display fields when linked.
	ListRunSamples(
		ctx context.Context, runID int64,
	) ([]SampleWithSpecimen, error)
}

// Tx is one open transaction against the store. All import-side writes
// and the delete cascade run through it, so a batch either fully
// commits or fully rolls back.
type Tx interface {
	// LockRunKeys serializes concurrent registrations of the same
	// facility batch. In PostgreSQL this takes transaction-scoped
	// advisory locks derived from the keys; the locks release with the
	// transaction.
	LockRunKeys(ctx context.Context, serviceRequestNumber, flowcellID string) error

	// FindRunByServiceRequest returns the run with the given service
	// request number, or ErrRunNotFound.
	FindRunByServiceRequest(
		ctx context.Context, serviceRequestNumber string,
	) (*schema.SequencingRun, error)

	// FindRunByFlowcell returns the run with the given flowcell id, or
	// ErrRunNotFound.
	FindRunByFlowcell(
		ctx context.Context, flowcellID string,
	) (*schema.SequencingRun, error)

	// NextRunNumber allocates the next human-facing run number from the
	// dedicated sequence.
	NextRunNumber(ctx context.Context) (int, error)

	// InsertRun persists a newly registered run and fills in its ID.
	InsertRun(ctx context.Context, run *schema.SequencingRun) error

	// FindSpecimenIDByNumber resolves a WUID to the specimen's internal
	// id, or ErrSpecimenNotFound. Infrastructure failures return other
	// errors.
	FindSpecimenIDByNumber(ctx context.Context, wuid int64) (int64, error)

	// InsertSample persists one sample row and fills in its ID.
	InsertSample(ctx context.Context, sample *schema.SequencingSample) error

	// DeleteRunSamples deletes all samples of a run, returning the
	// number of rows removed.
	DeleteRunSamples(ctx context.Context, runID int64) (int64, error)

	// DeleteRun deletes the run row itself, returning the number of
	// rows removed (zero when the run does not exist).
	DeleteRun(ctx context.Context, runID int64) (int64, error)

	// Commit commits the transaction.
	Commit(ctx context.Context) error

	// Rollback aborts the transaction. Safe to call after Commit; the
	// importer defers it as the guaranteed-release path.
	Rollback(ctx context.Context) error
}

// SampleWithSpecimen is a read-side sample row joined with the display
// fields of its linked specimen. The specimen fields are empty strings
// and SpecimenNumber is zero for unlinked samples.
type SampleWithSpecimen struct {
	schema.SequencingSample

	SpecimenNumber      int64
	SpecimenDescription string
	ProjectName         string
	CollaboratorName    string
}
