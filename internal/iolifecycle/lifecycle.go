// Package iolifecycle implements the seqdb.RunLifecycle interface:
// removal of a sequencing run together with all of its samples in one
// explicit transaction.
package iolifecycle

import (
	"context"
	"log/slog"

	"github.com/seqlims/seqdb/pkg/db"
	"github.com/seqlims/seqdb/pkg/seqdb"
)

// lifecycle implements seqdb.RunLifecycle over a store.
type lifecycle struct {
	store db.Store
}

// New creates a RunLifecycle.
func New(store db.Store) seqdb.RunLifecycle {
	return &lifecycle{store: store}
}

// DeleteRun removes the run and all of its samples. The cascade is
// explicit: samples first, then the run row, in one transaction, so a
// partial delete can never be observed. Linked specimens are never
// touched; only the sample references to them disappear.
func (l *lifecycle) DeleteRun(
	ctx context.Context,
	runID int64,
	actorID string,
) error {
	tx, err := l.store.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	samplesRemoved, err := tx.DeleteRunSamples(ctx, runID)
	if err != nil {
		return DeleteRunError(runID, err)
	}

	runsRemoved, err := tx.DeleteRun(ctx, runID)
	if err != nil {
		return DeleteRunError(runID, err)
	}
	if runsRemoved == 0 {
		// Nothing to delete; the rollback also discards any sample
		// deletions a concurrent writer might have made visible.
		return RunNotFoundError(runID)
	}

	if err := tx.Commit(ctx); err != nil {
		return DeleteRunError(runID, err)
	}

	slog.Info("deleted sequencing run",
		"run_id", runID,
		"samples_removed", samplesRemoved,
		"actor", actorID,
	)
	return nil
}
