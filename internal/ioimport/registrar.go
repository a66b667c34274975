package ioimport

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/seqlims/seqdb/pkg/db"
	"github.com/seqlims/seqdb/pkg/ingest"
	"github.com/seqlims/seqdb/pkg/schema"
)

// registerRun finds or creates the run that owns the batch. The
// first-created run is canonical: when a matching run already exists it
// is returned untouched, and the incoming metadata is ignored.
//
// Lookup order follows key precedence: service request number first,
// then flowcell id. A metadata set whose keys straddle two different
// existing runs, or contradict the keys of the run they match, is a
// conflict and aborts the batch.
func registerRun(
	ctx context.Context,
	tx db.Tx,
	meta ingest.RunMetadata,
	actorID string,
) (*schema.SequencingRun, error) {
	srn := meta.ServiceRequestNumber
	fcID := meta.FlowcellID

	if srn == "" && fcID == "" {
		return nil, RunRegistrationError(
			fmt.Errorf("run metadata has neither service request number nor flowcell id"),
		)
	}

	// Advisory locks close the find-create race between concurrent
	// imports of the same batch; they release with the transaction.
	if err := tx.LockRunKeys(ctx, srn, fcID); err != nil {
		return nil, RunRegistrationError(err)
	}

	if srn != "" {
		run, err := tx.FindRunByServiceRequest(ctx, srn)
		switch {
		case err == nil:
			if fcID != "" {
				if run.FlowcellID.Valid && run.FlowcellID.String != fcID {
					return nil, RunKeyConflictError(srn, fcID)
				}
				if !run.FlowcellID.Valid {
					// The matched run has no flowcell on record; the
					// incoming flowcell must not belong to another run.
					other, err := tx.FindRunByFlowcell(ctx, fcID)
					switch {
					case err == nil && other.ID != run.ID:
						return nil, RunKeyConflictError(srn, fcID)
					case err != nil && !errors.Is(err, db.ErrRunNotFound):
						return nil, RunRegistrationError(err)
					}
				}
			}
			return run, nil
		case !errors.Is(err, db.ErrRunNotFound):
			return nil, RunRegistrationError(err)
		}
	}

	if fcID != "" {
		run, err := tx.FindRunByFlowcell(ctx, fcID)
		switch {
		case err == nil:
			// The flowcell belongs to a run with a different (or absent
			// lookup above) service request number.
			if srn != "" {
				return nil, RunKeyConflictError(srn, fcID)
			}
			return run, nil
		case !errors.Is(err, db.ErrRunNotFound):
			return nil, RunRegistrationError(err)
		}
	}

	return createRun(ctx, tx, meta, actorID)
}

// createRun registers a new run from the (defaults-applied) metadata.
func createRun(
	ctx context.Context,
	tx db.Tx,
	meta ingest.RunMetadata,
	actorID string,
) (*schema.SequencingRun, error) {
	runNumber, err := tx.NextRunNumber(ctx)
	if err != nil {
		return nil, RunRegistrationError(err)
	}

	run := &schema.SequencingRun{
		UUID:          uuid.New().String(),
		RunNumber:     runNumber,
		PoolName:      meta.PoolName,
		SequencerType: meta.SequencerType,
		BaseDirectory: meta.BaseDirectory,
		FilePatternR1: meta.FilePatternR1,
		FilePatternR2: meta.FilePatternR2,
		CreatedBy:     actorID,
	}
	if meta.ServiceRequestNumber != "" {
		run.ServiceRequestNumber = sql.NullString{
			String: meta.ServiceRequestNumber, Valid: true,
		}
	}
	if meta.FlowcellID != "" {
		run.FlowcellID = sql.NullString{
			String: meta.FlowcellID, Valid: true,
		}
	}
	if meta.CompletionDate != nil {
		run.CompletionDate = sql.NullTime{
			Time: *meta.CompletionDate, Valid: true,
		}
	}

	if err := tx.InsertRun(ctx, run); err != nil {
		return nil, RunRegistrationError(err)
	}
	return run, nil
}
