package iolifecycle_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/seqlims/seqdb/internal/iolifecycle"
	"github.com/seqlims/seqdb/internal/iotesting"
	"github.com/seqlims/seqdb/pkg/db"
	"github.com/seqlims/seqdb/pkg/schema"
	"github.com/seqlims/seqdb/pkg/seqdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedRun registers a run with sampleCount samples and returns its id.
func seedRun(
	t *testing.T,
	store *iotesting.MemStore,
	srn string,
	sampleCount int,
) int64 {
	t.Helper()
	ctx := context.Background()

	tx, err := store.Begin(ctx)
	require.NoError(t, err)

	number, err := tx.NextRunNumber(ctx)
	require.NoError(t, err)
	run := &schema.SequencingRun{
		RunNumber: number,
		ServiceRequestNumber: sql.NullString{
			String: srn, Valid: true,
		},
		SequencerType: "NovaSeq",
	}
	require.NoError(t, tx.InsertRun(ctx, run))

	for i := 0; i < sampleCount; i++ {
		sample := &schema.SequencingSample{
			SequencingRunID:    run.ID,
			FacilitySampleName: srn,
			LinkStatus:         schema.LinkStatusNoMatch,
		}
		require.NoError(t, tx.InsertSample(ctx, sample))
	}

	require.NoError(t, tx.Commit(ctx))
	return run.ID
}

func TestDeleteRunCascade(t *testing.T) {
	store := iotesting.NewMemStore()
	store.AddSpecimen(10, "kept", "", "")
	id1 := seedRun(t, store, "SR-1", 3)
	id2 := seedRun(t, store, "SR-2", 2)

	lc := iolifecycle.New(store)
	require.NoError(t, lc.DeleteRun(context.Background(), id1, "alice"))

	// The run and its samples are gone; the other run is untouched.
	runs := store.Runs()
	require.Len(t, runs, 1)
	assert.Equal(t, id2, runs[0].ID)

	for _, s := range store.Samples() {
		assert.Equal(t, id2, s.SequencingRunID)
	}
	assert.Len(t, store.Samples(), 2)
}

func TestDeleteRunNotFound(t *testing.T) {
	store := iotesting.NewMemStore()
	seedRun(t, store, "SR-1", 1)

	lc := iolifecycle.New(store)
	err := lc.DeleteRun(context.Background(), 999, "alice")
	require.Error(t, err)
	assert.True(t, errors.Is(err, db.ErrRunNotFound),
		"error should wrap the sentinel")

	// Nothing was removed.
	assert.Len(t, store.Runs(), 1)
	assert.Len(t, store.Samples(), 1)
}

func TestDeleteRunCommitFailure(t *testing.T) {
	store := iotesting.NewMemStore()
	id := seedRun(t, store, "SR-1", 2)
	store.FailCommit = true

	lc := iolifecycle.New(store)
	err := lc.DeleteRun(context.Background(), id, "alice")
	require.Error(t, err)

	// The rollback restored run and samples.
	assert.Len(t, store.Runs(), 1)
	assert.Len(t, store.Samples(), 2)
}

func TestLifecycleContract(t *testing.T) {
	var _ seqdb.RunLifecycle = iolifecycle.New(iotesting.NewMemStore())
	assert.True(t, true, "lifecycle should implement seqdb.RunLifecycle")
}
