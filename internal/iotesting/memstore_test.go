package iotesting_test

import (
	"context"
	"testing"

	"github.com/seqlims/seqdb/internal/iotesting"
	"github.com/seqlims/seqdb/pkg/db"
	"github.com/seqlims/seqdb/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemStoreContract(t *testing.T) {
	var _ db.Store = iotesting.NewMemStore()
	assert.True(t, true, "MemStore should implement db.Store")
}

func TestMemStoreRollbackRestores(t *testing.T) {
	ctx := context.Background()
	store := iotesting.NewMemStore()

	tx, err := store.Begin(ctx)
	require.NoError(t, err)

	run := &schema.SequencingRun{RunNumber: 1}
	require.NoError(t, tx.InsertRun(ctx, run))
	require.NoError(t, tx.Rollback(ctx))

	assert.Empty(t, store.Runs())
}

func TestMemStoreRunNumberSurvivesRollback(t *testing.T) {
	ctx := context.Background()
	store := iotesting.NewMemStore()

	tx, err := store.Begin(ctx)
	require.NoError(t, err)
	n1, err := tx.NextRunNumber(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.Rollback(ctx))

	tx, err = store.Begin(ctx)
	require.NoError(t, err)
	n2, err := tx.NextRunNumber(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.Commit(ctx))

	// Sequence semantics: an aborted transaction burns its number.
	assert.Equal(t, n1+1, n2)
}

func TestMemStoreSpecimenLookup(t *testing.T) {
	ctx := context.Background()
	store := iotesting.NewMemStore()
	id := store.AddSpecimen(39552, "biopsy", "Celiac", "Smith Lab")

	tx, err := store.Begin(ctx)
	require.NoError(t, err)
	defer func() { _ = tx.Rollback(ctx) }()

	got, err := tx.FindSpecimenIDByNumber(ctx, 39552)
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = tx.FindSpecimenIDByNumber(ctx, 1)
	assert.ErrorIs(t, err, db.ErrSpecimenNotFound)
}
