package iodb_test

import (
	"context"
	"testing"

	"github.com/seqlims/seqdb/internal/iodb"
	"github.com/seqlims/seqdb/internal/iotesting"
	"github.com/seqlims/seqdb/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestOperatorContract ensures the pgx operator satisfies db.Operator.
func TestOperatorContract(t *testing.T) {
	var _ db.Operator = iodb.NewPgxOperator()
	assert.True(t, true, "pgxOperator should implement db.Operator")
}

// TestConnectIntegration verifies pool creation against the test
// database.
func TestConnectIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	ctx := context.Background()
	cfg := iotesting.GetTestDatabaseConfig()

	op := iodb.NewPgxOperator()
	err := op.Connect(ctx, cfg)
	require.NoError(t, err)
	defer op.Close()

	require.NotNil(t, op.Pool())

	// Store construction requires a connected operator.
	store := iodb.NewPgxStore(op)
	var _ db.Store = store

	// A transaction must open and release cleanly.
	tx, err := store.Begin(ctx)
	require.NoError(t, err)
	assert.NoError(t, tx.Rollback(ctx))
}

// TestConnectBadConfig verifies that an unreachable server surfaces a
// connection error rather than a panic or hang.
func TestConnectBadConfig(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	ctx := context.Background()
	cfg := iotesting.GetTestDatabaseConfig()
	cfg.Port = 1 // nothing listens here

	op := iodb.NewPgxOperator()
	err := op.Connect(ctx, cfg)
	assert.Error(t, err)
}
