// Package ioschema implements the seqdb.SchemaManager interface for
// database schema management. This is an impure I/O package that wraps
// GORM AutoMigrate functionality.
package ioschema

import (
	"context"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/seqlims/seqdb/pkg/db"
	"github.com/seqlims/seqdb/pkg/schema"
	"github.com/seqlims/seqdb/pkg/seqdb"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// manager implements seqdb.SchemaManager using GORM AutoMigrate.
type manager struct {
	operator db.Operator
}

// NewManager creates a new SchemaManager.
func NewManager(op db.Operator) seqdb.SchemaManager {
	return &manager{operator: op}
}

// Create creates the initial database schema using GORM AutoMigrate
// and provisions the run-number sequence.
func (m *manager) Create(ctx context.Context) error {
	gormDB, err := m.gorm()
	if err != nil {
		return err
	}

	if err := schema.Migrate(gormDB); err != nil {
		return CreateSchemaError(err)
	}

	return m.createRunNumberSequence(ctx)
}

// Migrate updates the database schema to the latest version using
// GORM AutoMigrate. Safe to run multiple times.
func (m *manager) Migrate(ctx context.Context) error {
	gormDB, err := m.gorm()
	if err != nil {
		return err
	}

	if err := schema.Migrate(gormDB); err != nil {
		return MigrateSchemaError(err)
	}

	return m.createRunNumberSequence(ctx)
}

// gorm opens a GORM session over the operator's pgx pool.
func (m *manager) gorm() (*gorm.DB, error) {
	pool := m.operator.Pool()
	if pool == nil {
		return nil, NotConnectedError()
	}

	sqlDB := stdlib.OpenDBFromPool(pool)

	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{Conn: sqlDB}),
		&gorm.Config{},
	)
	if err != nil {
		return nil, GORMConnectionError(err)
	}
	return gormDB, nil
}

// createRunNumberSequence provisions the sequence that allocates
// human-facing run numbers. AutoMigrate does not manage sequences, so
// it is created here explicitly; the DDL is idempotent.
func (m *manager) createRunNumberSequence(ctx context.Context) error {
	pool := m.operator.Pool()
	if pool == nil {
		return NotConnectedError()
	}

	if _, err := pool.Exec(ctx, schema.RunNumberSequenceDDL); err != nil {
		return SequenceError(err)
	}
	return nil
}
