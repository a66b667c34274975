package main

import (
	"context"
	"fmt"

	"github.com/seqlims/seqdb/internal/iodb"
	"github.com/seqlims/seqdb/internal/ioschema"
	"github.com/seqlims/seqdb/pkg/db"
	"github.com/seqlims/seqdb/pkg/seqdb"
	"github.com/spf13/cobra"
)

// getMigrateCmd returns the migrate command.
func getMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply schema migrations",
		Long: `Update the seqdb database schema to the latest version.

GORM AutoMigrate adds missing tables, columns and indexes; it never
drops existing data. Safe to run multiple times.

Examples:
  seqdb migrate
  seqdb migrate --config custom.yaml`,
		RunE: runMigrate,
	}
	return cmd
}

func runMigrate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	cfg := getConfig()

	var op db.Operator = iodb.NewPgxOperator()
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer op.Close()

	var sm seqdb.SchemaManager = ioschema.NewManager(op)

	fmt.Println("Migrating schema using GORM AutoMigrate...")
	if err := sm.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	fmt.Println("✓ Database schema is up to date")
	return nil
}
