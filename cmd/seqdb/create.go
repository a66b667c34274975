package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/seqlims/seqdb/internal/iodb"
	"github.com/seqlims/seqdb/internal/ioschema"
	"github.com/seqlims/seqdb/pkg/db"
	"github.com/seqlims/seqdb/pkg/seqdb"
	"github.com/spf13/cobra"
)

var forceCreate bool

// getCreateCmd returns the create command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create the database schema",
		Long: `Create the seqdb database schema.

This command:
  1. Connects to PostgreSQL using configuration settings
  2. Creates the sequencing_runs, sequencing_samples and specimens
     tables using GORM AutoMigrate
  3. Provisions the run-number sequence

Examples:
  seqdb create
  seqdb create --force
  seqdb create --config custom.yaml`,
		RunE: runCreate,
	}

	cmd.Flags().BoolVar(&forceCreate, "force", false,
		"drop existing tables before creating schema (destructive)")

	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	cfg := getConfig()

	var op db.Operator = iodb.NewPgxOperator()
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer op.Close()

	fmt.Printf("Connected to database: %s@%s:%d/%s\n",
		cfg.Database.User, cfg.Database.Host,
		cfg.Database.Port, cfg.Database.Database)

	hasTables, err := op.HasTables(ctx)
	if err != nil {
		return fmt.Errorf("failed to check for existing tables: %w", err)
	}

	if hasTables {
		if forceCreate {
			fmt.Println("Dropping all existing tables (--force enabled)...")
			if err := op.DropAllTables(ctx); err != nil {
				return fmt.Errorf("failed to drop tables: %w", err)
			}
			fmt.Println("✓ All tables dropped")
		} else {
			fmt.Println("\n⚠️  Warning: Database contains existing tables.")
			fmt.Println("Creating schema will drop ALL existing tables and data.")
			fmt.Print("\nDo you want to continue? (yes/no): ")

			reader := bufio.NewReader(os.Stdin)
			response, err := reader.ReadString('\n')
			if err != nil {
				return fmt.Errorf("failed to read user input: %w", err)
			}

			response = strings.TrimSpace(strings.ToLower(response))
			if response != "yes" && response != "y" {
				fmt.Println("Aborted. No changes made to the database.")
				return nil
			}

			fmt.Println("Dropping all existing tables...")
			if err := op.DropAllTables(ctx); err != nil {
				return fmt.Errorf("failed to drop tables: %w", err)
			}
			fmt.Println("✓ All tables dropped")
		}
	}

	var sm seqdb.SchemaManager = ioschema.NewManager(op)

	fmt.Println("Creating schema using GORM AutoMigrate...")
	if err := sm.Create(ctx); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	fmt.Println("\n✓ Database schema creation complete!")
	fmt.Println("\nNext steps:")
	fmt.Println("  - Run 'seqdb import <manifest>' to import a facility batch")
	fmt.Println("  - Run 'seqdb runs' to list sequencing runs")

	return nil
}
