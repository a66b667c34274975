package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/seqlims/seqdb/internal/iodb"
	"github.com/seqlims/seqdb/internal/iolifecycle"
	"github.com/seqlims/seqdb/internal/ioquery"
	"github.com/spf13/cobra"
)

var (
	forceDelete bool
	deleteActor string
)

// getDeleteCmd returns the delete command.
func getDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <run-id>",
		Short: "Delete a sequencing run and all of its samples",
		Long: `Delete one sequencing run together with all of its samples.

The cascade is explicit and transactional: samples first, then the run,
either fully or not at all. Specimen records are never touched.

Examples:
  seqdb delete 17
  seqdb delete 17 --force`,
		Args: cobra.ExactArgs(1),
		RunE: runDelete,
	}

	cmd.Flags().BoolVar(&forceDelete, "force", false,
		"delete without confirmation prompt")
	cmd.Flags().StringVar(&deleteActor, "actor", "",
		"user recorded in the deletion log entry")

	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	cfg := getConfig()

	runID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid run id %q", args[0])
	}

	op := iodb.NewPgxOperator()
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer op.Close()

	store := iodb.NewPgxStore(op)

	// Show what is about to disappear before asking for confirmation.
	q := ioquery.New(store, cfg.JobsNumber)
	summary, err := q.Run(ctx, runID)
	if err != nil {
		return err
	}

	if !forceDelete {
		fmt.Printf(
			"\n⚠️  Run #%d has %d sample(s) (%d linked). "+
				"Deleting removes them permanently.\n",
			summary.Run.RunNumber, summary.TotalSamples, summary.Linked,
		)
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
	}

	lc := iolifecycle.New(store)
	if err := lc.DeleteRun(ctx, runID, deleteActor); err != nil {
		return err
	}

	fmt.Printf("✓ Deleted run #%d and %d sample(s)\n",
		summary.Run.RunNumber, summary.TotalSamples)
	return nil
}
