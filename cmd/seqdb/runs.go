package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/gnames/gnfmt"
	"github.com/seqlims/seqdb/internal/iodb"
	"github.com/seqlims/seqdb/internal/ioquery"
	"github.com/seqlims/seqdb/pkg/seqdb"
	"github.com/spf13/cobra"
)

var runsFormat string

// getRunsCmd returns the runs command.
func getRunsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List sequencing runs with link statistics",
		Long: `List all sequencing runs, newest first, with per-run sample counts
broken down by link status.

Examples:
  seqdb runs
  seqdb runs --format json`,
		RunE: runRuns,
	}

	cmd.Flags().StringVar(&runsFormat, "format", "table",
		"output format: table or json")

	return cmd
}

func runRuns(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	cfg := getConfig()

	op := iodb.NewPgxOperator()
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer op.Close()

	q := ioquery.New(iodb.NewPgxStore(op), cfg.JobsNumber)
	summaries, err := q.Runs(ctx)
	if err != nil {
		return err
	}

	if runsFormat == "json" {
		enc := gnfmt.GNjson{Pretty: true}
		out, err := enc.Encode(summaries)
		if err != nil {
			return fmt.Errorf("failed to encode runs: %w", err)
		}
		fmt.Println(string(out))
		return nil
	}

	printRunsTable(summaries)
	return nil
}

func printRunsTable(summaries []seqdb.RunSummary) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w,
		"RUN\tSERVICE REQUEST\tFLOWCELL\tSEQUENCER\tSAMPLES\tLINKED\tNO MATCH\tFAILED\tCREATED")
	for _, s := range summaries {
		srn := s.Run.ServiceRequestNumber.String
		fc := s.Run.FlowcellID.String
		fmt.Fprintf(w, "#%d\t%s\t%s\t%s\t%d\t%d\t%d\t%d\t%s\n",
			s.Run.RunNumber, srn, fc, s.Run.SequencerType,
			s.TotalSamples, s.Linked, s.NoMatch, s.Failed,
			s.Run.CreatedAt.Format("2006-01-02"),
		)
	}
	w.Flush()
}
