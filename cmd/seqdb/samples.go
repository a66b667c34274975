package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/gnames/gnfmt"
	"github.com/seqlims/seqdb/internal/iodb"
	"github.com/seqlims/seqdb/internal/ioquery"
	"github.com/seqlims/seqdb/pkg/db"
	"github.com/spf13/cobra"
)

var samplesFormat string

// getSamplesCmd returns the samples command.
func getSamplesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "samples <run-id>",
		Short: "List the samples of one sequencing run",
		Long: `List all samples of a sequencing run, ordered by WUID, with the
link status and the linked specimen's display fields.

Examples:
  seqdb samples 17
  seqdb samples 17 --format json`,
		Args: cobra.ExactArgs(1),
		RunE: runSamples,
	}

	cmd.Flags().StringVar(&samplesFormat, "format", "table",
		"output format: table or json")

	return cmd
}

func runSamples(cmd *cobra.Command, args []string) error {
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

	q := ioquery.New(iodb.NewPgxStore(op), cfg.JobsNumber)
	samples, err := q.RunSamples(ctx, runID)
	if err != nil {
		return err
	}

	if samplesFormat == "json" {
		enc := gnfmt.GNjson{Pretty: true}
		out, err := enc.Encode(samples)
		if err != nil {
			return fmt.Errorf("failed to encode samples: %w", err)
		}
		fmt.Println(string(out))
		return nil
	}

	printSamplesTable(samples)
	return nil
}

func printSamplesTable(samples []db.SampleWithSpecimen) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w,
		"WUID\tSAMPLE\tLIBRARY\tSPECIES\tSTATUS\tSPECIMEN\tPROJECT\tCOLLABORATOR")
	for _, s := range samples {
		wuid := ""
		if s.WUID.Valid {
			wuid = strconv.FormatInt(s.WUID.Int64, 10)
		}
		specimen := ""
		if s.SpecimenID.Valid {
			specimen = fmt.Sprintf("%d %s",
				s.SpecimenNumber, s.SpecimenDescription)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			wuid, s.FacilitySampleName, s.LibraryID, s.Species,
			s.LinkStatus, specimen, s.ProjectName, s.CollaboratorName,
		)
	}
	w.Flush()
}
