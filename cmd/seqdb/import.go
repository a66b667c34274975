package main

import (
	"context"
	"fmt"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gnfmt"
	"github.com/seqlims/seqdb/internal/iodb"
	"github.com/seqlims/seqdb/internal/iofacility"
	"github.com/seqlims/seqdb/internal/ioimport"
	"github.com/seqlims/seqdb/pkg/config"
	"github.com/seqlims/seqdb/pkg/facility"
	"github.com/seqlims/seqdb/pkg/ingest"
	"github.com/seqlims/seqdb/pkg/parserpool"
	"github.com/spf13/cobra"
)

var (
	facilityProfile string
	actorID         string
)

// getImportCmd returns the import command.
func getImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <manifest>",
		Short: "Import a facility batch manifest",
		Long: `Import one sequencing facility batch from a SQLite manifest.

The whole batch runs in a single transaction:
  1. The owning run is found or registered exactly once; re-importing
     the same batch reuses the first-created run untouched
  2. Every sample row is persisted, linked to its specimen via the
     WUID extracted from the facility sample name
  3. Rows whose WUID matches no specimen persist as no_match;
     rows without an extractable identifier are reported and skipped

A batch either fully commits or fully rolls back.

Examples:
  seqdb import batch.sqlite
  seqdb import batch.sqlite --facility vienna-core --actor alice`,
		Args: cobra.ExactArgs(1),
		RunE: runImport,
	}

	cmd.Flags().StringVar(&facilityProfile, "facility", "",
		"facility profile from facilities.yaml supplying run defaults")
	cmd.Flags().StringVar(&actorID, "actor", "",
		"user recorded as creator of a newly registered run")

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	cfg := getConfig()
	start := time.Now()

	if facilityProfile != "" {
		cfg.Update([]config.Option{
			config.OptImportFacilityProfile(facilityProfile),
		})
	}
	if actorID != "" {
		cfg.Update([]config.Option{config.OptImportActorID(actorID)})
	}

	manifest, err := ioimport.OpenManifest(args[0])
	if err != nil {
		return err
	}
	defer manifest.Close()

	meta, err := manifest.RunMetadata()
	if err != nil {
		return err
	}

	profile, err := loadProfile(cfg)
	if err != nil {
		return err
	}
	facility.ApplyDefaults(&meta, profile)

	var op = iodb.NewPgxOperator()
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer op.Close()

	parsers := parserpool.NewPool(cfg.JobsNumber)
	defer parsers.Close()

	importer := ioimport.New(iodb.NewPgxStore(op), parsers)

	total, err := manifest.CountSamples()
	if err != nil {
		return err
	}

	// The manifest is read up front; the batch is one transaction, so
	// rows cannot be persisted while the file is still being read.
	bar := newProgressBar(total, "reading manifest ")
	rows := make([]ingest.SampleRow, 0, total)
	err = manifest.SampleRows(
		cfg.Database.BatchSize,
		func(batch []ingest.SampleRow) error {
			rows = append(rows, batch...)
			bar.Add(len(batch))
			return nil
		},
	)
	bar.Finish()
	if err != nil {
		return err
	}

	res, err := importer.Import(ctx, rows, meta, cfg.Import.ActorID)
	if err != nil {
		return err
	}

	fmt.Printf("\n✓ Imported run #%d in %s\n",
		res.RunNumber, gnfmt.TimeString(time.Since(start).Seconds()))
	fmt.Printf("  persisted: %s\n", humanize.Comma(int64(res.SuccessCount)))
	fmt.Printf("  linked:    %s\n", humanize.Comma(int64(res.LinkedCount)))
	fmt.Printf("  no match:  %s\n", humanize.Comma(int64(res.NoMatchCount)))
	fmt.Printf("  failed:    %s\n", humanize.Comma(int64(res.FailedCount)))

	if len(res.Errors) > 0 {
		fmt.Printf("\n%d row(s) could not be imported:\n", len(res.Errors))
		for _, re := range res.Errors {
			fmt.Printf("  row %d (%s): %s\n",
				re.RowIndex, re.FacilitySampleName, re.Error)
		}
	}

	return nil
}

// loadProfile resolves the configured facility profile, or nil when
// none was requested. Validation warnings are printed, not fatal.
func loadProfile(cfg *config.Config) (*facility.Profile, error) {
	path := config.FacilitiesFilePath(cfg.HomeDir)
	facilities, err := iofacility.New(path).Load()
	if err != nil {
		return nil, err
	}

	for _, w := range facilities.Warnings {
		fmt.Printf("Warning: facilities.yaml profile %q field %q: %s (%s)\n",
			w.Profile, w.Field, w.Message, w.Suggestion)
	}

	if cfg.Import.FacilityProfile == "" {
		return nil, nil
	}

	profile, ok := facilities.Profile(cfg.Import.FacilityProfile)
	if !ok {
		return nil, iofacility.ProfileNotFoundError(
			cfg.Import.FacilityProfile, path,
		)
	}
	return profile, nil
}

// newProgressBar creates a new progress bar with consistent settings.
func newProgressBar(total int, prefix string) *pb.ProgressBar {
	bar := pb.Full.Start(total)
	bar.Set("prefix", prefix)
	bar.Set(pb.CleanOnFinish, true)
	return bar
}
