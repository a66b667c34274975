// Package ioimport implements the seqdb.Importer interface: one batch
// of facility sample metadata is persisted inside a single database
// transaction, with per-row specimen linking. This is an impure I/O
// package; the pure transforms it applies live in pkg/ingest.
package ioimport

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gnames/gnuuid"
	"github.com/seqlims/seqdb/pkg/db"
	"github.com/seqlims/seqdb/pkg/facility"
	"github.com/seqlims/seqdb/pkg/ingest"
	"github.com/seqlims/seqdb/pkg/parserpool"
	"github.com/seqlims/seqdb/pkg/schema"
	"github.com/seqlims/seqdb/pkg/seqdb"
)

// importer implements seqdb.Importer over a transactional store.
type importer struct {
	store   db.Store
	parsers parserpool.Pool
}

// New creates an Importer. The parser pool canonicalizes species
// strings; pass a pool sized to the configured jobs number.
func New(store db.Store, parsers parserpool.Pool) seqdb.Importer {
	return &importer{store: store, parsers: parsers}
}

// Import persists one facility batch. The whole batch runs in a single
// transaction: the owning run is found or registered exactly once, then
// every row is processed sequentially. Business outcomes (no extractable
// identifier, no specimen match) never abort the batch; registration
// failures, insert failures and commit failures roll back everything.
func (im *importer) Import(
	ctx context.Context,
	rows []ingest.SampleRow,
	meta ingest.RunMetadata,
	actorID string,
) (*ingest.ImportResult, error) {
	// Built-in defaults apply even when no facility profile was given.
	facility.ApplyDefaults(&meta, nil)

	tx, err := im.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	// Rollback after Commit is a no-op; the deferred call is the
	// guaranteed-release path for every early return.
	defer func() { _ = tx.Rollback(ctx) }()

	run, err := registerRun(ctx, tx, meta, actorID)
	if err != nil {
		return nil, err
	}

	res := &ingest.ImportResult{
		RunID:     run.ID,
		RunNumber: run.RunNumber,
	}

	runIdentifier := meta.Identifier()
	for i := range rows {
		row := rows[i]

		wuid, ok := ingest.ExtractWUID(row.FacilitySampleName)
		if !ok {
			// No join key can be derived; the row is reported, counted
			// as failed, and not persisted.
			res.FailedCount++
			res.Errors = append(res.Errors, ingest.RowError{
				RowIndex:           i,
				FacilitySampleName: row.FacilitySampleName,
				Error:              "no specimen identifier in facility sample name",
			})
			continue
		}

		outcome := resolveSpecimen(ctx, tx, wuid)
		sample := im.buildSample(run, runIdentifier, row, wuid, outcome)

		if err := tx.InsertSample(ctx, sample); err != nil {
			return nil, SampleInsertError(row.FacilitySampleName, err)
		}

		res.SuccessCount++
		switch outcome.(type) {
		case ingest.Linked:
			res.LinkedCount++
		case ingest.NoMatch:
			res.NoMatchCount++
		case ingest.LinkFailed:
			res.FailedCount++
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, CommitError(err)
	}

	slog.Info("imported facility batch",
		"run_number", run.RunNumber,
		"rows", len(rows),
		"persisted", res.SuccessCount,
		"linked", res.LinkedCount,
		"no_match", res.NoMatchCount,
		"failed", res.FailedCount,
	)
	return res, nil
}

// buildSample maps one parsed row plus its link outcome to the
// persistable sample record. All nullable columns are derived here;
// absent values stay null, never zero.
func (im *importer) buildSample(
	run *schema.SequencingRun,
	runIdentifier string,
	row ingest.SampleRow,
	wuid int64,
	outcome ingest.LinkOutcome,
) *schema.SequencingSample {
	sample := &schema.SequencingSample{
		SampleUUID: gnuuid.New(
			runIdentifier + "|" + row.FacilitySampleName,
		).String(),
		SequencingRunID:    run.ID,
		FacilitySampleName: row.FacilitySampleName,
		WUID:               sql.NullInt64{Int64: wuid, Valid: true},
		LibraryID:          row.LibraryID,
		ESPID:              row.ESPID,
		IndexSequence:      row.IndexSequence,
		FlowcellLane:       row.FlowcellLane,
		Species:            row.Species,
		LibraryType:        row.LibraryType,
		SampleType:         row.SampleType,

		PctQ30R1:        toNullFloat(row.PctQ30R1),
		PctQ30R2:        toNullFloat(row.PctQ30R2),
		AvgQScoreR1:     toNullFloat(row.AvgQScoreR1),
		AvgQScoreR2:     toNullFloat(row.AvgQScoreR2),
		PhixErrorR1:     toNullFloat(row.PhixErrorR1),
		PhixErrorR2:     toNullFloat(row.PhixErrorR2),
		PctPassFilterR1: toNullFloat(row.PctPassFilterR1),
		PctPassFilterR2: toNullFloat(row.PctPassFilterR2),
	}

	if n, ok := ingest.NormalizeCount(row.TotalReads); ok {
		sample.TotalReads = sql.NullInt64{Int64: n, Valid: true}
	}
	if n, ok := ingest.NormalizeCount(row.TotalBases); ok {
		sample.TotalBases = sql.NullInt64{Int64: n, Valid: true}
	}

	if canonical, ok := im.parsers.Canonical(row.Species); ok {
		sample.SpeciesCanonical = sql.NullString{
			String: canonical, Valid: true,
		}
	}

	r1, r2, ok := ingest.BuildReadPaths(
		run.BaseDirectory, runIdentifier, row.LibraryID,
		run.FilePatternR1, run.FilePatternR2,
	)
	if ok {
		sample.FastqR1Path = sql.NullString{String: r1, Valid: true}
		sample.FastqR2Path = sql.NullString{String: r2, Valid: true}
	}

	switch o := outcome.(type) {
	case ingest.Linked:
		sample.LinkStatus = schema.LinkStatusLinked
		sample.SpecimenID = sql.NullInt64{Int64: o.SpecimenID, Valid: true}
		sample.LinkedAt = sql.NullTime{Time: o.LinkedAt, Valid: true}
	case ingest.NoMatch:
		sample.LinkStatus = schema.LinkStatusNoMatch
		sample.LinkError = sql.NullString{String: o.Reason, Valid: true}
	case ingest.LinkFailed:
		sample.LinkStatus = schema.LinkStatusFailed
		sample.LinkError = sql.NullString{
			String: o.Err.Error(), Valid: true,
		}
	}

	return sample
}

// resolveSpecimen classifies one row's specimen association. A missing
// specimen is a business outcome; any other lookup error is captured as
// a failed link, and the row still persists.
func resolveSpecimen(
	ctx context.Context,
	tx db.Tx,
	wuid int64,
) ingest.LinkOutcome {
	specimenID, err := tx.FindSpecimenIDByNumber(ctx, wuid)
	switch {
	case err == nil:
		return ingest.Linked{SpecimenID: specimenID, LinkedAt: time.Now()}
	case errors.Is(err, db.ErrSpecimenNotFound):
		return ingest.NoMatch{
			Reason: fmt.Sprintf("no specimen with number %d", wuid),
		}
	default:
		return ingest.LinkFailed{Err: err}
	}
}

func toNullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}
