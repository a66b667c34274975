// Package ioquery implements the seqdb.RunQuery interface: run
// listings with per-status sample counts and per-run sample listings
// with joined specimen display fields.
package ioquery

import (
	"context"
	"errors"

	"github.com/seqlims/seqdb/pkg/db"
	"github.com/seqlims/seqdb/pkg/schema"
	"github.com/seqlims/seqdb/pkg/seqdb"
	"golang.org/x/sync/errgroup"
)

// query implements seqdb.RunQuery over a store.
type query struct {
	store   db.Store
	jobsNum int
}

// New creates a RunQuery. jobsNum bounds the concurrent per-run count
// queries of Runs; values below one fall back to sequential.
func New(store db.Store, jobsNum int) seqdb.RunQuery {
	if jobsNum < 1 {
		jobsNum = 1
	}
	return &query{store: store, jobsNum: jobsNum}
}

// Runs returns all runs with their sample counts, newest first. The
// count aggregation fans out over the runs with a bounded errgroup.
func (q *query) Runs(ctx context.Context) ([]seqdb.RunSummary, error) {
	runs, err := q.store.ListRuns(ctx)
	if err != nil {
		return nil, RunsError(err)
	}

	res := make([]seqdb.RunSummary, len(runs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(q.jobsNum)
	for i := range runs {
		g.Go(func() error {
			summary, err := q.summarize(gctx, runs[i])
			if err != nil {
				return err
			}
			res[i] = *summary
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, RunsError(err)
	}

	return res, nil
}

// Run returns one run summary, or db.ErrRunNotFound.
func (q *query) Run(
	ctx context.Context,
	runID int64,
) (*seqdb.RunSummary, error) {
	run, err := q.store.GetRun(ctx, runID)
	if err != nil {
		if errors.Is(err, db.ErrRunNotFound) {
			return nil, RunNotFoundError(runID)
		}
		return nil, RunsError(err)
	}

	summary, err := q.summarize(ctx, *run)
	if err != nil {
		return nil, RunsError(err)
	}
	return summary, nil
}

// RunSamples returns the run's samples ordered by WUID ascending, each
// joined with specimen display fields when linked.
func (q *query) RunSamples(
	ctx context.Context,
	runID int64,
) ([]db.SampleWithSpecimen, error) {
	// The run must exist; an empty sample list is a valid answer only
	// for a registered run.
	if _, err := q.store.GetRun(ctx, runID); err != nil {
		if errors.Is(err, db.ErrRunNotFound) {
			return nil, RunNotFoundError(runID)
		}
		return nil, SamplesError(err)
	}

	samples, err := q.store.ListRunSamples(ctx, runID)
	if err != nil {
		return nil, SamplesError(err)
	}
	return samples, nil
}

// summarize attaches per-status counts to one run.
func (q *query) summarize(
	ctx context.Context,
	run schema.SequencingRun,
) (*seqdb.RunSummary, error) {
	counts, err := q.store.CountSamplesByStatus(ctx, run.ID)
	if err != nil {
		return nil, err
	}

	summary := &seqdb.RunSummary{
		Run:     run,
		Linked:  counts[schema.LinkStatusLinked],
		NoMatch: counts[schema.LinkStatusNoMatch],
		Failed:  counts[schema.LinkStatusFailed],
	}
	summary.TotalSamples = summary.Linked + summary.NoMatch + summary.Failed
	return summary, nil
}
