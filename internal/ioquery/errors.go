package ioquery

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/seqlims/seqdb/pkg/db"
	"github.com/seqlims/seqdb/pkg/errcode"
)

// RunNotFoundError creates an error for a run id that does not exist.
// It wraps db.ErrRunNotFound so callers can branch on the sentinel.
func RunNotFoundError(runID int64) error {
	msg := `Sequencing run <em>%d</em> does not exist

<em>How to fix:</em>
  1. List the known runs with:
     <em>seqdb runs</em>`
	vars := []any{runID}

	return &gn.Error{
		Code: errcode.QueryRunNotFoundError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("run %d: %w", runID, db.ErrRunNotFound),
	}
}

// RunsError creates an error for a failed run listing or aggregation.
func RunsError(err error) error {
	msg := "Could not read sequencing runs"

	return &gn.Error{
		Code: errcode.QueryRunsError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("failed to query runs: %w", err),
	}
}

// SamplesError creates an error for a failed sample listing.
func SamplesError(err error) error {
	msg := "Could not read the run's samples"

	return &gn.Error{
		Code: errcode.QuerySamplesError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("failed to query samples: %w", err),
	}
}
