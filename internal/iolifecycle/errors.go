package iolifecycle

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/seqlims/seqdb/pkg/db"
	"github.com/seqlims/seqdb/pkg/errcode"
)

// RunNotFoundError creates an error for a delete of a run that does
// not exist. It wraps db.ErrRunNotFound so callers can branch on the
// sentinel.
func RunNotFoundError(runID int64) error {
	msg := `Sequencing run <em>%d</em> does not exist; nothing deleted

<em>How to fix:</em>
  1. List the known runs with:
     <em>seqdb runs</em>`
	vars := []any{runID}

	return &gn.Error{
		Code: errcode.DeleteRunNotFoundError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("delete run %d: %w", runID, db.ErrRunNotFound),
	}
}

// DeleteRunError creates an error for a failed run deletion. The
// transaction rolls back; run and samples stay intact.
func DeleteRunError(runID int64, err error) error {
	msg := `Could not delete sequencing run <em>%d</em>; nothing was removed`
	vars := []any{runID}

	return &gn.Error{
		Code: errcode.DeleteRunError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to delete run %d: %w", runID, err),
	}
}
