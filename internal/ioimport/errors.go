package ioimport

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/seqlims/seqdb/pkg/errcode"
)

// ManifestOpenError creates an error for a batch manifest that could
// not be opened.
func ManifestOpenError(path string, err error) error {
	msg := `Could not open batch manifest <em>%s</em>

<em>How to fix:</em>
  1. Check the file exists and is readable
  2. Check the file is a SQLite batch manifest`
	vars := []any{path}

	return &gn.Error{
		Code: errcode.ImportManifestOpenError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to open manifest %s: %w", path, err),
	}
}

// ManifestReadError creates an error for a manifest that opened but
// could not be read.
func ManifestReadError(path string, err error) error {
	msg := `Could not read batch manifest <em>%s</em>

<em>Possible causes:</em>
  - The manifest is missing the run_info or samples table
  - The manifest was produced by an incompatible exporter`
	vars := []any{path}

	return &gn.Error{
		Code: errcode.ImportManifestReadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to read manifest %s: %w", path, err),
	}
}

// RunRegistrationError creates an error for a failed find-or-create of
// the owning run. The whole batch rolls back.
func RunRegistrationError(err error) error {
	msg := "Could not register the sequencing run; nothing was imported"

	return &gn.Error{
		Code: errcode.ImportRunRegistrationError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("failed to register run: %w", err),
	}
}

// RunKeyConflictError creates an error for run metadata whose keys
// contradict an already registered run.
func RunKeyConflictError(serviceRequestNumber, flowcellID string) error {
	msg := `Run keys conflict with an existing run

Service request <em>%s</em> and flowcell <em>%s</em> do not belong to
the same registered run. Nothing was imported.

<em>How to fix:</em>
  1. Check the batch metadata for a mistyped key
  2. Inspect the existing runs with:
     <em>seqdb runs</em>`
	vars := []any{serviceRequestNumber, flowcellID}

	return &gn.Error{
		Code: errcode.ImportRunKeyConflictError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf(
			"run key conflict: service_request_number=%q flowcell_id=%q",
			serviceRequestNumber, flowcellID,
		),
	}
}

// SampleInsertError creates an error for a sample row that could not
// be persisted. The whole batch rolls back.
func SampleInsertError(facilitySampleName string, err error) error {
	msg := `Could not persist sample <em>%s</em>; nothing was imported`
	vars := []any{facilitySampleName}

	return &gn.Error{
		Code: errcode.ImportSampleInsertError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("failed to insert sample %q: %w",
			facilitySampleName, err),
	}
}

// CommitError creates an error for a failed import commit.
func CommitError(err error) error {
	msg := "Could not commit the import transaction; nothing was imported"

	return &gn.Error{
		Code: errcode.ImportCommitError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("failed to commit import: %w", err),
	}
}
