package iofacility

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/seqlims/seqdb/pkg/errcode"
)

// ReadError creates an error for a failed facilities file read.
func ReadError(path string, err error) error {
	msg := `Could not read facilities file <em>%s</em>

<em>How to fix:</em>
  1. Check the file exists and is readable
  2. Remove the file; a default template is written on the next run`
	vars := []any{path}

	return &gn.Error{
		Code: errcode.FacilityConfigReadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to read facilities file %s: %w", path, err),
	}
}

// ParseError creates an error for a malformed facilities file.
func ParseError(path string, err error) error {
	msg := `Could not parse facilities file <em>%s</em>

<em>How to fix:</em>
  1. Check the YAML syntax
  2. Remove the file; a default template is written on the next run`
	vars := []any{path}

	return &gn.Error{
		Code: errcode.FacilityConfigParseError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to parse facilities file %s: %w", path, err),
	}
}

// ProfileNotFoundError creates an error for a facility profile name
// that is absent from the facilities file.
func ProfileNotFoundError(name, path string) error {
	msg := `Facility profile <em>%s</em> not found in <em>%s</em>

<em>How to fix:</em>
  1. Check the profile name spelling
  2. Add the profile to the facilities file`
	vars := []any{name, path}

	return &gn.Error{
		Code: errcode.FacilityProfileNotFoundError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("facility profile %q not found in %s",
			name, path),
	}
}
