// Package ingest provides the pure domain types and deterministic
// transforms of the sequencing-run import pipeline: WUID extraction
// from facility sample names, numeric normalization, and fastq path
// construction. This is a pure package - no I/O, no database access.
package ingest

import (
	"strconv"
	"strings"
)

// ExtractWUID derives the numeric specimen join key from an
// underscore-delimited composite facility sample name, for example
// "I13129_39552_Celiac_023_duo_V1". The WUID is the integer at token
// index 1.
//
// The second return value is false when no identifier can be derived:
// empty string, fewer than two tokens, or a non-integer second token.
// Absence is a normal, representable result, not an error; the importer
// consumes it as an input to row classification.
func ExtractWUID(facilitySampleName string) (int64, bool) {
	if facilitySampleName == "" {
		return 0, false
	}
	tokens := strings.Split(facilitySampleName, "_")
	if len(tokens) < 2 {
		return 0, false
	}
	wuid, err := strconv.ParseInt(tokens[1], 10, 64)
	if err != nil {
		return 0, false
	}
	return wuid, true
}

// NormalizeCount parses a count value that may carry comma thousands
// separators, for example "1,613,040". The second return value is false
// when the input is empty or unparseable; absent values must stay null
// downstream, never be coerced to zero.
func NormalizeCount(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	s = strings.ReplaceAll(s, ",", "")
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// BuildReadPaths constructs the pair of raw-data fastq paths as
//
//	{baseDir, trailing slash stripped}/{runIdentifier}_{libraryName}{pattern}
//
// runIdentifier is the run's service request number when present,
// otherwise its flowcell id. Both paths are empty (ok=false) when no
// library name is available - the caller persists NULL, never a
// malformed string. Pure construction only; nothing is checked on disk.
func BuildReadPaths(
	baseDir, runIdentifier, libraryName, patternR1, patternR2 string,
) (r1, r2 string, ok bool) {
	if libraryName == "" {
		return "", "", false
	}
	base := strings.TrimRight(baseDir, "/")
	stem := base + "/" + runIdentifier + "_" + libraryName
	return stem + patternR1, stem + patternR2, true
}
