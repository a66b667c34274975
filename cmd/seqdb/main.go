// Package main provides the seqdb CLI application.
// seqdb ingests sequencing facility batches into the LIMS database and
// links imported samples to specimen records.
package main

import (
	"os"
)

var (
	// Version is set by build flags
	Version = "dev"
)

func main() {
	if err := getRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
