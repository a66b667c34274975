// Package iofacility loads sequencing facility profiles from
// facilities.yaml. This is an impure package that handles file system
// operations.
package iofacility

import (
	"os"

	"github.com/seqlims/seqdb/pkg/facility"
	"gopkg.in/yaml.v3"
)

// facilities implements facility.Facilities over a YAML file on disk.
type facilities struct {
	path string
}

// New creates a loader for the facilities.yaml at the given path.
func New(path string) facility.Facilities {
	return &facilities{path: path}
}

// Load reads and parses the facilities file. A missing file is not an
// error: imports can run without profiles, falling back to built-in
// defaults. Parse failures are fatal because a half-read configuration
// could silently misattribute runs to the wrong facility.
func (f *facilities) Load() (*facility.FacilitiesConfig, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &facility.FacilitiesConfig{}, nil
		}
		return nil, ReadError(f.path, err)
	}

	var cfg facility.FacilitiesConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, ParseError(f.path, err)
	}

	cfg.Validate()
	return &cfg, nil
}
