// Package facility provides configuration and validation for sequencing
// facility profiles.
//
// This package defines the schema for facilities.yaml, which supplies
// per-facility defaults (sequencer type, raw-data base directory, fastq
// file patterns) merged into run metadata before a run is registered.
// Values already present in the metadata always win over profile
// defaults; profile defaults win over the built-in ones.
package facility

import (
	"strings"

	"github.com/seqlims/seqdb/pkg/config"
	"github.com/seqlims/seqdb/pkg/ingest"
)

// Facilities loads the facilities.yaml configuration.
type Facilities interface {
	Load() (*FacilitiesConfig, error)
}

// FacilitiesConfig represents the complete facilities.yaml file.
type FacilitiesConfig struct {
	// Profiles is the list of known facility profiles.
	Profiles []Profile `yaml:"facilities"`

	// Warnings holds non-fatal validation warnings (not serialized).
	Warnings []ValidationWarning `yaml:"-"`
}

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Profile    string // Name of the facility profile
	Field      string // Field name that has the issue
	Message    string // Description of the issue
	Suggestion string // How to fix it
}

// Profile represents the defaults of a single sequencing facility.
type Profile struct {
	// Name identifies the profile; matched case-insensitively against
	// the --facility CLI flag.
	Name string `yaml:"name"`

	// SequencerType is the facility's usual instrument model.
	SequencerType string `yaml:"sequencer_type,omitempty"`

	// BaseDirectory is where the facility delivers raw data.
	BaseDirectory string `yaml:"base_directory,omitempty"`

	// FilePatternR1 and FilePatternR2 are the facility's fastq suffixes.
	FilePatternR1 string `yaml:"file_pattern_r1,omitempty"`
	FilePatternR2 string `yaml:"file_pattern_r2,omitempty"`
}

// Profile returns the named profile, or false when no profile matches.
func (c *FacilitiesConfig) Profile(name string) (*Profile, bool) {
	for i := range c.Profiles {
		if strings.EqualFold(c.Profiles[i].Name, name) {
			return &c.Profiles[i], true
		}
	}
	return nil, false
}

// Validate collects non-fatal issues: nameless profiles, duplicate
// names. The configuration remains usable; warnings are surfaced to the
// user by the CLI.
func (c *FacilitiesConfig) Validate() {
	seen := make(map[string]bool)
	for _, p := range c.Profiles {
		name := strings.ToLower(strings.TrimSpace(p.Name))
		if name == "" {
			c.Warnings = append(c.Warnings, ValidationWarning{
				Field:      "name",
				Message:    "facility profile without a name is unreachable",
				Suggestion: "add a unique 'name' field to the profile",
			})
			continue
		}
		if seen[name] {
			c.Warnings = append(c.Warnings, ValidationWarning{
				Profile:    p.Name,
				Field:      "name",
				Message:    "duplicate facility profile name; only the first is used",
				Suggestion: "rename or remove the duplicate profile",
			})
		}
		seen[name] = true
	}
}

// ApplyDefaults fills gaps in run metadata, first from the facility
// profile (may be nil), then from the built-in defaults. Existing
// metadata values are never overwritten: the first-created run for a
// batch is canonical and later imports must not alter its
// configuration.
func ApplyDefaults(meta *ingest.RunMetadata, p *Profile) {
	if p != nil {
		if meta.SequencerType == "" {
			meta.SequencerType = p.SequencerType
		}
		if meta.BaseDirectory == "" {
			meta.BaseDirectory = p.BaseDirectory
		}
		if meta.FilePatternR1 == "" {
			meta.FilePatternR1 = p.FilePatternR1
		}
		if meta.FilePatternR2 == "" {
			meta.FilePatternR2 = p.FilePatternR2
		}
	}
	if meta.SequencerType == "" {
		meta.SequencerType = config.DefaultSequencerType
	}
	if meta.FilePatternR1 == "" {
		meta.FilePatternR1 = config.DefaultFilePatternR1
	}
	if meta.FilePatternR2 == "" {
		meta.FilePatternR2 = config.DefaultFilePatternR2
	}
}
