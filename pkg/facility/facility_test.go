package facility_test

import (
	"testing"

	"github.com/seqlims/seqdb/pkg/facility"
	"github.com/seqlims/seqdb/pkg/ingest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileLookup(t *testing.T) {
	cfg := &facility.FacilitiesConfig{
		Profiles: []facility.Profile{
			{Name: "GTAC", SequencerType: "NovaSeq"},
			{Name: "CoreB", SequencerType: "MiSeq"},
		},
	}

	p, ok := cfg.Profile("gtac")
	require.True(t, ok, "lookup is case-insensitive")
	assert.Equal(t, "GTAC", p.Name)

	_, ok = cfg.Profile("unknown")
	assert.False(t, ok)
}

func TestValidate(t *testing.T) {
	cfg := &facility.FacilitiesConfig{
		Profiles: []facility.Profile{
			{Name: "GTAC"},
			{Name: "gtac"},
			{Name: ""},
		},
	}
	cfg.Validate()

	require.Len(t, cfg.Warnings, 2)
	assert.Equal(t, "GTAC", cfg.Warnings[0].Profile) // duplicate hits second entry
	assert.Equal(t, "name", cfg.Warnings[1].Field)
}

func TestApplyDefaults(t *testing.T) {
	t.Run("profile fills gaps, metadata wins", func(t *testing.T) {
		meta := ingest.RunMetadata{
			ServiceRequestNumber: "SR1",
			SequencerType:        "NextSeq",
		}
		p := &facility.Profile{
			Name:          "GTAC",
			SequencerType: "NovaSeq",
			BaseDirectory: "/data/gtac",
			FilePatternR1: "_1.fq.gz",
			FilePatternR2: "_2.fq.gz",
		}
		facility.ApplyDefaults(&meta, p)

		assert.Equal(t, "NextSeq", meta.SequencerType)
		assert.Equal(t, "/data/gtac", meta.BaseDirectory)
		assert.Equal(t, "_1.fq.gz", meta.FilePatternR1)
		assert.Equal(t, "_2.fq.gz", meta.FilePatternR2)
	})

	t.Run("built-in defaults without profile", func(t *testing.T) {
		meta := ingest.RunMetadata{ServiceRequestNumber: "SR1"}
		facility.ApplyDefaults(&meta, nil)

		assert.Equal(t, "NovaSeq", meta.SequencerType)
		assert.Equal(t, "_R1.fastq.gz", meta.FilePatternR1)
		assert.Equal(t, "_R2.fastq.gz", meta.FilePatternR2)
		assert.Empty(t, meta.BaseDirectory)
	})
}
