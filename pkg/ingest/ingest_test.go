package ingest_test

import (
	"testing"

	"github.com/seqlims/seqdb/pkg/ingest"
	"github.com/stretchr/testify/assert"
)

func TestExtractWUID(t *testing.T) {
	tests := []struct {
		name  string
		input string
		wuid  int64
		ok    bool
	}{
		{
			name:  "typical facility name",
			input: "I13129_39552_Celiac_023_duo_V1",
			wuid:  39552,
			ok:    true,
		},
		{
			name:  "two tokens suffice",
			input: "prefix_42",
			wuid:  42,
			ok:    true,
		},
		{
			name:  "empty string",
			input: "",
			ok:    false,
		},
		{
			name:  "single token",
			input: "BadName",
			ok:    false,
		},
		{
			name:  "non-numeric second token",
			input: "I13129_ABC_Celiac",
			ok:    false,
		},
		{
			name:  "empty second token",
			input: "I13129__Celiac",
			ok:    false,
		},
		{
			name:  "numeric with trailing garbage",
			input: "I13129_39552a_Celiac",
			ok:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wuid, ok := ingest.ExtractWUID(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.wuid, wuid)
			}
		})
	}
}

func TestNormalizeCount(t *testing.T) {
	tests := []struct {
		name  string
		input string
		n     int64
		ok    bool
	}{
		{"comma grouped", "1,613,040", 1613040, true},
		{"plain digits", "5000", 5000, true},
		{"surrounding whitespace", " 12,345 ", 12345, true},
		{"empty", "", 0, false},
		{"not a number", "abc", 0, false},
		{"as needed placeholder", "as needed", 0, false},
		{"decimal is not a count", "12.5", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, ok := ingest.NormalizeCount(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.n, n)
			}
		})
	}
}

func TestBuildReadPaths(t *testing.T) {
	r1, r2, ok := ingest.BuildReadPaths(
		"/data/runs/", "SR123", "SampleA", "_R1.fastq.gz", "_R2.fastq.gz")
	assert.True(t, ok)
	assert.Equal(t, "/data/runs/SR123_SampleA_R1.fastq.gz", r1)
	assert.Equal(t, "/data/runs/SR123_SampleA_R2.fastq.gz", r2)

	t.Run("no trailing slash in base dir", func(t *testing.T) {
		r1, _, ok := ingest.BuildReadPaths(
			"/data/runs", "SR123", "SampleA", "_R1.fastq.gz", "_R2.fastq.gz")
		assert.True(t, ok)
		assert.Equal(t, "/data/runs/SR123_SampleA_R1.fastq.gz", r1)
	})

	t.Run("missing library name yields no paths", func(t *testing.T) {
		r1, r2, ok := ingest.BuildReadPaths(
			"/data/runs/", "SR123", "", "_R1.fastq.gz", "_R2.fastq.gz")
		assert.False(t, ok)
		assert.Empty(t, r1)
		assert.Empty(t, r2)
	})
}

func TestRunMetadataIdentifier(t *testing.T) {
	m := ingest.RunMetadata{ServiceRequestNumber: "SR123", FlowcellID: "FC9"}
	assert.Equal(t, "SR123", m.Identifier())

	m.ServiceRequestNumber = ""
	assert.Equal(t, "FC9", m.Identifier())
}
