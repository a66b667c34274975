package schema_test

import (
	"testing"

	"github.com/seqlims/seqdb/pkg/schema"
	"github.com/stretchr/testify/assert"
)

// TestTableNames ensures table names stay stable; the import SQL in
// internal/iodb references them verbatim.
func TestTableNames(t *testing.T) {
	assert.Equal(t, "sequencing_runs", schema.SequencingRun{}.TableName())
	assert.Equal(t, "sequencing_samples", schema.SequencingSample{}.TableName())
	assert.Equal(t, "specimens", schema.Specimen{}.TableName())
}

func TestAllModels(t *testing.T) {
	models := schema.AllModels()
	assert.Len(t, models, 3)
}

func TestLinkStatusValues(t *testing.T) {
	assert.Equal(t, "linked", schema.LinkStatusLinked)
	assert.Equal(t, "no_match", schema.LinkStatusNoMatch)
	assert.Equal(t, "failed", schema.LinkStatusFailed)
}
