package schema

import (
	"gorm.io/gorm"
)

// RunNumberSequence is the PostgreSQL sequence that allocates
// human-facing run numbers. GORM AutoMigrate does not manage sequences,
// so the schema manager creates it explicitly.
const RunNumberSequence = "sequencing_run_number_seq"

// RunNumberSequenceDDL creates the run-number sequence if missing.
const RunNumberSequenceDDL = "CREATE SEQUENCE IF NOT EXISTS " +
	RunNumberSequence + " START 1"

// AllModels returns all schema models for GORM AutoMigrate.
func AllModels() []interface{} {
	return []interface{}{
		&SequencingRun{},
		&SequencingSample{},
		&Specimen{},
	}
}

// Migrate runs GORM AutoMigrate to create or update schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(AllModels()...)
}
