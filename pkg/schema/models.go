// Package schema provides database schema models for SeqDB.
// Models are managed with GORM AutoMigrate; column types and
// constraints are declared in gorm struct tags.
package schema

import (
	"database/sql"
	"time"
)

// Link statuses for a sequencing sample. The status records the outcome
// of associating an imported row with a specimen record.
const (
	// LinkStatusLinked means a specimen with a matching specimen_number
	// was found and the sample references it.
	LinkStatusLinked = "linked"

	// LinkStatusNoMatch means the WUID was extracted but no specimen
	// carries that specimen_number. A business outcome, not an error.
	LinkStatusNoMatch = "no_match"

	// LinkStatusFailed means specimen resolution itself failed with an
	// infrastructure error; the error text is kept in link_error.
	LinkStatusFailed = "failed"
)

// SequencingRun is one facility submission of sequencing output,
// identified by service request number and/or flowcell id. The
// first-created row for a facility batch is canonical: re-importing the
// same batch never mutates it.
type SequencingRun struct {
	// ID is the surrogate primary key.
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`

	// UUID is a random identifier assigned when the run is registered.
	UUID string `gorm:"column:uuid;type:uuid;not null"`

	// RunNumber is the human-facing sequential number, allocated from a
	// dedicated database sequence at registration time.
	RunNumber int `gorm:"column:run_number;uniqueIndex;not null"`

	// ServiceRequestNumber identifies the facility service request.
	// Nullable; unique among non-null values.
	ServiceRequestNumber sql.NullString `gorm:"column:service_request_number;type:varchar(50);uniqueIndex"`

	// FlowcellID identifies the flowcell the batch was sequenced on.
	// Nullable; unique among non-null values.
	FlowcellID sql.NullString `gorm:"column:flowcell_id;type:varchar(50);uniqueIndex"`

	// PoolName is the facility's pool designation for the batch.
	PoolName string `gorm:"column:pool_name;type:varchar(100)"`

	// CompletionDate is when the facility finished sequencing.
	CompletionDate sql.NullTime `gorm:"column:completion_date"`

	// SequencerType is the instrument model, "NovaSeq" when omitted.
	SequencerType string `gorm:"column:sequencer_type;type:varchar(50);not null"`

	// BaseDirectory is the root under which raw-data files are laid out.
	// Path strings are constructed from it; existence is never checked.
	BaseDirectory string `gorm:"column:base_directory;type:text"`

	// FilePatternR1 is the suffix for read-1 fastq files,
	// "_R1.fastq.gz" when omitted.
	FilePatternR1 string `gorm:"column:file_pattern_r1;type:varchar(50);not null"`

	// FilePatternR2 is the suffix for read-2 fastq files,
	// "_R2.fastq.gz" when omitted.
	FilePatternR2 string `gorm:"column:file_pattern_r2;type:varchar(50);not null"`

	// CreatedBy is the actor who first imported the batch.
	CreatedBy string `gorm:"column:created_by;type:varchar(100)"`

	// CreatedAt is the registration timestamp.
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

// TableName returns the PostgreSQL table name for SequencingRun.
func (SequencingRun) TableName() string { return "sequencing_runs" }

// SequencingSample is one imported row of facility batch metadata. A
// sample row is created exactly once per processed input row and never
// updated afterwards; re-importing identical rows creates duplicates.
type SequencingSample struct {
	// ID is the surrogate primary key.
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`

	// SampleUUID is a deterministic UUID v5 derived from the run
	// identifier and the facility sample name.
	SampleUUID string `gorm:"column:sample_uuid;type:uuid;not null"`

	// SequencingRunID references the owning run (strong reference).
	SequencingRunID int64 `gorm:"column:sequencing_run_id;index;not null"`

	// SpecimenID references the linked specimen (weak reference).
	// Null unless link_status is "linked".
	SpecimenID sql.NullInt64 `gorm:"column:specimen_id"`

	// FacilitySampleName is the composite, underscore-delimited
	// identifier assigned by the sequencing provider.
	FacilitySampleName string `gorm:"column:facility_sample_name;type:varchar(255);not null"`

	// WUID is the numeric specimen identifier extracted from the
	// facility sample name. The join key between sequencing data and
	// specimen records.
	WUID sql.NullInt64 `gorm:"column:wuid;index"`

	// LibraryID is the facility's library identifier; also the name
	// component of the derived fastq paths.
	LibraryID string `gorm:"column:library_id;type:varchar(100)"`

	// ESPID is the facility's ESP sample identifier.
	ESPID string `gorm:"column:esp_id;type:varchar(100)"`

	// IndexSequence is the demultiplexing index.
	IndexSequence string `gorm:"column:index_sequence;type:varchar(100)"`

	// FlowcellLane is the lane designation on the flowcell.
	FlowcellLane string `gorm:"column:flowcell_lane;type:varchar(20)"`

	// FastqR1Path and FastqR2Path are derived path strings. They are
	// never verified to exist on disk. Null when no library id was
	// available to build them from.
	FastqR1Path sql.NullString `gorm:"column:fastq_r1_path;type:text"`
	FastqR2Path sql.NullString `gorm:"column:fastq_r2_path;type:text"`

	// Species is the organism as reported by the facility.
	Species string `gorm:"column:species;type:varchar(255)"`

	// SpeciesCanonical is the canonical form of Species produced by
	// gnparser. Null when the species string does not parse.
	SpeciesCanonical sql.NullString `gorm:"column:species_canonical;type:varchar(255)"`

	// LibraryType is the library preparation type.
	LibraryType string `gorm:"column:library_type;type:varchar(100)"`

	// SampleType is the sample material type.
	SampleType string `gorm:"column:sample_type;type:varchar(100)"`

	// TotalReads and TotalBases are normalized numerics. Absent or
	// "as needed" source values stay null, never zero.
	TotalReads sql.NullInt64 `gorm:"column:total_reads"`
	TotalBases sql.NullInt64 `gorm:"column:total_bases"`

	// Quality metrics, per read. Null when the facility omitted them.
	PctQ30R1        sql.NullFloat64 `gorm:"column:pct_q30_r1"`
	PctQ30R2        sql.NullFloat64 `gorm:"column:pct_q30_r2"`
	AvgQScoreR1     sql.NullFloat64 `gorm:"column:avg_q_score_r1"`
	AvgQScoreR2     sql.NullFloat64 `gorm:"column:avg_q_score_r2"`
	PhixErrorR1     sql.NullFloat64 `gorm:"column:phix_error_rate_r1"`
	PhixErrorR2     sql.NullFloat64 `gorm:"column:phix_error_rate_r2"`
	PctPassFilterR1 sql.NullFloat64 `gorm:"column:pct_pass_filter_r1"`
	PctPassFilterR2 sql.NullFloat64 `gorm:"column:pct_pass_filter_r2"`

	// LinkStatus is one of linked, no_match, failed.
	LinkStatus string `gorm:"column:link_status;type:varchar(20);index;not null"`

	// LinkError holds the no-match reason or the captured resolution
	// error. Null when linked.
	LinkError sql.NullString `gorm:"column:link_error;type:text"`

	// LinkedAt is set only when link_status is "linked".
	LinkedAt sql.NullTime `gorm:"column:linked_at"`

	// CreatedAt is the insertion timestamp.
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

// TableName returns the PostgreSQL table name for SequencingSample.
func (SequencingSample) TableName() string { return "sequencing_samples" }

// Specimen is the external specimen record this core resolves WUIDs
// against. SeqDB reads it and never writes it; the table is owned by
// the specimen-management side of the LIMS.
type Specimen struct {
	// ID is the specimen's internal identifier.
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`

	// SpecimenNumber is the externally visible numeric identifier that
	// WUIDs are matched against.
	SpecimenNumber int64 `gorm:"column:specimen_number;uniqueIndex;not null"`

	// Description is a human-readable specimen label.
	Description string `gorm:"column:description;type:text"`

	// ProjectName and CollaboratorName are display fields joined into
	// the read-side sample listings.
	ProjectName      string `gorm:"column:project_name;type:varchar(255)"`
	CollaboratorName string `gorm:"column:collaborator_name;type:varchar(255)"`
}

// TableName returns the PostgreSQL table name for Specimen.
func (Specimen) TableName() string { return "specimens" }
