package ingest

import (
	"time"
)

// SampleRow is one parsed row of facility batch metadata. Upstream
// collaborators own file upload and CSV/Excel parsing; this core only
// consumes the already-parsed structure.
type SampleRow struct {
	FacilitySampleName string
	LibraryID          string
	ESPID              string
	IndexSequence      string
	FlowcellLane       string
	Species            string
	LibraryType        string
	SampleType         string

	// TotalReads and TotalBases arrive as facility-formatted strings
	// (possibly comma-grouped, possibly "as needed" or empty) and are
	// normalized during import.
	TotalReads string
	TotalBases string

	// Quality metrics; nil when the facility omitted them.
	PctQ30R1        *float64
	PctQ30R2        *float64
	AvgQScoreR1     *float64
	AvgQScoreR2     *float64
	PhixErrorR1     *float64
	PhixErrorR2     *float64
	PctPassFilterR1 *float64
	PctPassFilterR2 *float64
}

// RunMetadata describes the facility batch that owns the imported rows.
type RunMetadata struct {
	ServiceRequestNumber string
	FlowcellID           string
	PoolName             string
	CompletionDate       *time.Time
	SequencerType        string
	BaseDirectory        string
	FilePatternR1        string
	FilePatternR2        string
}

// Identifier returns the run identifier used in derived fastq paths:
// the service request number when present, otherwise the flowcell id.
func (m RunMetadata) Identifier() string {
	if m.ServiceRequestNumber != "" {
		return m.ServiceRequestNumber
	}
	return m.FlowcellID
}

// LinkOutcome is the tri-state result of associating a sample row with
// a specimen. Modeling it as a closed variant keeps illegal
// combinations (such as "linked" without a specimen id) unrepresentable
// in the importer; the nullable columns are derived from it only at
// persistence time.
type LinkOutcome interface {
	isLinkOutcome()
}

// Linked carries the resolved specimen and the link timestamp.
type Linked struct {
	SpecimenID int64
	LinkedAt   time.Time
}

// NoMatch records that no specimen carries the extracted WUID.
// A business outcome; the batch continues.
type NoMatch struct {
	Reason string
}

// LinkFailed records an infrastructure failure during resolution.
// The row is still persisted, with the error text captured.
type LinkFailed struct {
	Err error
}

func (Linked) isLinkOutcome()     {}
func (NoMatch) isLinkOutcome()    {}
func (LinkFailed) isLinkOutcome() {}

// RowError describes a row that could not be persisted at all.
// Under the adopted extraction-failure policy these rows appear only
// here, never in sequencing_samples.
type RowError struct {
	RowIndex           int    `json:"row_index"`
	FacilitySampleName string `json:"facility_sample_name"`
	Error              string `json:"error"`
}

// ImportResult is the aggregate outcome of one batch import.
//
// SuccessCount counts persisted sample rows. FailedCount counts rows
// that failed for non-business reasons: extraction failures (present in
// Errors, not persisted) plus persisted rows whose resolution hit an
// infrastructure error. A result with FailedCount > 0 is still a
// completed, committed batch; a returned error means nothing persisted.
type ImportResult struct {
	RunID     int64      `json:"run_id"`
	RunNumber int        `json:"run_number"`

	SuccessCount int        `json:"success_count"`
	LinkedCount  int        `json:"linked_count"`
	NoMatchCount int        `json:"no_match_count"`
	FailedCount  int        `json:"failed_count"`
	Errors       []RowError `json:"errors"`
}
