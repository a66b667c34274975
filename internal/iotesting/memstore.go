package iotesting

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/seqlims/seqdb/pkg/db"
	"github.com/seqlims/seqdb/pkg/schema"
)

// MemStore is an in-memory db.Store. It lets unit tests exercise the
// importer's classification, idempotency, and atomicity behavior
// without PostgreSQL. A transaction holds the store lock from Begin
// until Commit/Rollback, which serializes concurrent imports the same
// way the advisory locks do in the real store; rollback restores the
// pre-transaction state.
type MemStore struct {
	mu sync.Mutex

	runs      []schema.SequencingRun
	samples   []schema.SequencingSample
	specimens []schema.Specimen

	nextRunID     int64
	nextSampleID  int64
	nextSpecimen  int64
	nextRunNumber int

	// Failure injection for tests. FailSpecimenWUIDs makes specimen
	// resolution fail with an infrastructure error for the given WUIDs;
	// FailInsertNames makes sample inserts fail for the given facility
	// sample names; FailCommit makes the next Commit fail and roll the
	// transaction back.
	FailSpecimenWUIDs map[int64]bool
	FailInsertNames   map[string]bool
	FailCommit        bool
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{
		FailSpecimenWUIDs: make(map[int64]bool),
		FailInsertNames:   make(map[string]bool),
	}
}

// AddSpecimen seeds a specimen record and returns its internal id.
func (s *MemStore) AddSpecimen(
	number int64,
	description, project, collaborator string,
) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSpecimen++
	s.specimens = append(s.specimens, schema.Specimen{
		ID:               s.nextSpecimen,
		SpecimenNumber:   number,
		Description:      description,
		ProjectName:      project,
		CollaboratorName: collaborator,
	})
	return s.nextSpecimen
}

// Runs returns a copy of all run rows, in insertion order.
func (s *MemStore) Runs() []schema.SequencingRun {
	s.mu.Lock()
	defer s.mu.Unlock()
	res := make([]schema.SequencingRun, len(s.runs))
	copy(res, s.runs)
	return res
}

// Samples returns a copy of all sample rows, in insertion order.
func (s *MemStore) Samples() []schema.SequencingSample {
	s.mu.Lock()
	defer s.mu.Unlock()
	res := make([]schema.SequencingSample, len(s.samples))
	copy(res, s.samples)
	return res
}

// Begin opens a transaction and takes the store lock.
func (s *MemStore) Begin(ctx context.Context) (db.Tx, error) {
	s.mu.Lock()
	tx := &memTx{
		s:            s,
		savedRuns:    append([]schema.SequencingRun(nil), s.runs...),
		savedSamples: append([]schema.SequencingSample(nil), s.samples...),
	}
	return tx, nil
}

// ListRuns returns all runs, newest first.
func (s *MemStore) ListRuns(
	ctx context.Context,
) ([]schema.SequencingRun, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res := make([]schema.SequencingRun, len(s.runs))
	copy(res, s.runs)
	sort.SliceStable(res, func(i, j int) bool {
		return res[i].ID > res[j].ID
	})
	return res, nil
}

// GetRun returns one run or db.ErrRunNotFound.
func (s *MemStore) GetRun(
	ctx context.Context,
	runID int64,
) (*schema.SequencingRun, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.runs {
		if s.runs[i].ID == runID {
			run := s.runs[i]
			return &run, nil
		}
	}
	return nil, db.ErrRunNotFound
}

// CountSamplesByStatus returns per-status sample counts for one run.
func (s *MemStore) CountSamplesByStatus(
	ctx context.Context,
	runID int64,
) (map[string]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	counts := make(map[string]int)
	for i := range s.samples {
		if s.samples[i].SequencingRunID == runID {
			counts[s.samples[i].LinkStatus]++
		}
	}
	return counts, nil
}

// ListRunSamples returns the run's samples ordered by WUID ascending
// (nulls last), joined with specimen display fields.
func (s *MemStore) ListRunSamples(
	ctx context.Context,
	runID int64,
) ([]db.SampleWithSpecimen, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var res []db.SampleWithSpecimen
	for i := range s.samples {
		if s.samples[i].SequencingRunID != runID {
			continue
		}
		row := db.SampleWithSpecimen{SequencingSample: s.samples[i]}
		if row.SpecimenID.Valid {
			for j := range s.specimens {
				if s.specimens[j].ID == row.SpecimenID.Int64 {
					row.SpecimenNumber = s.specimens[j].SpecimenNumber
					row.SpecimenDescription = s.specimens[j].Description
					row.ProjectName = s.specimens[j].ProjectName
					row.CollaboratorName = s.specimens[j].CollaboratorName
					break
				}
			}
		}
		res = append(res, row)
	}

	sort.SliceStable(res, func(i, j int) bool {
		a, b := res[i], res[j]
		switch {
		case a.WUID.Valid && b.WUID.Valid:
			if a.WUID.Int64 != b.WUID.Int64 {
				return a.WUID.Int64 < b.WUID.Int64
			}
			return a.ID < b.ID
		case a.WUID.Valid:
			return true
		case b.WUID.Valid:
			return false
		default:
			return a.ID < b.ID
		}
	})
	return res, nil
}

// memTx mutates the store directly; rollback restores the snapshot
// taken at Begin. Run-number allocation is deliberately outside the
// snapshot, matching sequence semantics - an aborted batch burns its
// number.
type memTx struct {
	s            *MemStore
	savedRuns    []schema.SequencingRun
	savedSamples []schema.SequencingSample
	done         bool
}

// LockRunKeys is a no-op: the store lock held by the transaction
// already serializes registrations.
func (t *memTx) LockRunKeys(
	ctx context.Context,
	serviceRequestNumber, flowcellID string,
) error {
	return nil
}

func (t *memTx) FindRunByServiceRequest(
	ctx context.Context,
	serviceRequestNumber string,
) (*schema.SequencingRun, error) {
	for i := range t.s.runs {
		run := t.s.runs[i]
		if run.ServiceRequestNumber.Valid &&
			run.ServiceRequestNumber.String == serviceRequestNumber {
			return &run, nil
		}
	}
	return nil, db.ErrRunNotFound
}

func (t *memTx) FindRunByFlowcell(
	ctx context.Context,
	flowcellID string,
) (*schema.SequencingRun, error) {
	for i := range t.s.runs {
		run := t.s.runs[i]
		if run.FlowcellID.Valid && run.FlowcellID.String == flowcellID {
			return &run, nil
		}
	}
	return nil, db.ErrRunNotFound
}

func (t *memTx) NextRunNumber(ctx context.Context) (int, error) {
	t.s.nextRunNumber++
	return t.s.nextRunNumber, nil
}

func (t *memTx) InsertRun(
	ctx context.Context,
	run *schema.SequencingRun,
) error {
	t.s.nextRunID++
	run.ID = t.s.nextRunID
	t.s.runs = append(t.s.runs, *run)
	return nil
}

func (t *memTx) FindSpecimenIDByNumber(
	ctx context.Context,
	wuid int64,
) (int64, error) {
	if t.s.FailSpecimenWUIDs[wuid] {
		return 0, errors.New("specimen store timeout")
	}
	for i := range t.s.specimens {
		if t.s.specimens[i].SpecimenNumber == wuid {
			return t.s.specimens[i].ID, nil
		}
	}
	return 0, db.ErrSpecimenNotFound
}

func (t *memTx) InsertSample(
	ctx context.Context,
	sample *schema.SequencingSample,
) error {
	if t.s.FailInsertNames[sample.FacilitySampleName] {
		return errors.New("sample insert failed")
	}
	t.s.nextSampleID++
	sample.ID = t.s.nextSampleID
	t.s.samples = append(t.s.samples, *sample)
	return nil
}

func (t *memTx) DeleteRunSamples(
	ctx context.Context,
	runID int64,
) (int64, error) {
	var kept []schema.SequencingSample
	var removed int64
	for i := range t.s.samples {
		if t.s.samples[i].SequencingRunID == runID {
			removed++
			continue
		}
		kept = append(kept, t.s.samples[i])
	}
	t.s.samples = kept
	return removed, nil
}

func (t *memTx) DeleteRun(
	ctx context.Context,
	runID int64,
) (int64, error) {
	var kept []schema.SequencingRun
	var removed int64
	for i := range t.s.runs {
		if t.s.runs[i].ID == runID {
			removed++
			continue
		}
		kept = append(kept, t.s.runs[i])
	}
	t.s.runs = kept
	return removed, nil
}

func (t *memTx) Commit(ctx context.Context) error {
	if t.done {
		return nil
	}
	if t.s.FailCommit {
		t.s.FailCommit = false
		t.s.runs = t.savedRuns
		t.s.samples = t.savedSamples
		t.done = true
		t.s.mu.Unlock()
		return errors.New("commit failed")
	}
	t.done = true
	t.s.mu.Unlock()
	return nil
}

func (t *memTx) Rollback(ctx context.Context) error {
	if t.done {
		return nil
	}
	t.s.runs = t.savedRuns
	t.s.samples = t.savedSamples
	t.done = true
	t.s.mu.Unlock()
	return nil
}
