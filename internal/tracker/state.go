package tracker

import (
	"context"
	"sync"
	"time"

	"preptrack-backend/internal/catalog"
	"preptrack-backend/internal/models"
)

// Store is the persistence port the State container writes through. Both the
// Postgres repository and the test fake satisfy it.
type Store interface {
	FetchAll(ctx context.Context) ([]models.ProgressRecord, error)
	Upsert(ctx context.Context, u models.ProgressUpdate) error
}

// State owns the in-memory progress snapshot. Writes are two-phase: the
// tentative record is applied locally, the store upsert runs, and the local
// view is either committed (derived values recomputed synchronously) or
// rolled back to the previous record on failure.
type State struct {
	catalog *catalog.Catalog
	store   Store
	now     func() time.Time

	mu      sync.RWMutex
	records map[string]models.ProgressRecord
	derived Derived
}

// Derived bundles everything recomputed from the full snapshot after each
// committed change.
type Derived struct {
	Total   models.TotalProgress `json:"total"`
	Streaks models.Streaks       `json:"streaks"`
	Due     []models.DueQuestion `json:"due"`
}

func NewState(c *catalog.Catalog, store Store) *State {
	return &State{
		catalog: c,
		store:   store,
		now:     time.Now,
		records: make(map[string]models.ProgressRecord),
	}
}

// Load replaces the snapshot with the store's current contents.
func (s *State) Load(ctx context.Context) error {
	rows, err := s.store.FetchAll(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = make(map[string]models.ProgressRecord, len(rows))
	for _, rec := range rows {
		s.records[rec.QuestionID] = rec
	}
	s.recomputeLocked()
	return nil
}

// UpdateProgress applies an ordinary progress write: completed, notes and
// code overwrite the stored row. The completed_at stamp is decided here,
// against the state before this update: only the false→true transition sets
// it, and it is never sent again once set.
func (s *State) UpdateProgress(ctx context.Context, questionID string, completed bool, notes, code string) error {
	s.mu.Lock()
	prev, existed := s.records[questionID]

	upd := models.ProgressUpdate{
		QuestionID: questionID,
		Completed:  completed,
		Notes:      notes,
		Code:       code,
	}
	if completed && !prev.Completed {
		t := s.now()
		upd.CompletedAt = &t
	}

	s.records[questionID] = mergeRecord(prev, upd, s.now())
	s.mu.Unlock()

	if err := s.store.Upsert(ctx, upd); err != nil {
		// Roll back the optimistic apply.
		s.mu.Lock()
		if existed {
			s.records[questionID] = prev
		} else {
			delete(s.records, questionID)
		}
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	s.recomputeLocked()
	s.mu.Unlock()
	return nil
}

// MarkReviewed advances the review schedule for a completed question.
// Without an existing completed record this is a silent no-op.
func (s *State) MarkReviewed(ctx context.Context, questionID string) error {
	s.mu.Lock()
	prev, ok := s.records[questionID]
	if !ok || !prev.Completed {
		s.mu.Unlock()
		return nil
	}

	upd := AdvanceReview(prev, s.now())
	s.records[questionID] = mergeRecord(prev, upd, s.now())
	s.mu.Unlock()

	if err := s.store.Upsert(ctx, upd); err != nil {
		s.mu.Lock()
		s.records[questionID] = prev
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	s.recomputeLocked()
	s.mu.Unlock()
	return nil
}

// QuestionStatus returns the stored record, or a blank one for questions
// never written.
func (s *State) QuestionStatus(questionID string) models.ProgressRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if rec, ok := s.records[questionID]; ok {
		return rec
	}
	return models.ProgressRecord{QuestionID: questionID}
}

func (s *State) DayProgress(day int) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return DayProgress(s.catalog, s.records, day)
}

func (s *State) WeekProgress(week int) models.TotalProgress {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return WeekProgress(s.catalog, s.records, week)
}

func (s *State) TotalProgress() models.TotalProgress {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.derived.Total
}

func (s *State) Streaks() models.Streaks {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.derived.Streaks
}

func (s *State) DueRevisions() []models.DueQuestion {
	s.mu.RLock()
	defer s.mu.RUnlock()
	due := make([]models.DueQuestion, len(s.derived.Due))
	copy(due, s.derived.Due)
	return due
}

func (s *State) recomputeLocked() {
	now := s.now()
	s.derived = Derived{
		Total:   TotalProgressOf(s.catalog, s.records),
		Streaks: ComputeStreaks(s.records, now),
		Due:     DueRevisions(s.catalog, s.records, now),
	}
}

// mergeRecord applies an update to the previous record the same way the
// store's upsert does: overwrite columns first, then coalesce the optional
// scheduling fields.
func mergeRecord(prev models.ProgressRecord, upd models.ProgressUpdate, now time.Time) models.ProgressRecord {
	rec := prev
	rec.QuestionID = upd.QuestionID
	rec.Completed = upd.Completed
	rec.Notes = upd.Notes
	rec.Code = upd.Code
	if upd.CompletedAt != nil {
		rec.CompletedAt = upd.CompletedAt
	}
	if upd.LastReviewed != nil {
		rec.LastReviewed = upd.LastReviewed
	}
	if upd.ReviewInterval != nil {
		rec.ReviewInterval = *upd.ReviewInterval
	}
	if upd.ReviewCount != nil {
		rec.ReviewCount = *upd.ReviewCount
	}
	rec.UpdatedAt = now
	return rec
}
