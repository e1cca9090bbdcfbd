package tracker

import (
	"context"
	"errors"
	"testing"
	"time"

	"preptrack-backend/internal/models"
)

// memStore mimics the repository's upsert semantics in memory: overwrite
// completed/notes/code, coalesce the optional scheduling fields.
type memStore struct {
	rows     map[string]models.ProgressRecord
	failNext bool
	now      func() time.Time
}

func newMemStore(now func() time.Time) *memStore {
	return &memStore{rows: make(map[string]models.ProgressRecord), now: now}
}

func (m *memStore) FetchAll(ctx context.Context) ([]models.ProgressRecord, error) {
	if m.failNext {
		m.failNext = false
		return nil, errors.New("store unreachable")
	}
	rows := make([]models.ProgressRecord, 0, len(m.rows))
	for _, rec := range m.rows {
		rows = append(rows, rec)
	}
	return rows, nil
}

func (m *memStore) Upsert(ctx context.Context, u models.ProgressUpdate) error {
	if m.failNext {
		m.failNext = false
		return errors.New("store unreachable")
	}
	m.rows[u.QuestionID] = mergeRecord(m.rows[u.QuestionID], u, m.now())
	return nil
}

func newTestState(t *testing.T) (*State, *memStore, *time.Time) {
	t.Helper()
	clock := time.Date(2024, 1, 3, 12, 0, 0, 0, time.UTC)
	now := func() time.Time { return clock }
	store := newMemStore(now)
	s := NewState(testCatalog(), store)
	s.now = now
	return s, store, &clock
}

func TestUpdateProgressRoundTrip(t *testing.T) {
	s, store, _ := newTestState(t)
	ctx := context.Background()

	if err := s.UpdateProgress(ctx, "d1-q1", true, "hash map lookup", "func twoSum() {}"); err != nil {
		t.Fatalf("UpdateProgress failed: %v", err)
	}

	// A fresh snapshot loaded from the same store sees the written values.
	fresh := NewState(testCatalog(), store)
	if err := fresh.Load(ctx); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	rec := fresh.QuestionStatus("d1-q1")
	if !rec.Completed || rec.Notes != "hash map lookup" || rec.Code != "func twoSum() {}" {
		t.Errorf("Round-trip mismatch: %+v", rec)
	}
}

func TestCompletedAtSetOnlyOnTransition(t *testing.T) {
	s, store, clock := newTestState(t)
	ctx := context.Background()

	if err := s.UpdateProgress(ctx, "d1-q1", true, "", ""); err != nil {
		t.Fatalf("UpdateProgress failed: %v", err)
	}
	first := store.rows["d1-q1"].CompletedAt
	if first == nil {
		t.Fatal("completed_at not stamped on false→true transition")
	}

	// Marking complete again a day later must not move the stamp.
	*clock = clock.AddDate(0, 0, 1)
	if err := s.UpdateProgress(ctx, "d1-q1", true, "updated notes", ""); err != nil {
		t.Fatalf("UpdateProgress failed: %v", err)
	}

	second := store.rows["d1-q1"].CompletedAt
	if second == nil || !second.Equal(*first) {
		t.Errorf("completed_at changed on repeated completion: %v -> %v", first, second)
	}
}

func TestCompletedAtSurvivesUncompleting(t *testing.T) {
	s, store, clock := newTestState(t)
	ctx := context.Background()

	s.UpdateProgress(ctx, "d1-q1", true, "", "")
	stamp := *store.rows["d1-q1"].CompletedAt

	*clock = clock.AddDate(0, 0, 1)
	s.UpdateProgress(ctx, "d1-q1", false, "", "")

	rec := store.rows["d1-q1"]
	if rec.Completed {
		t.Error("completed flag should be overwritten to false")
	}
	if rec.CompletedAt == nil || !rec.CompletedAt.Equal(stamp) {
		t.Error("completed_at must never be cleared")
	}
}

func TestUpdateProgressRollsBackOnFailure(t *testing.T) {
	s, store, _ := newTestState(t)
	ctx := context.Background()

	s.UpdateProgress(ctx, "d1-q1", true, "good notes", "")

	store.failNext = true
	if err := s.UpdateProgress(ctx, "d1-q1", false, "doomed notes", ""); err == nil {
		t.Fatal("Expected error from failing store")
	}

	rec := s.QuestionStatus("d1-q1")
	if !rec.Completed || rec.Notes != "good notes" {
		t.Errorf("Optimistic update not rolled back: %+v", rec)
	}
}

func TestUpdateProgressRollsBackNewRecord(t *testing.T) {
	s, store, _ := newTestState(t)
	ctx := context.Background()

	store.failNext = true
	if err := s.UpdateProgress(ctx, "d1-q2", true, "", ""); err == nil {
		t.Fatal("Expected error from failing store")
	}

	if rec := s.QuestionStatus("d1-q2"); rec.Completed {
		t.Error("Failed first write should leave no local record")
	}
}

func TestMarkReviewedIsNoopWithoutRecord(t *testing.T) {
	s, store, _ := newTestState(t)
	ctx := context.Background()

	if err := s.MarkReviewed(ctx, "d1-q1"); err != nil {
		t.Fatalf("Expected silent no-op, got %v", err)
	}
	if len(store.rows) != 0 {
		t.Error("No-op review must not write to the store")
	}
}

func TestMarkReviewedIsNoopForIncomplete(t *testing.T) {
	s, store, _ := newTestState(t)
	ctx := context.Background()

	s.UpdateProgress(ctx, "d1-q1", false, "started", "")
	before := store.rows["d1-q1"]

	if err := s.MarkReviewed(ctx, "d1-q1"); err != nil {
		t.Fatalf("Expected silent no-op, got %v", err)
	}
	after := store.rows["d1-q1"]
	if after.ReviewCount != before.ReviewCount || after.LastReviewed != nil {
		t.Error("Review of an incomplete question must not change the row")
	}
}

func TestMarkReviewedAdvancesSchedule(t *testing.T) {
	s, store, clock := newTestState(t)
	ctx := context.Background()

	s.UpdateProgress(ctx, "d1-q1", true, "", "")

	*clock = clock.AddDate(0, 0, 2)
	if err := s.MarkReviewed(ctx, "d1-q1"); err != nil {
		t.Fatalf("MarkReviewed failed: %v", err)
	}

	rec := store.rows["d1-q1"]
	if rec.ReviewInterval != 2 {
		t.Errorf("Expected interval 2, got %d", rec.ReviewInterval)
	}
	if rec.ReviewCount != 1 {
		t.Errorf("Expected review count 1, got %d", rec.ReviewCount)
	}
	if rec.LastReviewed == nil || !rec.LastReviewed.Equal(*clock) {
		t.Error("last_reviewed not moved to review time")
	}
}

func TestCoalescePreservesOmittedFields(t *testing.T) {
	s, store, _ := newTestState(t)
	ctx := context.Background()

	// Seed a row with scheduling state, as if reviews already happened.
	reviewed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store.rows["d1-q1"] = models.ProgressRecord{
		QuestionID: "d1-q1", Completed: true,
		CompletedAt: &reviewed, LastReviewed: &reviewed,
		ReviewInterval: 8, ReviewCount: 4,
	}
	if err := s.Load(ctx); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// An ordinary notes update omits every scheduling field.
	if err := s.UpdateProgress(ctx, "d1-q1", true, "new notes", ""); err != nil {
		t.Fatalf("UpdateProgress failed: %v", err)
	}

	rec := store.rows["d1-q1"]
	if rec.ReviewCount != 4 || rec.ReviewInterval != 8 {
		t.Errorf("Omitted scheduling fields were not preserved: %+v", rec)
	}
	if rec.Notes != "new notes" {
		t.Errorf("Notes should be overwritten, got %q", rec.Notes)
	}
}

func TestDerivedValuesRecomputeAfterCommit(t *testing.T) {
	s, _, _ := newTestState(t)
	ctx := context.Background()

	if s.TotalProgress().Completed != 0 {
		t.Fatal("Expected empty state")
	}

	s.UpdateProgress(ctx, "d1-q1", true, "", "")

	if got := s.TotalProgress().Completed; got != 1 {
		t.Errorf("Expected 1 completed after commit, got %d", got)
	}
	if got := s.Streaks().Current; got != 1 {
		t.Errorf("Expected current streak 1, got %d", got)
	}
}
