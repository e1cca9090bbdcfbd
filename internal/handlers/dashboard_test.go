package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"preptrack-backend/internal/catalog"
	"preptrack-backend/internal/models"
	"preptrack-backend/internal/tracker"
)

// fakeStore is a trivial in-memory tracker.Store for handler tests.
type fakeStore struct {
	rows map[string]models.ProgressRecord
}

func (f *fakeStore) FetchAll(ctx context.Context) ([]models.ProgressRecord, error) {
	rows := make([]models.ProgressRecord, 0, len(f.rows))
	for _, rec := range f.rows {
		rows = append(rows, rec)
	}
	return rows, nil
}

func (f *fakeStore) Upsert(ctx context.Context, u models.ProgressUpdate) error {
	rec := f.rows[u.QuestionID]
	rec.QuestionID = u.QuestionID
	rec.Completed = u.Completed
	rec.Notes = u.Notes
	rec.Code = u.Code
	if u.CompletedAt != nil {
		rec.CompletedAt = u.CompletedAt
	}
	if u.LastReviewed != nil {
		rec.LastReviewed = u.LastReviewed
	}
	if u.ReviewInterval != nil {
		rec.ReviewInterval = *u.ReviewInterval
	}
	if u.ReviewCount != nil {
		rec.ReviewCount = *u.ReviewCount
	}
	rec.UpdatedAt = time.Now()
	f.rows[u.QuestionID] = rec
	return nil
}

func newDashboard(t *testing.T, rows map[string]models.ProgressRecord) (*DashboardHandler, *fakeStore) {
	t.Helper()
	cat := catalog.FromDays([]models.Day{
		{
			Day: 1, Week: 1, Theme: "Arrays & Hashing",
			Questions: []models.Question{
				{ID: "d1-q1", Title: "Two Sum", Topic: "Arrays & Hashing", Difficulty: "Easy", Type: "new"},
				{ID: "d1-q2", Title: "Contains Duplicate", Topic: "Arrays & Hashing", Difficulty: "Easy", Type: "new"},
			},
		},
	})
	if rows == nil {
		rows = make(map[string]models.ProgressRecord)
	}
	store := &fakeStore{rows: rows}
	return NewDashboardHandler(tracker.NewState(cat, store)), store
}

func TestDashboardStats(t *testing.T) {
	now := time.Now().UTC()
	h, _ := newDashboard(t, map[string]models.ProgressRecord{
		"d1-q1": {QuestionID: "d1-q1", Completed: true, CompletedAt: &now, UpdatedAt: now},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/stats?day=1", nil)
	rr := httptest.NewRecorder()

	h.Stats(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp struct {
		Total         models.TotalProgress `json:"total"`
		Streaks       models.Streaks       `json:"streaks"`
		DayPercentage float64              `json:"day_percentage"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if resp.Total.Completed != 1 || resp.Total.Total != 2 {
		t.Errorf("Expected 1/2 completed, got %d/%d", resp.Total.Completed, resp.Total.Total)
	}
	if resp.DayPercentage != 50 {
		t.Errorf("Expected day percentage 50, got %.1f", resp.DayPercentage)
	}
	if resp.Streaks.Current != 1 {
		t.Errorf("Expected current streak 1, got %d", resp.Streaks.Current)
	}
}

func TestDashboardStatsRejectsBadWeek(t *testing.T) {
	h, _ := newDashboard(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/stats?week=soon", nil)
	rr := httptest.NewRecorder()

	h.Stats(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for bad week, got %d", rr.Code)
	}
}

func TestDashboardDue(t *testing.T) {
	old := time.Now().UTC().AddDate(0, 0, -3)
	h, _ := newDashboard(t, map[string]models.ProgressRecord{
		"d1-q1": {QuestionID: "d1-q1", Completed: true, CompletedAt: &old, LastReviewed: &old, ReviewInterval: 1, UpdatedAt: old},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/due", nil)
	rr := httptest.NewRecorder()

	h.Due(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rr.Code)
	}

	var resp struct {
		Due []models.DueQuestion `json:"due"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(resp.Due) != 1 || resp.Due[0].Question.ID != "d1-q1" {
		t.Errorf("Expected d1-q1 due, got %+v", resp.Due)
	}
}

func TestMarkReviewedThroughRouter(t *testing.T) {
	old := time.Now().UTC().AddDate(0, 0, -3)
	h, store := newDashboard(t, map[string]models.ProgressRecord{
		"d1-q1": {QuestionID: "d1-q1", Completed: true, CompletedAt: &old, ReviewInterval: 1, UpdatedAt: old},
	})

	r := chi.NewRouter()
	r.Post("/revision/{questionID}/review", h.MarkReviewed)

	req := httptest.NewRequest(http.MethodPost, "/revision/d1-q1/review", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	rec := store.rows["d1-q1"]
	if rec.ReviewInterval != 2 || rec.ReviewCount != 1 {
		t.Errorf("Expected interval 2 count 1, got interval %d count %d", rec.ReviewInterval, rec.ReviewCount)
	}
}

func TestMarkReviewedUnknownQuestionIsNoop(t *testing.T) {
	h, store := newDashboard(t, nil)

	r := chi.NewRouter()
	r.Post("/revision/{questionID}/review", h.MarkReviewed)

	req := httptest.NewRequest(http.MethodPost, "/revision/d9-q9/review", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("Expected silent 200, got %d", rr.Code)
	}
	if len(store.rows) != 0 {
		t.Error("No-op review must not create a row")
	}
}
