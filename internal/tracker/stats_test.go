package tracker

import (
	"testing"

	"preptrack-backend/internal/models"
)

func completedRecords(ids ...string) map[string]models.ProgressRecord {
	records := make(map[string]models.ProgressRecord, len(ids))
	for _, id := range ids {
		records[id] = models.ProgressRecord{QuestionID: id, Completed: true}
	}
	return records
}

func TestDayProgress(t *testing.T) {
	c := testCatalog()

	tests := []struct {
		name      string
		completed []string
		day       int
		expected  float64
	}{
		{"nothing completed", nil, 1, 0},
		{"one of two completed", []string{"d1-q1"}, 1, 50},
		{"all completed", []string{"d1-q1", "d1-q2"}, 1, 100},
		{"day with zero questions", []string{"d1-q1"}, 3, 0},
		{"unknown day", []string{"d1-q1"}, 42, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := DayProgress(c, completedRecords(tc.completed...), tc.day)
			if got != tc.expected {
				t.Errorf("Expected %.1f%%, got %.1f%%", tc.expected, got)
			}
		})
	}
}

func TestTotalProgress(t *testing.T) {
	c := testCatalog()

	p := TotalProgressOf(c, completedRecords("d1-q1", "d2-q1"))
	if p.Total != 3 {
		t.Errorf("Expected 3 total questions, got %d", p.Total)
	}
	if p.Completed != 2 {
		t.Errorf("Expected 2 completed, got %d", p.Completed)
	}
	want := float64(2) / 3 * 100
	if p.Percentage != want {
		t.Errorf("Expected %.2f%%, got %.2f%%", want, p.Percentage)
	}
}

func TestWeekProgress(t *testing.T) {
	c := testCatalog()

	p := WeekProgress(c, completedRecords("d1-q2"), 1)
	if p.Total != 3 || p.Completed != 1 {
		t.Errorf("Expected 1/3 for week 1, got %d/%d", p.Completed, p.Total)
	}

	empty := WeekProgress(c, completedRecords("d1-q2"), 9)
	if empty.Total != 0 || empty.Percentage != 0 {
		t.Errorf("Expected empty week to be zero, got %+v", empty)
	}
}
