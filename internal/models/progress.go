package models

import "time"

// ProgressRecord is the mutable per-question row. At most one record exists
// per question_id; rows are created on first upsert and never deleted.
type ProgressRecord struct {
	QuestionID     string     `json:"question_id"`
	Completed      bool       `json:"completed"`
	Notes          string     `json:"notes"`
	Code           string     `json:"code"`
	CompletedAt    *time.Time `json:"completed_at"`
	LastReviewed   *time.Time `json:"last_reviewed"`
	ReviewInterval int        `json:"review_interval"`
	ReviewCount    int        `json:"review_count"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// ProgressUpdate is the partial-update payload accepted by the upsert path.
// Completed, Notes and Code always overwrite the stored row; the pointer
// fields follow the coalesce policy and keep the stored value when nil.
type ProgressUpdate struct {
	QuestionID     string     `json:"question_id"`
	Completed      bool       `json:"completed"`
	Notes          string     `json:"notes"`
	Code           string     `json:"code"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
	LastReviewed   *time.Time `json:"last_reviewed,omitempty"`
	ReviewInterval *int       `json:"review_interval,omitempty"`
	ReviewCount    *int       `json:"review_count,omitempty"`
}

// TotalProgress aggregates completion across the whole catalog.
type TotalProgress struct {
	Total      int     `json:"total"`
	Completed  int     `json:"completed"`
	Percentage float64 `json:"percentage"`
}

// Streaks holds the day-over-day completion streaks.
type Streaks struct {
	Current int `json:"current"`
	Best    int `json:"best"`
}

// DueQuestion is a completed question whose next review date has passed,
// annotated with its owning day and current progress fields.
type DueQuestion struct {
	Question Question       `json:"question"`
	Day      int            `json:"day"`
	Progress ProgressRecord `json:"progress"`
}
