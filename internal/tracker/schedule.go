// Package tracker holds the spaced-repetition engine: pure functions over a
// catalog plus an in-memory snapshot of progress records, and the State
// container that keeps that snapshot in sync with the store.
package tracker

import (
	"time"

	"preptrack-backend/internal/catalog"
	"preptrack-backend/internal/models"
)

// MaxReviewInterval caps the doubling curve at 60 days.
const MaxReviewInterval = 60

// anchorTime picks the reference point for the next-review computation:
// last_reviewed if present, else completed_at, else updated_at.
func anchorTime(rec models.ProgressRecord) time.Time {
	if rec.LastReviewed != nil {
		return *rec.LastReviewed
	}
	if rec.CompletedAt != nil {
		return *rec.CompletedAt
	}
	return rec.UpdatedAt
}

// DueRevisions returns every completed question whose scheduled review date
// has passed, in catalog traversal order (day ascending, question order
// within day). A zero or missing interval counts as 1 day, so a freshly
// completed question comes due on the next poll after that interval elapses.
func DueRevisions(c *catalog.Catalog, records map[string]models.ProgressRecord, now time.Time) []models.DueQuestion {
	var due []models.DueQuestion
	for _, day := range c.Days() {
		for _, q := range day.Questions {
			rec, ok := records[q.ID]
			if !ok || !rec.Completed {
				continue
			}

			interval := rec.ReviewInterval
			if interval <= 0 {
				interval = 1
			}

			next := anchorTime(rec).AddDate(0, 0, interval)
			if !next.After(now) {
				due = append(due, models.DueQuestion{
					Question: q,
					Day:      day.Day,
					Progress: rec,
				})
			}
		}
	}
	return due
}

// AdvanceReview produces the upsert payload for a "mark as reviewed" action:
// the interval doubles (capped at MaxReviewInterval), the review count goes
// up by one and last_reviewed moves to now. Completed, notes and code ride
// along unchanged so the store's overwrite columns keep their values.
func AdvanceReview(rec models.ProgressRecord, now time.Time) models.ProgressUpdate {
	interval := rec.ReviewInterval
	if interval < 1 {
		interval = 1
	}
	interval *= 2
	if interval > MaxReviewInterval {
		interval = MaxReviewInterval
	}

	count := rec.ReviewCount + 1
	reviewed := now

	return models.ProgressUpdate{
		QuestionID:     rec.QuestionID,
		Completed:      rec.Completed,
		Notes:          rec.Notes,
		Code:           rec.Code,
		LastReviewed:   &reviewed,
		ReviewInterval: &interval,
		ReviewCount:    &count,
	}
}
