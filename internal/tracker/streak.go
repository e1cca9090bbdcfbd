package tracker

import (
	"sort"
	"time"

	"preptrack-backend/internal/models"
)

// utcDate truncates a timestamp to its UTC calendar date.
func utcDate(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// ComputeStreaks reduces completion timestamps to the set of distinct UTC
// calendar dates and derives the current and best day-over-day streaks.
// Multiple completions on the same date count once. The current streak is 0
// unless the most recent completion date is today or yesterday relative to
// the supplied reference time.
func ComputeStreaks(records map[string]models.ProgressRecord, today time.Time) models.Streaks {
	seen := make(map[time.Time]bool)
	for _, rec := range records {
		if !rec.Completed || rec.CompletedAt == nil {
			continue
		}
		seen[utcDate(*rec.CompletedAt)] = true
	}
	if len(seen) == 0 {
		return models.Streaks{}
	}

	dates := make([]time.Time, 0, len(seen))
	for d := range seen {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	// Best: longest run of consecutive dates.
	best, run := 1, 1
	for i := 1; i < len(dates); i++ {
		if dates[i].Sub(dates[i-1]) == 24*time.Hour {
			run++
			if run > best {
				best = run
			}
		} else {
			run = 1
		}
	}

	// Current: walk backward from the most recent date, which must be today
	// or yesterday to count at all.
	current := 0
	last := dates[len(dates)-1]
	ref := utcDate(today)
	if last.Equal(ref) || last.Equal(ref.AddDate(0, 0, -1)) {
		current = 1
		for i := len(dates) - 2; i >= 0; i-- {
			if dates[i+1].Sub(dates[i]) != 24*time.Hour {
				break
			}
			current++
		}
	}

	return models.Streaks{Current: current, Best: best}
}
