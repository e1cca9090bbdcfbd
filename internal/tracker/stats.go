package tracker

import (
	"preptrack-backend/internal/catalog"
	"preptrack-backend/internal/models"
)

// DayProgress returns the completion percentage for one day, 0 when the day
// is unknown or has no questions.
func DayProgress(c *catalog.Catalog, records map[string]models.ProgressRecord, day int) float64 {
	d, ok := c.Day(day)
	if !ok || len(d.Questions) == 0 {
		return 0
	}

	completed := 0
	for _, q := range d.Questions {
		if rec, ok := records[q.ID]; ok && rec.Completed {
			completed++
		}
	}
	return float64(completed) / float64(len(d.Questions)) * 100
}

// WeekProgress aggregates completion over one week of the plan.
func WeekProgress(c *catalog.Catalog, records map[string]models.ProgressRecord, week int) models.TotalProgress {
	var p models.TotalProgress
	for _, d := range c.Days() {
		if d.Week != week {
			continue
		}
		for _, q := range d.Questions {
			p.Total++
			if rec, ok := records[q.ID]; ok && rec.Completed {
				p.Completed++
			}
		}
	}
	if p.Total > 0 {
		p.Percentage = float64(p.Completed) / float64(p.Total) * 100
	}
	return p
}

// TotalProgressOf aggregates completion across the whole catalog.
func TotalProgressOf(c *catalog.Catalog, records map[string]models.ProgressRecord) models.TotalProgress {
	var p models.TotalProgress
	for _, d := range c.Days() {
		for _, q := range d.Questions {
			p.Total++
			if rec, ok := records[q.ID]; ok && rec.Completed {
				p.Completed++
			}
		}
	}
	if p.Total > 0 {
		p.Percentage = float64(p.Completed) / float64(p.Total) * 100
	}
	return p
}
