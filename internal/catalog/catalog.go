// Package catalog serves the static 90-day question plan. The data file is
// produced offline by cmd/seedgen and embedded at build time; nothing here
// mutates it.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"preptrack-backend/internal/models"
)

//go:embed data/questions.json
var questionsJSON []byte

type Catalog struct {
	days    []models.Day
	byDay   map[int]*models.Day
	byID    map[string]*models.Question
	ownerOf map[string]int // question ID -> day number
}

// Load parses the embedded plan. Called once at startup.
func Load() (*Catalog, error) {
	var days []models.Day
	if err := json.Unmarshal(questionsJSON, &days); err != nil {
		return nil, fmt.Errorf("failed to parse embedded catalog: %w", err)
	}
	return FromDays(days), nil
}

// FromDays builds a catalog from an explicit day list.
func FromDays(days []models.Day) *Catalog {
	c := &Catalog{
		days:    days,
		byDay:   make(map[int]*models.Day, len(days)),
		byID:    make(map[string]*models.Question),
		ownerOf: make(map[string]int),
	}
	for i := range c.days {
		d := &c.days[i]
		c.byDay[d.Day] = d
		for j := range d.Questions {
			q := &d.Questions[j]
			c.byID[q.ID] = q
			c.ownerOf[q.ID] = d.Day
		}
	}
	return c
}

// Days returns the full plan in day order.
func (c *Catalog) Days() []models.Day {
	return c.days
}

// Day looks up a single day; ok is false for day numbers outside the plan.
func (c *Catalog) Day(n int) (models.Day, bool) {
	d, ok := c.byDay[n]
	if !ok {
		return models.Day{}, false
	}
	return *d, true
}

// Question looks up a catalog question by its stable ID.
func (c *Catalog) Question(id string) (models.Question, bool) {
	q, ok := c.byID[id]
	if !ok {
		return models.Question{}, false
	}
	return *q, true
}

// OwningDay returns the day number a question belongs to, 0 if unknown.
func (c *Catalog) OwningDay(id string) int {
	return c.ownerOf[id]
}

// TotalQuestions counts every question across the plan.
func (c *Catalog) TotalQuestions() int {
	return len(c.byID)
}
