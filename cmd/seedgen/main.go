// seedgen converts the raw study-plan seed JSON into the catalog data file
// embedded by internal/catalog. Run offline whenever the plan changes:
//
//	go run ./cmd/seedgen -in seed_data.json -out internal/catalog/data/questions.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"preptrack-backend/internal/models"
)

type seedDay struct {
	Day             int    `json:"day"`
	Date            string `json:"date"`
	Theme           string `json:"theme"`
	CodingQuestions string `json:"coding_questions"`
	SystemDesign    string `json:"system_design"`
}

func main() {
	in := flag.String("in", "seed_data.json", "raw seed plan JSON")
	out := flag.String("out", "internal/catalog/data/questions.json", "catalog output path")
	flag.Parse()

	raw, err := os.ReadFile(*in)
	if err != nil {
		log.Fatalf("failed to read seed data: %v", err)
	}

	var seed []seedDay
	if err := json.Unmarshal(raw, &seed); err != nil {
		log.Fatalf("failed to parse seed data: %v", err)
	}

	days := make([]models.Day, 0, len(seed))
	for _, item := range seed {
		days = append(days, processDay(item))
	}

	output, err := json.MarshalIndent(days, "", "  ")
	if err != nil {
		log.Fatalf("failed to encode catalog: %v", err)
	}
	if err := os.WriteFile(*out, output, 0644); err != nil {
		log.Fatalf("failed to write catalog: %v", err)
	}

	total := 0
	for _, d := range days {
		total += len(d.Questions)
	}
	log.Printf("Processed %d days (%d questions). Data saved to %s", len(days), total, *out)
}

func processDay(item seedDay) models.Day {
	day := models.Day{
		Day:   item.Day,
		Date:  item.Date,
		Week:  (item.Day-1)/7 + 1,
		Theme: item.Theme,
	}

	if item.CodingQuestions != "" {
		if isSpecial(item.CodingQuestions) {
			day.Questions = append(day.Questions, models.Question{
				ID:         fmt.Sprintf("d%d-special", item.Day),
				Title:      item.CodingQuestions,
				Topic:      item.Theme,
				Difficulty: "N/A",
				Type:       "special",
			})
		} else {
			for i, title := range splitQuestions(item.CodingQuestions) {
				day.Questions = append(day.Questions, models.Question{
					ID:         fmt.Sprintf("d%d-q%d", item.Day, i+1),
					Title:      title,
					Topic:      item.Theme,
					Difficulty: difficultyFor(item.Day),
					Type:       "new",
				})
			}
		}
	}

	if item.SystemDesign != "" {
		day.Questions = append(day.Questions, models.Question{
			ID:         fmt.Sprintf("d%d-sd", item.Day),
			Title:      item.SystemDesign,
			Topic:      "System Design",
			Difficulty: difficultyFor(item.Day),
			Type:       "new",
		})
	}

	for _, q := range day.Questions {
		switch q.Type {
		case "new":
			day.NewCount++
		case "review":
			day.ReviewCount++
		}
	}
	return day
}

func isSpecial(s string) bool {
	return strings.Contains(s, "MOCK TEST") ||
		strings.Contains(s, "REVISION") ||
		strings.Contains(s, "FINAL ASSESSMENT")
}

// difficultyFor maps the plan phase to a difficulty label: weeks 1-3 easy,
// weeks 4-6 medium, weeks 7-8 hard, final stretch mixed.
func difficultyFor(day int) string {
	switch {
	case day <= 21:
		return "Easy"
	case day <= 41:
		return "Medium"
	case day <= 58:
		return "Hard"
	default:
		return "Mixed"
	}
}

// splitQuestions splits a comma-separated title list, ignoring commas inside
// parentheses ("Two Sum (sorted, duplicates allowed)" stays one title).
func splitQuestions(s string) []string {
	var parts []string
	depth := 0
	start := 0
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, s[start:])

	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
