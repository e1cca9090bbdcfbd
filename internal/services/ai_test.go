package services

import (
	"encoding/json"
	"strings"
	"testing"

	"preptrack-backend/internal/models"
)

func TestBuildQuizPrompt(t *testing.T) {
	prompt := buildQuizPrompt([]string{"Graphs", "Dynamic Programming"}, "Hard")

	if !strings.Contains(prompt, "Topics: Graphs, Dynamic Programming.") {
		t.Error("Prompt missing topic list")
	}
	if !strings.Contains(prompt, "Difficulty: Hard.") {
		t.Error("Prompt missing difficulty")
	}
	if !strings.Contains(prompt, `"codingChallenge"`) {
		t.Error("Prompt missing JSON schema for coding challenge")
	}
}

func TestBuildQuizPromptDefaultsDifficulty(t *testing.T) {
	prompt := buildQuizPrompt([]string{"Stacks"}, "")
	if !strings.Contains(prompt, "Difficulty: Medium.") {
		t.Error("Empty difficulty should default to Medium")
	}
}

func TestBuildReviewPrompt(t *testing.T) {
	prompt := buildReviewPrompt("Two Sum", "def two_sum(nums): pass")

	if !strings.Contains(prompt, "Problem: Two Sum") {
		t.Error("Prompt missing problem title")
	}
	if !strings.Contains(prompt, "def two_sum(nums): pass") {
		t.Error("Prompt missing submitted code")
	}
	if !strings.Contains(prompt, `"betterApproach"`) {
		t.Error("Prompt missing JSON schema")
	}
}

func TestBuildHintPromptAvoidsFullSolutionLanguage(t *testing.T) {
	prompt := buildHintPrompt("Two Sum", "Find indices summing to target", "")
	if !strings.Contains(prompt, "without giving away the full solution") {
		t.Error("Hint prompt must instruct against revealing the solution")
	}
}

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain json untouched", `{"a":1}`, `{"a":1}`},
		{"json fence removed", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence removed", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"surrounding whitespace trimmed", "  {\"a\":1}  ", `{"a":1}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := stripCodeFence(tc.input); got != tc.want {
				t.Errorf("Expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestQuizResultParsing(t *testing.T) {
	raw := `{
		"mcqs": [
			{"question": "What is the complexity of heap insert?", "options": ["O(1)", "O(log n)", "O(n)", "O(n log n)"], "correctAnswer": 1, "explanation": "Sift-up walks one root-to-leaf path."}
		],
		"codingChallenge": {
			"title": "Merge Intervals",
			"description": "Merge all overlapping intervals.",
			"starterCode": "function merge(intervals) {}",
			"testCases": [{"input": "[[1,3],[2,6]]", "output": "[[1,6]]"}]
		}
	}`

	var result models.QuizResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		t.Fatalf("Failed to parse quiz result: %v", err)
	}

	if len(result.MCQs) != 1 || result.MCQs[0].CorrectAnswer != 1 {
		t.Errorf("MCQ not parsed correctly: %+v", result.MCQs)
	}
	if result.CodingChallenge.Title != "Merge Intervals" || len(result.CodingChallenge.TestCases) != 1 {
		t.Errorf("Coding challenge not parsed correctly: %+v", result.CodingChallenge)
	}
}
