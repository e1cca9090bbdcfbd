package models

import "encoding/json"

// AI operation kinds accepted by POST /api/ai.
const (
	AITypeQuiz         = "quiz"
	AITypeReview       = "review"
	AITypeHint         = "hint"
	AITypeRewriteNotes = "rewrite_notes"
)

// AIRequest is the envelope for all AI proxy calls. Data is decoded per
// operation kind by the service.
type AIRequest struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type QuizData struct {
	Topics     []string `json:"topics"`
	Difficulty string   `json:"difficulty"`
}

type ReviewData struct {
	ProblemTitle string `json:"problemTitle"`
	Code         string `json:"code"`
}

type HintData struct {
	ProblemTitle       string `json:"problemTitle"`
	ProblemDescription string `json:"problemDescription"`
	Code               string `json:"code"`
}

type RewriteNotesData struct {
	Notes string `json:"notes"`
}

type MCQ struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

type TestCase struct {
	Input  string `json:"input"`
	Output string `json:"output"`
}

type CodingChallenge struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	StarterCode string     `json:"starterCode"`
	TestCases   []TestCase `json:"testCases"`
}

// QuizResult is the structured output of the quiz operation: 3 MCQs plus
// one open-ended coding item.
type QuizResult struct {
	MCQs            []MCQ           `json:"mcqs"`
	CodingChallenge CodingChallenge `json:"codingChallenge"`
}

// CodeReviewResult is the structured output of the review operation.
type CodeReviewResult struct {
	Bugs           []string `json:"bugs"`
	Feedback       string   `json:"feedback"`
	Complexity     string   `json:"complexity"`
	BetterApproach string   `json:"betterApproach"`
}

// TextResult wraps free-text AI responses (hint, rewrite_notes).
type TextResult struct {
	Message string `json:"message"`
}
