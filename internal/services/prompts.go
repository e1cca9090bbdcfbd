package services

import (
	"fmt"
	"strings"
)

func buildQuizPrompt(topics []string, difficulty string) string {
	if difficulty == "" {
		difficulty = "Medium"
	}

	var b strings.Builder
	b.WriteString(`You are an expert coding interviewer. Generate a quiz with 3 Multiple Choice Questions (MCQs) and 1 short coding challenge based on the provided topics.
Return ONLY valid JSON in the following format:
{
    "mcqs": [
        {
            "question": "Question text",
            "options": ["A", "B", "C", "D"],
            "correctAnswer": 0,
            "explanation": "Why this is correct"
        }
    ],
    "codingChallenge": {
        "title": "Problem Title",
        "description": "Problem description",
        "starterCode": "function solution() {}",
        "testCases": [{"input": "...", "output": "..."}]
    }
}

`)
	fmt.Fprintf(&b, "Topics: %s. Difficulty: %s.", strings.Join(topics, ", "), difficulty)
	return b.String()
}

func buildReviewPrompt(problemTitle, code string) string {
	var b strings.Builder
	b.WriteString(`You are a senior software engineer. Review the following code. Provide constructive feedback, point out potential bugs, time complexity analysis, and a better approach if applicable.
Return ONLY valid JSON in the following format:
{
    "bugs": ["bug 1", "bug 2"],
    "feedback": "General feedback",
    "complexity": "O(n)",
    "betterApproach": "Description of better approach"
}

`)
	fmt.Fprintf(&b, "Problem: %s\nCode:\n%s", problemTitle, code)
	return b.String()
}

func buildHintPrompt(problemTitle, problemDescription, code string) string {
	var b strings.Builder
	b.WriteString("You are a helpful coding mentor. Provide a subtle hint for the problem without giving away the full solution.\n\n")
	fmt.Fprintf(&b, "Problem: %s\nDescription: %s\nCurrent Code:\n%s", problemTitle, problemDescription, code)
	return b.String()
}

func buildRewriteNotesPrompt(notes string) string {
	var b strings.Builder
	b.WriteString(`You are an expert technical writer. Rewrite the following notes in clean, structured Markdown.
- Improve clarity, grammar, and flow.
- Use headings, bullet points, and code blocks where appropriate.
- Keep the tone professional and educational.
- Do not lose any technical details.

`)
	fmt.Fprintf(&b, "Notes to rewrite:\n%s", notes)
	return b.String()
}
