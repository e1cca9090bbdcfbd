package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/redis/go-redis/v9"
	"google.golang.org/api/option"

	"preptrack-backend/internal/models"
)

const quizCacheKey = "ai:quiz:latest"

// AIService proxies the four interview-prep operations to Gemini. Structured
// operations (quiz, review) go through a JSON-mode model; hint and note
// rewriting return free text.
type AIService struct {
	client    *genai.Client
	textModel *genai.GenerativeModel
	jsonModel *genai.GenerativeModel
	cache     *redis.Client
	quizTTL   time.Duration
	rateChan  chan struct{} // Token bucket
}

func NewAIService(apiKey, modelName string, concurrentReqs int, cache *redis.Client, quizTTL time.Duration) (*AIService, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	textModel := client.GenerativeModel(modelName)
	textModel.SetTemperature(0.7)
	textModel.SetTopP(0.95)

	jsonModel := client.GenerativeModel(modelName)
	jsonModel.SetTemperature(0.7)
	jsonModel.SetTopP(0.95)
	jsonModel.ResponseMIMEType = "application/json"

	// Token bucket for rate limiting
	rateChan := make(chan struct{}, concurrentReqs)
	for i := 0; i < concurrentReqs; i++ {
		rateChan <- struct{}{}
	}

	return &AIService{
		client:    client,
		textModel: textModel,
		jsonModel: jsonModel,
		cache:     cache,
		quizTTL:   quizTTL,
		rateChan:  rateChan,
	}, nil
}

func (s *AIService) Close() {
	s.client.Close()
}

// acquireRate blocks until a rate slot is available
func (s *AIService) acquireRate(ctx context.Context) error {
	select {
	case <-s.rateChan:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(2 * time.Minute):
		return fmt.Errorf("timeout waiting for Gemini rate slot")
	}
}

func (s *AIService) releaseRate() {
	s.rateChan <- struct{}{}
}

func (s *AIService) generate(ctx context.Context, model *genai.GenerativeModel, prompt string) (string, error) {
	if err := s.acquireRate(ctx); err != nil {
		return "", err
	}
	defer s.releaseRate()

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}

	text := extractText(resp)
	if text == "" {
		return "", fmt.Errorf("Gemini returned an empty response")
	}
	return text, nil
}

// GenerateQuiz builds 3 MCQs plus a coding challenge for the given topics.
// The latest result is cached so a page reload does not cost a model call.
func (s *AIService) GenerateQuiz(ctx context.Context, data models.QuizData) (*models.QuizResult, error) {
	raw, err := s.generate(ctx, s.jsonModel, buildQuizPrompt(data.Topics, data.Difficulty))
	if err != nil {
		return nil, err
	}

	var result models.QuizResult
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &result); err != nil {
		return nil, fmt.Errorf("malformed quiz JSON from model: %w", err)
	}

	if s.cache != nil {
		if payload, err := json.Marshal(result); err == nil {
			s.cache.Set(ctx, quizCacheKey, payload, s.quizTTL)
		}
	}
	return &result, nil
}

// LatestQuiz returns the cached quiz, or nil when none is cached.
func (s *AIService) LatestQuiz(ctx context.Context) (*models.QuizResult, error) {
	if s.cache == nil {
		return nil, nil
	}
	payload, err := s.cache.Get(ctx, quizCacheKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read quiz cache: %w", err)
	}

	var result models.QuizResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, fmt.Errorf("corrupt quiz cache entry: %w", err)
	}
	return &result, nil
}

// ReviewCode asks for bugs, feedback, a complexity estimate and a better
// approach for submitted code.
func (s *AIService) ReviewCode(ctx context.Context, data models.ReviewData) (*models.CodeReviewResult, error) {
	raw, err := s.generate(ctx, s.jsonModel, buildReviewPrompt(data.ProblemTitle, data.Code))
	if err != nil {
		return nil, err
	}

	var result models.CodeReviewResult
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &result); err != nil {
		return nil, fmt.Errorf("malformed review JSON from model: %w", err)
	}
	return &result, nil
}

// Hint returns a partial hint that does not reveal the full solution.
func (s *AIService) Hint(ctx context.Context, data models.HintData) (*models.TextResult, error) {
	text, err := s.generate(ctx, s.textModel, buildHintPrompt(data.ProblemTitle, data.ProblemDescription, data.Code))
	if err != nil {
		return nil, err
	}
	return &models.TextResult{Message: text}, nil
}

// RewriteNotes reformats raw notes as structured technical writing.
func (s *AIService) RewriteNotes(ctx context.Context, data models.RewriteNotesData) (*models.TextResult, error) {
	text, err := s.generate(ctx, s.textModel, buildRewriteNotesPrompt(data.Notes))
	if err != nil {
		return nil, err
	}
	return &models.TextResult{Message: text}, nil
}

func extractText(resp *genai.GenerateContentResponse) string {
	var b strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				b.WriteString(string(text))
			}
		}
	}
	return strings.TrimSpace(b.String())
}

// stripCodeFence removes a surrounding ```json fence if the model added one
// despite JSON response mode.
func stripCodeFence(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
