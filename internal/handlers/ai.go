package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"preptrack-backend/internal/models"
	"preptrack-backend/internal/services"
)

// AIHandler proxies {type, data} requests to the Gemini-backed service.
// Failures surface as a 500 with the diagnostic attached; nothing is
// retried automatically.
type AIHandler struct {
	ai *services.AIService
}

func NewAIHandler(ai *services.AIService) *AIHandler {
	return &AIHandler{ai: ai}
}

func (h *AIHandler) Proxy(w http.ResponseWriter, r *http.Request) {
	var req models.AIRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	var (
		result interface{}
		err    error
	)

	switch req.Type {
	case models.AITypeQuiz:
		var data models.QuizData
		if err := json.Unmarshal(req.Data, &data); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid quiz data", r))
			return
		}
		result, err = h.ai.GenerateQuiz(r.Context(), data)

	case models.AITypeReview:
		var data models.ReviewData
		if err := json.Unmarshal(req.Data, &data); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid review data", r))
			return
		}
		result, err = h.ai.ReviewCode(r.Context(), data)

	case models.AITypeHint:
		var data models.HintData
		if err := json.Unmarshal(req.Data, &data); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid hint data", r))
			return
		}
		result, err = h.ai.Hint(r.Context(), data)

	case models.AITypeRewriteNotes:
		var data models.RewriteNotesData
		if err := json.Unmarshal(req.Data, &data); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid notes data", r))
			return
		}
		result, err = h.ai.RewriteNotes(r.Context(), data)

	default:
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request type", r))
		return
	}

	if err != nil {
		log.Printf("AI API error: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResp("AI_ERROR", err.Error(), r))
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// LatestQuiz returns the most recently generated quiz from the cache.
func (h *AIHandler) LatestQuiz(w http.ResponseWriter, r *http.Request) {
	quiz, err := h.ai.LatestQuiz(r.Context())
	if err != nil {
		log.Printf("Quiz cache error: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to read quiz cache", r))
		return
	}
	if quiz == nil {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "No quiz generated yet", r))
		return
	}
	writeJSON(w, http.StatusOK, quiz)
}
