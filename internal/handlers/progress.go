package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/redis/go-redis/v9"

	"preptrack-backend/internal/models"
	"preptrack-backend/internal/repository"
)

// ProgressUpdatesChannel is the redis pub/sub channel committed upserts are
// announced on; the websocket hub relays it to connected sessions.
const ProgressUpdatesChannel = "progress_updates"

// ProgressHandler serves one progress table. Two instances are mounted: the
// legacy table at /api/progress and the v2 table at /api/progress_v2.
type ProgressHandler struct {
	repo   *repository.ProgressRepo
	pubsub *redis.Client
}

func NewProgressHandler(repo *repository.ProgressRepo, pubsub *redis.Client) *ProgressHandler {
	return &ProgressHandler{repo: repo, pubsub: pubsub}
}

// FetchAll returns every stored row as a JSON array.
func (h *ProgressHandler) FetchAll(w http.ResponseWriter, r *http.Request) {
	records, err := h.repo.FetchAll(r.Context())
	if err != nil {
		log.Printf("Database error: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Internal Server Error", r))
		return
	}
	if records == nil {
		records = []models.ProgressRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}

// Upsert inserts or merges one row keyed by question_id.
func (h *ProgressHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var upd models.ProgressUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}
	if upd.QuestionID == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "question_id is required", r))
		return
	}

	if err := h.repo.Upsert(r.Context(), upd); err != nil {
		log.Printf("Database error: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Internal Server Error", r))
		return
	}

	if h.pubsub != nil {
		msg, _ := json.Marshal(models.WSMessage{Type: "progress_update", Payload: upd})
		h.pubsub.Publish(r.Context(), ProgressUpdatesChannel, string(msg))
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
