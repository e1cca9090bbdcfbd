package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"preptrack-backend/internal/tracker"
)

// DashboardHandler serves the derived views: progress percentages, streaks
// and the due-revision queue. Every read reloads the full snapshot from the
// store before recomputing; nothing is cached incrementally.
type DashboardHandler struct {
	state *tracker.State
}

func NewDashboardHandler(state *tracker.State) *DashboardHandler {
	return &DashboardHandler{state: state}
}

func (h *DashboardHandler) reload(w http.ResponseWriter, r *http.Request) bool {
	if err := h.state.Load(r.Context()); err != nil {
		log.Printf("Database error: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Internal Server Error", r))
		return false
	}
	return true
}

// Stats returns total progress, streaks and the due count; an optional
// ?week= query adds that week's aggregate, ?day= that day's percentage.
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	if !h.reload(w, r) {
		return
	}

	resp := map[string]interface{}{
		"total":     h.state.TotalProgress(),
		"streaks":   h.state.Streaks(),
		"due_count": len(h.state.DueRevisions()),
	}

	if weekStr := r.URL.Query().Get("week"); weekStr != "" {
		week, err := strconv.Atoi(weekStr)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid week number", r))
			return
		}
		resp["week"] = h.state.WeekProgress(week)
	}

	if dayStr := r.URL.Query().Get("day"); dayStr != "" {
		day, err := strconv.Atoi(dayStr)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid day number", r))
			return
		}
		resp["day_percentage"] = h.state.DayProgress(day)
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *DashboardHandler) Streak(w http.ResponseWriter, r *http.Request) {
	if !h.reload(w, r) {
		return
	}
	writeJSON(w, http.StatusOK, h.state.Streaks())
}

// Due returns the revision queue in catalog order.
func (h *DashboardHandler) Due(w http.ResponseWriter, r *http.Request) {
	if !h.reload(w, r) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"due": h.state.DueRevisions()})
}

// MarkReviewed advances the review schedule for one question. Unknown or
// incomplete questions are a silent no-op, mirroring the engine's guard.
func (h *DashboardHandler) MarkReviewed(w http.ResponseWriter, r *http.Request) {
	questionID := chi.URLParam(r, "questionID")
	if questionID == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Missing question ID", r))
		return
	}

	if !h.reload(w, r) {
		return
	}

	if err := h.state.MarkReviewed(r.Context(), questionID); err != nil {
		log.Printf("Database error: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Internal Server Error", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"progress": h.state.QuestionStatus(questionID),
	})
}
