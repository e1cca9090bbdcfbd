package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"preptrack-backend/internal/catalog"
)

// CatalogHandler serves the read-only 90-day plan.
type CatalogHandler struct {
	catalog *catalog.Catalog
}

func NewCatalogHandler(c *catalog.Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: c}
}

func (h *CatalogHandler) Days(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.catalog.Days())
}

func (h *CatalogHandler) Day(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(chi.URLParam(r, "day"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid day number", r))
		return
	}

	day, ok := h.catalog.Day(n)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Day not in plan", r))
		return
	}
	writeJSON(w, http.StatusOK, day)
}
