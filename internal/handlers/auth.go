package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"preptrack-backend/internal/middleware"
)

// AuthHandler exchanges the shared tracker passcode for a session token.
// The passcode is hashed once at startup; only the hash stays in memory.
type AuthHandler struct {
	passcodeHash []byte
	jwtAuth      *middleware.JWTAuth
}

func NewAuthHandler(passcode string, jwtAuth *middleware.JWTAuth) *AuthHandler {
	hash, err := bcrypt.GenerateFromPassword([]byte(passcode), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash passcode: %v", err)
	}
	return &AuthHandler{passcodeHash: hash, jwtAuth: jwtAuth}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Passcode string `json:"passcode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if err := bcrypt.CompareHashAndPassword(h.passcodeHash, []byte(req.Passcode)); err != nil {
		writeJSON(w, http.StatusUnauthorized, errorResp("UNAUTHORIZED", "Incorrect passcode", r))
		return
	}

	token, err := h.jwtAuth.GenerateSessionToken(uuid.New())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to create session", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}
