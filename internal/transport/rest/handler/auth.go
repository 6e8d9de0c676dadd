package handler

import (
	"encoding/json"
	"net/http"

	"careercompass/internal/model"
	"careercompass/internal/service"
)

// AuthHandler issues participant tokens.
type AuthHandler struct {
	authSvc *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authSvc *service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Token handles POST /v1/auth/token
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	var req model.TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ParticipantID == "" {
		respondJSON(w, http.StatusBadRequest, errorBody{Error: "participantId is required"})
		return
	}

	token, err := h.authSvc.IssueToken(req.ParticipantID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, model.TokenResponse{
		Token:         token,
		ParticipantID: req.ParticipantID,
	})
}
