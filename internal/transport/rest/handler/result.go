package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"careercompass/internal/model"
	"careercompass/internal/service"
	"careercompass/internal/transport/rest/middleware"
)

// ResultHandler serves completed-session profiles and career matches.
type ResultHandler struct {
	sessionSvc *service.SessionService
}

// NewResultHandler creates a new result handler
func NewResultHandler(sessionSvc *service.SessionService) *ResultHandler {
	return &ResultHandler{sessionSvc: sessionSvc}
}

// Get handles GET /v1/sessions/{sessionId}/result
func (h *ResultHandler) Get(w http.ResponseWriter, r *http.Request) {
	participantID := middleware.GetParticipantID(r.Context())
	sessionID := mux.Vars(r)["sessionId"]

	profile, err := h.sessionSvc.Result(r.Context(), participantID, sessionID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, model.ResultResponse{
		Profile: profile,
		Matches: profile.Matches,
	})
}

// History handles GET /v1/results
func (h *ResultHandler) History(w http.ResponseWriter, r *http.Request) {
	participantID := middleware.GetParticipantID(r.Context())

	profiles, err := h.sessionSvc.History(r.Context(), participantID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, model.HistoryResponse{Profiles: profiles})
}
