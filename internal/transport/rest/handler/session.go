package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"careercompass/internal/model"
	"careercompass/internal/service"
	"careercompass/internal/transport/rest/middleware"
)

// SessionHandler exposes the session state machine.
type SessionHandler struct {
	sessionSvc *service.SessionService
	total      int
}

// NewSessionHandler creates a new session handler. Total is the
// catalog length N, echoed in progress payloads.
func NewSessionHandler(sessionSvc *service.SessionService, total int) *SessionHandler {
	return &SessionHandler{sessionSvc: sessionSvc, total: total}
}

// Start handles POST /v1/sessions
func (h *SessionHandler) Start(w http.ResponseWriter, r *http.Request) {
	participantID := middleware.GetParticipantID(r.Context())

	var req model.StartSessionRequest
	if r.Body != nil {
		// Empty body means default policy: no silent replacement.
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	session, err := h.sessionSvc.Start(r.Context(), participantID, req.Replace)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, model.StartSessionResponse{
		SessionID: session.ID,
		Pointer:   session.Pointer,
		Total:     h.total,
	})
}

// CurrentQuestion handles GET /v1/sessions/{sessionId}/question
func (h *SessionHandler) CurrentQuestion(w http.ResponseWriter, r *http.Request) {
	participantID := middleware.GetParticipantID(r.Context())
	sessionID := mux.Vars(r)["sessionId"]

	question, err := h.sessionSvc.CurrentQuestion(r.Context(), participantID, sessionID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, model.ViewOf(question, h.total))
}

// SubmitAnswer handles POST /v1/sessions/{sessionId}/answers
func (h *SessionHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	participantID := middleware.GetParticipantID(r.Context())
	sessionID := mux.Vars(r)["sessionId"]

	var req model.SubmitAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.QuestionID == "" {
		respondJSON(w, http.StatusBadRequest, errorBody{Error: "questionId is required"})
		return
	}

	outcome, err := h.sessionSvc.RecordAnswer(r.Context(), participantID, sessionID, req.QuestionID, model.Selection{
		Value:  req.Value,
		Rating: req.Rating,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, model.SubmitAnswerResponse{
		Pointer:          outcome.Pointer,
		Total:            outcome.Total,
		SectionCompleted: outcome.SectionCompleted,
		Completed:        outcome.Completed,
		Profile:          outcome.Profile,
	})
}

// Abandon handles POST /v1/sessions/{sessionId}/abandon
func (h *SessionHandler) Abandon(w http.ResponseWriter, r *http.Request) {
	participantID := middleware.GetParticipantID(r.Context())
	sessionID := mux.Vars(r)["sessionId"]

	if err := h.sessionSvc.Abandon(r.Context(), participantID, sessionID); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
