package model

import "time"

// EventType identifies an engine signal consumed by external
// collaborators (gamification ledger, reporting, delivery).
type EventType string

const (
	EventSectionCompleted  EventType = "section_completed"
	EventSessionCompleted  EventType = "session_completed"
	EventPatternRecognized EventType = "pattern_recognized"
)

// Event is the payload published for engine signals. Delivery is
// fire-and-forget: a failed publish never affects engine state.
type Event struct {
	ID            string    `json:"id"`
	Type          EventType `json:"type"`
	SessionID     string    `json:"sessionId"`
	ParticipantID string    `json:"participantId"`
	Section       int       `json:"section,omitempty"`
	Code          string    `json:"code,omitempty"`
	OccurredAt    time.Time `json:"occurredAt"`
}
