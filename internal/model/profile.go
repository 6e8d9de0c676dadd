package model

import "time"

// Profile is the scored outcome of a completed session. Created once;
// recomputing it from the same answers and norms yields the same
// value. Matches is a cached copy of the ranked career list — the
// matching engine can always recompute it from the percentile vector.
type Profile struct {
	SessionID     string        `json:"sessionId" bson:"_id"`
	ParticipantID string        `json:"participantId" bson:"participantId"`
	Raw           Vector        `json:"raw" bson:"raw"`
	Percentiles   Vector        `json:"percentiles" bson:"percentiles"`
	Code          string        `json:"code" bson:"code"`
	CompletedAt   time.Time     `json:"completedAt" bson:"completedAt"`
	Matches       []CareerMatch `json:"matches,omitempty" bson:"matches,omitempty"`
}
