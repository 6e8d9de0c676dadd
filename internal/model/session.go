package model

import "time"

type SessionStatus string

const (
	SessionActive    SessionStatus = "active"
	SessionCompleted SessionStatus = "completed"
	SessionAbandoned SessionStatus = "abandoned"
)

// Answer records a resolved response to one catalog slot. Immutable
// once written; re-answering the current slot replaces it in place.
type Answer struct {
	QuestionID string    `json:"questionId" bson:"questionId"`
	OrderIndex int       `json:"orderIndex" bson:"orderIndex"` // 1-based catalog position
	Value      string    `json:"value,omitempty" bson:"value,omitempty"`
	Rating     *int      `json:"rating,omitempty" bson:"rating,omitempty"`
	Scores     Vector    `json:"scores" bson:"scores"`
	AnsweredAt time.Time `json:"answeredAt" bson:"answeredAt"`
}

// Session tracks one participant's pass through the catalog. The
// pointer is the 0-based index of the next unanswered question; it
// only ever moves forward. Stored as a single document so a
// pointer-advance plus answer write is one update.
type Session struct {
	ID             string        `json:"id" bson:"_id"`
	ParticipantID  string        `json:"participantId" bson:"participantId"`
	Pointer        int           `json:"pointer" bson:"pointer"`
	Status         SessionStatus `json:"status" bson:"status"`
	StartedAt      time.Time     `json:"startedAt" bson:"startedAt"`
	LastActivityAt time.Time     `json:"lastActivityAt" bson:"lastActivityAt"`
	Answers        []Answer      `json:"answers" bson:"answers"`
}

// Expired reports whether the session has been inactive longer than
// the given timeout.
func (s *Session) Expired(now time.Time, timeout time.Duration) bool {
	return now.Sub(s.LastActivityAt) > timeout
}

// AnswersBefore returns the answers recorded strictly before the given
// 1-based order index, in catalog order.
func (s *Session) AnswersBefore(orderIndex int) []Answer {
	out := make([]Answer, 0, len(s.Answers))
	for _, a := range s.Answers {
		if a.OrderIndex < orderIndex {
			out = append(out, a)
		}
	}
	return out
}

// PutAnswer stores the answer for its slot, replacing any previous
// answer at the same order index.
func (s *Session) PutAnswer(a Answer) {
	for i := range s.Answers {
		if s.Answers[i].OrderIndex == a.OrderIndex {
			s.Answers[i] = a
			return
		}
	}
	s.Answers = append(s.Answers, a)
}

// Selection is the raw participant input for one answer: an option
// value token for discrete questions or a numeric rating for scale
// questions.
type Selection struct {
	Value  string `json:"value,omitempty"`
	Rating *int   `json:"rating,omitempty"`
}
