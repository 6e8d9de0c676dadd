package model

// Request/response payloads for the REST transport.

type TokenRequest struct {
	ParticipantID string `json:"participantId"`
}

type TokenResponse struct {
	Token         string `json:"token"`
	ParticipantID string `json:"participantId"`
}

type StartSessionRequest struct {
	// Replace abandons an existing active session instead of failing
	// with a conflict. Must be explicit.
	Replace bool `json:"replace,omitempty"`
}

type StartSessionResponse struct {
	SessionID string `json:"sessionId"`
	Pointer   int    `json:"pointer"`
	Total     int    `json:"total"`
}

type SubmitAnswerRequest struct {
	QuestionID string `json:"questionId"`
	Value      string `json:"value,omitempty"`
	Rating     *int   `json:"rating,omitempty"`
}

type SubmitAnswerResponse struct {
	Pointer          int      `json:"pointer"`
	Total            int      `json:"total"`
	SectionCompleted int      `json:"sectionCompleted,omitempty"`
	Completed        bool     `json:"completed"`
	Profile          *Profile `json:"profile,omitempty"`
}

// OptionView is an option stripped of its score vector. Scores stay
// server-side.
type OptionView struct {
	Value string `json:"value"`
	Text  string `json:"text"`
}

// QuestionView is the current-question payload handed to the
// rendering collaborator.
type QuestionView struct {
	ID      string       `json:"id"`
	Text    string       `json:"text"`
	Type    QuestionType `json:"type"`
	Section int          `json:"section"`
	Order   int          `json:"order"`
	Total   int          `json:"total"`
	Options []OptionView `json:"options,omitempty"`
	Range   *RatingRange `json:"range,omitempty"`
}

// ViewOf builds the outward payload for a resolved question.
func ViewOf(q *Question, total int) *QuestionView {
	view := &QuestionView{
		ID:      q.ID,
		Text:    q.Text,
		Type:    q.Type,
		Section: q.Section,
		Order:   q.Order,
		Total:   total,
		Range:   q.Range,
	}
	for _, opt := range q.Options {
		view.Options = append(view.Options, OptionView{Value: opt.Value, Text: opt.Text})
	}
	return view
}

type ResultResponse struct {
	Profile *Profile      `json:"profile"`
	Matches []CareerMatch `json:"matches"`
}

type HistoryResponse struct {
	Profiles []*Profile `json:"profiles"`
}
