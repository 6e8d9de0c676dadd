package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"careercompass/internal/catalog"
	"careercompass/internal/model"
)

// testNorms matches the published population norms used throughout
// the scoring tests.
func testNorms() model.Norms {
	return model.Norms{
		model.DimRealistic:     {Mean: 16.5, SD: 9.2},
		model.DimInvestigative: {Mean: 20.3, SD: 8.8},
		model.DimArtistic:      {Mean: 21.1, SD: 9.5},
		model.DimSocial:        {Mean: 24.7, SD: 8.5},
		model.DimEnterprising:  {Mean: 21.4, SD: 9.0},
		model.DimConventional:  {Mean: 17.8, SD: 8.9},
	}
}

// dimOptions builds one option per dimension, each scoring 1.0 on its
// own dimension. Lets tests drive any raw total they need.
func dimOptions() []model.Option {
	opts := make([]model.Option, 0, len(model.Dimensions))
	for _, d := range model.Dimensions {
		scores := model.NewVector()
		scores[d] = 1.0
		opts = append(opts, model.Option{
			Value:  string(d),
			Text:   d.Name(),
			Scores: scores,
		})
	}
	return opts
}

func fallbackOptions() []model.Option {
	pairs := [][2]model.Dimension{
		{model.DimRealistic, model.DimInvestigative},
		{model.DimArtistic, model.DimSocial},
		{model.DimEnterprising, model.DimConventional},
		{model.DimSocial, model.DimInvestigative},
	}
	opts := make([]model.Option, 0, len(pairs))
	for _, pair := range pairs {
		scores := model.NewVector()
		scores[pair[0]] = 0.5
		scores[pair[1]] = 0.5
		opts = append(opts, model.Option{
			Value:  string(pair[0]) + string(pair[1]),
			Text:   "fallback " + string(pair[0]) + string(pair[1]),
			Scores: scores,
		})
	}
	return opts
}

// testCatalog is a 9-question bundle: six choice questions (one
// option per dimension), the mirror slot at order 7, a rating and a
// binary question. Three sections of three.
func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()

	questions := []model.Question{}
	for i := 1; i <= 6; i++ {
		section := 1
		if i > 3 {
			section = 2
		}
		questions = append(questions, model.Question{
			ID:      questionID(i),
			Text:    "choice question",
			Type:    model.QuestionTypeSingleChoice,
			Section: section,
			Order:   i,
			Primary: model.DimInvestigative,
			Options: dimOptions(),
		})
	}
	questions = append(questions,
		model.Question{
			ID:      "q7",
			Text:    "which feels most like you",
			Type:    model.QuestionTypeSingleChoice,
			Section: 3,
			Order:   7,
			Primary: model.DimInvestigative,
			Dynamic: true,
			Options: fallbackOptions(),
		},
		model.Question{
			ID:      "q8",
			Text:    "rate your comfort leading",
			Type:    model.QuestionTypeRating,
			Section: 3,
			Order:   8,
			Primary: model.DimEnterprising,
			Range:   &model.RatingRange{Min: 1, Max: 5},
		},
		model.Question{
			ID:      "q9",
			Text:    "people or problems",
			Type:    model.QuestionTypeBinary,
			Section: 3,
			Order:   9,
			Primary: model.DimSocial,
			Options: []model.Option{
				{Value: "people", Text: "people", Scores: model.Vector{model.DimSocial: 1.0}},
				{Value: "problems", Text: "problems", Scores: model.Vector{model.DimInvestigative: 1.0}},
			},
		},
	)

	careers := []model.Career{
		{ID: "mirror-career", Title: "Mirror Career", Profile: model.Vector{
			model.DimRealistic: 11, model.DimInvestigative: 99, model.DimArtistic: 8,
			model.DimSocial: 89, model.DimEnterprising: 10, model.DimConventional: 91,
		}},
		{ID: "flat-career", Title: "Flat Career", Profile: model.Vector{
			model.DimRealistic: 50, model.DimInvestigative: 50, model.DimArtistic: 50,
			model.DimSocial: 50, model.DimEnterprising: 50, model.DimConventional: 50,
		}},
		{ID: "anti-career", Title: "Anti Career", Profile: model.Vector{
			model.DimRealistic: 89, model.DimInvestigative: 1, model.DimArtistic: 92,
			model.DimSocial: 11, model.DimEnterprising: 90, model.DimConventional: 9,
		}},
	}

	cat, err := catalog.New(questions, testNorms(), careers)
	require.NoError(t, err)
	return cat
}

func questionID(order int) string {
	return "q" + string(rune('0'+order))
}

// --- in-memory fakes -------------------------------------------------

type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]*model.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*model.Session)}
}

func copySession(s *model.Session) *model.Session {
	cp := *s
	cp.Answers = append([]model.Answer(nil), s.Answers...)
	return &cp
}

func (r *fakeSessionRepo) Create(_ context.Context, session *model.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.ID] = copySession(session)
	return nil
}

func (r *fakeSessionRepo) GetByID(_ context.Context, id string) (*model.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, nil
	}
	return copySession(s), nil
}

func (r *fakeSessionRepo) Update(_ context.Context, session *model.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.ID] = copySession(session)
	return nil
}

func (r *fakeSessionRepo) GetActiveByParticipant(_ context.Context, participantID string) (*model.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.sessions {
		if s.ParticipantID == participantID && s.Status == model.SessionActive {
			return copySession(s), nil
		}
	}
	return nil, nil
}

func (r *fakeSessionRepo) ListStaleActive(_ context.Context, cutoff time.Time, limit int64) ([]*model.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Session
	for _, s := range r.sessions {
		if s.Status == model.SessionActive && s.LastActivityAt.Before(cutoff) {
			out = append(out, copySession(s))
			if int64(len(out)) >= limit {
				break
			}
		}
	}
	return out, nil
}

// age rewinds a stored session's last activity.
func (r *fakeSessionRepo) age(id string, by time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[id]; ok {
		s.LastActivityAt = s.LastActivityAt.Add(-by)
	}
}

func (r *fakeSessionRepo) activeCount(participantID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, s := range r.sessions {
		if s.ParticipantID == participantID && s.Status == model.SessionActive {
			count++
		}
	}
	return count
}

func (r *fakeSessionRepo) stored(id string) *model.Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[id]; ok {
		return copySession(s)
	}
	return nil
}

type fakeProfileRepo struct {
	mu       sync.Mutex
	profiles map[string]*model.Profile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[string]*model.Profile)}
}

func (r *fakeProfileRepo) Save(_ context.Context, profile *model.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *profile
	r.profiles[profile.SessionID] = &cp
	return nil
}

func (r *fakeProfileRepo) GetBySessionID(_ context.Context, sessionID string) (*model.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[sessionID]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProfileRepo) GetByParticipant(_ context.Context, participantID string) ([]*model.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Profile
	for _, p := range r.profiles {
		if p.ParticipantID == participantID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeSessionCache struct {
	mu     sync.Mutex
	active map[string]string
}

func newFakeSessionCache() *fakeSessionCache {
	return &fakeSessionCache{active: make(map[string]string)}
}

func (c *fakeSessionCache) SetActive(_ context.Context, participantID, sessionID string, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.active[participantID] = sessionID
	return nil
}

func (c *fakeSessionCache) GetActive(_ context.Context, participantID string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active[participantID], nil
}

func (c *fakeSessionCache) Refresh(_ context.Context, _ string, _ time.Duration) error {
	return nil
}

func (c *fakeSessionCache) ClearActive(_ context.Context, participantID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.active, participantID)
	return nil
}

type recordedEvent struct {
	kind    model.EventType
	section int
	code    string
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (n *recordingNotifier) SectionCompleted(_ context.Context, _ *model.Session, section int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, recordedEvent{kind: model.EventSectionCompleted, section: section})
}

func (n *recordingNotifier) SessionCompleted(_ context.Context, _ *model.Session, profile *model.Profile) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, recordedEvent{kind: model.EventSessionCompleted, code: profile.Code})
}

func (n *recordingNotifier) PatternRecognized(_ context.Context, _ *model.Session, code string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, recordedEvent{kind: model.EventPatternRecognized, code: code})
}

func (n *recordingNotifier) byKind(kind model.EventType) []recordedEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []recordedEvent
	for _, e := range n.events {
		if e.kind == kind {
			out = append(out, e)
		}
	}
	return out
}
