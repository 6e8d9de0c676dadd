package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"careercompass/internal/cache"
	"careercompass/internal/catalog"
	"careercompass/internal/logger"
	"careercompass/internal/model"
	"careercompass/internal/repository"
)

// sweepBatchSize bounds how many stale sessions one sweep pass loads.
const sweepBatchSize = 200

// AnswerOutcome reports the state after a recorded answer.
type AnswerOutcome struct {
	Pointer          int
	Total            int
	SectionCompleted int // section number just closed, 0 when none
	Completed        bool
	Profile          *model.Profile // set when Completed
}

// SessionService owns the assessment session lifecycle: one active
// session per participant, pointer discipline on answers, timeout
// abandonment and the completion hand-off into scoring and matching.
type SessionService struct {
	sessions repository.SessionRepo
	profiles repository.ProfileRepo
	index    cache.SessionCache
	cat      *catalog.Catalog
	scoring  *ScoringService
	matching *MatchingService
	mirror   *MirrorService
	notifier Notifier
	log      *logger.Logger
	timeout  time.Duration
	locks    sessionLocks
}

// NewSessionService creates the session state machine.
func NewSessionService(
	sessions repository.SessionRepo,
	profiles repository.ProfileRepo,
	index cache.SessionCache,
	cat *catalog.Catalog,
	scoring *ScoringService,
	matching *MatchingService,
	mirror *MirrorService,
	notifier Notifier,
	log *logger.Logger,
	inactivityTimeout time.Duration,
) *SessionService {
	return &SessionService{
		sessions: sessions,
		profiles: profiles,
		index:    index,
		cat:      cat,
		scoring:  scoring,
		matching: matching,
		mirror:   mirror,
		notifier: notifier,
		log:      log,
		timeout:  inactivityTimeout,
		locks:    sessionLocks{entries: make(map[string]*sessionLock)},
	}
}

// Start creates a new active session for the participant. A fresh
// active session already in place is a conflict unless replace is set;
// a prior session past the inactivity threshold is abandoned first and
// never conflicts.
func (s *SessionService) Start(ctx context.Context, participantID string, replace bool) (*model.Session, error) {
	// The find-conflict-create sequence must be serialized per
	// participant, or two concurrent starts both pass the conflict
	// check and leave two active sessions behind.
	s.locks.lock(participantLockKey(participantID))
	defer s.locks.unlock(participantLockKey(participantID))

	existing, err := s.findActive(ctx, participantID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if existing.Expired(time.Now(), s.timeout) {
			if err := s.abandonByID(ctx, existing.ID, false); err != nil {
				return nil, err
			}
		} else if !replace {
			return nil, fmt.Errorf("%w: session %s", model.ErrConflict, existing.ID)
		} else if err := s.abandonByID(ctx, existing.ID, true); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	session := &model.Session{
		ID:             uuid.New().String(),
		ParticipantID:  participantID,
		Pointer:        0,
		Status:         model.SessionActive,
		StartedAt:      now,
		LastActivityAt: now,
		Answers:        []model.Answer{},
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	if err := s.index.SetActive(ctx, participantID, session.ID, s.timeout); err != nil {
		// Index is an optimization; Mongo stays authoritative.
		s.log.Warn("session index write failed", "sessionId", session.ID, "error", err)
	}

	s.log.Info("session started", "sessionId", session.ID, "participantId", participantID, "replaced", existing != nil)
	return session, nil
}

// CurrentQuestion returns the question at the session's pointer,
// resolving the mirror slot through the generator. An expired session
// is abandoned on access.
func (s *SessionService) CurrentQuestion(ctx context.Context, participantID, sessionID string) (*model.Question, error) {
	s.locks.lock(sessionID)
	defer s.locks.unlock(sessionID)

	session, err := s.loadActive(ctx, participantID, sessionID)
	if err != nil {
		return nil, err
	}
	return s.questionAt(session), nil
}

// RecordAnswer validates the submission against the current pointer,
// resolves the selection to a score vector, stores the answer and
// advances. Completion triggers the scoring pipeline and the matching
// engine before the caller sees the outcome.
func (s *SessionService) RecordAnswer(ctx context.Context, participantID, sessionID, questionID string, sel model.Selection) (*AnswerOutcome, error) {
	s.locks.lock(sessionID)
	defer s.locks.unlock(sessionID)

	session, err := s.loadActive(ctx, participantID, sessionID)
	if err != nil {
		return nil, err
	}

	question := s.questionAt(session)
	if question.ID != questionID {
		return nil, fmt.Errorf("%w: expected %s at position %d, got %s", model.ErrSequence, question.ID, session.Pointer+1, questionID)
	}

	answer, err := s.resolveAnswer(question, sel)
	if err != nil {
		return nil, err
	}
	recognized := session.Pointer == s.cat.MirrorIndex() && s.mirror.Recognized(session, sel.Value)

	session.PutAnswer(answer)
	session.Pointer++
	session.LastActivityAt = answer.AnsweredAt

	outcome := &AnswerOutcome{Pointer: session.Pointer, Total: s.cat.Len()}

	if session.Pointer == s.cat.Len() {
		session.Status = model.SessionCompleted
		profile := s.scoring.BuildProfile(session)
		profile.Matches = s.matching.Rank(profile.Percentiles)

		// Profile first: scoring is idempotent, so a partial failure
		// is recoverable by recomputation, never by rollback.
		if err := s.profiles.Save(ctx, profile); err != nil {
			return nil, fmt.Errorf("save profile: %w", err)
		}
		if err := s.sessions.Update(ctx, session); err != nil {
			return nil, fmt.Errorf("update session: %w", err)
		}
		if err := s.index.ClearActive(ctx, participantID); err != nil {
			s.log.Warn("session index clear failed", "sessionId", sessionID, "error", err)
		}

		outcome.Completed = true
		outcome.Profile = profile
		if section, ok := s.cat.SectionBoundary(session.Pointer); ok {
			outcome.SectionCompleted = section
			s.notifier.SectionCompleted(ctx, session, section)
		}
		if recognized {
			s.notifier.PatternRecognized(ctx, session, sel.Value)
		}
		s.notifier.SessionCompleted(ctx, session, profile)
		s.log.Info("session completed", "sessionId", sessionID, "code", profile.Code)
		return outcome, nil
	}

	if err := s.sessions.Update(ctx, session); err != nil {
		return nil, fmt.Errorf("update session: %w", err)
	}
	if err := s.index.Refresh(ctx, participantID, s.timeout); err != nil {
		s.log.Warn("session index refresh failed", "sessionId", sessionID, "error", err)
	}

	if section, ok := s.cat.SectionBoundary(session.Pointer); ok {
		outcome.SectionCompleted = section
		s.notifier.SectionCompleted(ctx, session, section)
	}
	if recognized {
		s.notifier.PatternRecognized(ctx, session, sel.Value)
	}
	return outcome, nil
}

// Abandon terminates an active session. Terminal and irreversible.
func (s *SessionService) Abandon(ctx context.Context, participantID, sessionID string) error {
	s.locks.lock(sessionID)
	defer s.locks.unlock(sessionID)

	session, err := s.fetch(ctx, participantID, sessionID)
	if err != nil {
		return err
	}
	if session.Status != model.SessionActive {
		return fmt.Errorf("%w: status %s", model.ErrSessionClosed, session.Status)
	}
	return s.markAbandoned(ctx, session)
}

// Result returns the stored profile of a completed session, including
// the cached career matches.
func (s *SessionService) Result(ctx context.Context, participantID, sessionID string) (*model.Profile, error) {
	profile, err := s.profiles.GetBySessionID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	if profile == nil || profile.ParticipantID != participantID {
		return nil, fmt.Errorf("%w: no result for session %s", model.ErrNotFound, sessionID)
	}
	if len(profile.Matches) == 0 {
		profile.Matches = s.matching.Rank(profile.Percentiles)
	}
	return profile, nil
}

// History returns every stored profile for the participant, newest
// first. Each session a participant completes keeps its own profile.
func (s *SessionService) History(ctx context.Context, participantID string) ([]*model.Profile, error) {
	profiles, err := s.profiles.GetByParticipant(ctx, participantID)
	if err != nil {
		return nil, fmt.Errorf("load profiles: %w", err)
	}
	sort.Slice(profiles, func(i, j int) bool {
		return profiles[i].CompletedAt.After(profiles[j].CompletedAt)
	})
	return profiles, nil
}

// SweepAbandoned transitions every stale active session to abandoned.
// Runs on a timer; each session is taken under its own lock so a
// sweep never races an in-flight answer.
func (s *SessionService) SweepAbandoned(ctx context.Context) (int, error) {
	cutoff := time.Now().Add(-s.timeout)
	stale, err := s.sessions.ListStaleActive(ctx, cutoff, sweepBatchSize)
	if err != nil {
		return 0, fmt.Errorf("list stale sessions: %w", err)
	}

	swept := 0
	for _, candidate := range stale {
		if err := s.abandonByID(ctx, candidate.ID, false); err != nil {
			s.log.Warn("sweep failed for session", "sessionId", candidate.ID, "error", err)
			continue
		}
		swept++
	}
	if swept > 0 {
		s.log.Info("abandonment sweep", "swept", swept)
	}
	return swept, nil
}

// abandonByID re-checks state under the session lock before marking;
// without force, an answer recorded between listing and locking keeps
// the session alive. Force is the explicit-replace path.
func (s *SessionService) abandonByID(ctx context.Context, sessionID string, force bool) error {
	s.locks.lock(sessionID)
	defer s.locks.unlock(sessionID)

	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return err
	}
	if session == nil || session.Status != model.SessionActive {
		return nil
	}
	if !force && !session.Expired(time.Now(), s.timeout) {
		return nil
	}
	return s.markAbandoned(ctx, session)
}

func (s *SessionService) markAbandoned(ctx context.Context, session *model.Session) error {
	session.Status = model.SessionAbandoned
	if err := s.sessions.Update(ctx, session); err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	if err := s.index.ClearActive(ctx, session.ParticipantID); err != nil {
		s.log.Warn("session index clear failed", "sessionId", session.ID, "error", err)
	}
	s.log.Info("session abandoned", "sessionId", session.ID, "participantId", session.ParticipantID)
	return nil
}

// findActive locates the participant's active session, via the index
// when it is warm.
func (s *SessionService) findActive(ctx context.Context, participantID string) (*model.Session, error) {
	if id, err := s.index.GetActive(ctx, participantID); err == nil && id != "" {
		session, err := s.sessions.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if session != nil && session.Status == model.SessionActive {
			return session, nil
		}
	}
	session, err := s.sessions.GetActiveByParticipant(ctx, participantID)
	if err != nil {
		return nil, fmt.Errorf("find active session: %w", err)
	}
	return session, nil
}

// fetch loads a session owned by the participant. Unknown id and
// foreign ownership are indistinguishable to the caller.
func (s *SessionService) fetch(ctx context.Context, participantID, sessionID string) (*model.Session, error) {
	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if session == nil || session.ParticipantID != participantID {
		return nil, fmt.Errorf("%w: session %s", model.ErrNotFound, sessionID)
	}
	return session, nil
}

// loadActive fetches an owned session and enforces liveness, lazily
// abandoning one that sat past the inactivity threshold.
func (s *SessionService) loadActive(ctx context.Context, participantID, sessionID string) (*model.Session, error) {
	session, err := s.fetch(ctx, participantID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status != model.SessionActive {
		return nil, fmt.Errorf("%w: status %s", model.ErrSessionClosed, session.Status)
	}
	if session.Expired(time.Now(), s.timeout) {
		if err := s.markAbandoned(ctx, session); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: inactive past timeout", model.ErrSessionClosed)
	}
	return session, nil
}

func (s *SessionService) questionAt(session *model.Session) *model.Question {
	if session.Pointer == s.cat.MirrorIndex() {
		return s.mirror.Resolve(session)
	}
	return s.cat.QuestionAt(session.Pointer)
}

// resolveAnswer turns a raw selection into a scored answer: table
// lookup for discrete options, linear scaling into the primary
// dimension for ratings.
func (s *SessionService) resolveAnswer(question *model.Question, sel model.Selection) (model.Answer, error) {
	answer := model.Answer{
		QuestionID: question.ID,
		OrderIndex: question.Order,
		AnsweredAt: time.Now(),
	}

	switch question.Type {
	case model.QuestionTypeSingleChoice, model.QuestionTypeBinary:
		opt := question.OptionByValue(sel.Value)
		if opt == nil {
			return model.Answer{}, fmt.Errorf("%w: option %q not offered by question %s", model.ErrValidation, sel.Value, question.ID)
		}
		answer.Value = opt.Value
		answer.Scores = opt.Scores.Clone()
	case model.QuestionTypeRating:
		if sel.Rating == nil {
			return model.Answer{}, fmt.Errorf("%w: question %s expects a rating", model.ErrValidation, question.ID)
		}
		r := *sel.Rating
		if r < question.Range.Min || r > question.Range.Max {
			return model.Answer{}, fmt.Errorf("%w: rating %d outside %d..%d", model.ErrValidation, r, question.Range.Min, question.Range.Max)
		}
		weight := float64(r-question.Range.Min) / float64(question.Range.Max-question.Range.Min)
		scores := model.NewVector()
		scores[question.Primary] = weight
		answer.Rating = &r
		answer.Scores = scores
	default:
		return model.Answer{}, fmt.Errorf("%w: unsupported question type %q", model.ErrValidation, question.Type)
	}
	return answer, nil
}

// participantLockKey scopes a lock-table entry to a participant.
// Session IDs are UUIDs, so the prefix can never collide with a
// session-scoped entry.
func participantLockKey(participantID string) string {
	return "participant:" + participantID
}

// sessionLocks serializes operations per key: session id for answer
// and abandonment paths, participant id for session creation. Entries
// are refcounted and removed when the last holder releases, so the
// table stays bounded by in-flight work.
type sessionLocks struct {
	mu      sync.Mutex
	entries map[string]*sessionLock
}

type sessionLock struct {
	mu   sync.Mutex
	refs int
}

func (l *sessionLocks) lock(id string) {
	l.mu.Lock()
	entry, ok := l.entries[id]
	if !ok {
		entry = &sessionLock{}
		l.entries[id] = entry
	}
	entry.refs++
	l.mu.Unlock()
	entry.mu.Lock()
}

func (l *sessionLocks) unlock(id string) {
	l.mu.Lock()
	entry := l.entries[id]
	entry.refs--
	if entry.refs == 0 {
		delete(l.entries, id)
	}
	l.mu.Unlock()
	entry.mu.Unlock()
}
