package service

import (
	"fmt"
	"sort"

	"careercompass/internal/catalog"
	"careercompass/internal/model"
)

// minMirrorPrefix is the minimum number of prior answers required
// before the mirror question is personalized. Below it the catalog's
// static fallback options are served instead.
const minMirrorPrefix = 6

// mirrorOptionWeight is the per-dimension contribution encoded in a
// synthesized option, matching the [0,1] range of authored options.
const mirrorOptionWeight = 0.5

// MirrorService synthesizes the content of the single reserved
// dynamic slot from the participant's answers so far. Deterministic:
// the same answered prefix always yields the same option set, which
// lets RecordAnswer re-derive the options it validates against.
type MirrorService struct {
	cat     *catalog.Catalog
	scoring *ScoringService
}

// NewMirrorService creates a mirror service over the given catalog.
func NewMirrorService(cat *catalog.Catalog, scoring *ScoringService) *MirrorService {
	return &MirrorService{cat: cat, scoring: scoring}
}

// Resolve returns the mirror question for the session: the catalog
// entry with its options replaced by the personalized set, or the
// entry itself (static fallback) when the prefix is too short.
func (s *MirrorService) Resolve(session *model.Session) *model.Question {
	base := s.cat.QuestionAt(s.cat.MirrorIndex())
	first, second, ok := s.truePattern(session)
	if !ok {
		return base
	}

	ranked := s.rankedPrefix(session)
	// One option encodes the emerging top-2 pattern; the distractors
	// pair other ranked dimensions so they stay plausible.
	pairs := [][2]model.Dimension{
		{first, second},
		{ranked[0], ranked[2]},
		{ranked[1], ranked[3]},
		{ranked[2], ranked[4]},
	}

	options := make([]model.Option, 0, len(pairs))
	for _, pair := range pairs {
		scores := model.NewVector()
		scores[pair[0]] = mirrorOptionWeight
		scores[pair[1]] = mirrorOptionWeight
		options = append(options, model.Option{
			Value:  string(pair[0]) + string(pair[1]),
			Text:   fmt.Sprintf("Work combining %s with %s", pair[0].Name(), pair[1].Name()),
			Scores: scores,
		})
	}
	// Token order, so the matching option's position reveals nothing.
	sort.Slice(options, func(i, j int) bool {
		return options[i].Value < options[j].Value
	})

	resolved := *base
	resolved.Options = options
	return &resolved
}

// Recognized reports whether the chosen option value encodes the
// session's true top-2 pattern, order-insensitive. Always false while
// the fallback set is in play.
func (s *MirrorService) Recognized(session *model.Session, value string) bool {
	first, second, ok := s.truePattern(session)
	if !ok || len(value) != 2 {
		return false
	}
	a, b := model.Dimension(value[:1]), model.Dimension(value[1:])
	return (a == first && b == second) || (a == second && b == first)
}

func (s *MirrorService) rankedPrefix(session *model.Session) []model.Dimension {
	base := s.cat.QuestionAt(s.cat.MirrorIndex())
	prefix := session.AnswersBefore(base.Order)
	raw := s.scoring.Aggregate(prefix)
	return s.scoring.RankDimensions(raw, model.NewVector())
}

func (s *MirrorService) truePattern(session *model.Session) (model.Dimension, model.Dimension, bool) {
	base := s.cat.QuestionAt(s.cat.MirrorIndex())
	if len(session.AnswersBefore(base.Order)) < minMirrorPrefix {
		return "", "", false
	}
	ranked := s.rankedPrefix(session)
	return ranked[0], ranked[1], true
}
