package service

import (
	"math"
	"sort"

	"careercompass/internal/catalog"
	"careercompass/internal/model"
)

const (
	// zSaturation caps z-scores before the CDF mapping; anything
	// beyond saturates to 0 or 100 instead of erroring.
	zSaturation = 3.5

	// codeLength is the number of dimension symbols in the
	// classification code.
	codeLength = 3
)

// ScoringService turns a completed session's answer list into a
// profile. Pure function of the answers and the norms table: no
// randomness, no wall clock in any derived value, so recomputation is
// bit-identical.
type ScoringService struct {
	cat *catalog.Catalog
}

// NewScoringService creates a scoring service over the given catalog.
func NewScoringService(cat *catalog.Catalog) *ScoringService {
	return &ScoringService{cat: cat}
}

// Aggregate sums the score vectors of the given answers componentwise.
func (s *ScoringService) Aggregate(answers []model.Answer) model.Vector {
	total := model.NewVector()
	for _, a := range answers {
		total.Add(a.Scores)
	}
	return total
}

// Percentiles normalizes a raw vector against the population norms:
// z-score per dimension, mapped through the standard normal CDF to an
// integer percentile clamped to [0,100].
func (s *ScoringService) Percentiles(raw model.Vector) model.Vector {
	norms := s.cat.Norms()
	out := model.NewVector()
	for _, d := range model.Dimensions {
		n := norms[d]
		z := (raw[d] - n.Mean) / n.SD
		if z > zSaturation {
			z = zSaturation
		} else if z < -zSaturation {
			z = -zSaturation
		}
		p := math.Round(stdNormCDF(z) * 100)
		if p < 0 {
			p = 0
		} else if p > 100 {
			p = 100
		}
		out[d] = p
	}
	return out
}

// RankDimensions orders the six dimensions by raw total descending,
// breaking ties by percentile and then by the fixed priority order.
// Raw totals drive the ranking: percentiles are a population-relative
// view, the code summarizes the participant's own strongest
// dimensions.
func (s *ScoringService) RankDimensions(raw, percentiles model.Vector) []model.Dimension {
	ranked := make([]model.Dimension, len(model.Dimensions))
	copy(ranked, model.Dimensions)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if raw[a] != raw[b] {
			return raw[a] > raw[b]
		}
		if percentiles[a] != percentiles[b] {
			return percentiles[a] > percentiles[b]
		}
		return model.PriorityRank(a) < model.PriorityRank(b)
	})
	return ranked
}

// ClassificationCode derives the ordered top-dimension code, e.g.
// "ISC".
func (s *ScoringService) ClassificationCode(raw, percentiles model.Vector) string {
	ranked := s.RankDimensions(raw, percentiles)
	code := ""
	for _, d := range ranked[:codeLength] {
		code += string(d)
	}
	return code
}

// BuildProfile scores a completed session. The completion timestamp is
// the session's last activity, not the wall clock, so recomputation
// reproduces the stored profile exactly.
func (s *ScoringService) BuildProfile(session *model.Session) *model.Profile {
	raw := s.Aggregate(session.Answers)
	percentiles := s.Percentiles(raw)
	return &model.Profile{
		SessionID:     session.ID,
		ParticipantID: session.ParticipantID,
		Raw:           raw,
		Percentiles:   percentiles,
		Code:          s.ClassificationCode(raw, percentiles),
		CompletedAt:   session.LastActivityAt,
	}
}

// stdNormCDF is the standard normal cumulative distribution function.
func stdNormCDF(z float64) float64 {
	return 0.5 * (1 + math.Erf(z/math.Sqrt2))
}
