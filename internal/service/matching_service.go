package service

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"

	"careercompass/internal/catalog"
	"careercompass/internal/model"
)

// MaxMatches is the length of the ranked career list handed back to
// callers.
const MaxMatches = 8

// Tier cut points on the 0-100 match percentage scale.
const (
	tierBestMin  = 85
	tierGreatMin = 70
	tierGoodMin  = 50
)

// MatchingService ranks the static career catalog against a profile's
// percentile vector. Pure function of immutable inputs; safe to
// recompute anywhere.
type MatchingService struct {
	cat *catalog.Catalog
}

// NewMatchingService creates a matching service over the given
// catalog.
func NewMatchingService(cat *catalog.Catalog) *MatchingService {
	return &MatchingService{cat: cat}
}

// Rank scores every career by Pearson correlation with the percentile
// vector and returns the deduplicated top matches, ordered by
// correlation descending with catalog-order tie-breaks.
func (s *MatchingService) Rank(percentiles model.Vector) []model.CareerMatch {
	profile := percentiles.Floats()
	careers := s.cat.Careers()

	matches := make([]model.CareerMatch, 0, len(careers))
	seen := make(map[string]bool, len(careers))
	for _, career := range careers {
		if seen[career.ID] {
			continue
		}
		seen[career.ID] = true

		r := correlate(profile, career.Profile.Floats())
		percent := int(math.Round((r + 1) / 2 * 100))
		matches = append(matches, model.CareerMatch{
			CareerID:     career.ID,
			Title:        career.Title,
			Correlation:  r,
			MatchPercent: percent,
			Tier:         tierFor(percent),
		})
	}

	// Stable sort keeps catalog order for equal correlations.
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Correlation > matches[j].Correlation
	})

	if len(matches) > MaxMatches {
		matches = matches[:MaxMatches]
	}
	return matches
}

// correlate is the Pearson coefficient with degenerate inputs mapped
// to 0 ("no signal") instead of NaN: a zero-variance vector on either
// side makes the denominator vanish.
func correlate(a, b []float64) float64 {
	va, err := stats.PopulationVariance(stats.Float64Data(a))
	if err != nil || va == 0 {
		return 0
	}
	vb, err := stats.PopulationVariance(stats.Float64Data(b))
	if err != nil || vb == 0 {
		return 0
	}
	r, err := stats.Pearson(stats.Float64Data(a), stats.Float64Data(b))
	if err != nil || math.IsNaN(r) {
		return 0
	}
	// Numerical noise can nudge r a hair past the bounds.
	if r > 1 {
		r = 1
	} else if r < -1 {
		r = -1
	}
	return r
}

func tierFor(percent int) model.MatchTier {
	switch {
	case percent >= tierBestMin:
		return model.TierBest
	case percent >= tierGreatMin:
		return model.TierGreat
	case percent >= tierGoodMin:
		return model.TierGood
	default:
		return model.TierPoor
	}
}
