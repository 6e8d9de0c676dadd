package model

// Career is one entry of the static career catalog. Profile is the
// pre-authored six-dimension reference vector on the 0-100 scale.
type Career struct {
	ID      string `json:"id" bson:"_id" yaml:"id"`
	Title   string `json:"title" bson:"title" yaml:"title"`
	Profile Vector `json:"profile" bson:"profile" yaml:"profile"`
}

// MatchTier is the qualitative band for a career match.
type MatchTier string

const (
	TierBest  MatchTier = "Best Fit"
	TierGreat MatchTier = "Great Fit"
	TierGood  MatchTier = "Good Fit"
	TierPoor  MatchTier = "Poor Fit"
)

// CareerMatch ranks one career against a profile. Correlation is the
// Pearson coefficient in [-1,1]; MatchPercent rescales it to 0-100.
type CareerMatch struct {
	CareerID     string    `json:"careerId" bson:"careerId"`
	Title        string    `json:"title" bson:"title"`
	Correlation  float64   `json:"correlation" bson:"correlation"`
	MatchPercent int       `json:"matchPercent" bson:"matchPercent"`
	Tier         MatchTier `json:"tier" bson:"tier"`
}
