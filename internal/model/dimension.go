package model

// Dimension is one of the six vocational interest dimensions, encoded
// by its single-letter symbol.
type Dimension string

const (
	DimRealistic     Dimension = "R"
	DimInvestigative Dimension = "I"
	DimArtistic      Dimension = "A"
	DimSocial        Dimension = "S"
	DimEnterprising  Dimension = "E"
	DimConventional  Dimension = "C"
)

// Dimensions lists all six dimensions in the fixed priority order used
// for tie-breaking. Iterate this slice instead of ranging over Vector
// maps wherever ordering matters.
var Dimensions = []Dimension{
	DimRealistic,
	DimInvestigative,
	DimArtistic,
	DimSocial,
	DimEnterprising,
	DimConventional,
}

var dimensionNames = map[Dimension]string{
	DimRealistic:     "Realistic",
	DimInvestigative: "Investigative",
	DimArtistic:      "Artistic",
	DimSocial:        "Social",
	DimEnterprising:  "Enterprising",
	DimConventional:  "Conventional",
}

// Name returns the full dimension name, or the symbol itself when
// unknown.
func (d Dimension) Name() string {
	if name, ok := dimensionNames[d]; ok {
		return name
	}
	return string(d)
}

// Valid reports whether d is one of the six known dimensions.
func (d Dimension) Valid() bool {
	_, ok := dimensionNames[d]
	return ok
}

// PriorityRank returns the position of d in the fixed priority order,
// or len(Dimensions) for unknown symbols so they sort last.
func PriorityRank(d Dimension) int {
	for i, known := range Dimensions {
		if known == d {
			return i
		}
	}
	return len(Dimensions)
}

// Vector is a six-dimension score map. Missing keys read as zero, so a
// sparse literal behaves like a full vector.
type Vector map[Dimension]float64

// NewVector returns a vector with all six dimensions zeroed.
func NewVector() Vector {
	v := make(Vector, len(Dimensions))
	for _, d := range Dimensions {
		v[d] = 0
	}
	return v
}

// Add accumulates other into v componentwise.
func (v Vector) Add(other Vector) {
	for _, d := range Dimensions {
		v[d] += other[d]
	}
}

// Scale multiplies every component by factor and returns v.
func (v Vector) Scale(factor float64) Vector {
	for _, d := range Dimensions {
		v[d] *= factor
	}
	return v
}

// Clone returns an independent copy of v.
func (v Vector) Clone() Vector {
	out := make(Vector, len(Dimensions))
	for _, d := range Dimensions {
		out[d] = v[d]
	}
	return out
}

// Floats returns the components in the fixed dimension order.
func (v Vector) Floats() []float64 {
	out := make([]float64, 0, len(Dimensions))
	for _, d := range Dimensions {
		out = append(out, v[d])
	}
	return out
}

// Norm is one dimension's population mean and standard deviation.
type Norm struct {
	Mean float64 `json:"mean" bson:"mean" yaml:"mean"`
	SD   float64 `json:"sd" bson:"sd" yaml:"sd"`
}

// Norms is the population norms table keyed by dimension.
type Norms map[Dimension]Norm
