package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDimensionNames(t *testing.T) {
	assert.Equal(t, "Realistic", DimRealistic.Name())
	assert.Equal(t, "Conventional", DimConventional.Name())
	assert.Equal(t, "X", Dimension("X").Name())

	assert.True(t, DimSocial.Valid())
	assert.False(t, Dimension("X").Valid())
	assert.False(t, Dimension("").Valid())
}

func TestPriorityRankFollowsFixedOrder(t *testing.T) {
	for i, d := range Dimensions {
		assert.Equal(t, i, PriorityRank(d))
	}
	assert.Equal(t, len(Dimensions), PriorityRank("X"))
}

func TestNewVectorZerosAllDimensions(t *testing.T) {
	v := NewVector()
	require.Len(t, v, len(Dimensions))
	for _, d := range Dimensions {
		assert.Zero(t, v[d])
	}
}

func TestVectorAdd(t *testing.T) {
	v := NewVector()
	v[DimRealistic] = 1.5

	v.Add(Vector{DimRealistic: 0.5, DimSocial: 2.0})
	assert.Equal(t, 2.0, v[DimRealistic])
	assert.Equal(t, 2.0, v[DimSocial])
	assert.Zero(t, v[DimArtistic])
}

func TestVectorScale(t *testing.T) {
	v := Vector{DimRealistic: 2.0, DimInvestigative: -1.0}
	v.Scale(0.5)
	assert.Equal(t, 1.0, v[DimRealistic])
	assert.Equal(t, -0.5, v[DimInvestigative])
}

func TestVectorCloneIsIndependent(t *testing.T) {
	v := Vector{DimRealistic: 1.0}
	cp := v.Clone()
	cp[DimRealistic] = 9.0

	assert.Equal(t, 1.0, v[DimRealistic])
	assert.Equal(t, 9.0, cp[DimRealistic])
}

func TestVectorFloatsUsesFixedOrder(t *testing.T) {
	v := Vector{
		DimRealistic:     1,
		DimInvestigative: 2,
		DimArtistic:      3,
		DimSocial:        4,
		DimEnterprising:  5,
		DimConventional:  6,
	}
	assert.Equal(t, []float64{1, 2, 3, 4, 5, 6}, v.Floats())
}
