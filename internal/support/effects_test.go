package support

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBandFor_Boundaries(t *testing.T) {
	cases := []struct {
		rating float64
		want   Band
	}{
		{0, BandVeryLow},
		{19.9, BandVeryLow},
		{20, BandLow},
		{39.9, BandLow},
		{40, BandNeutral},
		{59.9, BandNeutral},
		{60, BandHigh},
		{79.9, BandHigh},
		{80, BandVeryHigh},
		{100, BandVeryHigh},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, BandFor(c.rating), "rating %.1f", c.rating)
	}
}

func TestCombine_EmptyIsNeutral(t *testing.T) {
	assert.Equal(t, NeutralEffects(), Combine(nil))
	assert.Equal(t, NeutralEffects(), Combine(map[string]float64{}))
}

func TestCombine_NeutralBandsAreIdentity(t *testing.T) {
	got := Combine(map[string]float64{"a": 50, "b": 45, "c": 59})
	assert.Equal(t, NeutralEffects(), got)
}

func TestCombine_MultipliersStackMultiplicatively(t *testing.T) {
	got := Combine(map[string]float64{"happy": 85, "angry": 10})

	// very_high 1.08 × very_low 0.92.
	assert.InDelta(t, 1.08*0.92, got.TaxMultiplier, 1e-9)
	assert.InDelta(t, 1.12*0.85, got.SubsidyMultiplier, 1e-9)
	assert.InDelta(t, 1.08*0.92, got.PopulationGrowthMultiplier, 1e-9)
	// Additive delta: +2 − 3.
	assert.InDelta(t, -1.0, got.SatisfactionDelta, 1e-9)
}

func TestCombine_OrderIndependent(t *testing.T) {
	ratings := map[string]float64{
		"workers": 85, "business": 10, "civic": 50, "youth": 45, "landowners": 55,
	}

	first := Combine(ratings)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Combine(ratings), "map iteration order must not matter")
	}
}

func TestBandEffects_UnknownBandIsNeutral(t *testing.T) {
	assert.Equal(t, NeutralEffects(), BandEffects(Band("mystery")))
}
