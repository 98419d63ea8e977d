// Package satisfaction combines city-quality parameters, infrastructure,
// and economic pressure into the single 0–100 happiness score.
package satisfaction

import (
	"github.com/seralo/citysim/internal/balance"
	"github.com/seralo/citysim/internal/city"
)

// Parameter weights for the parameters-only score. The weights sum to 1.25
// rather than 1.0; this over-weighting is carried over deliberately — see
// DESIGN.md ("satisfaction weight sum").
var parameterWeights = map[string]float64{
	"entertainment":       0.2,
	"security":            0.2,
	"sanitation":          0.2,
	"transit":             0.1,
	"environment":         0.2,
	"education":           0.1,
	"disaster_prevention": 0.15,
	"tourism":             0.1,
}

// ParameterScore is the parameters-only weighted score on the 0–100 scale,
// clamped. With the unnormalized weights a city maxed at 100 everywhere
// saturates the clamp.
func ParameterScore(p city.Parameters) float64 {
	var sum float64
	for name, w := range parameterWeights {
		sum += w * p.Get(name)
	}
	return city.Clamp(sum, 0, 100)
}

// Inputs feeds the three-factor composite used by the monthly pipeline.
type Inputs struct {
	Parameters city.Parameters

	// Utility shortage ratios, each in [0,1].
	WaterShortageRatio       float64
	ElectricityShortageRatio float64

	CitizenTaxRate   float64
	UnemploymentRate float64 // [0,1]

	// HappinessPenalty is subtracted from the final 0–100 score.
	HappinessPenalty float64
}

// Composite evaluates score = 0.6·P + 0.2·I + 0.2·E and returns the final
// 0–100 satisfaction after the happiness penalty.
func Composite(in Inputs) float64 {
	p := ParameterScore(in.Parameters)

	i := 1 - city.Clamp01(0.5*in.WaterShortageRatio+0.5*in.ElectricityShortageRatio)

	taxPressure := city.Clamp01((in.CitizenTaxRate - balance.TaxComfortRate) / balance.TaxPressureRange)
	e := balance.EconomyTaxWeight*(1-balance.TaxPressureScale*taxPressure) +
		balance.EconomyEmploymentWeight*(1-balance.UnemploymentPressureScale*city.Clamp01(in.UnemploymentRate))

	// Weighted on the 0–100 scale so half-point totals round exactly.
	score := balance.SatisfactionParameterWeight*p +
		balance.SatisfactionInfraWeight*(i*100) +
		balance.SatisfactionEconomyWeight*(e*100)

	final := city.Round(city.Clamp(score, 0, 100)) - in.HappinessPenalty
	return city.Clamp(final, 0, 100)
}
