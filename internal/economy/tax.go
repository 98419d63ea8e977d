// Tax collection and maintenance costs.
package economy

import (
	"math"

	"github.com/seralo/citysim/internal/balance"
	"github.com/seralo/citysim/internal/city"
	"github.com/seralo/citysim/internal/facility"
)

// TaxResult breaks down the month's tax revenue.
type TaxResult struct {
	Citizen   int64 `json:"citizen"`
	Corporate int64 `json:"corporate"`
	Total     int64 `json:"total"`
}

// AssetModifier scales residential asset values by satisfaction:
// clamp(satisfaction/50, 0.5, 1.5).
func AssetModifier(satisfaction float64) float64 {
	return city.Clamp(satisfaction/50, balance.AssetModifierMin, balance.AssetModifierMax)
}

// CollectTaxes computes citizen and corporate tax for the month.
// No city hall, or no population, means no administration to collect
// anything: both lines are zero. taxMul is the combined faction tax
// multiplier applied to the total.
func CollectTaxes(st *city.State, facs []facility.Facility, reg *facility.Registry, taxMul float64) TaxResult {
	if facility.CountByType(facs, facility.TypeCityHall) == 0 || st.Population <= 0 {
		return TaxResult{}
	}

	mod := AssetModifier(st.Satisfaction)

	var resValue float64
	resCount := 0
	var bizValue float64
	bizCount := 0
	for _, f := range facs {
		if !f.Active {
			continue
		}
		spec, ok := reg.Lookup(f.Type)
		if !ok {
			continue
		}
		switch spec.Category {
		case facility.CategoryResidential:
			resValue += float64(spec.BaseAssetValue) * mod
			resCount++
		case facility.CategoryCommercial, facility.CategoryIndustrial:
			bizValue += float64(spec.BaseAssetValue)
			bizCount++
		}
	}

	var res TaxResult
	if resCount > 0 {
		avg := resValue / float64(resCount)
		res.Citizen = int64(math.Floor(float64(st.Population) * avg * st.TaxRates.Citizen))
	}
	if bizCount > 0 {
		avg := bizValue / float64(bizCount)
		res.Corporate = int64(math.Floor(float64(bizCount) * avg * st.TaxRates.Corporate))
	}
	res.Total = int64(math.Floor(float64(res.Citizen+res.Corporate) * taxMul))
	return res
}

// MaintenanceCost sums active-facility upkeep, scaled by the combined
// faction maintenance multiplier.
func MaintenanceCost(facs []facility.Facility, reg *facility.Registry, maintMul float64) int64 {
	var total int64
	for _, f := range facs {
		if !f.Active {
			continue
		}
		if spec, ok := reg.Lookup(f.Type); ok {
			total += spec.MaintenanceCost
		}
	}
	return int64(math.Floor(float64(total) * maintMul))
}
