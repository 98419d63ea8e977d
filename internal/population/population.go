// Package population models monthly births, deaths, and migration.
// All formulas are deterministic arithmetic — no randomness.
package population

import (
	"math"

	"github.com/seralo/citysim/internal/balance"
	"github.com/seralo/citysim/internal/city"
	"github.com/seralo/citysim/internal/facility"
)

// Inputs gathers everything the model reads for one monthly projection.
type Inputs struct {
	Population      int
	Satisfaction    float64 // 0–100
	Unemployment    float64 // [0,1]
	HousingCapacity int
	Sanitation      float64 // 0–100 city parameter

	// Utility shortage ratios, each [0,1].
	WaterShortageRatio       float64
	ElectricityShortageRatio float64

	// Faction band multipliers scaling the migration pressure. Zero values
	// are treated as 1 so plain inputs stay faithful to the base formulas.
	GrowthMultiplier  float64
	OutflowMultiplier float64
}

// Result is the full monthly projection. Every intermediate figure is
// retained for the month's history slot.
type Result struct {
	Births            int  `json:"births"`
	Deaths            int  `json:"deaths"`
	Inflow            int  `json:"inflow"`
	Outflow           int  `json:"outflow"`
	Delta             int  `json:"delta"`
	HousingCapacity   int  `json:"housing_capacity"`
	AppliedHousingCap bool `json:"applied_housing_cap"`
}

// Migration is inflow − outflow.
func (r Result) Migration() int { return r.Inflow - r.Outflow }

// HousingCapacity sums the base population of active residential facilities.
func HousingCapacity(facs []facility.Facility, reg *facility.Registry) int {
	total := 0
	for _, f := range facs {
		if !f.Active {
			continue
		}
		if spec, ok := reg.Lookup(f.Type); ok && spec.Category == facility.CategoryResidential {
			total += spec.BasePopulation
		}
	}
	return total
}

// Project computes the month's births, deaths, and migration from the
// current state. The caller applies Delta via the population mutator.
func Project(in Inputs) Result {
	pop := float64(in.Population)

	attractiveness := city.Clamp01(in.Satisfaction / 100)
	employment := 1 - city.Clamp01(in.Unemployment)

	infraHealth := 1 - city.Clamp01(0.5*in.WaterShortageRatio+0.5*in.ElectricityShortageRatio)
	healthIndex := balance.HealthSanitationWeight*city.Clamp01(in.Sanitation/100) +
		balance.HealthInfraWeight*infraHealth

	var vacancy, overCapacity float64
	if in.HousingCapacity > 0 {
		vacancy = city.Clamp01(1 - pop/float64(in.HousingCapacity))
		overCapacity = math.Max(0, pop/float64(in.HousingCapacity)-1)
	} else {
		vacancy = 0
		overCapacity = 1
	}

	fertilityBonus := city.Clamp((attractiveness-0.5)*balance.FertilityBonusScale,
		balance.FertilityBonusMin, balance.FertilityBonusMax)
	births := int(math.Floor(pop * balance.BirthRate * (1 + fertilityBonus)))

	mortalityPenalty := math.Max(0, 0.5-healthIndex) * balance.MortalityPenaltyScale
	deaths := int(math.Floor(pop * balance.DeathRate * (1 + mortalityPenalty)))

	growthMul := in.GrowthMultiplier
	if growthMul <= 0 {
		growthMul = 1
	}
	leaveMul := in.OutflowMultiplier
	if leaveMul <= 0 {
		leaveMul = 1
	}

	inflowMul := city.Clamp(
		(balance.InflowAttractivenessWeight*attractiveness+
			balance.InflowEmploymentWeight*employment+
			balance.InflowVacancyWeight*vacancy)*growthMul,
		0, balance.InflowMultiplierCap)
	inflow := int(math.Floor(pop * balance.InflowRate * inflowMul))

	outflowMul := city.Clamp(
		(balance.OutflowDissatisfactionWeight*(1-attractiveness)+
			balance.OutflowUnemploymentWeight*city.Clamp01(in.Unemployment)+
			balance.OutflowOvercrowdingWeight*overCapacity)*leaveMul,
		0, balance.OutflowMultiplierCap)
	outflow := int(math.Floor(pop * balance.OutflowRate * outflowMul))

	res := Result{
		Births:          births,
		Deaths:          deaths,
		Inflow:          inflow,
		Outflow:         outflow,
		HousingCapacity: in.HousingCapacity,
	}
	res.Delta = (births + inflow) - (deaths + outflow)

	// Housing cap: growth never pushes population past capacity.
	if in.HousingCapacity > 0 && in.Population+res.Delta > in.HousingCapacity {
		res.Delta = in.HousingCapacity - in.Population
		res.AppliedHousingCap = true
	}
	return res
}
