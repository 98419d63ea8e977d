// The monthly economic cycle: industrial production, commercial
// consumption, and sales revenue.
package economy

import (
	"math"

	"github.com/google/uuid"

	"github.com/seralo/citysim/internal/city"
	"github.com/seralo/citysim/internal/facility"
)

// Flow tracks one product category's totals for the month.
type Flow struct {
	Produced   float64 `json:"produced"`
	Demanded   float64 `json:"demanded"`
	Efficiency float64 `json:"efficiency"` // min(1, produced/demanded), 1 with no demand
}

// CycleResult is everything the economic cycle produced this month.
type CycleResult struct {
	Flows       map[string]Flow `json:"flows"`
	Production  float64         `json:"production"`  // total goods output
	Consumption float64         `json:"consumption"` // total goods consumed
	Revenue     int64           `json:"revenue"`     // commercial sales, credited to money
}

// ProductEfficiency returns the mean category efficiency across all flows,
// 1 when no category recorded any demand.
func (r CycleResult) ProductEfficiency() float64 {
	if len(r.Flows) == 0 {
		return 1
	}
	var sum float64
	for _, f := range r.Flows {
		sum += f.Efficiency
	}
	return sum / float64(len(r.Flows))
}

// RunCycle executes production then consumption/revenue over the active
// facilities. Workforce efficiency comes from the month's allocation list;
// effMul is the combined faction facility-efficiency multiplier.
func RunCycle(facs []facility.Facility, reg *facility.Registry, allocs []city.Allocation, effMul float64) CycleResult {
	workEff := allocationIndex(allocs)

	flows := make(map[string]Flow)

	// First pass: raw totals at workforce efficiency only.
	for _, f := range facs {
		if !f.Active {
			continue
		}
		spec, ok := reg.Lookup(f.Type)
		if !ok || spec.ProductCategory == "" {
			continue
		}
		eff := facilityEfficiency(workEff, f.ID, effMul)
		fl := flows[spec.ProductCategory]
		switch spec.Category {
		case facility.CategoryIndustrial:
			fl.Produced += spec.BaseProduction * eff
		case facility.CategoryCommercial:
			fl.Demanded += spec.BaseConsumption * eff
		}
		flows[spec.ProductCategory] = fl
	}

	// Category efficiency: how much of demand production covered.
	for cat, fl := range flows {
		if fl.Demanded <= 0 {
			fl.Efficiency = 1
		} else {
			fl.Efficiency = math.Min(1, fl.Produced/fl.Demanded)
		}
		flows[cat] = fl
	}

	// Second pass: final output and revenue at workforce × product efficiency.
	// Product efficiency is the cross-category mean, applied uniformly.
	res := CycleResult{Flows: flows}
	prodEff := res.ProductEfficiency()
	for _, f := range facs {
		if !f.Active {
			continue
		}
		spec, ok := reg.Lookup(f.Type)
		if !ok || spec.ProductCategory == "" {
			continue
		}
		final := facilityEfficiency(workEff, f.ID, effMul) * prodEff
		switch spec.Category {
		case facility.CategoryIndustrial:
			res.Production += spec.BaseProduction * final
		case facility.CategoryCommercial:
			res.Consumption += spec.BaseConsumption * final
			res.Revenue += int64(math.Floor(float64(spec.BaseRevenue) * final))
		}
	}
	return res
}

func allocationIndex(allocs []city.Allocation) map[uuid.UUID]float64 {
	idx := make(map[uuid.UUID]float64, len(allocs))
	for _, a := range allocs {
		idx[a.FacilityID] = a.Efficiency
	}
	return idx
}

// facilityEfficiency looks up a facility's workforce efficiency.
// Facilities that never entered the allocation list (no workforce
// requirement) run at full efficiency.
func facilityEfficiency(idx map[uuid.UUID]float64, id uuid.UUID, effMul float64) float64 {
	eff, ok := idx[id]
	if !ok {
		eff = 1
	}
	return city.Clamp01(eff * effMul)
}
