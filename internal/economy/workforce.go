// Package economy implements taxation, workforce allocation, production,
// consumption, and the monthly balance.
package economy

import (
	"math"

	"github.com/seralo/citysim/internal/balance"
	"github.com/seralo/citysim/internal/city"
	"github.com/seralo/citysim/internal/facility"
)

// allocationOrder is the priority in which categories receive workers when
// the labor pool runs short. Utilities and civic services staff first so a
// labor crunch shows up as idle factories, not dark streets.
var allocationOrder = []facility.Category{
	facility.CategoryInfrastructure,
	facility.CategoryCivic,
	facility.CategoryIndustrial,
	facility.CategoryCommercial,
}

// WorkforceSize is the employable fraction of the population.
func WorkforceSize(population int) int {
	return int(math.Floor(float64(population) * balance.WorkforceRatio))
}

// AllocateWorkforce distributes the labor pool over active facilities in
// priority order and returns the month's allocation list. The returned
// slice replaces the previous month's list wholesale.
func AllocateWorkforce(population int, facs []facility.Facility, reg *facility.Registry) []city.Allocation {
	remaining := WorkforceSize(population)
	allocs := make([]city.Allocation, 0, len(facs))

	for _, cat := range allocationOrder {
		for _, f := range facs {
			if !f.Active {
				continue
			}
			spec, ok := reg.Lookup(f.Type)
			if !ok || spec.Category != cat || spec.WorkforceRequired <= 0 {
				continue
			}
			assigned := spec.WorkforceRequired
			if assigned > remaining {
				assigned = remaining
			}
			remaining -= assigned
			allocs = append(allocs, city.Allocation{
				FacilityID: f.ID,
				Assigned:   assigned,
				Required:   spec.WorkforceRequired,
				Efficiency: city.Clamp01(float64(assigned) / float64(spec.WorkforceRequired)),
			})
		}
	}
	return allocs
}

// Employed sums assigned workers across the allocation list.
func Employed(allocs []city.Allocation) int {
	total := 0
	for _, a := range allocs {
		total += a.Assigned
	}
	return total
}

// UnemploymentRate derives 1 − employed/workforce, 0 when there is no
// workforce to be unemployed.
func UnemploymentRate(allocs []city.Allocation, population int) float64 {
	workforce := WorkforceSize(population)
	if workforce <= 0 {
		return 0
	}
	employed := Employed(allocs)
	if employed > workforce {
		employed = workforce
	}
	return city.Clamp01(1 - float64(employed)/float64(workforce))
}

// AverageEfficiency is the mean allocation efficiency, 1 when nothing
// needs staffing.
func AverageEfficiency(allocs []city.Allocation) float64 {
	if len(allocs) == 0 {
		return 1
	}
	var sum float64
	for _, a := range allocs {
		sum += a.Efficiency
	}
	return sum / float64(len(allocs))
}
