// Package support scores faction approval from weighted city factors and
// maps ratings into effect bands that stack onto gameplay multipliers.
package support

import "github.com/seralo/citysim/internal/city"

// Factors are the eleven normalized inputs every faction scores against.
// All values are expected in [0,1].
type Factors struct {
	TaxStability        float64 `json:"tax_stability"`
	Infrastructure      float64 `json:"infrastructure"`
	Development         float64 `json:"development"`
	FiscalBalance       float64 `json:"fiscal_balance"`
	Satisfaction        float64 `json:"satisfaction"`
	Parks               float64 `json:"parks"`
	PopulationGrowth    float64 `json:"population_growth"`
	Commercial          float64 `json:"commercial"`
	Industrial          float64 `json:"industrial"`
	WorkforceEfficiency float64 `json:"workforce_efficiency"`
	InfraSurplus        float64 `json:"infra_surplus"`
}

// Weights is one faction's priority vector over the eleven factors.
// Each faction's weights sum to 100; some factions concentrate weight on a
// few factors and leave the rest at zero.
type Weights struct {
	TaxStability        int
	Infrastructure      int
	Development         int
	FiscalBalance       int
	Satisfaction        int
	Parks               int
	PopulationGrowth    int
	Commercial          int
	Industrial          int
	WorkforceEfficiency int
	InfraSurplus        int
}

// Sum returns the weight total (100 for well-formed factions).
func (w Weights) Sum() int {
	return w.TaxStability + w.Infrastructure + w.Development + w.FiscalBalance +
		w.Satisfaction + w.Parks + w.PopulationGrowth + w.Commercial +
		w.Industrial + w.WorkforceEfficiency + w.InfraSurplus
}

// Faction is one approval-tracked interest group.
type Faction struct {
	ID      string
	Name    string
	Weights Weights
}

// Factions returns the seed faction set. The set is open-ended: the engine
// tracks whatever this returns, keyed by ID.
func Factions() []Faction {
	return []Faction{
		{
			ID: "workers", Name: "Workers' Union",
			Weights: Weights{
				Industrial: 25, WorkforceEfficiency: 25, TaxStability: 15,
				Satisfaction: 15, Infrastructure: 10, Development: 10,
			},
		},
		{
			ID: "business", Name: "Business Council",
			Weights: Weights{
				Commercial: 30, TaxStability: 25, Development: 20,
				FiscalBalance: 15, WorkforceEfficiency: 10,
			},
		},
		{
			ID: "environmental", Name: "Green Alliance",
			Weights: Weights{
				Parks: 40, Infrastructure: 20, Satisfaction: 20, InfraSurplus: 20,
			},
		},
		{
			ID: "civic", Name: "Civic Forum",
			Weights: Weights{
				Satisfaction: 30, Infrastructure: 25, FiscalBalance: 20,
				Development: 15, PopulationGrowth: 10,
			},
		},
		{
			ID: "landowners", Name: "Landowners' Guild",
			Weights: Weights{
				Development: 35, PopulationGrowth: 25, FiscalBalance: 20,
				TaxStability: 20,
			},
		},
		{
			ID: "youth", Name: "Youth League",
			Weights: Weights{
				Development: 25, PopulationGrowth: 25, Satisfaction: 20,
				Parks: 15, Commercial: 15,
			},
		},
	}
}

// Rating scores one faction: round(clamp(Σ factor·weight, 0, 100)).
// With factors in [0,1] and weights summing to 100 the raw sum already
// lands on the 0–100 scale.
func Rating(w Weights, f Factors) float64 {
	sum := f.TaxStability*float64(w.TaxStability) +
		f.Infrastructure*float64(w.Infrastructure) +
		f.Development*float64(w.Development) +
		f.FiscalBalance*float64(w.FiscalBalance) +
		f.Satisfaction*float64(w.Satisfaction) +
		f.Parks*float64(w.Parks) +
		f.PopulationGrowth*float64(w.PopulationGrowth) +
		f.Commercial*float64(w.Commercial) +
		f.Industrial*float64(w.Industrial) +
		f.WorkforceEfficiency*float64(w.WorkforceEfficiency) +
		f.InfraSurplus*float64(w.InfraSurplus)
	return city.Round(city.Clamp(sum, 0, 100))
}
