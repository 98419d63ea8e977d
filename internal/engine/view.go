// Read-only view — Simulation satisfies rules.View so conditions can be
// evaluated against it, and rules.Mutator for effect application.
package engine

import (
	"github.com/seralo/citysim/internal/economy"
	"github.com/seralo/citysim/internal/facility"
)

// Population returns the current population.
func (s *Simulation) Population() int { return s.state.Population }

// Money returns the treasury balance.
func (s *Simulation) Money() int64 { return s.state.Money }

// Satisfaction returns the current satisfaction score.
func (s *Simulation) Satisfaction() float64 { return s.state.Satisfaction }

// Level returns the city level.
func (s *Simulation) Level() int { return s.state.Level }

// FacilityCount counts active facilities of a type, or all when typ is "".
func (s *Simulation) FacilityCount(typ string) int {
	if typ == "" {
		return facility.CountActive(s.facilities)
	}
	return facility.CountByType(s.facilities, typ)
}

// ElapsedWeeks returns the total weeks since game start.
func (s *Simulation) ElapsedWeeks() int { return s.state.Date.TotalWeeks }

// MonthlyBalance returns the last month-close snapshot.
func (s *Simulation) MonthlyBalance() (income, expense, net int64) {
	b := s.state.MonthlyBalance
	return b.Income, b.Expense, b.Balance
}

// SupportRating returns a faction's current rating.
func (s *Simulation) SupportRating(faction string) (float64, bool) {
	st, ok := s.state.Support[faction]
	if !ok {
		return 0, false
	}
	return st.Current, true
}

// InfraFigures returns demand and supply for a utility.
func (s *Simulation) InfraFigures(utility string) (demand, supply float64, ok bool) {
	b, ok := s.infraSnap.ByName(utility)
	if !ok {
		return 0, 0, false
	}
	return b.Demand, b.Supply, true
}

// TaxRevenue returns the last collected monthly tax total.
func (s *Simulation) TaxRevenue() int64 { return s.lastTax.Total }

// ProductFlow returns the last cycle's figures for a product category.
func (s *Simulation) ProductFlow(category string) (produced, demanded, efficiency float64, ok bool) {
	fl, ok := s.lastCycle.Flows[category]
	if !ok {
		return 0, 0, 0, false
	}
	return fl.Produced, fl.Demanded, fl.Efficiency, true
}

// WorkforceEfficiency returns the mean allocation efficiency.
func (s *Simulation) WorkforceEfficiency() float64 {
	return economy.AverageEfficiency(s.state.Workforce)
}
