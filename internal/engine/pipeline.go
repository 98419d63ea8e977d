// The monthly task pipeline. Tasks run in a fixed, dependency-respecting
// order against the shared City State: each task commits its update before
// the next task reads. Reordering changes simulated outcomes.
package engine

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/seralo/citysim/internal/city"
	"github.com/seralo/citysim/internal/economy"
	"github.com/seralo/citysim/internal/evaluation"
	"github.com/seralo/citysim/internal/facility"
	"github.com/seralo/citysim/internal/influence"
	"github.com/seralo/citysim/internal/infra"
	"github.com/seralo/citysim/internal/population"
	"github.com/seralo/citysim/internal/rules"
	"github.com/seralo/citysim/internal/satisfaction"
	"github.com/seralo/citysim/internal/support"
)

// runMonthlyTasks executes the twelve ordered tasks for the month that
// just closed. (year, month) identify the completed month.
func (s *Simulation) runMonthlyTasks(year, month int) {
	// 1. Workforce allocation — tax and production read it downstream.
	s.state.Workforce = economy.AllocateWorkforce(s.state.Population, s.facilities, s.registry)
	s.unemployment = economy.UnemploymentRate(s.state.Workforce, s.state.Population)

	// 2. Tax revenue — needs the workforce-derived employment above.
	s.lastTax = economy.CollectTaxes(s.state, s.facilities, s.registry, s.combined.TaxMultiplier)
	s.state.AddMoney(s.lastTax.Total)

	// 3. Maintenance costs.
	maintenance := economy.MaintenanceCost(s.facilities, s.registry, s.combined.MaintenanceMultiplier)
	s.state.AddMoney(-maintenance)

	// 4. Economic cycle: production, then consumption and sales revenue.
	s.lastCycle = economy.RunCycle(s.facilities, s.registry, s.state.Workforce,
		s.combined.FacilityEfficiencyMultiplier)
	s.state.AddMoney(s.lastCycle.Revenue)

	// 5. Infrastructure supply/demand recomputation.
	s.infraSnap = infra.Compute(s.facilities, s.registry)

	// 6. Monthly balance snapshot — needs tasks 2–4 complete.
	s.state.MonthlyBalance = city.MonthlyBalance{
		Income:  s.lastTax.Total,
		Expense: maintenance,
		Balance: s.lastTax.Total - maintenance,
	}

	// 7. Yearly evaluation — December only, needs the balance snapshot.
	if month == 12 {
		s.runYearlyEvaluation(year)
	}

	// 8. City parameters and satisfaction, resynthesized from the
	// spatial influence fields.
	s.state.Parameters = influence.Synthesize(s.field, s.state.Parameters, s.facilities, s.registry)
	s.state.SetSatisfaction(satisfaction.Composite(satisfaction.Inputs{
		Parameters:               s.state.Parameters,
		WaterShortageRatio:       s.infraSnap.Water.ShortageRatio(),
		ElectricityShortageRatio: s.infraSnap.Electricity.ShortageRatio(),
		CitizenTaxRate:           s.state.TaxRates.Citizen,
		UnemploymentRate:         s.unemployment,
		HappinessPenalty:         s.state.HappinessPenalty,
	}) + s.combined.SatisfactionDelta)
	s.decayHappinessPenalty()

	// 9. Population growth — needs satisfaction, infrastructure, employment.
	housingCap := population.HousingCapacity(s.facilities, s.registry)
	s.lastGrowth = population.Project(population.Inputs{
		Population:               s.state.Population,
		Satisfaction:             s.state.Satisfaction,
		Unemployment:             s.unemployment,
		HousingCapacity:          housingCap,
		Sanitation:               s.state.Parameters.Sanitation,
		WaterShortageRatio:       s.infraSnap.Water.ShortageRatio(),
		ElectricityShortageRatio: s.infraSnap.Electricity.ShortageRatio(),
		GrowthMultiplier:         s.combined.PopulationGrowthMultiplier,
		OutflowMultiplier:        s.combined.PopulationOutflowMultiplier,
	})
	s.AddPopulation(s.lastGrowth.Delta)

	// 10. Monthly history accumulation — needs all prior numeric results.
	s.state.Accumulation.Record(year, month, city.MonthlySample{
		Population:   s.state.Population,
		Satisfaction: s.state.Satisfaction,
		Income:       s.state.MonthlyBalance.Income,
		Expense:      s.state.MonthlyBalance.Expense,
		Balance:      s.state.MonthlyBalance.Balance,
		Births:       s.lastGrowth.Births,
		Deaths:       s.lastGrowth.Deaths,
		Inflow:       s.lastGrowth.Inflow,
		Outflow:      s.lastGrowth.Outflow,
		Housing:      housingCap,
	})

	// 11. Faction support recalculation and the Combined Effects fold.
	s.recalculateSupport()

	// 12. Mission and achievement re-check.
	s.checkRules()
}

// decayHappinessPenalty halves any temporary satisfaction penalty each
// month so one-off events fade instead of compounding forever.
func (s *Simulation) decayHappinessPenalty() {
	s.state.HappinessPenalty /= 2
	if s.state.HappinessPenalty < 0.5 {
		s.state.HappinessPenalty = 0
	}
}

// runYearlyEvaluation grades the year, credits the subsidy, pauses the
// clock, and tells the UI the report is ready.
func (s *Simulation) runYearlyEvaluation(year int) {
	report := evaluation.Evaluate(evaluation.Inputs{
		Year:              year,
		PopulationStart:   int(s.state.Accumulation.Population.At(1)),
		PopulationEnd:     s.state.Population,
		FacilityCount:     facility.CountActive(s.facilities),
		AverageSupport:    s.state.AverageSupport(),
		Satisfaction:      s.state.Satisfaction,
		MissionsDone:      s.state.MissionsCompleted,
		MissionsTotal:     len(s.missions),
		SubsidyMultiplier: s.combined.SubsidyMultiplier,
	})

	s.state.PreviousYearEval = s.state.YearlyEvaluation
	s.state.YearlyEvaluation = &report
	s.state.AddMoney(report.Subsidy)

	s.paused = true
	s.notify(NotifyEvaluationReady,
		fmt.Sprintf("Year %d graded %s (%.1f points)", year, report.Grade, report.Total))
	slog.Info("yearly evaluation", "year", year, "grade", report.Grade,
		"total", report.Total, "subsidy", report.Subsidy)
}

// recalculateSupport scores every faction against the eleven normalized
// factors and refreshes the Combined Effects accumulator.
func (s *Simulation) recalculateSupport() {
	factors := s.supportFactors()

	ratings := make(map[string]float64, len(s.factions))
	for _, f := range s.factions {
		rating := support.Rating(f.Weights, factors)
		s.state.SetStanding(f.ID, rating)
		ratings[f.ID] = rating
	}
	s.combined = support.Combine(ratings)
}

// supportFactors normalizes the city's current figures into the [0,1]
// factor vector factions score against.
func (s *Simulation) supportFactors() support.Factors {
	taxPressure := city.Clamp01((s.state.TaxRates.Citizen - 0.05) / 0.05)

	infraScore := 1 - city.Clamp01(0.5*s.infraSnap.Water.ShortageRatio()+
		0.5*s.infraSnap.Electricity.ShortageRatio())

	fiscal := 0.5
	if total := s.state.MonthlyBalance.Income + s.state.MonthlyBalance.Expense; total > 0 {
		fiscal = city.Clamp01(0.5 + float64(s.state.MonthlyBalance.Balance)/float64(total)*0.5)
	}

	growth := 0.5
	if s.state.Population > 0 {
		growth = city.Clamp01(0.5 + float64(s.lastGrowth.Delta)/float64(s.state.Population)*5)
	}

	parks := len(facility.ActiveOfCategory(s.facilities, s.registry, facility.CategoryPark))
	commercial := len(facility.ActiveOfCategory(s.facilities, s.registry, facility.CategoryCommercial))
	industrial := len(facility.ActiveOfCategory(s.facilities, s.registry, facility.CategoryIndustrial))

	return support.Factors{
		TaxStability:        1 - taxPressure,
		Infrastructure:      infraScore,
		Development:         city.Clamp01(float64(facility.CountActive(s.facilities)) / 100),
		FiscalBalance:       fiscal,
		Satisfaction:        s.state.Satisfaction / 100,
		Parks:               city.Clamp01(float64(parks) / 10),
		PopulationGrowth:    growth,
		Commercial:          city.Clamp01(float64(commercial) / 20),
		Industrial:          city.Clamp01(float64(industrial) / 20),
		WorkforceEfficiency: economy.AverageEfficiency(s.state.Workforce),
		InfraSurplus:        s.surplusScore(),
	}
}

func (s *Simulation) surplusScore() float64 {
	score := func(b infra.Balance) float64 {
		if b.Supply <= 0 {
			return 0
		}
		return city.Clamp01(b.Surplus() / b.Supply)
	}
	return (score(s.infraSnap.Water) + score(s.infraSnap.Electricity)) / 2
}

// checkRules re-evaluates incomplete missions and locked achievements.
// Completion is one-shot; mission effects apply best-effort.
func (s *Simulation) checkRules() {
	for _, m := range s.missions {
		if m.Completed {
			continue
		}
		ok, _ := rules.EvaluateAll(s, m.Conditions)
		if !ok {
			continue
		}
		m.Completed = true
		s.state.MissionsCompleted++
		rules.ApplyAll(s, m.Effects)
		s.notify(NotifyMissionComplete, fmt.Sprintf("Mission complete: %s", m.Name))
	}

	for _, a := range s.achievements {
		if a.Unlocked {
			continue
		}
		if ok, _ := rules.EvaluateAll(s, a.Conditions); ok {
			a.Unlocked = true
			s.notify(NotifyAchievement, fmt.Sprintf("Achievement unlocked: %s", a.Name))
		}
	}
}

// ApplyHappinessPenalty adds a temporary satisfaction penalty (disasters,
// scandals). It decays by half each month.
func (s *Simulation) ApplyHappinessPenalty(points float64) {
	s.state.HappinessPenalty += math.Max(0, points)
}
