// Package balance centralizes every tuning constant of the simulation.
// No magic numbers in the task pipeline — everything traces back here.
package balance

// Calendar structure.
const (
	WeeksPerMonth = 4
	MonthsPerYear = 12
	StartingYear  = 1
	StartingMonth = 1
	StartingWeek  = 1
)

// Starting resources for a fresh city.
const (
	StartingMoney        = int64(50_000)
	StartingPopulation   = 0
	StartingSatisfaction = 50.0
	NeutralParameter     = 50.0
)

// Population dynamics rates (per month, applied to current population).
const (
	BirthRate   = 0.08
	DeathRate   = 0.09
	InflowRate  = 0.05
	OutflowRate = 0.04

	// FertilityBonusScale shapes how attractiveness above/below 0.5 moves births.
	FertilityBonusScale = 0.4
	FertilityBonusMin   = -0.5
	FertilityBonusMax   = 1.0

	// MortalityPenaltyScale amplifies deaths when the health index drops below 0.5.
	MortalityPenaltyScale = 1.2

	// Inflow multiplier composition and cap.
	InflowAttractivenessWeight = 1.2
	InflowEmploymentWeight     = 0.8
	InflowVacancyWeight        = 1.0
	InflowMultiplierCap        = 3.0

	// Outflow multiplier composition and cap.
	OutflowDissatisfactionWeight = 1.5
	OutflowUnemploymentWeight    = 1.2
	OutflowOvercrowdingWeight    = 2.0
	OutflowMultiplierCap         = 5.0

	// Health index composition: sanitation vs. utility shortages.
	HealthSanitationWeight = 0.7
	HealthInfraWeight      = 0.3
)

// Satisfaction composite weights: parameters / infrastructure / economy.
const (
	SatisfactionParameterWeight = 0.6
	SatisfactionInfraWeight     = 0.2
	SatisfactionEconomyWeight   = 0.2

	// Economy factor internals.
	EconomyTaxWeight          = 0.4
	EconomyEmploymentWeight   = 0.6
	TaxComfortRate            = 0.05 // Rates at or below this don't hurt satisfaction.
	TaxPressureRange          = 0.05 // Full penalty reached at comfort+range.
	TaxPressureScale          = 0.6
	UnemploymentPressureScale = 0.8
)

// Default tax rates.
const (
	DefaultCitizenTaxRate   = 0.05
	DefaultCorporateTaxRate = 0.08
)

// Asset value modifier bounds: residential asset values scale with
// satisfaction/50, clamped to this range.
const (
	AssetModifierMin = 0.5
	AssetModifierMax = 1.5
)

// WorkforceRatio is the fraction of the population that is of working age.
const WorkforceRatio = 0.6

// Yearly evaluation sub-score ceilings (sum to 100).
const (
	DevelopmentScoreMax  = 40.0
	ApprovalScoreMax     = 30.0
	SatisfactionScoreMax = 20.0
	MissionScoreMax      = 10.0
)

// Yearly subsidy: base amount plus a per-grade bonus.
const (
	SubsidyBase = int64(10_000)
)

// GradeThresholds maps total score floors to grades, best first.
var GradeThresholds = []struct {
	Floor float64
	Grade string
	Bonus int64
}{
	{90, "S", 50_000},
	{80, "A", 30_000},
	{70, "B", 20_000},
	{55, "C", 10_000},
	{40, "D", 5_000},
	{0, "E", 0},
}

// LevelThresholds lists the population required to reach each city level.
// Level 1 is the starting level; crossing threshold i grants level i+2.
var LevelThresholds = []int{300, 1_000, 3_000, 10_000, 30_000}

// MaxLevel is the highest city level reachable through population growth.
var MaxLevel = len(LevelThresholds) + 1
