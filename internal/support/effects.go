// Approval bands and the Combined Effects accumulator.
package support

// Band classifies a faction's current rating into one of five ordered tiers.
type Band string

const (
	BandVeryLow  Band = "very_low"  // < 20
	BandLow      Band = "low"       // 20–39
	BandNeutral  Band = "neutral"   // 40–59
	BandHigh     Band = "high"      // 60–79
	BandVeryHigh Band = "very_high" // 80–100
)

// BandFor maps a rating to its band.
func BandFor(rating float64) Band {
	switch {
	case rating < 20:
		return BandVeryLow
	case rating < 40:
		return BandLow
	case rating < 60:
		return BandNeutral
	case rating < 80:
		return BandHigh
	default:
		return BandVeryHigh
	}
}

// Effects are the gameplay modifiers one band contributes. Multiplier
// fields stack multiplicatively across factions; SatisfactionDelta stacks
// additively.
type Effects struct {
	TaxMultiplier                float64 `json:"tax_multiplier"`
	SubsidyMultiplier            float64 `json:"subsidy_multiplier"`
	ConstructionCostMultiplier   float64 `json:"construction_cost_multiplier"`
	PopulationGrowthMultiplier   float64 `json:"population_growth_multiplier"`
	PopulationOutflowMultiplier  float64 `json:"population_outflow_multiplier"`
	FacilityEfficiencyMultiplier float64 `json:"facility_efficiency_multiplier"`
	MaintenanceMultiplier        float64 `json:"maintenance_multiplier"`
	SatisfactionDelta            float64 `json:"satisfaction_delta"`
}

// NeutralEffects is the identity element for combining.
func NeutralEffects() Effects {
	return Effects{
		TaxMultiplier:                1,
		SubsidyMultiplier:            1,
		ConstructionCostMultiplier:   1,
		PopulationGrowthMultiplier:   1,
		PopulationOutflowMultiplier:  1,
		FacilityEfficiencyMultiplier: 1,
		MaintenanceMultiplier:        1,
		SatisfactionDelta:            0,
	}
}

// bandEffects is the per-band modifier table shared by all factions.
var bandEffects = map[Band]Effects{
	BandVeryLow: {
		TaxMultiplier: 0.92, SubsidyMultiplier: 0.85,
		ConstructionCostMultiplier: 1.10,
		PopulationGrowthMultiplier: 0.92, PopulationOutflowMultiplier: 1.15,
		FacilityEfficiencyMultiplier: 0.92, MaintenanceMultiplier: 1.08,
		SatisfactionDelta: -3,
	},
	BandLow: {
		TaxMultiplier: 0.96, SubsidyMultiplier: 0.95,
		ConstructionCostMultiplier: 1.05,
		PopulationGrowthMultiplier: 0.96, PopulationOutflowMultiplier: 1.05,
		FacilityEfficiencyMultiplier: 0.97, MaintenanceMultiplier: 1.03,
		SatisfactionDelta: -1,
	},
	BandNeutral: {
		TaxMultiplier: 1, SubsidyMultiplier: 1,
		ConstructionCostMultiplier: 1,
		PopulationGrowthMultiplier: 1, PopulationOutflowMultiplier: 1,
		FacilityEfficiencyMultiplier: 1, MaintenanceMultiplier: 1,
		SatisfactionDelta: 0,
	},
	BandHigh: {
		TaxMultiplier: 1.03, SubsidyMultiplier: 1.05,
		ConstructionCostMultiplier: 0.97,
		PopulationGrowthMultiplier: 1.04, PopulationOutflowMultiplier: 0.96,
		FacilityEfficiencyMultiplier: 1.03, MaintenanceMultiplier: 0.98,
		SatisfactionDelta: 1,
	},
	BandVeryHigh: {
		TaxMultiplier: 1.08, SubsidyMultiplier: 1.12,
		ConstructionCostMultiplier: 0.92,
		PopulationGrowthMultiplier: 1.08, PopulationOutflowMultiplier: 0.90,
		FacilityEfficiencyMultiplier: 1.06, MaintenanceMultiplier: 0.95,
		SatisfactionDelta: 2,
	},
}

// BandEffects returns the modifier set for a band.
func BandEffects(b Band) Effects {
	if e, ok := bandEffects[b]; ok {
		return e
	}
	return NeutralEffects()
}

// Combine folds all active factions' band effects into one accumulator:
// multipliers multiply, additive deltas sum. The fold is commutative, so
// faction order never changes the result.
func Combine(ratings map[string]float64) Effects {
	out := NeutralEffects()
	for _, rating := range ratings {
		e := BandEffects(BandFor(rating))
		out.TaxMultiplier *= e.TaxMultiplier
		out.SubsidyMultiplier *= e.SubsidyMultiplier
		out.ConstructionCostMultiplier *= e.ConstructionCostMultiplier
		out.PopulationGrowthMultiplier *= e.PopulationGrowthMultiplier
		out.PopulationOutflowMultiplier *= e.PopulationOutflowMultiplier
		out.FacilityEfficiencyMultiplier *= e.FacilityEfficiencyMultiplier
		out.MaintenanceMultiplier *= e.MaintenanceMultiplier
		out.SatisfactionDelta += e.SatisfactionDelta
	}
	return out
}
