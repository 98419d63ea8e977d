// Package rules interprets externally authored condition/effect records
// for missions and achievements. Evaluation never propagates failure:
// anything that can't be resolved scores false with a diagnostic.
package rules

// Op is a comparison operator.
type Op string

const (
	OpGT  Op = ">"
	OpLT  Op = "<"
	OpGTE Op = ">="
	OpLTE Op = "<="
	OpEQ  Op = "=="
	OpNEQ Op = "!="
)

// Valid reports whether the operator is one of the six supported forms.
func (o Op) Valid() bool {
	switch o {
	case OpGT, OpLT, OpGTE, OpLTE, OpEQ, OpNEQ:
		return true
	default:
		return false
	}
}

// Compare applies the operator to actual vs. value.
func (o Op) Compare(actual, value float64) bool {
	switch o {
	case OpGT:
		return actual > value
	case OpLT:
		return actual < value
	case OpGTE:
		return actual >= value
	case OpLTE:
		return actual <= value
	case OpEQ:
		return actual == value
	case OpNEQ:
		return actual != value
	default:
		return false
	}
}

// ConditionKind enumerates what a condition reads. The set is closed; the
// evaluator dispatches exhaustively and treats anything else as the
// distinct unsupported variant.
type ConditionKind string

const (
	CondPopulation          ConditionKind = "population"
	CondMoney               ConditionKind = "money"
	CondSatisfaction        ConditionKind = "satisfaction"
	CondLevel               ConditionKind = "level"
	CondFacilityCount       ConditionKind = "facility_count" // target: facility type ("" = all)
	CondElapsedWeeks        ConditionKind = "elapsed_weeks"
	CondMonthlyBalance      ConditionKind = "monthly_balance"
	CondMonthlyIncome       ConditionKind = "monthly_income"
	CondMonthlyExpense      ConditionKind = "monthly_expense"
	CondSupportRating       ConditionKind = "support_rating" // target: faction id
	CondInfraDemand         ConditionKind = "infra_demand"   // target: utility
	CondInfraSupply         ConditionKind = "infra_supply"
	CondInfraBalance        ConditionKind = "infra_balance"
	CondInfraRatio          ConditionKind = "infra_ratio" // supply/demand
	CondTaxRevenue          ConditionKind = "tax_revenue"
	CondProductDemand       ConditionKind = "product_demand" // target: category
	CondProductProduction   ConditionKind = "product_production"
	CondProductEfficiency   ConditionKind = "product_efficiency"
	CondWorkforceEfficiency ConditionKind = "workforce_efficiency"
)

// Condition is one declarative check against the city.
type Condition struct {
	Kind   ConditionKind `yaml:"type" json:"type"`
	Op     Op            `yaml:"op" json:"op"`
	Value  float64       `yaml:"value" json:"value"`
	Target string        `yaml:"target,omitempty" json:"target,omitempty"`
}

// Outcome is the result of evaluating one condition. Failures of any kind
// come back as Result=false with the diagnostic in Message.
type Outcome struct {
	Result  bool    `json:"result"`
	Actual  float64 `json:"actual_value"`
	Message string  `json:"message,omitempty"`
}

// EffectKind enumerates what an effect mutates.
type EffectKind string

const (
	EffectAddMoney       EffectKind = "add_money"
	EffectAddPopulation  EffectKind = "add_population"
	EffectSatisfaction   EffectKind = "adjust_satisfaction"
	EffectSupport        EffectKind = "adjust_support"  // target: faction id
	EffectUnlockFacility EffectKind = "unlock_facility" // target: facility type
)

// Effect is one declarative mutation.
type Effect struct {
	Kind   EffectKind `yaml:"type" json:"type"`
	Target string     `yaml:"target,omitempty" json:"target,omitempty"`
	Value  float64    `yaml:"value" json:"value"`
}

// EffectResult reports one effect application.
type EffectResult struct {
	Applied  bool    `json:"applied"`
	Previous float64 `json:"previous"`
	New      float64 `json:"new"`
	Message  string  `json:"message,omitempty"`
}
