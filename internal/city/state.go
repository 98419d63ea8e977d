// Package city defines the City State aggregate: the single mutable record
// the monthly task pipeline reads and replaces, plus the whitelisted direct
// mutators available to rule effects and UI actions.
package city

import (
	"math"

	"github.com/google/uuid"

	"github.com/seralo/citysim/internal/balance"
)

// MonthlyBalance is the income/expense snapshot taken at month close.
type MonthlyBalance struct {
	Income  int64 `json:"income"`
	Expense int64 `json:"expense"`
	Balance int64 `json:"balance"`
}

// Allocation records the workforce assigned to one facility for the month.
type Allocation struct {
	FacilityID uuid.UUID `json:"facility_id"`
	Assigned   int       `json:"assigned"`
	Required   int       `json:"required"`
	Efficiency float64   `json:"efficiency"` // assigned/required, clamped to [0,1]
}

// FactionStanding is one faction's approval rating and its month-over-month change.
type FactionStanding struct {
	Current  float64 `json:"current"`
	Previous float64 `json:"previous"`
	Change   float64 `json:"change"`
}

// YearlyEvaluation is the end-of-year grading snapshot.
type YearlyEvaluation struct {
	Year              int     `json:"year"`
	DevelopmentScore  float64 `json:"development_score"`  // ≤40
	ApprovalScore     float64 `json:"approval_score"`     // ≤30
	SatisfactionScore float64 `json:"satisfaction_score"` // ≤20
	MissionScore      float64 `json:"mission_score"`      // ≤10
	Total             float64 `json:"total"`
	Grade             string  `json:"grade"`
	Subsidy           int64   `json:"subsidy"`
}

// TaxRates holds the two configurable tax rates.
type TaxRates struct {
	Citizen   float64 `json:"citizen"`
	Corporate float64 `json:"corporate"`
}

// State is the whole city: mutated only by the task pipeline and the
// direct mutators below, serialized wholesale on save.
type State struct {
	Money        int64      `json:"money"`
	Population   int        `json:"population"`
	Level        int        `json:"level"`
	Satisfaction float64    `json:"satisfaction"` // 0–100
	Parameters   Parameters `json:"parameters"`
	Date         Date       `json:"date"`
	TaxRates     TaxRates   `json:"tax_rates"`

	MonthlyBalance MonthlyBalance `json:"monthly_balance"`
	Workforce      []Allocation   `json:"workforce"` // replaced wholesale each month

	// Faction set is open-ended: keyed by faction id.
	Support map[string]*FactionStanding `json:"support"`

	Accumulation Accumulation `json:"accumulation"`

	YearlyEvaluation   *YearlyEvaluation `json:"yearly_evaluation,omitempty"`
	PreviousYearEval   *YearlyEvaluation `json:"previous_year_evaluation,omitempty"`
	MissionsCompleted  int               `json:"missions_completed"`
	HappinessPenalty   float64           `json:"happiness_penalty"`
	UnlockedFacilities []string          `json:"unlocked_facilities,omitempty"`
}

// NewState returns a fresh city at the documented initial values.
func NewState() *State {
	return &State{
		Money:        balance.StartingMoney,
		Population:   balance.StartingPopulation,
		Level:        1,
		Satisfaction: balance.StartingSatisfaction,
		Parameters:   NeutralParameters(),
		Date:         NewDate(),
		TaxRates: TaxRates{
			Citizen:   balance.DefaultCitizenTaxRate,
			Corporate: balance.DefaultCorporateTaxRate,
		},
		Support:      make(map[string]*FactionStanding),
		Accumulation: Accumulation{Year: 1},
	}
}

// AddMoney credits (or, for negative amounts, debits) the treasury.
// Money has no cap and may go negative; spend checks live in SpendMoney.
func (s *State) AddMoney(amount int64) {
	s.Money += amount
}

// SpendMoney debits the treasury if the city can afford it.
func (s *State) SpendMoney(amount int64) bool {
	if amount < 0 || s.Money < amount {
		return false
	}
	s.Money -= amount
	return true
}

// AddPopulation applies a population delta, clamping at zero.
func (s *State) AddPopulation(count int) {
	s.Population += count
	if s.Population < 0 {
		s.Population = 0
	}
}

// SetSatisfaction assigns satisfaction, clamped to [0,100].
func (s *State) SetSatisfaction(v float64) {
	s.Satisfaction = Clamp(v, 0, 100)
}

// AdjustSatisfaction applies a delta with clamping.
func (s *State) AdjustSatisfaction(delta float64) {
	s.SetSatisfaction(s.Satisfaction + delta)
}

// Standing returns the standing record for a faction, creating it at a
// neutral 50 on first use.
func (s *State) Standing(faction string) *FactionStanding {
	if s.Support == nil {
		s.Support = make(map[string]*FactionStanding)
	}
	st, ok := s.Support[faction]
	if !ok {
		st = &FactionStanding{Current: 50, Previous: 50}
		s.Support[faction] = st
	}
	return st
}

// SetStanding commits a new rating for a faction, rolling the previous one.
func (s *State) SetStanding(faction string, rating float64) {
	st := s.Standing(faction)
	st.Previous = st.Current
	st.Current = Clamp(rating, 0, 100)
	st.Change = st.Current - st.Previous
}

// AverageSupport is the mean current rating across all tracked factions,
// 50 when none are tracked yet.
func (s *State) AverageSupport() float64 {
	if len(s.Support) == 0 {
		return 50
	}
	var sum float64
	for _, st := range s.Support {
		sum += st.Current
	}
	return sum / float64(len(s.Support))
}

// ClampAll re-applies every range invariant. Called after loading a
// snapshot and at the end of each pipeline run.
func (s *State) ClampAll() {
	if s.Population < 0 {
		s.Population = 0
	}
	if s.Level < 1 {
		s.Level = 1
	}
	s.Satisfaction = Clamp(s.Satisfaction, 0, 100)
	s.Parameters = s.Parameters.Clamped()
	if s.HappinessPenalty < 0 {
		s.HappinessPenalty = 0
	}
	for _, st := range s.Support {
		st.Current = Clamp(st.Current, 0, 100)
		st.Previous = Clamp(st.Previous, 0, 100)
	}
}

// Round half-away-from-zero, the rounding used by all score formulas.
func Round(v float64) float64 {
	return math.Round(v)
}
