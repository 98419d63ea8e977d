// Condition evaluation against a read-only view of the city.
package rules

import (
	"fmt"
	"log/slog"
)

// View is the read surface conditions are evaluated against. The engine's
// simulation implements it; tests use lightweight fakes.
type View interface {
	Population() int
	Money() int64
	Satisfaction() float64
	Level() int
	FacilityCount(typ string) int // "" counts all active facilities
	ElapsedWeeks() int
	MonthlyBalance() (income, expense, net int64)
	SupportRating(faction string) (float64, bool)
	InfraFigures(utility string) (demand, supply float64, ok bool)
	TaxRevenue() int64
	ProductFlow(category string) (produced, demanded, efficiency float64, ok bool)
	WorkforceEfficiency() float64
}

// Evaluate resolves one condition against the view. It never panics
// outward; internal failures score false with a diagnostic message.
func Evaluate(v View, c Condition) (out Outcome) {
	defer func() {
		if r := recover(); r != nil {
			slog.Warn("condition evaluation panicked", "type", c.Kind, "error", r)
			out = Outcome{Result: false, Actual: 0, Message: fmt.Sprintf("evaluation error: %v", r)}
		}
	}()

	if !c.Op.Valid() {
		return Outcome{Message: fmt.Sprintf("unsupported operator %q", c.Op)}
	}

	actual, msg := resolve(v, c)
	if msg != "" {
		slog.Warn("condition unresolved", "type", c.Kind, "target", c.Target, "reason", msg)
		return Outcome{Result: false, Actual: 0, Message: msg}
	}
	return Outcome{Result: c.Op.Compare(actual, c.Value), Actual: actual}
}

// EvaluateAll reports whether every condition holds, with per-condition outcomes.
func EvaluateAll(v View, conds []Condition) (bool, []Outcome) {
	all := true
	outcomes := make([]Outcome, len(conds))
	for i, c := range conds {
		outcomes[i] = Evaluate(v, c)
		if !outcomes[i].Result {
			all = false
		}
	}
	return all, outcomes
}

// resolve reads the actual value for a condition. A non-empty message
// means the lookup failed and the condition scores false.
func resolve(v View, c Condition) (float64, string) {
	switch c.Kind {
	case CondPopulation:
		return float64(v.Population()), ""
	case CondMoney:
		return float64(v.Money()), ""
	case CondSatisfaction:
		return v.Satisfaction(), ""
	case CondLevel:
		return float64(v.Level()), ""
	case CondFacilityCount:
		return float64(v.FacilityCount(c.Target)), ""
	case CondElapsedWeeks:
		return float64(v.ElapsedWeeks()), ""
	case CondMonthlyBalance:
		_, _, net := v.MonthlyBalance()
		return float64(net), ""
	case CondMonthlyIncome:
		income, _, _ := v.MonthlyBalance()
		return float64(income), ""
	case CondMonthlyExpense:
		_, expense, _ := v.MonthlyBalance()
		return float64(expense), ""
	case CondSupportRating:
		if c.Target == "" {
			return 0, "support_rating requires a faction target"
		}
		rating, ok := v.SupportRating(c.Target)
		if !ok {
			return 0, fmt.Sprintf("unknown faction %q", c.Target)
		}
		return rating, ""
	case CondInfraDemand, CondInfraSupply, CondInfraBalance, CondInfraRatio:
		if c.Target == "" {
			return 0, fmt.Sprintf("%s requires a utility target", c.Kind)
		}
		demand, supply, ok := v.InfraFigures(c.Target)
		if !ok {
			return 0, fmt.Sprintf("unknown utility %q", c.Target)
		}
		switch c.Kind {
		case CondInfraDemand:
			return demand, ""
		case CondInfraSupply:
			return supply, ""
		case CondInfraBalance:
			return supply - demand, ""
		default: // CondInfraRatio
			if demand <= 0 {
				return 1, ""
			}
			return supply / demand, ""
		}
	case CondTaxRevenue:
		return float64(v.TaxRevenue()), ""
	case CondProductDemand, CondProductProduction, CondProductEfficiency:
		if c.Target == "" {
			return 0, fmt.Sprintf("%s requires a product category target", c.Kind)
		}
		produced, demanded, eff, ok := v.ProductFlow(c.Target)
		if !ok {
			return 0, fmt.Sprintf("unknown product category %q", c.Target)
		}
		switch c.Kind {
		case CondProductDemand:
			return demanded, ""
		case CondProductProduction:
			return produced, ""
		default:
			return eff, ""
		}
	case CondWorkforceEfficiency:
		return v.WorkforceEfficiency(), ""
	default:
		return 0, fmt.Sprintf("unsupported condition type %q", c.Kind)
	}
}
