// Effect application — best-effort, never transactional.
package rules

import (
	"fmt"
	"log/slog"
)

// Mutator is the whitelisted write surface rule effects may touch.
type Mutator interface {
	AddMoney(amount int64) (previous, next int64)
	AddPopulation(count int) (previous, next int)
	AdjustSatisfaction(delta float64) (previous, next float64)
	AdjustSupport(faction string, delta float64) (previous, next float64, err error)
	UnlockFacility(typ string) error
}

// Apply executes one effect. Errors are absorbed into the result; the
// caller's pipeline keeps going regardless.
func Apply(m Mutator, e Effect) (res EffectResult) {
	defer func() {
		if r := recover(); r != nil {
			slog.Warn("effect application panicked", "type", e.Kind, "error", r)
			res = EffectResult{Message: fmt.Sprintf("effect error: %v", r)}
		}
	}()

	switch e.Kind {
	case EffectAddMoney:
		prev, next := m.AddMoney(int64(e.Value))
		return EffectResult{Applied: true, Previous: float64(prev), New: float64(next)}
	case EffectAddPopulation:
		prev, next := m.AddPopulation(int(e.Value))
		return EffectResult{Applied: true, Previous: float64(prev), New: float64(next)}
	case EffectSatisfaction:
		prev, next := m.AdjustSatisfaction(e.Value)
		return EffectResult{Applied: true, Previous: prev, New: next}
	case EffectSupport:
		if e.Target == "" {
			return EffectResult{Message: "adjust_support requires a faction target"}
		}
		prev, next, err := m.AdjustSupport(e.Target, e.Value)
		if err != nil {
			slog.Warn("support effect failed", "faction", e.Target, "error", err)
			return EffectResult{Message: err.Error()}
		}
		return EffectResult{Applied: true, Previous: prev, New: next}
	case EffectUnlockFacility:
		if e.Target == "" {
			return EffectResult{Message: "unlock_facility requires a facility type target"}
		}
		if err := m.UnlockFacility(e.Target); err != nil {
			slog.Warn("facility unlock failed", "type", e.Target, "error", err)
			return EffectResult{Message: err.Error()}
		}
		return EffectResult{Applied: true}
	default:
		return EffectResult{Message: fmt.Sprintf("unsupported effect type %q", e.Kind)}
	}
}

// ApplyAll executes a list of effects best-effort. Partial application is
// by contract: a failing effect doesn't roll back the ones before it.
func ApplyAll(m Mutator, effects []Effect) []EffectResult {
	results := make([]EffectResult, len(effects))
	for i, e := range effects {
		results[i] = Apply(m, e)
	}
	return results
}
