// Package infra computes utility supply/demand balances from the active
// facility set. Pure aggregation — no state beyond the returned snapshot.
package infra

import "github.com/seralo/citysim/internal/facility"

// Utility names.
const (
	Water       = "water"
	Electricity = "electricity"
)

// Balance is one utility's aggregated position.
type Balance struct {
	Demand float64 `json:"demand"`
	Supply float64 `json:"supply"`
}

// Net is supply − demand.
func (b Balance) Net() float64 { return b.Supply - b.Demand }

// Shortage is the unmet demand, 0 when supply covers it.
func (b Balance) Shortage() float64 {
	if n := b.Net(); n < 0 {
		return -n
	}
	return 0
}

// Surplus is the excess supply, 0 when demand exceeds it.
func (b Balance) Surplus() float64 {
	if n := b.Net(); n > 0 {
		return n
	}
	return 0
}

// ShortageRatio is shortage/demand, 0 when there is no demand.
func (b Balance) ShortageRatio() float64 {
	if b.Demand <= 0 {
		return 0
	}
	r := b.Shortage() / b.Demand
	if r > 1 {
		r = 1
	}
	return r
}

// Snapshot is the last computed position for both utilities.
type Snapshot struct {
	Water       Balance `json:"water"`
	Electricity Balance `json:"electricity"`
}

// ByName returns the balance for a utility name.
func (s Snapshot) ByName(name string) (Balance, bool) {
	switch name {
	case Water:
		return s.Water, true
	case Electricity:
		return s.Electricity, true
	default:
		return Balance{}, false
	}
}

// Compute aggregates demand and supply over active facilities only.
func Compute(facs []facility.Facility, reg *facility.Registry) Snapshot {
	var snap Snapshot
	for _, f := range facs {
		if !f.Active {
			continue
		}
		spec, ok := reg.Lookup(f.Type)
		if !ok {
			continue
		}
		snap.Water.Demand += spec.InfraDemand.Water
		snap.Water.Supply += spec.InfraSupply.Water
		snap.Electricity.Demand += spec.InfraDemand.Electricity
		snap.Electricity.Supply += spec.InfraSupply.Electricity
	}
	return snap
}
