// Whole-state save and restore.
package engine

import (
	"log/slog"

	"github.com/seralo/citysim/internal/economy"
	"github.com/seralo/citysim/internal/infra"
	"github.com/seralo/citysim/internal/persistence"
	"github.com/seralo/citysim/internal/population"
	"github.com/seralo/citysim/internal/support"
)

// SaveState serializes the whole City State into an opaque blob.
func (s *Simulation) SaveState() ([]byte, error) {
	return persistence.Encode(s.state)
}

// LoadState replaces the City State wholesale from a blob and invalidates
// every derived cache before the next pipeline run. Missing fields default
// to initial values; only an unreadable blob errors.
func (s *Simulation) LoadState(blob []byte) error {
	st, err := persistence.Decode(blob)
	if err != nil {
		return err
	}
	s.state = st

	// Derived caches must not survive a load.
	s.infraSnap = infra.Compute(s.facilities, s.registry)
	s.lastTax = economy.TaxResult{}
	s.lastCycle = economy.CycleResult{}
	s.lastGrowth = population.Result{}
	s.unemployment = 0

	// Rebuild the effect accumulator from the restored standings.
	ratings := make(map[string]float64, len(s.factions))
	for _, f := range s.factions {
		ratings[f.ID] = s.state.Standing(f.ID).Current
	}
	s.combined = support.Combine(ratings)

	slog.Info("city state loaded", "date", s.state.Date,
		"population", s.state.Population, "money", s.state.Money)
	return nil
}
