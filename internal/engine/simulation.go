// Package engine owns the City State and wires every subsystem into the
// monthly task pipeline. All mutation funnels through AdvanceTime and the
// small whitelist of direct mutators.
package engine

import (
	"fmt"
	"log/slog"

	"github.com/seralo/citysim/internal/city"
	"github.com/seralo/citysim/internal/economy"
	"github.com/seralo/citysim/internal/facility"
	"github.com/seralo/citysim/internal/influence"
	"github.com/seralo/citysim/internal/infra"
	"github.com/seralo/citysim/internal/population"
	"github.com/seralo/citysim/internal/rules"
	"github.com/seralo/citysim/internal/support"
)

// Simulation is the single-writer owner of the City State. It is not safe
// for concurrent use; callers (the clock timer, the API) serialize access.
type Simulation struct {
	state      *city.State
	facilities []facility.Facility
	registry   *facility.Registry
	field      influence.Field
	factions   []support.Faction

	missions     []*rules.Mission
	achievements []*rules.Achievement

	paused bool

	// Derived caches — rebuilt by the pipeline, invalidated on load.
	infraSnap    infra.Snapshot
	lastTax      economy.TaxResult
	lastCycle    economy.CycleResult
	lastGrowth   population.Result
	unemployment float64
	combined     support.Effects

	notifications []Notification
	nextNotifID   int
}

// Config wires a Simulation's collaborators.
type Config struct {
	State      *city.State // nil starts a fresh city
	Registry   *facility.Registry
	Facilities []facility.Facility
	Field      influence.Field // nil uses a seed-0 noise field
	Factions   []support.Faction

	Missions     []*rules.Mission
	Achievements []*rules.Achievement
}

// New builds a Simulation from its collaborators.
func New(cfg Config) *Simulation {
	st := cfg.State
	if st == nil {
		st = city.NewState()
	}
	reg := cfg.Registry
	if reg == nil {
		reg = facility.DefaultRegistry()
	}
	field := cfg.Field
	if field == nil {
		field = influence.NewNoiseField(0)
	}
	factions := cfg.Factions
	if factions == nil {
		factions = support.Factions()
	}

	s := &Simulation{
		state:        st,
		facilities:   cfg.Facilities,
		registry:     reg,
		field:        field,
		factions:     factions,
		missions:     cfg.Missions,
		achievements: cfg.Achievements,
		combined:     support.NeutralEffects(),
	}
	for _, f := range factions {
		st.Standing(f.ID) // seed neutral standings for the open-ended set
	}
	s.infraSnap = infra.Compute(s.facilities, s.registry)
	return s
}

// State returns the live City State. Callers must treat it as read-only;
// writes go through the mutators below.
func (s *Simulation) State() *city.State { return s.state }

// Registry exposes the facility registry.
func (s *Simulation) Registry() *facility.Registry { return s.registry }

// Facilities returns the current facility summaries.
func (s *Simulation) Facilities() []facility.Facility { return s.facilities }

// Infrastructure returns the last computed utility snapshot.
func (s *Simulation) Infrastructure() infra.Snapshot { return s.infraSnap }

// CombinedEffects returns the current faction modifier accumulator.
func (s *Simulation) CombinedEffects() support.Effects { return s.combined }

// LastGrowth returns the most recent monthly population projection.
func (s *Simulation) LastGrowth() population.Result { return s.lastGrowth }

// Missions returns the tracked mission list.
func (s *Simulation) Missions() []*rules.Mission { return s.missions }

// Achievements returns the tracked achievement list.
func (s *Simulation) Achievements() []*rules.Achievement { return s.achievements }

// SetFacilities replaces the facility summaries pushed by the placement
// subsystem and refreshes the derived infrastructure snapshot.
func (s *Simulation) SetFacilities(facs []facility.Facility) {
	s.facilities = facs
	s.infraSnap = infra.Compute(s.facilities, s.registry)
}

// Paused reports whether the clock is refusing to advance.
func (s *Simulation) Paused() bool { return s.paused }

// SetPaused pauses or resumes the clock.
func (s *Simulation) SetPaused(p bool) { s.paused = p }

// ── Direct mutators (the whitelisted write surface) ──────────────────────

// AddMoney credits the treasury.
func (s *Simulation) AddMoney(amount int64) (int64, int64) {
	prev := s.state.Money
	s.state.AddMoney(amount)
	return prev, s.state.Money
}

// SpendMoney debits the treasury if affordable.
func (s *Simulation) SpendMoney(amount int64) bool {
	return s.state.SpendMoney(amount)
}

// AddPopulation applies a population delta (clamped at zero) and re-checks
// the level thresholds.
func (s *Simulation) AddPopulation(count int) (int, int) {
	prev := s.state.Population
	s.state.AddPopulation(count)
	s.checkLevelUp()
	return prev, s.state.Population
}

// AdjustSatisfaction shifts satisfaction with clamping.
func (s *Simulation) AdjustSatisfaction(delta float64) (float64, float64) {
	prev := s.state.Satisfaction
	s.state.AdjustSatisfaction(delta)
	return prev, s.state.Satisfaction
}

// AdjustSupport shifts one faction's current rating.
func (s *Simulation) AdjustSupport(faction string, delta float64) (float64, float64, error) {
	if !s.knownFaction(faction) {
		return 0, 0, fmt.Errorf("unknown faction %q", faction)
	}
	st := s.state.Standing(faction)
	prev := st.Current
	st.Current = city.Clamp(st.Current+delta, 0, 100)
	st.Change = st.Current - st.Previous
	return prev, st.Current, nil
}

// UnlockFacility records a facility type as buildable.
func (s *Simulation) UnlockFacility(typ string) error {
	if _, ok := s.registry.Lookup(typ); !ok {
		return fmt.Errorf("unknown facility type %q", typ)
	}
	for _, t := range s.state.UnlockedFacilities {
		if t == typ {
			return nil // already unlocked
		}
	}
	s.state.UnlockedFacilities = append(s.state.UnlockedFacilities, typ)
	slog.Info("facility unlocked", "type", typ)
	return nil
}

func (s *Simulation) knownFaction(id string) bool {
	for _, f := range s.factions {
		if f.ID == id {
			return true
		}
	}
	return false
}
