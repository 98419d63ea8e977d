// The simulation clock. Time advances in discrete weekly ticks; the
// fourth week of a month closes it and runs the task pipeline.
package engine

import (
	"fmt"
	"log/slog"

	"github.com/seralo/citysim/internal/balance"
)

// AdvanceTime is the only time-mutation entry point. It advances the week
// by one; when the step closes a month it runs the ordered monthly task
// list exactly once. A paused clock refuses to advance.
func (s *Simulation) AdvanceTime() {
	if s.paused {
		return
	}

	// The pipeline computes for the month that just completed, not the
	// month the calendar has rolled into.
	closedYear := s.state.Date.Year
	closedMonth := s.state.Date.Month

	monthClosed, yearClosed := s.state.Date.Advance()

	if monthClosed {
		slog.Info("month closed", "year", closedYear, "month", closedMonth,
			"population", s.state.Population, "money", s.state.Money)
		s.runMonthlyTasks(closedYear, closedMonth)
		if yearClosed {
			slog.Info("year closed", "year", closedYear)
		}
	}

	// Level thresholds are checked on every tick, not just month ends.
	s.checkLevelUp()

	s.state.ClampAll()
}

// checkLevelUp raises the city level monotonically when population crosses
// a threshold, emitting a one-shot notification per level gained.
func (s *Simulation) checkLevelUp() {
	for {
		next := s.state.Level + 1
		if next > balance.MaxLevel {
			return
		}
		threshold := balance.LevelThresholds[next-2]
		if s.state.Population < threshold {
			return
		}
		s.state.Level = next
		s.notify(NotifyLevelUp, fmt.Sprintf("The city has grown to level %d", next))
	}
}
