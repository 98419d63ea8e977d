// The advance command: headless batch advance for tuning and soak runs.
package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/seralo/citysim/internal/balance"
	"github.com/seralo/citysim/internal/persistence"
)

func newAdvanceCmd() *cobra.Command {
	var (
		weeks  int
		months int
		save   bool
	)

	cmd := &cobra.Command{
		Use:   "advance",
		Short: "Advance the city headlessly and print a summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			total := weeks + months*balance.WeeksPerMonth
			if total <= 0 {
				return fmt.Errorf("nothing to advance: give --weeks or --months")
			}

			dataDir, _ := cmd.Flags().GetString("data")

			store, err := openStore(dataDir)
			if err != nil {
				return err
			}
			defer store.Close()

			sim, err := buildSimulation(dataDir, store)
			if err != nil {
				return err
			}

			for i := 0; i < total; i++ {
				sim.AdvanceTime()
				// Yearly evaluations pause the clock for the UI to
				// acknowledge; a headless run acknowledges immediately.
				if sim.Paused() {
					sim.SetPaused(false)
				}
			}

			notifs := sim.DrainNotifications()
			if len(notifs) > 0 {
				events := make([]persistence.Event, len(notifs))
				for i, n := range notifs {
					events[i] = persistence.Event{Week: n.Week, Kind: string(n.Kind), Message: n.Message}
				}
				if err := store.SaveEvents(events); err != nil {
					return fmt.Errorf("persist events: %w", err)
				}
			}

			if save {
				if err := store.SaveSnapshot(persistence.AutosaveSlot, sim.State()); err != nil {
					return fmt.Errorf("save snapshot: %w", err)
				}
			}

			st := sim.State()
			fmt.Printf("advanced %d weeks to year %d month %d week %d\n",
				total, st.Date.Year, st.Date.Month, st.Date.Week)
			fmt.Printf("  population:   %s\n", humanize.Comma(int64(st.Population)))
			fmt.Printf("  money:        %s\n", humanize.Comma(st.Money))
			fmt.Printf("  satisfaction: %.0f\n", st.Satisfaction)
			fmt.Printf("  level:        %d\n", st.Level)
			fmt.Printf("  avg support:  %.0f\n", st.AverageSupport())
			for _, n := range notifs {
				fmt.Printf("  [week %d] %s: %s\n", n.Week, n.Kind, n.Message)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&weeks, "weeks", 0, "Weeks to advance")
	cmd.Flags().IntVar(&months, "months", 0, "Months to advance (4 weeks each)")
	cmd.Flags().BoolVar(&save, "save", true, "Write an autosave snapshot afterward")
	return cmd
}
