// The seed command: write a starter layout and rule set into the data dir.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/seralo/citysim/internal/facility"
)

func newSeedCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Write a starter layout.yaml and rules.yaml into the data directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			dataDir, _ := cmd.Flags().GetString("data")
			if err := os.MkdirAll(dataDir, 0755); err != nil {
				return fmt.Errorf("create data dir: %w", err)
			}

			layoutPath := filepath.Join(dataDir, "layout.yaml")
			rulesPath := filepath.Join(dataDir, "rules.yaml")
			if !force && (fileExists(layoutPath) || fileExists(rulesPath)) {
				return fmt.Errorf("seed files already exist in %s (use --force to overwrite)", dataDir)
			}

			if err := facility.SaveLayout(layoutPath, starterLayout()); err != nil {
				return fmt.Errorf("write layout: %w", err)
			}
			if err := os.WriteFile(rulesPath, []byte(starterRules), 0644); err != nil {
				return fmt.Errorf("write rules: %w", err)
			}

			fmt.Printf("seeded %s and %s\n", layoutPath, rulesPath)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing seed files")
	return cmd
}

// starterLayout is a small self-sufficient town: infrastructure covers
// demand, housing covers the starting population, and there is enough
// work to keep unemployment low.
func starterLayout() []facility.Facility {
	place := func(typ string, x, y int) facility.Facility {
		return facility.Facility{
			Type:     typ,
			Position: facility.Point{X: x, Y: y},
			Active:   true,
		}
	}

	return []facility.Facility{
		place(facility.TypeCityHall, 10, 10),
		place("water_plant", 2, 2),
		place("power_plant", 18, 2),
		place("house", 8, 12),
		place("house", 9, 12),
		place("house", 10, 12),
		place("house", 11, 12),
		place("apartment", 12, 12),
		place("shop", 8, 9),
		place("market", 12, 9),
		place("farm", 3, 16),
		place("factory", 17, 16),
		place("school", 6, 10),
		place("hospital", 14, 10),
		place("police_station", 10, 7),
		place("park", 9, 14),
	}
}

const starterRules = `missions:
  - id: first_hundred
    name: "Growing Town"
    description: "Reach a population of 100."
    conditions:
      - type: population
        op: ">="
        value: 100
    effects:
      - type: add_money
        value: 5000

  - id: balanced_books
    name: "Balanced Books"
    description: "End a month with income covering expenses."
    conditions:
      - type: monthly_balance
        op: ">="
        value: 0
      - type: elapsed_weeks
        op: ">="
        value: 8
    effects:
      - type: add_money
        value: 2000

  - id: content_citizens
    name: "Content Citizens"
    description: "Hold satisfaction at 60 or above."
    conditions:
      - type: satisfaction
        op: ">="
        value: 60
    effects:
      - type: adjust_support
        target: civic
        value: 5

  - id: industrial_base
    name: "Industrial Base"
    description: "Keep industry running at full efficiency."
    conditions:
      - type: product_efficiency
        op: ">="
        value: 1
        target: goods
    effects:
      - type: unlock_facility
        target: station

achievements:
  - id: thousand_strong
    name: "Thousand Strong"
    conditions:
      - type: population
        op: ">="
        value: 1000

  - id: first_year
    name: "Anniversary"
    conditions:
      - type: elapsed_weeks
        op: ">="
        value: 48
`
