// Command citysim runs the deterministic city simulation core.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	rootCmd := &cobra.Command{
		Use:   "citysim",
		Short: "Tick-driven city simulation core",
		Long: `citysim advances a city one week per tick, settles the economic,
demographic, and political pipeline at each month boundary, and serves
the resulting numbers over HTTP.`,
	}

	rootCmd.PersistentFlags().String("data", "data", "Data directory (db, registry, layout, rules)")

	rootCmd.AddCommand(
		newRunCmd(),
		newSeedCmd(),
		newAdvanceCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
