// The run command: timer-driven ticks plus the HTTP/websocket API.
package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/seralo/citysim/internal/api"
	"github.com/seralo/citysim/internal/persistence"
)

func newRunCmd() *cobra.Command {
	var (
		port         int
		tickInterval time.Duration
		saveEvery    int
		adminKey     string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the simulation with a tick timer and the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
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

			if adminKey == "" {
				adminKey = os.Getenv("CITYSIM_ADMIN_KEY")
			}

			server := &api.Server{
				Sim:      sim,
				Store:    store,
				Port:     port,
				AdminKey: adminKey,
			}
			server.Start()

			slog.Info("simulation running",
				"tick_interval", tickInterval, "autosave_every_ticks", saveEvery)

			ticker := time.NewTicker(tickInterval)
			defer ticker.Stop()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

			ticks := 0
			for {
				select {
				case <-ticker.C:
					server.Tick()
					ticks++
					if saveEvery > 0 && ticks%saveEvery == 0 {
						if err := store.SaveSnapshot(persistence.AutosaveSlot, sim.State()); err != nil {
							slog.Warn("autosave failed", "error", err)
						}
					}
				case sig := <-sigCh:
					slog.Info("shutting down", "signal", sig)
					if err := store.SaveSnapshot(persistence.AutosaveSlot, sim.State()); err != nil {
						slog.Error("final autosave failed", "error", err)
					}
					return nil
				}
			}
		},
	}

	cmd.Flags().IntVar(&port, "port", 8780, "HTTP API port")
	cmd.Flags().DurationVar(&tickInterval, "tick", 5*time.Second, "Real time per simulated week")
	cmd.Flags().IntVar(&saveEvery, "save-every", 16, "Autosave interval in ticks (0 disables)")
	cmd.Flags().StringVar(&adminKey, "admin-key", "", "Bearer token for control endpoints (or CITYSIM_ADMIN_KEY)")
	return cmd
}
