// Shared composition: build a Simulation from the data directory.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/seralo/citysim/internal/city"
	"github.com/seralo/citysim/internal/engine"
	"github.com/seralo/citysim/internal/facility"
	"github.com/seralo/citysim/internal/influence"
	"github.com/seralo/citysim/internal/persistence"
	"github.com/seralo/citysim/internal/rules"
)

const noiseSeed = 42

// buildSimulation assembles a Simulation from the files under dataDir,
// restoring the autosave when one exists. Registration order here is the
// composition root: registry, layout, rules, then state.
func buildSimulation(dataDir string, store *persistence.Store) (*engine.Simulation, error) {
	registry := facility.DefaultRegistry()
	if path := filepath.Join(dataDir, "registry.yaml"); fileExists(path) {
		loaded, err := facility.LoadRegistry(path)
		if err != nil {
			return nil, fmt.Errorf("load registry: %w", err)
		}
		registry = loaded
	}

	var facs []facility.Facility
	if path := filepath.Join(dataDir, "layout.yaml"); fileExists(path) {
		loaded, err := facility.LoadLayout(path, registry)
		if err != nil {
			return nil, fmt.Errorf("load layout: %w", err)
		}
		facs = loaded
	}

	var missions []*rules.Mission
	var achievements []*rules.Achievement
	if path := filepath.Join(dataDir, "rules.yaml"); fileExists(path) {
		m, a, err := rules.Load(path)
		if err != nil {
			// Rules are optional content: a broken file shouldn't stop the city.
			slog.Warn("failed to load rule definitions", "error", err)
		} else {
			missions, achievements = m, a
		}
	}

	var state *city.State
	if store != nil && store.HasSnapshot(persistence.AutosaveSlot) {
		loaded, err := store.LoadSnapshot(persistence.AutosaveSlot)
		if err != nil {
			slog.Warn("autosave unreadable, starting fresh", "error", err)
		} else {
			state = loaded
			slog.Info("autosave restored", "date", state.Date, "population", state.Population)
		}
	}

	return engine.New(engine.Config{
		State:        state,
		Registry:     registry,
		Facilities:   facs,
		Field:        influence.NewNoiseField(noiseSeed),
		Missions:     missions,
		Achievements: achievements,
	}), nil
}

func openStore(dataDir string) (*persistence.Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return persistence.Open(filepath.Join(dataDir, "city.db"))
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
