// Mission and achievement definitions, loaded from YAML.
package rules

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// Mission is a declarative goal: when all conditions hold, the effects
// fire once and the mission is marked complete.
type Mission struct {
	ID          string      `yaml:"id" json:"id"`
	Name        string      `yaml:"name" json:"name"`
	Description string      `yaml:"description,omitempty" json:"description,omitempty"`
	Conditions  []Condition `yaml:"conditions" json:"conditions"`
	Effects     []Effect    `yaml:"effects,omitempty" json:"effects,omitempty"`
	Completed   bool        `yaml:"-" json:"completed"`
}

// Achievement is a mission without rewards: a one-shot recognition.
type Achievement struct {
	ID         string      `yaml:"id" json:"id"`
	Name       string      `yaml:"name" json:"name"`
	Conditions []Condition `yaml:"conditions" json:"conditions"`
	Unlocked   bool        `yaml:"-" json:"unlocked"`
}

type definitionsFile struct {
	Missions     []Mission     `yaml:"missions"`
	Achievements []Achievement `yaml:"achievements"`
}

// Load reads mission and achievement definitions from a YAML file.
// Malformed entries are filtered out with a warning, never fatal.
func Load(path string) ([]*Mission, []*Achievement, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read rules: %w", err)
	}
	var file definitionsFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, nil, fmt.Errorf("parse rules: %w", err)
	}

	var missions []*Mission
	for i := range file.Missions {
		m := file.Missions[i]
		if reason := validateMission(m); reason != "" {
			slog.Warn("dropping malformed mission", "id", m.ID, "reason", reason)
			continue
		}
		missions = append(missions, &m)
	}

	var achievements []*Achievement
	for i := range file.Achievements {
		a := file.Achievements[i]
		if reason := validateConditions(a.ID, a.Conditions); reason != "" {
			slog.Warn("dropping malformed achievement", "id", a.ID, "reason", reason)
			continue
		}
		achievements = append(achievements, &a)
	}

	slog.Info("rule definitions loaded", "path", path,
		"missions", len(missions), "achievements", len(achievements))
	return missions, achievements, nil
}

func validateMission(m Mission) string {
	if m.ID == "" {
		return "missing id"
	}
	return validateConditions(m.ID, m.Conditions)
}

func validateConditions(id string, conds []Condition) string {
	if id == "" {
		return "missing id"
	}
	if len(conds) == 0 {
		return "no conditions"
	}
	for _, c := range conds {
		if c.Kind == "" {
			return "condition missing type"
		}
		if !c.Op.Valid() {
			return fmt.Sprintf("condition %s has invalid op %q", c.Kind, c.Op)
		}
	}
	return ""
}
