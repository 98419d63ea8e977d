// Facility layout loading — for headless runs the placement subsystem's
// summaries come from a YAML layout file.
package facility

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

type layoutEntry struct {
	Type    string `yaml:"type"`
	X       int    `yaml:"x"`
	Y       int    `yaml:"y"`
	Active  *bool  `yaml:"active,omitempty"`
	Variant int    `yaml:"variant,omitempty"`
}

type layoutFile struct {
	Facilities []layoutEntry `yaml:"facilities"`
}

// LoadLayout reads placed facilities from a YAML file. Entries whose type
// is not in the registry are dropped with a warning. Facilities default to
// active.
func LoadLayout(path string, reg *Registry) ([]Facility, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read layout: %w", err)
	}
	var file layoutFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	var facs []Facility
	for _, e := range file.Facilities {
		if _, ok := reg.Lookup(e.Type); !ok {
			slog.Warn("layout references unknown facility type, skipping", "type", e.Type)
			continue
		}
		active := true
		if e.Active != nil {
			active = *e.Active
		}
		facs = append(facs, Facility{
			ID:       uuid.New(),
			Type:     e.Type,
			Position: Point{X: e.X, Y: e.Y},
			Active:   active,
			Variant:  e.Variant,
		})
	}
	slog.Info("facility layout loaded", "path", path, "facilities", len(facs))
	return facs, nil
}

// SaveLayout writes facilities back out as a layout file.
func SaveLayout(path string, facs []Facility) error {
	entries := make([]layoutEntry, len(facs))
	for i, f := range facs {
		active := f.Active
		entries[i] = layoutEntry{
			Type: f.Type, X: f.Position.X, Y: f.Position.Y,
			Active: &active, Variant: f.Variant,
		}
	}
	raw, err := yaml.Marshal(layoutFile{Facilities: entries})
	if err != nil {
		return fmt.Errorf("marshal layout: %w", err)
	}
	if err := os.WriteFile(path, raw, 0644); err != nil {
		return fmt.Errorf("write layout: %w", err)
	}
	return nil
}
