// Facility type registry — per-type stats, loadable from YAML.
package facility

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// Registry resolves a facility type name to its Spec.
type Registry struct {
	specs map[string]Spec
}

// NewRegistry builds a registry from a spec list. Entries without a type
// name are dropped with a warning rather than rejected.
func NewRegistry(specs []Spec) *Registry {
	r := &Registry{specs: make(map[string]Spec, len(specs))}
	for _, s := range specs {
		if s.Type == "" {
			slog.Warn("facility spec missing type name, skipping")
			continue
		}
		r.specs[s.Type] = s
	}
	return r
}

// Lookup returns the spec for a type name.
func (r *Registry) Lookup(typ string) (Spec, bool) {
	s, ok := r.specs[typ]
	return s, ok
}

// Types returns all registered type names.
func (r *Registry) Types() []string {
	out := make([]string, 0, len(r.specs))
	for t := range r.specs {
		out = append(out, t)
	}
	return out
}

type registryFile struct {
	Facilities []Spec `yaml:"facilities"`
}

// LoadRegistry reads facility specs from a YAML file.
func LoadRegistry(path string) (*Registry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read registry: %w", err)
	}
	var file registryFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse registry: %w", err)
	}
	slog.Info("facility registry loaded", "path", path, "types", len(file.Facilities))
	return NewRegistry(file.Facilities), nil
}

// DefaultRegistry returns the built-in facility set used when no registry
// file is supplied (and by the seed command).
func DefaultRegistry() *Registry {
	return NewRegistry([]Spec{
		{
			Type: TypeCityHall, Category: CategoryCivic,
			MaintenanceCost: 500, WorkforceRequired: 20, BaseAssetValue: 0,
			InfraDemand: Utilities{Water: 10, Electricity: 20},
		},
		{
			Type: "house", Category: CategoryResidential,
			MaintenanceCost: 20, BasePopulation: 20, BaseAssetValue: 100,
			InfraDemand: Utilities{Water: 8, Electricity: 10},
		},
		{
			Type: "apartment", Category: CategoryResidential,
			MaintenanceCost: 80, BasePopulation: 120, BaseAssetValue: 90,
			InfraDemand: Utilities{Water: 40, Electricity: 60},
		},
		{
			Type: "shop", Category: CategoryCommercial,
			MaintenanceCost: 60, WorkforceRequired: 8, BaseAssetValue: 300,
			ProductCategory: "goods", BaseConsumption: 12, BaseRevenue: 900,
			InfraDemand: Utilities{Water: 5, Electricity: 15},
		},
		{
			Type: "market", Category: CategoryCommercial,
			MaintenanceCost: 150, WorkforceRequired: 25, BaseAssetValue: 500,
			ProductCategory: "food", BaseConsumption: 30, BaseRevenue: 2_400,
			InfraDemand: Utilities{Water: 15, Electricity: 30},
		},
		{
			Type: "factory", Category: CategoryIndustrial,
			MaintenanceCost: 250, WorkforceRequired: 40, BaseAssetValue: 800,
			ProductCategory: "goods", BaseProduction: 50,
			InfraDemand:     Utilities{Water: 30, Electricity: 80},
			Influence:       map[string]float64{"environment": -8},
			InfluenceRadius: 4,
		},
		{
			Type: "farm", Category: CategoryIndustrial,
			MaintenanceCost: 100, WorkforceRequired: 15, BaseAssetValue: 400,
			ProductCategory: "food", BaseProduction: 40,
			InfraDemand: Utilities{Water: 50, Electricity: 10},
		},
		{
			Type: "water_plant", Category: CategoryInfrastructure,
			MaintenanceCost: 300, WorkforceRequired: 10,
			InfraSupply: Utilities{Water: 300},
			InfraDemand: Utilities{Electricity: 40},
		},
		{
			Type: "power_plant", Category: CategoryInfrastructure,
			MaintenanceCost: 400, WorkforceRequired: 15,
			InfraSupply:     Utilities{Electricity: 500},
			InfraDemand:     Utilities{Water: 20},
			Influence:       map[string]float64{"environment": -10},
			InfluenceRadius: 5,
		},
		{
			Type: "police_station", Category: CategoryCivic,
			MaintenanceCost: 220, WorkforceRequired: 18,
			InfraDemand:     Utilities{Water: 8, Electricity: 15},
			Influence:       map[string]float64{"security": 15},
			InfluenceRadius: 6,
		},
		{
			Type: "fire_station", Category: CategoryCivic,
			MaintenanceCost: 220, WorkforceRequired: 18,
			InfraDemand:     Utilities{Water: 20, Electricity: 15},
			Influence:       map[string]float64{"disaster_prevention": 18},
			InfluenceRadius: 6,
		},
		{
			Type: "school", Category: CategoryCivic,
			MaintenanceCost: 180, WorkforceRequired: 22,
			InfraDemand:     Utilities{Water: 12, Electricity: 20},
			Influence:       map[string]float64{"education": 16},
			InfluenceRadius: 5,
		},
		{
			Type: "hospital", Category: CategoryCivic,
			MaintenanceCost: 350, WorkforceRequired: 45,
			InfraDemand:     Utilities{Water: 35, Electricity: 50},
			Influence:       map[string]float64{"sanitation": 14},
			InfluenceRadius: 6,
		},
		{
			Type: "park", Category: CategoryPark,
			MaintenanceCost: 40,
			Influence:       map[string]float64{"environment": 12, "entertainment": 6},
			InfluenceRadius: 4,
		},
		{
			Type: "plaza", Category: CategoryPark,
			MaintenanceCost: 90,
			Influence:       map[string]float64{"entertainment": 12, "tourism": 8},
			InfluenceRadius: 4,
		},
		{
			Type: "station", Category: CategoryInfrastructure,
			MaintenanceCost: 260, WorkforceRequired: 12,
			InfraDemand:     Utilities{Electricity: 45},
			Influence:       map[string]float64{"transit": 18},
			InfluenceRadius: 7,
		},
	})
}
