// Package facility defines the read-only facility summaries this core
// consumes from the placement subsystem, and the registry of per-type
// stats those summaries are interpreted against.
package facility

import "github.com/google/uuid"

// Point is a grid position. Placement and connectivity live outside this
// core; positions are only used for influence sampling.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Category groups facility types by their economic role.
type Category string

const (
	CategoryResidential    Category = "residential"
	CategoryCommercial     Category = "commercial"
	CategoryIndustrial     Category = "industrial"
	CategoryCivic          Category = "civic" // city hall, schools, hospitals, police...
	CategoryInfrastructure Category = "infrastructure"
	CategoryPark           Category = "park"
)

// Facility is the summary the placement subsystem exposes for one placed
// facility. Inactive facilities contribute nothing anywhere in the core.
type Facility struct {
	ID       uuid.UUID `json:"id"`
	Type     string    `json:"type"`
	Position Point     `json:"position"`
	Active   bool      `json:"active"`
	Variant  int       `json:"variant"`
}

// Utilities is a per-utility quantity pair (water, electricity).
type Utilities struct {
	Water       float64 `json:"water" yaml:"water"`
	Electricity float64 `json:"electricity" yaml:"electricity"`
}

// Spec is the registry record for one facility type.
type Spec struct {
	Type     string   `yaml:"type"`
	Category Category `yaml:"category"`

	MaintenanceCost   int64 `yaml:"maintenance_cost"`
	WorkforceRequired int   `yaml:"workforce_required"`
	BasePopulation    int   `yaml:"base_population"` // residential housing capacity
	BaseAssetValue    int64 `yaml:"base_asset_value"`

	// Industrial production and commercial consumption/revenue.
	ProductCategory string  `yaml:"product_category"`
	BaseProduction  float64 `yaml:"base_production"`
	BaseConsumption float64 `yaml:"base_consumption"`
	BaseRevenue     int64   `yaml:"base_revenue"`

	InfraDemand Utilities `yaml:"infra_demand"`
	InfraSupply Utilities `yaml:"infra_supply"`

	// Influence contributed to nearby city parameters (parameter → strength).
	Influence map[string]float64 `yaml:"influence"`
	// InfluenceRadius in grid cells (Chebyshev). 0 means no influence.
	InfluenceRadius int `yaml:"influence_radius"`
}

// IsCityHall reports whether this type counts as the city-hall-equivalent
// required before any tax can be collected.
func (s Spec) IsCityHall() bool {
	return s.Type == TypeCityHall
}

// Well-known facility type names used by core rules.
const TypeCityHall = "city_hall"

// ActiveOfCategory filters the active facilities whose registry category matches.
func ActiveOfCategory(facs []Facility, reg *Registry, cat Category) []Facility {
	var out []Facility
	for _, f := range facs {
		if !f.Active {
			continue
		}
		if spec, ok := reg.Lookup(f.Type); ok && spec.Category == cat {
			out = append(out, f)
		}
	}
	return out
}

// CountByType counts active facilities of an exact type.
func CountByType(facs []Facility, typ string) int {
	n := 0
	for _, f := range facs {
		if f.Active && f.Type == typ {
			n++
		}
	}
	return n
}

// CountActive counts all active facilities.
func CountActive(facs []Facility) int {
	n := 0
	for _, f := range facs {
		if f.Active {
			n++
		}
	}
	return n
}
