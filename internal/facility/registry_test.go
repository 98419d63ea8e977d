package facility

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry_CoreTypesPresent(t *testing.T) {
	reg := DefaultRegistry()

	hall, ok := reg.Lookup(TypeCityHall)
	require.True(t, ok)
	assert.True(t, hall.IsCityHall())
	assert.Equal(t, CategoryCivic, hall.Category)

	house, ok := reg.Lookup("house")
	require.True(t, ok)
	assert.Equal(t, CategoryResidential, house.Category)
	assert.Greater(t, house.BasePopulation, 0)

	_, ok = reg.Lookup("space_elevator")
	assert.False(t, ok)
}

func TestDefaultRegistry_CategoriesConsistent(t *testing.T) {
	reg := DefaultRegistry()
	for _, typ := range reg.Types() {
		spec, ok := reg.Lookup(typ)
		require.True(t, ok)
		assert.NotEmpty(t, spec.Category, typ)
		if spec.BasePopulation > 0 {
			assert.Equal(t, CategoryResidential, spec.Category, typ)
		}
		if spec.BaseProduction > 0 {
			assert.Equal(t, CategoryIndustrial, spec.Category, typ)
			assert.NotEmpty(t, spec.ProductCategory, typ)
		}
		if spec.BaseConsumption > 0 || spec.BaseRevenue > 0 {
			assert.Equal(t, CategoryCommercial, spec.Category, typ)
		}
	}
}

func TestNewRegistry_DropsUnnamedSpecs(t *testing.T) {
	reg := NewRegistry([]Spec{
		{Type: "house", Category: CategoryResidential},
		{Category: CategoryPark},
	})
	assert.Len(t, reg.Types(), 1)
}

func TestLoadRegistry_FromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
facilities:
  - type: cabin
    category: residential
    maintenance_cost: 15
    base_population: 6
    infra_demand:
      water: 2
      electricity: 3
    influence:
      environment: 5
    influence_radius: 2
`), 0644))

	reg, err := LoadRegistry(path)
	require.NoError(t, err)

	spec, ok := reg.Lookup("cabin")
	require.True(t, ok)
	assert.Equal(t, CategoryResidential, spec.Category)
	assert.Equal(t, int64(15), spec.MaintenanceCost)
	assert.Equal(t, 6, spec.BasePopulation)
	assert.Equal(t, 3.0, spec.InfraDemand.Electricity)
	assert.Equal(t, 5.0, spec.Influence["environment"])
	assert.Equal(t, 2, spec.InfluenceRadius)
}

func TestLayout_SaveLoadRoundTrip(t *testing.T) {
	reg := DefaultRegistry()
	path := filepath.Join(t.TempDir(), "layout.yaml")

	inactive := Facility{Type: "house", Position: Point{X: 3, Y: 4}}
	facs := []Facility{
		{Type: TypeCityHall, Position: Point{X: 1, Y: 1}, Active: true},
		inactive,
	}
	require.NoError(t, SaveLayout(path, facs))

	got, err := LoadLayout(path, reg)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, TypeCityHall, got[0].Type)
	assert.True(t, got[0].Active)
	assert.False(t, got[1].Active)
	assert.Equal(t, Point{X: 3, Y: 4}, got[1].Position)
	assert.NotEqual(t, got[0].ID, got[1].ID, "each load assigns fresh ids")
}

func TestLoadLayout_DropsUnknownTypes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
facilities:
  - type: house
    x: 1
    y: 1
  - type: wizard_tower
    x: 2
    y: 2
`), 0644))

	got, err := LoadLayout(path, DefaultRegistry())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "house", got[0].Type)
	assert.True(t, got[0].Active, "entries default to active")
}

func TestFacilityHelpers(t *testing.T) {
	reg := DefaultRegistry()
	facs := []Facility{
		{Type: "house", Active: true},
		{Type: "house", Active: false},
		{Type: "park", Active: true},
	}

	assert.Equal(t, 1, CountByType(facs, "house"))
	assert.Equal(t, 2, CountActive(facs))
	assert.Len(t, ActiveOfCategory(facs, reg, CategoryResidential), 1)
	assert.Len(t, ActiveOfCategory(facs, reg, CategoryPark), 1)
}
