package rules

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeMutator records mutations and can simulate failures.
type fakeMutator struct {
	money      int64
	population int
	sat        float64
	support    map[string]float64
	unlocked   []string
	failUnlock bool
}

func (m *fakeMutator) AddMoney(amount int64) (int64, int64) {
	prev := m.money
	m.money += amount
	return prev, m.money
}

func (m *fakeMutator) AddPopulation(count int) (int, int) {
	prev := m.population
	m.population += count
	return prev, m.population
}

func (m *fakeMutator) AdjustSatisfaction(delta float64) (float64, float64) {
	prev := m.sat
	m.sat += delta
	return prev, m.sat
}

func (m *fakeMutator) AdjustSupport(faction string, delta float64) (float64, float64, error) {
	prev, ok := m.support[faction]
	if !ok {
		return 0, 0, fmt.Errorf("unknown faction %q", faction)
	}
	m.support[faction] = prev + delta
	return prev, m.support[faction], nil
}

func (m *fakeMutator) UnlockFacility(typ string) error {
	if m.failUnlock {
		return fmt.Errorf("unknown facility type %q", typ)
	}
	m.unlocked = append(m.unlocked, typ)
	return nil
}

func TestApply_AddMoney(t *testing.T) {
	m := &fakeMutator{money: 100}
	res := Apply(m, Effect{Kind: EffectAddMoney, Value: 250})

	assert.True(t, res.Applied)
	assert.Equal(t, 100.0, res.Previous)
	assert.Equal(t, 350.0, res.New)
	assert.Equal(t, int64(350), m.money)
}

func TestApply_SupportRequiresTarget(t *testing.T) {
	m := &fakeMutator{support: map[string]float64{"workers": 50}}

	res := Apply(m, Effect{Kind: EffectSupport, Value: 5})
	assert.False(t, res.Applied)
	assert.Contains(t, res.Message, "requires a faction target")

	res = Apply(m, Effect{Kind: EffectSupport, Target: "workers", Value: 5})
	assert.True(t, res.Applied)
	assert.Equal(t, 55.0, m.support["workers"])
}

func TestApply_ErrorsAbsorbedNotPropagated(t *testing.T) {
	m := &fakeMutator{support: map[string]float64{}}

	res := Apply(m, Effect{Kind: EffectSupport, Target: "pirates", Value: 5})
	assert.False(t, res.Applied)
	assert.Contains(t, res.Message, "unknown faction")
}

func TestApply_UnsupportedKind(t *testing.T) {
	res := Apply(&fakeMutator{}, Effect{Kind: "summon_dragon"})
	assert.False(t, res.Applied)
	assert.Contains(t, res.Message, `unsupported effect type "summon_dragon"`)
}

func TestApplyAll_PartialApplicationByContract(t *testing.T) {
	m := &fakeMutator{failUnlock: true}
	effects := []Effect{
		{Kind: EffectAddMoney, Value: 100},
		{Kind: EffectUnlockFacility, Target: "station"},
		{Kind: EffectAddPopulation, Value: 10},
	}

	results := ApplyAll(m, effects)
	require.Len(t, results, 3)

	// The failing middle effect does not roll back or block the others.
	assert.True(t, results[0].Applied)
	assert.False(t, results[1].Applied)
	assert.True(t, results[2].Applied)
	assert.Equal(t, int64(100), m.money)
	assert.Equal(t, 10, m.population)
}
