package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeView is a canned city snapshot for condition tests.
type fakeView struct {
	population int
	money      int64
	sat        float64
	level      int
	facilities map[string]int
	weeks      int
	income     int64
	expense    int64
	support    map[string]float64
	infra      map[string][2]float64 // utility -> {demand, supply}
	tax        int64
	flows      map[string][3]float64 // category -> {produced, demanded, efficiency}
	workEff    float64
}

func (v *fakeView) Population() int              { return v.population }
func (v *fakeView) Money() int64                 { return v.money }
func (v *fakeView) Satisfaction() float64        { return v.sat }
func (v *fakeView) Level() int                   { return v.level }
func (v *fakeView) ElapsedWeeks() int            { return v.weeks }
func (v *fakeView) TaxRevenue() int64            { return v.tax }
func (v *fakeView) WorkforceEfficiency() float64 { return v.workEff }

func (v *fakeView) FacilityCount(typ string) int {
	if typ == "" {
		total := 0
		for _, n := range v.facilities {
			total += n
		}
		return total
	}
	return v.facilities[typ]
}

func (v *fakeView) MonthlyBalance() (int64, int64, int64) {
	return v.income, v.expense, v.income - v.expense
}

func (v *fakeView) SupportRating(faction string) (float64, bool) {
	r, ok := v.support[faction]
	return r, ok
}

func (v *fakeView) InfraFigures(utility string) (float64, float64, bool) {
	f, ok := v.infra[utility]
	if !ok {
		return 0, 0, false
	}
	return f[0], f[1], true
}

func (v *fakeView) ProductFlow(category string) (float64, float64, float64, bool) {
	f, ok := v.flows[category]
	if !ok {
		return 0, 0, 0, false
	}
	return f[0], f[1], f[2], true
}

func TestEvaluate_PopulationThreshold(t *testing.T) {
	cond := Condition{Kind: CondPopulation, Op: OpGTE, Value: 100}

	out := Evaluate(&fakeView{population: 100}, cond)
	assert.True(t, out.Result)
	assert.Equal(t, 100.0, out.Actual)

	out = Evaluate(&fakeView{population: 99}, cond)
	assert.False(t, out.Result)
	assert.Equal(t, 99.0, out.Actual, "the actual value is reported even on failure")
}

func TestEvaluate_AllOperators(t *testing.T) {
	v := &fakeView{money: 500}
	cases := []struct {
		op   Op
		val  float64
		want bool
	}{
		{OpGT, 499, true}, {OpGT, 500, false},
		{OpLT, 501, true}, {OpLT, 500, false},
		{OpGTE, 500, true}, {OpGTE, 501, false},
		{OpLTE, 500, true}, {OpLTE, 499, false},
		{OpEQ, 500, true}, {OpEQ, 1, false},
		{OpNEQ, 1, true}, {OpNEQ, 500, false},
	}
	for _, c := range cases {
		out := Evaluate(v, Condition{Kind: CondMoney, Op: c.op, Value: c.val})
		assert.Equal(t, c.want, out.Result, "%s %v", c.op, c.val)
	}
}

func TestEvaluate_UnsupportedKindScoresFalse(t *testing.T) {
	out := Evaluate(&fakeView{}, Condition{Kind: "weather", Op: OpGT, Value: 0})
	assert.False(t, out.Result)
	assert.Contains(t, out.Message, `unsupported condition type "weather"`)
}

func TestEvaluate_InvalidOperatorScoresFalse(t *testing.T) {
	out := Evaluate(&fakeView{}, Condition{Kind: CondPopulation, Op: "~=", Value: 0})
	assert.False(t, out.Result)
	assert.Contains(t, out.Message, "unsupported operator")
}

func TestEvaluate_UnknownFactionScoresFalse(t *testing.T) {
	v := &fakeView{support: map[string]float64{"workers": 70}}

	out := Evaluate(v, Condition{Kind: CondSupportRating, Op: OpGTE, Value: 50, Target: "pirates"})
	assert.False(t, out.Result)
	assert.Contains(t, out.Message, "unknown faction")

	out = Evaluate(v, Condition{Kind: CondSupportRating, Op: OpGTE, Value: 50, Target: "workers"})
	assert.True(t, out.Result)
}

func TestEvaluate_SupportRatingRequiresTarget(t *testing.T) {
	out := Evaluate(&fakeView{}, Condition{Kind: CondSupportRating, Op: OpGTE, Value: 50})
	assert.False(t, out.Result)
	assert.Contains(t, out.Message, "requires a faction target")
}

func TestEvaluate_InfraVariants(t *testing.T) {
	v := &fakeView{infra: map[string][2]float64{"water": {80, 100}}}

	out := Evaluate(v, Condition{Kind: CondInfraDemand, Op: OpEQ, Value: 80, Target: "water"})
	assert.True(t, out.Result)

	out = Evaluate(v, Condition{Kind: CondInfraBalance, Op: OpEQ, Value: 20, Target: "water"})
	assert.True(t, out.Result)

	out = Evaluate(v, Condition{Kind: CondInfraRatio, Op: OpEQ, Value: 1.25, Target: "water"})
	assert.True(t, out.Result)
}

func TestEvaluate_InfraRatioWithoutDemandReadsOne(t *testing.T) {
	v := &fakeView{infra: map[string][2]float64{"water": {0, 100}}}
	out := Evaluate(v, Condition{Kind: CondInfraRatio, Op: OpEQ, Value: 1, Target: "water"})
	assert.True(t, out.Result)
}

func TestEvaluate_MonthlyFigures(t *testing.T) {
	v := &fakeView{income: 4000, expense: 1500}

	out := Evaluate(v, Condition{Kind: CondMonthlyBalance, Op: OpEQ, Value: 2500})
	assert.True(t, out.Result)
	out = Evaluate(v, Condition{Kind: CondMonthlyIncome, Op: OpEQ, Value: 4000})
	assert.True(t, out.Result)
	out = Evaluate(v, Condition{Kind: CondMonthlyExpense, Op: OpEQ, Value: 1500})
	assert.True(t, out.Result)
}

func TestEvaluate_ProductFlow(t *testing.T) {
	v := &fakeView{flows: map[string][3]float64{"goods": {100, 200, 0.5}}}

	out := Evaluate(v, Condition{Kind: CondProductEfficiency, Op: OpGTE, Value: 0.5, Target: "goods"})
	assert.True(t, out.Result)

	out = Evaluate(v, Condition{Kind: CondProductDemand, Op: OpEQ, Value: 200, Target: "steel"})
	assert.False(t, out.Result)
	assert.Contains(t, out.Message, "unknown product category")
}

func TestEvaluateAll_ReportsEachOutcome(t *testing.T) {
	v := &fakeView{population: 150, money: 10}
	conds := []Condition{
		{Kind: CondPopulation, Op: OpGTE, Value: 100},
		{Kind: CondMoney, Op: OpGTE, Value: 1000},
	}

	ok, outcomes := EvaluateAll(v, conds)
	assert.False(t, ok)
	require.Len(t, outcomes, 2)
	assert.True(t, outcomes[0].Result)
	assert.False(t, outcomes[1].Result)
}
