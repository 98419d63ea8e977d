// Package evaluation grades the city at year end and computes the subsidy.
package evaluation

import (
	"math"

	"github.com/seralo/citysim/internal/balance"
	"github.com/seralo/citysim/internal/city"
)

// Inputs gathers the year's figures for grading.
type Inputs struct {
	Year            int
	PopulationStart int // population recorded for January
	PopulationEnd   int
	FacilityCount   int
	AverageSupport  float64 // 0–100 mean faction rating
	Satisfaction    float64 // 0–100
	MissionsDone    int
	MissionsTotal   int

	// SubsidyMultiplier from the Combined Effects accumulator.
	SubsidyMultiplier float64
}

// Evaluate produces the yearly grading snapshot. Sub-scores:
// development ≤40, approval ≤30, satisfaction ≤20, missions ≤10.
func Evaluate(in Inputs) city.YearlyEvaluation {
	dev := developmentScore(in)
	approval := balance.ApprovalScoreMax * city.Clamp01(in.AverageSupport/100)
	sat := balance.SatisfactionScoreMax * city.Clamp01(in.Satisfaction/100)
	missions := missionScore(in)

	total := dev + approval + sat + missions

	grade, bonus := gradeFor(total)
	mul := in.SubsidyMultiplier
	if mul <= 0 {
		mul = 1
	}
	subsidy := int64(math.Floor(float64(balance.SubsidyBase+bonus) * mul))

	return city.YearlyEvaluation{
		Year:              in.Year,
		DevelopmentScore:  round1(dev),
		ApprovalScore:     round1(approval),
		SatisfactionScore: round1(sat),
		MissionScore:      round1(missions),
		Total:             round1(total),
		Grade:             grade,
		Subsidy:           subsidy,
	}
}

// developmentScore splits its ceiling between population growth over the
// year and the size of the built city.
func developmentScore(in Inputs) float64 {
	half := balance.DevelopmentScoreMax / 2

	var growth float64
	if in.PopulationStart > 0 {
		// +50% over the year saturates the growth half.
		growth = city.Clamp01((float64(in.PopulationEnd)/float64(in.PopulationStart) - 1) / 0.5)
	} else if in.PopulationEnd > 0 {
		growth = 1
	}

	// 100 facilities saturates the build half.
	built := city.Clamp01(float64(in.FacilityCount) / 100)

	return half*growth + half*built
}

func missionScore(in Inputs) float64 {
	if in.MissionsTotal <= 0 {
		return 0
	}
	return balance.MissionScoreMax * city.Clamp01(float64(in.MissionsDone)/float64(in.MissionsTotal))
}

func gradeFor(total float64) (string, int64) {
	for _, g := range balance.GradeThresholds {
		if total >= g.Floor {
			return g.Grade, g.Bonus
		}
	}
	last := balance.GradeThresholds[len(balance.GradeThresholds)-1]
	return last.Grade, last.Bonus
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
