package calibrate

import (
	"github.com/tacaua/forecast/internal/match"
	"github.com/tacaua/forecast/internal/sampler"
)

// GoalParams resolves the Poisson-model parameters for one sport/division,
// overlaying a calibration record on top of spec.md §4.3's defaults.
// Division-level calibration wins when present and status "ok"; otherwise
// the sport-level record is used; otherwise the spec default stands.
func GoalParams(cal Calibration, sport match.Sport, division int) sampler.GoalParams {
	params := sampler.DefaultGoalParams(sport)

	sportCal, ok := cal[string(sport)]
	if !ok {
		return params
	}

	if div, ok := sportCal.DivisionParams[divisionKey(division)]; ok && div.Status == "ok" {
		return overlayGoalParams(params, div.BaseGoals, div.BaseGoalsStd, div.DispersionK, div.BaseDrawRate, div.DrawMultiplier)
	}
	if sportCal.Status == "ok" {
		return overlayGoalParams(params, sportCal.BaseGoals, sportCal.BaseGoalsStd, sportCal.DispersionK, sportCal.BaseDrawRate, sportCal.DrawMultiplier)
	}
	return params
}

func overlayGoalParams(base sampler.GoalParams, baseGoals, _ /* baseGoalsStd, unused by the sampler's model */, dispersionK, baseDrawRate, drawMultiplier float64) sampler.GoalParams {
	base.BaseGoals = baseGoals
	base.DispersionK = dispersionK
	base.HistoricalDrawRate = baseDrawRate
	base.TargetDrawRate = clampProb(drawMultiplier * baseDrawRate)
	return base
}

// GoalParamsByDivision builds the {1: ..., 2: ...} override map the
// Monte-Carlo Engine consults before falling back to the sport-wide
// default, skipping divisions whose calibration status isn't "ok".
func GoalParamsByDivision(cal Calibration, sport match.Sport) map[int]sampler.GoalParams {
	out := make(map[int]sampler.GoalParams)
	sportCal, ok := cal[string(sport)]
	if !ok {
		return out
	}
	for _, division := range []int{1, 2} {
		if div, ok := sportCal.DivisionParams[divisionKey(division)]; ok && div.Status == "ok" {
			out[division] = overlayGoalParams(sampler.DefaultGoalParams(sport), div.BaseGoals, div.BaseGoalsStd, div.DispersionK, div.BaseDrawRate, div.DrawMultiplier)
		}
	}
	return out
}

// BasketballParams resolves the Normal-model parameters for a division,
// overlaying calibration's base_goals/base_goals_std (computed identically
// for every sport's score samples) as the mean/std of the scoring model.
func BasketballParams(cal Calibration, division int) sampler.BasketballParams {
	params := sampler.DefaultBasketballParams()

	sportCal, ok := cal[string(match.Basketball)]
	if !ok {
		return params
	}
	if div, ok := sportCal.DivisionParams[divisionKey(division)]; ok && div.Status == "ok" {
		return sampler.BasketballParams{Mean: div.BaseGoals, Std: div.BaseGoalsStd}
	}
	if sportCal.Status == "ok" {
		return sampler.BasketballParams{Mean: sportCal.BaseGoals, Std: sportCal.BaseGoalsStd}
	}
	return params
}
