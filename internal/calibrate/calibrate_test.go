package calibrate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tacaua/forecast/internal/match"
)

func TestFitGroupFlagsInsufficientDataBelowFloor(t *testing.T) {
	samples := make([]sample, minSamples-1)
	cal := fitGroup(samples)
	assert.Equal(t, "insufficient_data", cal.Status)
	assert.Equal(t, minSamples-1, cal.Samples)
}

func TestFitGroupFitsWithEnoughSamples(t *testing.T) {
	var samples []sample
	for i := 0; i < minSamples+5; i++ {
		samples = append(samples, sample{
			absDelta: float64(i % 4 * 50),
			margin:   float64(i % 3),
			goalsA:   float64(2 + i%3),
			goalsB:   float64(1 + i%2),
			isDraw:   boolAsFloat(i%4 == 0),
		})
	}
	cal := fitGroup(samples)
	assert.Equal(t, "ok", cal.Status)
	assert.Equal(t, len(samples), cal.Samples)
	assert.Greater(t, cal.BaseGoals, 0.0)
}

func boolAsFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func TestSigmoidIsBoundedAndMonotonic(t *testing.T) {
	assert.InDelta(t, 0.5, sigmoid(0), 1e-9)
	assert.Less(t, sigmoid(-10), sigmoid(0))
	assert.Less(t, sigmoid(0), sigmoid(10))
}

func TestFitLogisticCollapsesWhenEveryObservationIsZero(t *testing.T) {
	x := []float64{10, 50, 100, 200}
	y := []float64{0, 0, 0, 0}
	intercept, coef := fitLogistic(x, y)
	assert.Equal(t, 0.0, intercept)
	assert.Equal(t, 0.0, coef)
}

func TestFitLogisticEmptyInputReturnsZero(t *testing.T) {
	intercept, coef := fitLogistic(nil, nil)
	assert.Equal(t, 0.0, intercept)
	assert.Equal(t, 0.0, coef)
}

func TestOptimalDrawMultiplierMatchesObservedRateExactly(t *testing.T) {
	predicted := []float64{0.3, 0.3, 0.3, 0.3}
	mult := optimalDrawMultiplier(predicted, 0.3)
	assert.InDelta(t, 1.0, mult, 0.011)
}

func TestClampProbBoundsToUnitInterval(t *testing.T) {
	assert.Equal(t, 0.0, clampProb(-0.4))
	assert.Equal(t, 1.0, clampProb(1.4))
	assert.Equal(t, 0.5, clampProb(0.5))
}

func TestGoalParamsFallsBackThroughDivisionSportDefault(t *testing.T) {
	def := GoalParams(Calibration{}, match.Futsal, 1)
	assert.Equal(t, def, GoalParams(nil, match.Futsal, 1))

	cal := Calibration{
		string(match.Futsal): SportCalibration{
			Status:    "ok",
			BaseGoals: 2.5,
			DivisionParams: map[string]DivisionParams{
				"1": {Status: "ok", BaseGoals: 1.8},
			},
		},
	}
	divParams := GoalParams(cal, match.Futsal, 1)
	assert.Equal(t, 1.8, divParams.BaseGoals, "division-level calibration wins when status is ok")

	sportParams := GoalParams(cal, match.Futsal, 2)
	assert.Equal(t, 2.5, sportParams.BaseGoals, "falls back to sport-level when the division has no record")
}

func TestGoalParamsIgnoresInsufficientDataDivision(t *testing.T) {
	cal := Calibration{
		string(match.Handball): SportCalibration{
			Status:    "ok",
			BaseGoals: 3.1,
			DivisionParams: map[string]DivisionParams{
				"1": {Status: "insufficient_data", BaseGoals: 99},
			},
		},
	}
	params := GoalParams(cal, match.Handball, 1)
	assert.Equal(t, 3.1, params.BaseGoals)
}

func TestGoalParamsByDivisionSkipsNonOkStatuses(t *testing.T) {
	cal := Calibration{
		string(match.Futsal): SportCalibration{
			Status: "ok",
			DivisionParams: map[string]DivisionParams{
				"1": {Status: "ok", BaseGoals: 2.0},
				"2": {Status: "insufficient_data", BaseGoals: 5.0},
			},
		},
	}
	out := GoalParamsByDivision(cal, match.Futsal)
	assert.Contains(t, out, 1)
	assert.NotContains(t, out, 2)
}

func TestBasketballParamsFallsBackToDefaultWhenUncalibrated(t *testing.T) {
	def := BasketballParams(Calibration{}, 1)
	assert.Equal(t, def.Mean, BasketballParams(nil, 1).Mean)
}
