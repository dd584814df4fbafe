package calibrate

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/tacaua/forecast/internal/match"
	"github.com/tacaua/forecast/internal/rating"
)

// sample is one historical match's calibration-relevant observations:
// pre-match rating gap, draw indicator, and score margin.
type sample struct {
	absDelta float64
	isDraw   float64 // 0 or 1, for use directly as a regression target
	margin   float64
	goalsA   float64
	goalsB   float64
}

// Fit replays the Rating Engine over every past match in matches (which
// may span multiple seasons, already in file order) and derives
// per-sport, per-division calibration records, per spec.md §4.6.
func Fit(matches []match.Match) Calibration {
	bySport := make(map[match.Sport][]match.Match)
	for _, m := range matches {
		bySport[m.Sport] = append(bySport[m.Sport], m)
	}

	out := make(Calibration, len(bySport))
	for sport, sportMatches := range bySport {
		result := rating.ProcessSeason(sportMatches, nil)

		samplesBySportDivision := make(map[int][]sample)
		var all []sample
		for _, entry := range result.Log {
			if entry.Kind != "match" {
				continue
			}
			s := sample{
				absDelta: math.Abs(entry.RatingBeforeA - entry.RatingBeforeB),
				margin:   math.Abs(float64(entry.ScoreA - entry.ScoreB)),
				goalsA:   float64(entry.ScoreA),
				goalsB:   float64(entry.ScoreB),
			}
			if entry.ScoreA == entry.ScoreB {
				s.isDraw = 1
			}
			all = append(all, s)
			samplesBySportDivision[entry.Division] = append(samplesBySportDivision[entry.Division], s)
		}

		sportCal := fitGroup(all)
		sportCal.SportType = string(sport)
		sportCal.DivisionParams = make(map[string]DivisionParams)
		for division, samples := range samplesBySportDivision {
			if division == 0 {
				continue
			}
			div := fitGroup(samples)
			key := divisionKey(division)
			sportCal.DivisionParams[key] = DivisionParams{
				BaseGoals:          div.BaseGoals,
				BaseGoalsStd:       div.BaseGoalsStd,
				DispersionK:        div.DispersionK,
				BaseDrawRate:       div.BaseDrawRate,
				DrawEloSensitivity: div.DrawEloSensitivity,
				DrawMultiplier:     div.DrawMultiplier,
				DrawModel:          div.DrawModel,
				MarginEloSlope:     div.MarginEloSlope,
				MarginEloIntercept: div.MarginEloIntercept,
				Status:             div.Status,
				Samples:            div.Samples,
			}
		}
		out[string(sport)] = sportCal
	}
	return out
}

// fitGroup computes one sport- or division-level calibration record from
// its replayed samples, per spec.md §4.6's procedure.
func fitGroup(samples []sample) SportCalibration {
	cal := SportCalibration{Samples: len(samples)}
	if len(samples) < minSamples {
		cal.Status = "insufficient_data"
		return cal
	}
	cal.Status = "ok"

	var absDeltas, draws, margins, goals []float64
	for _, s := range samples {
		absDeltas = append(absDeltas, s.absDelta)
		draws = append(draws, s.isDraw)
		margins = append(margins, s.margin)
		goals = append(goals, s.goalsA, s.goalsB)
	}

	drawCount := 0.0
	for _, d := range draws {
		drawCount += d
	}
	cal.BaseDrawRate = drawCount / float64(len(draws))

	intercept, coef := fitLogistic(absDeltas, draws)
	cal.DrawModel = DrawModel{Intercept: intercept, CoefLinear: coef}
	cal.DrawEloSensitivity = coef

	predicted := make([]float64, len(absDeltas))
	for i, d := range absDeltas {
		predicted[i] = sigmoid(intercept + coef*d)
	}
	cal.DrawMultiplier = optimalDrawMultiplier(predicted, cal.BaseDrawRate)

	alpha, beta := stat.LinearRegression(absDeltas, margins, nil, false)
	cal.MarginEloIntercept = alpha
	cal.MarginEloSlope = beta

	mean := stat.Mean(goals, nil)
	variance := stat.Variance(goals, nil)
	cal.BaseGoals = mean
	cal.BaseGoalsStd = math.Sqrt(variance)
	if variance > mean {
		cal.DispersionK = mean * mean / (variance - mean)
	} else {
		cal.DispersionK = 10
	}

	return cal
}

func divisionKey(division int) string {
	switch division {
	case 1:
		return "1"
	case 2:
		return "2"
	default:
		return "0"
	}
}
