// Package sampler implements the Outcome Sampler of spec.md §4.3: per-sport
// generative score models dispatched by sport as a tagged variant, per
// spec.md §9 ("Dynamic-dispatch over sports").
package sampler

import (
	"math/rand"

	"github.com/tacaua/forecast/internal/match"
)

// GoalParams are the Poisson-with-overdispersion model's sport defaults
// (or calibration overrides), per spec.md §4.3's table.
type GoalParams struct {
	BaseGoals          float64
	EloScale           float64 // elo_scale · mult, already combined
	DispersionK        float64
	ForcedDrawFraction float64
	DeltaLimit         float64

	// TargetDrawRate is the calibrated draw rate driving the forced-draw
	// policy; zero means "no calibration available".
	TargetDrawRate float64
	// HistoricalDrawRate gates the anti-draw resampling fallback.
	HistoricalDrawRate float64
}

// BasketballParams are the Normal-score model's division-calibrated mean
// and standard deviation (falls back to spec defaults when zero).
type BasketballParams struct {
	Mean float64
	Std  float64
}

var defaultGoalParams = map[match.Sport]GoalParams{
	match.Futsal:     {BaseGoals: 4.5, EloScale: 600 * 0.75, DispersionK: 5.0, ForcedDrawFraction: 0.98, DeltaLimit: 1.2},
	match.Handball:   {BaseGoals: 18.0, EloScale: 500 * 0.75, DispersionK: 12.0, ForcedDrawFraction: 0.55, DeltaLimit: 0.7},
	match.Football7:  {BaseGoals: 3.0, EloScale: 600 * 0.75, DispersionK: 6.0, ForcedDrawFraction: 0.90, DeltaLimit: 1.0},
}

// DefaultGoalParams returns the spec-default parameters for a Poisson-model
// sport. Callers overlay calibration output on top of this when available.
func DefaultGoalParams(sport match.Sport) GoalParams {
	return defaultGoalParams[sport]
}

// DefaultBasketballParams is the spec default (base=15, std=2) before any
// division calibration is applied.
func DefaultBasketballParams() BasketballParams {
	return BasketballParams{Mean: 15, Std: 2}
}

// Params bundles whichever model parameters a sport needs; only the
// relevant field is read by Sample for a given sport.
type Params struct {
	Goal       GoalParams
	Basketball BasketballParams
}

// Sample draws (score_a, score_b) for one fixture under the sport's model,
// per spec.md §4.3's public contract. forceWinner requests playoff mode
// (no draws permitted, regardless of sport).
func Sample(rng *rand.Rand, sport match.Sport, ratingA, ratingB float64, forceWinner bool, params Params) (scoreA, scoreB int) {
	delta := ratingA - ratingB
	switch sport {
	case match.Volleyball:
		return sampleVolleyball(rng, delta)
	case match.Basketball:
		return sampleBasketball(rng, delta, params.Basketball)
	default: // Futsal, Handball, Football7
		return sampleGoals(rng, delta, params.Goal, forceWinner)
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
