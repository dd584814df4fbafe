package sampler

import (
	"math"
	"math/rand"
)

// sampleVolleyball implements spec.md §4.3's volleyball model: no draws,
// winner chosen by the standard Elo logistic, margin (2-0 sweep vs. 2-1)
// chosen by a rating-gap-dependent sweep probability.
func sampleVolleyball(rng *rand.Rand, delta float64) (scoreA, scoreB int) {
	pA := 1.0 / (1.0 + math.Pow(10, -delta/250))
	winnerA := rng.Float64() < pA

	pSweep := 0.35 + minF(absF(delta)/800, 0.4)
	sweep := rng.Float64() < pSweep

	switch {
	case winnerA && sweep:
		return 2, 0
	case winnerA && !sweep:
		return 2, 1
	case !winnerA && sweep:
		return 0, 2
	default:
		return 1, 2
	}
}

func absF(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
