package sampler

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/stat/distuv"
)

const basketballSigmaMult = 1.3

// sampleBasketball implements spec.md §4.3's basketball 3x3 model: Normal
// scores clipped to [0, 21], with sudden-death overtime on a tie.
func sampleBasketball(rng *rand.Rand, delta float64, params BasketballParams) (scoreA, scoreB int) {
	base := params.Mean
	if base == 0 {
		base = DefaultBasketballParams().Mean
	}
	std := params.Std
	if std < 2 {
		std = 2
	}
	sigma := std * basketballSigmaMult

	deltaClampedA := clamp(delta/250, -0.5, 0.5)
	deltaClampedB := clamp(-delta/250, -0.5, 0.5)

	normA := distuv.Normal{Mu: base + deltaClampedA, Sigma: sigma, Src: rng}
	normB := distuv.Normal{Mu: base + deltaClampedB, Sigma: sigma, Src: rng}

	scoreA = clampInt(int(math.Round(normA.Rand())), 0, 21)
	scoreB = clampInt(int(math.Round(normB.Rand())), 0, 21)

	if scoreA != scoreB {
		return scoreA, scoreB
	}
	return suddenDeath(rng, delta, scoreA, scoreB)
}

// suddenDeath breaks a tie: the winner is chosen by the Elo probability,
// then the margin is either an immediate 2-point basket (30% of the time)
// or a 2-0/2-1 finish.
func suddenDeath(rng *rand.Rand, delta float64, scoreA, scoreB int) (int, int) {
	pA := 1.0 / (1.0 + math.Pow(10, -delta/250))
	winnerA := rng.Float64() < pA

	immediate := rng.Float64() < 0.30
	loserPoints := 0
	if !immediate && rng.Float64() < 0.4 {
		loserPoints = 1
	}

	if winnerA {
		return scoreA + 2, scoreB + loserPoints
	}
	return scoreA + loserPoints, scoreB + 2
}
