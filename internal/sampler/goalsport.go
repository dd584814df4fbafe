package sampler

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/stat/distuv"
)

const maxDrawResamples = 50
const maxWinnerResamples = 1000

// sampleGoals implements spec.md §4.3's Poisson-with-overdispersion model
// shared by futsal, handball and football-7, including the forced-draw and
// anti-draw/force-winner resampling policies.
func sampleGoals(rng *rand.Rand, delta float64, p GoalParams, forceWinner bool) (scoreA, scoreB int) {
	if !forceWinner && p.TargetDrawRate > 0 {
		if rng.Float64() < p.TargetDrawRate*p.ForcedDrawFraction {
			g := poissonSample(rng, p.BaseGoals)
			return g, g
		}
	}

	scoreA, scoreB = poissonPair(rng, delta, p)

	if forceWinner {
		for i := 0; i < maxWinnerResamples && scoreA == scoreB; i++ {
			scoreA, scoreB = poissonPair(rng, delta, p)
		}
		return scoreA, scoreB
	}

	if p.TargetDrawRate == 0 && p.HistoricalDrawRate < 0.20 {
		for i := 0; i < maxDrawResamples && scoreA == scoreB; i++ {
			scoreA, scoreB = poissonPair(rng, delta, p)
		}
	}
	return scoreA, scoreB
}

func poissonPair(rng *rand.Rand, delta float64, p GoalParams) (int, int) {
	adjA := clamp(delta/p.EloScale, -p.DeltaLimit, p.DeltaLimit)
	adjB := clamp(-delta/p.EloScale, -p.DeltaLimit, p.DeltaLimit)

	lambdaMax := math.Max(15, 2*p.BaseGoals)

	lambdaA := clamp(p.BaseGoals*(1+adjA)*gammaNoise(rng, p.DispersionK), 0.2, lambdaMax)
	lambdaB := clamp(p.BaseGoals*(1+adjB)*gammaNoise(rng, p.DispersionK), 0.2, lambdaMax)

	return poissonSample(rng, lambdaA), poissonSample(rng, lambdaB)
}

// gammaNoise draws the overdispersion multiplier Gamma(k, 1/k), which has
// mean 1 and variance 1/k — the larger k, the closer to a pure Poisson.
func gammaNoise(rng *rand.Rand, k float64) float64 {
	g := distuv.Gamma{Alpha: k, Beta: k, Src: rng}
	return g.Rand()
}

func poissonSample(rng *rand.Rand, lambda float64) int {
	p := distuv.Poisson{Lambda: lambda, Src: rng}
	return int(math.Round(p.Rand()))
}
