package montecarlo

import (
	"math"
	"math/rand"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tacaua/forecast/internal/obs"
)

// progressLogThreshold gates the periodic progress log to large runs, per
// spec.md §5's "recommended chunking: 10,000 iterations per batch for
// n_simulations >= 100,000" — below that the whole run finishes before a
// single tick would fire anyway.
const progressLogThreshold = 100_000

// Run replays in.NSimulations iterations across all available CPU cores and
// aggregates streaming moments, per spec.md §4.4 steps 3, 7 and the
// parallelization contract ("no shared mutable state between workers").
func Run(in *Input) *Result {
	groups := teamsByGroup(in)

	numWorkers := runtime.NumCPU()
	if numWorkers > in.NSimulations {
		numWorkers = in.NSimulations
	}
	if numWorkers < 1 {
		numWorkers = 1
	}

	jobs := make(chan int, in.NSimulations)
	results := make(chan *accumulator, numWorkers)
	var completed int64

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			local := newAccumulator(in)
			for iter := range jobs {
				rng := rand.New(rand.NewSource(seedFor(in.BaseSeed, iter)))
				simulateOnce(rng, in, groups, local)
				atomic.AddInt64(&completed, 1)
			}
			results <- local
		}()
	}

	for i := 0; i < in.NSimulations; i++ {
		jobs <- i
	}
	close(jobs)

	stopProgress := make(chan struct{})
	if in.NSimulations >= progressLogThreshold {
		go reportProgress(&completed, in.NSimulations, stopProgress)
	}

	wg.Wait()
	close(stopProgress)
	close(results)

	global := newAccumulator(in)
	for local := range results {
		local.mergeInto(global)
	}

	return finalize(in, global)
}

// reportProgress logs completion percentage every second, reading only the
// single shared counter workers already maintain — no additional
// contention, per spec.md §5.
func reportProgress(completed *int64, total int, stop <-chan struct{}) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			done := atomic.LoadInt64(completed)
			obs.L().Info("monte-carlo progress", "completed", done, "total", total,
				"pct", float64(done)/float64(total)*100)
		}
	}
}

// seedFor derives a deterministic, counter-based per-iteration seed so
// repeated runs with the same base seed reproduce identical draws.
func seedFor(base int64, iteration int) int64 {
	return base*2654435761 + int64(iteration)
}

// finalize converts raw counters and moment sums into the probabilities and
// expected values spec.md §4.4 step 7 describes.
func finalize(in *Input, acc *accumulator) *Result {
	n := float64(in.NSimulations)
	res := &Result{PerTeam: make(map[string]*PerTeamStats, len(in.Teams))}

	for _, t := range in.Teams {
		a := acc.teams[t]
		posProbs := make(map[int]float64, len(a.positionCounts))
		for pos, c := range a.positionCounts {
			posProbs[pos] = float64(c) / n
		}
		res.PerTeam[t] = &PerTeamStats{
			Team: t,

			PPlayoffs:   float64(a.countPlayoffs) / n,
			PSemifinals: float64(a.countSemis) / n,
			PFinals:     float64(a.countFinals) / n,
			PChampion:   float64(a.countChampion) / n,
			PPromotion:  float64(a.countPromotion) / n,
			PRelegation: float64(a.countRelegation) / n,

			ExpectedPoints:    a.sumPoints / n,
			ExpectedPointsStd: stdDev(a.sumPoints, a.sumPointsSq, n),
			ExpectedPlace:     a.sumPlace / n,
			ExpectedPlaceStd:  stdDev(a.sumPlace, a.sumPlaceSq, n),
			AvgFinalElo:       a.sumElo / n,
			AvgFinalEloStd:    stdDev(a.sumElo, a.sumEloSq, n),

			PositionProbabilities: posProbs,
		}
	}

	res.PerFixture = make([]*PerFixtureStats, len(in.Fixtures))
	for i, fx := range in.Fixtures {
		fa := acc.fixtures[i]
		total := float64(fa.total)
		if total == 0 {
			total = 1
		}
		dist := make(map[string]float64, len(fa.scoreCounts))
		for k, c := range fa.scoreCounts {
			dist[k] = float64(c) / total
		}
		res.PerFixture[i] = &PerFixtureStats{
			Fixture: fx,

			ProbA:    float64(fa.count1) / total,
			ProbDraw: float64(fa.countX) / total,
			ProbB:    float64(fa.count2) / total,

			ExpectedEloA:    fa.sumEloA / total,
			ExpectedEloAStd: stdDev(fa.sumEloA, fa.sumEloASq, total),
			ExpectedEloB:    fa.sumEloB / total,
			ExpectedEloBStd: stdDev(fa.sumEloB, fa.sumEloBSq, total),

			ScoreDistribution: dist,
		}
	}
	return res
}

// stdDev computes sqrt(E[x²] - E[x]²), floored at 0 against floating-point
// underflow when variance is effectively zero.
func stdDev(sum, sumSq, n float64) float64 {
	if n == 0 {
		return 0
	}
	mean := sum / n
	variance := sumSq/n - mean*mean
	if variance < 0 {
		variance = 0
	}
	return math.Sqrt(variance)
}
