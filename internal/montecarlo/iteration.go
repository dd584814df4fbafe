package montecarlo

import (
	"fmt"
	"math/rand"

	"github.com/tacaua/forecast/internal/match"
	"github.com/tacaua/forecast/internal/sampler"
)

// iterationState is one worker iteration's working copy of the mutable
// season state. Nothing here is shared across iterations or workers.
type iterationState struct {
	ratings   map[string]float64
	points    map[string]int
	gameIndex map[string]int
}

func newIterationState(in *Input) *iterationState {
	st := &iterationState{
		ratings:   make(map[string]float64, len(in.Teams)),
		points:    make(map[string]int, len(in.Teams)),
		gameIndex: make(map[string]int, len(in.Teams)),
	}
	for _, t := range in.Teams {
		st.ratings[t] = in.Ratings[t]
		st.points[t] = in.RealPoints[t]
		st.gameIndex[t] = in.GameIndex[t]
	}
	return st
}

// simulateOnce replays the remaining regular-phase fixtures, the playoff
// bracket, and promotion/relegation for a single iteration, folding the
// outcome into acc, per spec.md §4.4 steps 3-7.
func simulateOnce(rng *rand.Rand, in *Input, groups map[GroupKey][]string, acc *accumulator) {
	st := newIterationState(in)

	for idx, fx := range in.Fixtures {
		scoreA, scoreB, hit := hardsetScore(in, fx)
		if !hit {
			params := sampler.Params{
				Goal:       goalParamsFor(in, fx.Division),
				Basketball: in.BasketballParams,
			}
			scoreA, scoreB = sampler.Sample(rng, in.Sport, st.ratings[fx.TeamA], st.ratings[fx.TeamB], false, params)
		}
		eloA, eloB := st.ratings[fx.TeamA], st.ratings[fx.TeamB]
		st.applyResult(in, fx.TeamA, fx.TeamB, scoreA, scoreB, fx.Round, true)
		recordFixture(acc.fixtures[idx], eloA, eloB, scoreA, scoreB)
	}

	qualified := qualifyPlayoffs(in, groups, st.points)
	bracket := playBracket(rng, in, st, qualified)
	promoted, relegated := resolvePromotionRelegation(in, st.ratings, st.points)

	places := placesByGroup(groups, st.points)
	for _, t := range in.Teams {
		ta := acc.teams[t]
		pts := float64(st.points[t])
		ta.sumPoints += pts
		ta.sumPointsSq += pts * pts

		place := float64(places[t])
		ta.sumPlace += place
		ta.sumPlaceSq += place * place
		ta.positionCounts[places[t]]++

		elo := st.ratings[t]
		ta.sumElo += elo
		ta.sumEloSq += elo * elo

		if qualified[t] {
			ta.countPlayoffs++
		}
		if bracket.semifinalists[t] {
			ta.countSemis++
		}
		if bracket.finalists[t] {
			ta.countFinals++
		}
		if bracket.champion == t {
			ta.countChampion++
		}
		if promoted[t] {
			ta.countPromotion++
		}
		if relegated[t] {
			ta.countRelegation++
		}
	}
}

// goalParamsFor resolves division-calibrated goal parameters, falling back
// to the sport-wide default when no division-specific override was fit.
func goalParamsFor(in *Input, division int) sampler.GoalParams {
	if p, ok := in.GoalParamsByDivision[division]; ok {
		return p
	}
	return in.GoalParamsBySport[in.Sport]
}

// hardsetScore checks a pinned outcome for a future fixture, per spec.md
// §4.3 ("every simulated iteration must respect every pinned fixture").
func hardsetScore(in *Input, fx match.Match) (scoreA, scoreB int, ok bool) {
	if in.Hardset == nil || in.ShortCode == nil {
		return 0, 0, false
	}
	id := match.FromMatch(fx).ID(in.ShortCode)
	return in.Hardset.Get(id)
}

// recordFixture folds one simulated fixture's outcome into its accumulator.
// eloA/eloB must be the pre-match ratings, per spec.md §4.4 step 2 ("record
// per-fixture ... pre-match ratings").
func recordFixture(fa *fixtureAcc, eloA, eloB float64, scoreA, scoreB int) {
	fa.total++
	switch {
	case scoreA > scoreB:
		fa.count1++
	case scoreA < scoreB:
		fa.count2++
	default:
		fa.countX++
	}
	fa.sumEloA += eloA
	fa.sumEloASq += eloA * eloA
	fa.sumEloB += eloB
	fa.sumEloBSq += eloB * eloB
	fa.scoreCounts[fmt.Sprintf("%d-%d", scoreA, scoreB)]++
}

// placesByGroup ranks each team within its own group by simulated points,
// per spec.md §4.4 step 7's "expected final placement". Teams level on
// points get consecutive places in their in.Teams order (stable sort); the
// full tiebreak cascade is not applied, a documented simplification.
func placesByGroup(groups map[GroupKey][]string, points map[string]int) map[string]int {
	places := make(map[string]int)
	for _, teams := range groups {
		ordered := sortByPointsDescending(teams, points)
		for i, t := range ordered {
			places[t] = i + 1
		}
	}
	return places
}
