package montecarlo

import (
	"math/rand"

	"github.com/tacaua/forecast/internal/match"
	"github.com/tacaua/forecast/internal/rating"
	"github.com/tacaua/forecast/internal/sampler"
	"github.com/tacaua/forecast/internal/standings"
)

// bracketResult records which teams reached which bracket stage, per
// spec.md §4.4 step 5.
type bracketResult struct {
	semifinalists map[string]bool
	finalists     map[string]bool
	champion      string
}

// playBracket seeds and plays the single-elimination bracket for one
// iteration's qualified teams, per spec.md §4.4 step 5. Seeding is by
// simulated points (descending); ratings and gameIndex are mutated in
// place as the single-match rating update propagates through each round.
func playBracket(rng *rand.Rand, in *Input, state *iterationState, qualified map[string]bool) bracketResult {
	var qualifiedTeams []string
	for _, t := range in.Teams {
		if qualified[t] {
			qualifiedTeams = append(qualifiedTeams, t)
		}
	}
	seeded := sortByPointsDescending(qualifiedTeams, state.points)
	n := len(seeded)

	result := bracketResult{semifinalists: map[string]bool{}, finalists: map[string]bool{}}
	if n < 2 {
		return result
	}

	playMatch := func(round, teamA, teamB string) string {
		scoreA, scoreB := state.playSimulatedMatch(rng, in, teamA, teamB, round, true)
		if scoreA > scoreB {
			return teamA
		}
		return teamB
	}

	switch {
	case n >= 8:
		top8 := seeded[:8]
		pairs := [4][2]int{{0, 7}, {1, 6}, {2, 5}, {3, 4}}
		quarterWinners := make([]string, 4)
		for i, p := range pairs {
			quarterWinners[i] = playMatch(match.RoundQuarter, top8[p[0]], top8[p[1]])
			result.semifinalists[quarterWinners[i]] = true
		}
		semiA := playMatch(match.RoundSemi, quarterWinners[0], quarterWinners[1])
		semiB := playMatch(match.RoundSemi, quarterWinners[2], quarterWinners[3])
		result.finalists[semiA] = true
		result.finalists[semiB] = true
		result.champion = playMatch(match.RoundFinal, semiA, semiB)

	case n >= 4:
		top4 := seeded[:4]
		for _, t := range top4 {
			result.semifinalists[t] = true
		}
		semiA := playMatch(match.RoundSemi, top4[0], top4[3])
		semiB := playMatch(match.RoundSemi, top4[1], top4[2])
		result.finalists[semiA] = true
		result.finalists[semiB] = true
		result.champion = playMatch(match.RoundFinal, semiA, semiB)

	default: // 2 or 3 eligible: straight to the final
		result.finalists[seeded[0]] = true
		result.finalists[seeded[1]] = true
		result.champion = playMatch(match.RoundFinal, seeded[0], seeded[1])
	}
	return result
}

// playSimulatedMatch draws a score from the sampler (hardset pins are not
// consulted here) and applies the single-match rating update; the
// iteration's working points are left unchanged. forcePlayoff requests
// no-draw sampling.
func (st *iterationState) playSimulatedMatch(rng *rand.Rand, in *Input, teamA, teamB, round string, forcePlayoff bool) (scoreA, scoreB int) {
	params := sampler.Params{
		Goal:       goalParamsFor(in, in.TeamDivision[teamA]),
		Basketball: in.BasketballParams,
	}
	scoreA, scoreB = sampler.Sample(rng, in.Sport, st.ratings[teamA], st.ratings[teamB], forcePlayoff, params)
	st.applyResult(in, teamA, teamB, scoreA, scoreB, round, false)
	return scoreA, scoreB
}

// applyResult folds one simulated match's outcome into the iteration's
// working ratings, game-index counters, and (if countPoints) points.
func (st *iterationState) applyResult(in *Input, teamA, teamB string, scoreA, scoreB int, round string, countPoints bool) {
	st.gameIndex[teamA]++
	st.gameIndex[teamB]++

	deltaA, deltaB := rating.UpdateMatch(
		st.ratings[teamA], st.ratings[teamB],
		scoreA, scoreB,
		st.gameIndex[teamA], st.gameIndex[teamB],
		in.TotalGroupGames[teamA], in.TotalGroupGames[teamB],
		st.winterBoundary(in, teamA), st.winterBoundary(in, teamB),
		round, false,
	)
	st.ratings[teamA] += float64(deltaA)
	st.ratings[teamB] += float64(deltaB)

	if countPoints {
		var setsA, setsB *int
		if in.Sport == match.Volleyball {
			setsA, setsB = &scoreA, &scoreB
		}
		ptsA, ptsB := standings.PointsFor(in.Sport, scoreA, scoreB, setsA, setsB)
		st.points[teamA] += ptsA
		st.points[teamB] += ptsB
	}
}

func (st *iterationState) winterBoundary(in *Input, team string) *int {
	if !in.HaveWinterBoundary {
		return nil
	}
	b := in.GamesBeforeWinter[team]
	if st.gameIndex[team] > b {
		v := b
		return &v
	}
	return nil
}
