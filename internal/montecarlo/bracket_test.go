package montecarlo

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tacaua/forecast/internal/match"
	"github.com/tacaua/forecast/internal/sampler"
)

func bracketInput(teams []string) *Input {
	ratings := make(map[string]float64, len(teams))
	for i, t := range teams {
		ratings[t] = 1000 + float64(len(teams)-i)*10
	}
	return &Input{
		Sport:   match.Futsal,
		Teams:   teams,
		Ratings: ratings,
		GoalParamsBySport: map[Sport]sampler.GoalParams{
			match.Futsal: sampler.DefaultGoalParams(match.Futsal),
		},
	}
}

func TestPlayBracketEightTeamsGoesThroughFullRounds(t *testing.T) {
	teams := []string{"1", "2", "3", "4", "5", "6", "7", "8"}
	in := bracketInput(teams)
	st := newIterationState(in)
	qualified := map[string]bool{}
	for _, t := range teams {
		qualified[t] = true
		st.points[t] = 100 - len(t) // placeholder (99 for every one-character name); overwritten below
	}
	// give every team a strictly distinct, ordered point total matching its seed.
	for i, t := range teams {
		st.points[t] = len(teams) - i
	}

	rng := rand.New(rand.NewSource(42))
	result := playBracket(rng, in, st, qualified)

	assert.Len(t, result.semifinalists, 4)
	assert.Len(t, result.finalists, 2)
	assert.NotEmpty(t, result.champion)
	assert.Contains(t, teams, result.champion)
}

func TestPlayBracketFourTeamsSkipsQuarterfinals(t *testing.T) {
	teams := []string{"1", "2", "3", "4"}
	in := bracketInput(teams)
	st := newIterationState(in)
	qualified := map[string]bool{}
	for i, t := range teams {
		qualified[t] = true
		st.points[t] = len(teams) - i
	}

	rng := rand.New(rand.NewSource(1))
	result := playBracket(rng, in, st, qualified)

	assert.Len(t, result.semifinalists, 4)
	assert.Len(t, result.finalists, 2)
	assert.NotEmpty(t, result.champion)
}

func TestPlayBracketTwoTeamsGoesStraightToFinal(t *testing.T) {
	teams := []string{"1", "2"}
	in := bracketInput(teams)
	st := newIterationState(in)
	qualified := map[string]bool{"1": true, "2": true}
	st.points["1"], st.points["2"] = 2, 1

	rng := rand.New(rand.NewSource(2))
	result := playBracket(rng, in, st, qualified)

	assert.Empty(t, result.semifinalists, "a 2-team bracket never populates the semifinalist set")
	assert.Len(t, result.finalists, 2)
	assert.Contains(t, []string{"1", "2"}, result.champion)
}

func TestPlayBracketFewerThanTwoQualifiedReturnsEmptyResult(t *testing.T) {
	teams := []string{"1"}
	in := bracketInput(teams)
	st := newIterationState(in)
	qualified := map[string]bool{"1": true}
	st.points["1"] = 1

	rng := rand.New(rand.NewSource(3))
	result := playBracket(rng, in, st, qualified)

	assert.Empty(t, result.champion)
	assert.Empty(t, result.finalists)
}
