package montecarlo

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tacaua/forecast/internal/hardset"
	"github.com/tacaua/forecast/internal/match"
	"github.com/tacaua/forecast/internal/sampler"
)

func smallInput() *Input {
	return &Input{
		Sport:   match.Futsal,
		Teams:   []string{"A", "B", "C", "D"},
		Ratings: map[string]float64{"A": 1200, "B": 1100, "C": 1000, "D": 900},
		TeamDivision: map[string]int{"A": 1, "B": 1, "C": 1, "D": 1},
		Fixtures: []match.Match{
			{Sport: match.Futsal, Division: 1, Round: "J5", TeamA: "A", TeamB: "B"},
			{Sport: match.Futsal, Division: 1, Round: "J5", TeamA: "C", TeamB: "D"},
		},
		RealPoints: map[string]int{"A": 10, "B": 8, "C": 6, "D": 4},
		GoalParamsBySport: map[Sport]sampler.GoalParams{
			match.Futsal: sampler.DefaultGoalParams(match.Futsal),
		},
		NSimulations: 500,
		BaseSeed:     7,
	}
}

func TestRunIsDeterministicForTheSameSeed(t *testing.T) {
	in1 := smallInput()
	in2 := smallInput()

	result1 := Run(in1)
	result2 := Run(in2)

	for _, team := range in1.Teams {
		assert.Equal(t, result1.PerTeam[team].ExpectedPoints, result2.PerTeam[team].ExpectedPoints)
		assert.True(t, reflect.DeepEqual(result1.PerTeam[team].PositionProbabilities, result2.PerTeam[team].PositionProbabilities))
	}
	for i := range in1.Fixtures {
		assert.True(t, reflect.DeepEqual(result1.PerFixture[i].ScoreDistribution, result2.PerFixture[i].ScoreDistribution))
	}
}

func TestRunWithEmptyFixtureListLeavesExpectedPointsAtRealPoints(t *testing.T) {
	in := smallInput()
	in.Fixtures = nil
	result := Run(in)
	for _, team := range in.Teams {
		assert.Equal(t, float64(in.RealPoints[team]), result.PerTeam[team].ExpectedPoints)
	}
}

func TestRunRespectsEveryHardsetPinInEveryIteration(t *testing.T) {
	in := smallInput()
	mgr := hardset.New(nil)
	mgr.Add("futsal_J5_A_B", 3, 0)
	in.Hardset = mgr
	in.ShortCode = func(name string) string { return name }

	result := Run(in)
	require.Len(t, result.PerFixture, 2)
	pinned := result.PerFixture[0]
	assert.Equal(t, 1.0, pinned.ProbA, "a pinned 3-0 result must make team A win every iteration")
	assert.Equal(t, 1.0, pinned.ScoreDistribution["3-0"])
}
