package markets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tacaua/forecast/internal/montecarlo"
)

func TestParsePayoffExpandsRepeatedSegments(t *testing.T) {
	payoff, err := ParsePayoff("1|4x0.25|19x0")
	require.NoError(t, err)
	require.Len(t, payoff, 24)
	assert.Equal(t, 1.0, payoff[0])
	assert.Equal(t, 0.25, payoff[1])
	assert.Equal(t, 0.25, payoff[4])
	assert.Equal(t, 0.0, payoff[5])
}

func TestParsePayoffRejectsMalformedSegment(t *testing.T) {
	_, err := ParsePayoff("1|4xoops")
	assert.Error(t, err)
}

func TestNewMarketValidatesTeamCount(t *testing.T) {
	_, err := NewMarket("champion", "1|0", []string{"A", "B", "C"})
	assert.Error(t, err)

	m, err := NewMarket("champion", "1|0|0", []string{"A", "B", "C"})
	require.NoError(t, err)
	assert.Equal(t, "champion", m.Name)
}

func TestExpectedValuesWeightsByPositionProbability(t *testing.T) {
	m, err := NewMarket("champion", "1|0|0", []string{"A", "B", "C"})
	require.NoError(t, err)

	result := &montecarlo.Result{
		PerTeam: map[string]*montecarlo.PerTeamStats{
			"A": {Team: "A", PositionProbabilities: map[int]float64{1: 0.6, 2: 0.4}},
			"B": {Team: "B", PositionProbabilities: map[int]float64{1: 0.2, 2: 0.8}},
			"C": {Team: "C", PositionProbabilities: map[int]float64{3: 1.0}},
		},
	}
	values := ExpectedValues(result, m)
	assert.InDelta(t, 0.6, values["A"], 1e-9)
	assert.InDelta(t, 0.2, values["B"], 1e-9)
	assert.InDelta(t, 0.0, values["C"], 1e-9)
}
