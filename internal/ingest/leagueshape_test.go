package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tacaua/forecast/internal/match"
)

func scorePtr(v int) *int { return &v }

func TestDeriveLeagueShapeCountsDiv2Groups(t *testing.T) {
	matches := []match.Match{
		{Sport: match.Futsal, Division: 1, Round: "J1", TeamA: "1A", TeamB: "2A", ScoreA: scorePtr(2), ScoreB: scorePtr(0)},
		{Sport: match.Futsal, Division: 2, Group: "B", Round: "J1", TeamA: "1B", TeamB: "2B", ScoreA: scorePtr(1), ScoreB: scorePtr(1)},
		{Sport: match.Futsal, Division: 2, Group: "C", Round: "J1", TeamA: "1C", TeamB: "2C", ScoreA: scorePtr(3), ScoreB: scorePtr(2)},
	}
	shape := DeriveLeagueShape(matches, match.Futsal)

	assert.Equal(t, 2, shape.Div2GroupCount)
	assert.Equal(t, 1, shape.TeamDivision["1A"])
	assert.Equal(t, 2, shape.TeamDivision["1B"])
	assert.Equal(t, "B", shape.TeamGroup["1B"])
}

func TestDeriveLeagueShapeDetectsLiguillaFromRoundPrefix(t *testing.T) {
	matches := []match.Match{
		{Sport: match.Futsal, Division: 1, Round: "LM1", TeamA: "A", TeamB: "B", ScoreA: scorePtr(1), ScoreB: scorePtr(0)},
	}
	shape := DeriveLeagueShape(matches, match.Futsal)
	assert.True(t, shape.HasLiguilla)
}

func TestDeriveLeagueShapeFallsBackToDefaultPlayoffSlotsWhenNoBracketHistory(t *testing.T) {
	matches := []match.Match{
		{Sport: match.Futsal, Division: 1, Round: "J1", TeamA: "A", TeamB: "B", ScoreA: scorePtr(1), ScoreB: scorePtr(0)},
	}
	shape := DeriveLeagueShape(matches, match.Futsal)
	assert.Equal(t, defaultTotalPlayoffSlots, shape.TotalPlayoffSlots)
	assert.Nil(t, shape.PlayoffSlots)
}

func TestDeriveLeagueShapeDerivesPlayoffSlotsFromBracketHistory(t *testing.T) {
	matches := []match.Match{
		{Sport: match.Futsal, Division: 1, Round: "E1", TeamA: "A", TeamB: "B", ScoreA: scorePtr(1), ScoreB: scorePtr(0)},
		{Sport: match.Futsal, Division: 1, Round: "E1", TeamA: "C", TeamB: "D", ScoreA: scorePtr(2), ScoreB: scorePtr(1)},
	}
	shape := DeriveLeagueShape(matches, match.Futsal)
	assert.Equal(t, 4, shape.TotalPlayoffSlots)
}

func TestDeriveLeagueShapeIgnoresOtherSports(t *testing.T) {
	matches := []match.Match{
		{Sport: match.Handball, Division: 1, Round: "J1", TeamA: "A", TeamB: "B", ScoreA: scorePtr(1), ScoreB: scorePtr(0)},
	}
	shape := DeriveLeagueShape(matches, match.Futsal)
	assert.Empty(t, shape.TeamDivision)
}

func TestDeriveLeagueShapeRealPointsReflectsPlayedMatchesOnly(t *testing.T) {
	matches := []match.Match{
		{Sport: match.Futsal, Division: 1, Round: "J1", TeamA: "A", TeamB: "B", ScoreA: scorePtr(3), ScoreB: scorePtr(0)},
		{Sport: match.Futsal, Division: 1, Round: "J2", TeamA: "A", TeamB: "B"},
	}
	shape := DeriveLeagueShape(matches, match.Futsal)
	assert.Equal(t, 3, shape.RealPoints["A"])
	assert.Equal(t, 0, shape.RealPoints["B"])
}
