package rating

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tacaua/forecast/internal/match"
)

func scorePtr(v int) *int { return &v }

func playedMatch(teamA, teamB string, scoreA, scoreB int, date time.Time, group string) match.Match {
	return match.Match{
		Sport:  match.Futsal,
		Round:  "J1",
		Date:   date,
		Group:  group,
		TeamA:  teamA,
		TeamB:  teamB,
		ScoreA: scorePtr(scoreA),
		ScoreB: scorePtr(scoreB),
	}
}

func TestProcessSeasonWarnsWhenNoWinterBoundaryFound(t *testing.T) {
	matches := []match.Match{
		playedMatch("A", "B", 2, 1, time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC), ""),
		playedMatch("A", "B", 1, 1, time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC), ""),
	}
	res := ProcessSeason(matches, nil)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "winter break boundary not detected")
}

func TestProcessSeasonDetectsWinterBoundaryAcrossYearChange(t *testing.T) {
	matches := []match.Match{
		playedMatch("A", "B", 2, 1, time.Date(2025, 12, 20, 0, 0, 0, 0, time.UTC), ""),
		playedMatch("A", "B", 0, 0, time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC), ""),
	}
	res := ProcessSeason(matches, nil)
	assert.Empty(t, res.Warnings)
}

func TestProcessSeasonAppliesCrossGroupAdjustmentsWhenGroupedWithoutDivision(t *testing.T) {
	date := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	matches := []match.Match{
		// regular-phase, within-group matches feed each group's standings table.
		playedMatch("1B", "2B", 3, 0, date, "B"),
		playedMatch("1C", "2C", 1, 1, date, "C"),
		// an inter-group playoff match (round "E1") is what groupWinRates reads.
		{Sport: match.Futsal, Round: match.RoundQuarter, Date: date, TeamA: "1B", TeamB: "1C", ScoreA: scorePtr(3), ScoreB: scorePtr(0)},
	}
	res := ProcessSeason(matches, nil)
	assert.NotEmpty(t, res.CrossGroup, "a grouped, division-less match set with an inter-group playoff result must trigger cross-group adjustment")
}

func TestProcessSeasonSkipsCrossGroupAdjustmentWhenDivisionIsSet(t *testing.T) {
	date := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	matches := []match.Match{
		{Sport: match.Futsal, Division: 2, Group: "B", Round: "J1", Date: date, TeamA: "1B", TeamB: "2B", ScoreA: scorePtr(3), ScoreB: scorePtr(0)},
	}
	res := ProcessSeason(matches, nil)
	assert.Empty(t, res.CrossGroup)
}

func TestProcessSeasonRecordsMatchLogWithRatingDeltas(t *testing.T) {
	date := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	matches := []match.Match{playedMatch("A", "B", 3, 1, date, "")}
	res := ProcessSeason(matches, nil)
	require.Len(t, res.Log, 1)
	entry := res.Log[0]
	assert.Equal(t, "match", entry.Kind)
	assert.NotEqual(t, entry.RatingBeforeA, entry.RatingAfterA)
}
