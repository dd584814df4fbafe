package montecarlo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// miniLeagueFixture builds a 7-team Div1 plus a 2-group, 2-team-per-group
// Div2 with a liguilla, per spec.md §8 scenario 6: three teams relegate
// directly from Div1, the 4th-from-bottom enters a mini-league against each
// Div2 group's runner-up, decided by live simulated rating.
func miniLeagueFixture(fourthFromBottomRating float64) (*Input, map[string]int, map[string]float64) {
	in := &Input{
		Teams: []string{
			"1A", "2A", "3A", "4A", "5A", "6A", "7A",
			"1B", "2B", "1C", "2C",
		},
		TeamDivision: map[string]int{
			"1A": 1, "2A": 1, "3A": 1, "4A": 1, "5A": 1, "6A": 1, "7A": 1,
			"1B": 2, "2B": 2, "1C": 2, "2C": 2,
		},
		TeamGroup: map[string]string{
			"1B": "B", "2B": "B", "1C": "C", "2C": "C",
		},
		HasLiguilla:    true,
		Div2GroupCount: 2,
	}
	points := map[string]int{
		"1A": 70, "2A": 60, "3A": 50, "4A": 40, "5A": 30, "6A": 20, "7A": 10,
		"1B": 50, "2B": 25,
		"1C": 48, "2C": 24,
	}
	ratings := map[string]float64{
		"1A": 1500, "2A": 1400, "3A": 1300, "4A": fourthFromBottomRating,
		"5A": 1000, "6A": 900, "7A": 800,
		"1B": 1100, "2B": 1050,
		"1C": 1090, "2C": 1300,
	}
	return in, points, ratings
}

func TestResolvePromotionRelegationRelegatesBottomThreeDirectly(t *testing.T) {
	in, points, ratings := miniLeagueFixture(900)
	_, relegated := resolvePromotionRelegation(in, ratings, points)

	assert.True(t, relegated["5A"])
	assert.True(t, relegated["6A"])
	assert.True(t, relegated["7A"])
	assert.False(t, relegated["1A"])
}

func TestResolvePromotionRelegationDivisionTwoGroupWinnersPromoteDirectly(t *testing.T) {
	in, points, ratings := miniLeagueFixture(900)
	promoted, _ := resolvePromotionRelegation(in, ratings, points)

	assert.True(t, promoted["1B"], "group B's points leader promotes directly")
	assert.True(t, promoted["1C"], "group C's points leader promotes directly")
}

func TestResolvePromotionRelegationMiniLeagueCandidateWithHighestRatingSurvives(t *testing.T) {
	// 4A (the 4th-from-bottom Div1 candidate) holds the highest rating among
	// the mini-league's three candidates (4A, 2B, 2C) — it should keep its
	// Div1 place and relegate no one extra.
	in, points, ratings := miniLeagueFixture(1600)
	promoted, relegated := resolvePromotionRelegation(in, ratings, points)

	assert.False(t, relegated["4A"], "the mini-league candidate with the highest simulated rating is not relegated")
	assert.False(t, promoted["2B"])
	assert.False(t, promoted["2C"])
}

func TestResolvePromotionRelegationMiniLeagueDivisionTwoChallengerWins(t *testing.T) {
	// 2C (rating 1300) beats 4A (rating 900) and the other Div2 runner-up —
	// 2C promotes and 4A is relegated in its place.
	in, points, ratings := miniLeagueFixture(900)
	promoted, relegated := resolvePromotionRelegation(in, ratings, points)

	assert.True(t, promoted["2C"], "the mini-league candidate with the highest simulated rating promotes")
	assert.True(t, relegated["4A"], "the losing Div1 candidate is relegated in its place")
}

func TestResolvePromotionRelegationSingleGroupPromotesNonBTeamsOnly(t *testing.T) {
	in := &Input{
		Teams:          []string{"1A", "2A", "1B Team B", "2B", "3B"},
		Div2GroupCount: 1,
		TeamDivision: map[string]int{
			"1A": 1, "2A": 1,
			"1B Team B": 2, "2B": 2, "3B": 2,
		},
	}
	points := map[string]int{
		"1A": 10, "2A": 5,
		"1B Team B": 30, "2B": 20, "3B": 10,
	}
	promoted, relegated := resolvePromotionRelegation(in, nil, points)

	assert.False(t, promoted["1B Team B"], "a B-team never promotes regardless of rank")
	assert.True(t, promoted["2B"])
	assert.True(t, promoted["3B"])
	assert.True(t, relegated["2A"])
}

func TestApplyAProtectionDeletesPromotedBTeamsParent(t *testing.T) {
	promoted := map[string]bool{"City United B": true}
	relegated := map[string]bool{"City United": true, "Other FC": true}
	applyAProtection(promoted, relegated)

	assert.False(t, relegated["City United"], "promoting the B team protects its A team from relegation")
	assert.True(t, relegated["Other FC"])
}
