package team

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistryHistoriesStayAlignedAcrossSteps(t *testing.T) {
	r := NewRegistry()
	a := r.GetOrCreate("A", 1, nil)
	b := r.GetOrCreate("B", 1, nil)
	c := r.GetOrCreate("C", 2, nil)

	a.Rating = 1010
	b.Rating = 990
	r.RecordStep("A", "B")

	assert.Len(t, r.History("A").Values, 2)
	assert.Len(t, r.History("B").Values, 2)
	assert.Len(t, r.History("C").Values, 2, "an untouched team's history must still be right-padded to the new step count")
	assert.Equal(t, r.History("C").Values[0], r.History("C").Values[1])
}

func TestGetOrCreateUsesDivisionDefaultOrOverride(t *testing.T) {
	r := NewRegistry()
	div1 := r.GetOrCreate("D1", 1, nil)
	assert.Equal(t, RatingDivisionOne, div1.Rating)

	override := r.GetOrCreate("Carried", 1, map[string]float64{"Carried": 1234})
	assert.Equal(t, 1234.0, override.Rating)

	again := r.GetOrCreate("D1", 2, nil)
	assert.Same(t, div1, again, "GetOrCreate must not recreate an already-known team")
}

func TestIsBTeamRequiresTrailingSpaceB(t *testing.T) {
	assert.True(t, IsBTeam("City United B"))
	assert.False(t, IsBTeam("City United"))
	assert.False(t, IsBTeam("B"))
}

func TestHistoryPadToIsNoOpWhenAlreadyLongEnough(t *testing.T) {
	h := &History{Values: []float64{1, 2, 3}}
	h.PadTo(2)
	assert.Equal(t, []float64{1, 2, 3}, h.Values)
}
