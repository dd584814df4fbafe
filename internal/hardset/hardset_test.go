package hardset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddAndGetRoundTrip(t *testing.T) {
	m := New(nil)
	m.Add("futsal_J5_A_B", 3, 1)

	scoreA, scoreB, ok := m.Get("futsal_J5_A_B")
	assert.True(t, ok)
	assert.Equal(t, 3, scoreA)
	assert.Equal(t, 1, scoreB)
}

func TestNormalizeResolvesAliasesBeforeLookup(t *testing.T) {
	m := New(map[string]string{"Alpha University": "ALU", "Beta College": "BET"})
	m.Add("futsal_J5_ALU_BET", 2, 0)

	assert.True(t, m.Has("futsal_J5_Alpha University_Beta College"))
	scoreA, scoreB, ok := m.Get("futsal_J5_Alpha University_Beta College")
	assert.True(t, ok)
	assert.Equal(t, 2, scoreA)
	assert.Equal(t, 0, scoreB)
}

func TestGetMissingFixtureReturnsFalse(t *testing.T) {
	m := New(nil)
	_, _, ok := m.Get("anything")
	assert.False(t, ok)
}

func TestAffectedSportsDerivesFromFixtureIDPrefix(t *testing.T) {
	m := New(nil)
	m.Add("handball_J1_A_B", 10, 9)
	affected := m.AffectedSports()
	assert.True(t, affected["handball"])
	assert.False(t, affected["futsal"])
}

func TestClearRemovesEveryPin(t *testing.T) {
	m := New(nil)
	m.Add("futsal_J5_A_B", 1, 0)
	m.Clear()
	assert.False(t, m.Has("futsal_J5_A_B"))
}
