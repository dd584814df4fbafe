// Package montecarlo implements the Monte-Carlo Engine of spec.md §4.4:
// a parallel worker-pool replay of the regular phase, playoff bracket, and
// promotion/relegation resolution, with streaming O(1)-memory aggregation.
package montecarlo

import (
	"github.com/tacaua/forecast/internal/hardset"
	"github.com/tacaua/forecast/internal/match"
	"github.com/tacaua/forecast/internal/sampler"
)

// GroupKey identifies a (division, group) bracket of the standings for
// playoff-slot and promotion/relegation purposes.
type GroupKey struct {
	Division int
	Group    string
}

// Input is everything one forecast() call needs, per spec.md §4.4's
// public contract. Every field is read-only once simulation starts —
// workers only ever mutate their own per-iteration copies.
type Input struct {
	Sport Sport

	Teams   []string
	Ratings map[string]float64

	TeamDivision map[string]int
	TeamGroup    map[string]string

	// Fixtures is the ordered regular-phase future fixture list; brackets
	// and promotion/relegation playoffs are generated per iteration and
	// are not part of this list.
	Fixtures []match.Match

	RealPoints map[string]int

	HasLiguilla bool
	// Div2GroupCount selects the promotion/relegation rule set, per
	// spec.md §4.4 step 6. Zero means "no division column / not
	// applicable".
	Div2GroupCount int

	// PlayoffSlots, keyed by GroupKey, gives the number of teams from
	// that group that qualify. Nil means "use TotalPlayoffSlots globally
	// instead".
	PlayoffSlots       map[GroupKey]int
	TotalPlayoffSlots  int

	Hardset   *hardset.Manager
	ShortCode func(string) string // builds fixture ids for hardset lookups

	// GoalParamsBySport is the fallback used when no division-specific
	// override exists in GoalParamsByDivision.
	GoalParamsBySport    map[Sport]sampler.GoalParams
	GoalParamsByDivision map[int]sampler.GoalParams
	BasketballParams     sampler.BasketballParams

	NSimulations int
	BaseSeed     int64

	// Rating-engine season-phase bookkeeping, precomputed once over the
	// full schedule (past + these future fixtures) so each iteration's
	// single-match updates stay consistent with the historical replay,
	// per spec.md §9 ("Cyclic state in the Rating Engine").
	GameIndex         map[string]int // games already played per team
	TotalGroupGames   map[string]int
	GamesBeforeWinter map[string]int
	HaveWinterBoundary bool
}

// Sport re-exports match.Sport.
type Sport = match.Sport

// PerTeamStats is one team's streaming aggregate across all iterations,
// per spec.md §4.4 step 7 and §6's per-team forecast CSV columns.
type PerTeamStats struct {
	Team string

	PPlayoffs   float64
	PSemifinals float64
	PFinals     float64
	PChampion   float64
	PPromotion  float64
	PRelegation float64

	ExpectedPoints    float64
	ExpectedPointsStd float64
	ExpectedPlace     float64
	ExpectedPlaceStd  float64
	AvgFinalElo       float64
	AvgFinalEloStd    float64

	// PositionProbabilities maps a 1-based final standings position to the
	// fraction of iterations it occurred in; consumed by internal/markets
	// for payoff expected-value calculations.
	PositionProbabilities map[int]float64
}

// PerFixtureStats is one future fixture's outcome distribution.
type PerFixtureStats struct {
	Fixture match.Match

	ProbA, ProbDraw, ProbB float64

	ExpectedEloA, ExpectedEloAStd float64
	ExpectedEloB, ExpectedEloBStd float64

	// ScoreDistribution maps "{a}-{b}" to its observed fraction of
	// iterations, per spec.md §6's distribuicao_placares column.
	ScoreDistribution map[string]float64
}

// Result bundles everything forecast() returns, per spec.md §4.4's public
// contract (the spec names four return values; ScoreDistribution is
// folded into PerFixtureStats here since they share the same key).
type Result struct {
	PerTeam    map[string]*PerTeamStats
	PerFixture []*PerFixtureStats
}
