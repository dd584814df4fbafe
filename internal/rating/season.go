package rating

import (
	"time"

	"github.com/tacaua/forecast/internal/match"
	"github.com/tacaua/forecast/internal/team"
)

// LogEntry is one row of the detailed log of spec.md §6 (per-match and
// per-cross-group-adjustment rating movements).
type LogEntry struct {
	Kind string // "match" or "cross_group"

	Sport    match.Sport
	Round    string
	Date     time.Time
	Division int
	Group    string

	TeamA, TeamB string
	ScoreA       int
	ScoreB       int

	RatingBeforeA, RatingBeforeB float64
	RatingAfterA, RatingAfterB   float64
	DeltaA, DeltaB               int

	HasAbsence bool
}

// Result is everything ProcessSeason produces: final ratings (via the
// Registry), the aligned rating history, the detailed log, and any
// non-fatal warnings the driver should surface.
type Result struct {
	Registry   *team.Registry
	Log        []LogEntry
	CrossGroup []CrossGroupAdjustment
	Warnings   []string
}

// ProcessSeason replays every past match of matches (in file order) through
// UpdateMatch, then applies the cross-group adjustment pass if the match
// set is grouped without divisions, per spec.md §4.1.
func ProcessSeason(matches []match.Match, initialRatings map[string]float64) *Result {
	res := &Result{Registry: team.NewRegistry()}

	totals := totalGroupGames(matches)
	boundary, haveBoundary := detectWinterBreak(matches)
	var beforeWinter map[string]int
	if haveBoundary {
		beforeWinter = gamesBeforeWinter(matches, boundary)
	} else {
		res.Warnings = append(res.Warnings,
			"winter break boundary not detected; season-phase falls back to early/mid-season classification only")
	}

	gameIndex := make(map[string]int)
	divisionOf := make(map[string]int)
	for _, m := range matches {
		if _, ok := divisionOf[m.TeamA]; !ok {
			divisionOf[m.TeamA] = m.Division
		}
		if _, ok := divisionOf[m.TeamB]; !ok {
			divisionOf[m.TeamB] = m.Division
		}
	}

	boundaryPtr := func(name string) *int {
		if !haveBoundary {
			return nil
		}
		b := beforeWinter[name]
		if gameIndex[name] > b {
			v := b
			return &v
		}
		return nil
	}

	past, _ := match.Partition(matches)
	for _, m := range past {
		teamA := res.Registry.GetOrCreate(m.TeamA, divisionOf[m.TeamA], initialRatings)
		teamB := res.Registry.GetOrCreate(m.TeamB, divisionOf[m.TeamB], initialRatings)
		if haveBoundary {
			teamA.GamesPlayedBeforeWinter = beforeWinter[m.TeamA]
			teamB.GamesPlayedBeforeWinter = beforeWinter[m.TeamB]
		}

		gameIndex[m.TeamA]++
		gameIndex[m.TeamB]++

		ratingBeforeA, ratingBeforeB := teamA.Rating, teamB.Rating

		deltaA, deltaB := UpdateMatch(
			teamA.Rating, teamB.Rating,
			*m.ScoreA, *m.ScoreB,
			gameIndex[m.TeamA], gameIndex[m.TeamB],
			totals[m.TeamA], totals[m.TeamB],
			boundaryPtr(m.TeamA), boundaryPtr(m.TeamB),
			m.Round, m.HasAbsence(),
		)

		teamA.Rating += float64(deltaA)
		teamB.Rating += float64(deltaB)
		teamA.GamesPlayed++
		teamB.GamesPlayed++

		res.Registry.RecordStep(m.TeamA, m.TeamB)
		res.Log = append(res.Log, LogEntry{
			Kind:          "match",
			Sport:         m.Sport,
			Round:         m.Round,
			Date:          m.Date,
			Division:      m.Division,
			Group:         m.Group,
			TeamA:         m.TeamA,
			TeamB:         m.TeamB,
			ScoreA:        *m.ScoreA,
			ScoreB:        *m.ScoreB,
			RatingBeforeA: ratingBeforeA,
			RatingBeforeB: ratingBeforeB,
			RatingAfterA:  teamA.Rating,
			RatingAfterB:  teamB.Rating,
			DeltaA:        deltaA,
			DeltaB:        deltaB,
			HasAbsence:    m.HasAbsence(),
		})
	}

	if groupedWithoutDivision(matches) {
		adjustments := ComputeCrossGroupAdjustments(past, res.Registry)
		for _, adj := range adjustments {
			teamA, _ := res.Registry.Team(adj.TeamA)
			teamB, _ := res.Registry.Team(adj.TeamB)
			ratingBeforeA, ratingBeforeB := teamA.Rating, teamB.Rating
			teamA.Rating += float64(adj.DeltaA)
			teamB.Rating += float64(adj.DeltaB)
			res.Registry.RecordStep(adj.TeamA, adj.TeamB)
			res.Log = append(res.Log, LogEntry{
				Kind:          "cross_group",
				TeamA:         adj.TeamA,
				TeamB:         adj.TeamB,
				RatingBeforeA: ratingBeforeA,
				RatingBeforeB: ratingBeforeB,
				RatingAfterA:  teamA.Rating,
				RatingAfterB:  teamB.Rating,
				DeltaA:        adj.DeltaA,
				DeltaB:        adj.DeltaB,
			})
		}
		res.CrossGroup = adjustments
	}

	return res
}

// groupedWithoutDivision reports whether the cross-group adjustment
// applies: matches carry a Group but no Division, per spec.md §4.1.
func groupedWithoutDivision(matches []match.Match) bool {
	sawGroup := false
	for _, m := range matches {
		if m.Division != 0 {
			return false
		}
		if m.Group != "" {
			sawGroup = true
		}
	}
	return sawGroup
}
