package rating

import "github.com/tacaua/forecast/internal/match"

// DetectWinterBreak scans matches in file order and returns the index of
// the first row whose calendar year exceeds the previous dated row's year,
// per spec.md §4.1. Rows whose Date failed to parse (zero time) are
// skipped when looking for "the previous record's year" but still count
// toward the boundary index itself. Exported for the Monte-Carlo Engine,
// which needs the same boundary to keep its per-iteration phase
// accounting consistent with the historical replay.
func DetectWinterBreak(matches []match.Match) (boundary int, ok bool) {
	return detectWinterBreak(matches)
}

func detectWinterBreak(matches []match.Match) (boundary int, ok bool) {
	prevYear := 0
	havePrev := false
	for i, m := range matches {
		if m.Date.IsZero() {
			continue
		}
		year := m.Date.Year()
		if havePrev && year > prevYear {
			return i, true
		}
		prevYear = year
		havePrev = true
	}
	return 0, false
}

// GamesBeforeWinter exports gamesBeforeWinter for the Monte-Carlo Engine.
func GamesBeforeWinter(matches []match.Match, boundary int) map[string]int {
	return gamesBeforeWinter(matches, boundary)
}

// gamesBeforeWinter counts, for every team appearing in matches, how many
// times it appears strictly before boundary.
func gamesBeforeWinter(matches []match.Match, boundary int) map[string]int {
	out := make(map[string]int)
	for i := 0; i < boundary && i < len(matches); i++ {
		m := matches[i]
		out[m.TeamA]++
		out[m.TeamB]++
	}
	return out
}

// TotalGroupGames exports totalGroupGames for the Monte-Carlo Engine.
func TotalGroupGames(matches []match.Match) map[string]int {
	return totalGroupGames(matches)
}

// totalGroupGames counts, for every team, its regular-phase appearances
// across the full match set passed to ProcessSeason (past and future),
// since the season-phase formula needs the team's known schedule size, not
// just the games played so far.
func totalGroupGames(matches []match.Match) map[string]int {
	out := make(map[string]int)
	for _, m := range matches {
		if match.IsPlayoffRound(m.Round) {
			continue
		}
		out[m.TeamA]++
		out[m.TeamB]++
	}
	return out
}
