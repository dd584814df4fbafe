package standings

import (
	"sort"

	"github.com/tacaua/forecast/internal/match"
)

// applyTiebreaks orders rows per spec.md §4.2's ten-step cascade. Teams
// never tied by points are placed unconditionally and never re-ordered by
// a later rule; the sort is stable throughout.
func applyTiebreaks(rows []Row, matches []match.Match, sport match.Sport) []Row {
	groups := groupByPoints(rows)
	out := make([]Row, 0, len(rows))
	for _, g := range groups {
		out = append(out, resolveGroup(g, matches, sport)...)
	}
	return out
}

// groupByPoints performs a stable sort by points descending, then splits
// into maximal runs of equal points (criterion 1).
func groupByPoints(rows []Row) [][]Row {
	sorted := make([]Row, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Points > sorted[j].Points })

	var groups [][]Row
	i := 0
	for i < len(sorted) {
		j := i + 1
		for j < len(sorted) && sorted[j].Points == sorted[i].Points {
			j++
		}
		groups = append(groups, sorted[i:j])
		i = j
	}
	return groups
}

// resolveGroup applies criteria 2-10 in order to a set of teams tied on
// points, recursing into sub-groups only where a criterion leaves ties.
func resolveGroup(rows []Row, matches []match.Match, sport match.Sport) []Row {
	if len(rows) <= 1 {
		return rows
	}

	criteria := []func([]Row, []match.Match, match.Sport) map[string]float64{
		keyForfeitsAscending,        // 2
		keyHeadToHeadPoints,         // 3
		keyHeadToHeadForfeits,       // 4
		keyHeadToHeadSetDifference,  // 5
		keyHeadToHeadGoalDifference, // 6
		keyHeadToHeadGoalsFor,       // 7
		keyOverallSetDifference,     // 8
		keyOverallGoalDifference,    // 9
		keyOverallGoalsFor,          // 10
	}

	current := [][]Row{rows}
	for _, crit := range criteria {
		var next [][]Row
		allSettled := true
		for _, g := range current {
			if len(g) <= 1 {
				next = append(next, g)
				continue
			}
			keys := crit(g, matches, sport)
			sub := splitByKeyDescending(g, keys)
			for _, s := range sub {
				if len(s) > 1 {
					allSettled = false
				}
			}
			next = append(next, sub...)
		}
		current = next
		if allSettled {
			break
		}
	}

	out := make([]Row, 0, len(rows))
	for _, g := range current {
		out = append(out, g...)
	}
	return out
}

// splitByKeyDescending stable-sorts g by keys[team] descending, then splits
// into maximal equal-key runs.
func splitByKeyDescending(g []Row, keys map[string]float64) [][]Row {
	sorted := make([]Row, len(g))
	copy(sorted, g)
	sort.SliceStable(sorted, func(i, j int) bool { return keys[sorted[i].Team] > keys[sorted[j].Team] })

	var out [][]Row
	i := 0
	for i < len(sorted) {
		j := i + 1
		for j < len(sorted) && keys[sorted[j].Team] == keys[sorted[i].Team] {
			j++
		}
		out = append(out, sorted[i:j])
		i = j
	}
	return out
}

func keyForfeitsAscending(g []Row, _ []match.Match, _ match.Sport) map[string]float64 {
	out := make(map[string]float64, len(g))
	for _, r := range g {
		out[r.Team] = -float64(r.Forfeits)
	}
	return out
}

func keyOverallSetDifference(g []Row, _ []match.Match, sport match.Sport) map[string]float64 {
	out := make(map[string]float64, len(g))
	for _, r := range g {
		if sport == match.Volleyball {
			out[r.Team] = float64(r.SetDifference())
		} else {
			out[r.Team] = 0
		}
	}
	return out
}

func keyOverallGoalDifference(g []Row, _ []match.Match, _ match.Sport) map[string]float64 {
	out := make(map[string]float64, len(g))
	for _, r := range g {
		out[r.Team] = float64(r.GoalDifference())
	}
	return out
}

func keyOverallGoalsFor(g []Row, _ []match.Match, _ match.Sport) map[string]float64 {
	out := make(map[string]float64, len(g))
	for _, r := range g {
		out[r.Team] = float64(r.GoalsFor)
	}
	return out
}

// headToHead recomputes a sub-table restricted to matches played between
// members of g only, per spec.md §4.2 criteria 3-7.
func headToHead(g []Row, matches []match.Match, sport match.Sport) map[string]*Row {
	members := make(map[string]bool, len(g))
	acc := make(map[string]*Row, len(g))
	for _, r := range g {
		members[r.Team] = true
		acc[r.Team] = &Row{Team: r.Team}
	}
	for _, m := range matches {
		if m.Sport != sport || m.IsFuture() {
			continue
		}
		if !members[m.TeamA] || !members[m.TeamB] {
			continue
		}
		applyMatch(acc[m.TeamA], acc[m.TeamB], m, sport)
	}
	return acc
}

func keyHeadToHeadPoints(g []Row, matches []match.Match, sport match.Sport) map[string]float64 {
	h2h := headToHead(g, matches, sport)
	out := make(map[string]float64, len(g))
	for team, r := range h2h {
		out[team] = float64(r.Points)
	}
	return out
}

func keyHeadToHeadForfeits(g []Row, matches []match.Match, sport match.Sport) map[string]float64 {
	h2h := headToHead(g, matches, sport)
	out := make(map[string]float64, len(g))
	for team, r := range h2h {
		out[team] = -float64(r.Forfeits)
	}
	return out
}

func keyHeadToHeadSetDifference(g []Row, matches []match.Match, sport match.Sport) map[string]float64 {
	h2h := headToHead(g, matches, sport)
	out := make(map[string]float64, len(g))
	for team, r := range h2h {
		if sport == match.Volleyball {
			out[team] = float64(r.SetDifference())
		} else {
			out[team] = 0
		}
	}
	return out
}

func keyHeadToHeadGoalDifference(g []Row, matches []match.Match, sport match.Sport) map[string]float64 {
	h2h := headToHead(g, matches, sport)
	out := make(map[string]float64, len(g))
	for team, r := range h2h {
		out[team] = float64(r.GoalDifference())
	}
	return out
}

func keyHeadToHeadGoalsFor(g []Row, matches []match.Match, sport match.Sport) map[string]float64 {
	h2h := headToHead(g, matches, sport)
	out := make(map[string]float64, len(g))
	for team, r := range h2h {
		out[team] = float64(r.GoalsFor)
	}
	return out
}
