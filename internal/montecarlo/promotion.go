package montecarlo

import (
	"sort"
	"strings"
)

// resolvePromotionRelegation applies the rule set keyed by Div2GroupCount,
// per spec.md §4.4 step 6. ratings must be the iteration's current
// simulated ratings (not the pre-simulation input), since the mini-league
// and 3-group playoffs are "resolved by highest simulated rating".
func resolvePromotionRelegation(in *Input, ratings map[string]float64, points map[string]int) (promoted, relegated map[string]bool) {
	promoted = map[string]bool{}
	relegated = map[string]bool{}
	if in.Div2GroupCount == 0 {
		return promoted, relegated
	}

	div1 := divisionRanking(in, points, 1)
	div2 := divisionGroupRankings(in, points, 2)

	switch {
	case in.Div2GroupCount == 1:
		promoteNonB(firstGroup(div2), 2, promoted)
		relegateBottom(div1, 2, relegated)

	case in.Div2GroupCount == 2 && !in.HasLiguilla:
		for _, g := range div2 {
			promoteNonB(g, 2, promoted)
		}
		relegateBottom(div1, 4, relegated)

	case in.Div2GroupCount == 2 && in.HasLiguilla:
		relegateBottom(div1, 3, relegated)
		candidates, div1Candidate := miniLeagueCandidates(div1, div2, promoted)
		resolveMiniLeague(ratings, candidates, div1Candidate, promoted, relegated)

	case in.Div2GroupCount == 3:
		relegateBottom(div1, 3, relegated)
		candidates, div1Candidate := miniLeagueCandidates(div1, div2, promoted)
		resolveMiniLeague(ratings, candidates, div1Candidate, promoted, relegated)
	}

	applyAProtection(promoted, relegated)
	return promoted, relegated
}

// miniLeagueCandidates gathers the 2nd-place team of each Div-2 group
// (after marking each group's winner as directly promoted) plus the
// 4th-from-bottom Div-1 team, per spec.md §4.4 step 6's mini-league and
// 3-group playoff rules (identical candidate construction in both cases).
func miniLeagueCandidates(div1 []string, div2 [][]string, promoted map[string]bool) (candidates []string, div1Candidate string) {
	for _, g := range div2 {
		if len(g) > 0 {
			promoted[g[0]] = true
		}
		if len(g) > 1 {
			candidates = append(candidates, g[1])
		}
	}
	div1Candidate = nthFromBottom(div1, 4)
	if div1Candidate != "" {
		candidates = append(candidates, div1Candidate)
	}
	return candidates, div1Candidate
}

// resolveMiniLeague awards the remaining slot to the highest-rated
// candidate; if a Div-2 team wins, the Div-1 candidate also relegates.
func resolveMiniLeague(ratings map[string]float64, candidates []string, div1Candidate string, promoted, relegated map[string]bool) {
	if len(candidates) == 0 {
		return
	}
	winner := candidates[0]
	for _, c := range candidates[1:] {
		if ratings[c] > ratings[winner] {
			winner = c
		}
	}
	if winner == div1Candidate {
		return
	}
	promoted[winner] = true
	if div1Candidate != "" {
		relegated[div1Candidate] = true
	}
}

func divisionRanking(in *Input, points map[string]int, division int) []string {
	var teams []string
	for _, t := range in.Teams {
		if in.TeamDivision[t] == division {
			teams = append(teams, t)
		}
	}
	return sortByPointsDescending(teams, points)
}

// divisionGroupRankings splits one division's teams by group, each ranked
// by points descending, ordered by group letter for determinism.
func divisionGroupRankings(in *Input, points map[string]int, division int) [][]string {
	byGroup := make(map[string][]string)
	for _, t := range in.Teams {
		if in.TeamDivision[t] == division {
			byGroup[in.TeamGroup[t]] = append(byGroup[in.TeamGroup[t]], t)
		}
	}
	keys := make([]string, 0, len(byGroup))
	for k := range byGroup {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([][]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, sortByPointsDescending(byGroup[k], points))
	}
	return out
}

func firstGroup(groups [][]string) []string {
	if len(groups) == 0 {
		return nil
	}
	return groups[0]
}

func promoteNonB(ranked []string, n int, promoted map[string]bool) {
	taken := 0
	for _, t := range ranked {
		if taken >= n {
			break
		}
		if isBTeam(t) {
			continue
		}
		promoted[t] = true
		taken++
	}
}

func relegateBottom(ranked []string, n int, relegated map[string]bool) {
	for i := len(ranked) - n; i < len(ranked); i++ {
		if i >= 0 {
			relegated[ranked[i]] = true
		}
	}
}

func nthFromBottom(ranked []string, n int) string {
	idx := len(ranked) - n
	if idx < 0 || idx >= len(ranked) {
		return ""
	}
	return ranked[idx]
}

// applyAProtection removes a promoted B team's A team from the relegation
// set, per spec.md §4.4 step 6's A-protection rule.
func applyAProtection(promoted, relegated map[string]bool) {
	for t := range promoted {
		if isBTeam(t) {
			delete(relegated, aTeamName(t))
		}
	}
}

func aTeamName(bTeam string) string {
	return strings.TrimSuffix(bTeam, " B")
}
