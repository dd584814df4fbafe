package montecarlo

import "sort"

// groupOf returns the (division, group) key for a team, per the static
// Input maps.
func groupOf(in *Input, team string) GroupKey {
	return GroupKey{Division: in.TeamDivision[team], Group: in.TeamGroup[team]}
}

// teamsByGroup partitions in.Teams by GroupKey; computed once per Run
// since the grouping itself never changes across iterations.
func teamsByGroup(in *Input) map[GroupKey][]string {
	out := make(map[GroupKey][]string)
	for _, t := range in.Teams {
		k := groupOf(in, t)
		out[k] = append(out[k], t)
	}
	return out
}

func isBTeam(name string) bool {
	return len(name) > 2 && name[len(name)-2:] == " B"
}

// sortByPointsDescending is a stable sort on a snapshot of simulated
// points, per spec.md §4.4 step 4 ("form a ranking by points descending").
func sortByPointsDescending(teams []string, points map[string]int) []string {
	out := make([]string, len(teams))
	copy(out, teams)
	sort.SliceStable(out, func(i, j int) bool { return points[out[i]] > points[out[j]] })
	return out
}

// qualifyPlayoffs marks the qualified teams for one iteration, per
// spec.md §4.4 step 4.
func qualifyPlayoffs(in *Input, groups map[GroupKey][]string, points map[string]int) map[string]bool {
	qualified := make(map[string]bool)

	if in.PlayoffSlots != nil {
		for key, slots := range in.PlayoffSlots {
			ordered := sortByPointsDescending(groups[key], points)
			taken := 0
			for _, team := range ordered {
				if taken >= slots {
					break
				}
				if isBTeam(team) {
					continue
				}
				qualified[team] = true
				taken++
			}
		}
		return qualified
	}

	ordered := sortByPointsDescending(in.Teams, points)
	taken := 0
	for _, team := range ordered {
		if taken >= in.TotalPlayoffSlots {
			break
		}
		if isBTeam(team) {
			continue
		}
		qualified[team] = true
		taken++
	}
	return qualified
}
