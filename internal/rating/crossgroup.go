package rating

import (
	"math"

	"github.com/tacaua/forecast/internal/match"
	"github.com/tacaua/forecast/internal/standings"
	"github.com/tacaua/forecast/internal/team"
)

// KInter is the cross-group adjustment's (unmodulated) K-factor, per
// spec.md §4.1.
const KInter = 100.0

// CrossGroupAdjustment is one group-pair correction applied at a shared
// standings position, per spec.md §4.1 ("cross-group corrective
// adjustments").
type CrossGroupAdjustment struct {
	Position       int
	GroupA, GroupB string
	TeamA, TeamB   string
	DeltaA, DeltaB int
}

// ComputeCrossGroupAdjustments applies only when the match set is grouped
// without a division column. For each group it derives a single win-rate
// from that group's inter-group playoff matches; then, for every standings
// position that more than one group has a team at, it treats the two
// groups' win-rates as the "actual" result of a virtual match between
// their position-matched teams and applies an Elo-style correction.
func ComputeCrossGroupAdjustments(pastMatches []match.Match, registry *team.Registry) []CrossGroupAdjustment {
	if len(pastMatches) == 0 {
		return nil
	}
	sport := pastMatches[0].Sport

	teamGroup := make(map[string]string)
	for _, m := range pastMatches {
		if m.Group == "" {
			continue
		}
		teamGroup[m.TeamA] = m.Group
		teamGroup[m.TeamB] = m.Group
	}

	rates := groupWinRates(pastMatches, teamGroup)
	if len(rates) < 2 {
		return nil
	}

	tables := groupTables(pastMatches, sport, teamGroup)

	maxPosition := 0
	for _, t := range tables {
		if n := len(t.Rows); n > maxPosition {
			maxPosition = n
		}
	}

	var out []CrossGroupAdjustment
	for pos := 1; pos <= maxPosition; pos++ {
		type entry struct {
			group, team string
		}
		var atPos []entry
		for g, t := range tables {
			for _, r := range t.Rows {
				if r.Position == pos {
					atPos = append(atPos, entry{g, r.Team})
					break
				}
			}
		}
		for i := 0; i < len(atPos); i++ {
			for j := i + 1; j < len(atPos); j++ {
				gA, gB := atPos[i], atPos[j]
				teamA, okA := registry.Team(gA.team)
				teamB, okB := registry.Team(gB.team)
				if !okA || !okB {
					continue
				}
				rateA, okRA := rates[gA.group]
				rateB, okRB := rates[gB.group]
				if !okRA || !okRB {
					continue
				}
				eA := expectedScore(teamA.Rating, teamB.Rating)
				eB := 1 - eA
				deltaA := int(math.Round(KInter * (rateA - eA)))
				deltaB := int(math.Round(KInter * (rateB - eB)))
				out = append(out, CrossGroupAdjustment{
					Position: pos,
					GroupA:   gA.group,
					GroupB:   gB.group,
					TeamA:    gA.team,
					TeamB:    gB.team,
					DeltaA:   deltaA,
					DeltaB:   deltaB,
				})
			}
		}
	}
	return out
}

func groupWinRates(matches []match.Match, teamGroup map[string]string) map[string]float64 {
	type tally struct{ points, games float64 }
	tallies := make(map[string]*tally)
	ensure := func(g string) *tally {
		t, ok := tallies[g]
		if !ok {
			t = &tally{}
			tallies[g] = t
		}
		return t
	}
	for _, m := range matches {
		if !match.IsPlayoffRound(m.Round) || m.IsFuture() {
			continue
		}
		groupA, groupB := teamGroup[m.TeamA], teamGroup[m.TeamB]
		if groupA == "" || groupB == "" || groupA == groupB {
			continue
		}
		sA, sB := actualScore(*m.ScoreA, *m.ScoreB)
		tA, tB := ensure(groupA), ensure(groupB)
		tA.points += sA
		tA.games++
		tB.points += sB
		tB.games++
	}
	rates := make(map[string]float64, len(tallies))
	for g, t := range tallies {
		if t.games > 0 {
			rates[g] = t.points / t.games
		}
	}
	return rates
}

func groupTables(matches []match.Match, sport match.Sport, teamGroup map[string]string) map[string]*standings.Table {
	byGroup := make(map[string][]string)
	for team, g := range teamGroup {
		byGroup[g] = append(byGroup[g], team)
	}
	regular := make([]match.Match, 0, len(matches))
	for _, m := range matches {
		if !match.IsPlayoffRound(m.Round) {
			regular = append(regular, m)
		}
	}

	tables := make(map[string]*standings.Table, len(byGroup))
	for g, teams := range byGroup {
		var sub []match.Match
		for _, m := range regular {
			if m.Group == g {
				sub = append(sub, m)
			}
		}
		computed := standings.Compute(sub, sport, teams)
		tables[g] = computed[standings.GroupTableKey(g)]
	}
	return tables
}
