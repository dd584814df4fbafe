package ingest

import (
	"strings"

	"github.com/tacaua/forecast/internal/match"
	"github.com/tacaua/forecast/internal/montecarlo"
	"github.com/tacaua/forecast/internal/standings"
)

// defaultTotalPlayoffSlots is used when no playoff-round matches are found
// in history to infer a bracket size from, mirroring the original
// predictor's "total_slots if total_slots > 0 else 8" fallback.
const defaultTotalPlayoffSlots = 8

// LeagueShape bundles everything the Monte-Carlo Engine needs beyond
// ratings and fixtures, all derived from the match table itself rather than
// a separate configuration file — division/group, promotion rule
// selection, playoff bracket size, and points already on the board.
type LeagueShape struct {
	TeamDivision map[string]int
	TeamGroup    map[string]string

	Div2GroupCount int
	HasLiguilla    bool

	PlayoffSlots      map[montecarlo.GroupKey]int
	TotalPlayoffSlots int

	RealPoints map[string]int
}

// DeriveLeagueShape inspects the full match history (past and future) for
// one sport and infers the league's structural parameters.
func DeriveLeagueShape(matches []match.Match, sport match.Sport) LeagueShape {
	shape := LeagueShape{
		TeamDivision: make(map[string]int),
		TeamGroup:    make(map[string]string),
		PlayoffSlots: make(map[montecarlo.GroupKey]int),
	}

	div2Groups := make(map[string]bool)
	playoffTeamsByGroup := make(map[montecarlo.GroupKey]map[string]bool)
	playoffTeamsTotal := make(map[string]bool)

	for _, m := range matches {
		if m.Sport != sport {
			continue
		}
		for _, t := range []string{m.TeamA, m.TeamB} {
			if _, ok := shape.TeamDivision[t]; !ok {
				shape.TeamDivision[t] = m.Division
				shape.TeamGroup[t] = m.Group
			}
		}
		if m.Division == 2 && m.Group != "" {
			div2Groups[m.Group] = true
		}

		upperRound := strings.ToUpper(m.Round)
		if strings.HasPrefix(upperRound, "LM") || strings.HasPrefix(upperRound, "PM") {
			shape.HasLiguilla = true
		}

		if match.IsPlayoffRound(m.Round) {
			key := montecarlo.GroupKey{Division: m.Division, Group: m.Group}
			if playoffTeamsByGroup[key] == nil {
				playoffTeamsByGroup[key] = make(map[string]bool)
			}
			playoffTeamsByGroup[key][m.TeamA] = true
			playoffTeamsByGroup[key][m.TeamB] = true
			playoffTeamsTotal[m.TeamA] = true
			playoffTeamsTotal[m.TeamB] = true
		}
	}

	shape.Div2GroupCount = len(div2Groups)

	for key, teams := range playoffTeamsByGroup {
		shape.PlayoffSlots[key] = len(teams)
	}
	shape.TotalPlayoffSlots = len(playoffTeamsTotal)
	if shape.TotalPlayoffSlots == 0 {
		shape.TotalPlayoffSlots = defaultTotalPlayoffSlots
		shape.PlayoffSlots = nil // fall back to the global-ranking path
	}

	past, _ := match.Partition(matches)
	teamSet := make([]string, 0, len(shape.TeamDivision))
	for t := range shape.TeamDivision {
		teamSet = append(teamSet, t)
	}
	tables := standings.Compute(past, sport, teamSet)
	shape.RealPoints = make(map[string]int, len(teamSet))
	for key, table := range tables {
		// The unkeyed "" table only ever coexists with real "d.../g..."
		// partitions in a malformed match set; skip it then so a team's
		// points come from its real partition regardless of map order.
		if key == "" && len(tables) > 1 {
			continue
		}
		for _, row := range table.Rows {
			shape.RealPoints[row.Team] = row.Points
		}
	}

	return shape
}
