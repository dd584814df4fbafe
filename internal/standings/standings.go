// Package standings implements the Standings Engine of spec.md §4.2:
// sport-specific point schemes, division/group partitioning, forfeit
// imputation, and the ten-step tiebreak cascade.
package standings

import (
	"strings"

	"github.com/tacaua/forecast/internal/match"
)

// Row is one team's accumulated record within a table, per spec.md §3
// (Points Table Row).
type Row struct {
	Team string

	Points int
	Games  int
	Wins   int
	Draws  int
	Losses int

	GoalsFor     int
	GoalsAgainst int

	SetsFor     int
	SetsAgainst int

	Forfeits int

	Position int // 1-based, filled in by Compute
}

func (r Row) GoalDifference() int { return r.GoalsFor - r.GoalsAgainst }
func (r Row) SetDifference() int  { return r.SetsFor - r.SetsAgainst }

// forfeitDefault is the sport-specific imputed score in favor of the
// present team, per spec.md §4.2 ("Forfeit imputation").
func forfeitDefault(sport match.Sport) (present, absent int) {
	switch sport {
	case match.Volleyball:
		return 2, 0
	case match.Handball:
		return 15, 0
	case match.Basketball:
		return 21, 0
	default: // Futsal, Football7
		return 3, 0
	}
}

// PointsFor exports pointsFor for the Monte-Carlo Engine, which needs the
// point scheme without building a full standings table.
func PointsFor(sport match.Sport, scoreA, scoreB int, setsA, setsB *int) (int, int) {
	return pointsFor(sport, scoreA, scoreB, setsA, setsB)
}

// pointsFor returns (pointsA, pointsB) for a completed match under the
// sport's point scheme, per spec.md §4.2.
func pointsFor(sport match.Sport, scoreA, scoreB int, setsA, setsB *int) (int, int) {
	switch sport {
	case match.Handball:
		return winDrawLoss(scoreA, scoreB, 3, 2, 1)
	case match.Basketball:
		// no draws, but points share the win/loss pattern
		return winDrawLoss(scoreA, scoreB, 2, 1, 0)
	case match.Volleyball:
		if setsA != nil && setsB != nil {
			return volleyballPoints(*setsA, *setsB)
		}
		return winDrawLoss(scoreA, scoreB, 3, 1, 0)
	default: // Futsal, Football7
		return winDrawLoss(scoreA, scoreB, 3, 1, 0)
	}
}

func winDrawLoss(scoreA, scoreB, win, draw, loss int) (int, int) {
	switch {
	case scoreA > scoreB:
		return win, loss
	case scoreA < scoreB:
		return loss, win
	default:
		return draw, draw
	}
}

// applyMatch folds one completed match's result into its two rows,
// including forfeit imputation. Shared by the main table accumulation and
// by the tiebreak cascade's head-to-head sub-tables.
func applyMatch(rowA, rowB *Row, m match.Match, sport match.Sport) {
	absent := m.AbsentTeam()
	scoreA, scoreB := *m.ScoreA, *m.ScoreB
	var setsA, setsB *int
	if m.SetsA != nil && m.SetsB != nil {
		setsA, setsB = m.SetsA, m.SetsB
	}

	if absent != "" {
		present, absentScore := forfeitDefault(sport)
		if absent == m.TeamA {
			scoreA, scoreB = absentScore, present
			rowA.Forfeits++
		} else if absent == m.TeamB {
			scoreA, scoreB = present, absentScore
			rowB.Forfeits++
		}
		setsA, setsB = nil, nil
	}

	ptsA, ptsB := pointsFor(sport, scoreA, scoreB, setsA, setsB)
	rowA.Points += ptsA
	rowB.Points += ptsB
	rowA.Games++
	rowB.Games++
	rowA.GoalsFor += scoreA
	rowA.GoalsAgainst += scoreB
	rowB.GoalsFor += scoreB
	rowB.GoalsAgainst += scoreA
	if setsA != nil && setsB != nil {
		rowA.SetsFor += *setsA
		rowA.SetsAgainst += *setsB
		rowB.SetsFor += *setsB
		rowB.SetsAgainst += *setsA
	}
	switch {
	case ptsA > ptsB:
		rowA.Wins++
		rowB.Losses++
	case ptsA < ptsB:
		rowB.Wins++
		rowA.Losses++
	default:
		rowA.Draws++
		rowB.Draws++
	}
}

func volleyballPoints(setsA, setsB int) (int, int) {
	switch {
	case setsA == 2 && setsB == 0:
		return 3, 0
	case setsA == 2 && setsB == 1:
		return 2, 1
	case setsA == 1 && setsB == 2:
		return 1, 2
	case setsA == 0 && setsB == 2:
		return 0, 3
	default:
		return winDrawLoss(setsA, setsB, 3, 1, 0)
	}
}

// tableKey returns the partitioning key for a match, per spec.md §4.2
// ("Division/group partitioning").
func tableKey(m match.Match) string {
	hasDivision := m.Division != 0
	hasGroup := m.Group != ""
	switch {
	case hasDivision && hasGroup:
		return keyOf(m.Division, m.Group)
	case hasGroup:
		return keyOf(0, m.Group)
	case hasDivision:
		return keyOf(m.Division, "")
	default:
		return ""
	}
}

// GroupTableKey builds the table key Compute uses for a division-less,
// group-only partition, so callers that already know a match's group (and
// that it carries no division) can select the right table by key instead
// of ranging over the result map.
func GroupTableKey(group string) string {
	return keyOf(0, group)
}

func keyOf(division int, group string) string {
	var b strings.Builder
	if division != 0 {
		b.WriteString("d")
		b.WriteString(itoa(division))
	}
	if group != "" {
		b.WriteString("g")
		b.WriteString(group)
	}
	return b.String()
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	if neg {
		digits = append([]byte{'-'}, digits...)
	}
	return string(digits)
}

// Table is one partition's sorted standings.
type Table struct {
	Key  string
	Rows []Row
}

// Compute builds the standings table(s) for a sport from a set of matches
// (only past matches matter; future ones are ignored) and a full team set
// (so teams with zero games still appear). Returns one Table per
// division/group partition found in matches, keyed per tableKey.
func Compute(matches []match.Match, sport Sport, teamSet []string) map[string]*Table {
	return compute(matches, match.Sport(sport), teamSet)
}

// Sport re-exports match.Sport so callers of this package need not import
// match directly for the common case.
type Sport = match.Sport

func compute(matches []match.Match, sport match.Sport, teamSet []string) map[string]*Table {
	tables := make(map[string]*Table)
	rowsByKey := make(map[string]map[string]*Row)

	ensure := func(key, team string) *Row {
		rows, ok := rowsByKey[key]
		if !ok {
			rows = make(map[string]*Row)
			rowsByKey[key] = rows
			tables[key] = &Table{Key: key}
		}
		row, ok := rows[team]
		if !ok {
			row = &Row{Team: team}
			rows[team] = row
		}
		return row
	}

	// Seed every known team into the default ("") table only when the
	// match set carries no Division/Group at all, so a plain single-table
	// sport still lists zero-game teams. Once any match partitions into a
	// real "d1"/"g..." key, seeding "" as well would add a spurious extra
	// table alongside the real partition(s).
	partitioned := false
	for _, m := range matches {
		if m.Sport == sport && !m.IsFuture() && tableKey(m) != "" {
			partitioned = true
			break
		}
	}
	if !partitioned {
		for _, t := range teamSet {
			ensure("", t)
		}
	}

	for _, m := range matches {
		if m.Sport != sport || m.IsFuture() {
			continue
		}
		key := tableKey(m)
		rowA := ensure(key, m.TeamA)
		rowB := ensure(key, m.TeamB)
		applyMatch(rowA, rowB, m, sport)
	}

	result := make(map[string]*Table, len(tables))
	for key, rows := range rowsByKey {
		flat := make([]Row, 0, len(rows))
		for _, r := range rows {
			flat = append(flat, *r)
		}
		ordered := applyTiebreaks(flat, matches, sport)
		for i := range ordered {
			ordered[i].Position = i + 1
		}
		result[key] = &Table{Key: key, Rows: ordered}
	}
	return result
}

// Position returns the 1-based standings position of team within its
// table, or 0 if not found.
func (t *Table) Position(team string) int {
	for _, r := range t.Rows {
		if r.Team == team {
			return r.Position
		}
	}
	return 0
}
