package report

import (
	"encoding/csv"
	"os"

	"github.com/tacaua/forecast/internal/standings"
)

var standingsCSVHeader = []string{
	"position", "team", "points", "games", "wins", "draws", "losses", "goals_for",
	"goals_against", "goal_difference", "sets_for", "sets_against", "set_difference",
	"forfeits",
}

// WriteStandings writes the computed standings CSV for a single table
// partition, per spec.md §6.
func WriteStandings(path string, table *standings.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(standingsCSVHeader); err != nil {
		return err
	}

	for _, r := range table.Rows {
		row := []string{
			itoa(r.Position),
			r.Team,
			itoa(r.Points),
			itoa(r.Games),
			itoa(r.Wins),
			itoa(r.Draws),
			itoa(r.Losses),
			itoa(r.GoalsFor),
			itoa(r.GoalsAgainst),
			itoa(r.GoalDifference()),
			itoa(r.SetsFor),
			itoa(r.SetsAgainst),
			itoa(r.SetDifference()),
			itoa(r.Forfeits),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

func itoa(n int) string {
	neg := n < 0
	if neg {
		n = -n
	}
	if n == 0 {
		if neg {
			return "-0"
		}
		return "0"
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
