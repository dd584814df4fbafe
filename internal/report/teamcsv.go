// Package report writes the CSV outputs of spec.md §6: per-team and
// per-fixture forecasts, rating history, detailed match log, and computed
// standings.
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"

	"github.com/tacaua/forecast/internal/montecarlo"
)

var teamCSVHeader = []string{
	"team", "p_playoffs", "p_meias_finais", "p_finais", "p_champion", "p_promocao",
	"p_descida", "expected_points", "expected_points_std", "expected_place",
	"expected_place_std", "avg_final_elo", "avg_final_elo_std",
}

// WriteTeamForecast writes the per-team forecast CSV, per spec.md §6.
// Probabilities render in percent with four decimals; expected values with
// two. Rows are ordered by expected points descending so the file reads
// like a projected table.
func WriteTeamForecast(path string, result *montecarlo.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(teamCSVHeader); err != nil {
		return err
	}

	teams := make([]*montecarlo.PerTeamStats, 0, len(result.PerTeam))
	for _, t := range result.PerTeam {
		teams = append(teams, t)
	}
	sort.SliceStable(teams, func(i, j int) bool {
		return teams[i].ExpectedPoints > teams[j].ExpectedPoints
	})

	for _, t := range teams {
		row := []string{
			t.Team,
			pct(t.PPlayoffs),
			pct(t.PSemifinals),
			pct(t.PFinals),
			pct(t.PChampion),
			pct(t.PPromotion),
			pct(t.PRelegation),
			dec2(t.ExpectedPoints),
			dec2(t.ExpectedPointsStd),
			dec2(t.ExpectedPlace),
			dec2(t.ExpectedPlaceStd),
			dec2(t.AvgFinalElo),
			dec2(t.AvgFinalEloStd),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

// ForecastFilename builds "forecast_{sport}_{year}.csv", with the
// "_hardset" suffix when hasHardsets is true, per spec.md §6.
func ForecastFilename(sport string, year int, hasHardsets bool) string {
	suffix := ""
	if hasHardsets {
		suffix = "_hardset"
	}
	return fmt.Sprintf("forecast_%s_%d%s.csv", sport, year, suffix)
}

func pct(p float64) string  { return fmt.Sprintf("%.4f", p*100) }
func dec2(v float64) string { return fmt.Sprintf("%.2f", v) }
