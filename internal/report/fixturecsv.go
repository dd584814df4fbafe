package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/tacaua/forecast/internal/montecarlo"
)

var fixtureCSVHeader = []string{
	"jornada", "dia", "hora", "team_a", "team_b", "expected_elo_a", "expected_elo_a_std",
	"expected_elo_b", "expected_elo_b_std", "prob_vitoria_a", "prob_empate",
	"prob_vitoria_b", "distribuicao_placares", "divisao", "grupo",
}

// WriteFixtureForecast writes the per-fixture forecast CSV, per spec.md §6.
func WriteFixtureForecast(path string, result *montecarlo.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(fixtureCSVHeader); err != nil {
		return err
	}

	for _, fx := range result.PerFixture {
		m := fx.Fixture
		dia, hora := "", ""
		if !m.Date.IsZero() {
			dia = m.Date.Format("2006-01-02")
			hora = m.Date.Format("15:04")
		} else {
			dia = m.DateRaw
		}

		row := []string{
			m.Round,
			dia,
			hora,
			m.TeamA,
			m.TeamB,
			dec2(fx.ExpectedEloA),
			dec2(fx.ExpectedEloAStd),
			dec2(fx.ExpectedEloB),
			dec2(fx.ExpectedEloBStd),
			pct(fx.ProbA),
			pct(fx.ProbDraw),
			pct(fx.ProbB),
			scoreDistribution(fx.ScoreDistribution),
			divisaoStr(m.Division),
			m.Group,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

// scoreDistribution renders ScoreDistribution as "{a}-{b}:{pct}%" entries
// joined by "|", ordered by descending frequency, per spec.md §6.
func scoreDistribution(dist map[string]float64) string {
	type entry struct {
		score string
		prob  float64
	}
	entries := make([]entry, 0, len(dist))
	for score, prob := range dist {
		entries = append(entries, entry{score, prob})
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].prob > entries[j].prob })

	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = fmt.Sprintf("%s:%s%%", e.score, pct(e.prob))
	}
	return strings.Join(parts, "|")
}

func divisaoStr(division int) string {
	if division == 0 {
		return ""
	}
	return fmt.Sprintf("%d", division)
}

// FixtureForecastFilename builds "previsoes_{sport}_{year}.csv".
func FixtureForecastFilename(sport string, year int) string {
	return fmt.Sprintf("previsoes_%s_%d.csv", sport, year)
}
