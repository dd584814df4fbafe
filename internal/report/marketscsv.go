package report

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/tacaua/forecast/internal/markets"
	"github.com/tacaua/forecast/internal/montecarlo"
)

var marketsCSVHeader = []string{"market", "team", "expected_value"}

// WriteMarkets writes one row per (market, team) expected value, per the
// optional payoff-market config of spec.md §6's enrichment reports.
func WriteMarkets(path string, result *montecarlo.Result, definitions []*markets.Market) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(marketsCSVHeader); err != nil {
		return err
	}

	for _, m := range definitions {
		values := markets.ExpectedValues(result, m)
		for _, team := range m.Teams {
			row := []string{m.Name, team, fmt.Sprintf("%.4f", values[team])}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}
	return w.Error()
}

// MarketsFilename builds "markets_{sport}_{year}.csv".
func MarketsFilename(sport string, year int) string {
	return fmt.Sprintf("markets_%s_%d.csv", sport, year)
}
