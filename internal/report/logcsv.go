package report

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/tacaua/forecast/internal/rating"
)

var logCSVHeader = []string{
	"kind", "round", "date", "division", "group", "team_a", "team_b", "score_a",
	"score_b", "rating_before_a", "rating_before_b", "rating_after_a", "rating_after_b",
	"delta_a", "delta_b", "has_absence",
}

// WriteMatchLog writes the detailed per-match rating-update log CSV, per
// spec.md §6, directly off a rating.Result's Log.
func WriteMatchLog(path string, log []rating.LogEntry) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(logCSVHeader); err != nil {
		return err
	}

	for _, e := range log {
		date := ""
		if !e.Date.IsZero() {
			date = e.Date.Format("2006-01-02")
		}
		row := []string{
			e.Kind,
			e.Round,
			date,
			divisaoStr(e.Division),
			e.Group,
			e.TeamA,
			e.TeamB,
			fmt.Sprintf("%d", e.ScoreA),
			fmt.Sprintf("%d", e.ScoreB),
			dec2(e.RatingBeforeA),
			dec2(e.RatingBeforeB),
			dec2(e.RatingAfterA),
			dec2(e.RatingAfterB),
			fmt.Sprintf("%d", e.DeltaA),
			fmt.Sprintf("%d", e.DeltaB),
			fmt.Sprintf("%t", e.HasAbsence),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}
