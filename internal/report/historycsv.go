package report

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/tacaua/forecast/internal/team"
)

// WriteRatingHistory writes the wide-format rating-history CSV (one column
// per team, one row per history step — the input format's mirror image),
// per spec.md §6.
func WriteRatingHistory(path string, registry *team.Registry) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	names := registry.Names()
	if err := w.Write(names); err != nil {
		return err
	}

	steps := 0
	histories := make([][]float64, len(names))
	for i, n := range names {
		h := registry.History(n).Values
		histories[i] = h
		if len(h) > steps {
			steps = len(h)
		}
	}

	for step := 0; step < steps; step++ {
		row := make([]string, len(names))
		for i, h := range histories {
			v := 0.0
			if step < len(h) {
				v = h[step]
			} else if len(h) > 0 {
				v = h[len(h)-1]
			}
			row[i] = fmt.Sprintf("%.1f", v)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}
