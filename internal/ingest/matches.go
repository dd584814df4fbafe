package ingest

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/tacaua/forecast/internal/match"
)

// matchColumns is the exact column set of spec.md §6's normalized match
// CSV, per spec.md §9 ("Duck-typed CSV rows").
var matchColumns = []string{
	"Jornada", "Dia", "Hora", "Local", "Equipa 1", "Golos 1", "Golos 2",
	"Equipa 2", "Falta de Comparência", "Divisão", "Grupo",
}

// dateLayouts are the date formats tried, in order, when parsing "Dia"
// (optionally combined with "Hora").
var dateLayouts = []string{
	"02/01/2006 15:04",
	"02/01/2006",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Warning is a non-fatal row-level issue surfaced alongside the parsed
// matches, per spec.md §7's "Data validity" policy (skip the row, warn,
// continue).
type Warning struct {
	Line    int
	Message string
}

// LoadMatches reads one normalized match CSV for a single sport/season.
// Malformed rows (non-parseable score, missing team on one side, illegal
// round label) are skipped with a Warning rather than aborting the load.
func LoadMatches(path string, sport match.Sport, courses *Courses) ([]match.Match, []Warning, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("ingest: open %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(bomTolerantReader(f))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("ingest: read header %s: %w", path, err)
	}
	cols, err := indexColumns(header, matchColumns)
	if err != nil {
		return nil, nil, fmt.Errorf("ingest: %s: %w", path, err)
	}

	var matches []match.Match
	var warnings []Warning
	line := 1
	for {
		row, err := reader.Read()
		line++
		if err == io.EOF {
			break
		}
		if err != nil {
			warnings = append(warnings, Warning{line, err.Error()})
			continue
		}

		m, warn, ok := parseMatchRow(row, cols, sport, courses)
		if !ok {
			warnings = append(warnings, Warning{line, warn})
			continue
		}
		matches = append(matches, m)
	}
	return matches, warnings, nil
}

func parseMatchRow(row []string, cols map[string]int, sport match.Sport, courses *Courses) (match.Match, string, bool) {
	get := func(name string) string {
		idx, ok := cols[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	teamA := courses.Canonical(get("Equipa 1"))
	teamB := courses.Canonical(get("Equipa 2"))
	if teamA == "" || teamB == "" {
		return match.Match{}, "missing team on one side", false
	}

	round := get("Jornada")
	if round == "" {
		return match.Match{}, "missing round label", false
	}

	m := match.Match{
		Sport:   sport,
		Round:   round,
		Venue:   get("Local"),
		TeamA:   teamA,
		TeamB:   teamB,
		Absence: get("Falta de Comparência"),
	}

	if d := get("Divisão"); d != "" {
		if v, err := strconv.Atoi(d); err == nil {
			m.Division = v
		}
	}
	m.Group = get("Grupo")

	m.DateRaw = strings.TrimSpace(get("Dia") + " " + get("Hora"))
	if t, ok := parseDate(get("Dia"), get("Hora")); ok {
		m.Date = t
	}

	scoreA, scoreB, ok := parseScores(get("Golos 1"), get("Golos 2"))
	if !ok {
		return match.Match{}, "non-parseable score", false
	}
	m.ScoreA, m.ScoreB = scoreA, scoreB
	if sport == match.Volleyball && scoreA != nil && scoreB != nil {
		setsA, setsB := *scoreA, *scoreB
		m.SetsA, m.SetsB = &setsA, &setsB
	}

	return m, "", true
}

func parseScores(rawA, rawB string) (*int, *int, bool) {
	if rawA == "" || rawB == "" {
		return nil, nil, true // future fixture
	}
	a, errA := strconv.Atoi(rawA)
	b, errB := strconv.Atoi(rawB)
	if errA != nil || errB != nil || a < 0 || b < 0 {
		return nil, nil, false
	}
	return &a, &b, true
}

func parseDate(day, hour string) (time.Time, bool) {
	combined := strings.TrimSpace(day + " " + hour)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, combined); err == nil {
			return t, true
		}
		if t, err := time.Parse(layout, day); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func indexColumns(header []string, required []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(h)] = i
	}
	missing := make([]string, 0)
	for _, r := range required {
		if _, ok := idx[r]; !ok {
			missing = append(missing, r)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing columns: %s", strings.Join(missing, ", "))
	}
	return idx, nil
}

// bomTolerantReader strips a leading UTF-8 byte-order mark, per spec.md §6
// ("Encoding UTF-8 with BOM tolerated").
func bomTolerantReader(f io.Reader) io.Reader {
	br := bufio.NewReader(f)
	bom, err := br.Peek(3)
	if err == nil && len(bom) == 3 && bom[0] == 0xEF && bom[1] == 0xBB && bom[2] == 0xBF {
		br.Discard(3)
	}
	return br
}
