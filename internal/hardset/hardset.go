// Package hardset implements the Hardset Manager of spec.md §4.5: a table
// of pinned fixture outcomes the Monte-Carlo Engine consults before
// sampling each future fixture.
package hardset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/tacaua/forecast/internal/match"
)

// Score is one pinned result.
type Score struct {
	ScoreA, ScoreB int
}

// Manager holds pinned fixture outcomes, keyed by the fixture identifier
// built by match.Fixture.ID. aliases maps a long course/display name to its
// short code, used to normalize a fixture id's segments before lookup, per
// spec.md §4.5 ("Fixture-id normalization").
type Manager struct {
	pinned  map[string]Score
	aliases map[string]string
}

// New creates a Hardset Manager. aliases may be nil if no course mapping
// is available (normalization then only matches literal ids).
func New(aliases map[string]string) *Manager {
	if aliases == nil {
		aliases = map[string]string{}
	}
	return &Manager{pinned: make(map[string]Score), aliases: aliases}
}

// Add pins fixtureID to (scoreA, scoreB), applying alias normalization so
// later literal lookups succeed directly.
func (m *Manager) Add(fixtureID string, scoreA, scoreB int) {
	m.pinned[m.normalize(fixtureID)] = Score{scoreA, scoreB}
}

// Has reports whether fixtureID (or its normalized form) is pinned.
func (m *Manager) Has(fixtureID string) bool {
	_, ok := m.lookup(fixtureID)
	return ok
}

// Get returns the pinned score for fixtureID, if any.
func (m *Manager) Get(fixtureID string) (scoreA, scoreB int, ok bool) {
	s, found := m.lookup(fixtureID)
	if !found {
		return 0, 0, false
	}
	return s.ScoreA, s.ScoreB, true
}

// Clear removes every pinned entry.
func (m *Manager) Clear() {
	m.pinned = make(map[string]Score)
}

// Summary renders a one-line-per-entry human-readable listing, sorted by
// fixture id for determinism.
func (m *Manager) Summary() string {
	ids := make([]string, 0, len(m.pinned))
	for id := range m.pinned {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	var b strings.Builder
	for _, id := range ids {
		s := m.pinned[id]
		fmt.Fprintf(&b, "%s: %d-%d\n", id, s.ScoreA, s.ScoreB)
	}
	return b.String()
}

// AffectedSports returns the set of sports with at least one pinned entry,
// derived from the fixture id's leading segment.
func (m *Manager) AffectedSports() map[match.Sport]bool {
	out := make(map[match.Sport]bool)
	for id := range m.pinned {
		segments := strings.SplitN(id, "_", 2)
		if len(segments) > 0 && segments[0] != "" {
			out[match.Sport(segments[0])] = true
		}
	}
	return out
}

// LoadCSV loads header `match_id,score_a,score_b` rows, per spec.md §6.
func (m *Manager) LoadCSV(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("hardset: open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return fmt.Errorf("hardset: read header %s: %w", path, err)
	}
	cols := columnIndex(header)

	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("hardset: read row %s: %w", path, err)
		}
		id := row[cols["match_id"]]
		scoreA, err1 := strconv.Atoi(strings.TrimSpace(row[cols["score_a"]]))
		scoreB, err2 := strconv.Atoi(strings.TrimSpace(row[cols["score_b"]]))
		if err1 != nil || err2 != nil {
			continue
		}
		m.Add(id, scoreA, scoreB)
	}
	return nil
}

func columnIndex(header []string) map[string]int {
	out := make(map[string]int, len(header))
	for i, h := range header {
		out[strings.TrimSpace(strings.ToLower(h))] = i
	}
	return out
}

func (m *Manager) lookup(fixtureID string) (Score, bool) {
	if s, ok := m.pinned[fixtureID]; ok {
		return s, true
	}
	normalized := m.normalize(fixtureID)
	s, ok := m.pinned[normalized]
	return s, ok
}

// normalize tries substituting each underscore-delimited segment of
// fixtureID through the long->short alias table; segments with no alias
// pass through unchanged.
func (m *Manager) normalize(fixtureID string) string {
	segments := strings.Split(fixtureID, "_")
	for i, seg := range segments {
		if short, ok := m.aliases[seg]; ok {
			segments[i] = short
		}
	}
	return strings.Join(segments, "_")
}
