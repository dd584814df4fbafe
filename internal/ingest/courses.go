// Package ingest implements the §6 input readers for the normalized match
// CSV, the rating-snapshot CSV, and the course-mapping JSON, plus the
// league-shape derivation. The calibration JSON is read by calibrate.Load
// and the hardset CSV by hardset.Manager.LoadCSV.
package ingest

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// CourseEntry is one course-mapping record: a short code mapping to its
// full display name, per spec.md §6.
type CourseEntry struct {
	DisplayName string `json:"displayName"`
}

type coursesFile struct {
	Courses map[string]CourseEntry `json:"courses"`
}

// Courses is the name-normalization lookup table of spec.md §9 ("Name
// normalization"): both the display-name and short-code forms resolve to
// the same canonical identity, and fixture identifiers are always built
// from the short form.
type Courses struct {
	shortToDisplay map[string]string
	displayToShort map[string]string
}

// LoadCourses reads the course-mapping JSON at path.
func LoadCourses(path string) (*Courses, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ingest: read courses %s: %w", path, err)
	}
	var raw coursesFile
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("ingest: parse courses %s: %w", path, err)
	}
	c := &Courses{
		shortToDisplay: make(map[string]string, len(raw.Courses)),
		displayToShort: make(map[string]string, len(raw.Courses)),
	}
	for short, entry := range raw.Courses {
		c.shortToDisplay[short] = entry.DisplayName
		c.displayToShort[entry.DisplayName] = short
	}
	return c, nil
}

// Canonical normalizes either a display name or a short code to the
// display name used as the team's canonical identity. A name not found in
// the mapping passes through trimmed, per spec.md §7 ("Normalization
// miss").
func (c *Courses) Canonical(name string) string {
	name = strings.TrimSpace(name)
	if c == nil {
		return name
	}
	if display, ok := c.shortToDisplay[name]; ok {
		return display
	}
	if _, ok := c.displayToShort[name]; ok {
		return name
	}
	return name
}

// ShortCode returns name's short code, used to build fixture identifiers.
// Falls back to the literal name when no mapping exists.
func (c *Courses) ShortCode(name string) string {
	name = strings.TrimSpace(name)
	if c == nil {
		return name
	}
	if short, ok := c.displayToShort[name]; ok {
		return short
	}
	if _, ok := c.shortToDisplay[name]; ok {
		return name
	}
	return name
}

// Aliases returns the long-display-name -> short-code substitution table
// consumed by the Hardset Manager's fixture-id normalization.
func (c *Courses) Aliases() map[string]string {
	if c == nil {
		return nil
	}
	out := make(map[string]string, len(c.displayToShort))
	for display, short := range c.displayToShort {
		out[display] = short
	}
	return out
}
