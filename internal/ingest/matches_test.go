package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tacaua/forecast/internal/match"
)

func writeCSV(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "matches.csv")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

const csvHeader = "Jornada,Dia,Hora,Local,Equipa 1,Golos 1,Golos 2,Equipa 2,Falta de Comparência,Divisão,Grupo\n"

func TestLoadMatchesParsesPlayedAndFutureRows(t *testing.T) {
	body := csvHeader +
		"J1,01/09/2025,18:00,Court 1,Team A,3,1,Team B,,1,\n" +
		"J2,08/09/2025,18:00,Court 1,Team A,,,Team B,,1,\n"
	path := writeCSV(t, body)

	matches, warnings, err := LoadMatches(path, match.Futsal, nil)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, matches, 2)
	assert.False(t, matches[0].IsFuture())
	assert.True(t, matches[1].IsFuture())
	assert.Equal(t, 3, *matches[0].ScoreA)
}

func TestLoadMatchesSkipsMalformedRowsWithWarning(t *testing.T) {
	body := csvHeader +
		"J1,01/09/2025,18:00,Court 1,Team A,oops,1,Team B,,1,\n" +
		"J2,01/09/2025,18:00,Court 1,,3,1,Team B,,1,\n"
	path := writeCSV(t, body)

	matches, warnings, err := LoadMatches(path, match.Futsal, nil)
	require.NoError(t, err)
	assert.Empty(t, matches)
	assert.Len(t, warnings, 2)
}

func TestLoadMatchesTreatsBOMAsTolerable(t *testing.T) {
	body := "\xEF\xBB\xBF" + csvHeader +
		"J1,01/09/2025,18:00,Court 1,Team A,2,2,Team B,,1,\n"
	path := writeCSV(t, body)

	matches, warnings, err := LoadMatches(path, match.Futsal, nil)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, matches, 1)
	assert.Equal(t, "Team A", matches[0].TeamA)
}

func TestLoadMatchesRejectsMissingColumns(t *testing.T) {
	path := writeCSV(t, "Jornada,Dia\nJ1,01/09/2025\n")
	_, _, err := LoadMatches(path, match.Futsal, nil)
	assert.Error(t, err)
}

func TestLoadMatchesMarksVolleyballSetScores(t *testing.T) {
	body := csvHeader +
		"J1,01/09/2025,18:00,Court 1,Team A,2,1,Team B,,1,\n"
	path := writeCSV(t, body)

	matches, _, err := LoadMatches(path, match.Volleyball, nil)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	require.NotNil(t, matches[0].SetsA)
	assert.Equal(t, 2, *matches[0].SetsA)
}
