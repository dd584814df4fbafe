package calibrate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	cal := Calibration{
		"futsal": SportCalibration{
			Status:    "ok",
			BaseGoals: 2.4,
			Samples:   42,
			DivisionParams: map[string]DivisionParams{
				"1": {Status: "ok", BaseGoals: 2.1},
			},
		},
	}
	path := filepath.Join(t.TempDir(), "calibration.json")
	require.NoError(t, Save(path, cal))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cal["futsal"].BaseGoals, loaded["futsal"].BaseGoals)
	assert.Equal(t, cal["futsal"].DivisionParams["1"].BaseGoals, loaded["futsal"].DivisionParams["1"].BaseGoals)
}

func TestLoadMissingFileReturnsError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
	assert.True(t, os.IsNotExist(err))
}
