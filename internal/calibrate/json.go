package calibrate

import (
	"encoding/json"
	"fmt"
	"os"
)

// Save writes cal to path as the calibration JSON artifact of spec.md §6.
func Save(path string, cal Calibration) error {
	data, err := json.MarshalIndent(cal, "", "  ")
	if err != nil {
		return fmt.Errorf("calibrate: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("calibrate: write %s: %w", path, err)
	}
	return nil
}

// Load reads a previously-fitted calibration JSON artifact. A missing file
// is returned as the unwrapped os.ReadFile error (os.IsNotExist reports
// true); the caller decides whether to fall back to fitting or defaults.
func Load(path string) (Calibration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cal Calibration
	if err := json.Unmarshal(data, &cal); err != nil {
		return nil, fmt.Errorf("calibrate: parse %s: %w", path, err)
	}
	return cal, nil
}
