// Package calibrate implements the Historical Calibrator of spec.md §4.6:
// per-sport/per-division baselines, draw rates, and a logistic draw model
// fit from replayed past seasons.
package calibrate

// DrawModel is the logistic draw-probability fit, per spec.md §6's
// calibration JSON schema.
type DrawModel struct {
	Intercept      float64 `json:"intercept"`
	CoefLinear     float64 `json:"coef_linear"`
	CoefQuadratic  float64 `json:"coef_quadratic"`
}

// DivisionParams is one division's calibrated record within a sport, per
// spec.md §4.6/§6.
type DivisionParams struct {
	BaseGoals          float64   `json:"base_goals"`
	BaseGoalsStd       float64   `json:"base_goals_std"`
	DispersionK        float64   `json:"dispersion_k"`
	BaseDrawRate       float64   `json:"base_draw_rate"`
	DrawEloSensitivity float64   `json:"draw_elo_sensitivity"`
	DrawMultiplier     float64   `json:"draw_multiplier"`
	DrawModel          DrawModel `json:"draw_model"`
	MarginEloSlope     float64   `json:"margin_elo_slope"`
	MarginEloIntercept float64   `json:"margin_elo_intercept"`

	// Status is "ok" or "insufficient_data", per spec.md §7.
	Status  string `json:"status"`
	Samples int    `json:"samples"`
}

// SportCalibration is one sport's top-level calibration record, plus its
// per-division overrides, per spec.md §6.
type SportCalibration struct {
	SportType          string    `json:"sport_type"`
	BaseGoals          float64   `json:"base_goals"`
	BaseGoalsStd       float64   `json:"base_goals_std"`
	DispersionK        float64   `json:"dispersion_k"`
	BaseDrawRate       float64   `json:"base_draw_rate"`
	DrawEloSensitivity float64   `json:"draw_elo_sensitivity"`
	DrawMultiplier     float64   `json:"draw_multiplier"`
	DrawModel          DrawModel `json:"draw_model"`
	MarginEloSlope     float64   `json:"margin_elo_slope"`
	MarginEloIntercept float64   `json:"margin_elo_intercept"`

	Status  string `json:"status"`
	Samples int    `json:"samples"`

	DivisionParams map[string]DivisionParams `json:"division_params"`
}

// Calibration is the full output of Fit: one SportCalibration per sport,
// keyed by sport name.
type Calibration map[string]SportCalibration

// minSamples is the sample-count floor below which a sport/division
// falls back to defaults and is flagged insufficient, per spec.md §7.
const minSamples = 10
