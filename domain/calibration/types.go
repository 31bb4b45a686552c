package calibration

import "hetcal/ports"

// ============================================================================
// CALIBRATION THRESHOLDS (fixed configuration constants, not derived)
// ============================================================================

const (
	// SizeLowerBound / SizeUpperBound bracket the loose calibration band
	// for the empirical false-positive rate at alpha=0.05. Inclusive.
	SizeLowerBound = 0.03
	SizeUpperBound = 0.10

	// SizeExcellentLower / SizeExcellentUpper bracket the strict diagnostic
	// band. Reported only; never gates the calibrated flag.
	SizeExcellentLower = 0.04
	SizeExcellentUpper = 0.07

	// PowerFloor is the minimum adequate detection rate. Inclusive.
	PowerFloor = 0.80

	// ModerateStrength is the trumpet slope used for the power arm
	ModerateStrength = 1.0
)

// Result captures the calibration outcome for one test.
// INVARIANTS:
// - EmpiricalSize and Power always in [0.0, 1.0]
// - Flags are pure functions of EmpiricalSize/Power and the constants above
// - Immutable once computed; both arms must finish before one exists
type Result struct {
	RunID          string       `json:"run_id"`
	TestID         ports.TestID `json:"test_id"`
	Alpha          float64      `json:"alpha"`
	EmpiricalSize  float64      `json:"empirical_size"`
	SizeCalibrated bool         `json:"size_calibrated"`
	SizeExcellent  bool         `json:"size_excellent"`
	Power          float64      `json:"power"`
	PowerAdequate  bool         `json:"power_adequate"`
	SampleSize     int          `json:"sample_size"`
	Trials         int          `json:"trials"`
}

// Passed reports whether the test met both calibration criteria
func (r Result) Passed() bool {
	return r.SizeCalibrated && r.PowerAdequate
}

// Margin is the selection score: detection rate minus false-positive rate
func (r Result) Margin() float64 {
	return r.Power - r.EmpiricalSize
}

// PowerCurvePoint is one entry of a detection-rate curve. A curve is an
// ordered slice of these, in the caller's strength order.
type PowerCurvePoint struct {
	Strength      float64 `json:"strength"`
	DetectionRate float64 `json:"detection_rate"`
}
