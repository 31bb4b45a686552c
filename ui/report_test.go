package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"hetcal/domain/calibration"
	"hetcal/ports"
)

func sampleResults() []calibration.Result {
	return []calibration.Result{
		{
			TestID:         ports.TestBreuschPagan,
			Alpha:          0.05,
			EmpiricalSize:  0.23,
			SizeCalibrated: false,
			Power:          0.95,
			PowerAdequate:  true,
		},
		{
			TestID:         ports.TestDetteMunkWagner,
			Alpha:          0.05,
			EmpiricalSize:  0.05,
			SizeCalibrated: true,
			SizeExcellent:  true,
			Power:          0.88,
			PowerAdequate:  true,
		},
	}
}

func TestRenderSummary(t *testing.T) {
	out := NewRenderer().RenderSummary(sampleResults())

	assert.Contains(t, out, "CALIBRATION SUMMARY")
	assert.Contains(t, out, "breusch_pagan")
	assert.Contains(t, out, "dette_munk_wagner")
	assert.Contains(t, out, "23.0%")
	assert.Contains(t, out, "88.0%")
	assert.Contains(t, out, "PASS")
	assert.Contains(t, out, "FAIL")
}

func TestRenderAnalysis_BestTest(t *testing.T) {
	out := NewRenderer().RenderAnalysis(sampleResults())

	assert.Contains(t, out, "Best calibrated test")
	assert.Contains(t, out, "dette_munk_wagner")
	assert.Contains(t, out, "excellent band")
}

func TestRenderAnalysis_NothingPasses(t *testing.T) {
	results := []calibration.Result{
		{TestID: ports.TestWhite, EmpiricalSize: 0.31, SizeCalibrated: false, Power: 0.99, PowerAdequate: true},
	}

	out := NewRenderer().RenderAnalysis(results)
	assert.Contains(t, out, "No test passed both criteria")
	assert.Contains(t, out, "Oversized tests")
	assert.Contains(t, out, "white")
	assert.Contains(t, out, "31.0%")
}

func TestRenderPowerCurve(t *testing.T) {
	curve := []calibration.PowerCurvePoint{
		{Strength: 0, DetectionRate: 0.05},
		{Strength: 1.0, DetectionRate: 0.5},
		{Strength: 2.0, DetectionRate: 1.0},
	}

	out := NewRenderer().RenderPowerCurve(ports.TestDetteMunkWagner, curve)

	assert.Contains(t, out, "POWER CURVE FOR DETTE_MUNK_WAGNER")
	assert.Contains(t, out, "Detection Rate")
	assert.Contains(t, out, "50.0%")
	assert.Contains(t, out, strings.Repeat("#", 40), "full detection fills the bar")
	assert.Contains(t, out, strings.Repeat("#", 20))

	// Rows appear in sweep order
	idxZero := strings.Index(out, "5.0%")
	idxFull := strings.Index(out, "100.0%")
	assert.Less(t, idxZero, idxFull)
}
