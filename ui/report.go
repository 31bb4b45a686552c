// Package ui renders calibration results as transient console text. There is
// no machine-readable output: the report is read by a person, once.
package ui

import (
	"fmt"
	"strings"

	"hetcal/domain/calibration"
	"hetcal/ports"
)

const (
	ruleWidth = 60
	barWidth  = 40
)

// Renderer formats calibration results and power curves for the terminal
type Renderer struct{}

// NewRenderer creates a report renderer
func NewRenderer() *Renderer {
	return &Renderer{}
}

// RenderSummary produces the calibration summary table: one row per test with
// size, power, and the overall verdict.
func (r *Renderer) RenderSummary(results []calibration.Result) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("CALIBRATION SUMMARY") + "\n")
	b.WriteString(dimStyle.Render(rule()) + "\n")
	b.WriteString(fmt.Sprintf("%-25s %-16s %-16s %s\n", "Test", "Size", "Power", "Overall"))

	for _, res := range results {
		size := fmt.Sprintf("%.1f%%", res.EmpiricalSize*100)
		if res.SizeCalibrated {
			size += " " + passStyle.Render("OK")
		} else {
			size += " " + failStyle.Render("FAIL")
		}

		power := fmt.Sprintf("%.1f%%", res.Power*100)
		if res.PowerAdequate {
			power += " " + passStyle.Render("OK")
		} else {
			power += " " + warnStyle.Render("LOW")
		}

		overall := failStyle.Render("FAIL")
		if res.Passed() {
			overall = passStyle.Render("PASS")
		}

		b.WriteString(fmt.Sprintf("%-25s %-16s %-16s %s\n", res.TestID, size, power, overall))
	}

	b.WriteString(dimStyle.Render(rule()) + "\n")
	return b.String()
}

// RenderAnalysis names the best calibrated test, or lists the oversized ones
// when nothing passed both criteria.
func (r *Renderer) RenderAnalysis(results []calibration.Result) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("ANALYSIS") + "\n")

	if best, ok := calibration.SelectBest(results); ok {
		b.WriteString(fmt.Sprintf("Best calibrated test: %s\n", passStyle.Render(string(best.TestID))))
		b.WriteString(fmt.Sprintf("  - False positive rate: %.1f%% (target: %.0f%%)\n", best.EmpiricalSize*100, best.Alpha*100))
		b.WriteString(fmt.Sprintf("  - Power: %.1f%% (target: >%.0f%%)\n", best.Power*100, calibration.PowerFloor*100))
		if best.SizeExcellent {
			b.WriteString(dimStyle.Render("  - Size within the excellent band\n"))
		}
		return b.String()
	}

	b.WriteString("No test passed both criteria.\n")
	if oversized := calibration.Oversized(results); len(oversized) > 0 {
		b.WriteString("Oversized tests (too many false positives):\n")
		for _, res := range oversized {
			b.WriteString(fmt.Sprintf("  - %s: %.1f%% false positive rate\n", res.TestID, res.EmpiricalSize*100))
		}
		b.WriteString(dimStyle.Render("Note: kernel regression residuals are correlated, which can\ninflate Type I error for tests designed for linear models.\n"))
	}
	return b.String()
}

// RenderPowerCurve produces the detection-rate table with proportional bars
func (r *Renderer) RenderPowerCurve(test ports.TestID, curve []calibration.PowerCurvePoint) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("POWER CURVE FOR %s", strings.ToUpper(string(test)))) + "\n")
	b.WriteString(dimStyle.Render(rule()) + "\n")
	b.WriteString(fmt.Sprintf("%-12s %-20s %s\n", "Strength", "Detection Rate", "Bar"))

	for _, p := range curve {
		bar := strings.Repeat("#", int(p.DetectionRate*barWidth))
		b.WriteString(fmt.Sprintf("%-12.2f %-20s %s\n",
			p.Strength,
			fmt.Sprintf("%.1f%%", p.DetectionRate*100),
			barStyle.Render(bar)))
	}

	b.WriteString(dimStyle.Render(rule()) + "\n")
	return b.String()
}

func rule() string {
	return strings.Repeat("-", ruleWidth)
}
