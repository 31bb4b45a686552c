package ui

import "github.com/charmbracelet/lipgloss"

// Color palette for the calibration report. All colors live here; no ad-hoc
// color literals in the renderer.
var (
	colorBlue   = lipgloss.Color("#58a6ff")
	colorGreen  = lipgloss.Color("#3fb950")
	colorRed    = lipgloss.Color("#f85149")
	colorYellow = lipgloss.Color("#d29922")
	colorDim    = lipgloss.Color("#8b949e")
)

// Component styles
var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorBlue)

	passStyle = lipgloss.NewStyle().Foreground(colorGreen)
	failStyle = lipgloss.NewStyle().Foreground(colorRed)
	warnStyle = lipgloss.NewStyle().Foreground(colorYellow)
	dimStyle  = lipgloss.NewStyle().Foreground(colorDim)
	barStyle  = lipgloss.NewStyle().Foreground(colorBlue)
)
