package ui

import "github.com/charmbracelet/lipgloss"

// Colors using AdaptiveColor for light/dark terminal support.
var (
	colorWhite  = lipgloss.AdaptiveColor{Light: "0", Dark: "15"}
	colorDim    = lipgloss.AdaptiveColor{Light: "242", Dark: "240"}
	colorGreen  = lipgloss.AdaptiveColor{Light: "28", Dark: "40"}
	colorRed    = lipgloss.AdaptiveColor{Light: "160", Dark: "196"}
	colorYellow = lipgloss.AdaptiveColor{Light: "136", Dark: "220"}
)

// Panel styles.
var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite).
			MarginBottom(1)

	hintStyle = lipgloss.NewStyle().
			Foreground(colorDim).
			MarginTop(1)
)

// Settings field styles.
var (
	settingsLabelStyle = lipgloss.NewStyle().
				Width(labelWidth).
				Foreground(colorDim)

	settingsValueStyle = lipgloss.NewStyle().
				Foreground(colorWhite)

	settingsToggleOn = lipgloss.NewStyle().
				Foreground(colorGreen).
				Bold(true)

	settingsToggleOff = lipgloss.NewStyle().
				Foreground(colorRed)

	settingsSliderStyle = lipgloss.NewStyle().
				Foreground(colorYellow)

	settingsCursorStyle = lipgloss.NewStyle().
				Background(lipgloss.AdaptiveColor{Light: "254", Dark: "237"})

	shutdownButtonStyle = lipgloss.NewStyle().
				Foreground(colorRed).
				Bold(true)
)
