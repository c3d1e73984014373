package tui

import "github.com/charmbracelet/lipgloss"

var (
	faceStyle = lipgloss.NewStyle().
			Padding(1, 3).
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(lipgloss.Color("#dddddd"))

	lapTimeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#555555"))

	totalTimeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#222222"))

	buttonStyle = lipgloss.NewStyle().
			Width(9).
			Align(lipgloss.Center).
			Border(lipgloss.RoundedBorder())

	lapButtonStyle = buttonStyle.
			Foreground(lipgloss.Color("#555555")).
			BorderForeground(lipgloss.Color("#bbbbbb"))

	startButtonStyle = buttonStyle.
				Foreground(lipgloss.Color("#60B644")).
				BorderForeground(lipgloss.Color("#ff0000"))

	stopButtonStyle = buttonStyle.
			Foreground(lipgloss.Color("#ff0044")).
			BorderForeground(lipgloss.Color("#ff0000"))

	controlsStyle = lipgloss.NewStyle().Padding(1, 3)
)
