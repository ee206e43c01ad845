package tui

import "charm.land/lipgloss/v2"

var (
	colorPrimary = lipgloss.Color("#8B5CF6")
	colorAccent  = lipgloss.Color("#F97316")
	colorSuccess = lipgloss.Color("#22C55E")
	colorError   = lipgloss.Color("#F43F5E")
	colorText    = lipgloss.Color("#F8FAFC")
	colorDim     = lipgloss.Color("#94A3B8")
	colorBorder  = lipgloss.Color("#334155")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	questionStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Bold(true)

	cursorStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	optionStyle = lipgloss.NewStyle().
			Foreground(colorText)

	correctStyle = lipgloss.NewStyle().
			Foreground(colorSuccess).
			Bold(true)

	wrongStyle = lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true)

	scoreStyle = lipgloss.NewStyle().
			Foreground(colorAccent)

	hintStyle = lipgloss.NewStyle().
			Foreground(colorDim).
			Italic(true)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(1, 2)
)
