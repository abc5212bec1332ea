package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Adaptive colors for dark/light terminals
	colorPrimary   = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"}
	colorSecondary = lipgloss.AdaptiveColor{Light: "#3D3D3D", Dark: "#ABABAB"}
	colorDim       = lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#626262"}
	colorAccent    = lipgloss.AdaptiveColor{Light: "#F25D94", Dark: "#F25D94"}
	colorError     = lipgloss.AdaptiveColor{Light: "#D03050", Dark: "#FF5F87"}
	colorTabActive = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"}
	colorStatusBg  = lipgloss.AdaptiveColor{Light: "#E8E8E8", Dark: "#16213E"}
	colorStatusFg  = lipgloss.AdaptiveColor{Light: "#3D3D3D", Dark: "#ABABAB"}
	colorGreen     = lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#25D366"}

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			PaddingLeft(1)

	headerDateStyle = lipgloss.NewStyle().
			Foreground(colorDim).
			Align(lipgloss.Right)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim).
			Padding(0, 1)

	cardSelectedStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorAccent).
				Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	titleLinkedStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true).
				Underline(true)

	sourceTagStyle = lipgloss.NewStyle().
			Foreground(colorGreen)

	langBadgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(colorPrimary).
			Padding(0, 1).
			Bold(true)

	dateLabelStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	summaryStyle = lipgloss.NewStyle().
			Foreground(colorSecondary)

	genreTagStyle = lipgloss.NewStyle().
			Foreground(colorAccent)

	metaRowStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	coverStyle = lipgloss.NewStyle().
			Foreground(colorDim).
			Italic(true)

	emptyStateStyle = lipgloss.NewStyle().
			Foreground(colorDim).
			Padding(1, 2)

	errorStateStyle = lipgloss.NewStyle().
			Foreground(colorError).
			Padding(1, 2)

	tabActiveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(colorTabActive).
			Padding(0, 1).
			Bold(true)

	tabInactiveStyle = lipgloss.NewStyle().
				Foreground(colorSecondary).
				Padding(0, 1)

	tabSeparatorStyle = lipgloss.NewStyle().
				Foreground(colorDim)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(colorStatusFg).
			Background(colorStatusBg)

	debugFooterStyle = lipgloss.NewStyle().
			Foreground(colorGreen).
			Faint(true)

	spinnerStyle = lipgloss.NewStyle().
			Foreground(colorAccent)
)
