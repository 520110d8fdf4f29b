package tui

import "github.com/charmbracelet/lipgloss"

// Color palette.
var (
	colorRed       = lipgloss.Color("#ff5555")
	colorGreen     = lipgloss.Color("#50fa7b")
	colorYellow    = lipgloss.Color("#f1fa8c")
	colorBlue      = lipgloss.Color("#8be9fd")
	colorPurple    = lipgloss.Color("#bd93f9")
	colorDim       = lipgloss.Color("#6272a4")
	colorBgLight   = lipgloss.Color("#343746")
	colorFg        = lipgloss.Color("#f8f8f2")
	colorBorder    = lipgloss.Color("#44475a")
	colorHighlight = lipgloss.Color("#44475a")
)

// Style definitions.
var (
	// Code panel
	codePanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	lineNumberStyle = lipgloss.NewStyle().
			Foreground(colorDim).
			Width(4).
			Align(lipgloss.Right)

	dottedLineStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	// Option list
	optionKeyStyle = lipgloss.NewStyle().
			Foreground(colorYellow).
			Bold(true)

	optionStyle = lipgloss.NewStyle().
			Foreground(colorFg)

	optionCorrectStyle = lipgloss.NewStyle().
				Foreground(colorGreen).
				Bold(true)

	optionIncorrectStyle = lipgloss.NewStyle().
				Foreground(colorRed).
				Bold(true)

	promptStyle = lipgloss.NewStyle().
			Foreground(colorBlue).
			Bold(true)

	bufferStyle = lipgloss.NewStyle().
			Foreground(colorFg).
			Background(colorHighlight).
			Bold(true)

	// Header / status bar
	headerStyle = lipgloss.NewStyle().
			Foreground(colorPurple).
			Bold(true).
			Padding(0, 0, 1, 0)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(colorFg).
			Background(colorBgLight).
			Padding(0, 1)

	resultCorrectStyle = lipgloss.NewStyle().
				Foreground(colorGreen).
				Bold(true)

	resultIncorrectStyle = lipgloss.NewStyle().
				Foreground(colorRed).
				Bold(true)

	// Loading / help
	loadingStyle = lipgloss.NewStyle().
			Foreground(colorDim).
			Padding(1, 2)

	helpBarStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(colorYellow)
)
