package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

var (
	cPurple     = lipgloss.Color("99")
	cCyan       = lipgloss.Color("39")
	cRed        = lipgloss.Color("203")
	cGold       = lipgloss.Color("220")
	cGray       = lipgloss.Color("240")
	cBrightGray = lipgloss.Color("246")
	cLightGray  = lipgloss.Color("250")
	cWhite      = lipgloss.Color("255")
	cHighlight  = lipgloss.Color("57")

	styleAppHeader = lipgloss.NewStyle().
			Foreground(cWhite).
			Background(cPurple).
			Bold(true).
			Padding(0, 1)

	styleBreadcrumb = lipgloss.NewStyle().Foreground(cLightGray)

	styleTab = lipgloss.NewStyle().
			Foreground(cBrightGray).
			Padding(0, 1)

	styleTabActive = lipgloss.NewStyle().
			Foreground(cWhite).
			Background(cHighlight).
			Bold(true).
			Padding(0, 1)

	styleGroupRow = lipgloss.NewStyle().Foreground(cGold).Bold(true)
	styleTreeLine = lipgloss.NewStyle().Foreground(cGray)
	styleItem     = lipgloss.NewStyle().Foreground(cWhite)
	styleMarked   = lipgloss.NewStyle().Foreground(cCyan).Bold(true)

	styleSelected = lipgloss.NewStyle().
			Background(cHighlight).
			Foreground(cWhite).
			Bold(true)

	stylePane = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(cGray)

	styleStatus    = lipgloss.NewStyle().Foreground(cBrightGray)
	styleStatusErr = lipgloss.NewStyle().Foreground(cRed).Bold(true)
	styleSpinner   = lipgloss.NewStyle().Foreground(cPurple)

	styleDialog = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(cPurple).
			Padding(0, 1)

	styleDialogDanger = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(cRed).
				Padding(0, 1)

	styleDialogTitle = lipgloss.NewStyle().Foreground(cGold).Bold(true)

	styleHelpOverlay = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(cPurple).
				Padding(1, 2)

	styleHelpTitle = lipgloss.NewStyle().Foreground(cGold).Bold(true)
	styleHelpDim   = lipgloss.NewStyle().Foreground(cBrightGray)
)

// buildMarkdownRenderer returns a renderer for the details pane. "plain"
// skips glamour and only wraps.
func buildMarkdownRenderer(format string, width int) func(string) string {
	fallback := func(input string) string {
		return wordwrap.String(input, width)
	}

	style := strings.ToLower(strings.TrimSpace(format))
	if style == "" || style == "rich" || style == "dark" {
		style = "dark"
	}
	if style == "plain" {
		return fallback
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return fallback
	}
	return func(input string) string {
		out, err := renderer.Render(input)
		if err != nil {
			return fallback(input)
		}
		return strings.TrimSpace(out)
	}
}
