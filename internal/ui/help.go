package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderHelpOverlay creates the centered help modal from the full key map.
func (m *App) renderHelpOverlay() string {
	h := m.help
	h.ShowAll = true
	columns := h.FullHelpView(m.keys.FullHelp())

	title := styleHelpTitle.Render("✦ MENUTREE HELP ✦")
	dividerWidth := lipgloss.Width(columns)
	if dividerWidth < 40 {
		dividerWidth = 40
	}
	divider := styleHelpDim.Render(strings.Repeat("─", dividerWidth))
	footer := styleHelpDim.Render("Press ? or Esc to close")

	content := lipgloss.JoinVertical(lipgloss.Center,
		title,
		divider,
		"",
		columns,
		"",
		footer,
	)

	return lipgloss.Place(m.width, m.height,
		lipgloss.Center, lipgloss.Center,
		styleHelpOverlay.Render(content),
		lipgloss.WithWhitespaceChars(" "),
	)
}
