package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// View implements tea.Model.
func (m *App) View() string {
	if !m.ready {
		return "Initializing..."
	}

	if m.showHelp {
		return m.renderHelpOverlay()
	}

	header := m.renderHeader()
	tabs := m.renderTabs()

	tree := stylePane.Render(m.renderTree())
	details := stylePane.Render(lipgloss.NewStyle().
		Width(m.viewport.Width).
		Height(m.treeHeight()).
		Render(m.viewport.View()))
	body := lipgloss.JoinHorizontal(lipgloss.Top, tree, details)

	if m.dialog != dialogNone {
		body = overlayCenter(body, m.renderDialog())
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		tabs,
		body,
		m.renderStatus(),
		m.help.ShortHelpView(m.keys.ShortHelp()),
	)
}

func (m *App) renderHeader() string {
	title := styleAppHeader.Render("MENUTREE")
	crumbs := m.Breadcrumb()
	if len(crumbs) == 0 {
		return title
	}
	avail := m.width - lipgloss.Width(title) - 1
	if avail < 1 {
		return title
	}
	return title + " " + styleBreadcrumb.Render(ansi.Truncate(joinBreadcrumb(crumbs), avail, "…"))
}

func (m *App) renderTabs() string {
	if len(m.menus) == 0 {
		return ""
	}
	parts := make([]string, 0, len(m.menus))
	for i, menu := range m.menus {
		if i == m.menuIdx {
			parts = append(parts, styleTabActive.Render(menu.Name))
		} else {
			parts = append(parts, styleTab.Render(menu.Name))
		}
	}
	return ansi.Truncate(strings.Join(parts, " "), m.width, "…")
}

func (m *App) renderStatus() string {
	text := m.status
	if m.loading {
		text = m.spinner.View() + " Loading…"
		if m.status != "" {
			text += " " + m.status
		}
	}
	if text == "" {
		return ""
	}
	text = ansi.Truncate(text, m.width, "…")
	if m.statusErr && !m.loading {
		return styleStatusErr.Render(text)
	}
	return styleStatus.Render(text)
}
