package ui

import (
	"fmt"
	"strings"

	"menutree/internal/treeview"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const breadcrumbSeparator = " › "

func joinBreadcrumb(crumbs []string) string {
	return strings.Join(crumbs, breadcrumbSeparator)
}

// recalcRows rebuilds the visible rows and puts the cursor back on the
// selected item. A selection hidden by a collapse falls back to the nearest
// visible ancestor.
func (m *App) recalcRows() {
	if m.groupCollapsed {
		m.rows = treeview.Rows(m.forest, m.state)
		m.state = treeview.Reduce(m.state, m.forest, treeview.SelectAction{})
		m.cursor = 0
		m.offset = 0
		m.refreshDetail()
		return
	}
	m.rows = treeview.Rows(m.forest, m.state)

	selected := m.state.Selected()
	switch idx := treeview.IndexOf(m.rows, selected); {
	case selected == "":
		m.cursor = 0
	case idx >= 0:
		m.cursor = idx + 1
	default:
		m.cursor = m.visibleAncestorRow(selected)
		id := ""
		if item, ok := m.selectedItem(); ok {
			id = item.ID
		}
		m.state = treeview.Reduce(m.state, m.forest, treeview.SelectAction{ID: id})
	}
	m.ensureCursorVisible()
	m.refreshDetail()
}

func (m *App) visibleAncestorRow(id string) int {
	if m.forest == nil {
		return 0
	}
	path, err := m.forest.Path(id)
	if err != nil {
		return 0
	}
	for i := len(path) - 1; i >= 0; i-- {
		if idx := treeview.IndexOf(m.rows, path[i].ID); idx >= 0 {
			return idx + 1
		}
	}
	return 0
}

func (m *App) treeHeight() int {
	// header, tabs, status, footer and the pane border
	h := m.height - 6
	if h < 1 {
		h = 1
	}
	return h
}

func (m *App) treeWidth() int {
	w := m.width - m.viewport.Width - 4
	if w < minTreeWidth {
		w = minTreeWidth
	}
	return w
}

func (m *App) ensureCursorVisible() {
	h := m.treeHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+h {
		m.offset = m.cursor - h + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

func (m *App) resize() {
	vw := int(float64(m.width)*0.4) - 2
	maxVW := m.width - minTreeWidth - 4
	m.viewport.Width = clampDimension(vw, minViewportWidth, maxVW)
	m.viewport.Height = clampDimension(m.treeHeight(), minViewportHeight, m.height)
	m.ensureCursorVisible()
	m.refreshDetail()
}

func clampDimension(value, minimum, maximum int) int {
	if maximum < minimum {
		maximum = minimum
	}
	if value < minimum {
		return minimum
	}
	if value > maximum {
		return maximum
	}
	return value
}

// renderTree renders the menu row and the visible item rows inside the
// scroll window.
func (m *App) renderTree() string {
	width := m.treeWidth()
	menu, ok := m.currentMenu()
	if !ok {
		return lipgloss.NewStyle().Width(width).Render(styleStatus.Render("No menu loaded"))
	}

	lines := make([]string, 0, len(m.rows)+1)
	icon := "▾ "
	if m.groupCollapsed {
		icon = "▸ "
	}
	group := ansi.Truncate(icon+menu.Name, width, "…")
	if m.cursor == 0 {
		lines = append(lines, styleSelected.Render(padRight(group, width)))
	} else {
		lines = append(lines, styleGroupRow.Render(group))
	}

	if !m.groupCollapsed {
		for i, row := range m.rows {
			lines = append(lines, m.renderRow(row, i+1 == m.cursor, width))
		}
	}

	h := m.treeHeight()
	end := m.offset + h
	if end > len(lines) {
		end = len(lines)
	}
	start := m.offset
	if start > end {
		start = end
	}
	return lipgloss.NewStyle().Width(width).Height(h).Render(strings.Join(lines[start:end], "\n"))
}

func (m *App) renderRow(row treeview.Row, selected bool, width int) string {
	icon := "• "
	if row.Expandable {
		icon = "▸ "
		if row.Expanded {
			icon = "▾ "
		}
	}
	name := row.Item.Name
	if m.marked != nil && m.marked.ID == row.Item.ID {
		name += " [move]"
	}
	if row.Expandable && !row.Expanded {
		name += fmt.Sprintf(" (%d)", len(m.forest.Descendants(row.Item.ID)))
	}
	indent := "  "
	plain := ansi.Truncate(indent+row.Prefix+icon+name, width, "…")
	if selected {
		return styleSelected.Render(padRight(plain, width))
	}

	// Restyle the tree lines and the name separately once it fits.
	lines := indent + row.Prefix
	if !strings.HasPrefix(plain, lines) || len(plain) == len(lines) {
		return styleTreeLine.Render(plain)
	}
	nameStyle := styleItem
	if m.marked != nil && m.marked.ID == row.Item.ID {
		nameStyle = styleMarked
	}
	return styleTreeLine.Render(lines) + nameStyle.Render(plain[len(lines):])
}

func padRight(s string, width int) string {
	if w := ansi.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
