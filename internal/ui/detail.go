package ui

import (
	"fmt"
	"strings"
	"time"

	"menutree/internal/domain"
)

var timeNow = time.Now

const rootParentLabel = "Root Item"

// refreshDetail re-renders the details pane for the current selection. An
// empty selection blanks it.
func (m *App) refreshDetail() {
	if m.markdown == nil || m.renderWidth != m.viewport.Width {
		m.markdown = buildMarkdownRenderer(m.outputFormat, m.viewport.Width)
		m.renderWidth = m.viewport.Width
	}
	item, ok := m.selectedItem()
	if !ok {
		m.viewport.SetContent(m.menuSummary())
		m.viewport.GotoTop()
		return
	}
	m.viewport.SetContent(m.markdown(m.itemMarkdown(item)))
	m.viewport.GotoTop()
}

func (m *App) menuSummary() string {
	menu, ok := m.currentMenu()
	if !ok || m.forest == nil {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", menu.Name)
	if menu.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", menu.Description)
	}
	fmt.Fprintf(&b, "- **Items:** %d\n", m.forest.Len())
	fmt.Fprintf(&b, "- **Roots:** %d\n", len(m.forest.Roots()))
	fmt.Fprintf(&b, "- **Levels:** %d\n", m.forest.MaxLevel()+1)
	return m.markdown(b.String())
}

func (m *App) itemMarkdown(item domain.MenuItem) string {
	parent := rootParentLabel
	if item.ParentID != "" {
		parent = item.ParentID
		if i, ok := m.forest.Lookup(item.ParentID); ok {
			parent = m.forest.Item(i).Name
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", item.Name)
	fmt.Fprintf(&b, "- **ID:** `%s`\n", item.ID)
	fmt.Fprintf(&b, "- **Depth:** %d\n", item.Depth)
	fmt.Fprintf(&b, "- **Parent:** %s\n", parent)
	fmt.Fprintf(&b, "- **Name:** %s\n", item.Name)
	if i, ok := m.forest.Lookup(item.ID); ok && len(m.forest.Children(i)) > 0 {
		fmt.Fprintf(&b, "- **Children:** %d\n", len(m.forest.Children(i)))
	}
	if !item.CreatedAt.IsZero() {
		fmt.Fprintf(&b, "- **Created:** %s\n", FormatRelativeTime(item.CreatedAt))
	}
	if !item.UpdatedAt.IsZero() {
		fmt.Fprintf(&b, "- **Updated:** %s\n", FormatRelativeTime(item.UpdatedAt))
	}
	return b.String()
}

// FormatRelativeTime returns a compact description of how long ago t
// occurred.
func FormatRelativeTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	now := timeNow()
	if t.After(now) {
		return formatAbsoluteTime(t, now)
	}

	diff := now.Sub(t)
	switch {
	case diff < time.Minute:
		return "now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff/time.Minute))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff/time.Hour))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff/(24*time.Hour)))
	default:
		return formatAbsoluteTime(t, now)
	}
}

func formatAbsoluteTime(t, now time.Time) string {
	local := t.In(now.Location())
	if local.Year() == now.Year() {
		return local.Format("Jan 2")
	}
	return local.Format("Jan '06")
}
