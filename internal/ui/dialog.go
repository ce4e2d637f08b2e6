package ui

import (
	"fmt"
	"slices"
	"strings"

	"menutree/internal/domain"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

const dialogWidth = 48

func (m *App) openDialog(kind dialogKind, target domain.MenuItem, value string) {
	m.dialog = kind
	m.dialogTarget = target
	if kind == dialogDelete {
		return
	}
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.input.Placeholder = "Item name"
	m.input.Focus()
}

func (m *App) closeDialog() {
	m.dialog = dialogNone
	m.dialogTarget = domain.MenuItem{}
	m.input.Blur()
	m.input.SetValue("")
}

func (m *App) updateDialog(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.Cancel) {
		m.closeDialog()
		return nil
	}

	if m.dialog == dialogDelete {
		if key.Matches(msg, m.keys.ConfirmYN) {
			return m.submitDelete()
		}
		if msg.String() == "n" || msg.String() == "N" {
			m.closeDialog()
		}
		return nil
	}

	if key.Matches(msg, m.keys.Confirm) {
		return m.submitInput()
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *App) submitInput() tea.Cmd {
	name := strings.TrimSpace(m.input.Value())
	if name == "" {
		m.setStatus("Name must not be empty")
		m.statusErr = true
		return nil
	}
	menu, ok := m.currentMenu()
	if !ok {
		m.closeDialog()
		return nil
	}

	kind, target := m.dialog, m.dialogTarget
	m.closeDialog()
	var cmd tea.Cmd
	switch kind {
	case dialogAddChild:
		cmd = m.createItemCmd(name, menu.ID, target.ID)
	case dialogAddRoot:
		cmd = m.createItemCmd(name, menu.ID, "")
	case dialogRename:
		if name == target.Name {
			return nil
		}
		cmd = m.renameItemCmd(target.ID, name)
	default:
		return nil
	}
	return tea.Batch(m.startLoading(), cmd)
}

func (m *App) submitDelete() tea.Cmd {
	target := m.dialogTarget
	m.closeDialog()
	if m.marked != nil && m.forest != nil {
		if m.marked.ID == target.ID || slices.Contains(m.forest.Descendants(target.ID), m.marked.ID) {
			m.marked = nil
		}
	}
	return tea.Batch(m.startLoading(), m.deleteItemCmd(target, target.ParentID))
}

func (m *App) renderDialog() string {
	var title, body string
	style := styleDialog
	switch m.dialog {
	case dialogAddChild:
		title = "Add child"
		body = fmt.Sprintf("Under %q\n\n%s", m.dialogTarget.Name, m.input.View())
	case dialogAddRoot:
		menu, _ := m.currentMenu()
		title = "Add root item"
		body = fmt.Sprintf("In %q\n\n%s", menu.Name, m.input.View())
	case dialogRename:
		title = "Rename"
		body = m.input.View()
	case dialogDelete:
		style = styleDialogDanger
		title = "Delete"
		n := 0
		if m.forest != nil {
			n = len(m.forest.Descendants(m.dialogTarget.ID))
		}
		text := fmt.Sprintf("Delete %q", m.dialogTarget.Name)
		if n > 0 {
			text += fmt.Sprintf(" and its %d descendants", n)
		}
		body = wordwrap.String(text+"?", dialogWidth) + "\n\n" + styleHelpDim.Render("y confirm • n/Esc cancel")
		return style.Width(dialogWidth).Render(styleDialogTitle.Render(title) + "\n\n" + body)
	default:
		return ""
	}
	footer := styleHelpDim.Render("⏎ save • Esc cancel")
	return style.Width(dialogWidth).Render(lipgloss.JoinVertical(lipgloss.Left,
		styleDialogTitle.Render(title), "", body, "", footer))
}
