package ui

import (
	"fmt"

	"menutree/internal/debug"
	"menutree/internal/domain"
	"menutree/internal/treeview"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Update implements tea.Model.
func (m *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.help.Width = msg.Width
		m.resize()
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case menusLoadedMsg:
		return m, m.handleMenusLoaded(msg)

	case treeLoadedMsg:
		m.handleTreeLoaded(msg)
		return m, nil

	case mutationDoneMsg:
		return m, m.handleMutationDone(msg)

	case tea.KeyMsg:
		if m.dialog != dialogNone {
			return m, m.updateDialog(msg)
		}
		if m.showHelp {
			if key.Matches(msg, m.keys.Help, m.keys.Cancel, m.keys.Quit) {
				m.showHelp = false
			}
			return m, nil
		}
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Toggle):
		m.toggleCurrent()
	case key.Matches(msg, m.keys.ExpandAll):
		m.groupCollapsed = false
		m.apply(treeview.ExpandAllAction{})
	case key.Matches(msg, m.keys.CollapseAll):
		m.apply(treeview.CollapseAllAction{})
	case key.Matches(msg, m.keys.NextMenu):
		return m.switchMenu(1)
	case key.Matches(msg, m.keys.PrevMenu):
		return m.switchMenu(-1)
	case key.Matches(msg, m.keys.Reload):
		m.setStatus("Reloading…")
		return tea.Batch(m.startLoading(), m.loadMenusCmd(true))
	case key.Matches(msg, m.keys.AddChild):
		if item, ok := m.selectedItem(); ok {
			m.openDialog(dialogAddChild, item, "")
		} else if _, ok := m.currentMenu(); ok {
			m.openDialog(dialogAddRoot, domain.MenuItem{}, "")
		}
	case key.Matches(msg, m.keys.AddRoot):
		if _, ok := m.currentMenu(); ok {
			m.openDialog(dialogAddRoot, domain.MenuItem{}, "")
		}
	case key.Matches(msg, m.keys.Rename):
		if item, ok := m.selectedItem(); ok {
			m.openDialog(dialogRename, item, item.Name)
		}
	case key.Matches(msg, m.keys.Delete):
		if item, ok := m.selectedItem(); ok {
			m.openDialog(dialogDelete, item, "")
		}
	case key.Matches(msg, m.keys.Mark):
		m.toggleMark()
	case key.Matches(msg, m.keys.Paste):
		return m.pasteMarked(false)
	case key.Matches(msg, m.keys.PasteTop):
		return m.pasteMarked(true)
	case key.Matches(msg, m.keys.CopyID):
		if item, ok := m.selectedItem(); ok {
			m.copyToClipboard(item.ID)
		}
	case key.Matches(msg, m.keys.CopyPath):
		if crumbs := m.Breadcrumb(); len(crumbs) > 0 {
			m.copyToClipboard(joinBreadcrumb(crumbs))
		}
	}
	return nil
}

func (m *App) handleMenusLoaded(msg menusLoadedMsg) tea.Cmd {
	if msg.err != nil {
		m.loading = false
		m.setError(msg.err)
		return nil
	}
	previous, hadMenu := m.currentMenu()
	m.menus = msg.menus
	if len(m.menus) == 0 {
		m.loading = false
		m.menuIdx = 0
		m.forest = nil
		m.rows = nil
		m.state = treeview.ForMenu("")
		m.setStatus("No menus yet. Run `menutree seed` to load the demo data.")
		m.refreshDetail()
		return nil
	}

	want := m.initialMenu
	if hadMenu {
		want = previous.ID
	}
	m.menuIdx = 0
	for i, menu := range m.menus {
		if menu.ID == want {
			m.menuIdx = i
			break
		}
	}
	menu, _ := m.currentMenu()
	keep := msg.keepState && hadMenu && menu.ID == previous.ID
	return m.loadTreeCmd(menu.ID, !keep, m.state.Selected())
}

func (m *App) handleTreeLoaded(msg treeLoadedMsg) {
	m.loading = false
	if msg.err != nil {
		m.setError(msg.err)
		return
	}
	menu, ok := m.currentMenu()
	if !ok || msg.tree.Menu.ID != menu.ID {
		// A late answer for a menu the user already switched away from.
		m.loading = ok
		return
	}
	m.menus[m.menuIdx] = msg.tree.Menu
	f := msg.tree.Forest
	m.forest = f

	if msg.fresh {
		m.state = treeview.Reduce(m.state, f, treeview.SwitchMenuAction{MenuID: menu.ID})
		m.state = treeview.Reduce(m.state, f, treeview.AutoExpandAction{MaxDepth: m.autoExpandDepth})
		m.groupCollapsed = false
	} else {
		m.state = m.state.Prune(f)
	}
	if msg.selectID != "" && f.Contains(msg.selectID) {
		m.groupCollapsed = false
		m.state = m.state.Reveal(f, msg.selectID)
		m.state = treeview.Reduce(m.state, f, treeview.SelectAction{ID: msg.selectID})
	}
	if m.marked != nil && !m.markStillKnown() {
		m.marked = nil
	}
	if m.status == "Reloading…" {
		m.setStatus("")
	}
	m.recalcRows()
	debug.Logf("menu %s: %d items, %d expanded", menu.ID, f.Len(), m.state.ExpandedCount())
}

// markStillKnown keeps a mark from another menu; it only drops marks that
// vanished from the menu they were made in.
func (m *App) markStillKnown() bool {
	if m.marked.MenuID != m.state.MenuID() {
		return true
	}
	return m.forest.Contains(m.marked.ID)
}

func (m *App) handleMutationDone(msg mutationDoneMsg) tea.Cmd {
	if msg.err != nil {
		m.loading = false
		m.setError(msg.err)
		return nil
	}
	m.setStatus(fmt.Sprintf("%s %q", msg.verb, msg.item.Name))
	if msg.verb == "Moved" {
		m.marked = nil
	}
	menu, ok := m.currentMenu()
	if !ok {
		m.loading = false
		return nil
	}
	selectID := msg.selectID
	if msg.verb == "Moved" && msg.item.MenuID != menu.ID {
		selectID = ""
	}
	return m.loadTreeCmd(menu.ID, false, selectID)
}

func (m *App) moveCursor(delta int) {
	last := len(m.rows)
	if m.groupCollapsed {
		last = 0
	}
	next := m.cursor + delta
	if next < 0 {
		next = 0
	}
	if next > last {
		next = last
	}
	m.cursor = next
	id := ""
	if item, ok := m.selectedItem(); ok {
		id = item.ID
	}
	m.apply(treeview.SelectAction{ID: id})
}

func (m *App) toggleCurrent() {
	if m.cursor == 0 {
		if _, ok := m.currentMenu(); ok {
			m.groupCollapsed = !m.groupCollapsed
			m.recalcRows()
		}
		return
	}
	if item, ok := m.selectedItem(); ok {
		m.apply(treeview.ToggleAction{ID: item.ID})
	}
}

// apply runs a view action and rebuilds the rows around the selection.
func (m *App) apply(a treeview.Action) {
	m.state = treeview.Reduce(m.state, m.forest, a)
	m.recalcRows()
}

func (m *App) switchMenu(delta int) tea.Cmd {
	if len(m.menus) < 2 {
		return nil
	}
	m.menuIdx = (m.menuIdx + delta + len(m.menus)) % len(m.menus)
	menu := m.menus[m.menuIdx]
	m.state = treeview.Reduce(m.state, m.forest, treeview.SwitchMenuAction{MenuID: menu.ID})
	m.forest = nil
	m.rows = nil
	m.cursor = 0
	m.offset = 0
	m.refreshDetail()
	return tea.Batch(m.startLoading(), m.loadTreeCmd(menu.ID, true, ""), m.saveLastMenuCmd(menu.ID))
}

func (m *App) toggleMark() {
	item, ok := m.selectedItem()
	if !ok {
		return
	}
	if m.marked != nil && m.marked.ID == item.ID {
		m.marked = nil
		m.setStatus("Move cancelled")
		return
	}
	marked := item
	m.marked = &marked
	m.setStatus(fmt.Sprintf("Marked %q. Press p on the new parent or P for the menu root.", item.Name))
}

// pasteMarked moves the marked item under the cursor, or to the root of the
// current menu when toRoot is set or the cursor is on the menu row.
func (m *App) pasteMarked(toRoot bool) tea.Cmd {
	if m.marked == nil {
		m.setStatus("Nothing marked. Press m on an item first.")
		return nil
	}
	menu, ok := m.currentMenu()
	if !ok {
		return nil
	}
	parentID, menuID := "", menu.ID
	if target, ok := m.selectedItem(); ok && !toRoot {
		parentID, menuID = target.ID, ""
	}
	return tea.Batch(m.startLoading(), m.moveItemCmd(m.marked.ID, parentID, menuID))
}

func (m *App) copyToClipboard(text string) {
	if err := m.copy(text); err != nil {
		m.setError(fmt.Errorf("copy failed: %w", err))
		return
	}
	m.setStatus(fmt.Sprintf("Copied '%s' to clipboard.", text))
}
