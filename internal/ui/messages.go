package ui

import (
	"context"

	"menutree/internal/client"
	"menutree/internal/debug"
	"menutree/internal/domain"

	tea "github.com/charmbracelet/bubbletea"
)

type menusLoadedMsg struct {
	menus []domain.Menu
	// keepState reloads the current menu without resetting its view state.
	keepState bool
	err       error
}

type treeLoadedMsg struct {
	tree client.MenuTree
	// fresh applies the auto-expand policy instead of pruning the old state.
	fresh    bool
	selectID string
	err      error
}

// mutationDoneMsg reports a finished create, rename, move or delete.
type mutationDoneMsg struct {
	verb     string
	item     domain.MenuItem
	selectID string
	err      error
}

func (m *App) callContext() (context.Context, context.CancelFunc) {
	if m.timeout > 0 {
		return context.WithTimeout(context.Background(), m.timeout)
	}
	return context.WithCancel(context.Background())
}

func (m *App) loadMenusCmd(keepState bool) tea.Cmd {
	c := m.client
	ctx, cancel := m.callContext()
	return func() tea.Msg {
		defer cancel()
		menus, err := c.ListMenus(ctx, "")
		debug.Logf("list menus: %d menus, err=%v", len(menus), err)
		return menusLoadedMsg{menus: menus, keepState: keepState, err: err}
	}
}

func (m *App) loadTreeCmd(menuID string, fresh bool, selectID string) tea.Cmd {
	c := m.client
	ctx, cancel := m.callContext()
	return func() tea.Msg {
		defer cancel()
		tree, err := c.GetMenuTree(ctx, menuID)
		debug.Logf("load menu %s: err=%v", menuID, err)
		return treeLoadedMsg{tree: tree, fresh: fresh, selectID: selectID, err: err}
	}
}

func (m *App) createItemCmd(name, menuID, parentID string) tea.Cmd {
	c := m.client
	ctx, cancel := m.callContext()
	return func() tea.Msg {
		defer cancel()
		item, err := c.CreateItem(ctx, name, menuID, parentID)
		return mutationDoneMsg{verb: "Created", item: item, selectID: item.ID, err: err}
	}
}

func (m *App) renameItemCmd(id, name string) tea.Cmd {
	c := m.client
	ctx, cancel := m.callContext()
	return func() tea.Msg {
		defer cancel()
		item, err := c.RenameItem(ctx, id, name)
		return mutationDoneMsg{verb: "Renamed", item: item, selectID: item.ID, err: err}
	}
}

func (m *App) moveItemCmd(id, newParentID, newMenuID string) tea.Cmd {
	c := m.client
	ctx, cancel := m.callContext()
	return func() tea.Msg {
		defer cancel()
		item, err := c.MoveItem(ctx, id, newParentID, newMenuID)
		debug.Logf("move %s under %q in %q: err=%v", id, newParentID, newMenuID, err)
		return mutationDoneMsg{verb: "Moved", item: item, selectID: item.ID, err: err}
	}
}

func (m *App) deleteItemCmd(item domain.MenuItem, selectAfter string) tea.Cmd {
	c := m.client
	ctx, cancel := m.callContext()
	return func() tea.Msg {
		defer cancel()
		err := c.DeleteItem(ctx, item.ID)
		return mutationDoneMsg{verb: "Deleted", item: item, selectID: selectAfter, err: err}
	}
}

func (m *App) saveLastMenuCmd(menuID string) tea.Cmd {
	save := m.saveLastMenu
	if save == nil || menuID == "" {
		return nil
	}
	return func() tea.Msg {
		if err := save(menuID); err != nil {
			debug.Logf("save last menu: %v", err)
		}
		return nil
	}
}
