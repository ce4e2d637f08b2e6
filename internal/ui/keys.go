package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard shortcuts for the application.
// Related bindings (Up/Down, NextMenu/PrevMenu) share help text since they
// appear as a single row in the help overlay.
type KeyMap struct {
	// Navigation
	Up       key.Binding
	Down     key.Binding
	Toggle   key.Binding
	NextMenu key.Binding
	PrevMenu key.Binding

	// Tree
	ExpandAll   key.Binding
	CollapseAll key.Binding

	// Editing
	AddChild key.Binding
	AddRoot  key.Binding
	Rename   key.Binding
	Mark     key.Binding
	Paste    key.Binding
	PasteTop key.Binding
	Delete   key.Binding

	// Actions
	CopyID    key.Binding
	CopyPath  key.Binding
	Reload    key.Binding
	Help      key.Binding
	Quit      key.Binding
	Confirm   key.Binding
	Cancel    key.Binding
	ConfirmYN key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/↓  j/k", "Move up/down"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↑/↓  j/k", "Move up/down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("enter", " ", "space"),
			key.WithHelp("⏎/Space", "Toggle expand"),
		),
		NextMenu: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("⇥/⇧⇥", "Switch menu"),
		),
		PrevMenu: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("⇥/⇧⇥", "Switch menu"),
		),

		ExpandAll: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "Expand all"),
		),
		CollapseAll: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Collapse all"),
		),

		AddChild: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Add child"),
		),
		AddRoot: key.NewBinding(
			key.WithKeys("A"),
			key.WithHelp("A", "Add root item"),
		),
		Rename: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Rename"),
		),
		Mark: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "Mark for move"),
		),
		Paste: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "Move marked here"),
		),
		PasteTop: key.NewBinding(
			key.WithKeys("P"),
			key.WithHelp("P", "Move marked to root"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "Delete subtree"),
		),

		CopyID: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "Copy ID"),
		),
		CopyPath: key.NewBinding(
			key.WithKeys("Y"),
			key.WithHelp("Y", "Copy breadcrumb"),
		),
		Reload: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "Reload"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "Quit"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("⏎", "Confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "Cancel"),
		),
		ConfirmYN: key.NewBinding(
			key.WithKeys("y", "Y", "enter"),
			key.WithHelp("y", "Yes"),
		),
	}
}

// ShortHelp implements help.KeyMap for the footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Toggle, k.NextMenu, k.AddChild, k.Mark, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap for the help overlay. Each inner slice is a
// column.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Toggle, k.ExpandAll, k.CollapseAll, k.NextMenu},
		{k.AddChild, k.AddRoot, k.Rename, k.Delete},
		{k.Mark, k.Paste, k.PasteTop},
		{k.CopyID, k.CopyPath, k.Reload, k.Help, k.Quit},
	}
}
