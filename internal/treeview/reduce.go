package treeview

import "menutree/internal/graph"

// Action is a view state transition request.
type Action interface {
	isAction()
}

type (
	// ToggleAction flips one node.
	ToggleAction struct{ ID string }
	// ExpandAllAction expands every node.
	ExpandAllAction struct{}
	// CollapseAllAction collapses every node.
	CollapseAllAction struct{}
	// AutoExpandAction applies the initial-load policy.
	AutoExpandAction struct{ MaxDepth int }
	// SelectAction changes the selection; an empty ID clears it.
	SelectAction struct{ ID string }
	// SwitchMenuAction discards the state for a different menu.
	SwitchMenuAction struct{ MenuID string }
)

func (ToggleAction) isAction()      {}
func (ExpandAllAction) isAction()   {}
func (CollapseAllAction) isAction() {}
func (AutoExpandAction) isAction()  {}
func (SelectAction) isAction()      {}
func (SwitchMenuAction) isAction()  {}

// Reduce applies an action to a state over the given forest.
func Reduce(s State, f *graph.Forest, a Action) State {
	switch a := a.(type) {
	case ToggleAction:
		return s.Toggle(f, a.ID)
	case ExpandAllAction:
		return s.ExpandAll(f)
	case CollapseAllAction:
		return s.CollapseAll()
	case AutoExpandAction:
		return s.AutoExpand(f, a.MaxDepth)
	case SelectAction:
		return s.Select(a.ID)
	case SwitchMenuAction:
		if a.MenuID == s.menuID {
			return s
		}
		return ForMenu(a.MenuID)
	}
	return s
}
