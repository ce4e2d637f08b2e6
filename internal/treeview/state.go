// Package treeview holds the client-side expand/collapse and selection state
// for one menu's forest. State is a value: every transition returns a new
// State and leaves the receiver untouched.
package treeview

import (
	"sort"

	"menutree/internal/graph"
)

// DefaultAutoExpandDepth is the deepest level expanded on initial load.
const DefaultAutoExpandDepth = 5

// State is the view state of one menu.
type State struct {
	menuID   string
	expanded map[string]struct{}
	selected string
}

// ForMenu returns a collapsed state with no selection for the given menu.
func ForMenu(menuID string) State {
	return State{menuID: menuID}
}

// MenuID returns the menu this state belongs to.
func (s State) MenuID() string { return s.menuID }

// Selected returns the selected item id, or "" when nothing is selected.
func (s State) Selected() string { return s.selected }

// IsExpanded reports whether the item's children are visible.
func (s State) IsExpanded(id string) bool {
	_, ok := s.expanded[id]
	return ok
}

// ExpandedCount returns the size of the expanded set.
func (s State) ExpandedCount() int { return len(s.expanded) }

// Expanded returns the expanded ids in sorted order.
func (s State) Expanded() []string {
	out := make([]string, 0, len(s.expanded))
	for id := range s.expanded {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func (s State) withExpanded(set map[string]struct{}) State {
	s.expanded = set
	return s
}

func (s State) copyExpanded() map[string]struct{} {
	out := make(map[string]struct{}, len(s.expanded)+1)
	for id := range s.expanded {
		out[id] = struct{}{}
	}
	return out
}

// Toggle flips the expansion of a node. Unknown nodes and leaves are ignored.
func (s State) Toggle(f *graph.Forest, id string) State {
	if !f.HasChildren(id) {
		return s
	}
	next := s.copyExpanded()
	if _, ok := next[id]; ok {
		delete(next, id)
	} else {
		next[id] = struct{}{}
	}
	return s.withExpanded(next)
}

// Expand marks the given ids as expanded without toggling.
func (s State) Expand(ids ...string) State {
	if len(ids) == 0 {
		return s
	}
	next := s.copyExpanded()
	for _, id := range ids {
		next[id] = struct{}{}
	}
	return s.withExpanded(next)
}

// ExpandAll expands every node of the forest. Without a loaded forest it is a
// no-op.
func (s State) ExpandAll(f *graph.Forest) State {
	if f == nil {
		return s
	}
	next := make(map[string]struct{}, f.Len())
	f.Walk(func(i, _ int) bool {
		next[f.Item(i).ID] = struct{}{}
		return true
	})
	return s.withExpanded(next)
}

// CollapseAll empties the expanded set.
func (s State) CollapseAll() State {
	return s.withExpanded(nil)
}

// AutoExpand replaces the expanded set with every node whose stored depth is
// at most maxDepth.
func (s State) AutoExpand(f *graph.Forest, maxDepth int) State {
	if f == nil {
		return s
	}
	next := make(map[string]struct{})
	f.Walk(func(i, _ int) bool {
		if it := f.Item(i); it.Depth <= maxDepth {
			next[it.ID] = struct{}{}
		}
		return true
	})
	return s.withExpanded(next)
}

// Select sets the selected item. An empty id clears the selection. Selecting
// never expands ancestors; use Reveal for that.
func (s State) Select(id string) State {
	s.selected = id
	return s
}

// Reveal expands every ancestor of id so that the node becomes visible.
func (s State) Reveal(f *graph.Forest, id string) State {
	path, err := f.Path(id)
	if err != nil || len(path) < 2 {
		return s
	}
	ids := make([]string, 0, len(path)-1)
	for _, it := range path[:len(path)-1] {
		ids = append(ids, it.ID)
	}
	return s.Expand(ids...)
}

// Prune drops expanded and selected ids that are no longer part of the
// forest, e.g. after a refresh removed or moved items away.
func (s State) Prune(f *graph.Forest) State {
	next := make(map[string]struct{}, len(s.expanded))
	for id := range s.expanded {
		if f.Contains(id) {
			next[id] = struct{}{}
		}
	}
	s.expanded = next
	if s.selected != "" && !f.Contains(s.selected) {
		s.selected = ""
	}
	return s
}
