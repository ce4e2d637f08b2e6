package graph

import "menutree/internal/domain"

// Len returns the number of nodes in the forest.
func (f *Forest) Len() int {
	if f == nil {
		return 0
	}
	return len(f.nodes)
}

// Roots returns root node indices in display order. Callers must not modify it.
func (f *Forest) Roots() []int {
	if f == nil {
		return nil
	}
	return f.roots
}

// Node returns the node stored at index i.
func (f *Forest) Node(i int) Node {
	return f.nodes[i]
}

// Item returns the item stored at index i.
func (f *Forest) Item(i int) domain.MenuItem {
	return f.nodes[i].Item
}

// Children returns child indices of node i in display order.
func (f *Forest) Children(i int) []int {
	return f.nodes[i].Children
}

// Parent returns the parent index of node i, or false for roots.
func (f *Forest) Parent(i int) (int, bool) {
	p := f.nodes[i].Parent
	return p, p != noParent
}

// Lookup resolves an item id to its node index.
func (f *Forest) Lookup(id string) (int, bool) {
	if f == nil {
		return 0, false
	}
	i, ok := f.index[id]
	return i, ok
}

// Contains reports whether the id is part of the forest.
func (f *Forest) Contains(id string) bool {
	_, ok := f.Lookup(id)
	return ok
}

// HasChildren reports whether the node with the given id has any children.
// Unknown ids report false.
func (f *Forest) HasChildren(id string) bool {
	i, ok := f.Lookup(id)
	if !ok {
		return false
	}
	return len(f.nodes[i].Children) > 0
}

// WalkFunc is called for every visited node with its tree level (0 for roots).
// Returning false skips the node's descendants.
type WalkFunc func(i, level int) bool

// Walk visits the forest in pre-order, roots first in display order.
func (f *Forest) Walk(fn WalkFunc) {
	if f == nil {
		return
	}
	var visit func(i, level int)
	visit = func(i, level int) {
		if !fn(i, level) {
			return
		}
		for _, c := range f.nodes[i].Children {
			visit(c, level+1)
		}
	}
	for _, r := range f.roots {
		visit(r, 0)
	}
}

// Items returns every item in pre-order.
func (f *Forest) Items() []domain.MenuItem {
	out := make([]domain.MenuItem, 0, f.Len())
	f.Walk(func(i, _ int) bool {
		out = append(out, f.nodes[i].Item)
		return true
	})
	return out
}

// IDs returns every item id in pre-order.
func (f *Forest) IDs() []string {
	out := make([]string, 0, f.Len())
	f.Walk(func(i, _ int) bool {
		out = append(out, f.nodes[i].Item.ID)
		return true
	})
	return out
}

// Descendants returns the ids below the given node in breadth-first order,
// excluding the node itself.
func (f *Forest) Descendants(id string) []string {
	start, ok := f.Lookup(id)
	if !ok {
		return nil
	}
	var out []string
	queue := append([]int(nil), f.nodes[start].Children...)
	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]
		out = append(out, f.nodes[i].Item.ID)
		queue = append(queue, f.nodes[i].Children...)
	}
	return out
}

// MaxLevel returns the deepest tree level, or -1 for an empty forest.
func (f *Forest) MaxLevel() int {
	deepest := -1
	f.Walk(func(_, level int) bool {
		if level > deepest {
			deepest = level
		}
		return true
	})
	return deepest
}
