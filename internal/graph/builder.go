package graph

import "menutree/internal/domain"

const noParent = -1

// Node is one item inside a Forest. Parent and Children are indices into the
// forest's node arena.
type Node struct {
	Item     domain.MenuItem
	Parent   int
	Children []int
}

// Forest is the hierarchical view of a flat item collection. Nodes live in a
// single arena slice and reference each other by index.
type Forest struct {
	nodes []Node
	roots []int
	index map[string]int
}

// Builder constructs forests from flat menu items.
type Builder struct{}

// NewBuilder creates a new Builder instance.
func NewBuilder() *Builder {
	return &Builder{}
}

// Build links items into a forest in two passes: index every item, then attach
// each one to its parent or to the root list. Input order is preserved for
// roots and for every child list. Items with an empty or unknown parent become
// roots. Duplicate ids keep their first occurrence.
func (Builder) Build(items []domain.MenuItem) *Forest {
	f := &Forest{
		nodes: make([]Node, 0, len(items)),
		index: make(map[string]int, len(items)),
	}
	for _, item := range items {
		if _, dup := f.index[item.ID]; dup {
			continue
		}
		f.index[item.ID] = len(f.nodes)
		f.nodes = append(f.nodes, Node{Item: item, Parent: noParent})
	}

	for i := range f.nodes {
		parentID := f.nodes[i].Item.ParentID
		if parentID == "" {
			f.roots = append(f.roots, i)
			continue
		}
		p, ok := f.index[parentID]
		if !ok || p == i {
			f.roots = append(f.roots, i)
			continue
		}
		f.nodes[i].Parent = p
		f.nodes[p].Children = append(f.nodes[p].Children, i)
	}

	f.promoteUnreachable()
	return f
}

// Build is shorthand for NewBuilder().Build(items).
func Build(items []domain.MenuItem) *Forest {
	return NewBuilder().Build(items)
}

// promoteUnreachable breaks parent-pointer cycles. Their members cannot be
// reached from any root, so for each cycle the member that came first in the
// input is detached from its parent and appended to the roots.
func (f *Forest) promoteUnreachable() {
	reached := make([]bool, len(f.nodes))
	total := 0
	for _, r := range f.roots {
		total += f.mark(r, reached)
	}
	if total == len(f.nodes) {
		return
	}
	for i := range f.nodes {
		if reached[i] {
			continue
		}
		head := f.cycleHead(i)
		f.detach(head)
		f.roots = append(f.roots, head)
		f.mark(head, reached)
	}
}

// cycleHead follows parent links from an unreachable node until it loops and
// returns the lowest-indexed member of that loop.
func (f *Forest) cycleHead(start int) int {
	seen := make(map[int]struct{})
	j := start
	for {
		if _, ok := seen[j]; ok {
			break
		}
		seen[j] = struct{}{}
		j = f.nodes[j].Parent
	}
	head := j
	for k := f.nodes[j].Parent; k != j; k = f.nodes[k].Parent {
		if k < head {
			head = k
		}
	}
	return head
}

func (f *Forest) detach(i int) {
	p := f.nodes[i].Parent
	if p == noParent {
		return
	}
	siblings := f.nodes[p].Children
	for k, c := range siblings {
		if c == i {
			f.nodes[p].Children = append(siblings[:k:k], siblings[k+1:]...)
			break
		}
	}
	f.nodes[i].Parent = noParent
}

func (f *Forest) mark(start int, reached []bool) int {
	count := 0
	stack := []int{start}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if reached[i] {
			continue
		}
		reached[i] = true
		count++
		stack = append(stack, f.nodes[i].Children...)
	}
	return count
}
