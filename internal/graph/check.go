package graph

import (
	"fmt"
	"strings"

	"menutree/internal/domain"
)

// ProblemKind classifies an integrity violation found by Check.
type ProblemKind string

const (
	ProblemDuplicateID   ProblemKind = "duplicate_id"
	ProblemOrphan        ProblemKind = "orphan"
	ProblemCycle         ProblemKind = "cycle"
	ProblemCrossMenu     ProblemKind = "cross_menu_parent"
	ProblemDepthMismatch ProblemKind = "depth_mismatch"
)

// Problem describes a single integrity violation.
type Problem struct {
	Kind   ProblemKind
	ItemID string
	Detail string
}

func (p Problem) String() string {
	return fmt.Sprintf("%s %s: %s", p.Kind, p.ItemID, p.Detail)
}

// Check inspects a flat item collection (one or many menus) and reports
// duplicate ids, dangling parents, parent cycles, parents in another menu and
// stored depths that disagree with the tree. Depths are not checked for items
// on or below a cycle or an orphan.
func Check(items []domain.MenuItem) []Problem {
	var problems []Problem

	index := make(map[string]int, len(items))
	for i, item := range items {
		if _, dup := index[item.ID]; dup {
			problems = append(problems, Problem{Kind: ProblemDuplicateID, ItemID: item.ID, Detail: "id appears more than once"})
			continue
		}
		index[item.ID] = i
	}

	parent := make([]int, len(items))
	orphan := make([]bool, len(items))
	for i, item := range items {
		parent[i] = noParent
		if item.ParentID == "" {
			continue
		}
		p, ok := index[item.ParentID]
		if !ok {
			orphan[i] = true
			problems = append(problems, Problem{
				Kind:   ProblemOrphan,
				ItemID: item.ID,
				Detail: fmt.Sprintf("parent %s does not exist", item.ParentID),
			})
			continue
		}
		parent[i] = p
		if items[p].MenuID != item.MenuID {
			problems = append(problems, Problem{
				Kind:   ProblemCrossMenu,
				ItemID: item.ID,
				Detail: fmt.Sprintf("parent %s belongs to menu %s, item to %s", item.ParentID, items[p].MenuID, item.MenuID),
			})
		}
	}

	const (
		unvisited = iota
		visiting
		done
	)
	state := make([]uint8, len(items))
	inCycle := make([]bool, len(items))
	for i := range items {
		var chain []int
		j := i
		for j != noParent && state[j] == unvisited {
			state[j] = visiting
			chain = append(chain, j)
			j = parent[j]
		}
		if j != noParent && state[j] == visiting {
			start := 0
			for k, c := range chain {
				if c == j {
					start = k
					break
				}
			}
			ids := make([]string, 0, len(chain)-start+1)
			for _, c := range chain[start:] {
				inCycle[c] = true
				ids = append(ids, items[c].ID)
			}
			ids = append(ids, items[j].ID)
			problems = append(problems, Problem{
				Kind:   ProblemCycle,
				ItemID: items[j].ID,
				Detail: strings.Join(ids, " -> "),
			})
		}
		for _, c := range chain {
			state[c] = done
		}
	}

	f := Build(items)
	tainted := make([]bool, f.Len())
	f.Walk(func(i, level int) bool {
		item := f.Item(i)
		src := index[item.ID]
		tainted[i] = inCycle[src] || orphan[src]
		if p, ok := f.Parent(i); ok && tainted[p] {
			tainted[i] = true
		}
		if tainted[i] {
			return true
		}
		if item.Depth != level {
			problems = append(problems, Problem{
				Kind:   ProblemDepthMismatch,
				ItemID: item.ID,
				Detail: fmt.Sprintf("stored depth %d, tree depth %d", item.Depth, level),
			})
		}
		return true
	})

	return problems
}

// DepthCounts returns how many items sit at each stored depth.
func DepthCounts(items []domain.MenuItem) map[int]int {
	out := make(map[int]int)
	for _, item := range items {
		out[item.Depth]++
	}
	return out
}
