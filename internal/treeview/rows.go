package treeview

import (
	"menutree/internal/domain"
	"menutree/internal/graph"
)

// Row is one visible line of the tree.
type Row struct {
	Item       domain.MenuItem
	Level      int
	Prefix     string // box-drawing prefix, e.g. "├── ", "│   └── "
	Expandable bool
	Expanded   bool
}

// Rows flattens the visible part of the forest. Children are listed only
// below expanded nodes.
func Rows(f *graph.Forest, s State) []Row {
	if f == nil {
		return nil
	}
	var rows []Row
	var visit func(i, level int, parentPrefix string, last bool)
	visit = func(i, level int, parentPrefix string, last bool) {
		item := f.Item(i)
		children := f.Children(i)

		prefix := ""
		if level > 0 {
			if last {
				prefix = parentPrefix + "└── "
			} else {
				prefix = parentPrefix + "├── "
			}
		}
		expanded := len(children) > 0 && s.IsExpanded(item.ID)
		rows = append(rows, Row{
			Item:       item,
			Level:      level,
			Prefix:     prefix,
			Expandable: len(children) > 0,
			Expanded:   expanded,
		})
		if !expanded {
			return
		}

		childPrefix := parentPrefix
		if level > 0 {
			if last {
				childPrefix += "    "
			} else {
				childPrefix += "│   "
			}
		}
		for k, c := range children {
			visit(c, level+1, childPrefix, k == len(children)-1)
		}
	}
	roots := f.Roots()
	for k, r := range roots {
		visit(r, 0, "", k == len(roots)-1)
	}
	return rows
}

// IndexOf returns the row position of the item, or -1.
func IndexOf(rows []Row, id string) int {
	for i, r := range rows {
		if r.Item.ID == id {
			return i
		}
	}
	return -1
}
