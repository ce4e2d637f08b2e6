package wire

import (
	"time"

	"menutree/internal/domain"
	"menutree/internal/graph"
)

// FormatTime renders t in TimeLayout.
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(TimeLayout)
}

// ParseTime reads a timestamp written by FormatTime or any RFC 3339 writer.
// Unparseable input yields the zero time.
func ParseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}

func FromMenu(m domain.Menu) Menu {
	return Menu{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		CreatedAt:   FormatTime(m.CreatedAt),
		UpdatedAt:   FormatTime(m.UpdatedAt),
	}
}

func FromMenus(ms []domain.Menu) []Menu {
	out := make([]Menu, 0, len(ms))
	for _, m := range ms {
		out = append(out, FromMenu(m))
	}
	return out
}

func (m Menu) ToDomain() domain.Menu {
	return domain.Menu{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		CreatedAt:   ParseTime(m.CreatedAt),
		UpdatedAt:   ParseTime(m.UpdatedAt),
	}
}

func FromItem(it domain.MenuItem) Item {
	return Item{
		ID:        it.ID,
		Name:      it.Name,
		ParentID:  Ref(it.ParentID),
		MenuID:    it.MenuID,
		Depth:     it.Depth,
		CreatedAt: FormatTime(it.CreatedAt),
		UpdatedAt: FormatTime(it.UpdatedAt),
	}
}

func FromItems(items []domain.MenuItem) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		out = append(out, FromItem(it))
	}
	return out
}

func (it Item) ToDomain() domain.MenuItem {
	return domain.MenuItem{
		ID:        it.ID,
		Name:      it.Name,
		MenuID:    it.MenuID,
		ParentID:  Deref(it.ParentID),
		Depth:     it.Depth,
		CreatedAt: ParseTime(it.CreatedAt),
		UpdatedAt: ParseTime(it.UpdatedAt),
	}
}

// FromForest nests the forest's items under their parents, keeping the
// forest's root and child order.
func FromForest(f *graph.Forest) []ItemNode {
	roots := f.Roots()
	out := make([]ItemNode, 0, len(roots))
	for _, r := range roots {
		out = append(out, nodeAt(f, r))
	}
	return out
}

func nodeAt(f *graph.Forest, i int) ItemNode {
	children := f.Children(i)
	n := ItemNode{
		Item:     FromItem(f.Item(i)),
		Children: make([]ItemNode, 0, len(children)),
	}
	for _, c := range children {
		n.Children = append(n.Children, nodeAt(f, c))
	}
	return n
}

// FromMenuTree builds the detail body for a menu and its forest.
func FromMenuTree(m domain.Menu, f *graph.Forest) MenuDetail {
	return MenuDetail{Menu: FromMenu(m), Items: FromForest(f)}
}

// Flatten lists nested nodes in pre-order. Building a forest from the result
// reproduces the nesting.
func Flatten(nodes []ItemNode) []domain.MenuItem {
	var out []domain.MenuItem
	var walk func([]ItemNode)
	walk = func(ns []ItemNode) {
		for _, n := range ns {
			out = append(out, n.Item.ToDomain())
			walk(n.Children)
		}
	}
	walk(nodes)
	return out
}

func FromStats(stats []domain.MenuStats) []MenuStats {
	out := make([]MenuStats, 0, len(stats))
	for _, s := range stats {
		out = append(out, MenuStats{
			Menu:       FromMenu(s.Menu),
			TotalItems: s.TotalItems,
			RootItems:  s.RootItems,
			MaxDepth:   s.MaxDepth,
		})
	}
	return out
}

func (s MenuStats) ToDomain() domain.MenuStats {
	return domain.MenuStats{
		Menu:       s.Menu.ToDomain(),
		TotalItems: s.TotalItems,
		RootItems:  s.RootItems,
		MaxDepth:   s.MaxDepth,
	}
}
