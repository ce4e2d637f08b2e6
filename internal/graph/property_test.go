package graph

import (
	"fmt"
	"testing"

	"menutree/internal/domain"

	"pgregory.net/rapid"
)

// arbitraryItems draws items whose parent pointers may be empty, dangling,
// self-referential or cyclic.
func arbitraryItems(t *rapid.T) []domain.MenuItem {
	n := rapid.IntRange(0, 40).Draw(t, "n")
	items := make([]domain.MenuItem, n)
	for i := range items {
		items[i] = domain.MenuItem{ID: fmt.Sprintf("n%d", i), MenuID: "m"}
	}
	for i := range items {
		switch rapid.IntRange(0, 3).Draw(t, fmt.Sprintf("kind%d", i)) {
		case 0:
		case 1:
			items[i].ParentID = "dangling"
		default:
			if n > 0 {
				items[i].ParentID = items[rapid.IntRange(0, n-1).Draw(t, fmt.Sprintf("parent%d", i))].ID
			}
		}
	}
	return items
}

// validForest draws an acyclic collection with depths consistent with the
// tree, listed in a shuffled order.
func validForest(t *rapid.T) []domain.MenuItem {
	n := rapid.IntRange(0, 40).Draw(t, "n")
	items := make([]domain.MenuItem, n)
	for i := range items {
		items[i] = domain.MenuItem{ID: fmt.Sprintf("n%d", i), MenuID: "m"}
		if i > 0 && rapid.Bool().Draw(t, fmt.Sprintf("hasParent%d", i)) {
			p := rapid.IntRange(0, i-1).Draw(t, fmt.Sprintf("parent%d", i))
			items[i].ParentID = items[p].ID
			items[i].Depth = items[p].Depth + 1
		}
	}
	return rapid.Permutation(items).Draw(t, "order")
}

func TestPropertyForestCompleteness(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		items := arbitraryItems(t)
		f := Build(items)

		if f.Len() != len(items) {
			t.Fatalf("expected %d nodes, got %d", len(items), f.Len())
		}
		seen := make(map[string]int, len(items))
		f.Walk(func(i, _ int) bool {
			seen[f.Item(i).ID]++
			return true
		})
		for _, it := range items {
			if seen[it.ID] != 1 {
				t.Fatalf("%s reachable %d times", it.ID, seen[it.ID])
			}
		}
		for _, r := range f.Roots() {
			it := f.Item(r)
			if it.ParentID != "" && f.Contains(it.ParentID) && it.ParentID != it.ID {
				// promoted cycle member: its parent must be one of its own descendants
				found := false
				for _, d := range f.Descendants(it.ID) {
					if d == it.ParentID {
						found = true
						break
					}
				}
				if !found {
					t.Fatalf("root %s has a reachable parent %s outside its subtree", it.ID, it.ParentID)
				}
			}
		}
	})
}

func TestPropertyRebuildIsIdempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		items := validForest(t)
		first := Build(items)
		second := Build(first.Items())

		a, b := first.IDs(), second.IDs()
		if len(a) != len(b) {
			t.Fatalf("rebuild changed size: %d vs %d", len(a), len(b))
		}
		for i := range a {
			if a[i] != b[i] {
				t.Fatalf("rebuild changed order at %d: %s vs %s", i, a[i], b[i])
			}
			x, _ := first.Lookup(a[i])
			y, _ := second.Lookup(b[i])
			if fmt.Sprint(idsOf(first, first.Children(x))) != fmt.Sprint(idsOf(second, second.Children(y))) {
				t.Fatalf("rebuild changed children of %s", a[i])
			}
		}
		if problems := Check(items); len(problems) != 0 {
			t.Fatalf("generated forest should be clean, got %v", problems)
		}
		first.Walk(func(i, level int) bool {
			if first.Item(i).Depth != level {
				t.Fatalf("depth of %s is %d, tree level %d", first.Item(i).ID, first.Item(i).Depth, level)
			}
			return true
		})
	})
}
