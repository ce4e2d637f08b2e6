package treeview

import (
	"testing"
)

func TestRowsCollapsedShowsRootsOnly(t *testing.T) {
	rows := Rows(sampleForest(), ForMenu("m"))
	if len(rows) != 2 {
		t.Fatalf("expected 2 root rows, got %d", len(rows))
	}
	if !rows[0].Expandable || rows[0].Expanded {
		t.Fatalf("expected r1 expandable and collapsed: %+v", rows[0])
	}
	if rows[1].Expandable {
		t.Fatalf("expected r2 to be a leaf")
	}
}

func TestRowsPrefixes(t *testing.T) {
	f := sampleForest()
	rows := Rows(f, ForMenu("m").ExpandAll(f))

	want := []struct {
		id     string
		prefix string
		level  int
	}{
		{"r1", "", 0},
		{"c1", "├── ", 1},
		{"g1", "│   └── ", 2},
		{"c2", "└── ", 1},
		{"r2", "", 0},
	}
	if len(rows) != len(want) {
		t.Fatalf("expected %d rows, got %d", len(want), len(rows))
	}
	for i, w := range want {
		if rows[i].Item.ID != w.id || rows[i].Prefix != w.prefix || rows[i].Level != w.level {
			t.Fatalf("row %d: expected %s %q level %d, got %s %q level %d",
				i, w.id, w.prefix, w.level, rows[i].Item.ID, rows[i].Prefix, rows[i].Level)
		}
	}
	if IndexOf(rows, "c2") != 3 || IndexOf(rows, "missing") != -1 {
		t.Fatalf("IndexOf returned unexpected positions")
	}
}

func TestRowsNilForest(t *testing.T) {
	if rows := Rows(nil, ForMenu("")); rows != nil {
		t.Fatalf("expected no rows without a forest, got %v", rows)
	}
}
