package store

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"menutree/internal/depth"
	"menutree/internal/domain"
	appErrors "menutree/internal/errors"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "menutree.db"))
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	t.Cleanup(func() {
		_ = s.Close()
	})
	return s
}

var baseTime = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

func mustInsertMenu(t *testing.T, s *Store, id, name string, offset time.Duration) domain.Menu {
	t.Helper()
	m := domain.Menu{ID: id, Name: name, CreatedAt: baseTime.Add(offset), UpdatedAt: baseTime.Add(offset)}
	if err := s.InsertMenu(context.Background(), m); err != nil {
		t.Fatalf("InsertMenu(%s) returned error: %v", id, err)
	}
	return m
}

func mustInsertItem(t *testing.T, s *Store, id, menu, parent string, d int) domain.MenuItem {
	t.Helper()
	it := domain.MenuItem{ID: id, Name: "item " + id, MenuID: menu, ParentID: parent, Depth: d, CreatedAt: baseTime, UpdatedAt: baseTime}
	if err := s.InsertItem(context.Background(), it); err != nil {
		t.Fatalf("InsertItem(%s) returned error: %v", id, err)
	}
	return it
}

func TestOpenMigratesSchema(t *testing.T) {
	s := openTestStore(t)
	version, err := s.Version(context.Background())
	if err != nil {
		t.Fatalf("Version returned error: %v", err)
	}
	if version != SchemaVersion {
		t.Fatalf("expected schema version %d, got %d", SchemaVersion, version)
	}

	// Reopening an up-to-date database is a no-op.
	again, err := Open(context.Background(), s.Path())
	if err != nil {
		t.Fatalf("reopen returned error: %v", err)
	}
	_ = again.Close()
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open(context.Background(), "  ")
	if !appErrors.IsCode(err, appErrors.CodeStoreUnavailable) {
		t.Fatalf("expected store_unavailable, got %v", err)
	}
}

func TestMenuCRUD(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	mustInsertMenu(t, s, "m1", "System Management", 0)
	mustInsertMenu(t, s, "m2", "Test Menu 1", time.Minute)
	mustInsertMenu(t, s, "m3", "100%_off", 2*time.Minute)

	all, err := s.ListMenus(ctx, "")
	if err != nil {
		t.Fatalf("ListMenus returned error: %v", err)
	}
	if len(all) != 3 || all[0].ID != "m1" || all[2].ID != "m3" {
		t.Fatalf("expected menus in creation order, got %+v", all)
	}
	if !all[0].CreatedAt.Equal(baseTime) {
		t.Fatalf("expected created_at round trip, got %v", all[0].CreatedAt)
	}

	found, err := s.ListMenus(ctx, "test")
	if err != nil {
		t.Fatalf("ListMenus(search) returned error: %v", err)
	}
	if len(found) != 1 || found[0].ID != "m2" {
		t.Fatalf("expected case-insensitive match on m2, got %+v", found)
	}
	literal, _ := s.ListMenus(ctx, "%_")
	if len(literal) != 1 || literal[0].ID != "m3" {
		t.Fatalf("expected wildcard characters matched literally, got %+v", literal)
	}

	m := all[1]
	m.Name = "Renamed"
	m.Description = "docs"
	if err := s.UpdateMenu(ctx, m); err != nil {
		t.Fatalf("UpdateMenu returned error: %v", err)
	}
	got, err := s.GetMenu(ctx, "m2")
	if err != nil {
		t.Fatalf("GetMenu returned error: %v", err)
	}
	if got.Name != "Renamed" || got.Description != "docs" {
		t.Fatalf("unexpected menu after update: %+v", got)
	}

	if err := s.DeleteMenu(ctx, "m2"); err != nil {
		t.Fatalf("DeleteMenu returned error: %v", err)
	}
	if _, err := s.GetMenu(ctx, "m2"); !appErrors.IsCode(err, appErrors.CodeNotFound) {
		t.Fatalf("expected not_found after delete, got %v", err)
	}
	if err := s.DeleteMenu(ctx, "m2"); !appErrors.IsCode(err, appErrors.CodeNotFound) {
		t.Fatalf("expected not_found deleting twice, got %v", err)
	}
	if err := s.UpdateMenu(ctx, domain.Menu{ID: "nope", Name: "x"}); !appErrors.IsCode(err, appErrors.CodeNotFound) {
		t.Fatalf("expected not_found updating missing menu, got %v", err)
	}
}

func TestItemsAndCascade(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	mustInsertMenu(t, s, "m1", "Main", 0)
	mustInsertItem(t, s, "r1", "m1", "", 0)
	mustInsertItem(t, s, "c1", "m1", "r1", 1)
	mustInsertItem(t, s, "g1", "m1", "c1", 2)
	mustInsertItem(t, s, "r2", "m1", "", 0)

	items, err := s.ListItems(ctx, "m1")
	if err != nil {
		t.Fatalf("ListItems returned error: %v", err)
	}
	if len(items) != 4 || items[0].ID != "r1" || items[3].ID != "r2" {
		t.Fatalf("expected insertion order, got %+v", items)
	}
	if items[0].ParentID != "" || items[1].ParentID != "r1" {
		t.Fatalf("expected parent ids to round trip, got %q/%q", items[0].ParentID, items[1].ParentID)
	}

	if err := s.RenameItem(ctx, "c1", "Users", baseTime.Add(time.Hour)); err != nil {
		t.Fatalf("RenameItem returned error: %v", err)
	}
	c1, err := s.GetItem(ctx, "c1")
	if err != nil {
		t.Fatalf("GetItem returned error: %v", err)
	}
	if c1.Name != "Users" || !c1.UpdatedAt.Equal(baseTime.Add(time.Hour)) {
		t.Fatalf("unexpected item after rename: %+v", c1)
	}

	if err := s.DeleteItem(ctx, "c1"); err != nil {
		t.Fatalf("DeleteItem returned error: %v", err)
	}
	if _, err := s.GetItem(ctx, "g1"); !appErrors.IsCode(err, appErrors.CodeNotFound) {
		t.Fatalf("expected subtree to be deleted with its root, got %v", err)
	}

	if err := s.DeleteMenu(ctx, "m1"); err != nil {
		t.Fatalf("DeleteMenu returned error: %v", err)
	}
	remaining, err := s.ListAllItems(ctx)
	if err != nil {
		t.Fatalf("ListAllItems returned error: %v", err)
	}
	if len(remaining) != 0 {
		t.Fatalf("expected items removed with their menu, got %+v", remaining)
	}
}

func TestForeignKeysEnforced(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	err := s.InsertItem(ctx, domain.MenuItem{ID: "x", Name: "x", MenuID: "missing", CreatedAt: baseTime, UpdatedAt: baseTime})
	if err == nil {
		t.Fatalf("expected insert into unknown menu to fail")
	}
	mustInsertMenu(t, s, "m1", "Main", 0)
	err = s.InsertItem(ctx, domain.MenuItem{ID: "y", Name: "y", MenuID: "m1", ParentID: "ghost", CreatedAt: baseTime, UpdatedAt: baseTime})
	if err == nil {
		t.Fatalf("expected insert under unknown parent to fail")
	}
}

func TestWithTxCommitsAndRollsBack(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	mustInsertMenu(t, s, "m1", "Main", 0)
	mustInsertItem(t, s, "r1", "m1", "", 0)
	mustInsertItem(t, s, "c1", "m1", "r1", 1)
	mustInsertItem(t, s, "r2", "m1", "", 0)

	boom := errors.New("boom")
	err := s.WithTx(ctx, func(tx *Tx) error {
		if err := tx.ApplyPlacements(ctx, []depth.Update{{ID: "c1", ParentID: "r2", MenuID: "m1", Depth: 1}}, baseTime); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	c1, _ := s.GetItem(ctx, "c1")
	if c1.ParentID != "r1" {
		t.Fatalf("expected rollback to keep parent r1, got %q", c1.ParentID)
	}

	err = s.WithTx(ctx, func(tx *Tx) error {
		return tx.ApplyPlacements(ctx, []depth.Update{{ID: "c1", ParentID: "r2", MenuID: "m1", Depth: 1}}, baseTime)
	})
	if err != nil {
		t.Fatalf("WithTx returned error: %v", err)
	}
	c1, _ = s.GetItem(ctx, "c1")
	if c1.ParentID != "r2" {
		t.Fatalf("expected commit to set parent r2, got %q", c1.ParentID)
	}

	err = s.WithTx(ctx, func(tx *Tx) error {
		return tx.ApplyPlacements(ctx, []depth.Update{{ID: "ghost", MenuID: "m1"}}, baseTime)
	})
	if !appErrors.IsCode(err, appErrors.CodeNotFound) {
		t.Fatalf("expected not_found for unknown placement, got %v", err)
	}
}

func TestMenuStats(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	mustInsertMenu(t, s, "m1", "Main", 0)
	mustInsertMenu(t, s, "m2", "Empty Menu", time.Minute)
	mustInsertItem(t, s, "r1", "m1", "", 0)
	mustInsertItem(t, s, "c1", "m1", "r1", 1)
	mustInsertItem(t, s, "g1", "m1", "c1", 2)
	mustInsertItem(t, s, "r2", "m1", "", 0)

	stats, err := s.MenuStats(ctx)
	if err != nil {
		t.Fatalf("MenuStats returned error: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("expected 2 stats rows, got %d", len(stats))
	}
	if st := stats[0]; st.TotalItems != 4 || st.RootItems != 2 || st.MaxDepth != 2 {
		t.Fatalf("unexpected stats for m1: %+v", st)
	}
	if st := stats[1]; st.Menu.ID != "m2" || st.TotalItems != 0 || st.RootItems != 0 || st.MaxDepth != 0 {
		t.Fatalf("unexpected stats for empty menu: %+v", st)
	}

	if err := s.DeleteAll(ctx); err != nil {
		t.Fatalf("DeleteAll returned error: %v", err)
	}
	menus, _ := s.ListMenus(ctx, "")
	if len(menus) != 0 {
		t.Fatalf("expected no menus after DeleteAll")
	}
}

func TestBuildDSN(t *testing.T) {
	dsn := buildDSN("/tmp/menus.db")
	for _, want := range []string{"file:///tmp/menus.db?", "_pragma=foreign_keys%281%29", "_txlock=immediate"} {
		if !strings.Contains(dsn, want) {
			t.Fatalf("expected DSN %q to contain %q", dsn, want)
		}
	}
}
