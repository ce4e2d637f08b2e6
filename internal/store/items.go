package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"menutree/internal/depth"
	"menutree/internal/domain"
)

const itemColumns = `id, name, menu_id, COALESCE(parent_id, ''), depth, created_at, updated_at`

// ListItems returns the flat items of one menu in insertion order.
func (q queries) ListItems(ctx context.Context, menuID string) ([]domain.MenuItem, error) {
	return q.listItems(ctx, `SELECT `+itemColumns+` FROM menu_items WHERE menu_id = ? ORDER BY rowid`, menuID)
}

// ListAllItems returns every item of every menu in insertion order.
func (q queries) ListAllItems(ctx context.Context) ([]domain.MenuItem, error) {
	return q.listItems(ctx, `SELECT `+itemColumns+` FROM menu_items ORDER BY rowid`)
}

func (q queries) listItems(ctx context.Context, query string, args ...any) ([]domain.MenuItem, error) {
	rows, err := q.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query menu items: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	items := []domain.MenuItem{}
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// GetItem loads a single item.
func (q queries) GetItem(ctx context.Context, id string) (domain.MenuItem, error) {
	row := q.q.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM menu_items WHERE id = ?`, id)
	it, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.MenuItem{}, notFoundError("menu item", id)
	}
	return it, err
}

// InsertItem stores a new item. Depth must already be computed.
func (q queries) InsertItem(ctx context.Context, it domain.MenuItem) error {
	_, err := q.q.ExecContext(ctx,
		`INSERT INTO menu_items (id, name, menu_id, parent_id, depth, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		it.ID, it.Name, it.MenuID, nullable(it.ParentID), it.Depth,
		formatTime(it.CreatedAt), formatTime(it.UpdatedAt))
	if err != nil {
		return fmt.Errorf("insert menu item: %w", err)
	}
	return nil
}

// RenameItem changes an item's display name.
func (q queries) RenameItem(ctx context.Context, id, name string, at time.Time) error {
	res, err := q.q.ExecContext(ctx,
		`UPDATE menu_items SET name = ?, updated_at = ? WHERE id = ?`, name, formatTime(at), id)
	if err != nil {
		return fmt.Errorf("rename menu item: %w", err)
	}
	return expectAffected(res, "menu item", id)
}

// DeleteItem removes an item; its descendants go with it through the
// foreign key.
func (q queries) DeleteItem(ctx context.Context, id string) error {
	res, err := q.q.ExecContext(ctx, `DELETE FROM menu_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete menu item: %w", err)
	}
	return expectAffected(res, "menu item", id)
}

// ApplyPlacements writes the parent, menu and depth of every row in a move
// plan. Call it inside WithTx so the whole subtree moves at once.
func (q queries) ApplyPlacements(ctx context.Context, updates []depth.Update, at time.Time) error {
	stamp := formatTime(at)
	for _, u := range updates {
		res, err := q.q.ExecContext(ctx,
			`UPDATE menu_items SET parent_id = ?, menu_id = ?, depth = ?, updated_at = ? WHERE id = ?`,
			nullable(u.ParentID), u.MenuID, u.Depth, stamp, u.ID)
		if err != nil {
			return fmt.Errorf("update placement of %s: %w", u.ID, err)
		}
		if err := expectAffected(res, "menu item", u.ID); err != nil {
			return err
		}
	}
	return nil
}

func scanItem(row rowScanner) (domain.MenuItem, error) {
	var (
		it                   domain.MenuItem
		createdAt, updatedAt string
	)
	if err := row.Scan(&it.ID, &it.Name, &it.MenuID, &it.ParentID, &it.Depth, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.MenuItem{}, err
		}
		return domain.MenuItem{}, fmt.Errorf("scan menu item: %w", err)
	}
	it.CreatedAt = parseTime(createdAt)
	it.UpdatedAt = parseTime(updatedAt)
	return it, nil
}
