package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"menutree/internal/domain"
)

const menuColumns = `id, name, COALESCE(description, ''), created_at, updated_at`

// ListMenus returns menus in creation order. A non-empty search keeps only
// menus whose name contains it, case-insensitively.
func (q queries) ListMenus(ctx context.Context, search string) ([]domain.Menu, error) {
	query := `SELECT ` + menuColumns + ` FROM menus`
	var args []any
	if term := strings.TrimSpace(search); term != "" {
		query += ` WHERE name LIKE ? ESCAPE '\'`
		args = append(args, "%"+escapeLike(term)+"%")
	}
	query += ` ORDER BY created_at, rowid`

	rows, err := q.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query menus: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	menus := []domain.Menu{}
	for rows.Next() {
		m, err := scanMenu(rows)
		if err != nil {
			return nil, err
		}
		menus = append(menus, m)
	}
	return menus, rows.Err()
}

// GetMenu loads a single menu.
func (q queries) GetMenu(ctx context.Context, id string) (domain.Menu, error) {
	row := q.q.QueryRowContext(ctx, `SELECT `+menuColumns+` FROM menus WHERE id = ?`, id)
	m, err := scanMenu(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Menu{}, notFoundError("menu", id)
	}
	return m, err
}

// InsertMenu stores a new menu.
func (q queries) InsertMenu(ctx context.Context, m domain.Menu) error {
	_, err := q.q.ExecContext(ctx,
		`INSERT INTO menus (id, name, description, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		m.ID, m.Name, nullable(m.Description), formatTime(m.CreatedAt), formatTime(m.UpdatedAt))
	if err != nil {
		return fmt.Errorf("insert menu: %w", err)
	}
	return nil
}

// UpdateMenu rewrites a menu's name and description.
func (q queries) UpdateMenu(ctx context.Context, m domain.Menu) error {
	res, err := q.q.ExecContext(ctx,
		`UPDATE menus SET name = ?, description = ?, updated_at = ? WHERE id = ?`,
		m.Name, nullable(m.Description), formatTime(m.UpdatedAt), m.ID)
	if err != nil {
		return fmt.Errorf("update menu: %w", err)
	}
	return expectAffected(res, "menu", m.ID)
}

// DeleteMenu removes a menu; its items go with it through the foreign key.
func (q queries) DeleteMenu(ctx context.Context, id string) error {
	res, err := q.q.ExecContext(ctx, `DELETE FROM menus WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete menu: %w", err)
	}
	return expectAffected(res, "menu", id)
}

// MenuStats returns item counts for every menu in creation order.
func (q queries) MenuStats(ctx context.Context) ([]domain.MenuStats, error) {
	rows, err := q.q.QueryContext(ctx, `
		SELECT m.id, m.name, COALESCE(m.description, ''), m.created_at, m.updated_at,
		       COUNT(i.id),
		       COALESCE(SUM(CASE WHEN i.id IS NOT NULL AND i.parent_id IS NULL THEN 1 ELSE 0 END), 0),
		       COALESCE(MAX(i.depth), 0)
		FROM menus m
		LEFT JOIN menu_items i ON i.menu_id = m.id
		GROUP BY m.id
		ORDER BY m.created_at, m.rowid
	`)
	if err != nil {
		return nil, fmt.Errorf("query menu stats: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	stats := []domain.MenuStats{}
	for rows.Next() {
		var (
			st                   domain.MenuStats
			createdAt, updatedAt string
		)
		if err := rows.Scan(
			&st.Menu.ID, &st.Menu.Name, &st.Menu.Description, &createdAt, &updatedAt,
			&st.TotalItems, &st.RootItems, &st.MaxDepth,
		); err != nil {
			return nil, fmt.Errorf("scan menu stats: %w", err)
		}
		st.Menu.CreatedAt = parseTime(createdAt)
		st.Menu.UpdatedAt = parseTime(updatedAt)
		stats = append(stats, st)
	}
	return stats, rows.Err()
}

// DeleteAll removes every menu and item.
func (q queries) DeleteAll(ctx context.Context) error {
	if _, err := q.q.ExecContext(ctx, `DELETE FROM menu_items`); err != nil {
		return fmt.Errorf("delete items: %w", err)
	}
	if _, err := q.q.ExecContext(ctx, `DELETE FROM menus`); err != nil {
		return fmt.Errorf("delete menus: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMenu(row rowScanner) (domain.Menu, error) {
	var (
		m                    domain.Menu
		createdAt, updatedAt string
	)
	if err := row.Scan(&m.ID, &m.Name, &m.Description, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Menu{}, err
		}
		return domain.Menu{}, fmt.Errorf("scan menu: %w", err)
	}
	m.CreatedAt = parseTime(createdAt)
	m.UpdatedAt = parseTime(updatedAt)
	return m, nil
}

func expectAffected(res sql.Result, kind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return notFoundError(kind, id)
	}
	return nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// timeLayout is fixed-width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(v string) time.Time {
	ts, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(v))
	if err != nil {
		return time.Time{}
	}
	return ts.UTC()
}
