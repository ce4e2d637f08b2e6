package store

import (
	"context"
	"database/sql"
	"fmt"
)

// migrations are applied in order; PRAGMA user_version records how many ran.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS menus (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		description TEXT,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS menu_items (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		menu_id    TEXT NOT NULL REFERENCES menus(id) ON DELETE CASCADE,
		parent_id  TEXT NULL REFERENCES menu_items(id) ON DELETE CASCADE,
		depth      INTEGER NOT NULL DEFAULT 0 CHECK (depth >= 0),
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_menu_items_menu_id ON menu_items(menu_id);
	CREATE INDEX IF NOT EXISTS idx_menu_items_parent_id ON menu_items(parent_id);`,
	`CREATE INDEX IF NOT EXISTS idx_menus_name ON menus(name COLLATE NOCASE);`,
}

// SchemaVersion is the version a freshly migrated database reports.
var SchemaVersion = len(migrations)

func migrate(ctx context.Context, db *sql.DB) error {
	var version int
	if err := db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return migrationError("read schema version", err)
	}
	if version > len(migrations) {
		return migrationError(fmt.Sprintf("database schema version %d is newer than supported %d", version, len(migrations)), nil)
	}
	for v := version; v < len(migrations); v++ {
		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return migrationError("begin migration", err)
		}
		if _, err := tx.ExecContext(ctx, migrations[v]); err != nil {
			_ = tx.Rollback()
			return migrationError(fmt.Sprintf("apply migration %d", v+1), err)
		}
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", v+1)); err != nil {
			_ = tx.Rollback()
			return migrationError(fmt.Sprintf("record migration %d", v+1), err)
		}
		if err := tx.Commit(); err != nil {
			return migrationError(fmt.Sprintf("commit migration %d", v+1), err)
		}
	}
	return nil
}

// Version returns the schema version recorded in the database.
func (s *Store) Version(ctx context.Context) (int, error) {
	var version int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return version, nil
}
