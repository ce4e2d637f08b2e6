// Package store persists menus and menu items in SQLite.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite" // Pure Go SQLite driver, WAL-friendly
)

// Store is the SQLite-backed flat item store. Reads go straight to the
// database; multi-row mutations run through WithTx.
type Store struct {
	queries
	db   *sql.DB
	path string
}

// Open opens (creating if needed) the database at path and migrates the
// schema to the latest version.
func Open(ctx context.Context, path string) (*Store, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil, unavailableError("database path is required", nil)
	}
	abs, err := filepath.Abs(trimmed)
	if err != nil {
		return nil, unavailableError("resolve database path", err)
	}

	db, err := sql.Open("sqlite", buildDSN(abs))
	if err != nil {
		return nil, unavailableError("open sqlite db", err)
	}
	// SQLite serialises writers; a single connection keeps pragmas and
	// transactions on the same handle.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, unavailableError("ping sqlite db", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, unavailableError("enable foreign keys", err)
	}
	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{queries: queries{q: db}, db: db, path: abs}, nil
}

// buildDSN creates a read-write WAL DSN for the given path.
func buildDSN(dbPath string) string {
	u := url.URL{
		Scheme: "file",
		Path:   filepath.ToSlash(dbPath),
	}
	q := url.Values{}
	q.Add("_pragma", "foreign_keys(1)")
	q.Add("_pragma", "busy_timeout(3000)")
	q.Add("_pragma", "journal_mode(WAL)")
	q.Set("_txlock", "immediate")
	u.RawQuery = q.Encode()
	return u.String()
}

// Path returns the absolute database path.
func (s *Store) Path() string {
	return s.path
}

// Ping checks that the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return unavailableError("ping sqlite db", err)
	}
	return nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Tx exposes the store queries inside a transaction.
type Tx struct {
	queries
}

// WithTx runs fn inside a single transaction. The transaction commits when fn
// returns nil and rolls back otherwise.
func (s *Store) WithTx(ctx context.Context, fn func(*Tx) error) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(&Tx{queries: queries{q: tx}}); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// queries holds every statement; it runs against either the database or a
// transaction.
type queries struct {
	q querier
}
