package domain

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	// RootDepth is the depth assigned to items without a parent.
	RootDepth = 0
	// MaxNameLength bounds menu and item names, counted in runes.
	MaxNameLength = 255
)

// Menu groups an independent forest of items.
type Menu struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// MenuItem is the flat, persisted form of a node. ParentID is empty for roots.
//
// Business rules enforced elsewhere (depth package, store):
//   - Depth is RootDepth for roots and parent.Depth+1 otherwise.
//   - A parent always lives in the same menu as its children.
type MenuItem struct {
	ID        string
	Name      string
	MenuID    string
	ParentID  string
	Depth     int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsRoot reports whether the item has no parent.
func (i MenuItem) IsRoot() bool {
	return i.ParentID == ""
}

// MenuStats summarises a menu's items.
type MenuStats struct {
	Menu       Menu
	TotalItems int
	RootItems  int
	MaxDepth   int
}

// NormalizeName trims the name and enforces the length bounds.
func NormalizeName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", invalidNameError("name is required")
	}
	if utf8.RuneCountInString(trimmed) > MaxNameLength {
		return "", invalidNameError("name must be at most 255 characters")
	}
	return trimmed, nil
}

// ParseID validates a UUID identifier and returns its canonical form.
// kind names the identifier in error messages ("menu", "parent", ...).
func ParseID(kind, raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", invalidIDError(kind, raw)
	}
	id, err := uuid.Parse(trimmed)
	if err != nil {
		return "", invalidIDError(kind, raw)
	}
	return id.String(), nil
}

// NewID returns a fresh random identifier.
func NewID() string {
	return uuid.NewString()
}
