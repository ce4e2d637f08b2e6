package menus

import (
	"context"
	"strings"

	"menutree/internal/domain"
	"menutree/internal/graph"
	"menutree/internal/store"
)

// MenuInput carries the editable fields of a menu.
type MenuInput struct {
	Name        string
	Description string
}

func (in MenuInput) normalize() (MenuInput, error) {
	name, err := domain.NormalizeName(in.Name)
	if err != nil {
		return MenuInput{}, err
	}
	return MenuInput{Name: name, Description: strings.TrimSpace(in.Description)}, nil
}

// ListMenus returns menus in creation order, optionally filtered by name.
func (s *Service) ListMenus(ctx context.Context, search string) ([]domain.Menu, error) {
	return s.store.ListMenus(ctx, search)
}

// MenuStats returns per-menu item counts.
func (s *Service) MenuStats(ctx context.Context) ([]domain.MenuStats, error) {
	return s.store.MenuStats(ctx)
}

// GetMenu loads a menu without its items.
func (s *Service) GetMenu(ctx context.Context, id string) (domain.Menu, error) {
	return s.store.GetMenu(ctx, id)
}

// GetMenuTree loads a menu and builds the forest of its items.
func (s *Service) GetMenuTree(ctx context.Context, id string) (MenuTree, error) {
	var tree MenuTree
	err := s.store.WithTx(ctx, func(tx *store.Tx) error {
		m, err := tx.GetMenu(ctx, id)
		if err != nil {
			return err
		}
		items, err := tx.ListItems(ctx, id)
		if err != nil {
			return err
		}
		tree = MenuTree{Menu: m, Forest: graph.Build(items)}
		return nil
	})
	return tree, err
}

// CreateMenu stores a new, empty menu.
func (s *Service) CreateMenu(ctx context.Context, in MenuInput) (m domain.Menu, err error) {
	defer func() { s.record("create_menu", err) }()

	in, err = in.normalize()
	if err != nil {
		return domain.Menu{}, err
	}
	now := s.now()
	m = domain.Menu{
		ID:          s.newID(),
		Name:        in.Name,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.InsertMenu(ctx, m); err != nil {
		return domain.Menu{}, err
	}
	return m, nil
}

// UpdateMenu renames a menu and replaces its description.
func (s *Service) UpdateMenu(ctx context.Context, id string, in MenuInput) (m domain.Menu, err error) {
	defer func() { s.record("update_menu", err) }()

	in, err = in.normalize()
	if err != nil {
		return domain.Menu{}, err
	}
	err = s.store.WithTx(ctx, func(tx *store.Tx) error {
		current, err := tx.GetMenu(ctx, id)
		if err != nil {
			return err
		}
		current.Name = in.Name
		current.Description = in.Description
		current.UpdatedAt = s.now()
		if err := tx.UpdateMenu(ctx, current); err != nil {
			return err
		}
		m = current
		return nil
	})
	return m, err
}

// DeleteMenu removes a menu with all of its items.
func (s *Service) DeleteMenu(ctx context.Context, id string) (err error) {
	defer func() { s.record("delete_menu", err) }()
	return s.store.DeleteMenu(ctx, id)
}
