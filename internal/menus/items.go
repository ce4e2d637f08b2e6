package menus

import (
	"context"

	"menutree/internal/depth"
	"menutree/internal/domain"
	appErrors "menutree/internal/errors"
	"menutree/internal/graph"
	"menutree/internal/store"
)

// CreateItemInput describes a new item. An empty ParentID creates a root.
type CreateItemInput struct {
	Name     string
	MenuID   string
	ParentID string
}

// MoveItemInput describes a reparenting. An empty NewParentID moves the item
// to the root of the target menu; an empty NewMenuID keeps the menu implied by
// the new parent, or the item's current menu.
type MoveItemInput struct {
	ItemID      string
	NewParentID string
	NewMenuID   string
}

// GetItem loads a flat item.
func (s *Service) GetItem(ctx context.Context, id string) (domain.MenuItem, error) {
	return s.store.GetItem(ctx, id)
}

// ItemPath returns the ancestor chain of an item, root first.
func (s *Service) ItemPath(ctx context.Context, id string) ([]domain.MenuItem, error) {
	var path []domain.MenuItem
	err := s.store.WithTx(ctx, func(tx *store.Tx) error {
		item, err := tx.GetItem(ctx, id)
		if err != nil {
			return err
		}
		items, err := tx.ListItems(ctx, item.MenuID)
		if err != nil {
			return err
		}
		path, err = graph.Build(items).Path(id)
		return err
	})
	return path, err
}

// CreateItem inserts an item with a depth derived from its parent. The menu
// and parent lookups and the insert share one transaction.
func (s *Service) CreateItem(ctx context.Context, in CreateItemInput) (item domain.MenuItem, err error) {
	defer func() { s.record("create_item", err) }()

	name, err := domain.NormalizeName(in.Name)
	if err != nil {
		return domain.MenuItem{}, err
	}

	err = s.store.WithTx(ctx, func(tx *store.Tx) error {
		if _, err := tx.GetMenu(ctx, in.MenuID); err != nil {
			return err
		}
		var parent *domain.MenuItem
		if in.ParentID != "" {
			p, err := tx.GetItem(ctx, in.ParentID)
			if err != nil {
				return parentLookupError(err, in.ParentID)
			}
			if p.MenuID != in.MenuID {
				return parentMenuMismatchError(p.ID, p.MenuID, in.MenuID)
			}
			parent = &p
		}

		now := s.now()
		item = domain.MenuItem{
			ID:        s.newID(),
			Name:      name,
			MenuID:    in.MenuID,
			ParentID:  in.ParentID,
			Depth:     depth.ForCreate(parent),
			CreatedAt: now,
			UpdatedAt: now,
		}
		return tx.InsertItem(ctx, item)
	})
	if err != nil {
		return domain.MenuItem{}, err
	}
	return item, nil
}

// MoveItem reparents an item, possibly into another menu, and shifts the
// depth of its whole subtree. Lookups, the cycle check and every row update
// run in one transaction; a failure leaves the store untouched.
func (s *Service) MoveItem(ctx context.Context, in MoveItemInput) (moved domain.MenuItem, err error) {
	defer func() { s.record("move_item", err) }()

	err = s.store.WithTx(ctx, func(tx *store.Tx) error {
		item, err := tx.GetItem(ctx, in.ItemID)
		if err != nil {
			return err
		}
		if in.NewMenuID != "" {
			if _, err := tx.GetMenu(ctx, in.NewMenuID); err != nil {
				return err
			}
		}

		var parent *domain.MenuItem
		if in.NewParentID != "" {
			p, err := tx.GetItem(ctx, in.NewParentID)
			if err != nil {
				return parentLookupError(err, in.NewParentID)
			}
			parent = &p
		}

		target, err := depth.ResolveTargetMenu(item, parent, in.NewMenuID)
		if err != nil {
			return err
		}
		if target != item.MenuID && target != in.NewMenuID {
			if _, err := tx.GetMenu(ctx, target); err != nil {
				return err
			}
		}

		siblings, err := tx.ListItems(ctx, item.MenuID)
		if err != nil {
			return err
		}
		plan, err := depth.PlanMove(depth.MoveInput{
			Item:      item,
			NewParent: parent,
			NewMenuID: target,
			Siblings:  siblings,
		})
		if err != nil {
			return err
		}
		if err := tx.ApplyPlacements(ctx, plan.Updates, s.now()); err != nil {
			return err
		}
		moved, err = tx.GetItem(ctx, item.ID)
		return err
	})
	if err != nil {
		return domain.MenuItem{}, err
	}
	return moved, nil
}

// RenameItem changes an item's name.
func (s *Service) RenameItem(ctx context.Context, id, name string) (item domain.MenuItem, err error) {
	defer func() { s.record("rename_item", err) }()

	normalized, err := domain.NormalizeName(name)
	if err != nil {
		return domain.MenuItem{}, err
	}
	err = s.store.WithTx(ctx, func(tx *store.Tx) error {
		if err := tx.RenameItem(ctx, id, normalized, s.now()); err != nil {
			return err
		}
		item, err = tx.GetItem(ctx, id)
		return err
	})
	return item, err
}

// DeleteItem removes an item together with its subtree.
func (s *Service) DeleteItem(ctx context.Context, id string) (err error) {
	defer func() { s.record("delete_item", err) }()
	return s.store.DeleteItem(ctx, id)
}

// Verify runs the integrity check over every stored item.
func (s *Service) Verify(ctx context.Context) ([]graph.Problem, error) {
	items, err := s.store.ListAllItems(ctx)
	if err != nil {
		return nil, err
	}
	return graph.Check(items), nil
}

// AllItems returns every stored item.
func (s *Service) AllItems(ctx context.Context) ([]domain.MenuItem, error) {
	return s.store.ListAllItems(ctx)
}

// Reset deletes every menu and item.
func (s *Service) Reset(ctx context.Context) (err error) {
	defer func() { s.record("reset", err) }()
	return s.store.WithTx(ctx, func(tx *store.Tx) error {
		return tx.DeleteAll(ctx)
	})
}

func parentLookupError(err error, id string) error {
	if appErrors.IsCode(err, appErrors.CodeNotFound) {
		return parentNotFoundError(id)
	}
	return err
}
