// Package depth keeps stored item depths consistent with the tree when items
// are created or moved. Planning is pure; the store applies the resulting
// updates inside a single transaction.
package depth

import (
	"menutree/internal/domain"
)

// ForCreate returns the depth of a new item placed under parent. A nil parent
// means the item is a root.
func ForCreate(parent *domain.MenuItem) int {
	if parent == nil {
		return domain.RootDepth
	}
	return parent.Depth + 1
}

// ResolveTargetMenu decides which menu a moved item ends up in. An explicit
// request wins, then the new parent's menu, then the item's current menu. A
// parent in a menu other than the requested one is rejected.
func ResolveTargetMenu(item domain.MenuItem, newParent *domain.MenuItem, requested string) (string, error) {
	switch {
	case requested != "":
		if newParent != nil && newParent.MenuID != requested {
			return "", menuMismatchError(newParent.ID, newParent.MenuID, requested)
		}
		return requested, nil
	case newParent != nil:
		return newParent.MenuID, nil
	default:
		return item.MenuID, nil
	}
}

// MoveInput describes a requested move. Siblings holds the flat collection of
// the item's current menu and must include every descendant of Item.
type MoveInput struct {
	Item      domain.MenuItem
	NewParent *domain.MenuItem
	NewMenuID string
	Siblings  []domain.MenuItem
}

// Update is the new placement of one row. Only the moved item changes its
// ParentID; descendants keep their parent and get a new depth and menu.
type Update struct {
	ID       string
	ParentID string
	MenuID   string
	Depth    int
}

// Plan lists every row touched by a move. Updates[0] is the moved item and the
// rest follow in breadth-first order.
type Plan struct {
	Delta   int
	Updates []Update
}

// PlanMove computes the placement of the moved item and its subtree. Moving an
// item under itself or one of its descendants fails with a cyclic_move error
// and a parent outside the target menu fails with menu_mismatch.
func PlanMove(in MoveInput) (Plan, error) {
	target := in.NewMenuID
	if target == "" {
		target = in.Item.MenuID
	}
	if in.NewParent != nil {
		if in.NewParent.ID == in.Item.ID {
			return Plan{}, cyclicMoveError(in.Item.ID, in.NewParent.ID)
		}
		if in.NewParent.MenuID != target {
			return Plan{}, menuMismatchError(in.NewParent.ID, in.NewParent.MenuID, target)
		}
	}

	descendants := collectDescendants(in.Item.ID, in.Siblings)
	if in.NewParent != nil {
		for _, d := range descendants {
			if d.ID == in.NewParent.ID {
				return Plan{}, cyclicMoveError(in.Item.ID, in.NewParent.ID)
			}
		}
	}

	newDepth := ForCreate(in.NewParent)
	delta := newDepth - in.Item.Depth

	parentID := ""
	if in.NewParent != nil {
		parentID = in.NewParent.ID
	}

	updates := make([]Update, 0, len(descendants)+1)
	updates = append(updates, Update{
		ID:       in.Item.ID,
		ParentID: parentID,
		MenuID:   target,
		Depth:    newDepth,
	})
	for _, d := range descendants {
		updates = append(updates, Update{
			ID:       d.ID,
			ParentID: d.ParentID,
			MenuID:   target,
			Depth:    d.Depth + delta,
		})
	}
	return Plan{Delta: delta, Updates: updates}, nil
}

// collectDescendants walks the flat collection breadth-first from rootID.
// Rows already visited are skipped so corrupt cyclic data cannot loop forever.
func collectDescendants(rootID string, items []domain.MenuItem) []domain.MenuItem {
	byParent := make(map[string][]domain.MenuItem, len(items))
	for _, it := range items {
		if it.ParentID == "" {
			continue
		}
		byParent[it.ParentID] = append(byParent[it.ParentID], it)
	}

	visited := map[string]struct{}{rootID: {}}
	var out []domain.MenuItem
	queue := []string{rootID}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, child := range byParent[id] {
			if _, ok := visited[child.ID]; ok {
				continue
			}
			visited[child.ID] = struct{}{}
			out = append(out, child)
			queue = append(queue, child.ID)
		}
	}
	return out
}
