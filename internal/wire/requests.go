package wire

// MenuRequest creates or updates a menu.
type MenuRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description,omitempty" validate:"max=2000"`
}

// CreateItemRequest creates an item. A missing or null parent_id creates a root.
type CreateItemRequest struct {
	Name     string  `json:"name" validate:"required,max=255"`
	MenuID   string  `json:"menu_id" validate:"required,uuid"`
	ParentID *string `json:"parent_id,omitempty" validate:"omitempty,uuid"`
}

// MoveItemRequest reparents an item. Both fields are optional; with neither
// set the item becomes a root of its current menu.
type MoveItemRequest struct {
	NewParentID *string `json:"newParentId,omitempty" validate:"omitempty,uuid"`
	NewMenuID   *string `json:"newMenuId,omitempty" validate:"omitempty,uuid"`
}

// RenameItemRequest renames an item.
type RenameItemRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

// Deref returns the pointed-to string, or "" for nil.
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Ref returns a pointer to s, or nil when s is empty.
func Ref(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
