package menus

import (
	"fmt"

	appErrors "menutree/internal/errors"
)

func parentNotFoundError(id string) error {
	return appErrors.New(appErrors.CodeNotFound, fmt.Sprintf("parent item %s not found", id), nil)
}

func parentMenuMismatchError(parentID, parentMenu, menuID string) error {
	return appErrors.New(appErrors.CodeMenuMismatch,
		fmt.Sprintf("parent %s belongs to menu %s, not %s", parentID, parentMenu, menuID), nil)
}
