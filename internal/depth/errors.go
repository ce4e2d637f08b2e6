package depth

import (
	"fmt"

	appErrors "menutree/internal/errors"
)

func cyclicMoveError(itemID, parentID string) error {
	return appErrors.New(appErrors.CodeCyclicMove,
		fmt.Sprintf("cannot move item %s under %s: target is the item itself or one of its descendants", itemID, parentID), nil)
}

func menuMismatchError(parentID, parentMenu, targetMenu string) error {
	return appErrors.New(appErrors.CodeMenuMismatch,
		fmt.Sprintf("parent %s belongs to menu %s, not %s", parentID, parentMenu, targetMenu), nil)
}
