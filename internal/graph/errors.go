package graph

import (
	"fmt"

	appErrors "menutree/internal/errors"
)

func nodeNotFoundError(id string) error {
	return appErrors.New(appErrors.CodeNotFound, fmt.Sprintf("item %s is not part of the tree", id), nil)
}
