package store

import (
	"fmt"

	appErrors "menutree/internal/errors"
)

func notFoundError(kind, id string) error {
	return appErrors.New(appErrors.CodeNotFound, fmt.Sprintf("%s %s not found", kind, id), nil)
}

func unavailableError(reason string, err error) error {
	msg := reason
	if err != nil {
		msg = fmt.Sprintf("%s: %v", reason, err)
	}
	return appErrors.New(appErrors.CodeStoreUnavailable, msg, err)
}

func migrationError(reason string, err error) error {
	return unavailableError("migrate schema: "+reason, err)
}
