package domain

import (
	"fmt"

	appErrors "menutree/internal/errors"
)

func invalidNameError(reason string) error {
	return appErrors.New(appErrors.CodeValidation, reason, nil)
}

func invalidIDError(kind, raw string) error {
	return appErrors.New(appErrors.CodeValidation, fmt.Sprintf("invalid %s id: %q", kind, raw), nil)
}
