package wire

import (
	"fmt"
	"reflect"
	"strings"

	appErrors "menutree/internal/errors"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateStruct checks a request against its validation tags and returns a
// validation error listing every failing field.
func ValidateStruct(s any) error {
	if err := validate.Struct(s); err != nil {
		return formatValidationError(err)
	}
	return nil
}

func formatValidationError(err error) error {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return appErrors.New(appErrors.CodeValidation, err.Error(), err)
	}
	msgs := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		msgs = append(msgs, formatFieldError(e))
	}
	return appErrors.New(appErrors.CodeValidation, strings.Join(msgs, "; "), err)
}

func formatFieldError(e validator.FieldError) string {
	field := e.Field()

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, e.Param())
	case "uuid":
		return fmt.Sprintf("%s must be a UUID", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
