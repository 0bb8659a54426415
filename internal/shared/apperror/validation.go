package apperror

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// FromValidation converts an ozzo-validation result into a validation
// error that carries every violated field, not just the first.
func FromValidation(err error) error {
	if err == nil {
		return nil
	}

	var ve validation.Errors
	if errors.As(err, &ve) {
		fields := make(map[string]string, len(ve))
		for field, fieldErr := range ve {
			fields[field] = fieldErr.Error()
		}
		return Validation("validation failed", fields)
	}

	return Validation(err.Error(), nil)
}
