// Package service contains the business services for the LinkStash catalog.
package service

import (
	"reflect"

	"github.com/go-playground/validator/v10"

	"github.com/linkstashapp/linkstash-server/internal/errors"
)

// validate is a shared validator instance for request validation.
var validate = func() *validator.Validate {
	v := validator.New()
	// Use JSON tag names for field names in error messages
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := fld.Tag.Get("json")
		if name == "" {
			return fld.Name
		}
		// Remove any options (like omitempty, -)
		for i := range len(name) {
			if name[i] == ',' {
				return name[:i]
			}
		}
		return name
	})
	return v
}()

// formatValidationError converts validator errors to user-friendly domain errors.
func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		// Return first validation error as a domain error
		for _, e := range validationErrs {
			field := e.Field()
			switch e.Tag() {
			case "required":
				return errors.Validationf("%s is required", field)
			case "email":
				return errors.Validationf("%s must be a valid email address", field)
			case "url":
				return errors.Validationf("%s must be a valid URL", field)
			case "min":
				return errors.Validationf("%s must be at least %s characters", field, e.Param())
			case "max":
				return errors.Validationf("%s exceeds maximum length of %s characters", field, e.Param())
			default:
				return errors.Validationf("%s is invalid", field)
			}
		}
	}
	return err
}

// storageError maps an unexpected store failure to the unavailable domain
// error. Sentinel store errors are handled by each caller before this.
func storageError(err error) error {
	return errors.Wrap(err, errors.CodeUnavailable, "storage unavailable")
}
