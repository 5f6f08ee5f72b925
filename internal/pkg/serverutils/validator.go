package serverutils

import (
	"strings"

	"fitbook-be/internal/apperr"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest runs struct tag validation and maps the first failure to a
// client-facing validation error.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok || len(validationErrors) == 0 {
		return apperr.Validation("request", "invalid request body")
	}

	first := validationErrors[0]
	field := strings.ToLower(first.Field())
	return apperr.Validation(field, "failed on rule '"+first.Tag()+"'")
}
