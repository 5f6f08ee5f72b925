// FILE: internal/apperr/apperr.go
package apperr

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// AppError is a typed, user-facing error. Every error that can reach a client
// carries a machine-readable code plus the field it relates to, so the mobile
// app can map it to a localized message.
type AppError struct {
	Code    string `json:"error_code"`
	Field   string `json:"field,omitempty"`
	Status  int    `json:"-"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Code
}

// Error codes surfaced to clients.
const (
	CodeNotFound            = "not_found"
	CodeUnauthorized        = "unauthorized"
	CodeActionNotAllowed    = "action_not_allowed"
	CodeValidation          = "validation_error"
	CodeInsufficientCredits = "insufficient_credits"
	CodeClassFull           = "class_full"
	CodeClassCancelled      = "class_cancelled"
	CodeClassCompleted      = "class_completed"
	CodeClassStarted        = "class_started"
	CodeTooLate             = "too_late"
	CodeTooEarly            = "too_early"
	CodeInvalidPrice        = "invalid_price"
	CodeInternal            = "internal_error"
)

func NotFound(field string) *AppError {
	return &AppError{Code: CodeNotFound, Field: field, Status: fiber.StatusNotFound, Message: field + " not found"}
}

func Unauthorized(message string) *AppError {
	return &AppError{Code: CodeUnauthorized, Status: fiber.StatusUnauthorized, Message: message}
}

func ActionNotAllowed(message string) *AppError {
	return &AppError{Code: CodeActionNotAllowed, Status: fiber.StatusConflict, Message: message}
}

func Validation(field, message string) *AppError {
	return &AppError{Code: CodeValidation, Field: field, Status: fiber.StatusBadRequest, Message: message}
}

func InsufficientCredits() *AppError {
	return &AppError{Code: CodeInsufficientCredits, Field: "credits", Status: fiber.StatusPaymentRequired, Message: "not enough credits"}
}

func ClassFull() *AppError {
	return &AppError{Code: CodeClassFull, Field: "class_instance", Status: fiber.StatusConflict, Message: "class is fully booked"}
}

func ClassCancelled() *AppError {
	return &AppError{Code: CodeClassCancelled, Field: "class_instance", Status: fiber.StatusConflict, Message: "class has been cancelled"}
}

func ClassCompleted() *AppError {
	return &AppError{Code: CodeClassCompleted, Field: "class_instance", Status: fiber.StatusConflict, Message: "class already took place"}
}

func ClassStarted() *AppError {
	return &AppError{Code: CodeClassStarted, Field: "class_instance", Status: fiber.StatusConflict, Message: "class has already started"}
}

func TooLate(message string) *AppError {
	return &AppError{Code: CodeTooLate, Field: "booking_window", Status: fiber.StatusConflict, Message: message}
}

func TooEarly(message string) *AppError {
	return &AppError{Code: CodeTooEarly, Field: "booking_window", Status: fiber.StatusConflict, Message: message}
}

func InvalidPrice() *AppError {
	return &AppError{Code: CodeInvalidPrice, Field: "price", Status: fiber.StatusConflict, Message: "class has no valid price"}
}

// CodeOf extracts the machine code from any error chain; unknown errors map to
// the internal code so raw messages never leak to clients.
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}

// Is reports whether err carries the given code.
func Is(err error, code string) bool {
	return CodeOf(err) == code
}
