// FILE: internal/pkg/serverutils/error_handler.go
package serverutils

import (
	"errors"

	"fitbook-be/internal/apperr"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware maps service errors onto HTTP responses. Typed
// errors carry their own status and code; anything else becomes an opaque
// 500 so internals never leak to a client.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var appErr *apperr.AppError
		if errors.As(err, &appErr) {
			return ctx.Status(appErr.Status).JSON(fiber.Map{
				"success":    false,
				"error_code": appErr.Code,
				"field":      appErr.Field,
				"message":    appErr.Message,
			})
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(fiber.Map{
				"success": false,
				"message": fiberErr.Message,
			})
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success":    false,
			"error_code": apperr.CodeInternal,
			"message":    "internal server error",
		})
	}
}
