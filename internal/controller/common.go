package controller

import (
	"fitbook-be/internal/apperr"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// businessIdFromLocals pulls the staff account's business id set by the JWT
// middleware. Member tokens don't carry one.
func businessIdFromLocals(ctx *fiber.Ctx) (uuid.UUID, error) {
	raw := ctx.Locals("business_id")
	idStr, ok := raw.(string)
	if !ok || idStr == "" {
		return uuid.Nil, apperr.Unauthorized("business account required")
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, apperr.Unauthorized("business account required")
	}
	return id, nil
}
