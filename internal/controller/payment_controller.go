// FILE: internal/controller/payment_controller.go
package controller

import (
	"fitbook-be/internal/dto"
	"fitbook-be/internal/pkg/serverutils"
	"fitbook-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IPaymentController interface {
	RegisterRoutes(r fiber.Router)
	CreatePurchase(ctx *fiber.Ctx) error
	CancelPurchase(ctx *fiber.Ctx) error
	Subscription(ctx *fiber.Ctx) error
	Webhook(ctx *fiber.Ctx) error
}

type paymentController struct {
	paymentService service.IPaymentService
}

func NewPaymentController(paymentService service.IPaymentService) IPaymentController {
	return &paymentController{
		paymentService: paymentService,
	}
}

func (c *paymentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/payment/v1")
	// Webhook is authenticated by its signature, not a user token.
	h.Post("webhook", c.Webhook)

	protected := h.Group("")
	protected.Use(serverutils.JwtMiddleware)
	protected.Post("purchase", c.CreatePurchase)
	protected.Post("purchase/:id/cancel", c.CancelPurchase)
	protected.Get("subscription", c.Subscription)
}

func (c *paymentController) Subscription(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.paymentService.SubscriptionStatus(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get subscription", res))
}

func (c *paymentController) CreatePurchase(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.CreateCreditPurchaseRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.paymentService.CreateCreditPurchase(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create credit purchase", res))
}

func (c *paymentController) CancelPurchase(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	id, _ := uuid.Parse(ctx.Params("id"))

	if err := c.paymentService.CancelCreditPurchase(ctx.Context(), userId, id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success cancel credit purchase", nil))
}

func (c *paymentController) Webhook(ctx *fiber.Ctx) error {
	signature := ctx.Get("Stripe-Signature")
	payload := ctx.Body()

	if err := c.paymentService.HandleWebhook(ctx.Context(), payload, signature); err != nil {
		return err
	}

	return ctx.SendStatus(fiber.StatusOK)
}
