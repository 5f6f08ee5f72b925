// FILE: internal/controller/booking_controller.go
package controller

import (
	"fitbook-be/internal/dto"
	"fitbook-be/internal/pkg/serverutils"
	"fitbook-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IBookingController interface {
	RegisterRoutes(r fiber.Router)
	Book(ctx *fiber.Ctx) error
	Cancel(ctx *fiber.Ctx) error
	CancelWithRefund(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Approve(ctx *fiber.Ctx) error
	Reject(ctx *fiber.Ctx) error
	Complete(ctx *fiber.Ctx) error
	NoShow(ctx *fiber.Ctx) error
}

type bookingController struct {
	bookingService service.IBookingService
}

func NewBookingController(bookingService service.IBookingService) IBookingController {
	return &bookingController{
		bookingService: bookingService,
	}
}

func (c *bookingController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/booking/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Book)
	h.Get("", c.List)
	h.Post(":id/cancel", c.Cancel)
	h.Post(":id/cancel-refund", c.CancelWithRefund)
	h.Post(":id/approve", c.Approve)
	h.Post(":id/reject", c.Reject)
	h.Post(":id/complete", c.Complete)
	h.Post(":id/no-show", c.NoShow)
}

func (c *bookingController) Book(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.BookClassRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.bookingService.BookClass(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success book class", res))
}

func (c *bookingController) Cancel(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	id, _ := uuid.Parse(ctx.Params("id"))

	res, err := c.bookingService.CancelBooking(ctx.Context(), userId, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success cancel booking", res))
}

func (c *bookingController) CancelWithRefund(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	id, _ := uuid.Parse(ctx.Params("id"))

	res, err := c.bookingService.CancelBookingWithRefund(ctx.Context(), userId, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success cancel booking", res))
}

func (c *bookingController) List(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.bookingService.ListMyBookings(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list bookings", res))
}

func (c *bookingController) Approve(ctx *fiber.Ctx) error {
	businessId, err := businessIdFromLocals(ctx)
	if err != nil {
		return err
	}
	id, _ := uuid.Parse(ctx.Params("id"))

	if err := c.bookingService.ApproveBooking(ctx.Context(), businessId, id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success approve booking", nil))
}

func (c *bookingController) Reject(ctx *fiber.Ctx) error {
	businessId, err := businessIdFromLocals(ctx)
	if err != nil {
		return err
	}
	id, _ := uuid.Parse(ctx.Params("id"))

	res, err := c.bookingService.RejectBookingWithRefund(ctx.Context(), businessId, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success reject booking", res))
}

func (c *bookingController) Complete(ctx *fiber.Ctx) error {
	businessId, err := businessIdFromLocals(ctx)
	if err != nil {
		return err
	}
	id, _ := uuid.Parse(ctx.Params("id"))

	if err := c.bookingService.CompleteBooking(ctx.Context(), businessId, id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success complete booking", nil))
}

func (c *bookingController) NoShow(ctx *fiber.Ctx) error {
	businessId, err := businessIdFromLocals(ctx)
	if err != nil {
		return err
	}
	id, _ := uuid.Parse(ctx.Params("id"))

	if err := c.bookingService.MarkNoShow(ctx.Context(), businessId, id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success mark no-show", nil))
}
