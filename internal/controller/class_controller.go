// FILE: internal/controller/class_controller.go
package controller

import (
	"time"

	"fitbook-be/internal/dto"
	"fitbook-be/internal/entity"
	"fitbook-be/internal/pkg/serverutils"
	"fitbook-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IClassController interface {
	RegisterRoutes(r fiber.Router)
	CreateTemplate(ctx *fiber.Ctx) error
	CreateInstance(ctx *fiber.Ctx) error
	ListVenues(ctx *fiber.Ctx) error
	UpdateInstance(ctx *fiber.Ctx) error
	DeleteInstance(ctx *fiber.Ctx) error
	ListInstances(ctx *fiber.Ctx) error
}

type classController struct {
	classService    service.IClassService
	instanceService service.IClassInstanceService
}

func NewClassController(classService service.IClassService, instanceService service.IClassInstanceService) IClassController {
	return &classController{
		classService:    classService,
		instanceService: instanceService,
	}
}

func (c *classController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/class/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("venues", c.ListVenues)
	h.Post("templates", c.CreateTemplate)
	h.Post("instances", c.CreateInstance)
	h.Get("instances", c.ListInstances)
	h.Put("instances/:id", c.UpdateInstance)
	h.Delete("instances/:id", c.DeleteInstance)
}

func (c *classController) ListVenues(ctx *fiber.Ctx) error {
	businessId, err := businessIdFromLocals(ctx)
	if err != nil {
		return err
	}

	res, err := c.classService.ListVenues(ctx.Context(), businessId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list venues", res))
}

func (c *classController) CreateTemplate(ctx *fiber.Ctx) error {
	businessId, err := businessIdFromLocals(ctx)
	if err != nil {
		return err
	}

	var req dto.CreateClassTemplateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	template := &entity.ClassTemplate{
		VenueId:          req.VenueId,
		Name:             req.Name,
		Description:      req.Description,
		BasePrice:        req.BasePrice,
		DurationMinutes:  req.DurationMinutes,
		RequiresApproval: req.RequiresApproval,
		DiscountRules:    req.DiscountRules,
	}

	res, err := c.classService.CreateTemplate(ctx.Context(), businessId, template)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create class template", res))
}

func (c *classController) CreateInstance(ctx *fiber.Ctx) error {
	businessId, err := businessIdFromLocals(ctx)
	if err != nil {
		return err
	}

	var req dto.CreateClassInstanceRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.classService.CreateInstance(ctx.Context(), businessId, req.TemplateId, req.StartTime, req.EndTime, req.Capacity)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create class instance", res))
}

func (c *classController) UpdateInstance(ctx *fiber.Ctx) error {
	businessId, err := businessIdFromLocals(ctx)
	if err != nil {
		return err
	}

	id, _ := uuid.Parse(ctx.Params("id"))

	var req dto.UpdateClassInstanceRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.instanceService.UpdateInstance(ctx.Context(), businessId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update class instance", res))
}

func (c *classController) DeleteInstance(ctx *fiber.Ctx) error {
	businessId, err := businessIdFromLocals(ctx)
	if err != nil {
		return err
	}

	id, _ := uuid.Parse(ctx.Params("id"))

	if err := c.instanceService.DeleteInstance(ctx.Context(), businessId, id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success delete class instance", nil))
}

func (c *classController) ListInstances(ctx *fiber.Ctx) error {
	businessId, err := businessIdFromLocals(ctx)
	if err != nil {
		return err
	}

	from := time.Now()
	if fromParam := ctx.Query("from"); fromParam != "" {
		if parsed, err := time.Parse(time.RFC3339, fromParam); err == nil {
			from = parsed
		}
	}

	res, err := c.instanceService.ListInstances(ctx.Context(), businessId, from)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list class instances", res))
}
