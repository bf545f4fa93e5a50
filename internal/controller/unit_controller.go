package controller

import (
	"github.com/Fusion-Mind-co/worklog-system/internal/dto"
	"github.com/Fusion-Mind-co/worklog-system/internal/pkg/serverutils"
	"github.com/Fusion-Mind-co/worklog-system/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IUnitController interface {
	RegisterRoutes(r fiber.Router)
	ListUnits(ctx *fiber.Ctx) error
	CreateUnit(ctx *fiber.Ctx) error
	UpdateUnit(ctx *fiber.Ctx) error
	DeleteUnit(ctx *fiber.Ctx) error
	ListWorkTypes(ctx *fiber.Ctx) error
	CreateWorkType(ctx *fiber.Ctx) error
	UpdateWorkType(ctx *fiber.Ctx) error
	DeleteWorkType(ctx *fiber.Ctx) error
}

type unitController struct {
	service service.IUnitService
}

func NewUnitController(service service.IUnitService) IUnitController {
	return &unitController{service: service}
}

func (c *unitController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin")
	h.Use(serverutils.JwtMiddleware)
	h.Use(serverutils.AdminMiddleware)
	h.Get("/unit-names", c.ListUnits)
	h.Post("/unit-names", c.CreateUnit)
	h.Put("/unit-names/:id", c.UpdateUnit)
	h.Delete("/unit-names/:id", c.DeleteUnit)
	h.Get("/work-types", c.ListWorkTypes)
	h.Post("/work-types", c.CreateWorkType)
	h.Put("/work-types/:id", c.UpdateWorkType)
	h.Delete("/work-types/:id", c.DeleteWorkType)
}

func (c *unitController) ListUnits(ctx *fiber.Ctx) error {
	res, err := c.service.ListUnits(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *unitController) CreateUnit(ctx *fiber.Ctx) error {
	var req dto.UnitNameRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.CreateUnit(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(res)
}

func (c *unitController) UpdateUnit(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.UnitNameRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.UpdateUnit(ctx.Context(), id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *unitController) DeleteUnit(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx, "id")
	if err != nil {
		return err
	}

	if err := c.service.DeleteUnit(ctx.Context(), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Unit deleted", nil))
}

func (c *unitController) ListWorkTypes(ctx *fiber.Ctx) error {
	res, err := c.service.ListWorkTypes(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *unitController) CreateWorkType(ctx *fiber.Ctx) error {
	var req dto.WorkTypeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.CreateWorkType(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(res)
}

func (c *unitController) UpdateWorkType(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.WorkTypeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.UpdateWorkType(ctx.Context(), id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *unitController) DeleteWorkType(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx, "id")
	if err != nil {
		return err
	}

	if err := c.service.DeleteWorkType(ctx.Context(), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Work type deleted", nil))
}
