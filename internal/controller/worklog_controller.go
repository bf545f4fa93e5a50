package controller

import (
	"github.com/Fusion-Mind-co/worklog-system/internal/dto"
	"github.com/Fusion-Mind-co/worklog-system/internal/pkg/serverutils"
	"github.com/Fusion-Mind-co/worklog-system/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IWorklogController interface {
	RegisterRoutes(r fiber.Router)
	SaveDaily(ctx *fiber.Ctx) error
	GetDaily(ctx *fiber.Ctx) error
	UnitOptions(ctx *fiber.Ctx) error
}

type worklogController struct {
	service service.IWorklogService
}

func NewWorklogController(service service.IWorklogService) IWorklogController {
	return &worklogController{service: service}
}

func (c *worklogController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/worklog")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.SaveDaily)
	h.Get("", c.GetDaily)
	h.Get("/options", c.UnitOptions)
}

func (c *worklogController) SaveDaily(ctx *fiber.Ctx) error {
	var req dto.SaveWorklogRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.SaveDaily(ctx.Context(), currentUserId(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *worklogController) GetDaily(ctx *fiber.Ctx) error {
	res, err := c.service.GetDaily(ctx.Context(), currentUserId(ctx), ctx.Query("date"))
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *worklogController) UnitOptions(ctx *fiber.Ctx) error {
	res, err := c.service.UnitOptions(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}
