package controller

import (
	"github.com/Fusion-Mind-co/worklog-system/internal/dto"
	"github.com/Fusion-Mind-co/worklog-system/internal/pkg/serverutils"
	"github.com/Fusion-Mind-co/worklog-system/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IHistoryController interface {
	RegisterRoutes(r fiber.Router)
	GetHistory(ctx *fiber.Ctx) error
	FilterOptions(ctx *fiber.Ctx) error
	Add(ctx *fiber.Ctx) error
	Edit(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Cancel(ctx *fiber.Ctx) error
	CancelRejectedAdd(ctx *fiber.Ctx) error
	CancelRejectedDelete(ctx *fiber.Ctx) error
	Resubmit(ctx *fiber.Ctx) error
}

type historyController struct {
	service service.IHistoryService
}

func NewHistoryController(service service.IHistoryService) IHistoryController {
	return &historyController{service: service}
}

func (c *historyController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/history")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.GetHistory)
	h.Get("/filter-options", c.FilterOptions)
	h.Post("/add", c.Add)
	h.Post("/edit", c.Edit)
	h.Post("/delete", c.Delete)
	h.Post("/cancel", c.Cancel)
	h.Post("/cancel-rejected-add", c.CancelRejectedAdd)
	h.Post("/cancel-rejected-delete", c.CancelRejectedDelete)
	h.Post("/resubmit", c.Resubmit)
}

func (c *historyController) GetHistory(ctx *fiber.Ctx) error {
	query := dto.HistoryQuery{
		StartDate: ctx.Query("start_date"),
		EndDate:   ctx.Query("end_date"),
		Model:     ctx.Query("model"),
		WorkType:  ctx.Query("work_type"),
		UnitName:  ctx.Query("unit_name"),
		Status:    ctx.Query("status"),
		Page:      ctx.QueryInt("page", 1),
		PerPage:   ctx.QueryInt("per_page", 20),
		SortBy:    ctx.Query("sort_by"),
		SortOrder: ctx.Query("sort_order"),
	}

	res, err := c.service.GetHistory(ctx.Context(), currentUserId(ctx), query)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *historyController) FilterOptions(ctx *fiber.Ctx) error {
	res, err := c.service.FilterOptions(ctx.Context(), currentUserId(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *historyController) Add(ctx *fiber.Ctx) error {
	var req dto.AddWorklogRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Add(ctx.Context(), currentUserId(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Add request submitted", res))
}

func (c *historyController) Edit(ctx *fiber.Ctx) error {
	var req dto.EditWorklogRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.service.Edit(ctx.Context(), currentUserId(ctx), &req); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Edit request submitted", nil))
}

func (c *historyController) Delete(ctx *fiber.Ctx) error {
	var req dto.DeleteWorklogRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.service.Delete(ctx.Context(), currentUserId(ctx), &req); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Delete request submitted", nil))
}

func (c *historyController) Cancel(ctx *fiber.Ctx) error {
	var req dto.CancelWorklogRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.service.Cancel(ctx.Context(), currentUserId(ctx), &req); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Request withdrawn", nil))
}

func (c *historyController) CancelRejectedAdd(ctx *fiber.Ctx) error {
	var req dto.CancelRejectedRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.service.CancelRejectedAdd(ctx.Context(), currentUserId(ctx), &req); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Rejection dismissed", nil))
}

func (c *historyController) CancelRejectedDelete(ctx *fiber.Ctx) error {
	var req dto.CancelRejectedRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.service.CancelRejectedDelete(ctx.Context(), currentUserId(ctx), &req); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Rejection dismissed", nil))
}

func (c *historyController) Resubmit(ctx *fiber.Ctx) error {
	var req dto.ResubmitWorklogRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.service.Resubmit(ctx.Context(), currentUserId(ctx), &req); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Request resubmitted", nil))
}
