package controller

import (
	"github.com/Fusion-Mind-co/worklog-system/internal/dto"
	"github.com/Fusion-Mind-co/worklog-system/internal/pkg/serverutils"
	"github.com/Fusion-Mind-co/worklog-system/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IApprovalController interface {
	RegisterRoutes(r fiber.Router)
	ListWorklogs(ctx *fiber.Ctx) error
	PendingCount(ctx *fiber.Ctx) error
	GetDefaultUnit(ctx *fiber.Ctx) error
	SaveDefaultUnit(ctx *fiber.Ctx) error
	ApproveAdd(ctx *fiber.Ctx) error
	RejectAdd(ctx *fiber.Ctx) error
	ApproveEdit(ctx *fiber.Ctx) error
	RejectEdit(ctx *fiber.Ctx) error
	ApproveDelete(ctx *fiber.Ctx) error
	RejectDelete(ctx *fiber.Ctx) error
}

type approvalController struct {
	service service.IApprovalService
}

func NewApprovalController(service service.IApprovalService) IApprovalController {
	return &approvalController{service: service}
}

func (c *approvalController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin/worklogs")
	h.Use(serverutils.JwtMiddleware)
	h.Use(serverutils.AdminMiddleware)
	h.Get("", c.ListWorklogs)
	h.Get("/pending-count", c.PendingCount)
	h.Get("/default-unit", c.GetDefaultUnit)
	h.Post("/default-unit", c.SaveDefaultUnit)
	h.Post("/approve-add", c.ApproveAdd)
	h.Post("/reject-add", c.RejectAdd)
	h.Post("/approve-edit", c.ApproveEdit)
	h.Post("/reject-edit", c.RejectEdit)
	h.Post("/approve-delete", c.ApproveDelete)
	h.Post("/reject-delete", c.RejectDelete)
}

func (c *approvalController) ListWorklogs(ctx *fiber.Ctx) error {
	query := dto.AdminWorklogQuery{
		StartDate:  ctx.Query("start_date"),
		EndDate:    ctx.Query("end_date"),
		UnitName:   ctx.Query("unit_name"),
		Department: ctx.Query("department"),
		EmployeeId: ctx.Query("employee_id"),
		Status:     ctx.Query("status"),
		Page:       ctx.QueryInt("page", 1),
		PerPage:    ctx.QueryInt("per_page", 20),
		SortBy:     ctx.Query("sort_by"),
		SortOrder:  ctx.Query("sort_order"),
		CountOnly:  ctx.QueryBool("count_only"),
	}

	if query.CountOnly {
		res, err := c.service.CountAdmin(ctx.Context(), query)
		if err != nil {
			return err
		}
		return ctx.JSON(res)
	}

	res, err := c.service.ListAdmin(ctx.Context(), currentUserId(ctx), query)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *approvalController) PendingCount(ctx *fiber.Ctx) error {
	res, err := c.service.PendingCount(ctx.Context(), currentUserId(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *approvalController) GetDefaultUnit(ctx *fiber.Ctx) error {
	res, err := c.service.GetDefaultUnit(ctx.Context(), currentUserId(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *approvalController) SaveDefaultUnit(ctx *fiber.Ctx) error {
	var req dto.SaveDefaultUnitRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	res, err := c.service.SaveDefaultUnit(ctx.Context(), currentUserId(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *approvalController) decide(ctx *fiber.Ctx, approve func(*dto.ApproveRequest) (*service.VerdictResponse, error)) error {
	var req dto.ApproveRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := approve(&req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *approvalController) reject(ctx *fiber.Ctx, reject func(*dto.RejectRequest) (*service.VerdictResponse, error)) error {
	var req dto.RejectRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := reject(&req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *approvalController) ApproveAdd(ctx *fiber.Ctx) error {
	adminId := currentUserId(ctx)
	return c.decide(ctx, func(req *dto.ApproveRequest) (*service.VerdictResponse, error) {
		return c.service.ApproveAdd(ctx.Context(), adminId, req)
	})
}

func (c *approvalController) RejectAdd(ctx *fiber.Ctx) error {
	adminId := currentUserId(ctx)
	return c.reject(ctx, func(req *dto.RejectRequest) (*service.VerdictResponse, error) {
		return c.service.RejectAdd(ctx.Context(), adminId, req)
	})
}

func (c *approvalController) ApproveEdit(ctx *fiber.Ctx) error {
	adminId := currentUserId(ctx)
	return c.decide(ctx, func(req *dto.ApproveRequest) (*service.VerdictResponse, error) {
		return c.service.ApproveEdit(ctx.Context(), adminId, req)
	})
}

func (c *approvalController) RejectEdit(ctx *fiber.Ctx) error {
	adminId := currentUserId(ctx)
	return c.reject(ctx, func(req *dto.RejectRequest) (*service.VerdictResponse, error) {
		return c.service.RejectEdit(ctx.Context(), adminId, req)
	})
}

func (c *approvalController) ApproveDelete(ctx *fiber.Ctx) error {
	adminId := currentUserId(ctx)
	return c.decide(ctx, func(req *dto.ApproveRequest) (*service.VerdictResponse, error) {
		return c.service.ApproveDelete(ctx.Context(), adminId, req)
	})
}

func (c *approvalController) RejectDelete(ctx *fiber.Ctx) error {
	adminId := currentUserId(ctx)
	return c.reject(ctx, func(req *dto.RejectRequest) (*service.VerdictResponse, error) {
		return c.service.RejectDelete(ctx.Context(), adminId, req)
	})
}
