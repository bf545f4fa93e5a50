package controller

import (
	"github.com/Fusion-Mind-co/worklog-system/internal/dto"
	"github.com/Fusion-Mind-co/worklog-system/internal/pkg/serverutils"
	"github.com/Fusion-Mind-co/worklog-system/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router)
	Login(ctx *fiber.Ctx) error
	Me(ctx *fiber.Ctx) error
	ChangePassword(ctx *fiber.Ctx) error
	RequestPasswordReset(ctx *fiber.Ctx) error
	ConfirmPasswordReset(ctx *fiber.Ctx) error
	UpdateSoundEnabled(ctx *fiber.Ctx) error
	UpdateLastActivePage(ctx *fiber.Ctx) error
}

type authController struct {
	service service.IAuthService
}

func NewAuthController(service service.IAuthService) IAuthController {
	return &authController{service: service}
}

func (c *authController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/auth")
	h.Post("/login", c.Login)
	h.Post("/password-reset/request", c.RequestPasswordReset)
	h.Post("/password-reset/confirm", c.ConfirmPasswordReset)

	p := h.Group("", serverutils.JwtMiddleware)
	p.Get("/me", c.Me)
	p.Post("/change-password", c.ChangePassword)
	p.Put("/sound-enabled", c.UpdateSoundEnabled)
	p.Put("/last-active-page", c.UpdateLastActivePage)
}

func currentUserId(ctx *fiber.Ctx) uuid.UUID {
	userIdStr, _ := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)
	return userId
}

func (c *authController) Login(ctx *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Login(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *authController) Me(ctx *fiber.Ctx) error {
	res, err := c.service.Me(ctx.Context(), currentUserId(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *authController) ChangePassword(ctx *fiber.Ctx) error {
	var req dto.ChangePasswordRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.service.ChangePassword(ctx.Context(), currentUserId(ctx), &req); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Password changed", nil))
}

func (c *authController) RequestPasswordReset(ctx *fiber.Ctx) error {
	var req dto.PasswordResetRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.service.RequestPasswordReset(ctx.Context(), &req); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("If the account exists, a reset email was sent", nil))
}

func (c *authController) ConfirmPasswordReset(ctx *fiber.Ctx) error {
	var req dto.PasswordResetConfirmRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.service.ConfirmPasswordReset(ctx.Context(), &req); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Password reset", nil))
}

func (c *authController) UpdateSoundEnabled(ctx *fiber.Ctx) error {
	var req struct {
		SoundEnabled bool `json:"sound_enabled"`
	}
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := c.service.UpdateSoundEnabled(ctx.Context(), currentUserId(ctx), req.SoundEnabled); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Preference saved", nil))
}

func (c *authController) UpdateLastActivePage(ctx *fiber.Ctx) error {
	var req struct {
		Page string `json:"page"`
	}
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := c.service.UpdateLastActivePage(ctx.Context(), currentUserId(ctx), req.Page); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Preference saved", nil))
}
