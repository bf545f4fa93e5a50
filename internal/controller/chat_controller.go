package controller

import (
	"github.com/Fusion-Mind-co/worklog-system/internal/dto"
	"github.com/Fusion-Mind-co/worklog-system/internal/pkg/apperrors"
	"github.com/Fusion-Mind-co/worklog-system/internal/pkg/serverutils"
	"github.com/Fusion-Mind-co/worklog-system/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	GetConversation(ctx *fiber.Ctx) error
	SendMessage(ctx *fiber.Ctx) error
	UpdateMessage(ctx *fiber.Ctx) error
	DeleteMessage(ctx *fiber.Ctx) error
	MarkRead(ctx *fiber.Ctx) error
	Threads(ctx *fiber.Ctx) error
	UnreadCount(ctx *fiber.Ctx) error
}

type chatController struct {
	service service.IChatService
}

func NewChatController(service service.IChatService) IChatController {
	return &chatController{service: service}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat")
	h.Use(serverutils.JwtMiddleware)
	h.Get("/messages/:userId", c.GetConversation)
	h.Post("/messages", c.SendMessage)
	h.Put("/messages/:id", c.UpdateMessage)
	h.Delete("/messages/:id", c.DeleteMessage)
	h.Patch("/messages/read/:senderId", c.MarkRead)
	h.Get("/threads", c.Threads)
	h.Get("/unread-count", c.UnreadCount)
}

func parseIdParam(ctx *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params(name))
	if err != nil {
		return uuid.Nil, apperrors.NewValidation(name + " must be a valid id")
	}
	return id, nil
}

func (c *chatController) GetConversation(ctx *fiber.Ctx) error {
	partnerId, err := parseIdParam(ctx, "userId")
	if err != nil {
		return err
	}

	res, err := c.service.GetConversation(ctx.Context(), currentUserId(ctx), partnerId)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *chatController) SendMessage(ctx *fiber.Ctx) error {
	var req dto.SendMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.SendMessage(ctx.Context(), currentUserId(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *chatController) UpdateMessage(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.UpdateMessage(ctx.Context(), currentUserId(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *chatController) DeleteMessage(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.service.DeleteMessage(ctx.Context(), currentUserId(ctx), id)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *chatController) MarkRead(ctx *fiber.Ctx) error {
	senderId, err := parseIdParam(ctx, "senderId")
	if err != nil {
		return err
	}

	if err := c.service.MarkRead(ctx.Context(), currentUserId(ctx), senderId); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Messages marked read", nil))
}

func (c *chatController) Threads(ctx *fiber.Ctx) error {
	res, err := c.service.Threads(ctx.Context(), currentUserId(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *chatController) UnreadCount(ctx *fiber.Ctx) error {
	res, err := c.service.UnreadCount(ctx.Context(), currentUserId(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}
