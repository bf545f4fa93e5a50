package controller

import (
	"github.com/Fusion-Mind-co/worklog-system/internal/dto"
	"github.com/Fusion-Mind-co/worklog-system/internal/pkg/serverutils"
	"github.com/Fusion-Mind-co/worklog-system/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAdminUserController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	ListChatPairs(ctx *fiber.Ctx) error
	AddChatPair(ctx *fiber.Ctx) error
	RemoveChatPair(ctx *fiber.Ctx) error
}

type adminUserController struct {
	userService service.IAdminUserService
	chatService service.IChatService
}

func NewAdminUserController(userService service.IAdminUserService, chatService service.IChatService) IAdminUserController {
	return &adminUserController{userService: userService, chatService: chatService}
}

func (c *adminUserController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin")
	h.Use(serverutils.JwtMiddleware)
	h.Use(serverutils.AdminMiddleware)
	h.Get("/users", c.List)
	h.Post("/users", c.Create)
	h.Put("/users/:id", c.Update)
	h.Delete("/users/:id", c.Delete)
	h.Get("/chat-pairs", c.ListChatPairs)
	h.Post("/chat-pairs", c.AddChatPair)
	h.Delete("/chat-pairs", c.RemoveChatPair)
}

func (c *adminUserController) List(ctx *fiber.Ctx) error {
	res, err := c.userService.List(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *adminUserController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.userService.Create(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(res)
}

func (c *adminUserController) Update(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateUserRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.userService.Update(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *adminUserController) Delete(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx, "id")
	if err != nil {
		return err
	}

	if err := c.userService.Delete(ctx.Context(), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("User deleted", nil))
}

func (c *adminUserController) ListChatPairs(ctx *fiber.Ctx) error {
	res, err := c.chatService.ListPairs(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *adminUserController) AddChatPair(ctx *fiber.Ctx) error {
	var req dto.ChatPairRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.chatService.AddPair(ctx.Context(), &req); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Chat pair added", nil))
}

func (c *adminUserController) RemoveChatPair(ctx *fiber.Ctx) error {
	var req dto.ChatPairRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.chatService.RemovePair(ctx.Context(), &req); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Chat pair removed", nil))
}
