package controller

import (
	"os"

	ws "github.com/Fusion-Mind-co/worklog-system/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type IRealtimeController interface {
	RegisterRoutes(r fiber.Router)
}

type realtimeController struct {
	hub *ws.Hub
}

func NewRealtimeController(hub *ws.Hub) IRealtimeController {
	return &realtimeController{hub: hub}
}

func (c *realtimeController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/ws")
	h.Use(upgradeRequired)
	h.Get("", websocket.New(c.serve))
}

// upgradeRequired authenticates the handshake before the connection is
// upgraded. Browsers cannot set headers on websocket requests, so the token
// is also accepted as a query parameter.
func upgradeRequired(ctx *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(ctx) {
		return fiber.ErrUpgradeRequired
	}

	tokenStr := ctx.Query("token")
	if tokenStr == "" {
		authHeader := ctx.Get("Authorization")
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			tokenStr = authHeader[7:]
		}
	}
	if tokenStr == "" {
		return fiber.ErrUnauthorized
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return fiber.ErrUnauthorized
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return fiber.ErrUnauthorized
	}
	userIdStr, _ := claims["user_id"].(string)
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	ctx.Locals("ws_user_id", userId)
	return ctx.Next()
}

func (c *realtimeController) serve(conn *websocket.Conn) {
	userId, ok := conn.Locals("ws_user_id").(uuid.UUID)
	if !ok {
		conn.Close()
		return
	}
	ws.ServeWs(c.hub, conn, userId)
}
