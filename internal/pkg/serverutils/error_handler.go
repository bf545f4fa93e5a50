package serverutils

import (
	"errors"

	"github.com/Fusion-Mind-co/worklog-system/internal/pkg/apperrors"
	"github.com/Fusion-Mind-co/worklog-system/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware maps the error taxonomy to HTTP statuses.
// Unknown errors become a generic 500; the detail stays in the server log.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var validationErr *apperrors.ValidationError
		if errors.As(err, &validationErr) {
			body := fiber.Map{"success": false, "error": validationErr.Message}
			if validationErr.Row > 0 {
				body["row"] = validationErr.Row
			}
			return ctx.Status(fiber.StatusBadRequest).JSON(body)
		}

		var notFoundErr *apperrors.NotFoundError
		if errors.As(err, &notFoundErr) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"error":   notFoundErr.Error(),
			})
		}

		var forbiddenErr *apperrors.ForbiddenError
		if errors.As(err, &forbiddenErr) {
			return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"success": false,
				"error":   forbiddenErr.Message,
			})
		}

		var conflictErr *apperrors.ConflictError
		if errors.As(err, &conflictErr) {
			return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{
				"success":  false,
				"error":    conflictErr.Error(),
				"expected": conflictErr.Expected,
				"actual":   conflictErr.Actual,
			})
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(fiber.Map{
				"success": false,
				"error":   fiberErr.Message,
			})
		}

		log.Error("HTTP", "Unhandled error", map[string]interface{}{
			"path":  ctx.Path(),
			"error": err.Error(),
		})
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "internal server error",
		})
	}
}
