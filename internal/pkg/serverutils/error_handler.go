package serverutils

import (
	"errors"

	"funeral-docs-be/internal/apperror"
	"funeral-docs-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler is the fiber.Config ErrorHandler. Every error leaves as a
// BaseResponse with a message.
func ErrorHandler(log logger.ILogger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		code := apperror.StatusOf(err)
		message := err.Error()

		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			message = fe.Message
		}

		if code >= fiber.StatusInternalServerError {
			log.Error("HTTP", "Request failed", map[string]interface{}{
				"method": ctx.Method(),
				"path":   ctx.Path(),
				"status": code,
				"error":  err,
			})
		}

		return ctx.Status(code).JSON(ErrorResponse(code, message))
	}
}
