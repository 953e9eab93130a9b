package controller

import (
	"funeral-docs-be/internal/apperror"
	"funeral-docs-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
)

// parseBody decodes and validates a JSON body.
func parseBody(ctx *fiber.Ctx, req interface{}) error {
	if err := ctx.BodyParser(req); err != nil {
		return apperror.BadRequest("invalid request body")
	}
	return serverutils.ValidateRequest(req)
}

// parseOptionalBody is parseBody for endpoints whose body may be empty.
func parseOptionalBody(ctx *fiber.Ctx, req interface{}) error {
	if len(ctx.Body()) == 0 {
		return serverutils.ValidateRequest(req)
	}
	return parseBody(ctx, req)
}

func parseQuery(ctx *fiber.Ctx, req interface{}) error {
	if err := ctx.QueryParser(req); err != nil {
		return apperror.BadRequest("invalid query parameters")
	}
	return serverutils.ValidateRequest(req)
}
