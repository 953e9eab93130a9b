package controller

import (
	"funeral-docs-be/internal/entity"
	"funeral-docs-be/internal/pkg/serverutils"
	"funeral-docs-be/internal/service"
	"funeral-docs-be/pkg/admin/usage"

	"github.com/gofiber/fiber/v2"
)

type IAnalyticsController interface {
	RegisterRoutes(r fiber.Router)
	UserStats(ctx *fiber.Ctx) error
	UserTrends(ctx *fiber.Ctx) error
	AllUsers(ctx *fiber.Ctx) error
}

type analyticsController struct {
	service service.IAnalyticsService
	auth    fiber.Handler
}

func NewAnalyticsController(service service.IAnalyticsService, auth fiber.Handler) IAnalyticsController {
	return &analyticsController{service: service, auth: auth}
}

func (c *analyticsController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/analytics", c.auth)
	h.Get("/user/:id/stats", c.UserStats)
	h.Get("/user/:id/trends", c.UserTrends)
	h.Get("/admin/all-users", serverutils.RequireRole(string(entity.UserRoleAdmin)), c.AllUsers)
}

func viewer(ctx *fiber.Ctx) (service.Viewer, error) {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return service.Viewer{}, err
	}
	return service.Viewer{UserId: userId, Role: entity.UserRole(serverutils.CurrentRole(ctx))}, nil
}

func (c *analyticsController) UserStats(ctx *fiber.Ctx) error {
	v, err := viewer(ctx)
	if err != nil {
		return err
	}
	id, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.service.UserStats(ctx.UserContext(), v, id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Usage stats", res))
}

func (c *analyticsController) UserTrends(ctx *fiber.Ctx) error {
	v, err := viewer(ctx)
	if err != nil {
		return err
	}
	id, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.service.UserTrends(ctx.UserContext(), v, id, ctx.QueryInt("days", usage.DefaultTrendDays))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Usage trends", res))
}

func (c *analyticsController) AllUsers(ctx *fiber.Ctx) error {
	res, err := c.service.AllUsers(ctx.UserContext())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Usage for all users", res))
}
