package controller

import (
	"funeral-docs-be/internal/dto"
	"funeral-docs-be/internal/entity"
	"funeral-docs-be/internal/pkg/serverutils"
	"funeral-docs-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAdminController interface {
	RegisterRoutes(r fiber.Router)

	GetOverview(ctx *fiber.Ctx) error
	GetAllUsers(ctx *fiber.Ctx) error
	GetUserDetail(ctx *fiber.Ctx) error
	UpdateUser(ctx *fiber.Ctx) error
	ChangeRole(ctx *fiber.Ctx) error
	ReconcileMetrics(ctx *fiber.Ctx) error
	GetLogs(ctx *fiber.Ctx) error
}

type adminController struct {
	service service.IAdminService
	auth    fiber.Handler
}

func NewAdminController(service service.IAdminService, auth fiber.Handler) IAdminController {
	return &adminController{service: service, auth: auth}
}

func (c *adminController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin", c.auth, serverutils.RequireRole(string(entity.UserRoleAdmin)))

	// Dashboard
	h.Get("/overview", c.GetOverview)

	// Users
	h.Get("/users", c.GetAllUsers)
	h.Get("/users/:id", c.GetUserDetail)
	h.Put("/users/:id", c.UpdateUser)
	h.Put("/users/:id/role", c.ChangeRole)

	// Usage metrics
	h.Post("/metrics/reconcile", c.ReconcileMetrics)

	// Logs
	h.Get("/logs", c.GetLogs)
}

func (c *adminController) GetOverview(ctx *fiber.Ctx) error {
	res, err := c.service.GetOverview(ctx.UserContext())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Dashboard overview", res))
}

func (c *adminController) GetAllUsers(ctx *fiber.Ctx) error {
	var req dto.AdminUserListRequest
	if err := parseQuery(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.GetAllUsers(ctx.UserContext(), req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Users list", res))
}

func (c *adminController) GetUserDetail(ctx *fiber.Ctx) error {
	id, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.service.GetUserDetail(ctx.UserContext(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("User detail", res))
}

func (c *adminController) UpdateUser(ctx *fiber.Ctx) error {
	id, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.AdminUpdateUserRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.UpdateUser(ctx.UserContext(), id, req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("User updated", res))
}

func (c *adminController) ChangeRole(ctx *fiber.Ctx) error {
	id, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.ChangeRoleRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.ChangeRole(ctx.UserContext(), id, req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("User role changed", res))
}

func (c *adminController) ReconcileMetrics(ctx *fiber.Ctx) error {
	res, err := c.service.ReconcileMetrics(ctx.UserContext())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Usage metrics reconciled", res))
}

func (c *adminController) GetLogs(ctx *fiber.Ctx) error {
	var req dto.LogListRequest
	if err := parseQuery(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.GetSystemLogs(ctx.UserContext(), req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("System logs", res))
}
