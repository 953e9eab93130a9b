package controller

import (
	"funeral-docs-be/internal/dto"
	"funeral-docs-be/internal/pkg/serverutils"
	"funeral-docs-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ITaskController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Toggle(ctx *fiber.Ctx) error
}

type taskController struct {
	taskService service.ITaskService
	auth        fiber.Handler
}

func NewTaskController(taskService service.ITaskService, auth fiber.Handler) ITaskController {
	return &taskController{taskService: taskService, auth: auth}
}

// RegisterRoutes mounts /tasks/:id. List and Create hang off the
// arrangement routes.
func (c *taskController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/tasks", c.auth)
	h.Put("/:id", c.Update)
	h.Delete("/:id", c.Delete)
	h.Patch("/:id/toggle", c.Toggle)
}

// List expects the arrangement id in :id.
func (c *taskController) List(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}
	arrangementId, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.taskService.List(ctx.UserContext(), userId, arrangementId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get tasks", res))
}

func (c *taskController) Create(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}
	arrangementId, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.CreateTaskRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.taskService.Create(ctx.UserContext(), userId, arrangementId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Task created", res))
}

func (c *taskController) Update(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}
	id, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateTaskRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.taskService.Update(ctx.UserContext(), userId, id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Task updated", res))
}

func (c *taskController) Delete(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}
	id, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}

	if err := c.taskService.Delete(ctx.UserContext(), userId, id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Task deleted", nil))
}

func (c *taskController) Toggle(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}
	id, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.taskService.Toggle(ctx.UserContext(), userId, id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Task toggled", res))
}
