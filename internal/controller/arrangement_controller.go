package controller

import (
	"context"

	"funeral-docs-be/internal/dto"
	"funeral-docs-be/internal/pkg/serverutils"
	"funeral-docs-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IArrangementController interface {
	RegisterRoutes(r fiber.Router)
	ShowByTranscript(ctx *fiber.Ctx) error
	UpdateByTranscript(ctx *fiber.Ctx) error
	Approve(ctx *fiber.Ctx) error
	RegenerateAll(ctx *fiber.Ctx) error
	ListDocuments(ctx *fiber.Ctx) error
	DeleteDocuments(ctx *fiber.Ctx) error
}

type arrangementController struct {
	arrangementService service.IArrangementService
	taskHandler        ITaskController
	auth               fiber.Handler
}

func NewArrangementController(arrangementService service.IArrangementService, tasks ITaskController, auth fiber.Handler) IArrangementController {
	return &arrangementController{arrangementService: arrangementService, taskHandler: tasks, auth: auth}
}

// RegisterRoutes mounts both the transcript-keyed read/update routes and the
// arrangement-keyed action routes. Path parameters are always named id.
func (c *arrangementController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/arrangements", c.auth)
	h.Get("/:id", c.ShowByTranscript)
	h.Put("/:id", c.UpdateByTranscript)
	h.Post("/:id/approve", c.Approve)
	h.Post("/:id/regenerate-all", c.RegenerateAll)
	h.Get("/:id/documents", c.ListDocuments)
	h.Delete("/:id/documents", c.DeleteDocuments)
	h.Get("/:id/tasks", c.taskHandler.List)
	h.Post("/:id/tasks", c.taskHandler.Create)
}

// ShowByTranscript reads the arrangement of the transcript in :id.
func (c *arrangementController) ShowByTranscript(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}
	transcriptId, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.arrangementService.GetByTranscript(ctx.UserContext(), userId, transcriptId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get arrangement", res))
}

func (c *arrangementController) UpdateByTranscript(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}
	transcriptId, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateArrangementRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.arrangementService.UpdateByTranscript(ctx.UserContext(), userId, transcriptId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Arrangement updated", res))
}

func (c *arrangementController) Approve(ctx *fiber.Ctx) error {
	return c.generate(ctx, "Arrangement approved", c.arrangementService.Approve)
}

func (c *arrangementController) RegenerateAll(ctx *fiber.Ctx) error {
	return c.generate(ctx, "Documents regenerated", c.arrangementService.RegenerateAll)
}

type generateFunc func(ctx context.Context, userId, arrangementId uuid.UUID, req dto.GenerationRequest) (*dto.GenerationResponse, error)

func (c *arrangementController) generate(ctx *fiber.Ctx, message string, run generateFunc) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}
	id, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.GenerationRequest
	if err := parseOptionalBody(ctx, &req); err != nil {
		return err
	}

	res, err := run(ctx.UserContext(), userId, id, req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse(message, res))
}

func (c *arrangementController) ListDocuments(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}
	id, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.arrangementService.ListDocuments(ctx.UserContext(), userId, id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get documents", res))
}

func (c *arrangementController) DeleteDocuments(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}
	id, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.BulkDeleteDocumentsRequest
	if err := parseOptionalBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.arrangementService.DeleteDocuments(ctx.UserContext(), userId, id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Documents deleted", res))
}
