package controller

import (
	"fmt"

	"funeral-docs-be/internal/dto"
	"funeral-docs-be/internal/pkg/serverutils"
	"funeral-docs-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IDocumentController interface {
	RegisterRoutes(r fiber.Router)
	Generate(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Download(ctx *fiber.Ctx) error
}

type documentController struct {
	documentService service.IDocumentService
	auth            fiber.Handler
}

func NewDocumentController(documentService service.IDocumentService, auth fiber.Handler) IDocumentController {
	return &documentController{documentService: documentService, auth: auth}
}

func (c *documentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/documents", c.auth)
	h.Post("/generate", c.Generate)
	h.Get("/:id", c.Show)
	h.Patch("/:id", c.Update)
	h.Delete("/:id", c.Delete)
	h.Get("/:id/download", c.Download)
}

func (c *documentController) Generate(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}

	var req dto.GenerateDocumentRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.documentService.Generate(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Document generated", res))
}

func (c *documentController) Show(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}
	id, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.documentService.Get(ctx.UserContext(), userId, id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get document", res))
}

func (c *documentController) Update(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}
	id, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateDocumentRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.documentService.Update(ctx.UserContext(), userId, id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Document updated", res))
}

func (c *documentController) Delete(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}
	id, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}

	if err := c.documentService.Delete(ctx.UserContext(), userId, id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Document deleted", nil))
}

// Download sends the decoded bytes as an attachment.
func (c *documentController) Download(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}
	id, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}

	file, err := c.documentService.Download(ctx.UserContext(), userId, id)
	if err != nil {
		return err
	}

	ctx.Set(fiber.HeaderContentType, file.ContentType)
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, file.Filename))
	return ctx.Send(file.Body)
}
