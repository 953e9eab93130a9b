package controller

import (
	"io"

	"funeral-docs-be/internal/apperror"
	"funeral-docs-be/internal/dto"
	"funeral-docs-be/internal/pkg/serverutils"
	"funeral-docs-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

// MaxUploadSize bounds transcript uploads; the file is held in memory.
const MaxUploadSize = 5 << 20

type ITranscriptController interface {
	RegisterRoutes(r fiber.Router)
	Upload(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Process(ctx *fiber.Ctx) error
}

type transcriptController struct {
	transcriptService  service.ITranscriptService
	arrangementHandler IArrangementController
	auth               fiber.Handler
}

func NewTranscriptController(transcriptService service.ITranscriptService, arrangements IArrangementController, auth fiber.Handler) ITranscriptController {
	return &transcriptController{
		transcriptService:  transcriptService,
		arrangementHandler: arrangements,
		auth:               auth,
	}
}

func (c *transcriptController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/transcripts", c.auth)
	h.Post("/upload", c.Upload)
	h.Get("", c.List)
	h.Get("/:id", c.Show)
	h.Delete("/:id", c.Delete)
	h.Post("/:id/process", c.Process)
	// Same handlers as GET/PUT /arrangements/:transcriptId.
	h.Get("/:id/arrangement", c.arrangementHandler.ShowByTranscript)
	h.Put("/:id/arrangement", c.arrangementHandler.UpdateByTranscript)
}

func (c *transcriptController) Upload(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}

	filename, content, err := readUpload(ctx)
	if err != nil {
		return err
	}

	res, err := c.transcriptService.Upload(ctx.UserContext(), userId, filename, content)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Transcript uploaded", res))
}

// readUpload accepts a multipart file, a multipart text field or a JSON body.
func readUpload(ctx *fiber.Ctx) (string, []byte, error) {
	if fh, err := ctx.FormFile("file"); err == nil {
		if fh.Size > MaxUploadSize {
			return "", nil, apperror.New(fiber.StatusRequestEntityTooLarge, "transcript file is too large")
		}
		f, err := fh.Open()
		if err != nil {
			return "", nil, apperror.BadRequest("cannot read uploaded file")
		}
		defer f.Close()

		content, err := io.ReadAll(io.LimitReader(f, MaxUploadSize))
		if err != nil {
			return "", nil, apperror.BadRequest("cannot read uploaded file")
		}
		return fh.Filename, content, nil
	}

	if text := ctx.FormValue("text"); text != "" {
		return ctx.FormValue("filename"), []byte(text), nil
	}

	var req dto.UploadTranscriptRequest
	if err := ctx.BodyParser(&req); err != nil {
		return "", nil, apperror.BadRequest("provide a transcript file or text")
	}
	return req.Filename, []byte(req.Content), nil
}

func (c *transcriptController) List(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}

	res, err := c.transcriptService.List(ctx.UserContext(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get transcripts", res))
}

func (c *transcriptController) Show(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}
	id, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.transcriptService.Get(ctx.UserContext(), userId, id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get transcript", res))
}

func (c *transcriptController) Delete(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}
	id, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}

	if err := c.transcriptService.Delete(ctx.UserContext(), userId, id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Transcript deleted", nil))
}

func (c *transcriptController) Process(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}
	id, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.transcriptService.Process(ctx.UserContext(), userId, id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Transcript processed", res))
}
