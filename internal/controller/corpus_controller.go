package controller

import (
	"ai-receptionist-be/internal/dto"
	"ai-receptionist-be/internal/pkg/serverutils"
	"ai-receptionist-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ICorpusController interface {
	RegisterRoutes(r fiber.Router)
	CreateDocument(ctx *fiber.Ctx) error
}

type corpusController struct {
	documentService service.IDocumentService
}

func NewCorpusController(documentService service.IDocumentService) ICorpusController {
	return &corpusController{
		documentService: documentService,
	}
}

func (c *corpusController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/corpus/v1")
	h.Post("/documents", c.CreateDocument)
}

func (c *corpusController) CreateDocument(ctx *fiber.Ctx) error {
	var req dto.CreateDocumentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.documentService.CreateDocument(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Document created", res))
}
