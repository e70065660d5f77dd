package controller

import (
	"ai-receptionist-be/internal/dto"
	"ai-receptionist-be/internal/pkg/serverutils"
	"ai-receptionist-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IMailDraftController interface {
	RegisterRoutes(r fiber.Router)
	Draft(ctx *fiber.Ctx) error
}

type mailDraftController struct {
	mailDraftService service.IMailDraftService
}

func NewMailDraftController(mailDraftService service.IMailDraftService) IMailDraftController {
	return &mailDraftController{
		mailDraftService: mailDraftService,
	}
}

func (c *mailDraftController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/assistant/v1")
	h.Post("/draft", c.Draft)
}

func (c *mailDraftController) Draft(ctx *fiber.Ctx) error {
	var req dto.DraftRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.mailDraftService.DraftEmail(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Email draft", res))
}
