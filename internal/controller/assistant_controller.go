package controller

import (
	"ai-receptionist-be/internal/dto"
	"ai-receptionist-be/internal/pkg/serverutils"
	"ai-receptionist-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAssistantController interface {
	RegisterRoutes(r fiber.Router)
	Ask(ctx *fiber.Ctx) error
	Personas(ctx *fiber.Ctx) error
}

type assistantController struct {
	assistantService service.IAssistantService
}

func NewAssistantController(assistantService service.IAssistantService) IAssistantController {
	return &assistantController{
		assistantService: assistantService,
	}
}

func (c *assistantController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/assistant/v1")
	h.Post("/ask", c.Ask)
	h.Get("/personas", c.Personas)
}

func (c *assistantController) Ask(ctx *fiber.Ctx) error {
	var req dto.AskRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	// Sessions without an explicit id fall back to the caller's address.
	res, err := c.assistantService.Ask(ctx.Context(), &req, ctx.IP())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Assistant reply", res))
}

func (c *assistantController) Personas(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Available personas", c.assistantService.ListPersonas()))
}
