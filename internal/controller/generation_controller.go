package controller

import (
	"strings"

	"xeriscape-be/internal/dto"
	"xeriscape-be/internal/pkg/serverutils"
	"xeriscape-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IGenerationController interface {
	RegisterRoutes(r fiber.Router)
	Generate(ctx *fiber.Ctx) error
}

type generationController struct {
	service service.IGenerationService
}

func NewGenerationController(service service.IGenerationService) IGenerationController {
	return &generationController{service: service}
}

func (c *generationController) RegisterRoutes(r fiber.Router) {
	r.Post("/generate", c.Generate)
}

// Generate relays the provider's JSON answer byte for byte.
func (c *generationController) Generate(ctx *fiber.Ctx) error {
	var req dto.GenerateRequest
	if err := serverutils.ParseJSON(ctx, &req); err != nil {
		return err
	}
	req.Prompt = strings.TrimSpace(req.Prompt)
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	raw, err := c.service.Generate(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	ctx.Type("json")
	return ctx.Send(raw)
}
