package controller

import (
	"xeriscape-be/internal/dto"
	"xeriscape-be/internal/pkg/serverutils"
	"xeriscape-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IDesignController interface {
	RegisterRoutes(r fiber.Router)
	GenerateDesigns(ctx *fiber.Ctx) error
	GeneratePlan(ctx *fiber.Ctx) error
	BuildPrompt(ctx *fiber.Ctx) error
}

type designController struct {
	service service.IDesignService
}

func NewDesignController(service service.IDesignService) IDesignController {
	return &designController{service: service}
}

func (c *designController) RegisterRoutes(r fiber.Router) {
	r.Post("/designs", c.GenerateDesigns)
	r.Post("/designs/plan", c.GeneratePlan)
	r.Post("/prompt", c.BuildPrompt)
}

func (c *designController) GenerateDesigns(ctx *fiber.Ctx) error {
	var req dto.DesignRequest
	if err := serverutils.ParseJSON(ctx, &req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.GenerateDesigns(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *designController) GeneratePlan(ctx *fiber.Ctx) error {
	var req dto.PlanRequest
	if err := serverutils.ParseJSON(ctx, &req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.GeneratePlan(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *designController) BuildPrompt(ctx *fiber.Ctx) error {
	var req dto.PromptRequest
	if err := serverutils.ParseJSON(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.BuildPrompt(&req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}
