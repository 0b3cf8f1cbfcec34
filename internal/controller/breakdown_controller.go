package controller

import (
	"xeriscape-be/internal/dto"
	"xeriscape-be/internal/pkg/serverutils"
	"xeriscape-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IBreakdownController interface {
	RegisterRoutes(r fiber.Router)
	Breakdown(ctx *fiber.Ctx) error
}

type breakdownController struct {
	service service.IBreakdownService
}

func NewBreakdownController(service service.IBreakdownService) IBreakdownController {
	return &breakdownController{service: service}
}

func (c *breakdownController) RegisterRoutes(r fiber.Router) {
	r.Post("/breakdown", c.Breakdown)
}

func (c *breakdownController) Breakdown(ctx *fiber.Ctx) error {
	var req dto.BreakdownRequest
	if err := serverutils.ParseJSON(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.Breakdown(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}
