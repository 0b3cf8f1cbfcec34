package controller

import (
	"xeriscape-be/internal/dto"

	"github.com/gofiber/fiber/v2"
)

type IHealthController interface {
	RegisterRoutes(r fiber.Router)
	Health(ctx *fiber.Ctx) error
}

type healthController struct {
	providers map[string]bool
}

// NewHealthController takes which upstream providers have a key configured.
func NewHealthController(providers map[string]bool) IHealthController {
	return &healthController{providers: providers}
}

func (c *healthController) RegisterRoutes(r fiber.Router) {
	r.Get("/health", c.Health)
}

func (c *healthController) Health(ctx *fiber.Ctx) error {
	return ctx.JSON(dto.HealthResponse{Status: "ok", Providers: c.providers})
}
