package controller

import (
	"xeriscape-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ILocationController interface {
	RegisterRoutes(r fiber.Router)
	MapImages(ctx *fiber.Ctx) error
}

type locationController struct {
	service service.ILocationService
}

func NewLocationController(service service.ILocationService) ILocationController {
	return &locationController{service: service}
}

func (c *locationController) RegisterRoutes(r fiber.Router) {
	r.Get("/maps", c.MapImages)
}

func (c *locationController) MapImages(ctx *fiber.Ctx) error {
	res, err := c.service.MapImages(ctx.Query("address", ""))
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}
