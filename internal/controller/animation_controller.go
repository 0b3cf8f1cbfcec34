package controller

import (
	"xeriscape-be/internal/dto"
	"xeriscape-be/internal/pkg/serverutils"
	"xeriscape-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAnimationController interface {
	RegisterRoutes(r fiber.Router)
	Animate(ctx *fiber.Ctx) error
	TaskStatus(ctx *fiber.Ctx) error
}

type animationController struct {
	service service.IAnimationService
}

func NewAnimationController(service service.IAnimationService) IAnimationController {
	return &animationController{service: service}
}

func (c *animationController) RegisterRoutes(r fiber.Router) {
	r.Post("/animate", c.Animate)
	r.Get("/animate/:taskId", c.TaskStatus)
}

// Animate blocks until the video is ready unless the request asks for async.
func (c *animationController) Animate(ctx *fiber.Ctx) error {
	var req dto.AnimateRequest
	if err := serverutils.ParseJSON(ctx, &req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Animate(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	if req.Async {
		return ctx.Status(fiber.StatusAccepted).JSON(res)
	}
	return ctx.JSON(res)
}

func (c *animationController) TaskStatus(ctx *fiber.Ctx) error {
	res, err := c.service.TaskStatus(ctx.UserContext(), ctx.Params("taskId"))
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}
