package controller

import (
	"xeriscape-be/internal/dto"
	"xeriscape-be/internal/pkg/serverutils"
	"xeriscape-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IReportController interface {
	RegisterRoutes(r fiber.Router)
	Export(ctx *fiber.Ctx) error
}

type reportController struct {
	service service.IReportService
}

func NewReportController(service service.IReportService) IReportController {
	return &reportController{service: service}
}

func (c *reportController) RegisterRoutes(r fiber.Router) {
	r.Post("/report", c.Export)
}

func (c *reportController) Export(ctx *fiber.Ctx) error {
	var req dto.ReportRequest
	if err := serverutils.ParseJSON(ctx, &req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	pdf, name, err := c.service.Export(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	ctx.Set(fiber.HeaderContentType, "application/pdf")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	return ctx.Send(pdf)
}
