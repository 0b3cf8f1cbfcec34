package server

import (
	"context"

	"xeriscape-be/internal/bootstrap"
	"xeriscape-be/internal/config"
	"xeriscape-be/internal/pkg/serverutils"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

type Server struct {
	app       *fiber.App
	cfg       *config.Config
	container *bootstrap.Container
}

func New(cfg *config.Config, container *bootstrap.Container) *Server {
	app := fiber.New(fiber.Config{
		// Seed photos arrive as base64 inside the JSON body.
		BodyLimit:             cfg.App.BodyLimitMB * 1024 * 1024,
		DisableStartupMessage: cfg.IsProduction(),
	})

	// Middleware
	app.Use(serverutils.RequestIDMiddleware())
	app.Use(serverutils.RequestLoggerMiddleware(container.Logger))
	app.Use(serverutils.ErrorHandlerMiddleware(container.Logger))
	app.Use(recover.New())

	app.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.App.CorsAllowedOrigins,
		AllowHeaders:  "Origin, Content-Type, Accept, X-Request-ID",
		AllowMethods:  "GET, POST, OPTIONS",
		ExposeHeaders: "Content-Length, Content-Type, Content-Disposition, X-Request-ID",
	}))

	// OpenTelemetry tracing middleware (traces all HTTP requests)
	app.Use(otelfiber.Middleware())

	registerRoutes(app, container)

	return &Server{
		app:       app,
		cfg:       cfg,
		container: container,
	}
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	s.container.Logger.Info("SERVER", "Server is running", map[string]interface{}{"port": s.cfg.App.Port, "env": s.cfg.App.Environment})
	return s.app.Listen(":" + s.cfg.App.Port)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func registerRoutes(app *fiber.App, c *bootstrap.Container) {
	api := app.Group("/api")

	c.HealthController.RegisterRoutes(api)

	c.GenerationController.RegisterRoutes(api)
	c.DesignController.RegisterRoutes(api)
	c.BreakdownController.RegisterRoutes(api)
	c.AnimationController.RegisterRoutes(api)

	c.LocationController.RegisterRoutes(api)
	c.ReportController.RegisterRoutes(api)
}
