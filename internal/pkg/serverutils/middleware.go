package serverutils

import (
	"time"

	"xeriscape-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	HeaderRequestID = "X-Request-ID"
	LocalRequestID  = "request_id"
)

// ErrorHandlerMiddleware turns any error returned down the chain into the JSON error body.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		code, msg := StatusAndMessage(err)
		if code >= fiber.StatusInternalServerError {
			log.Error("HTTP", "Request failed", map[string]interface{}{
				"path":       ctx.Path(),
				"status":     code,
				"error":      err.Error(),
				"request_id": ctx.Locals(LocalRequestID),
			})
		}
		return ctx.Status(code).JSON(ErrorResponse(code, msg))
	}
}

// RequestIDMiddleware reuses an incoming X-Request-ID or assigns a new one.
func RequestIDMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		id := ctx.Get(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		ctx.Locals(LocalRequestID, id)
		ctx.Set(HeaderRequestID, id)
		return ctx.Next()
	}
}

func RequestLoggerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		start := time.Now()
		err := ctx.Next()

		log.Info("HTTP", "Request handled", map[string]interface{}{
			"method":     ctx.Method(),
			"path":       ctx.Path(),
			"status":     ctx.Response().StatusCode(),
			"latency_ms": time.Since(start).Milliseconds(),
			"request_id": ctx.Locals(LocalRequestID),
		})
		return err
	}
}
