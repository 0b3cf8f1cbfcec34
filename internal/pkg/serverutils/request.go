package serverutils

import (
	"github.com/gofiber/fiber/v2"
)

// ParseJSON decodes the body as JSON regardless of Content-Type. Any failure is a 400.
func ParseJSON(ctx *fiber.Ctx, out interface{}) error {
	body := ctx.Body()
	if len(body) == 0 {
		return BadRequest("Invalid request")
	}
	if err := ctx.App().Config().JSONDecoder(body, out); err != nil {
		return BadRequest("Invalid request")
	}
	return nil
}
