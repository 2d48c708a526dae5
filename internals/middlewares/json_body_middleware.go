package middlewares

import (
	"strings"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
)

// JSONBody rejects malformed JSON bodies with 400 before routing.
func JSONBody() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ct := strings.ToLower(c.Get(fiber.HeaderContentType))
		if !strings.HasPrefix(ct, fiber.MIMEApplicationJSON) {
			return c.Next()
		}
		body := c.Body()
		if len(body) == 0 {
			return c.Next()
		}
		if !sonic.Valid(body) {
			return fiber.NewError(fiber.StatusBadRequest, "Malformed JSON body")
		}
		return c.Next()
	}
}
