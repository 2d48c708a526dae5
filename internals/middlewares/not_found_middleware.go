package middlewares

import (
	"github.com/gofiber/fiber/v2"
)

// NotFound answers any /api path no route claimed.
func NotFound() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"code":    "not_found",
			"message": "Route " + c.OriginalURL() + " not found",
			"status":  fiber.StatusNotFound,
		})
	}
}
