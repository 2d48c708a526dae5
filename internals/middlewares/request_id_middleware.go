package middlewares

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/google/uuid"

	helper "readingroom_backend/internals/helpers"
)

const requestTimeout = 10 * time.Second

// RequestID tags the request with X-Request-ID and bounds its user context.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		// locals outlive the request buffer
		id := utils.CopyString(c.Get(fiber.HeaderXRequestID))
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(fiber.HeaderXRequestID, id)
		c.Locals(helper.LocReqID, id)

		ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}
