package middlewares

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	helper "readingroom_backend/internals/helpers"
)

// store may be nil, in which case each limiter keeps its own in-memory counters.
func newLimiter(store fiber.Storage, name string, max int, window time.Duration, message string) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		Storage:    store,
		KeyGenerator: func(c *fiber.Ctx) string {
			return name + ":" + c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return helper.JsonError(c, fiber.StatusTooManyRequests, message)
		},
	})
}

// Global limiter for every /api request
func GlobalRateLimiter(store fiber.Storage) fiber.Handler {
	return newLimiter(store, "global", 100, 1*time.Minute, "Too many requests. Please try again later.")
}

// Stricter limiter for login
func LoginRateLimiter(store fiber.Storage) fiber.Handler {
	return newLimiter(store, "login", 5, 1*time.Minute, "Too many login attempts. Please wait a moment.")
}

func RegisterRateLimiter(store fiber.Storage) fiber.Handler {
	return newLimiter(store, "register", 3, 5*time.Minute, "Too many registration attempts. Please wait a few minutes.")
}
