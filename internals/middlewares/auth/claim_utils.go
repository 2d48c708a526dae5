package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	helper "readingroom_backend/internals/helpers"
)

var errNoToken = errors.New("Unauthorized - No token provided")

// extractToken takes the bearer header first and falls back to the access_token
// cookie; fromCookie tells the caller a CSRF check is due.
func extractToken(c *fiber.Ctx) (string, bool, error) {
	if tok := helper.BearerToken(c); tok != "" {
		return tok, false, nil
	}
	if tok := c.Cookies("access_token"); tok != "" {
		return tok, true, nil
	}
	return "", false, errNoToken
}
