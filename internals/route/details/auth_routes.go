package details

import (
	"github.com/gofiber/fiber/v2"

	"readingroom_backend/internals/appctx"
	authRoute "readingroom_backend/internals/features/users/auth/route"
)

func AuthRoutes(api fiber.Router, ctx *appctx.Context) {
	authRoute.AuthRoutes(api, ctx)
}
