package details

import (
	"github.com/gofiber/fiber/v2"

	"readingroom_backend/internals/appctx"
	operationRoute "readingroom_backend/internals/features/system/operations/route"
	settingsRoute "readingroom_backend/internals/features/system/settings/route"
)

func OperationRoutes(api fiber.Router, ctx *appctx.Context) {
	operationRoute.OperationRoutes(api, ctx)
}

func SystemRoutes(api fiber.Router, ctx *appctx.Context) {
	settingsRoute.SystemRoutes(api, ctx)
}
