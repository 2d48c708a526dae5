package details

import (
	"github.com/gofiber/fiber/v2"

	"readingroom_backend/internals/appctx"
	reportRoute "readingroom_backend/internals/features/reports/summary/route"
)

func ReportRoutes(api fiber.Router, ctx *appctx.Context) {
	reportRoute.ReportRoutes(api, ctx)
}
