// file: internals/route/index.go
package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"readingroom_backend/internals/appctx"
	routeDetails "readingroom_backend/internals/route/details"
)

// SetupRoutes mounts every resource router under /api in a fixed order.
// The /api 404 fallback is added by the caller after this returns.
func SetupRoutes(api fiber.Router, ctx *appctx.Context) {
	log := ctx.Log()

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	mounts := []struct {
		name  string
		mount func(fiber.Router, *appctx.Context)
	}{
		{"auth", routeDetails.AuthRoutes},
		{"students", routeDetails.MemberRoutes},
		{"seats+bookings", routeDetails.RoomRoutes},
		{"payments", routeDetails.PaymentRoutes},
		{"reports", routeDetails.ReportRoutes},
		{"operations", routeDetails.OperationRoutes},
		{"system", routeDetails.SystemRoutes},
		{"financial", routeDetails.FinancialRoutes},
	}
	for _, m := range mounts {
		log.Debug("mounting routes", zap.String("module", m.name))
		m.mount(api, ctx)
	}
}
