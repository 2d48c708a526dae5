package route

import (
	"github.com/gofiber/fiber/v2"

	"readingroom_backend/internals/appctx"
	"readingroom_backend/internals/features/reports/summary/controller"
)

func ReportRoutes(r fiber.Router, ctx *appctx.Context) {
	ctrl := controller.NewReportController(ctx.Repos.Reports)
	gate := ctx.Gate

	g := r.Group("/reports")
	g.Get("/occupancy", gate, ctrl.Occupancy)
	g.Get("/bookings", gate, ctrl.Bookings)
	g.Get("/students", gate, ctrl.Students)
}
