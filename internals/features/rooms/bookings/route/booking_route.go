package route

import (
	"github.com/gofiber/fiber/v2"

	"readingroom_backend/internals/appctx"
	"readingroom_backend/internals/features/rooms/bookings/controller"
)

func BookingRoutes(r fiber.Router, ctx *appctx.Context) {
	ctrl := controller.NewBookingController(ctx.Repos.Bookings, ctx.Repos.Students, ctx.Repos.Seats)
	gate := ctx.Gate

	g := r.Group("/bookings")
	g.Post("/", gate, ctrl.Create)
	g.Get("/", gate, ctrl.List)
	g.Get("/:id", gate, ctrl.Get)
	g.Put("/:id", gate, ctrl.Update)
	g.Delete("/:id", gate, ctrl.Delete)
}
