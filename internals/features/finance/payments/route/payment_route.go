package route

import (
	"github.com/gofiber/fiber/v2"

	"readingroom_backend/internals/appctx"
	"readingroom_backend/internals/features/finance/payments/controller"
	"readingroom_backend/internals/features/finance/payments/service"
)

func PaymentRoutes(r fiber.Router, ctx *appctx.Context) {
	ctrl := &controller.PaymentController{
		Repo:     ctx.Repos.Payments,
		Students: ctx.Repos.Students,
		Bookings: ctx.Repos.Bookings,
		Gateway:  ctx.Gateway,
		Webhook:  service.NewWebhookService(ctx.Repos.Payments, ctx.Config.MidtransServerKey, ctx.Log()),
		Outcomes: ctx.Metrics,
		Log:      ctx.Log(),
	}
	gate := ctx.Gate

	g := r.Group("/payments")
	// gateway webhook: public, registered before /:id
	g.Post("/notification", ctrl.Notification)

	g.Post("/", gate, ctrl.Create)
	g.Get("/", gate, ctrl.List)
	g.Get("/:id", gate, ctrl.Get)
	g.Put("/:id", gate, ctrl.Update)
	g.Delete("/:id", gate, ctrl.Delete)
	g.Post("/:id/checkout", gate, ctrl.Checkout)
}
