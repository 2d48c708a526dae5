package route

import (
	"github.com/gofiber/fiber/v2"

	"readingroom_backend/internals/appctx"
	"readingroom_backend/internals/features/finance/financial/controller"
)

func FinancialRoutes(r fiber.Router, ctx *appctx.Context) {
	ctrl := controller.NewFinancialController(ctx.Repos.Financial)
	gate := ctx.Gate

	g := r.Group("/financial")
	g.Get("/summary", gate, ctrl.Summary)
	g.Get("/monthly", gate, ctrl.Monthly)
}
