package details

import (
	"github.com/gofiber/fiber/v2"

	"readingroom_backend/internals/appctx"
	financialRoute "readingroom_backend/internals/features/finance/financial/route"
	paymentRoute "readingroom_backend/internals/features/finance/payments/route"
)

func PaymentRoutes(api fiber.Router, ctx *appctx.Context) {
	paymentRoute.PaymentRoutes(api, ctx)
}

func FinancialRoutes(api fiber.Router, ctx *appctx.Context) {
	financialRoute.FinancialRoutes(api, ctx)
}
