package route

import (
	"github.com/gofiber/fiber/v2"

	"readingroom_backend/internals/appctx"
	"readingroom_backend/internals/constants"
	"readingroom_backend/internals/features/system/operations/controller"
	authMiddleware "readingroom_backend/internals/middlewares/auth"
)

func OperationRoutes(r fiber.Router, ctx *appctx.Context) {
	ctrl := controller.NewOperationController(ctx.Repos.Operations)
	adminOnly := authMiddleware.OnlyRoles(constants.RoleErrorAdmin("the audit trail"), constants.RoleAdmin)

	g := r.Group("/operations")
	g.Get("/", ctx.Gate, adminOnly, ctrl.List)
	g.Get("/:id", ctx.Gate, adminOnly, ctrl.Get)
}
