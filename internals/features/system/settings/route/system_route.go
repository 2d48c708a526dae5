package route

import (
	"github.com/gofiber/fiber/v2"

	"readingroom_backend/internals/appctx"
	"readingroom_backend/internals/constants"
	"readingroom_backend/internals/features/system/settings/controller"
	authMiddleware "readingroom_backend/internals/middlewares/auth"
)

func SystemRoutes(r fiber.Router, ctx *appctx.Context) {
	ctrl := &controller.SystemController{
		Repo:        ctx.Repos.Settings,
		DB:          ctx.DB,
		StartedAt:   ctx.StartedAt,
		Version:     ctx.Version,
		Environment: ctx.Config.AppEnv,
		Log:         ctx.Log(),
	}
	gate := ctx.Gate
	adminOnly := authMiddleware.OnlyRoles(constants.RoleErrorAdmin("system settings"), constants.RoleAdmin)

	g := r.Group("/system")
	g.Get("/status", gate, ctrl.Status)
	g.Get("/settings", gate, ctrl.GetSettings)
	g.Put("/settings", gate, adminOnly, ctrl.UpdateSettings)
}
