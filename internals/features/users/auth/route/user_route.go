// file: internals/features/users/auth/route/auth_routes.go
package route

import (
	"github.com/gofiber/fiber/v2"

	"readingroom_backend/internals/appctx"
	controller "readingroom_backend/internals/features/users/auth/controller"
	"readingroom_backend/internals/features/users/auth/service"
	rateLimiter "readingroom_backend/internals/middlewares"
)

// AuthRoutes mounts /auth on r. The gate is attached per route, so an
// unknown path under /auth still falls through to the 404 responder.
func AuthRoutes(r fiber.Router, ctx *appctx.Context) {
	svc := service.NewAuthService(
		ctx.Repos.Users,
		ctx.Repos.Tokens,
		ctx.Config.JWTSecret,
		ctx.Config.JWTRefreshSecret,
		ctx.Config.GoogleClientID,
		ctx.Log(),
	)
	authController := controller.NewAuthController(svc, ctx.Config.IsProduction())
	gate := ctx.Gate

	auth := r.Group("/auth")

	// public
	auth.Post("/register", rateLimiter.RegisterRateLimiter(ctx.LimiterStore), authController.Register)
	auth.Post("/login", rateLimiter.LoginRateLimiter(ctx.LimiterStore), authController.Login)
	auth.Post("/refresh-token", authController.RefreshToken)
	auth.Post("/login-google", rateLimiter.LoginRateLimiter(ctx.LimiterStore), authController.LoginGoogle)

	// protected
	auth.Get("/me", gate, authController.GetCurrentUser)
	auth.Put("/profile", gate, authController.UpdateProfile)
	auth.Put("/change-password", gate, authController.ChangePassword)
	auth.Post("/logout", gate, authController.Logout)
}
