// Package app assembles the HTTP application without listening.
package app

import (
	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"

	"readingroom_backend/internals/appctx"
	middlewares "readingroom_backend/internals/middlewares"
	"readingroom_backend/internals/middlewares/logger"
	routes "readingroom_backend/internals/route"
)

const bodyLimit = 8 << 20

// Middleware returns the global chain in the order it runs.
func Middleware(ctx *appctx.Context) []fiber.Handler {
	log := ctx.Log()
	return []fiber.Handler{
		middlewares.RequestID(),
		ctx.Metrics.Middleware(),
		middlewares.RecoveryMiddleware(log),
		compress.New(compress.Config{Level: compress.LevelDefault}),
		etag.New(),
		middlewares.JSONBody(),
		middlewares.CorsMiddleware(ctx.Config.CORSOrigins),
		logger.LoggerMiddleware(),
		middlewares.SecurityHeaders(),
		middlewares.AuditTrail(ctx.Repos.Operations, log),
	}
}

func serverConfig(ctx *appctx.Context) fiber.Config {
	cfg := fiber.Config{
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		BodyLimit:             bodyLimit,
		DisableStartupMessage: true,
		ErrorHandler:          middlewares.ErrorHandler(ctx.Log()),
	}
	// client IP (limiters, audit) comes from X-Forwarded-For only when the
	// peer is one of the configured proxies
	if len(ctx.Config.TrustedProxies) > 0 {
		cfg.ProxyHeader = fiber.HeaderXForwardedFor
		cfg.EnableTrustedProxyCheck = true
		cfg.TrustedProxies = ctx.Config.TrustedProxies
	}
	return cfg
}

// New builds the fiber app: global middleware, /api routers, /api 404 last.
func New(ctx *appctx.Context) *fiber.App {
	app := fiber.New(serverConfig(ctx))

	for _, h := range Middleware(ctx) {
		app.Use(h)
	}

	if ctx.Metrics != nil && ctx.Config.MetricsEnabled {
		app.Get("/metrics", ctx.Metrics.Handler())
	}

	api := app.Group("/api", middlewares.GlobalRateLimiter(ctx.LimiterStore))
	routes.SetupRoutes(api, ctx)
	app.Use("/api", middlewares.NotFound())

	return app
}
