package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"readingroom_backend/internals/app"
	"readingroom_backend/internals/appctx"
	"readingroom_backend/internals/cache"
	"readingroom_backend/internals/configs"
	database "readingroom_backend/internals/databases"
	"readingroom_backend/internals/fatal"
	financialRepo "readingroom_backend/internals/features/finance/financial/repository"
	paymentRepo "readingroom_backend/internals/features/finance/payments/repository"
	paymentService "readingroom_backend/internals/features/finance/payments/service"
	studentRepo "readingroom_backend/internals/features/members/students/repository"
	reportRepo "readingroom_backend/internals/features/reports/summary/repository"
	bookingRepo "readingroom_backend/internals/features/rooms/bookings/repository"
	seatRepo "readingroom_backend/internals/features/rooms/seats/repository"
	operationRepo "readingroom_backend/internals/features/system/operations/repository"
	settingsRepo "readingroom_backend/internals/features/system/settings/repository"
	authRepo "readingroom_backend/internals/features/users/auth/repository"
	"readingroom_backend/internals/features/users/auth/scheduler"
	"readingroom_backend/internals/metrics"
	authMiddleware "readingroom_backend/internals/middlewares/auth"
	"readingroom_backend/internals/seeds"
)

const (
	version         = "1.0.0"
	shutdownTimeout = 5 * time.Second
)

func main() {
	// logger mode comes from the process env; .env is read by LoadEnv below
	log := configs.NewLogger(configs.FromLookup(os.LookupEnv).IsProduction())
	defer func() { _ = log.Sync() }()

	policy := fatal.NewPolicy(log)
	defer policy.Recover()

	cfg := configs.LoadEnv(log)

	// 🔌 DB connect; failure here ends the process
	mongo, err := database.ConnectDB(context.Background(), cfg.MongoConnectionURI(), cfg.MongoDatabase, log)
	if err != nil {
		policy.Handle(fatal.Startup("connect database", err))
		return
	}
	if err := mongo.EnsureIndexes(context.Background()); err != nil {
		policy.Handle(fatal.Startup("ensure indexes", err))
		return
	}

	users := authRepo.NewUserRepository(mongo)
	tokens := authRepo.NewTokenRepository(mongo)
	students := studentRepo.NewStudentRepository(mongo)

	ctx := &appctx.Context{
		Config: cfg,
		Logger: log,
		Policy: policy,
		Repos: appctx.Repositories{
			Users:      users,
			Tokens:     tokens,
			Students:   students,
			Photos:     studentRepo.NewPhotoRepository(mongo),
			Seats:      seatRepo.NewSeatRepository(mongo),
			Bookings:   bookingRepo.NewBookingRepository(mongo),
			Payments:   paymentRepo.NewPaymentRepository(mongo),
			Reports:    reportRepo.NewReportRepository(mongo),
			Financial:  financialRepo.NewFinancialRepository(mongo),
			Operations: operationRepo.NewOperationRepository(mongo),
			Settings:   settingsRepo.NewSettingsRepository(mongo),
		},
		Gate: authMiddleware.AuthMiddleware(authMiddleware.Options{
			Secret: cfg.JWTSecret,
			Tokens: tokens,
			Users:  users,
			Log:    log,
		}),
		DB:        mongo,
		Metrics:   metrics.New(),
		StartedAt: time.Now(),
		Version:   version,
	}

	// shared limiter counters; without Redis every instance counts on its own
	if cfg.RedisURL != "" {
		rdb, err := cache.Connect(context.Background(), cfg.RedisURL)
		if err != nil {
			log.Warn("redis unavailable, rate limiters stay in memory", zap.Error(err))
		} else {
			store := cache.NewRedisStorage(rdb, "readingroom:limiter:")
			ctx.LimiterStore = store
			defer func() { _ = store.Close() }()
		}
	}

	// ✅ MIDTRANS
	if gw := paymentService.InitMidtrans(cfg.MidtransServerKey, cfg.MidtransUseProd); gw != nil {
		ctx.Gateway = gw
	}

	if err := seeds.RunAllSeeds(context.Background(), ctx); err != nil {
		policy.Handle(fatal.Startup("seed", err))
		return
	}

	// ⏱ scheduler after the DB is ready
	bgCtx, stopBackground := context.WithCancel(context.Background())
	defer stopBackground()
	cleanup := scheduler.NewBlacklistCleanup(tokens, cfg.TokenBlacklistTTLDays, log)
	cleanup.OnPurged = ctx.Metrics.BlacklistPurged
	policy.Go("blacklist-cleanup", func() error { return cleanup.Run(bgCtx) })

	server := app.New(ctx)
	server.Server().ReadTimeout = 15 * time.Second
	server.Server().WriteTimeout = 30 * time.Second
	server.Server().IdleTimeout = 90 * time.Second

	// a listener that cannot bind takes the process down
	policy.Go("http-listener", func() error {
		log.Info("listening", zap.String("port", cfg.Port), zap.String("env", cfg.AppEnv))
		return server.Listen("0.0.0.0:" + cfg.Port)
	})

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	stopBackground()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.ShutdownWithContext(shutdownCtx); err != nil {
		log.Warn("http shutdown", zap.Error(err))
	}
	if err := mongo.Disconnect(shutdownCtx); err != nil {
		log.Warn("mongo disconnect", zap.Error(err))
	}
}
