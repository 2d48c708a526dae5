// Package appctx holds everything route modules need, built once in main
// and passed down explicitly.
package appctx

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"readingroom_backend/internals/configs"
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
	"readingroom_backend/internals/metrics"
)

// Pinger reports whether the database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Repositories struct {
	Users      authRepo.UserRepository
	Tokens     authRepo.TokenRepository
	Students   studentRepo.StudentRepository
	Photos     studentRepo.PhotoRepository
	Seats      seatRepo.SeatRepository
	Bookings   bookingRepo.BookingRepository
	Payments   paymentRepo.PaymentRepository
	Reports    reportRepo.ReportRepository
	Financial  financialRepo.FinancialRepository
	Operations operationRepo.OperationRepository
	Settings   settingsRepo.SettingsRepository
}

type Context struct {
	Config *configs.Config
	Logger *zap.Logger
	Policy *fatal.Policy
	Repos  Repositories

	// Gate authenticates protected routes. Tests swap it for a stub.
	Gate fiber.Handler
	// Gateway creates checkout transactions; nil disables checkout.
	Gateway paymentService.Gateway
	DB      Pinger
	// LimiterStore backs the rate limiters; nil keeps counters in memory.
	LimiterStore fiber.Storage
	Metrics      *metrics.Metrics

	StartedAt time.Time
	Version   string
}

// Log never returns nil.
func (c *Context) Log() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}
