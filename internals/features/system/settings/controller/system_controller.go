package controller

import (
	"context"
	"runtime"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"readingroom_backend/internals/features/system/settings/dto"
	"readingroom_backend/internals/features/system/settings/repository"
	helper "readingroom_backend/internals/helpers"
)

const pingTimeout = 2 * time.Second

type Pinger interface {
	Ping(ctx context.Context) error
}

type SystemController struct {
	Repo        repository.SettingsRepository
	DB          Pinger
	StartedAt   time.Time
	Version     string
	Environment string
	Log         *zap.Logger
	// Now defaults to time.Now.
	Now func() time.Time
}

func (sc *SystemController) now() time.Time {
	if sc.Now != nil {
		return sc.Now()
	}
	return time.Now()
}

// GET /api/system/status
func (sc *SystemController) Status(c *fiber.Ctx) error {
	dbStatus := "connected"
	status := "ok"
	httpStatus := fiber.StatusOK

	if sc.DB == nil {
		dbStatus, status, httpStatus = "unavailable", "degraded", fiber.StatusServiceUnavailable
	} else {
		ctx, cancel := context.WithTimeout(c.UserContext(), pingTimeout)
		defer cancel()
		if err := sc.DB.Ping(ctx); err != nil {
			sc.Log.Warn("database ping failed", zap.Error(err))
			dbStatus, status, httpStatus = "disconnected", "degraded", fiber.StatusServiceUnavailable
		}
	}

	return c.Status(httpStatus).JSON(fiber.Map{
		"success": httpStatus == fiber.StatusOK,
		"message": status,
		"data": fiber.Map{
			"status":         status,
			"database":       dbStatus,
			"server_time":    sc.now().UTC().Format(time.RFC3339),
			"uptime_seconds": int64(sc.now().Sub(sc.StartedAt).Seconds()),
			"version":        sc.Version,
			"environment":    sc.Environment,
			"go_version":     runtime.Version(),
			"goroutines":     runtime.NumGoroutine(),
		},
	})
}

// GET /api/system/settings
func (sc *SystemController) GetSettings(c *fiber.Ctx) error {
	s, err := sc.Repo.Get(c.UserContext())
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "ok", dto.NewSettingsResponse(s, sc.now()))
}

// PUT /api/system/settings (admin)
func (sc *SystemController) UpdateSettings(c *fiber.Ctx) error {
	var req dto.UpdateSettingsRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return err
	}
	current, err := sc.Repo.Get(c.UserContext())
	if err != nil {
		return err
	}
	patch, err := req.ToPatch(current.OpeningTime, current.ClosingTime)
	if err != nil {
		return err
	}
	if len(patch) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Nothing to update")
	}
	userID, _ := helper.GetUserIDFromToken(c)
	patch["updated_by"] = userID
	patch["updated_at"] = sc.now().UTC()

	updated, err := sc.Repo.Update(c.UserContext(), patch)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Settings updated", updated)
}
