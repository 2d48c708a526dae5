package middlewares

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"readingroom_backend/internals/features/system/operations/model"
	"readingroom_backend/internals/features/system/operations/repository"
	helper "readingroom_backend/internals/helpers"
)

const auditWriteTimeout = 3 * time.Second

// AuditTrail records every state-changing request in the operations collection.
// Writes happen off the request path and failures are only logged.
func AuditTrail(repo repository.OperationRepository, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if repo == nil {
			return c.Next()
		}
		if helper.IsSafeMethod(c.Method()) {
			return c.Next()
		}

		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			// the error handler has not written the response yet
			status = fiber.StatusInternalServerError
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}

		// fiber reuses Ctx after the handler returns: copy what we need now
		userID, _ := c.Locals(helper.LocUserID).(string)
		reqID, _ := c.Locals(helper.LocReqID).(string)
		op := &model.OperationModel{
			ID:        uuid.NewString(),
			Method:    utils.CopyString(c.Method()),
			Path:      utils.CopyString(c.Path()),
			Status:    status,
			UserID:    userID,
			IP:        utils.CopyString(c.IP()),
			RequestID: utils.CopyString(reqID),
			LatencyMs: time.Since(start).Milliseconds(),
			CreatedAt: time.Now().UTC(),
		}

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), auditWriteTimeout)
			defer cancel()
			if werr := repo.Create(ctx, op); werr != nil {
				log.Warn("audit write failed", zap.Error(werr))
			}
		}()
		return err
	}
}
