package middlewares

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	database "readingroom_backend/internals/databases"
	helper "readingroom_backend/internals/helpers"
)

// ErrorHandler is the fiber.Config ErrorHandler: every error returned by a
// handler or middleware ends up here.
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			if fe.Code >= fiber.StatusInternalServerError {
				log.Error("request failed", requestFields(c, err)...)
			}
			return helper.JsonError(c, fe.Code, fe.Message)
		}

		if fields, ok := helper.ValidationMessages(err); ok {
			return helper.JsonValidationError(c, fields)
		}

		switch {
		case errors.Is(err, database.ErrNotFound):
			return helper.JsonError(c, fiber.StatusNotFound, "Resource not found")
		case errors.Is(err, database.ErrDuplicate):
			return helper.JsonError(c, fiber.StatusConflict, "Resource already exists")
		}

		log.Error("unhandled request error", requestFields(c, err)...)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
}

func requestFields(c *fiber.Ctx, err error) []zap.Field {
	reqID, _ := c.Locals(helper.LocReqID).(string)
	return []zap.Field{
		zap.String("request_id", reqID),
		zap.String("method", c.Method()),
		zap.String("path", c.OriginalURL()),
		zap.Error(err),
	}
}
