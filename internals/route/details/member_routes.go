package details

import (
	"github.com/gofiber/fiber/v2"

	"readingroom_backend/internals/appctx"
	studentRoute "readingroom_backend/internals/features/members/students/route"
)

func MemberRoutes(api fiber.Router, ctx *appctx.Context) {
	studentRoute.StudentRoutes(api, ctx)
}
