package route

import (
	"github.com/gofiber/fiber/v2"

	"readingroom_backend/internals/appctx"
	"readingroom_backend/internals/features/members/students/controller"
)

func StudentRoutes(r fiber.Router, ctx *appctx.Context) {
	ctrl := controller.NewStudentController(ctx.Repos.Students, ctx.Repos.Photos, ctx.Log())
	gate := ctx.Gate

	g := r.Group("/students")
	g.Post("/", gate, ctrl.Create)
	g.Get("/", gate, ctrl.List)
	g.Get("/:id", gate, ctrl.Get)
	g.Put("/:id", gate, ctrl.Update)
	g.Delete("/:id", gate, ctrl.Delete)
	g.Post("/:id/photo", gate, ctrl.UploadPhoto)
	g.Get("/:id/photo", gate, ctrl.GetPhoto)
}
