package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	database "readingroom_backend/internals/databases"
	"readingroom_backend/internals/features/system/operations/repository"
	helper "readingroom_backend/internals/helpers"
)

type OperationController struct {
	Repo repository.OperationRepository
}

func NewOperationController(repo repository.OperationRepository) *OperationController {
	return &OperationController{Repo: repo}
}

// GET /api/operations?method=&user_id=&page=&per_page=
func (oc *OperationController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, helper.DefaultPerPage, helper.MaxPerPage)
	items, total, err := oc.Repo.List(c.UserContext(), repository.ListFilter{
		Method: strings.ToUpper(strings.TrimSpace(c.Query("method"))),
		UserID: strings.TrimSpace(c.Query("user_id")),
		Offset: p.Offset,
		Limit:  p.Limit,
	})
	if err != nil {
		return err
	}
	return helper.JsonList(c, "ok", items, helper.BuildPagination(total, p, len(items)))
}

// GET /api/operations/:id
func (oc *OperationController) Get(c *fiber.Ctx) error {
	id, err := helper.IDParam(c, "id")
	if err != nil {
		return err
	}
	op, err := oc.Repo.FindByID(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Operation not found")
		}
		return err
	}
	return helper.JsonOK(c, "ok", op)
}
