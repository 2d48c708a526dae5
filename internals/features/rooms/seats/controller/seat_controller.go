package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	database "readingroom_backend/internals/databases"
	"readingroom_backend/internals/features/rooms/seats/dto"
	"readingroom_backend/internals/features/rooms/seats/repository"
	helper "readingroom_backend/internals/helpers"
)

type SeatController struct {
	Repo repository.SeatRepository
}

func NewSeatController(repo repository.SeatRepository) *SeatController {
	return &SeatController{Repo: repo}
}

func seatError(err error) error {
	switch {
	case errors.Is(err, database.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, "Seat not found")
	case errors.Is(err, database.ErrDuplicate):
		return fiber.NewError(fiber.StatusConflict, "Seat number already exists")
	}
	return err
}

func (sc *SeatController) Create(c *fiber.Ctx) error {
	var req dto.CreateSeatRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return err
	}
	seat := req.ToModel(helper.NewID(), time.Now().UTC())
	if err := sc.Repo.Create(c.UserContext(), seat); err != nil {
		return seatError(err)
	}
	return helper.JsonCreated(c, "Seat created", seat)
}

// GET /api/seats?status=&section=&type=
func (sc *SeatController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, helper.DefaultPerPage, helper.MaxPerPage)
	items, total, err := sc.Repo.List(c.UserContext(), repository.ListFilter{
		Status:  strings.TrimSpace(c.Query("status")),
		Section: strings.TrimSpace(c.Query("section")),
		Type:    strings.TrimSpace(c.Query("type")),
		Offset:  p.Offset,
		Limit:   p.Limit,
	})
	if err != nil {
		return err
	}
	return helper.JsonList(c, "ok", items, helper.BuildPagination(total, p, len(items)))
}

func (sc *SeatController) Get(c *fiber.Ctx) error {
	id, err := helper.IDParam(c, "id")
	if err != nil {
		return err
	}
	seat, err := sc.Repo.FindByID(c.UserContext(), id)
	if err != nil {
		return seatError(err)
	}
	return helper.JsonOK(c, "ok", seat)
}

func (sc *SeatController) Update(c *fiber.Ctx) error {
	id, err := helper.IDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateSeatRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return err
	}
	patch := req.ToPatch()
	if len(patch) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Nothing to update")
	}
	patch["updated_at"] = time.Now().UTC()

	seat, err := sc.Repo.Update(c.UserContext(), id, patch)
	if err != nil {
		return seatError(err)
	}
	return helper.JsonUpdated(c, "Seat updated", seat)
}

func (sc *SeatController) Delete(c *fiber.Ctx) error {
	id, err := helper.IDParam(c, "id")
	if err != nil {
		return err
	}
	if err := sc.Repo.Delete(c.UserContext(), id); err != nil {
		return seatError(err)
	}
	return helper.JsonDeleted(c, "Seat deleted", fiber.Map{"id": id})
}
