package controller

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	database "readingroom_backend/internals/databases"
	"readingroom_backend/internals/features/rooms/bookings/dto"
	"readingroom_backend/internals/features/rooms/bookings/repository"
	helper "readingroom_backend/internals/helpers"
)

// Existence is satisfied by the student and seat repositories.
type Existence interface {
	Exists(ctx context.Context, id string) (bool, error)
}

type BookingController struct {
	Repo     repository.BookingRepository
	Students Existence
	Seats    Existence
}

func NewBookingController(repo repository.BookingRepository, students, seats Existence) *BookingController {
	return &BookingController{Repo: repo, Students: students, Seats: seats}
}

func bookingError(err error) error {
	if errors.Is(err, database.ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "Booking not found")
	}
	return err
}

// checkRefs reports missing student/seat documents as 422 field errors.
func (bc *BookingController) checkRefs(ctx context.Context, studentID, seatID string) error {
	fe := helper.FieldErrors{}
	if studentID != "" {
		ok, err := bc.Students.Exists(ctx, studentID)
		if err != nil {
			return err
		}
		if !ok {
			fe.Add("student_id", "student not found")
		}
	}
	if seatID != "" {
		ok, err := bc.Seats.Exists(ctx, seatID)
		if err != nil {
			return err
		}
		if !ok {
			fe.Add("seat_id", "seat not found")
		}
	}
	if len(fe) > 0 {
		return fe
	}
	return nil
}

func (bc *BookingController) Create(c *fiber.Ctx) error {
	var req dto.CreateBookingRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return err
	}
	booking, err := req.ToModel(helper.NewID(), time.Now().UTC())
	if err != nil {
		return err
	}
	if err := bc.checkRefs(c.UserContext(), booking.StudentID, booking.SeatID); err != nil {
		return err
	}
	if err := bc.Repo.Create(c.UserContext(), booking); err != nil {
		return err
	}
	return helper.JsonCreated(c, "Booking created", booking)
}

// GET /api/bookings?student_id=&seat_id=&status=
func (bc *BookingController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, helper.DefaultPerPage, helper.MaxPerPage)
	items, total, err := bc.Repo.List(c.UserContext(), repository.ListFilter{
		StudentID: strings.ToLower(strings.TrimSpace(c.Query("student_id"))),
		SeatID:    strings.ToLower(strings.TrimSpace(c.Query("seat_id"))),
		Status:    strings.TrimSpace(c.Query("status")),
		Offset:    p.Offset,
		Limit:     p.Limit,
	})
	if err != nil {
		return err
	}
	return helper.JsonList(c, "ok", items, helper.BuildPagination(total, p, len(items)))
}

func (bc *BookingController) Get(c *fiber.Ctx) error {
	id, err := helper.IDParam(c, "id")
	if err != nil {
		return err
	}
	booking, err := bc.Repo.FindByID(c.UserContext(), id)
	if err != nil {
		return bookingError(err)
	}
	return helper.JsonOK(c, "ok", booking)
}

func (bc *BookingController) Update(c *fiber.Ctx) error {
	id, err := helper.IDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateBookingRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return err
	}

	current, err := bc.Repo.FindByID(c.UserContext(), id)
	if err != nil {
		return bookingError(err)
	}
	patch, err := req.ToPatch(current)
	if err != nil {
		return err
	}
	if len(patch) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Nothing to update")
	}

	studentID, _ := patch["student_id"].(string)
	seatID, _ := patch["seat_id"].(string)
	if err := bc.checkRefs(c.UserContext(), studentID, seatID); err != nil {
		return err
	}

	patch["updated_at"] = time.Now().UTC()
	booking, err := bc.Repo.Update(c.UserContext(), id, patch)
	if err != nil {
		return bookingError(err)
	}
	return helper.JsonUpdated(c, "Booking updated", booking)
}

func (bc *BookingController) Delete(c *fiber.Ctx) error {
	id, err := helper.IDParam(c, "id")
	if err != nil {
		return err
	}
	if err := bc.Repo.Delete(c.UserContext(), id); err != nil {
		return bookingError(err)
	}
	return helper.JsonDeleted(c, "Booking deleted", fiber.Map{"id": id})
}
