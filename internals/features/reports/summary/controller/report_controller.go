package controller

import (
	"github.com/gofiber/fiber/v2"

	studentModel "readingroom_backend/internals/features/members/students/model"
	"readingroom_backend/internals/features/reports/summary/repository"
	bookingModel "readingroom_backend/internals/features/rooms/bookings/model"
	seatModel "readingroom_backend/internals/features/rooms/seats/model"
	helper "readingroom_backend/internals/helpers"
)

type ReportController struct {
	Repo repository.ReportRepository
}

func NewReportController(repo repository.ReportRepository) *ReportController {
	return &ReportController{Repo: repo}
}

// withZeros makes every known status present in the output.
func withZeros(counts repository.StatusCounts, statuses ...string) (repository.StatusCounts, int64) {
	out := repository.StatusCounts{}
	for _, s := range statuses {
		out[s] = 0
	}
	var total int64
	for k, v := range counts {
		out[k] = v
		total += v
	}
	return out, total
}

// GET /api/reports/occupancy
func (rc *ReportController) Occupancy(c *fiber.Ctx) error {
	counts, err := rc.Repo.SeatCountsByStatus(c.UserContext())
	if err != nil {
		return err
	}
	byStatus, total := withZeros(counts, seatModel.Statuses...)

	rate := 0.0
	if total > 0 {
		rate = float64(byStatus[seatModel.StatusOccupied]) / float64(total)
	}
	return helper.JsonOK(c, "ok", fiber.Map{
		"total_seats":    total,
		"by_status":      byStatus,
		"occupancy_rate": rate,
	})
}

// GET /api/reports/bookings?from=&to=
func (rc *ReportController) Bookings(c *fiber.Ctx) error {
	from, to, err := helper.DateRangeQuery(c.Query("from"), c.Query("to"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	counts, err := rc.Repo.BookingCountsByStatus(c.UserContext(), from, to)
	if err != nil {
		return err
	}
	byStatus, total := withZeros(counts, bookingModel.Statuses...)
	return helper.JsonOK(c, "ok", fiber.Map{
		"from":      from,
		"to":        to,
		"total":     total,
		"by_status": byStatus,
	})
}

// GET /api/reports/students
func (rc *ReportController) Students(c *fiber.Ctx) error {
	counts, err := rc.Repo.StudentCountsByStatus(c.UserContext())
	if err != nil {
		return err
	}
	byStatus, total := withZeros(counts, studentModel.StatusActive, studentModel.StatusInactive)
	return helper.JsonOK(c, "ok", fiber.Map{
		"total":     total,
		"by_status": byStatus,
	})
}
