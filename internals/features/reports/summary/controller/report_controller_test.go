package controller

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"readingroom_backend/internals/features/reports/summary/repository"
	"readingroom_backend/internals/middlewares"
)

type stubReports struct {
	seats, bookings, students repository.StatusCounts
	from, to                  *time.Time
	err                       error
}

func (s *stubReports) SeatCountsByStatus(context.Context) (repository.StatusCounts, error) {
	return s.seats, s.err
}

func (s *stubReports) BookingCountsByStatus(_ context.Context, from, to *time.Time) (repository.StatusCounts, error) {
	s.from, s.to = from, to
	return s.bookings, s.err
}

func (s *stubReports) StudentCountsByStatus(context.Context) (repository.StatusCounts, error) {
	return s.students, s.err
}

func reportApp(repo repository.ReportRepository) *fiber.App {
	ctrl := NewReportController(repo)
	app := fiber.New(fiber.Config{ErrorHandler: middlewares.ErrorHandler(nil)})
	app.Get("/occupancy", ctrl.Occupancy)
	app.Get("/bookings", ctrl.Bookings)
	app.Get("/students", ctrl.Students)
	return app
}

func getData(t *testing.T, app *fiber.App, path string) (int, map[string]any) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, path, nil))
	require.NoError(t, err)
	raw, _ := io.ReadAll(resp.Body)
	out := map[string]any{}
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	data, _ := out["data"].(map[string]any)
	return resp.StatusCode, data
}

func TestOccupancy(t *testing.T) {
	app := reportApp(&stubReports{seats: repository.StatusCounts{"occupied": 3, "available": 1}})
	status, data := getData(t, app, "/occupancy")
	require.Equal(t, fiber.StatusOK, status)
	assert.EqualValues(t, 4, data["total_seats"])
	assert.InDelta(t, 0.75, data["occupancy_rate"], 1e-9)
	assert.EqualValues(t, 0, data["by_status"].(map[string]any)["maintenance"])
}

func TestOccupancyEmpty(t *testing.T) {
	app := reportApp(&stubReports{seats: repository.StatusCounts{}})
	status, data := getData(t, app, "/occupancy")
	require.Equal(t, fiber.StatusOK, status)
	assert.EqualValues(t, 0, data["occupancy_rate"])
}

func TestBookingsReport(t *testing.T) {
	repo := &stubReports{bookings: repository.StatusCounts{"active": 2, "cancelled": 1}}
	app := reportApp(repo)

	status, data := getData(t, app, "/bookings?from=2024-01-01&to=2024-01-31")
	require.Equal(t, fiber.StatusOK, status)
	assert.EqualValues(t, 3, data["total"])
	assert.EqualValues(t, 0, data["by_status"].(map[string]any)["completed"])
	require.NotNil(t, repo.to)
	assert.Equal(t, 31, repo.to.Day())
	assert.Equal(t, 23, repo.to.Hour())

	status, _ = getData(t, app, "/bookings?from=2024-02-01&to=2024-01-01")
	assert.Equal(t, fiber.StatusBadRequest, status)
	status, _ = getData(t, app, "/bookings?from=yesterday")
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestStudentsReportError(t *testing.T) {
	app := reportApp(&stubReports{err: errors.New("db down")})
	status, _ := getData(t, app, "/students")
	assert.Equal(t, fiber.StatusInternalServerError, status)
}
