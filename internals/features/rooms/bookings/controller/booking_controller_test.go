package controller

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	database "readingroom_backend/internals/databases"
	"readingroom_backend/internals/features/rooms/bookings/model"
	"readingroom_backend/internals/features/rooms/bookings/repository"
	"readingroom_backend/internals/middlewares"
)

type idSet map[string]bool

func (s idSet) Exists(_ context.Context, id string) (bool, error) { return s[id], nil }

type memBookings struct {
	mu   sync.Mutex
	rows map[string]model.BookingModel
}

func (m *memBookings) Create(_ context.Context, b *model.BookingModel) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[b.ID] = *b
	return nil
}

func (m *memBookings) FindByID(_ context.Context, id string) (*model.BookingModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.rows[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &b, nil
}

func (m *memBookings) List(_ context.Context, f repository.ListFilter) ([]model.BookingModel, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.BookingModel{}
	for _, b := range m.rows {
		if f.StudentID != "" && b.StudentID != f.StudentID {
			continue
		}
		out = append(out, b)
	}
	return out, int64(len(out)), nil
}

func (m *memBookings) Update(_ context.Context, id string, patch bson.M) (*model.BookingModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.rows[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	if v, ok := patch["status"].(string); ok {
		b.Status = v
	}
	m.rows[id] = b
	return &b, nil
}

func (m *memBookings) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return database.ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

func (m *memBookings) Exists(_ context.Context, id string) (bool, error) {
	_, err := m.FindByID(context.Background(), id)
	return err == nil, nil
}

type bookingFixture struct {
	app     *fiber.App
	repo    *memBookings
	student string
	seat    string
}

func newBookingFixture() *bookingFixture {
	f := &bookingFixture{
		repo:    &memBookings{rows: map[string]model.BookingModel{}},
		student: uuid.NewString(),
		seat:    uuid.NewString(),
	}
	ctrl := NewBookingController(f.repo, idSet{f.student: true}, idSet{f.seat: true})
	app := fiber.New(fiber.Config{ErrorHandler: middlewares.ErrorHandler(nil)})
	app.Post("/bookings", ctrl.Create)
	app.Get("/bookings", ctrl.List)
	app.Get("/bookings/:id", ctrl.Get)
	app.Put("/bookings/:id", ctrl.Update)
	app.Delete("/bookings/:id", ctrl.Delete)
	f.app = app
	return f
}

func (f *bookingFixture) send(t *testing.T, method, path, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := f.app.Test(req)
	require.NoError(t, err)
	raw, _ := io.ReadAll(resp.Body)
	out := map[string]any{}
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return resp.StatusCode, out
}

func (f *bookingFixture) body(student, seat, start, end string) string {
	raw, _ := json.Marshal(map[string]any{
		"student_id": student,
		"seat_id":    seat,
		"start_date": start,
		"end_date":   end,
		"amount":     1500,
	})
	return string(raw)
}

func TestBookingLifecycle(t *testing.T) {
	f := newBookingFixture()

	status, body := f.send(t, fiber.MethodPost, "/bookings", f.body(f.student, f.seat, "2024-03-01", "2024-03-31"))
	require.Equal(t, fiber.StatusCreated, status, body)
	booking := body["data"].(map[string]any)
	assert.Equal(t, model.ShiftFullDay, booking["shift"])
	assert.Equal(t, model.StatusActive, booking["status"])
	id := booking["id"].(string)

	status, body = f.send(t, fiber.MethodGet, "/bookings?student_id="+strings.ToUpper(f.student), "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Len(t, body["data"], 1)

	status, _ = f.send(t, fiber.MethodPut, "/bookings/"+id, `{"status":"completed"}`)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, model.StatusCompleted, f.repo.rows[id].Status)

	status, _ = f.send(t, fiber.MethodDelete, "/bookings/"+id, "")
	assert.Equal(t, fiber.StatusOK, status)

	status, body = f.send(t, fiber.MethodGet, "/bookings/"+id, "")
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "Booking not found", body["message"])
}

func TestBookingCreateRejects(t *testing.T) {
	f := newBookingFixture()

	t.Run("unknown references", func(t *testing.T) {
		status, body := f.send(t, fiber.MethodPost, "/bookings", f.body(uuid.NewString(), uuid.NewString(), "2024-03-01", "2024-03-02"))
		assert.Equal(t, fiber.StatusUnprocessableEntity, status)
		errs := body["errors"].(map[string]any)
		assert.Equal(t, []any{"student not found"}, errs["student_id"])
		assert.Equal(t, []any{"seat not found"}, errs["seat_id"])
	})

	t.Run("inverted range", func(t *testing.T) {
		status, body := f.send(t, fiber.MethodPost, "/bookings", f.body(f.student, f.seat, "2024-03-10", "2024-03-01"))
		assert.Equal(t, fiber.StatusUnprocessableEntity, status)
		errs := body["errors"].(map[string]any)
		assert.Equal(t, []any{"end_date must not be before start_date"}, errs["end_date"])
	})

	t.Run("bad date", func(t *testing.T) {
		status, body := f.send(t, fiber.MethodPost, "/bookings", f.body(f.student, f.seat, "tomorrow", "2024-03-01"))
		assert.Equal(t, fiber.StatusUnprocessableEntity, status)
		assert.Contains(t, body["errors"], "start_date")
	})

	t.Run("non uuid ids", func(t *testing.T) {
		status, body := f.send(t, fiber.MethodPost, "/bookings", f.body("abc", f.seat, "2024-03-01", "2024-03-02"))
		assert.Equal(t, fiber.StatusUnprocessableEntity, status)
		assert.Contains(t, body["errors"], "student_id")
	})

	assert.Empty(t, f.repo.rows)
}

func TestBookingUpdateRejects(t *testing.T) {
	f := newBookingFixture()
	status, body := f.send(t, fiber.MethodPost, "/bookings", f.body(f.student, f.seat, "2024-03-01", "2024-03-31"))
	require.Equal(t, fiber.StatusCreated, status, body)
	id := body["data"].(map[string]any)["id"].(string)

	// only end_date sent: checked against the stored start
	status, body = f.send(t, fiber.MethodPut, "/bookings/"+id, `{"end_date":"2024-02-01"}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Contains(t, body["errors"], "end_date")

	// references cannot be blanked
	for _, field := range []string{"student_id", "seat_id"} {
		status, body = f.send(t, fiber.MethodPut, "/bookings/"+id, `{"`+field+`":""}`)
		assert.Equal(t, fiber.StatusUnprocessableEntity, status, field)
		assert.Contains(t, body["errors"], field)
	}

	status, body = f.send(t, fiber.MethodPut, "/bookings/"+id, `{}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Nothing to update", body["message"])

	status, _ = f.send(t, fiber.MethodPut, "/bookings/"+uuid.NewString(), `{"status":"cancelled"}`)
	assert.Equal(t, fiber.StatusNotFound, status)

	status, _ = f.send(t, fiber.MethodPut, "/bookings/nope", `{"status":"cancelled"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
}
