package middlewares

import (
	"context"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"readingroom_backend/internals/features/system/operations/model"
	"readingroom_backend/internals/features/system/operations/repository"
	helper "readingroom_backend/internals/helpers"
)

type recordedOps struct {
	mu  sync.Mutex
	ops []model.OperationModel
}

func (r *recordedOps) Create(_ context.Context, op *model.OperationModel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = append(r.ops, *op)
	return nil
}

func (r *recordedOps) FindByID(context.Context, string) (*model.OperationModel, error) {
	return nil, nil
}

func (r *recordedOps) List(context.Context, repository.ListFilter) ([]model.OperationModel, int64, error) {
	return nil, 0, nil
}

func (r *recordedOps) snapshot() []model.OperationModel {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.OperationModel(nil), r.ops...)
}

func TestAuditTrail(t *testing.T) {
	ops := &recordedOps{}
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(nil)})
	app.Use(RequestID(), AuditTrail(ops, zap.NewNop()))
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(helper.LocUserID, "user-1")
		return c.Next()
	})
	app.Get("/seats", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	app.Post("/seats", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusCreated) })
	app.Delete("/seats/:id", func(c *fiber.Ctx) error { return fiber.NewError(fiber.StatusNotFound, "Seat not found") })

	for _, req := range []struct{ method, path string }{
		{fiber.MethodGet, "/seats"},
		{fiber.MethodPost, "/seats"},
		{fiber.MethodDelete, "/seats/abc"},
	} {
		_, err := app.Test(httptest.NewRequest(req.method, req.path, nil))
		require.NoError(t, err)
	}

	require.Eventually(t, func() bool { return len(ops.snapshot()) == 2 }, time.Second, 10*time.Millisecond)
	got := map[string]model.OperationModel{}
	for _, op := range ops.snapshot() {
		got[op.Method] = op
	}
	assert.Equal(t, fiber.StatusCreated, got[fiber.MethodPost].Status)
	assert.Equal(t, "user-1", got[fiber.MethodPost].UserID)
	assert.NotEmpty(t, got[fiber.MethodPost].RequestID)
	assert.Equal(t, "/seats/abc", got[fiber.MethodDelete].Path)
	assert.Equal(t, fiber.StatusNotFound, got[fiber.MethodDelete].Status)
}

// slowOps reads the operation only after the request has been recycled.
type slowOps struct {
	recordedOps
	delay time.Duration
}

func (r *slowOps) Create(ctx context.Context, op *model.OperationModel) error {
	time.Sleep(r.delay)
	return r.recordedOps.Create(ctx, op)
}

func TestAuditTrailKeepsPerRequestHeaders(t *testing.T) {
	ops := &slowOps{delay: 100 * time.Millisecond}
	app := fiber.New(fiber.Config{
		ErrorHandler:            ErrorHandler(nil),
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"},
	})
	app.Use(RequestID(), AuditTrail(ops, zap.NewNop()))
	app.Post("/bookings", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusCreated) })

	want := map[string]string{
		"AAAAAAAAAAAAAAAA": "1.1.1.1",
		"BBBBBBBBBBBBBBBB": "2.2.2.2",
		"CCCCCCCCCCCCCCCC": "3.3.3.3",
	}
	for reqID, ip := range want {
		req := httptest.NewRequest(fiber.MethodPost, "/bookings", nil)
		req.Header.Set(fiber.HeaderXRequestID, reqID)
		req.Header.Set(fiber.HeaderXForwardedFor, ip)
		_, err := app.Test(req)
		require.NoError(t, err)
	}

	require.Eventually(t, func() bool { return len(ops.snapshot()) == len(want) }, 2*time.Second, 10*time.Millisecond)
	for _, op := range ops.snapshot() {
		assert.Equal(t, want[op.RequestID], op.IP, "request %s", op.RequestID)
		assert.Equal(t, "/bookings", op.Path)
	}
}

func TestAuditTrailWithoutRepo(t *testing.T) {
	app := fiber.New()
	app.Use(AuditTrail(nil, zap.NewNop()))
	app.Post("/x", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })
	resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/x", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
}
