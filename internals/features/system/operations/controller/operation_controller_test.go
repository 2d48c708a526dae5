package controller

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"readingroom_backend/internals/constants"
	database "readingroom_backend/internals/databases"
	"readingroom_backend/internals/features/system/operations/model"
	"readingroom_backend/internals/features/system/operations/repository"
	helper "readingroom_backend/internals/helpers"
	"readingroom_backend/internals/middlewares"
	authMiddleware "readingroom_backend/internals/middlewares/auth"
)

type memOperations struct {
	rows []model.OperationModel
	last repository.ListFilter
}

func (m *memOperations) Create(_ context.Context, op *model.OperationModel) error {
	m.rows = append(m.rows, *op)
	return nil
}

func (m *memOperations) FindByID(_ context.Context, id string) (*model.OperationModel, error) {
	for _, op := range m.rows {
		if op.ID == id {
			return &op, nil
		}
	}
	return nil, database.ErrNotFound
}

func (m *memOperations) List(_ context.Context, f repository.ListFilter) ([]model.OperationModel, int64, error) {
	m.last = f
	out := []model.OperationModel{}
	for _, op := range m.rows {
		if f.Method != "" && op.Method != f.Method {
			continue
		}
		if f.UserID != "" && op.UserID != f.UserID {
			continue
		}
		out = append(out, op)
	}
	total := int64(len(out))
	if f.Offset < len(out) {
		out = out[f.Offset:]
	} else {
		out = out[:0]
	}
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, total, nil
}

func newOperationApp(repo *memOperations) *fiber.App {
	ctrl := NewOperationController(repo)
	gate := func(c *fiber.Ctx) error {
		c.Locals(helper.LocUserID, "admin-1")
		c.Locals(helper.LocUserRole, c.Get("X-Role"))
		return c.Next()
	}
	adminOnly := authMiddleware.OnlyRoles(constants.RoleErrorAdmin("the audit trail"), constants.RoleAdmin)

	app := fiber.New(fiber.Config{ErrorHandler: middlewares.ErrorHandler(nil)})
	app.Get("/operations", gate, adminOnly, ctrl.List)
	app.Get("/operations/:id", gate, adminOnly, ctrl.Get)
	return app
}

func get(t *testing.T, app *fiber.App, path, role string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodGet, path, nil)
	req.Header.Set("X-Role", role)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	out := map[string]any{}
	raw, _ := io.ReadAll(resp.Body)
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return resp.StatusCode, out
}

func seedOperations() *memOperations {
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	repo := &memOperations{}
	for i, m := range []string{fiber.MethodPost, fiber.MethodPut, fiber.MethodPost, fiber.MethodDelete} {
		user := "user-a"
		if i%2 == 1 {
			user = "user-b"
		}
		_ = repo.Create(context.Background(), &model.OperationModel{
			ID:        uuid.NewString(),
			Method:    m,
			Path:      "/api/bookings",
			Status:    fiber.StatusOK,
			UserID:    user,
			CreatedAt: now.Add(time.Duration(i) * time.Minute),
		})
	}
	return repo
}

func TestOperationsAreAdminOnly(t *testing.T) {
	repo := seedOperations()
	app := newOperationApp(repo)

	for _, path := range []string{"/operations", "/operations/" + repo.rows[0].ID} {
		status, body := get(t, app, path, constants.RoleStaff)
		assert.Equal(t, fiber.StatusForbidden, status, path)
		assert.Equal(t, constants.RoleErrorAdmin("the audit trail"), body["message"], path)
	}
}

func TestListOperations(t *testing.T) {
	cases := []struct {
		name       string
		query      string
		wantCount  int
		wantTotal  float64
		wantFilter repository.ListFilter
	}{
		{"all", "", 4, 4, repository.ListFilter{Limit: helper.DefaultPerPage}},
		{"method is upper-cased", "?method=post", 2, 2, repository.ListFilter{Method: "POST", Limit: helper.DefaultPerPage}},
		{"by user", "?user_id=user-b", 2, 2, repository.ListFilter{UserID: "user-b", Limit: helper.DefaultPerPage}},
		{"second page", "?page=2&per_page=3", 1, 4, repository.ListFilter{Offset: 3, Limit: 3}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := seedOperations()
			status, body := get(t, newOperationApp(repo), "/operations"+tc.query, constants.RoleAdmin)
			require.Equal(t, fiber.StatusOK, status, body)
			assert.Len(t, body["data"], tc.wantCount)
			assert.Equal(t, tc.wantTotal, body["pagination"].(map[string]any)["total"])
			assert.Equal(t, tc.wantFilter, repo.last)
		})
	}
}

func TestGetOperation(t *testing.T) {
	repo := seedOperations()
	app := newOperationApp(repo)

	status, body := get(t, app, "/operations/"+repo.rows[1].ID, constants.RoleAdmin)
	require.Equal(t, fiber.StatusOK, status)
	data := body["data"].(map[string]any)
	assert.Equal(t, fiber.MethodPut, data["method"])
	assert.Equal(t, "user-b", data["user_id"])

	status, body = get(t, app, "/operations/"+uuid.NewString(), constants.RoleAdmin)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "Operation not found", body["message"])

	status, _ = get(t, app, "/operations/not-a-uuid", constants.RoleAdmin)
	assert.Equal(t, fiber.StatusBadRequest, status)
}
