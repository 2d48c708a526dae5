package app

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"readingroom_backend/internals/appctx"
	"readingroom_backend/internals/configs"
	"readingroom_backend/internals/constants"
	helper "readingroom_backend/internals/helpers"
	"readingroom_backend/internals/metrics"
	authMiddleware "readingroom_backend/internals/middlewares/auth"
	"readingroom_backend/internals/testutil"
)

const stubMessage = "stub gate says no"

func testConfig() *configs.Config {
	return &configs.Config{
		JWTSecret:        "app-test-access",
		JWTRefreshSecret: "app-test-refresh",
		CORSOrigins:      []string{"*"},
	}
}

// newStubbed builds the app with a gate that rejects everything.
func newStubbed(t *testing.T) *fiber.App {
	t.Helper()
	return New(&appctx.Context{
		Config: testConfig(),
		Repos: appctx.Repositories{
			Users:  testutil.NewMemoryUsers(),
			Tokens: testutil.NewMemoryTokens(),
		},
		Gate: func(c *fiber.Ctx) error {
			return fiber.NewError(fiber.StatusUnauthorized, stubMessage)
		},
	})
}

// newWithGate builds the app with the real token gate over in-memory stores.
func newWithGate(t *testing.T) *fiber.App {
	t.Helper()
	cfg := testConfig()
	users := testutil.NewMemoryUsers()
	tokens := testutil.NewMemoryTokens()
	return New(&appctx.Context{
		Config: cfg,
		Repos:  appctx.Repositories{Users: users, Tokens: tokens},
		Gate: authMiddleware.AuthMiddleware(authMiddleware.Options{
			Secret: cfg.JWTSecret,
			Tokens: tokens,
			Users:  users,
		}),
	})
}

func call(t *testing.T, app *fiber.App, method, path, body, bearer string) (*http.Response, map[string]any) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if bearer != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+bearer)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	out := map[string]any{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp, out
}

func TestHealth(t *testing.T) {
	resp, body := call(t, newStubbed(t), fiber.MethodGet, "/api/health", "", "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
	_, err := time.Parse(time.RFC3339, body["timestamp"].(string))
	assert.NoError(t, err)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestUnknownAPIRoute(t *testing.T) {
	app := newStubbed(t)
	for _, path := range []string{"/api/x", "/api/auth/nope"} {
		resp, body := call(t, app, fiber.MethodGet, path, "", "")
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode, path)
		assert.Equal(t, "not_found", body["code"])
		assert.Equal(t, "Route "+path+" not found", body["message"])
		assert.EqualValues(t, 404, body["status"])
	}
}

func TestProtectedRoutesUseGate(t *testing.T) {
	app := newStubbed(t)
	cases := []struct{ method, path string }{
		{fiber.MethodGet, "/api/auth/me"},
		{fiber.MethodPut, "/api/auth/profile"},
		{fiber.MethodPut, "/api/auth/change-password"},
		{fiber.MethodPost, "/api/auth/logout"},
		{fiber.MethodGet, "/api/students"},
		{fiber.MethodGet, "/api/seats"},
		{fiber.MethodGet, "/api/bookings"},
		{fiber.MethodGet, "/api/payments"},
		{fiber.MethodGet, "/api/reports/occupancy"},
		{fiber.MethodGet, "/api/operations"},
		{fiber.MethodGet, "/api/system/status"},
		{fiber.MethodGet, "/api/financial/summary"},
	}
	for _, tc := range cases {
		resp, body := call(t, app, tc.method, tc.path, "", "")
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, tc.path)
		// the stub answered, so no controller ran
		assert.Equal(t, stubMessage, body["message"], tc.path)
	}
}

func TestAdminOnlyRoutesRejectStaff(t *testing.T) {
	app := New(&appctx.Context{
		Config: testConfig(),
		Gate: func(c *fiber.Ctx) error {
			c.Locals(helper.LocUserID, "staff-1")
			c.Locals(helper.LocUserRole, constants.RoleStaff)
			return c.Next()
		},
	})
	cases := []struct{ method, path, body string }{
		{fiber.MethodPut, "/api/system/settings", `{"room_name":"Hall B"}`},
		{fiber.MethodGet, "/api/operations", ""},
		{fiber.MethodGet, "/api/operations/" + uuid.NewString(), ""},
	}
	for _, tc := range cases {
		resp, _ := call(t, app, tc.method, tc.path, tc.body, "")
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode, tc.path)
	}
}

func TestRegisterLoginArePublic(t *testing.T) {
	app := newStubbed(t)

	resp, body := call(t, app, fiber.MethodPost, "/api/auth/register",
		`{"user_name":"desk01","email":"desk@example.com","password":"secret123"}`, "")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, body)
	data := body["data"].(map[string]any)
	assert.Equal(t, "desk@example.com", data["email"])
	assert.NotContains(t, data, "password")

	resp, body = call(t, app, fiber.MethodPost, "/api/auth/login",
		`{"identifier":"desk01","password":"secret123"}`, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode, body)
	assert.NotEmpty(t, body["data"].(map[string]any)["access_token"])

	resp, _ = call(t, app, fiber.MethodPost, "/api/auth/register",
		`{"user_name":"desk01","email":"desk@example.com","password":"secret123"}`, "")
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestRequestBodyErrors(t *testing.T) {
	app := newStubbed(t)

	resp, body := call(t, app, fiber.MethodPost, "/api/auth/login", `{"identifier": `, "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Malformed JSON body", body["message"])

	resp, body = call(t, app, fiber.MethodPost, "/api/auth/register", `{"user_name":"desk02"}`, "")
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body["errors"], "email")
	assert.Contains(t, body["errors"], "password")
}

func TestRegisterRejectsOverlongPassword(t *testing.T) {
	app := newStubbed(t)

	long := strings.Repeat("a", 73)
	resp, body := call(t, app, fiber.MethodPost, "/api/auth/register",
		`{"user_name":"desk03","email":"desk3@example.com","password":"`+long+`"}`, "")
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body["errors"], "password")
}

func loginFrom(t *testing.T, app *fiber.App, forwardedFor string) int {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodPost, "/api/auth/login",
		strings.NewReader(`{"identifier":"nobody","password":"secret123"}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	req.Header.Set(fiber.HeaderXForwardedFor, forwardedFor)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestLoginLimiterClientAddress(t *testing.T) {
	t.Run("forwarded header ignored by default", func(t *testing.T) {
		app := newStubbed(t)
		for i := 1; i <= 5; i++ {
			assert.NotEqual(t, fiber.StatusTooManyRequests, loginFrom(t, app, fmt.Sprintf("10.0.0.%d", i)))
		}
		assert.Equal(t, fiber.StatusTooManyRequests, loginFrom(t, app, "10.0.0.6"))
	})

	t.Run("forwarded header honoured behind a trusted proxy", func(t *testing.T) {
		cfg := testConfig()
		cfg.TrustedProxies = []string{"0.0.0.0/32"}
		app := New(&appctx.Context{
			Config: cfg,
			Repos: appctx.Repositories{
				Users:  testutil.NewMemoryUsers(),
				Tokens: testutil.NewMemoryTokens(),
			},
			Gate: func(c *fiber.Ctx) error { return c.Next() },
		})
		for i := 1; i <= 6; i++ {
			assert.NotEqual(t, fiber.StatusTooManyRequests, loginFrom(t, app, fmt.Sprintf("10.0.0.%d", i)))
		}
	})
}

func TestSessionLifecycle(t *testing.T) {
	app := newWithGate(t)

	resp, _ := call(t, app, fiber.MethodPost, "/api/auth/register",
		`{"user_name":"desk01","email":"desk@example.com","password":"secret123"}`, "")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, body := call(t, app, fiber.MethodPost, "/api/auth/login",
		`{"identifier":"desk@example.com","password":"secret123"}`, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	token := body["data"].(map[string]any)["access_token"].(string)

	resp, body = call(t, app, fiber.MethodGet, "/api/auth/me", "", token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "desk01", body["data"].(map[string]any)["user_name"])

	resp, _ = call(t, app, fiber.MethodPost, "/api/auth/logout", "", token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = call(t, app, fiber.MethodGet, "/api/auth/me", "", token)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestCookieSessionNeedsCSRFHeader(t *testing.T) {
	app := newWithGate(t)

	resp, _ := call(t, app, fiber.MethodPost, "/api/auth/register",
		`{"user_name":"desk01","email":"desk@example.com","password":"secret123"}`, "")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	resp, body := call(t, app, fiber.MethodPost, "/api/auth/login",
		`{"identifier":"desk01","password":"secret123"}`, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	cookies := map[string]*http.Cookie{}
	for _, ck := range resp.Cookies() {
		cookies[ck.Name] = ck
	}
	require.Contains(t, cookies, "csrf_token")
	assert.False(t, cookies["csrf_token"].HttpOnly)
	assert.True(t, cookies["access_token"].HttpOnly)
	csrf := cookies["csrf_token"].Value
	assert.Equal(t, csrf, body["data"].(map[string]any)["csrf_token"])

	send := func(path, header string) int {
		req := httptest.NewRequest(fiber.MethodPost, path, nil)
		for _, ck := range cookies {
			req.AddCookie(ck)
		}
		if header != "" {
			req.Header.Set("X-CSRF-Token", header)
		}
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		return resp.StatusCode
	}

	// a cross-site form carries the cookies but not the header
	assert.Equal(t, fiber.StatusForbidden, send("/api/auth/refresh-token", ""))
	assert.Equal(t, fiber.StatusForbidden, send("/api/auth/logout", ""))
	assert.Equal(t, fiber.StatusForbidden, send("/api/auth/logout", "forged"))
	assert.Equal(t, fiber.StatusOK, send("/api/auth/logout", csrf))
}

func TestMetricsEndpoint(t *testing.T) {
	cfg := testConfig()
	cfg.MetricsEnabled = true
	app := New(&appctx.Context{
		Config:  cfg,
		Metrics: metrics.New(),
		Gate:    func(c *fiber.Ctx) error { return c.Next() },
	})

	resp, _ := call(t, app, fiber.MethodGet, "/api/health", "", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	req := httptest.NewRequest(fiber.MethodGet, "/metrics", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	raw, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(raw), `readingroom_http_requests_total{method="GET",route="/api/health",status_code="200"} 1`)
}
