package middleware_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-expiry-tracker/internal/middleware"
	"go-expiry-tracker/internal/model"
	"go-expiry-tracker/internal/service"
	"go-expiry-tracker/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAuth accepts a fixed set of tokens
type fakeAuth struct {
	users map[string]*model.User
	errs  map[string]error
}

func (f *fakeAuth) Authenticate(_ context.Context, token string) (*model.User, error) {
	if err, ok := f.errs[token]; ok {
		return nil, err
	}
	if u, ok := f.users[token]; ok {
		return u, nil
	}
	return nil, jwt.ErrInvalidToken
}

func newFakeAuth() *fakeAuth {
	staff := &model.User{Username: "staff", Email: "staff@example.com", Role: model.RoleStaff}
	staff.ID = uuid.New()
	admin := &model.User{Username: "admin", Email: "admin@example.com", Role: model.RoleAdmin}
	admin.ID = uuid.New()
	return &fakeAuth{
		users: map[string]*model.User{"staff-token": staff, "admin-token": admin},
		errs:  map[string]error{"old-token": service.ErrSessionSuperseded},
	}
}

func buildTestApp(guards ...fiber.Handler) *fiber.App {
	app := fiber.New()
	handlers := append([]fiber.Handler{middleware.RequireAuth(newFakeAuth())}, guards...)
	handlers = append(handlers, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true, "user_id": c.Locals("user_id"), "role": c.Locals("user_role")})
	})
	app.Get("/protected", handlers...)
	return app
}

func doRequest(t *testing.T, app *fiber.App, authHeader string) (*http.Response, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))
	return resp, body
}

func TestRequireAuth(t *testing.T) {
	app := buildTestApp()

	tests := []struct {
		name   string
		header string
		status int
		errMsg string
	}{
		{"missing header", "", 401, "Missing authorization token"},
		{"wrong scheme", "Basic abc", 401, "invalid authorization format. Use: Bearer <token>"},
		{"unknown token", "Bearer nope", 401, "Invalid or expired token"},
		{"superseded session", "Bearer old-token", 401, service.ErrSessionSuperseded.Error()},
		{"valid token", "Bearer staff-token", 200, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := doRequest(t, app, tt.header)
			assert.Equal(t, tt.status, resp.StatusCode)
			if tt.errMsg != "" {
				assert.Equal(t, tt.errMsg, body["error"])
			} else {
				assert.Equal(t, "staff", body["role"])
				assert.NotEmpty(t, body["user_id"])
			}
		})
	}
}

func TestRequirePrivilege(t *testing.T) {
	app := buildTestApp(middleware.RequirePrivilege(model.PrivUserCreate))

	resp, body := doRequest(t, app, "Bearer staff-token")
	assert.Equal(t, 403, resp.StatusCode)
	assert.Contains(t, body["error"], "user:create")

	resp, _ = doRequest(t, app, "Bearer admin-token")
	assert.Equal(t, 200, resp.StatusCode)
}

func TestRequireAnyPrivilege(t *testing.T) {
	app := buildTestApp(middleware.RequireAnyPrivilege(model.PrivUserView, model.PrivDashboardView))

	resp, _ := doRequest(t, app, "Bearer staff-token")
	assert.Equal(t, 200, resp.StatusCode)

	app = buildTestApp(middleware.RequireAnyPrivilege(model.PrivUserView, model.PrivBrandCreate))
	resp, _ = doRequest(t, app, "Bearer staff-token")
	assert.Equal(t, 403, resp.StatusCode)
}

func TestRequireRole(t *testing.T) {
	app := buildTestApp(middleware.RequireRole(model.RoleAdmin, model.RoleManager))

	resp, _ := doRequest(t, app, "Bearer staff-token")
	assert.Equal(t, 403, resp.StatusCode)

	resp, body := doRequest(t, app, "Bearer admin-token")
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "admin", body["role"])
}
