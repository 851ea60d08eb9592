package middleware

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/example/purnachandra/internal/config"
	"github.com/example/purnachandra/internal/utils"
)

func newTestApp(t *testing.T) (*fiber.App, *config.Config) {
	t.Helper()
	cfg := &config.Config{AuthJWTSecret: "test-secret", AdminRole: "admin"}

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(zap.NewNop())})
	protected := app.Group("/admin", AuthMiddleware(cfg), RequireRole(cfg.AdminRole))
	protected.Get("/whoami", func(c *fiber.Ctx) error {
		principal, _ := GetPrincipal(c)
		return c.JSON(principal)
	})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return errors.New("database exploded")
	})
	return app, cfg
}

func bearer(t *testing.T, cfg *config.Config, roles ...string) string {
	t.Helper()
	token, err := utils.GenerateToken(cfg.AuthJWTSecret, "", utils.Principal{UserID: "user_1", Roles: roles}, time.Hour)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestAuthMiddlewareRejectsMissingAndInvalidTokens(t *testing.T) {
	app, _ := newTestApp(t)

	cases := map[string]string{
		"missing header": "",
		"wrong scheme":   "Basic abc",
		"garbage token":  "Bearer not-a-jwt",
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(fiber.MethodGet, "/admin/whoami", nil)
			if header != "" {
				req.Header.Set(fiber.HeaderAuthorization, header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		})
	}
}

func TestRequireRoleForbidsNonAdmins(t *testing.T) {
	app, cfg := newTestApp(t)

	req := httptest.NewRequest(fiber.MethodGet, "/admin/whoami", nil)
	req.Header.Set(fiber.HeaderAuthorization, bearer(t, cfg, "editor"))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestRequireRoleAllowsAdmins(t *testing.T) {
	app, cfg := newTestApp(t)

	req := httptest.NewRequest(fiber.MethodGet, "/admin/whoami", nil)
	req.Header.Set(fiber.HeaderAuthorization, bearer(t, cfg, "admin"))
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var principal utils.Principal
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&principal))
	assert.Equal(t, "user_1", principal.UserID)
}

func TestErrorHandlerHidesUnexpectedErrors(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "internal server error", body["error"])
}
