package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/mvonombogho/blood-bank-system/internal/config"
	"github.com/mvonombogho/blood-bank-system/internal/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:          "test_secret",
			AccessTokenMins: 15,
		},
	}
}

func appWithRole(cfg *config.Config, guard fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Get("/guarded", AuthMiddleware(cfg), guard, func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func tokenFor(t *testing.T, cfg *config.Config, role string) string {
	t.Helper()
	token, err := jwt.GenerateAccessToken(1, "staff@bloodbank.local", "Staff", role, cfg.JWT.Secret, cfg.JWT.AccessTokenMins)
	require.NoError(t, err)
	return token
}

func TestAuthMiddleware_MissingToken(t *testing.T) {
	cfg := testConfig()
	app := appWithRole(cfg, SuperAdminOnly())

	req := httptest.NewRequest("GET", "/guarded", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_BearerHeader(t *testing.T) {
	cfg := testConfig()
	app := appWithRole(cfg, AdminOrSuperAdmin())

	req := httptest.NewRequest("GET", "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, cfg, "admin"))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestSuperAdminOnly_RejectsAdmin(t *testing.T) {
	cfg := testConfig()
	app := appWithRole(cfg, SuperAdminOnly())

	req := httptest.NewRequest("GET", "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, cfg, "admin"))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestSuperAdminOnly_AllowsSuperAdmin(t *testing.T) {
	cfg := testConfig()
	app := appWithRole(cfg, SuperAdminOnly())

	req := httptest.NewRequest("GET", "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, cfg, "super_admin"))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAdminOrSuperAdmin_RejectsUser(t *testing.T) {
	cfg := testConfig()
	app := appWithRole(cfg, AdminOrSuperAdmin())

	req := httptest.NewRequest("GET", "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, cfg, "user"))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestCacheControl_SetsHeaderOnGet(t *testing.T) {
	app := fiber.New()
	app.Get("/cached", MasterDataCache(), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	req := httptest.NewRequest("GET", "/cached", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "public, max-age=3600", resp.Header.Get("Cache-Control"))
}
