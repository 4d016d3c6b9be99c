package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerAdminApp() *fiber.App {
	app := fiber.New()
	handler := NewAuthHandler(nil, nil)
	app.Post("/auth/register-admin", handler.RegisterAdmin)
	return app
}

func postRegisterAdmin(t *testing.T, app *fiber.App, payload map[string]string) (int, string) {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/auth/register-admin", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var parsed struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
	return resp.StatusCode, parsed.Message
}

// The missing-field message must follow the declared field order, not
// vary between requests.
func TestRegisterAdmin_RequiredFieldOrder(t *testing.T) {
	app := registerAdminApp()

	for i := 0; i < 5; i++ {
		status, msg := postRegisterAdmin(t, app, map[string]string{})
		assert.Equal(t, fiber.StatusBadRequest, status)
		assert.Equal(t, "Name is required", msg)
	}

	status, msg := postRegisterAdmin(t, app, map[string]string{
		"name": "Admin One",
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Email is required", msg)

	status, msg = postRegisterAdmin(t, app, map[string]string{
		"name":     "Admin One",
		"email":    "admin@bloodbank.local",
		"password": "secret123",
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Phone number is required", msg)
}

func TestRegisterAdmin_ShortPassword(t *testing.T) {
	app := registerAdminApp()

	status, msg := postRegisterAdmin(t, app, map[string]string{
		"name":         "Admin One",
		"email":        "admin@bloodbank.local",
		"password":     "short",
		"phone_number": "0800000000",
		"position":     "Coordinator",
		"department":   "Administration",
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Password must be at least 6 characters", msg)
}
