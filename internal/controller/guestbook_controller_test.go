package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oak-village-be/internal/pkg/serverutils"
	"oak-village-be/internal/repository/localstore"
	"oak-village-be/internal/service"
)

func newGuestbookApp(t *testing.T) *fiber.App {
	t.Helper()
	repo, err := localstore.NewGuestbookRepository(filepath.Join(t.TempDir(), "gb"))
	require.NoError(t, err)

	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())
	NewGuestbookController(service.NewGuestbookService(repo)).RegisterRoutes(app.Group("/api"))
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, target string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()
	var reader *bytes.Buffer
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(b)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var envelope map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return resp, envelope
}

func TestGuestbookSignAndList(t *testing.T) {
	app := newGuestbookApp(t)

	resp, envelope := doJSON(t, app, http.MethodPost, "/api/guestbook/v1", map[string]string{"name": "Mira"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, envelope["success"])

	data := envelope["data"].(map[string]interface{})
	assert.Equal(t, []interface{}{"Mira"}, data["signatures"])

	resp, envelope = doJSON(t, app, http.MethodGet, "/api/guestbook/v1", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	data = envelope["data"].(map[string]interface{})
	assert.Equal(t, []interface{}{"Mira"}, data["signatures"])
}

func TestGuestbookSignValidation(t *testing.T) {
	app := newGuestbookApp(t)

	resp, envelope := doJSON(t, app, http.MethodPost, "/api/guestbook/v1", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, false, envelope["success"])
}
