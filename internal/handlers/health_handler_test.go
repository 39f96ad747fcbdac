package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"katalog/internal/config"
)

func newHealthApp(t *testing.T) *fiber.App {
	t.Helper()
	cfg := &config.Config{
		AppName:     "katalog",
		AppVersion:  "0.1.0",
		Environment: "development",
	}
	app := fiber.New()
	NewHealthHandler(cfg).RegisterRoutes(app)
	return app
}

func getJSON(t *testing.T, app *fiber.App, path string) (*http.Response, map[string]string) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	var out map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp, out
}

func TestHealthEndpoint(t *testing.T) {
	app := newHealthApp(t)

	resp, out := getJSON(t, app, "/health")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "healthy", out["status"])
	assert.Equal(t, "katalog", out["app_name"])
	assert.Equal(t, "0.1.0", out["version"])
	assert.Equal(t, "development", out["environment"])

	ts, err := time.Parse(time.RFC3339, out["timestamp"])
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC(), ts, time.Minute)
}

func TestReadyEndpoint(t *testing.T) {
	app := newHealthApp(t)

	resp, out := getJSON(t, app, "/ready")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, map[string]string{"status": "ready"}, out)
}

func TestLiveEndpoint(t *testing.T) {
	app := newHealthApp(t)

	resp, out := getJSON(t, app, "/live")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, map[string]string{"status": "alive"}, out)
}
