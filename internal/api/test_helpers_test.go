package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"github.com/terraincognita07/herflow/internal/db"
	"github.com/terraincognita07/herflow/internal/metrics"
	"github.com/terraincognita07/herflow/internal/models"
	"github.com/terraincognita07/herflow/internal/services"
)

var testNow = time.Date(2026, time.February, 10, 9, 30, 0, 0, time.UTC)

func newTestApp(t *testing.T) (*fiber.App, *services.DomainStore) {
	t.Helper()
	return newTestAppWithMetrics(t, nil)
}

func newTestAppWithMetrics(t *testing.T, recorder metrics.Recorder) (*fiber.App, *services.DomainStore) {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "herflow.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(database) })

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	store := services.NewDomainStore(db.NewStateRepository(database), logger, models.DefaultSettings())
	require.NoError(t, store.Load())

	handler := NewHandler(store, time.UTC, logger)
	handler.now = func() time.Time { return testNow }
	if recorder != nil {
		handler.WithMetrics(recorder)
	}

	app := fiber.New()
	RegisterRoutes(app, handler)
	return app, store
}

func doJSON(t *testing.T, app *fiber.App, method string, path string, payload any) *http.Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(encoded)
	}

	request := httptest.NewRequest(method, path, body)
	if payload != nil {
		request.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	}
	response, err := app.Test(request, -1)
	require.NoError(t, err, "%s %s", method, path)
	t.Cleanup(func() { _ = response.Body.Close() })
	return response
}

func decodeBody(t *testing.T, response *http.Response, target any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(response.Body).Decode(target))
}

func requireStatus(t *testing.T, response *http.Response, expected int) {
	t.Helper()
	if response.StatusCode != expected {
		body, _ := io.ReadAll(response.Body)
		t.Fatalf("expected status %d, got %d: %s", expected, response.StatusCode, string(body))
	}
}

func mustDate(t *testing.T, raw string) models.Date {
	t.Helper()
	day, err := models.ParseDate(raw)
	require.NoError(t, err)
	return day
}

// onboard runs the whole onboarding flow with a 28-day cycle.
func onboard(t *testing.T, app *fiber.App, lastStart string) {
	t.Helper()
	requireStatus(t, doJSON(t, app, http.MethodPost, "/api/onboarding/begin", map[string]any{"name": "Maya"}), http.StatusCreated)
	requireStatus(t, doJSON(t, app, http.MethodPost, "/api/onboarding/cycle-length", map[string]any{"value": 28}), http.StatusOK)
	requireStatus(t, doJSON(t, app, http.MethodPost, "/api/onboarding/period-length", map[string]any{"value": 5}), http.StatusOK)
	requireStatus(t, doJSON(t, app, http.MethodPost, "/api/onboarding/complete", map[string]any{"startDate": lastStart}), http.StatusOK)
}
