package http

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/telecom-triage/internal/observability"
	apperrors "github.com/spec-kit/telecom-triage/pkg/util"
)

func newTestApp(t *testing.T) (*fiber.App, *observability.Metrics) {
	t.Helper()
	app := fiber.New()
	metrics := observability.NewMetrics()
	RegisterMiddlewares(app, zap.NewNop(), metrics, 0)
	return app, metrics
}

func performRequest(t *testing.T, app *fiber.App, method, target string) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(method, target, nil))
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body map[string]any
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &body))
	}
	return resp, body
}

func TestErrorEnvelopeDomainError(t *testing.T) {
	app, _ := newTestApp(t)
	app.Get("/missing", func(c *fiber.Ctx) error {
		return apperrors.NewNotFound("grievance", map[string]any{"id": 9})
	})

	resp, body := performRequest(t, app, http.MethodGet, "/missing")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	errBody, ok := body["error"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "NOT_FOUND", errBody["code"])
	require.Equal(t, "grievance not found", errBody["message"])
}

func TestErrorEnvelopeFiberError(t *testing.T) {
	app, _ := newTestApp(t)
	app.Get("/forbidden", func(c *fiber.Ctx) error {
		return fiber.NewError(http.StatusForbidden, "operator required")
	})

	resp, body := performRequest(t, app, http.MethodGet, "/forbidden")
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	errBody, ok := body["error"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "FORBIDDEN", errBody["code"])
}

func TestErrorEnvelopePanicRecovery(t *testing.T) {
	app, metrics := newTestApp(t)
	app.Get("/boom", func(c *fiber.Ctx) error {
		panic("unexpected")
	})

	resp, body := performRequest(t, app, http.MethodGet, "/boom")
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	errBody, ok := body["error"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "INTERNAL_ERROR", errBody["code"])
	require.NotNil(t, metrics)
}

func TestSuccessPassthrough(t *testing.T) {
	app, _ := newTestApp(t)
	app.Get("/ok", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"data": "ok"})
	})

	resp, body := performRequest(t, app, http.MethodGet, "/ok")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "ok", body["data"])
}
