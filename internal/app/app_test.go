package app

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finmodel/internal/config"
	apierrors "finmodel/internal/errors"
	custommw "finmodel/internal/middleware"
	"finmodel/internal/services"
)

func newTestApplication(t *testing.T) *Application {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	app := &Application{
		Config: &config.Config{
			Server: config.ServerConfig{
				Port:            0,
				ReadTimeout:     5 * time.Second,
				WriteTimeout:    5 * time.Second,
				IdleTimeout:     5 * time.Second,
				ShutdownTimeout: time.Second,
			},
			Export: config.ExportConfig{SheetName: "Financial Data"},
		},
		Logger:          logger,
		ModelingService: services.NewModelingService(logger),
		Metrics:         custommw.NewMetrics(),
		errorHandler:    apierrors.NewErrorHandler(logger, false),
	}
	app.setupRouter()
	app.createServer()
	return app
}

func TestRouterHealthEndpoint(t *testing.T) {
	app := newTestApplication(t)

	req := httptest.NewRequest(http.MethodGet, "/api/healthz", nil)
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestRouterModelRoutesMounted(t *testing.T) {
	app := newTestApplication(t)

	payload, err := json.Marshal(map[string]interface{}{
		"forecast":             "100000, 110000, 121000, 133100",
		"discount_rate":        0.10,
		"terminal_growth_rate": 0.02,
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/model/dcf", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.InDelta(t, 1522727.27, body["valuation"].(float64), 0.01)
}

func TestRouterUnknownRouteIsProblem(t *testing.T) {
	app := newTestApplication(t)

	req := httptest.NewRequest(http.MethodGet, "/api/nope", nil)
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "/errors/not-found", body["type"])
}

func TestRouterMetricsEndpoint(t *testing.T) {
	app := newTestApplication(t)

	// generate one request so a counter exists
	req := httptest.NewRequest(http.MethodGet, "/api/healthz", nil)
	app.Router.ServeHTTP(httptest.NewRecorder(), req)

	req = httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "finmodel_http_requests_total")
}

func TestRunShutsDownOnContextCancel(t *testing.T) {
	app := newTestApplication(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down in time")
	}
}
