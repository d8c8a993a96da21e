package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	apierrors "finmodel/internal/errors"
	"finmodel/internal/services"
)

func newTestHandler() *ModelHandler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := services.NewModelingService(logger)
	errorHandler := apierrors.NewErrorHandler(logger, false)
	return NewModelHandler(service, logger, errorHandler, "Financial Data")
}

func postJSON(t *testing.T, router http.Handler, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestComputeIncomeStatementEndpoint(t *testing.T) {
	router := newTestHandler().Routes()

	rec := postJSON(t, router, "/income-statement", map[string]interface{}{
		"revenue":            500000,
		"cogs":               300000,
		"operating_expenses": 100000,
		"tax_rate":           0.20,
	})

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.InDelta(t, 200000, body["gross_profit"], 1e-9)
	assert.InDelta(t, 100000, body["operating_income"], 1e-9)
	assert.InDelta(t, 80000, body["net_income"], 1e-9)
	assert.InDelta(t, 20, body["tax_rate_percent"], 1e-9)
}

func TestComputeIncomeStatementRejectsInvalidInput(t *testing.T) {
	router := newTestHandler().Routes()

	rec := postJSON(t, router, "/income-statement", map[string]interface{}{
		"revenue":  -100,
		"tax_rate": 0.20,
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "/errors/validation", body["type"])
}

func TestComputeCashFlowEndpoint(t *testing.T) {
	router := newTestHandler().Routes()

	rec := postJSON(t, router, "/cash-flow", map[string]interface{}{
		"revenue":                500000,
		"cogs":                   300000,
		"operating_expenses":     100000,
		"tax_rate":               0.20,
		"depreciation":           20000,
		"capex":                  30000,
		"working_capital_change": 5000,
	})

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.NotEmpty(t, body["run_id"])

	cf, ok := body["cash_flow_statement"].(map[string]interface{})
	require.True(t, ok)
	assert.InDelta(t, 95000, cf["operating_cash_flow"], 1e-9)
	assert.InDelta(t, -30000, cf["investing_cash_flow"], 1e-9)
	assert.InDelta(t, 65000, cf["total_cash_flow"], 1e-9)
}

func TestComputeDCFEndpoint(t *testing.T) {
	router := newTestHandler().Routes()

	rec := postJSON(t, router, "/dcf", map[string]interface{}{
		"forecast":             "100000, 110000, 121000, 133100",
		"discount_rate":        0.10,
		"terminal_growth_rate": 0.02,
	})

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.InDelta(t, 1522727.27, body["valuation"].(float64), 0.01)
	assert.InDelta(t, 4, body["periods"], 1e-9)
}

func TestComputeDCFEqualRates(t *testing.T) {
	router := newTestHandler().Routes()

	rec := postJSON(t, router, "/dcf", map[string]interface{}{
		"forecast":             "100000",
		"discount_rate":        0.05,
		"terminal_growth_rate": 0.05,
	})

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "/errors/division-by-zero", body["type"])
	assert.InDelta(t, 0.05, body["discount_rate"], 1e-12)
}

func TestComputeDCFUnparsableForecast(t *testing.T) {
	router := newTestHandler().Routes()

	rec := postJSON(t, router, "/dcf", map[string]interface{}{
		"forecast":             "100, abc",
		"discount_rate":        0.10,
		"terminal_growth_rate": 0.02,
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "/errors/validation", body["type"])
	assert.Equal(t, "forecast", body["field"])
}

func TestComputeDCFMissingForecast(t *testing.T) {
	router := newTestHandler().Routes()

	rec := postJSON(t, router, "/dcf", map[string]interface{}{
		"discount_rate":        0.10,
		"terminal_growth_rate": 0.02,
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSensitivityEndpoint(t *testing.T) {
	router := newTestHandler().Routes()

	rec := postJSON(t, router, "/sensitivity", map[string]interface{}{
		"forecast":    "100000, 110000, 121000, 133100",
		"axis":        "discount_rate",
		"fixed_value": 0.02,
	})

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)

	points, ok := body["points"].([]interface{})
	require.True(t, ok)
	assert.Len(t, points, 15)
	assert.Equal(t, "discount_rate", body["axis"])
}

func TestSensitivityEndpointCustomRange(t *testing.T) {
	router := newTestHandler().Routes()

	rec := postJSON(t, router, "/sensitivity", map[string]interface{}{
		"forecast":    "100000",
		"axis":        "growth_rate",
		"fixed_value": 0.10,
		"range":       map[string]float64{"start": 0.01, "stop": 0.03, "step": 0.01},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	points := body["points"].([]interface{})
	assert.Len(t, points, 2)
}

func TestSensitivityEndpointAbortsOnDegeneratePoint(t *testing.T) {
	router := newTestHandler().Routes()

	// the default discount sweep passes through 0.07, colliding with the
	// fixed growth rate
	rec := postJSON(t, router, "/sensitivity", map[string]interface{}{
		"forecast":    "100000",
		"axis":        "discount_rate",
		"fixed_value": 0.07,
	})

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "/errors/sweep-aborted", body["type"])
	assert.Equal(t, "/errors/division-by-zero", body["cause"])
	assert.InDelta(t, 0.07, body["swept_value"], 1e-12)
}

func TestSensitivityEndpointRejectsUnknownAxis(t *testing.T) {
	router := newTestHandler().Routes()

	rec := postJSON(t, router, "/sensitivity", map[string]interface{}{
		"forecast":    "100000",
		"axis":        "wacc",
		"fixed_value": 0.02,
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExportEndpointXLSX(t *testing.T) {
	router := newTestHandler().Routes()

	rec := postJSON(t, router, "/export", map[string]interface{}{
		"revenue":                500000,
		"cogs":                   300000,
		"operating_expenses":     100000,
		"tax_rate":               0.20,
		"depreciation":           20000,
		"capex":                  30000,
		"working_capital_change": 5000,
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "financial_model.xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Financial Data")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Revenue", rows[0][0])
}

func TestExportEndpointCSV(t *testing.T) {
	router := newTestHandler().Routes()

	rec := postJSON(t, router, "/export", map[string]interface{}{
		"revenue":  500000,
		"cogs":     300000,
		"tax_rate": 0.20,
		"format":   "csv",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "Revenue")
}

func TestHealthCheckEndpoint(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewHealthHandler(logger, "1.0.0")

	req := httptest.NewRequest(http.MethodGet, "/api/healthz", nil)
	rec := httptest.NewRecorder()
	handler.HealthCheck(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "1.0.0", body["version"])
}
