package errors

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finmodel/internal/finance"
)

func testHandler() *ErrorHandler {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	return NewErrorHandler(logger, false)
}

func TestErrorToProblemValidation(t *testing.T) {
	h := testHandler()
	r := httptest.NewRequest(http.MethodPost, "/api/model/dcf", nil)

	err := &finance.ValidationError{
		Field:   "forecast",
		Message: "forecast must contain at least one period",
	}
	problem := h.ErrorToProblem(err, r)

	assert.Equal(t, http.StatusBadRequest, problem.Status)
	assert.Equal(t, TypeValidation, problem.Type)
	assert.Equal(t, "forecast must contain at least one period", problem.Detail)
	assert.Equal(t, "forecast", problem.Extensions["field"])
}

func TestErrorToProblemDivisionByZero(t *testing.T) {
	h := testHandler()
	r := httptest.NewRequest(http.MethodPost, "/api/model/dcf", nil)

	err := &finance.DivisionByZeroError{DiscountRate: 0.05, TerminalGrowthRate: 0.05}
	problem := h.ErrorToProblem(err, r)

	assert.Equal(t, http.StatusUnprocessableEntity, problem.Status)
	assert.Equal(t, TypeDivisionByZero, problem.Type)
	assert.Equal(t, 0.05, problem.Extensions["discount_rate"])
}

func TestErrorToProblemSweepAborted(t *testing.T) {
	h := testHandler()
	r := httptest.NewRequest(http.MethodPost, "/api/model/sensitivity", nil)

	err := &finance.SweepError{
		Axis:       finance.SweepDiscountRate,
		SweptValue: 0.07,
		Err:        &finance.DivisionByZeroError{DiscountRate: 0.07, TerminalGrowthRate: 0.07},
	}
	problem := h.ErrorToProblem(err, r)

	// Sweep aborts take the status of their cause
	assert.Equal(t, http.StatusUnprocessableEntity, problem.Status)
	assert.Equal(t, TypeSweepAborted, problem.Type)
	assert.Equal(t, 0.07, problem.Extensions["swept_value"])
	assert.Equal(t, TypeDivisionByZero, problem.Extensions["cause"])
}

func TestErrorToProblemUnknownError(t *testing.T) {
	h := testHandler()
	r := httptest.NewRequest(http.MethodGet, "/api/healthz", nil)

	problem := h.ErrorToProblem(assert.AnError, r)
	assert.Equal(t, http.StatusInternalServerError, problem.Status)
	assert.Equal(t, TypeInternal, problem.Type)
}

func TestHandleErrorWritesProblemJSON(t *testing.T) {
	h := testHandler()
	r := httptest.NewRequest(http.MethodPost, "/api/model/dcf", nil)
	w := httptest.NewRecorder()

	h.HandleError(w, r, &finance.DivisionByZeroError{DiscountRate: 0.1, TerminalGrowthRate: 0.1})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, TypeDivisionByZero, body["type"])
	assert.Equal(t, float64(http.StatusUnprocessableEntity), body["status"])
	assert.Equal(t, "discount rate and terminal growth rate must not be equal", body["detail"])
}

func TestProblemDetailsMarshalIncludesExtensions(t *testing.T) {
	problem := NewProblemDetails(http.StatusBadRequest, TypeValidation, "Validation Failed", "bad input", "/api/model/dcf").
		WithExtension("field", "forecast")

	data, err := json.Marshal(problem)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "forecast", decoded["field"])
	assert.Equal(t, "Validation Failed", decoded["title"])
}

func TestAPIErrorHelpers(t *testing.T) {
	err := ErrValidation("discount_rate", "discount_rate is required")
	assert.Equal(t, http.StatusBadRequest, err.StatusCode)
	assert.Equal(t, "VALIDATION_FAILED", err.ErrorCode)

	detail, ok := err.Details.(ValidationError)
	require.True(t, ok)
	assert.Equal(t, "discount_rate", detail.Field)

	assert.Equal(t, "Request validation failed", err.Error())
	assert.Equal(t, http.StatusNotFound, NotFoundError("report").StatusCode)
}
