package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	apierrors "finmodel/internal/errors"
	"finmodel/internal/exporter"
	"finmodel/internal/finance"
	"finmodel/internal/services"
)

// ModelingServiceInterface defines the service operations the handler needs
type ModelingServiceInterface interface {
	ComputeIncomeStatement(ctx context.Context, a finance.Assumptions) (finance.IncomeStatement, error)
	ComputeStatements(ctx context.Context, a finance.Assumptions, in finance.CashFlowInputs) (*services.StatementsResult, error)
	ValueForecast(ctx context.Context, rawForecast string, params finance.ValuationParams) (*services.ValuationResult, error)
	RunSensitivity(ctx context.Context, rawForecast string, axis finance.SweepAxis, fixed float64, sweep finance.SweepRange) (*services.SensitivityResult, error)
}

// ModelHandler handles modeling HTTP requests with RFC 7807 compliance
type ModelHandler struct {
	service      ModelingServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
	validate     *validator.Validate
	sheetName    string
}

// NewModelHandler creates a new modeling handler
func NewModelHandler(service ModelingServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler, sheetName string) *ModelHandler {
	return &ModelHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "model_handler")),
		errorHandler: errorHandler,
		validate:     validator.New(),
		sheetName:    sheetName,
	}
}

// Routes returns the modeling routes
func (h *ModelHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Post("/income-statement", h.ComputeIncomeStatement)
	r.Post("/cash-flow", h.ComputeCashFlow)
	r.Post("/dcf", h.ComputeDCF)
	r.Post("/sensitivity", h.RunSensitivity)
	r.Post("/export", h.Export)

	return r
}

// ComputeIncomeStatement handles POST /api/model/income-statement
func (h *ModelHandler) ComputeIncomeStatement(w http.ResponseWriter, r *http.Request) {
	var req StatementRequest
	if err := render.Bind(r, &req); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
		return
	}
	if apiErr := validateRequest(h.validate, req); apiErr != nil {
		h.errorHandler.HandleError(w, r, apiErr)
		return
	}

	is, err := h.service.ComputeIncomeStatement(r.Context(), req.Assumptions())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, is)
}

// ComputeCashFlow handles POST /api/model/cash-flow. Both statements come
// back together since the cash flow is derived from the income statement.
func (h *ModelHandler) ComputeCashFlow(w http.ResponseWriter, r *http.Request) {
	var req CashFlowRequest
	if err := render.Bind(r, &req); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
		return
	}
	if apiErr := validateRequest(h.validate, req); apiErr != nil {
		h.errorHandler.HandleError(w, r, apiErr)
		return
	}

	result, err := h.service.ComputeStatements(r.Context(), req.Assumptions(), req.Inputs())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, result)
}

// ComputeDCF handles POST /api/model/dcf
func (h *ModelHandler) ComputeDCF(w http.ResponseWriter, r *http.Request) {
	var req DCFRequest
	if err := render.Bind(r, &req); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
		return
	}
	if apiErr := validateRequest(h.validate, req); apiErr != nil {
		h.errorHandler.HandleError(w, r, apiErr)
		return
	}

	result, err := h.service.ValueForecast(r.Context(), req.Forecast, req.Params())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, result)
}

// RunSensitivity handles POST /api/model/sensitivity
func (h *ModelHandler) RunSensitivity(w http.ResponseWriter, r *http.Request) {
	var req SensitivityRequest
	if err := render.Bind(r, &req); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
		return
	}
	if apiErr := validateRequest(h.validate, req); apiErr != nil {
		h.errorHandler.HandleError(w, r, apiErr)
		return
	}

	result, err := h.service.RunSensitivity(r.Context(),
		req.Forecast, finance.SweepAxis(req.Axis), req.FixedValue, req.SweepRange())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, result)
}

// Export handles POST /api/model/export. The computed statements stream
// back as a spreadsheet attachment rather than JSON.
func (h *ModelHandler) Export(w http.ResponseWriter, r *http.Request) {
	var req ExportRequest
	if err := render.Bind(r, &req); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
		return
	}
	if apiErr := validateRequest(h.validate, req); apiErr != nil {
		h.errorHandler.HandleError(w, r, apiErr)
		return
	}

	result, err := h.service.ComputeStatements(r.Context(), req.Assumptions(), req.Inputs())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	reqID := middleware.GetReqID(r.Context())
	h.logger.InfoContext(r.Context(), "exporting statements",
		slog.String("request_id", reqID),
		slog.String("format", req.Format),
		slog.String("run_id", result.RunID),
	)

	switch req.Format {
	case "csv":
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "financial_model.csv"))
		err = exporter.WriteStatementsCSV(w, result.IncomeStatement, result.CashFlow)
	default:
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "financial_model.xlsx"))
		err = exporter.NewWorkbookWriter(h.sheetName).Write(w, result.IncomeStatement, result.CashFlow)
	}
	if err != nil {
		// Headers are already out; log instead of writing a second response.
		h.logger.ErrorContext(r.Context(), "export write failed",
			slog.String("error", err.Error()),
			slog.String("request_id", reqID),
		)
	}
}
