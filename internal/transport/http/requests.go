package http

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	apierrors "finmodel/internal/errors"
	"finmodel/internal/finance"
)

// StatementRequest carries the inputs for deriving an income statement,
// and optionally the cash-flow items alongside it.
type StatementRequest struct {
	Revenue           float64 `json:"revenue" validate:"gte=0"`
	COGS              float64 `json:"cogs" validate:"gte=0"`
	OperatingExpenses float64 `json:"operating_expenses" validate:"gte=0"`
	TaxRate           float64 `json:"tax_rate" validate:"gte=0,lte=1"`
}

// Bind implements render.Binder
func (req *StatementRequest) Bind(r *http.Request) error {
	return nil
}

// Assumptions converts the request into engine assumptions.
func (req *StatementRequest) Assumptions() finance.Assumptions {
	return finance.Assumptions{
		Revenue:           req.Revenue,
		COGS:              req.COGS,
		OperatingExpenses: req.OperatingExpenses,
		TaxRate:           req.TaxRate,
	}
}

// CashFlowRequest carries the full statement inputs: the income-statement
// assumptions plus the non-cash and investing items.
type CashFlowRequest struct {
	StatementRequest
	Depreciation         float64 `json:"depreciation"`
	Capex                float64 `json:"capex"`
	WorkingCapitalChange float64 `json:"working_capital_change"`
}

// Bind implements render.Binder
func (req *CashFlowRequest) Bind(r *http.Request) error {
	return nil
}

// Inputs converts the request into engine cash-flow inputs.
func (req *CashFlowRequest) Inputs() finance.CashFlowInputs {
	return finance.CashFlowInputs{
		Depreciation:         req.Depreciation,
		Capex:                req.Capex,
		WorkingCapitalChange: req.WorkingCapitalChange,
	}
}

// DCFRequest carries a raw forecast and the valuation parameters.
// The forecast is the comma-separated form users type into the tool;
// parsing and validation happen in the engine.
type DCFRequest struct {
	Forecast           string  `json:"forecast" validate:"required"`
	DiscountRate       float64 `json:"discount_rate"`
	TerminalGrowthRate float64 `json:"terminal_growth_rate"`
}

// Bind implements render.Binder
func (req *DCFRequest) Bind(r *http.Request) error {
	return nil
}

// Params converts the request into engine valuation parameters.
func (req *DCFRequest) Params() finance.ValuationParams {
	return finance.ValuationParams{
		DiscountRate:       req.DiscountRate,
		TerminalGrowthRate: req.TerminalGrowthRate,
	}
}

// SensitivityRequest carries a sweep specification. Range is optional;
// when omitted the standard range for the axis applies.
type SensitivityRequest struct {
	Forecast   string              `json:"forecast" validate:"required"`
	Axis       string              `json:"axis" validate:"required,oneof=discount_rate growth_rate"`
	FixedValue float64             `json:"fixed_value"`
	Range      *finance.SweepRange `json:"range,omitempty"`
}

// Bind implements render.Binder
func (req *SensitivityRequest) Bind(r *http.Request) error {
	return nil
}

// SweepRange returns the requested range, or the zero range when omitted
// so the service falls back to the axis default.
func (req *SensitivityRequest) SweepRange() finance.SweepRange {
	if req.Range == nil {
		return finance.SweepRange{}
	}
	return *req.Range
}

// ExportRequest carries statement inputs plus the export format.
type ExportRequest struct {
	CashFlowRequest
	Format string `json:"format" validate:"omitempty,oneof=xlsx csv"`
}

// Bind implements render.Binder
func (req *ExportRequest) Bind(r *http.Request) error {
	if req.Format == "" {
		req.Format = "xlsx"
	}
	return nil
}

// validateRequest runs struct validation and maps failures to the
// standard validation error shape, one entry per failing field.
func validateRequest(v *validator.Validate, req interface{}) *apierrors.APIError {
	err := v.Struct(req)
	if err == nil {
		return nil
	}

	valErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apierrors.InvalidRequestWithError(err)
	}

	fields := make([]apierrors.ValidationError, 0, len(valErrs))
	for _, fe := range valErrs {
		fields = append(fields, apierrors.ValidationError{
			Field:   fe.Field(),
			Message: "failed validation rule: " + fe.Tag(),
		})
	}
	return apierrors.NewValidationErrors(fields)
}
