package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"finmodel/internal/finance"
)

// ModelingService orchestrates the calculation engine for the transport
// layer: it validates inputs, runs the pure engine functions, stamps each
// computation with a run ID, and logs what it did. It holds no state
// between calls.
type ModelingService struct {
	logger *slog.Logger
}

// NewModelingService creates a new modeling service
func NewModelingService(logger *slog.Logger) *ModelingService {
	return &ModelingService{
		logger: logger.With(slog.String("component", "modeling_service")),
	}
}

// StatementsResult bundles the derived statements of one model run.
type StatementsResult struct {
	RunID           string                    `json:"run_id"`
	GeneratedAt     time.Time                 `json:"generated_at"`
	IncomeStatement finance.IncomeStatement   `json:"income_statement"`
	CashFlow        finance.CashFlowStatement `json:"cash_flow_statement"`
}

// ValuationResult carries a single DCF valuation.
type ValuationResult struct {
	RunID       string                  `json:"run_id"`
	GeneratedAt time.Time               `json:"generated_at"`
	Valuation   float64                 `json:"valuation"`
	Periods     int                     `json:"periods"`
	Params      finance.ValuationParams `json:"params"`
}

// SensitivityResult carries one completed sensitivity sweep.
type SensitivityResult struct {
	RunID       string                     `json:"run_id"`
	GeneratedAt time.Time                  `json:"generated_at"`
	Axis        finance.SweepAxis          `json:"axis"`
	FixedValue  float64                    `json:"fixed_value"`
	Points      []finance.SensitivityPoint `json:"points"`
}

// ComputeIncomeStatement derives an income statement from assumptions.
// Out-of-range assumptions are rejected before the engine runs.
func (s *ModelingService) ComputeIncomeStatement(ctx context.Context, a finance.Assumptions) (finance.IncomeStatement, error) {
	if err := validateAssumptions(a); err != nil {
		return finance.IncomeStatement{}, err
	}
	return finance.ComputeIncomeStatement(a), nil
}

// ComputeStatements derives both statements from assumptions and
// cash-flow inputs in one pass, the way the original modeling tool
// always rendered them together.
func (s *ModelingService) ComputeStatements(ctx context.Context, a finance.Assumptions, in finance.CashFlowInputs) (*StatementsResult, error) {
	if err := validateAssumptions(a); err != nil {
		return nil, err
	}

	is := finance.ComputeIncomeStatement(a)
	cf := finance.ComputeCashFlowStatement(is, in)

	result := &StatementsResult{
		RunID:           uuid.NewString(),
		GeneratedAt:     time.Now().UTC(),
		IncomeStatement: is,
		CashFlow:        cf,
	}

	s.logger.InfoContext(ctx, "computed financial statements",
		slog.String("run_id", result.RunID),
		slog.Float64("net_income", is.NetIncome),
		slog.Float64("total_cash_flow", cf.TotalCashFlow),
	)
	return result, nil
}

// ComputeCashFlowStatement derives a cash-flow statement from an existing
// income statement and the supplied inputs.
func (s *ModelingService) ComputeCashFlowStatement(ctx context.Context, is finance.IncomeStatement, in finance.CashFlowInputs) finance.CashFlowStatement {
	return finance.ComputeCashFlowStatement(is, in)
}

// ValueForecast parses a raw comma-separated forecast and values it.
// Engine errors pass through untouched so the transport layer can map
// them to their problem types.
func (s *ModelingService) ValueForecast(ctx context.Context, rawForecast string, params finance.ValuationParams) (*ValuationResult, error) {
	forecast, err := finance.ParseForecast(rawForecast)
	if err != nil {
		return nil, err
	}
	return s.ValueParsedForecast(ctx, forecast, params)
}

// ValueParsedForecast values an already-parsed forecast.
func (s *ModelingService) ValueParsedForecast(ctx context.Context, forecast []float64, params finance.ValuationParams) (*ValuationResult, error) {
	start := time.Now()

	valuation, err := finance.ComputeDCF(forecast, params)
	if err != nil {
		s.logger.WarnContext(ctx, "dcf valuation failed",
			slog.Int("periods", len(forecast)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	result := &ValuationResult{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Valuation:   valuation,
		Periods:     len(forecast),
		Params:      params,
	}

	s.logger.InfoContext(ctx, "dcf valuation completed",
		slog.String("run_id", result.RunID),
		slog.Int("periods", len(forecast)),
		slog.Float64("discount_rate", params.DiscountRate),
		slog.Float64("terminal_growth_rate", params.TerminalGrowthRate),
		slog.Duration("duration", time.Since(start)),
	)
	return result, nil
}

// RunSensitivity sweeps one valuation parameter and collects the series.
// A failing point aborts the sweep; the engine's SweepError names the
// offending value and is surfaced as-is.
func (s *ModelingService) RunSensitivity(ctx context.Context, rawForecast string, axis finance.SweepAxis, fixed float64, sweep finance.SweepRange) (*SensitivityResult, error) {
	forecast, err := finance.ParseForecast(rawForecast)
	if err != nil {
		return nil, err
	}

	if sweep == (finance.SweepRange{}) {
		sweep = finance.DefaultSweepRange(axis)
	}

	points, err := finance.RunSensitivity(forecast, axis, fixed, sweep)
	if err != nil {
		s.logger.WarnContext(ctx, "sensitivity sweep aborted",
			slog.String("axis", string(axis)),
			slog.Float64("fixed_value", fixed),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	result := &SensitivityResult{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Axis:        axis,
		FixedValue:  fixed,
		Points:      points,
	}

	s.logger.InfoContext(ctx, "sensitivity sweep completed",
		slog.String("run_id", result.RunID),
		slog.String("axis", string(axis)),
		slog.Int("points", len(points)),
	)
	return result, nil
}

// validateAssumptions rejects out-of-range statement inputs with the
// engine's validation error type.
func validateAssumptions(a finance.Assumptions) error {
	switch {
	case a.Revenue < 0:
		return &finance.ValidationError{Field: "revenue", Message: "revenue must be non-negative", Value: a.Revenue}
	case a.COGS < 0:
		return &finance.ValidationError{Field: "cogs", Message: "cogs must be non-negative", Value: a.COGS}
	case a.OperatingExpenses < 0:
		return &finance.ValidationError{Field: "operating_expenses", Message: "operating expenses must be non-negative", Value: a.OperatingExpenses}
	case a.TaxRate < 0 || a.TaxRate > 1:
		return &finance.ValidationError{Field: "tax_rate", Message: "tax rate must be between 0 and 1", Value: a.TaxRate}
	}
	return nil
}
