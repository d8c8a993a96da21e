package finance

// Assumptions holds the user-supplied inputs for an income statement.
// All monetary fields are non-negative; TaxRate is a fraction in [0,1].
type Assumptions struct {
	Revenue           float64 `json:"revenue" validate:"gte=0"`
	COGS              float64 `json:"cogs" validate:"gte=0"`
	OperatingExpenses float64 `json:"operating_expenses" validate:"gte=0"`
	TaxRate           float64 `json:"tax_rate" validate:"gte=0,lte=1"`
}

// IsValid checks if the assumptions satisfy the documented ranges.
func (a Assumptions) IsValid() bool {
	return a.Revenue >= 0 && a.COGS >= 0 && a.OperatingExpenses >= 0 &&
		a.TaxRate >= 0 && a.TaxRate <= 1
}

// IncomeStatement is the derived statement. Every field is a deterministic
// function of the assumptions; none is independently settable.
type IncomeStatement struct {
	Revenue           float64 `json:"revenue"`
	COGS              float64 `json:"cogs"`
	GrossProfit       float64 `json:"gross_profit"`
	OperatingExpenses float64 `json:"operating_expenses"`
	OperatingIncome   float64 `json:"operating_income"`
	NetIncome         float64 `json:"net_income"`
	TaxRatePercent    float64 `json:"tax_rate_percent"`
}

// CashFlowInputs holds the non-cash and investing items supplied alongside
// an income statement.
type CashFlowInputs struct {
	Depreciation         float64 `json:"depreciation"`
	Capex                float64 `json:"capex"`
	WorkingCapitalChange float64 `json:"working_capital_change"`
}

// CashFlowStatement is the derived cash-flow statement.
type CashFlowStatement struct {
	OperatingCashFlow float64 `json:"operating_cash_flow"`
	InvestingCashFlow float64 `json:"investing_cash_flow"`
	TotalCashFlow     float64 `json:"total_cash_flow"`
}

// ValuationParams holds the discount and terminal growth rates for a DCF
// valuation, each expressed as a fraction (0.10 = 10%).
type ValuationParams struct {
	DiscountRate       float64 `json:"discount_rate"`
	TerminalGrowthRate float64 `json:"terminal_growth_rate"`
}

// IsValid checks the one hard invariant: the terminal-value denominator
// must not vanish.
func (vp ValuationParams) IsValid() bool {
	return vp.DiscountRate != vp.TerminalGrowthRate
}

// SweepAxis selects which valuation parameter a sensitivity sweep varies.
type SweepAxis string

const (
	// SweepDiscountRate varies the discount rate, holding terminal growth fixed.
	SweepDiscountRate SweepAxis = "discount_rate"
	// SweepGrowthRate varies the terminal growth rate, holding discount fixed.
	SweepGrowthRate SweepAxis = "growth_rate"
)

// IsValid checks if the axis is one of the supported sweep dimensions.
func (a SweepAxis) IsValid() bool {
	return a == SweepDiscountRate || a == SweepGrowthRate
}

// SweepRange defines a half-open arithmetic progression [Start, Stop)
// advanced by Step.
type SweepRange struct {
	Start float64 `json:"start"`
	Stop  float64 `json:"stop"`
	Step  float64 `json:"step"`
}

// IsValid checks if the range produces at least one value.
func (sr SweepRange) IsValid() bool {
	return sr.Step > 0 && sr.Start < sr.Stop
}

// Values expands the range into its swept values in ascending order.
// The count is fixed up front so accumulated floating error in the
// running value cannot add or drop a point at the boundary.
func (sr SweepRange) Values() []float64 {
	if !sr.IsValid() {
		return nil
	}
	n := int((sr.Stop - sr.Start) / sr.Step)
	if sr.Start+float64(n)*sr.Step < sr.Stop-sr.Step*1e-9 {
		n++
	}
	values := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		values = append(values, sr.Start+float64(i)*sr.Step)
	}
	return values
}

// SensitivityPoint pairs one swept parameter value with the valuation it
// produced.
type SensitivityPoint struct {
	ParameterValue float64 `json:"parameter_value"`
	Valuation      float64 `json:"valuation"`
}

// Default sweep ranges, matching the sensitivity ranges of the original
// modeling tool.
var (
	// DefaultDiscountRateSweep sweeps the discount rate over [5%, 20%) in 1% steps.
	DefaultDiscountRateSweep = SweepRange{Start: 0.05, Stop: 0.20, Step: 0.01}
	// DefaultGrowthRateSweep sweeps the terminal growth rate over [1%, 5%) in 0.5% steps.
	DefaultGrowthRateSweep = SweepRange{Start: 0.01, Stop: 0.05, Step: 0.005}
)

// DefaultSweepRange returns the standard sweep range for the given axis.
func DefaultSweepRange(axis SweepAxis) SweepRange {
	if axis == SweepGrowthRate {
		return DefaultGrowthRateSweep
	}
	return DefaultDiscountRateSweep
}
