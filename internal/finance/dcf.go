package finance

import (
	"fmt"
	"math"
)

// ComputeDCF values a cash-flow forecast by discounting each period and
// adding a discounted terminal value computed from the last period:
//
//	PV       = sum over t=1..n of cf[t] / (1+r)^t
//	TV       = cf[n] * (1+g) / (r-g)
//	result   = PV + TV / (1+r)^n
//
// where r is the discount rate and g the terminal growth rate. r == g is
// rejected with a *DivisionByZeroError; r < g yields a negative terminal
// value, which is propagated as-is rather than rejected. An empty forecast
// or a non-finite entry is rejected with a *ValidationError; ingestion is
// expected to have caught both already, but the engine re-validates when
// invoked directly.
func ComputeDCF(forecast []float64, params ValuationParams) (float64, error) {
	if err := ValidateForecast(forecast); err != nil {
		return 0, err
	}
	if !params.IsValid() {
		return 0, &DivisionByZeroError{
			DiscountRate:       params.DiscountRate,
			TerminalGrowthRate: params.TerminalGrowthRate,
		}
	}

	r, g := params.DiscountRate, params.TerminalGrowthRate

	var pv float64
	factor := 1.0
	for _, cf := range forecast {
		factor *= 1 + r
		pv += cf / factor
	}

	// factor is now (1+r)^n, the horizon discount for the terminal value.
	terminalValue := forecast[len(forecast)-1] * (1 + g) / (r - g)
	return pv + terminalValue/factor, nil
}

// ValidateForecast checks that a forecast is usable by ComputeDCF: at
// least one period, every entry a finite number.
func ValidateForecast(forecast []float64) error {
	if len(forecast) == 0 {
		return &ValidationError{
			Field:   "forecast",
			Message: "forecast must contain at least one period",
		}
	}
	for i, cf := range forecast {
		if math.IsNaN(cf) || math.IsInf(cf, 0) {
			return &ValidationError{
				Field:   "forecast",
				Message: "invalid forecast entry",
				Value:   fmt.Sprintf("period %d: %v", i+1, cf),
			}
		}
	}
	return nil
}
