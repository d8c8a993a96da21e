package finance

import "fmt"

// ValidationError reports malformed engine input: an empty forecast, a
// non-numeric forecast entry, or out-of-range assumptions.
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
	Err     error       `json:"-"`
}

// Error implements the error interface.
func (ve *ValidationError) Error() string {
	if ve.Err != nil {
		return fmt.Sprintf("%s: %v", ve.Message, ve.Err)
	}
	return ve.Message
}

// Unwrap exposes the underlying conversion failure, if any.
func (ve *ValidationError) Unwrap() error {
	return ve.Err
}

// DivisionByZeroError reports a discount rate equal to the terminal growth
// rate, which would make the terminal-value denominator vanish.
type DivisionByZeroError struct {
	DiscountRate       float64 `json:"discount_rate"`
	TerminalGrowthRate float64 `json:"terminal_growth_rate"`
}

// Error implements the error interface.
func (e *DivisionByZeroError) Error() string {
	return "discount rate and terminal growth rate must not be equal"
}

// SweepError reports a sensitivity sweep aborted by a failing valuation.
// It names the swept value that triggered the failure and wraps the cause.
type SweepError struct {
	Axis       SweepAxis `json:"axis"`
	SweptValue float64   `json:"swept_value"`
	Err        error     `json:"-"`
}

// Error implements the error interface.
func (e *SweepError) Error() string {
	return fmt.Sprintf("sensitivity sweep failed at %s=%g: %v", e.Axis, e.SweptValue, e.Err)
}

// Unwrap exposes the valuation error that aborted the sweep.
func (e *SweepError) Unwrap() error {
	return e.Err
}
