package finance

// RunSensitivity sweeps one valuation parameter over a half-open range,
// valuing the forecast once per swept value with the partner parameter
// held fixed. Points come back in ascending sweep order, one per swept
// value. The forecast is read-only for the duration of the sweep.
//
// A failing valuation aborts the whole sweep: the returned *SweepError
// names the swept value that triggered it (for example a swept rate
// colliding with the fixed partner). No truncated series is returned.
func RunSensitivity(forecast []float64, axis SweepAxis, fixed float64, sweep SweepRange) ([]SensitivityPoint, error) {
	if !axis.IsValid() {
		return nil, &ValidationError{
			Field:   "axis",
			Message: "sweep axis must be discount_rate or growth_rate",
			Value:   string(axis),
		}
	}
	if !sweep.IsValid() {
		return nil, &ValidationError{
			Field:   "sweep",
			Message: "sweep range must have positive step and start below stop",
			Value:   sweep,
		}
	}
	if err := ValidateForecast(forecast); err != nil {
		return nil, err
	}

	values := sweep.Values()
	points := make([]SensitivityPoint, 0, len(values))
	for _, v := range values {
		params := ValuationParams{DiscountRate: v, TerminalGrowthRate: fixed}
		if axis == SweepGrowthRate {
			params = ValuationParams{DiscountRate: fixed, TerminalGrowthRate: v}
		}

		valuation, err := ComputeDCF(forecast, params)
		if err != nil {
			return nil, &SweepError{Axis: axis, SweptValue: v, Err: err}
		}
		points = append(points, SensitivityPoint{ParameterValue: v, Valuation: valuation})
	}
	return points, nil
}
