package finance

import (
	"strconv"
	"strings"
)

// ParseForecast turns raw comma-separated text into a cash-flow forecast.
// Tokens are trimmed of surrounding whitespace and empty tokens discarded;
// each remaining token must parse as a floating-point number. An empty
// result or an unparsable token is a *ValidationError, so bad input never
// reaches ComputeDCF as a silent default.
func ParseForecast(raw string) ([]float64, error) {
	var forecast []float64
	for _, token := range strings.Split(raw, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		cf, err := strconv.ParseFloat(token, 64)
		if err != nil {
			return nil, &ValidationError{
				Field:   "forecast",
				Message: "invalid forecast entry",
				Value:   token,
				Err:     err,
			}
		}
		forecast = append(forecast, cf)
	}
	if len(forecast) == 0 {
		return nil, &ValidationError{
			Field:   "forecast",
			Message: "forecast must contain at least one period",
		}
	}
	if err := ValidateForecast(forecast); err != nil {
		return nil, err
	}
	return forecast, nil
}
