package finance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseForecast(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []float64
	}{
		{
			name: "original tool default",
			raw:  "100000, 110000, 121000, 133100",
			want: []float64{100000, 110000, 121000, 133100},
		},
		{
			name: "no spaces",
			raw:  "1,2,3",
			want: []float64{1, 2, 3},
		},
		{
			name: "ragged whitespace and trailing comma",
			raw:  "  100.5 ,200 ,, 300.25 ,",
			want: []float64{100.5, 200, 300.25},
		},
		{
			name: "single period",
			raw:  "42",
			want: []float64{42},
		},
		{
			name: "negative and scientific notation",
			raw:  "-1000, 1e3",
			want: []float64{-1000, 1000},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseForecast(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseForecastRejectsBadInput(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		message string
	}{
		{"empty string", "", "forecast must contain at least one period"},
		{"only separators", " , ,, ", "forecast must contain at least one period"},
		{"non-numeric token", "100, abc, 300", "invalid forecast entry"},
		{"partial number", "100, 12x", "invalid forecast entry"},
		{"nan literal", "100, NaN", "invalid forecast entry"},
		{"infinity literal", "Inf", "invalid forecast entry"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseForecast(tt.raw)
			require.Error(t, err)
			assert.Nil(t, got)

			var valErr *ValidationError
			require.ErrorAs(t, err, &valErr)
			assert.Equal(t, "forecast", valErr.Field)
			assert.Equal(t, tt.message, valErr.Message)
		})
	}
}

// The unparsable token's conversion failure stays reachable through the
// error chain.
func TestParseForecastWrapsParseError(t *testing.T) {
	_, err := ParseForecast("100, abc")
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "abc", valErr.Value)
	assert.Error(t, valErr.Unwrap())
	assert.Contains(t, err.Error(), "invalid forecast entry")
}
