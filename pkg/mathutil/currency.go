// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"
	"sort"

	"github.com/iwvelando/deal-metrics/pkg/constants"
	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat"
)

// Round rounds a value to two decimals, i.e. to represent real currency.
// Used for making logical comparisons and for report output.
func Round(val float64) float64 {
	if math.IsInf(val, 0) || math.IsNaN(val) {
		return val
	}
	return decimal.NewFromFloat(val).Round(constants.DecimalPrecision).InexactFloat64()
}

// IsZero checks if a value is effectively zero (within tolerance)
func IsZero(val float64) bool {
	return math.Abs(val) <= constants.CurrencyTolerance
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// PercentToDecimal converts a percentage (7.5) into a rate (0.075).
func PercentToDecimal(percent float64) float64 {
	return percent / constants.PercentageMultiplier
}

// DecimalToPercent converts a rate (0.075) into a percentage (7.5).
func DecimalToPercent(rate float64) float64 {
	return rate * constants.PercentageMultiplier
}

// ApplyPercentage applies a percentage to a value
func ApplyPercentage(value, percentage float64) float64 {
	return value * PercentToDecimal(percentage)
}

// Median returns the statistical median of values. An even count averages the
// two middle values. The input slice is not modified; an empty slice yields NaN.
func Median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return SortedMedian(sorted)
}

// SortedMedian is Median for input already in ascending order. It neither
// copies nor sorts.
func SortedMedian(sorted []float64) float64 {
	if len(sorted) == 0 {
		return math.NaN()
	}
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return stat.Mean(sorted[mid-1:mid+1], nil)
}
