// Package cashflow provides time-value-of-money solvers over periodic cash
// flow series. Index 0 of a series is discounted by one period.
package cashflow

import (
	"math"

	"github.com/iwvelando/deal-metrics/pkg/mathutil"
	"github.com/iwvelando/deal-metrics/pkg/validation"
)

// NPV discounts each cash flow at discountRatePercent per period and
// subtracts the initial investment. A zero rate degenerates to a plain sum.
func NPV(cashFlows []float64, initialInvestment, discountRatePercent float64) (float64, error) {
	if err := validation.RequireNonEmpty("cashflow.NPV", "cashFlows", len(cashFlows)); err != nil {
		return 0, err
	}
	return npvAt(cashFlows, initialInvestment, mathutil.PercentToDecimal(discountRatePercent)), nil
}

func npvAt(cashFlows []float64, initialInvestment, rate float64) float64 {
	total := -initialInvestment
	for t, cf := range cashFlows {
		total += cf / math.Pow(1+rate, float64(t+1))
	}
	return total
}

// npvWithDerivative returns NPV at rate and its derivative with respect to rate.
func npvWithDerivative(cashFlows []float64, initialInvestment, rate float64) (float64, float64) {
	value := -initialInvestment
	slope := 0.0
	for t, cf := range cashFlows {
		period := float64(t + 1)
		discount := math.Pow(1+rate, period)
		value += cf / discount
		slope -= period * cf / (discount * (1 + rate))
	}
	return value, slope
}
