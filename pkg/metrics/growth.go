package metrics

import (
	"math"

	"github.com/iwvelando/deal-metrics/pkg/mathutil"
	"github.com/iwvelando/deal-metrics/pkg/validation"
)

// CAGR returns the compound annual growth rate, in percent, between a
// beginning and ending value over the given number of years. Declines yield a
// negative rate. An ending value at or below zero is a total loss (-100%).
func CAGR(beginValue, endValue, years float64) (float64, error) {
	if err := validation.RequirePositive("metrics.CAGR", "beginValue", beginValue); err != nil {
		return 0, err
	}
	if err := validation.RequirePositive("metrics.CAGR", "years", years); err != nil {
		return 0, err
	}
	if endValue <= 0 {
		return -100, nil
	}
	return mathutil.DecimalToPercent(math.Pow(endValue/beginValue, 1/years) - 1), nil
}

// BreakEvenMonths returns how many months of monthlyNOI it takes to recover
// initialInvestment. The signed infinities are part of the contract: zero
// income never breaks even (+Inf) and negative income is reported as -Inf.
func BreakEvenMonths(monthlyNOI, initialInvestment float64) float64 {
	switch {
	case monthlyNOI == 0:
		return math.Inf(1)
	case monthlyNOI < 0:
		return math.Inf(-1)
	case initialInvestment == 0:
		return 0
	}
	return initialInvestment / monthlyNOI
}
