// Package format renders currency, percentage and duration values for display.
package format

import (
	"math"

	"github.com/iwvelando/deal-metrics/pkg/mathutil"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func printer() *message.Printer {
	return message.NewPrinter(language.English)
}

// Currency returns a currency string with a dollar sign and thousands separators (e.g., "-$1,234.56").
func Currency(amount float64) string {
	rounded := mathutil.Round(amount)
	if rounded < 0 {
		return printer().Sprintf("-$%.2f", -rounded)
	}
	return printer().Sprintf("$%.2f", rounded)
}

// NumericCurrency returns a currency string without a currency symbol but with separators (e.g., "-1,234.56").
func NumericCurrency(amount float64) string {
	return printer().Sprintf("%.2f", mathutil.Round(amount))
}

// Percent formats a 0-100 percentage with two decimals.
func Percent(percent float64) string {
	return printer().Sprintf("%.2f%%", mathutil.Round(percent))
}

// Months formats a break-even horizon. Infinite horizons read as "never".
func Months(months float64) string {
	switch {
	case math.IsInf(months, 1):
		return "never"
	case math.IsInf(months, -1):
		return "never (negative cash flow)"
	case math.IsNaN(months):
		return "n/a"
	}
	return printer().Sprintf("%.1f months", months)
}
