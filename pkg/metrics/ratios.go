// Package metrics provides the primitive deal ratio calculators along with
// growth and break-even helpers. Every function is pure and safe for
// concurrent use.
package metrics

import (
	"github.com/iwvelando/deal-metrics/pkg/constants"
	"github.com/iwvelando/deal-metrics/pkg/mathutil"
	"github.com/iwvelando/deal-metrics/pkg/validation"
)

// FlipInputs holds the cost and sale figures of a fix-and-flip deal.
// HoldingCosts is optional; its zero value contributes nothing.
type FlipInputs struct {
	PurchasePrice float64 `json:"purchasePrice" yaml:"purchasePrice"`
	RehabCost     float64 `json:"rehabCost" yaml:"rehabCost"`
	ClosingCosts  float64 `json:"closingCosts" yaml:"closingCosts"`
	SalePrice     float64 `json:"salePrice" yaml:"salePrice"`
	SellingCosts  float64 `json:"sellingCosts" yaml:"sellingCosts"`
	HoldingCosts  float64 `json:"holdingCosts,omitempty" yaml:"holdingCosts,omitempty"`
}

// TotalCost is everything spent on the deal apart from the sale itself.
func (f FlipInputs) TotalCost() float64 {
	return f.PurchasePrice + f.RehabCost + f.ClosingCosts + f.HoldingCosts + f.SellingCosts
}

// NOI returns annual net operating income from monthly rent, an occupancy
// percentage (0-100) and monthly operating expenses. Negative results are
// valid and describe a loss-making property.
func NOI(monthlyRent, occupancyRatePercent, monthlyExpenses float64) (float64, error) {
	if err := validation.RequireNonNegative("metrics.NOI", "monthlyRent", monthlyRent); err != nil {
		return 0, err
	}
	if err := validation.RequireNonNegative("metrics.NOI", "occupancyRate", occupancyRatePercent); err != nil {
		return 0, err
	}

	effectiveIncome := monthlyRent * mathutil.PercentToDecimal(occupancyRatePercent) * constants.MonthsPerYear
	return effectiveIncome - monthlyExpenses*constants.MonthsPerYear, nil
}

// CapRate returns NOI as a percentage of purchase price.
func CapRate(noi, purchasePrice float64) (float64, error) {
	if err := validation.RequirePositive("metrics.CapRate", "purchasePrice", purchasePrice); err != nil {
		return 0, err
	}
	return mathutil.DecimalToPercent(noi / purchasePrice), nil
}

// CashOnCash returns annualized monthly cash flow as a percentage of the cash
// actually invested.
func CashOnCash(monthlyNOI, downPayment float64) (float64, error) {
	if err := validation.RequirePositive("metrics.CashOnCash", "downPayment", downPayment); err != nil {
		return 0, err
	}
	return mathutil.DecimalToPercent(monthlyNOI * constants.MonthsPerYear / downPayment), nil
}

// ROI returns total profit as a percentage of total invested.
func ROI(totalProfit, totalInvested float64) (float64, error) {
	if err := validation.RequirePositive("metrics.ROI", "totalInvested", totalInvested); err != nil {
		return 0, err
	}
	return mathutil.DecimalToPercent(totalProfit / totalInvested), nil
}

// FlipProfit returns the sale price less every cost of the flip. Losses come
// back as negative values.
func FlipProfit(in FlipInputs) float64 {
	return in.SalePrice - in.TotalCost()
}
