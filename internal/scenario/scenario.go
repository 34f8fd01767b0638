// Package scenario maps a deal's exit strategy onto the calculators in pkg/
// and collects the resulting metrics.
package scenario

import (
	"errors"
	"fmt"
	"strings"

	"github.com/iwvelando/deal-metrics/pkg/cashflow"
	"github.com/iwvelando/deal-metrics/pkg/constants"
	"github.com/iwvelando/deal-metrics/pkg/sensitivity"
	"github.com/iwvelando/deal-metrics/pkg/valuation"
)

// ExitStrategy tags how a deal is expected to make money.
type ExitStrategy string

// Supported exit strategies.
const (
	Rent          ExitStrategy = constants.StrategyRent
	ShortTermRent ExitStrategy = constants.StrategyAirbnb
	Flip          ExitStrategy = constants.StrategyFlip
)

const strategyLabels = "rent, airbnb, flip"

// ErrUnsupportedStrategy is returned for strategies no analyzer handles.
var ErrUnsupportedStrategy = errors.New("unsupported exit strategy")

// ParseExitStrategy accepts a strategy tag, case-insensitively.
func ParseExitStrategy(value string) (ExitStrategy, error) {
	switch ExitStrategy(strings.ToLower(strings.TrimSpace(value))) {
	case Rent:
		return Rent, nil
	case ShortTermRent:
		return ShortTermRent, nil
	case Flip:
		return Flip, nil
	}
	return "", fmt.Errorf("%w %q, expected one of %s", ErrUnsupportedStrategy, value, strategyLabels)
}

// Assumptions is the full input set for one deal. Percentages are expressed
// as 0-100.
type Assumptions struct {
	Name     string       `json:"name"`
	Strategy ExitStrategy `json:"strategy"`

	PurchasePrice float64 `json:"purchasePrice"`
	RehabCost     float64 `json:"rehabCost"`
	ClosingCosts  float64 `json:"closingCosts"`
	HoldingCosts  float64 `json:"holdingCosts"`

	// Long-term rental income.
	MonthlyRent float64 `json:"monthlyRent"`
	// Short-term rental income per occupied night.
	DailyRate       float64 `json:"dailyRate"`
	OccupancyRate   float64 `json:"occupancyRate"`
	MonthlyExpenses float64 `json:"monthlyExpenses"`

	SalePrice    float64 `json:"salePrice"`
	SellingCosts float64 `json:"sellingCosts"`

	DownPaymentPercent float64 `json:"downPaymentPercent"`
	InterestRate       float64 `json:"interestRate"`
	LoanTermMonths     int     `json:"loanTermMonths"`

	HoldMonths   int     `json:"holdMonths"`
	DiscountRate float64 `json:"discountRate"`

	Comparables []valuation.Comparable `json:"comparables,omitempty"`
	SubjectArea float64                `json:"subjectArea"`

	VariationPercent float64 `json:"variationPercent"`
}

func (a Assumptions) variationPercent() float64 {
	if a.VariationPercent > 0 {
		return a.VariationPercent
	}
	return constants.DefaultVariationPercent
}

func (a Assumptions) holdMonths() int {
	if a.HoldMonths > 0 {
		return a.HoldMonths
	}
	return constants.DefaultHoldMonths
}

// Result is the metric set produced for one deal. Fields that do not apply to
// the deal's strategy are left at their zero value.
type Result struct {
	Name     string       `json:"name"`
	Strategy ExitStrategy `json:"strategy"`

	TotalInvested float64 `json:"totalInvested"`

	// Financing.
	LoanAmount         float64 `json:"loanAmount,omitempty"`
	MonthlyDebtService float64 `json:"monthlyDebtService,omitempty"`

	// Rental metrics.
	GrossMonthlyIncome float64   `json:"grossMonthlyIncome,omitempty"`
	NOI                float64   `json:"noi,omitempty"`
	CapRate            float64   `json:"capRate,omitempty"`
	MonthlyCashFlow    float64   `json:"monthlyCashFlow,omitempty"`
	CashOnCash         float64   `json:"cashOnCash,omitempty"`
	BreakEvenMonths    float64   `json:"-"`
	CashFlows          []float64 `json:"cashFlows,omitempty"`
	NPV                float64   `json:"npv,omitempty"`

	// IRR is nil for strategies that do not produce a periodic series.
	IRR        *cashflow.IRRResult `json:"irr,omitempty"`
	IRRPercent float64             `json:"irrPercent,omitempty"`

	// Shared and flip metrics.
	EstimatedARV     float64 `json:"estimatedArv,omitempty"`
	SalePrice        float64 `json:"salePrice,omitempty"`
	Profit           float64 `json:"profit"`
	ROI              float64 `json:"roi"`
	AnnualizedReturn float64 `json:"annualizedReturn,omitempty"`

	FlipSensitivity   *sensitivity.FlipResult   `json:"flipSensitivity,omitempty"`
	RentalSensitivity *sensitivity.RentalResult `json:"rentalSensitivity,omitempty"`

	Warnings []string `json:"warnings,omitempty"`
}
