package config

import (
	"fmt"

	"github.com/iwvelando/deal-metrics/internal/scenario"
	"github.com/iwvelando/deal-metrics/pkg/constants"
	"github.com/iwvelando/deal-metrics/pkg/valuation"
)

// Deal is one property as written in the deal book. Percentages are 0-100.
type Deal struct {
	Name     string
	Strategy string

	PurchasePrice float64
	RehabCost     float64
	ClosingCosts  float64
	HoldingCosts  float64

	MonthlyRent     float64
	DailyRate       float64
	OccupancyRate   float64
	MonthlyExpenses float64

	SalePrice    float64
	SellingCosts float64

	Loan Loan

	HoldMonths       int
	DiscountRate     float64
	VariationPercent float64

	Comparables []valuation.Comparable
	SubjectArea float64
}

// Loan describes how a deal is financed. A zero Term means all cash.
type Loan struct {
	DownPayment  float64 // percent of purchase price
	InterestRate float64 // annual percent
	Term         int     // months
}

// Assumptions converts the deal into scenario assumptions, filling any
// unset hold period, discount rate or variation from defaults.
func (d Deal) Assumptions(defaults Analysis) (scenario.Assumptions, error) {
	strategy, err := scenario.ParseExitStrategy(d.Strategy)
	if err != nil {
		return scenario.Assumptions{}, fmt.Errorf("deal %q: %w", d.Name, err)
	}

	a := scenario.Assumptions{
		Name:               d.Name,
		Strategy:           strategy,
		PurchasePrice:      d.PurchasePrice,
		RehabCost:          d.RehabCost,
		ClosingCosts:       d.ClosingCosts,
		HoldingCosts:       d.HoldingCosts,
		MonthlyRent:        d.MonthlyRent,
		DailyRate:          d.DailyRate,
		OccupancyRate:      d.OccupancyRate,
		MonthlyExpenses:    d.MonthlyExpenses,
		SalePrice:          d.SalePrice,
		SellingCosts:       d.SellingCosts,
		DownPaymentPercent: d.Loan.DownPayment,
		InterestRate:       d.Loan.InterestRate,
		LoanTermMonths:     d.Loan.Term,
		HoldMonths:         d.HoldMonths,
		DiscountRate:       d.DiscountRate,
		Comparables:        d.Comparables,
		SubjectArea:        d.SubjectArea,
		VariationPercent:   d.VariationPercent,
	}

	if a.HoldMonths == 0 {
		a.HoldMonths = defaults.HoldMonths
	}
	if a.DiscountRate == 0 {
		a.DiscountRate = defaults.DiscountRate
	}
	if a.VariationPercent == 0 {
		a.VariationPercent = defaults.VariationPercent
	}
	return a, nil
}

func (d Deal) warnings(name string) []string {
	var warnings []string
	warn := func(format string, args ...interface{}) {
		warnings = append(warnings, fmt.Sprintf("deal %s: ", name)+fmt.Sprintf(format, args...))
	}

	strategy, err := scenario.ParseExitStrategy(d.Strategy)
	if err != nil {
		warn("%v", err)
		return warnings
	}

	if d.PurchasePrice <= 0 {
		warn("purchase price must be positive, got %.2f", d.PurchasePrice)
	}
	if d.OccupancyRate > constants.PercentageMultiplier {
		warn("occupancy rate %.1f%% exceeds 100%%", d.OccupancyRate)
	}

	switch strategy {
	case scenario.Rent:
		if d.MonthlyRent == 0 {
			warn("rental has no monthly rent")
		}
		if d.OccupancyRate == 0 {
			warn("rental has 0%% occupancy")
		}
	case scenario.ShortTermRent:
		if d.DailyRate == 0 {
			warn("short-term rental has no daily rate")
		}
		if d.OccupancyRate == 0 {
			warn("short-term rental has 0%% occupancy")
		}
	case scenario.Flip:
		if d.SalePrice <= 0 && len(d.Comparables) == 0 {
			warn("flip needs a sale price or comparables to estimate one")
		}
		if len(d.Comparables) > 0 && d.SubjectArea <= 0 {
			warn("comparables given without a subject area")
		}
	}

	if d.Loan.Term > 0 {
		if d.Loan.DownPayment < 0 || d.Loan.DownPayment > constants.PercentageMultiplier {
			warn("down payment %.1f%% is outside 0-100%%", d.Loan.DownPayment)
		}
		if d.Loan.InterestRate < 0 {
			warn("interest rate %.2f%% is negative", d.Loan.InterestRate)
		}
	}

	return warnings
}
