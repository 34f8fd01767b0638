// Package sensitivity recomputes deal metrics with one input perturbed at a
// time, holding the rest at their base-case values.
package sensitivity

import (
	"github.com/iwvelando/deal-metrics/pkg/metrics"
	"github.com/iwvelando/deal-metrics/pkg/mathutil"
	"github.com/iwvelando/deal-metrics/pkg/validation"
)

// Variable names a perturbed input.
type Variable string

// Flip variables, in output order.
const (
	SalePrice     Variable = "salePrice"
	RehabCost     Variable = "rehabCost"
	PurchasePrice Variable = "purchasePrice"
)

// Rental variables, in output order.
const (
	MonthlyRent     Variable = "monthlyRent"
	OccupancyRate   Variable = "occupancyRate"
	MonthlyExpenses Variable = "monthlyExpenses"
)

// Scenario is the metric recomputed with Variable scaled down and up by the
// variation percentage.
type Scenario struct {
	Variable  Variable `json:"variable"`
	DownValue float64  `json:"downPercent"`
	UpValue   float64  `json:"upPercent"`
}

// FlipResult holds the unperturbed profit and one scenario per variable.
type FlipResult struct {
	VariationPercent float64    `json:"variationPercent"`
	BaseProfit       float64    `json:"baseProfit"`
	Scenarios        []Scenario `json:"scenarios"`
}

// RentalInputs are the income-side drivers of annual NOI.
type RentalInputs struct {
	MonthlyRent     float64 `json:"monthlyRent"`
	OccupancyRate   float64 `json:"occupancyRate"`
	MonthlyExpenses float64 `json:"monthlyExpenses"`
}

// RentalResult holds the unperturbed annual NOI and one scenario per variable.
type RentalResult struct {
	VariationPercent float64    `json:"variationPercent"`
	BaseNOI          float64    `json:"baseNOI"`
	Scenarios        []Scenario `json:"scenarios"`
}

func factors(op string, variationPercent float64) (float64, float64, error) {
	if err := validation.RequireNonNegative(op, "variationPercent", variationPercent); err != nil {
		return 0, 0, err
	}
	delta := mathutil.PercentToDecimal(variationPercent)
	return 1 - delta, 1 + delta, nil
}

// Flip sweeps sale price, rehab cost and purchase price, in that order.
func Flip(base metrics.FlipInputs, variationPercent float64) (FlipResult, error) {
	down, up, err := factors("sensitivity.Flip", variationPercent)
	if err != nil {
		return FlipResult{}, err
	}

	perturb := []struct {
		variable Variable
		apply    func(in *metrics.FlipInputs, factor float64)
	}{
		{SalePrice, func(in *metrics.FlipInputs, f float64) { in.SalePrice *= f }},
		{RehabCost, func(in *metrics.FlipInputs, f float64) { in.RehabCost *= f }},
		{PurchasePrice, func(in *metrics.FlipInputs, f float64) { in.PurchasePrice *= f }},
	}

	result := FlipResult{
		VariationPercent: variationPercent,
		BaseProfit:       metrics.FlipProfit(base),
		Scenarios:        make([]Scenario, 0, len(perturb)),
	}
	for _, p := range perturb {
		lower, upper := base, base
		p.apply(&lower, down)
		p.apply(&upper, up)
		result.Scenarios = append(result.Scenarios, Scenario{
			Variable:  p.variable,
			DownValue: metrics.FlipProfit(lower),
			UpValue:   metrics.FlipProfit(upper),
		})
	}
	return result, nil
}

// Rental sweeps monthly rent, occupancy and monthly expenses, in that order,
// reporting annual NOI for each.
func Rental(base RentalInputs, variationPercent float64) (RentalResult, error) {
	down, up, err := factors("sensitivity.Rental", variationPercent)
	if err != nil {
		return RentalResult{}, err
	}

	baseNOI, err := base.noi()
	if err != nil {
		return RentalResult{}, err
	}

	perturb := []struct {
		variable Variable
		apply    func(in *RentalInputs, factor float64)
	}{
		{MonthlyRent, func(in *RentalInputs, f float64) { in.MonthlyRent *= f }},
		{OccupancyRate, func(in *RentalInputs, f float64) { in.OccupancyRate *= f }},
		{MonthlyExpenses, func(in *RentalInputs, f float64) { in.MonthlyExpenses *= f }},
	}

	result := RentalResult{
		VariationPercent: variationPercent,
		BaseNOI:          baseNOI,
		Scenarios:        make([]Scenario, 0, len(perturb)),
	}
	for _, p := range perturb {
		lower, upper := base, base
		p.apply(&lower, down)
		p.apply(&upper, up)

		lowerNOI, err := lower.noi()
		if err != nil {
			return RentalResult{}, err
		}
		upperNOI, err := upper.noi()
		if err != nil {
			return RentalResult{}, err
		}
		result.Scenarios = append(result.Scenarios, Scenario{
			Variable:  p.variable,
			DownValue: lowerNOI,
			UpValue:   upperNOI,
		})
	}
	return result, nil
}

func (r RentalInputs) noi() (float64, error) {
	return metrics.NOI(r.MonthlyRent, r.OccupancyRate, r.MonthlyExpenses)
}
