// Package valuation estimates after-repair value from comparable sales.
package valuation

import (
	"sort"

	"github.com/iwvelando/deal-metrics/pkg/mathutil"
	"github.com/iwvelando/deal-metrics/pkg/validation"
)

// Comparable is a recent sale near the subject property.
type Comparable struct {
	SalePrice float64 `json:"salePrice" yaml:"salePrice" mapstructure:"salePrice"`
	Area      float64 `json:"area" yaml:"area" mapstructure:"area"`
}

// PricePerArea returns the ascending price-per-unit-area distribution of the
// comparables.
func PricePerArea(comparables []Comparable) ([]float64, error) {
	if err := validation.RequireNonEmpty("valuation.PricePerArea", "comparables", len(comparables)); err != nil {
		return nil, err
	}

	prices := make([]float64, len(comparables))
	for i, comp := range comparables {
		if err := validation.RequirePositive("valuation.PricePerArea", "comparable area", comp.Area); err != nil {
			return nil, err
		}
		prices[i] = comp.SalePrice / comp.Area
	}
	sort.Float64s(prices)
	return prices, nil
}

// EstimateARV scales the median comparable price-per-area to the subject
// property's area.
func EstimateARV(comparables []Comparable, subjectArea float64) (float64, error) {
	if err := validation.RequirePositive("valuation.EstimateARV", "subjectArea", subjectArea); err != nil {
		return 0, err
	}

	prices, err := PricePerArea(comparables)
	if err != nil {
		return 0, err
	}
	return mathutil.SortedMedian(prices) * subjectArea, nil
}
