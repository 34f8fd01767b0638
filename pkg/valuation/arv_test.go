package valuation

import (
	"math"
	"testing"

	"github.com/iwvelando/deal-metrics/pkg/validation"
)

func TestEstimateARV(t *testing.T) {
	tests := []struct {
		name        string
		comparables []Comparable
		subjectArea float64
		expected    float64
		tolerance   float64
	}{
		{
			name: "Odd count uses middle comparable",
			comparables: []Comparable{
				{SalePrice: 300000, Area: 2000},
				{SalePrice: 350000, Area: 2100},
				{SalePrice: 400000, Area: 2400},
			},
			subjectArea: 2000,
			expected:    333333,
			tolerance:   1,
		},
		{
			name: "Even count averages middle pair",
			comparables: []Comparable{
				{SalePrice: 200000, Area: 1000}, // 200
				{SalePrice: 300000, Area: 2000}, // 150
				{SalePrice: 250000, Area: 1000}, // 250
				{SalePrice: 100000, Area: 1000}, // 100
			},
			subjectArea: 1000,
			expected:    175000,
			tolerance:   1e-6,
		},
		{
			name:        "Single comparable scales directly",
			comparables: []Comparable{{SalePrice: 300000, Area: 2000}},
			subjectArea: 1500,
			expected:    225000,
			tolerance:   1e-6,
		},
		{
			name: "Outlier does not move the median",
			comparables: []Comparable{
				{SalePrice: 300000, Area: 2000},
				{SalePrice: 310000, Area: 2000},
				{SalePrice: 2000000, Area: 2000},
			},
			subjectArea: 2000,
			expected:    310000,
			tolerance:   1e-6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := EstimateARV(tt.comparables, tt.subjectArea)
			if err != nil {
				t.Fatalf("EstimateARV() unexpected error = %v", err)
			}
			if math.Abs(result-tt.expected) > tt.tolerance {
				t.Errorf("EstimateARV() = %.2f, expected %.2f", result, tt.expected)
			}
		})
	}
}

func TestEstimateARVValidation(t *testing.T) {
	tests := []struct {
		name        string
		comparables []Comparable
		subjectArea float64
	}{
		{"No comparables", nil, 2000},
		{"Empty comparables", []Comparable{}, 2000},
		{"Zero subject area", []Comparable{{SalePrice: 300000, Area: 2000}}, 0},
		{"Negative subject area", []Comparable{{SalePrice: 300000, Area: 2000}}, -10},
		{"Comparable without area", []Comparable{{SalePrice: 300000, Area: 0}}, 2000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := EstimateARV(tt.comparables, tt.subjectArea); !validation.IsValidationError(err) {
				t.Errorf("EstimateARV() expected validation error, got %v", err)
			}
		})
	}
}

func TestPricePerAreaSorted(t *testing.T) {
	prices, err := PricePerArea([]Comparable{
		{SalePrice: 400000, Area: 2000},
		{SalePrice: 100000, Area: 1000},
		{SalePrice: 300000, Area: 2000},
	})
	if err != nil {
		t.Fatalf("PricePerArea() unexpected error = %v", err)
	}

	expected := []float64{100, 150, 200}
	for i := range expected {
		if math.Abs(prices[i]-expected[i]) > 1e-9 {
			t.Errorf("prices[%d] = %.2f, expected %.2f", i, prices[i], expected[i])
		}
	}
}
