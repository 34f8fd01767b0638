// Package output provides utilities for formatting and displaying deal results.
package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/iwvelando/deal-metrics/internal/scenario"
	"github.com/iwvelando/deal-metrics/pkg/format"
	"github.com/iwvelando/deal-metrics/pkg/mathutil"
	"github.com/iwvelando/deal-metrics/pkg/sensitivity"
)

// PrettyFormat writes a human-readable rather than machine-readable report.
func PrettyFormat(w io.Writer, results []scenario.Result) error {
	for i, result := range results {
		rows := prettyRows(result)

		if _, err := fmt.Fprintf(w, "--- Results for deal %s (%s) ---\n", result.Name, result.Strategy); err != nil {
			return err
		}
		for _, row := range rows {
			if _, err := fmt.Fprintf(w, "%-22s | %s\n", row[0], row[1]); err != nil {
				return err
			}
		}

		if err := writeSensitivity(w, result); err != nil {
			return err
		}

		for _, warning := range result.Warnings {
			if _, err := fmt.Fprintf(w, "Warning: %s\n", warning); err != nil {
				return err
			}
		}
		if i < len(results)-1 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
	}
	return nil
}

func prettyRows(r scenario.Result) [][2]string {
	rows := [][2]string{{"Total invested", format.Currency(r.TotalInvested)}}

	if r.LoanAmount > 0 {
		rows = append(rows,
			[2]string{"Loan amount", format.Currency(r.LoanAmount)},
			[2]string{"Monthly debt service", format.Currency(r.MonthlyDebtService)},
		)
	}

	if r.Strategy != scenario.Flip {
		rows = append(rows,
			[2]string{"Gross monthly income", format.Currency(r.GrossMonthlyIncome)},
			[2]string{"NOI (annual)", format.Currency(r.NOI)},
			[2]string{"Cap rate", format.Percent(r.CapRate)},
			[2]string{"Monthly cash flow", format.Currency(r.MonthlyCashFlow)},
			[2]string{"Cash-on-cash", format.Percent(r.CashOnCash)},
			[2]string{"Break-even", format.Months(r.BreakEvenMonths)},
			[2]string{"NPV", format.Currency(r.NPV)},
		)
		irr := "n/a"
		if r.IRR != nil {
			if v, ok := r.IRR.Value(); ok {
				irr = format.Percent(v)
			} else {
				irr = fmt.Sprintf("unavailable (%s)", r.IRR.Status)
			}
		}
		rows = append(rows, [2]string{"IRR", irr})
	}

	if r.EstimatedARV > 0 {
		rows = append(rows, [2]string{"Estimated ARV", format.Currency(r.EstimatedARV)})
	}
	if r.SalePrice > 0 {
		rows = append(rows, [2]string{"Sale price", format.Currency(r.SalePrice)})
	}
	rows = append(rows,
		[2]string{"Profit", format.Currency(r.Profit)},
		[2]string{"ROI", format.Percent(r.ROI)},
	)
	if r.AnnualizedReturn != 0 {
		rows = append(rows, [2]string{"Annualized return", format.Percent(r.AnnualizedReturn)})
	}
	return rows
}

func writeSensitivity(w io.Writer, r scenario.Result) error {
	var (
		label     string
		base      float64
		variation float64
		scenarios []sensitivity.Scenario
	)
	switch {
	case r.FlipSensitivity != nil:
		label, base = "profit", r.FlipSensitivity.BaseProfit
		variation, scenarios = r.FlipSensitivity.VariationPercent, r.FlipSensitivity.Scenarios
	case r.RentalSensitivity != nil:
		label, base = "NOI", r.RentalSensitivity.BaseNOI
		variation, scenarios = r.RentalSensitivity.VariationPercent, r.RentalSensitivity.Scenarios
	default:
		return nil
	}

	if _, err := fmt.Fprintf(w, "Sensitivity of %s (base %s, +/-%.0f%%)\n", label, format.Currency(base), variation); err != nil {
		return err
	}
	for _, s := range scenarios {
		if _, err := fmt.Fprintf(w, "  %-18s | %s | %s\n", s.Variable, format.Currency(s.DownValue), format.Currency(s.UpValue)); err != nil {
			return err
		}
	}
	return nil
}

var csvHeader = []string{
	"deal", "strategy", "total invested", "loan amount", "monthly debt service",
	"noi", "cap rate", "monthly cash flow", "cash on cash", "break even months",
	"npv", "irr", "irr status", "estimated arv", "sale price", "profit", "roi",
	"annualized return",
}

// CsvFormat writes one comma-separated row per deal.
func CsvFormat(w io.Writer, results []scenario.Result) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return err
	}

	for _, r := range results {
		irr, irrStatus := "", ""
		if r.IRR != nil {
			irrStatus = string(r.IRR.Status)
			if v, ok := r.IRR.Value(); ok {
				irr = csvNumber(v)
			}
		}
		breakEven := ""
		if r.Strategy != scenario.Flip {
			breakEven = csvNumber(r.BreakEvenMonths)
		}

		record := []string{
			r.Name,
			string(r.Strategy),
			csvNumber(r.TotalInvested),
			csvNumber(r.LoanAmount),
			csvNumber(r.MonthlyDebtService),
			csvNumber(r.NOI),
			csvNumber(r.CapRate),
			csvNumber(r.MonthlyCashFlow),
			csvNumber(r.CashOnCash),
			breakEven,
			csvNumber(r.NPV),
			irr,
			irrStatus,
			csvNumber(r.EstimatedARV),
			csvNumber(r.SalePrice),
			csvNumber(r.Profit),
			csvNumber(r.ROI),
			csvNumber(r.AnnualizedReturn),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// csvNumber leaves non-finite values blank.
func csvNumber(v float64) string {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(mathutil.Round(v), 'f', 2, 64)
}
