// Package loans provides loan amortization utilities.
package loans

import (
	"math"

	"github.com/iwvelando/deal-metrics/pkg/constants"
	"github.com/iwvelando/deal-metrics/pkg/validation"
	"gonum.org/v1/gonum/floats"
)

// Payment holds the values for a given period of an amortization schedule.
type Payment struct {
	Period             int     `json:"period"`
	Payment            float64 `json:"payment"`
	Principal          float64 `json:"principal"`
	Interest           float64 `json:"interest"`
	RemainingPrincipal float64 `json:"balance"`
}

// Summary rolls up a schedule into totals.
type Summary struct {
	MonthlyPayment float64 `json:"payment"`
	TotalPaid      float64 `json:"totalPaid"`
	TotalPrincipal float64 `json:"totalPrincipal"`
	TotalInterest  float64 `json:"totalInterest"`
}

// CalculateMonthlyPayment calculates the monthly payment for a loan using the standard amortization formula.
func CalculateMonthlyPayment(principal, downPayment, annualInterestRate float64, termMonths int) float64 {
	if annualInterestRate == 0 {
		// For zero interest, simply divide the principal by term
		return (principal - downPayment) / float64(termMonths)
	}

	// The discount-factor form stays finite for long terms where (1+r)^n overflows.
	periodicInterestRate := monthlyRate(annualInterestRate)
	discount := math.Pow(1.00+periodicInterestRate, -float64(termMonths))
	return (principal - downPayment) * periodicInterestRate / (1.00 - discount)
}

// CalculateInterestPayment calculates the interest portion of a payment.
func CalculateInterestPayment(remainingPrincipal, annualInterestRate float64) float64 {
	return remainingPrincipal * monthlyRate(annualInterestRate)
}

func monthlyRate(annualInterestRate float64) float64 {
	return annualInterestRate / (constants.PercentageMultiplier * constants.MonthsPerYear)
}

// Amortize produces the full level-payment schedule for a loan, one entry per
// month. The payment is identical in every period; any floating-point residue
// left on the final balance is reported as-is rather than folded into the last
// payment.
func Amortize(principal, annualInterestRate float64, termMonths int) ([]Payment, error) {
	if err := validation.RequirePositive("loans.Amortize", "principal", principal); err != nil {
		return nil, err
	}
	if err := validation.RequirePositive("loans.Amortize", "months", float64(termMonths)); err != nil {
		return nil, err
	}
	if err := validation.RequireAtMost("loans.Amortize", "months", float64(termMonths), constants.MaxLoanTermMonths); err != nil {
		return nil, err
	}
	if err := validation.RequireNonNegative("loans.Amortize", "annualRate", annualInterestRate); err != nil {
		return nil, err
	}

	monthlyPayment := CalculateMonthlyPayment(principal, 0, annualInterestRate, termMonths)
	schedule := make([]Payment, termMonths)

	balance := principal
	for month := 1; month <= termMonths; month++ {
		interest := CalculateInterestPayment(balance, annualInterestRate)
		principalPaid := monthlyPayment - interest
		balance -= principalPaid

		schedule[month-1] = Payment{
			Period:             month,
			Payment:            monthlyPayment,
			Principal:          principalPaid,
			Interest:           interest,
			RemainingPrincipal: balance,
		}
	}

	return schedule, nil
}

// Summarize totals the payments, principal and interest of a schedule.
func Summarize(schedule []Payment) Summary {
	if len(schedule) == 0 {
		return Summary{}
	}

	payments := make([]float64, len(schedule))
	principal := make([]float64, len(schedule))
	interest := make([]float64, len(schedule))
	for i, p := range schedule {
		payments[i] = p.Payment
		principal[i] = p.Principal
		interest[i] = p.Interest
	}

	return Summary{
		MonthlyPayment: schedule[0].Payment,
		TotalPaid:      floats.Sum(payments),
		TotalPrincipal: floats.Sum(principal),
		TotalInterest:  floats.Sum(interest),
	}
}

// RemainingBalance returns the loan balance after the given number of
// payments. Zero or fewer payments returns the original principal and a count
// past the end of the schedule returns zero.
func RemainingBalance(schedule []Payment, paymentsMade int) float64 {
	if len(schedule) == 0 {
		return 0
	}
	if paymentsMade <= 0 {
		return schedule[0].RemainingPrincipal + schedule[0].Principal
	}
	if paymentsMade >= len(schedule) {
		return 0
	}
	return math.Max(schedule[paymentsMade-1].RemainingPrincipal, 0)
}
