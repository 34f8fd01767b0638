package loans

import (
	"math"
	"testing"

	"github.com/iwvelando/deal-metrics/pkg/validation"
)

func TestCalculateMonthlyPayment(t *testing.T) {
	tests := []struct {
		name               string
		principal          float64
		downPayment        float64
		annualInterestRate float64
		termMonths         int
		expectedRange      []float64 // [min, max] expected range
	}{
		{
			name:               "Standard 30-year mortgage",
			principal:          300000,
			downPayment:        60000, // 20%
			annualInterestRate: 6.0,
			termMonths:         360,
			expectedRange:      []float64{1400, 1500}, // Around $1439
		},
		{
			name:               "5-year car loan",
			principal:          25000,
			downPayment:        5000,
			annualInterestRate: 4.0,
			termMonths:         60,
			expectedRange:      []float64{360, 380}, // Around $368
		},
		{
			name:               "Zero interest loan",
			principal:          12000,
			downPayment:        2000,
			annualInterestRate: 0.0,
			termMonths:         60,
			expectedRange:      []float64{166, 167}, // Exactly $166.67
		},
		{
			name:               "100% down payment",
			principal:          50000,
			downPayment:        50000,
			annualInterestRate: 5.0,
			termMonths:         60,
			expectedRange:      []float64{0, 0}, // Should be 0
		},
		{
			name:               "High interest loan",
			principal:          10000,
			downPayment:        0,
			annualInterestRate: 18.0,
			termMonths:         36,
			expectedRange:      []float64{360, 380}, // Around $372
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculateMonthlyPayment(tt.principal, tt.downPayment, tt.annualInterestRate, tt.termMonths)

			if result < tt.expectedRange[0] || result > tt.expectedRange[1] {
				t.Errorf("CalculateMonthlyPayment() = %.2f, expected range [%.2f, %.2f]",
					result, tt.expectedRange[0], tt.expectedRange[1])
			}
		})
	}
}

func TestCalculateInterestPayment(t *testing.T) {
	tests := []struct {
		name               string
		remainingPrincipal float64
		annualInterestRate float64
		expected           float64
	}{
		{
			name:               "Standard mortgage interest",
			remainingPrincipal: 200000,
			annualInterestRate: 6.0,
			expected:           1000.0, // 200000 * 0.06 / 12
		},
		{
			name:               "Car loan interest",
			remainingPrincipal: 15000,
			annualInterestRate: 4.5,
			expected:           56.25, // 15000 * 0.045 / 12
		},
		{
			name:               "Zero interest",
			remainingPrincipal: 10000,
			annualInterestRate: 0.0,
			expected:           0.0,
		},
		{
			name:               "High interest",
			remainingPrincipal: 5000,
			annualInterestRate: 24.0,
			expected:           100.0, // 5000 * 0.24 / 12
		},
		{
			name:               "Very small principal",
			remainingPrincipal: 100,
			annualInterestRate: 6.0,
			expected:           0.5, // 100 * 0.06 / 12
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculateInterestPayment(tt.remainingPrincipal, tt.annualInterestRate)

			if math.Abs(result-tt.expected) > 0.01 {
				t.Errorf("CalculateInterestPayment() = %.2f, expected %.2f", result, tt.expected)
			}
		})
	}
}

func TestAmortize(t *testing.T) {
	schedule, err := Amortize(300000, 7, 360)
	if err != nil {
		t.Fatalf("Amortize() error = %v", err)
	}

	if len(schedule) != 360 {
		t.Fatalf("expected 360 entries, got %d", len(schedule))
	}

	expectedFirstInterest := 300000 * 0.07 / 12
	if math.Abs(schedule[0].Interest-expectedFirstInterest) > 0.01 {
		t.Errorf("first interest = %.2f, expected %.2f", schedule[0].Interest, expectedFirstInterest)
	}

	if final := schedule[359].RemainingPrincipal; math.Abs(final) >= 1 {
		t.Errorf("final balance = %.6f, expected below 1", final)
	}

	for i, payment := range schedule {
		if math.Abs(payment.Payment-schedule[0].Payment) > 0.01 {
			t.Errorf("period %d payment %.2f differs from first payment %.2f", i+1, payment.Payment, schedule[0].Payment)
		}
		if math.Abs(payment.Principal+payment.Interest-payment.Payment) > 1e-9 {
			t.Errorf("period %d: principal + interest != payment", i+1)
		}
		if payment.Period != i+1 {
			t.Errorf("entry %d has period %d", i, payment.Period)
		}
	}
}

func TestAmortizeZeroInterest(t *testing.T) {
	schedule, err := Amortize(100000, 0, 60)
	if err != nil {
		t.Fatalf("Amortize() error = %v", err)
	}
	if len(schedule) != 60 {
		t.Fatalf("expected 60 entries, got %d", len(schedule))
	}

	expected := 100000.0 / 60
	for _, payment := range schedule {
		if math.Abs(payment.Payment-expected) > 0.01 {
			t.Errorf("period %d payment = %.4f, expected %.4f", payment.Period, payment.Payment, expected)
		}
		if payment.Interest != 0 {
			t.Errorf("period %d interest = %.4f, expected 0", payment.Period, payment.Interest)
		}
	}
	if math.Abs(schedule[59].RemainingPrincipal) >= 1 {
		t.Errorf("final balance = %.6f, expected below 1", schedule[59].RemainingPrincipal)
	}
}

func TestAmortizeLongTerm(t *testing.T) {
	schedule, err := Amortize(300000, 7, 1200)
	if err != nil {
		t.Fatalf("Amortize() error = %v", err)
	}
	if len(schedule) != 1200 {
		t.Fatalf("expected 1200 entries, got %d", len(schedule))
	}

	if math.IsNaN(schedule[0].Payment) || math.Abs(schedule[0].Payment-1751.63) > 0.01 {
		t.Errorf("payment = %.4f, expected 1751.63", schedule[0].Payment)
	}
	if final := schedule[1199].RemainingPrincipal; math.IsNaN(final) || math.Abs(final) >= 1 {
		t.Errorf("final balance = %.6f, expected below 1", final)
	}
}

func TestCalculateMonthlyPaymentStaysFinite(t *testing.T) {
	tests := []struct {
		name   string
		months int
	}{
		{"Hundred thousand months", 100000},
		{"Two hundred thousand months", 200000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// As the term grows the payment approaches pure interest: 300000 * 0.07 / 12.
			result := CalculateMonthlyPayment(300000, 0, 7, tt.months)
			if math.IsNaN(result) || math.IsInf(result, 0) || math.Abs(result-1750) > 0.01 {
				t.Errorf("CalculateMonthlyPayment() = %v, expected 1750", result)
			}
		})
	}
}

func TestAmortizeValidation(t *testing.T) {
	tests := []struct {
		name      string
		principal float64
		rate      float64
		months    int
	}{
		{"Negative principal", -300000, 7, 360},
		{"Zero principal", 0, 7, 360},
		{"Zero months", 300000, 7, 0},
		{"Negative months", 300000, 7, -12},
		{"Negative rate", 300000, -1, 360},
		{"Term beyond limit", 300000, 7, 1201},
		{"Huge term", 300000, 7, 200000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schedule, err := Amortize(tt.principal, tt.rate, tt.months)
			if !validation.IsValidationError(err) {
				t.Fatalf("Amortize() expected validation error, got %v", err)
			}
			if schedule != nil {
				t.Errorf("Amortize() returned a partial schedule on error")
			}
		})
	}
}

func TestAmortizePrincipalRoundTrip(t *testing.T) {
	tests := []struct {
		name      string
		principal float64
		rate      float64
		months    int
	}{
		{"Thirty-year mortgage", 300000, 7, 360},
		{"Short car loan", 25000, 4, 60},
		{"Zero interest", 12000, 0, 48},
		{"Single payment", 5000, 12, 1},
		{"High rate", 10000, 29.99, 36},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schedule, err := Amortize(tt.principal, tt.rate, tt.months)
			if err != nil {
				t.Fatalf("Amortize() error = %v", err)
			}
			summary := Summarize(schedule)
			if math.Abs(summary.TotalPrincipal-tt.principal) > 1e-6 {
				t.Errorf("sum of principal = %.8f, expected %.2f", summary.TotalPrincipal, tt.principal)
			}
			if math.Abs(summary.TotalPaid-(summary.TotalPrincipal+summary.TotalInterest)) > 1e-6 {
				t.Errorf("total paid %.4f != principal %.4f + interest %.4f",
					summary.TotalPaid, summary.TotalPrincipal, summary.TotalInterest)
			}
		})
	}
}

func TestAmortizeIsDeterministic(t *testing.T) {
	first, err := Amortize(250000, 6.25, 180)
	if err != nil {
		t.Fatalf("Amortize() error = %v", err)
	}
	second, err := Amortize(250000, 6.25, 180)
	if err != nil {
		t.Fatalf("Amortize() error = %v", err)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("entry %d differs between calls: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestSummarize(t *testing.T) {
	schedule, err := Amortize(175000, 4.5, 360)
	if err != nil {
		t.Fatalf("Amortize() error = %v", err)
	}

	summary := Summarize(schedule)
	if math.Abs(summary.MonthlyPayment-886.70) > 0.01 {
		t.Errorf("MonthlyPayment = %.2f, expected 886.70", summary.MonthlyPayment)
	}
	// 886.70 * 360 - 175000, within the cent rounding of the reference payment.
	if math.Abs(summary.TotalInterest-144212.98) > 5 {
		t.Errorf("TotalInterest = %.2f, expected about 144212.98", summary.TotalInterest)
	}

	if empty := Summarize(nil); empty != (Summary{}) {
		t.Errorf("Summarize(nil) = %+v, expected zero value", empty)
	}
}

func TestRemainingBalance(t *testing.T) {
	schedule, err := Amortize(175000, 4.5, 360)
	if err != nil {
		t.Fatalf("Amortize() error = %v", err)
	}

	tests := []struct {
		name     string
		payments int
		expected float64
	}{
		{"Before any payment", 0, 175000},
		{"After first year", 12, 172176.85},
		{"After five years", 60, 159526.36},
		{"At maturity", 360, 0},
		{"Past maturity", 400, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RemainingBalance(schedule, tt.payments)
			if math.Abs(got-tt.expected) > 0.5 {
				t.Errorf("RemainingBalance(%d) = %.2f, expected %.2f", tt.payments, got, tt.expected)
			}
		})
	}

	if RemainingBalance(nil, 5) != 0 {
		t.Error("RemainingBalance on empty schedule should be 0")
	}
}
