package scenario

import (
	"fmt"
	"math"

	"github.com/iwvelando/deal-metrics/pkg/cashflow"
	"github.com/iwvelando/deal-metrics/pkg/constants"
	"github.com/iwvelando/deal-metrics/pkg/loans"
	"github.com/iwvelando/deal-metrics/pkg/mathutil"
	"github.com/iwvelando/deal-metrics/pkg/metrics"
	"github.com/iwvelando/deal-metrics/pkg/sensitivity"
	"github.com/iwvelando/deal-metrics/pkg/valuation"
	"github.com/iwvelando/deal-metrics/pkg/validation"
	"go.uber.org/zap"
)

// Analyzer computes the metric set for one exit strategy.
type Analyzer interface {
	Strategy() ExitStrategy
	Analyze(a Assumptions) (Result, error)
}

// DefaultAnalyzers returns the built-in rent, short-term rental and flip
// analyzers.
func DefaultAnalyzers(logger *zap.Logger) []Analyzer {
	return []Analyzer{
		NewRentalAnalyzer(logger),
		NewShortTermRentalAnalyzer(logger),
		NewFlipAnalyzer(logger),
	}
}

// RentalAnalyzer evaluates buy-and-hold deals. The same analysis serves long
// and short-term rentals; only the gross monthly income differs.
type RentalAnalyzer struct {
	logger      *zap.Logger
	strategy    ExitStrategy
	grossIncome func(a Assumptions) float64
}

// NewRentalAnalyzer creates an analyzer for long-term rentals.
func NewRentalAnalyzer(logger *zap.Logger) *RentalAnalyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RentalAnalyzer{
		logger:      logger,
		strategy:    Rent,
		grossIncome: func(a Assumptions) float64 { return a.MonthlyRent },
	}
}

// NewShortTermRentalAnalyzer creates an analyzer for nightly rentals, where
// gross monthly income is the daily rate over an average month.
func NewShortTermRentalAnalyzer(logger *zap.Logger) *RentalAnalyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RentalAnalyzer{
		logger:      logger,
		strategy:    ShortTermRent,
		grossIncome: func(a Assumptions) float64 { return a.DailyRate * constants.DaysPerMonth },
	}
}

// Strategy implements Analyzer.
func (r *RentalAnalyzer) Strategy() ExitStrategy {
	return r.strategy
}

// Analyze implements Analyzer.
func (r *RentalAnalyzer) Analyze(a Assumptions) (Result, error) {
	op := fmt.Sprintf("scenario.%sAnalyze", r.strategy)
	if err := validation.RequirePositive(op, "purchasePrice", a.PurchasePrice); err != nil {
		return Result{}, err
	}

	result := Result{Name: a.Name, Strategy: r.strategy}

	fin, err := finance(a)
	if err != nil {
		return Result{}, err
	}
	result.LoanAmount = fin.loanAmount
	result.MonthlyDebtService = fin.monthlyPayment
	result.TotalInvested = fin.downPayment + a.RehabCost + a.ClosingCosts + a.HoldingCosts

	result.GrossMonthlyIncome = r.grossIncome(a)
	noi, err := metrics.NOI(result.GrossMonthlyIncome, a.OccupancyRate, a.MonthlyExpenses)
	if err != nil {
		return Result{}, err
	}
	result.NOI = noi

	if result.CapRate, err = metrics.CapRate(noi, a.PurchasePrice); err != nil {
		return Result{}, err
	}

	result.MonthlyCashFlow = noi/constants.MonthsPerYear - fin.monthlyPayment
	result.BreakEvenMonths = metrics.BreakEvenMonths(result.MonthlyCashFlow, result.TotalInvested)
	if result.TotalInvested > 0 {
		if result.CashOnCash, err = metrics.CashOnCash(result.MonthlyCashFlow, result.TotalInvested); err != nil {
			return Result{}, err
		}
	} else {
		result.Warnings = append(result.Warnings, "no cash invested; cash-on-cash and ROI are undefined")
	}

	// Annual flows; a partial final year carries only the months actually held.
	hold := a.holdMonths()
	years := int(math.Ceil(float64(hold) / constants.MonthsPerYear))
	flows := make([]float64, years)
	for i := range flows {
		flows[i] = result.MonthlyCashFlow * constants.MonthsPerYear
	}
	finalMonths := hold - constants.MonthsPerYear*(years-1)
	flows[years-1] = result.MonthlyCashFlow * float64(finalMonths)
	if a.SalePrice > 0 {
		result.SalePrice = a.SalePrice
		payoff := loans.RemainingBalance(fin.schedule, hold)
		flows[years-1] += a.SalePrice - a.SellingCosts - payoff
	}
	result.CashFlows = flows

	total := 0.0
	for _, cf := range flows {
		total += cf
	}
	result.Profit = total - result.TotalInvested
	if result.TotalInvested > 0 {
		if result.ROI, err = metrics.ROI(result.Profit, result.TotalInvested); err != nil {
			return Result{}, err
		}
	}

	if result.NPV, err = cashflow.NPV(flows, result.TotalInvested, a.DiscountRate); err != nil {
		return Result{}, err
	}

	irr, err := cashflow.IRR(flows, result.TotalInvested)
	if err != nil {
		return Result{}, err
	}
	result.IRR = &irr
	result.IRRPercent = irr.OrZero()
	if !irr.Converged() {
		r.logger.Warn("IRR unavailable, reporting 0%",
			zap.String("op", op),
			zap.String("deal", a.Name),
			zap.String("status", string(irr.Status)),
			zap.Int("iterations", irr.Iterations),
		)
		result.Warnings = append(result.Warnings, fmt.Sprintf("IRR unavailable (%s), reported as 0%%", irr.Status))
	}

	sweep, err := sensitivity.Rental(sensitivity.RentalInputs{
		MonthlyRent:     result.GrossMonthlyIncome,
		OccupancyRate:   a.OccupancyRate,
		MonthlyExpenses: a.MonthlyExpenses,
	}, a.variationPercent())
	if err != nil {
		return Result{}, err
	}
	result.RentalSensitivity = &sweep

	r.logger.Debug(fmt.Sprintf("analyzed %s deal %s", r.strategy, a.Name),
		zap.String("op", op),
		zap.Float64("noi", result.NOI),
		zap.Float64("capRate", result.CapRate),
		zap.Float64("cashOnCash", result.CashOnCash),
		zap.Float64("irr", result.IRRPercent),
	)
	return result, nil
}

// FlipAnalyzer evaluates fix-and-flip deals.
type FlipAnalyzer struct {
	logger *zap.Logger
}

// NewFlipAnalyzer creates an analyzer for flips.
func NewFlipAnalyzer(logger *zap.Logger) *FlipAnalyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FlipAnalyzer{logger: logger}
}

// Strategy implements Analyzer.
func (f *FlipAnalyzer) Strategy() ExitStrategy {
	return Flip
}

// Analyze implements Analyzer. When no sale price is given the after-repair
// value estimated from comparables is used instead.
func (f *FlipAnalyzer) Analyze(a Assumptions) (Result, error) {
	const op = "scenario.flipAnalyze"
	result := Result{Name: a.Name, Strategy: Flip}

	if len(a.Comparables) > 0 {
		arv, err := valuation.EstimateARV(a.Comparables, a.SubjectArea)
		if err != nil {
			return Result{}, err
		}
		result.EstimatedARV = arv
	}

	salePrice := a.SalePrice
	if salePrice <= 0 {
		salePrice = result.EstimatedARV
	}
	if err := validation.RequirePositive(op, "salePrice", salePrice); err != nil {
		return Result{}, err
	}
	result.SalePrice = salePrice

	inputs := metrics.FlipInputs{
		PurchasePrice: a.PurchasePrice,
		RehabCost:     a.RehabCost,
		ClosingCosts:  a.ClosingCosts,
		SalePrice:     salePrice,
		SellingCosts:  a.SellingCosts,
		HoldingCosts:  a.HoldingCosts,
	}
	result.Profit = metrics.FlipProfit(inputs)
	result.TotalInvested = a.PurchasePrice + a.RehabCost + a.ClosingCosts + a.HoldingCosts

	var err error
	if result.ROI, err = metrics.ROI(result.Profit, result.TotalInvested); err != nil {
		return Result{}, err
	}

	if a.HoldMonths > 0 {
		years := float64(a.HoldMonths) / constants.MonthsPerYear
		if result.AnnualizedReturn, err = metrics.CAGR(result.TotalInvested, result.TotalInvested+result.Profit, years); err != nil {
			return Result{}, err
		}
	}

	sweep, err := sensitivity.Flip(inputs, a.variationPercent())
	if err != nil {
		return Result{}, err
	}
	result.FlipSensitivity = &sweep

	f.logger.Debug(fmt.Sprintf("analyzed flip deal %s", a.Name),
		zap.String("op", op),
		zap.Float64("salePrice", salePrice),
		zap.Float64("profit", result.Profit),
		zap.Float64("roi", result.ROI),
	)
	return result, nil
}

type financing struct {
	loanAmount     float64
	downPayment    float64
	monthlyPayment float64
	schedule       []loans.Payment
}

// finance splits the purchase into cash and debt. Deals without a loan term
// or with a 100% down payment are all cash.
func finance(a Assumptions) (financing, error) {
	if a.LoanTermMonths <= 0 || a.DownPaymentPercent >= constants.PercentageMultiplier {
		return financing{downPayment: a.PurchasePrice}, nil
	}
	if err := validation.RequireNonNegative("scenario.finance", "downPaymentPercent", a.DownPaymentPercent); err != nil {
		return financing{}, err
	}

	down := mathutil.ApplyPercentage(a.PurchasePrice, a.DownPaymentPercent)
	loanAmount := a.PurchasePrice - down
	schedule, err := loans.Amortize(loanAmount, a.InterestRate, a.LoanTermMonths)
	if err != nil {
		return financing{}, fmt.Errorf("financing %s: %w", a.Name, err)
	}
	return financing{
		loanAmount:     loanAmount,
		downPayment:    down,
		monthlyPayment: schedule[0].Payment,
		schedule:       schedule,
	}, nil
}
