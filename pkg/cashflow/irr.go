package cashflow

import (
	"math"

	"github.com/iwvelando/deal-metrics/pkg/constants"
	"github.com/iwvelando/deal-metrics/pkg/mathutil"
	"github.com/iwvelando/deal-metrics/pkg/validation"
)

// IRRStatus describes how the IRR solver finished.
type IRRStatus string

const (
	// IRRConverged means NPV at the reported rate is within tolerance of zero.
	IRRConverged IRRStatus = "converged"

	// IRRNotConverged means the iteration budget ran out before NPV reached zero.
	IRRNotConverged IRRStatus = "not_converged"

	// IRRDiverged means the iteration hit a flat slope or a non-finite value.
	IRRDiverged IRRStatus = "diverged"
)

// IRRResult is the outcome of an IRR solve. Percent is only meaningful when
// Status is IRRConverged; read it through Value or OrZero.
type IRRResult struct {
	Percent    float64   `json:"percent"`
	Status     IRRStatus `json:"status"`
	Iterations int       `json:"iterations"`
}

// Converged reports whether the solver found a rate.
func (r IRRResult) Converged() bool {
	return r.Status == IRRConverged
}

// Value returns the rate in percent and whether it is available.
func (r IRRResult) Value() (float64, bool) {
	if !r.Converged() {
		return 0, false
	}
	return r.Percent, true
}

// OrZero returns the rate, substituting zero when the solver did not converge.
// Callers that display IRR use this to report "unavailable" as 0%.
func (r IRRResult) OrZero() float64 {
	v, _ := r.Value()
	return v
}

// SolverOptions tunes the Newton-Raphson iteration. Zero values fall back to
// the package defaults.
type SolverOptions struct {
	// Guess is the starting rate as a decimal (0.1 = 10%). Zero selects the
	// default guess of 0.1; to start at 0% pass a tiny non-zero value such
	// as 1e-9.
	Guess float64
	// MaxIterations caps the number of Newton steps.
	MaxIterations int
	// Tolerance is the NPV magnitude, per unit of initial investment (at
	// least 1), accepted as zero.
	Tolerance float64
}

func (o SolverOptions) withDefaults() SolverOptions {
	if o.Guess == 0 {
		o.Guess = constants.IRRInitialGuess
	}
	if o.MaxIterations <= 0 {
		o.MaxIterations = constants.IRRMaxIterations
	}
	if o.Tolerance <= 0 {
		o.Tolerance = constants.IRRTolerance
	}
	return o
}

// IRR finds the per-period rate at which NPV of the series is zero using the
// default solver options.
func IRR(cashFlows []float64, initialInvestment float64) (IRRResult, error) {
	return IRRWithOptions(cashFlows, initialInvestment, SolverOptions{})
}

// IRRWithOptions is IRR with an explicit starting guess, iteration cap and
// tolerance. Failing to converge is reported through IRRResult.Status, never
// as an error; the only error is a ValidationError for an empty series.
func IRRWithOptions(cashFlows []float64, initialInvestment float64, opts SolverOptions) (IRRResult, error) {
	if err := validation.RequireNonEmpty("cashflow.IRR", "cashFlows", len(cashFlows)); err != nil {
		return IRRResult{}, err
	}
	opts = opts.withDefaults()
	threshold := opts.Tolerance * math.Max(1, math.Abs(initialInvestment))

	rate := opts.Guess
	for i := 0; i < opts.MaxIterations; i++ {
		value, slope := npvWithDerivative(cashFlows, initialInvestment, rate)
		if !isFinite(value) || !isFinite(slope) {
			return failed(IRRDiverged, i), nil
		}
		if math.Abs(value) < threshold {
			return IRRResult{Percent: mathutil.DecimalToPercent(rate), Status: IRRConverged, Iterations: i}, nil
		}
		if slope == 0 {
			return failed(IRRDiverged, i), nil
		}

		next := rate - value/slope
		if next <= -1 {
			// Stay above -100% by halving the distance to it.
			next = (rate - 1) / 2
		}
		if !isFinite(next) {
			return failed(IRRDiverged, i+1), nil
		}
		rate = next
	}

	if value := npvAt(cashFlows, initialInvestment, rate); math.Abs(value) < threshold {
		return IRRResult{Percent: mathutil.DecimalToPercent(rate), Status: IRRConverged, Iterations: opts.MaxIterations}, nil
	}
	return failed(IRRNotConverged, opts.MaxIterations), nil
}

func failed(status IRRStatus, iterations int) IRRResult {
	return IRRResult{Status: status, Iterations: iterations}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
