package scenario

import (
	"fmt"

	"go.uber.org/zap"
)

// Orchestrator dispatches deals to the analyzer registered for their exit
// strategy. Analyzers are supplied by the caller; there is no global registry.
type Orchestrator struct {
	logger    *zap.Logger
	analyzers map[ExitStrategy]Analyzer
}

// NewOrchestrator builds an orchestrator from the given analyzers. At least
// one analyzer is required and each strategy may be handled only once.
func NewOrchestrator(logger *zap.Logger, analyzers ...Analyzer) (*Orchestrator, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(analyzers) == 0 {
		return nil, fmt.Errorf("orchestrator requires at least one analyzer")
	}

	byStrategy := make(map[ExitStrategy]Analyzer, len(analyzers))
	for _, analyzer := range analyzers {
		if analyzer == nil {
			return nil, fmt.Errorf("orchestrator: nil analyzer")
		}
		strategy := analyzer.Strategy()
		if _, exists := byStrategy[strategy]; exists {
			return nil, fmt.Errorf("orchestrator: duplicate analyzer for strategy %q", strategy)
		}
		byStrategy[strategy] = analyzer
	}

	return &Orchestrator{logger: logger, analyzers: byStrategy}, nil
}

// Supports reports whether an analyzer is registered for the strategy.
func (o *Orchestrator) Supports(strategy ExitStrategy) bool {
	_, ok := o.analyzers[strategy]
	return ok
}

// Analyze runs the analyzer matching the deal's strategy.
func (o *Orchestrator) Analyze(a Assumptions) (Result, error) {
	analyzer, ok := o.analyzers[a.Strategy]
	if !ok {
		return Result{}, fmt.Errorf("deal %q: %w %q", a.Name, ErrUnsupportedStrategy, a.Strategy)
	}

	result, err := analyzer.Analyze(a)
	if err != nil {
		o.logger.Debug("deal analysis failed",
			zap.String("op", "scenario.Analyze"),
			zap.String("deal", a.Name),
			zap.String("strategy", string(a.Strategy)),
			zap.Error(err),
		)
		return Result{}, fmt.Errorf("deal %q: %w", a.Name, err)
	}
	return result, nil
}

// AnalyzeAll analyzes deals in order and stops at the first failure.
func (o *Orchestrator) AnalyzeAll(deals []Assumptions) ([]Result, error) {
	results := make([]Result, 0, len(deals))
	for _, deal := range deals {
		result, err := o.Analyze(deal)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	o.logger.Info(fmt.Sprintf("analyzed %d deals", len(results)),
		zap.String("op", "scenario.AnalyzeAll"),
	)
	return results, nil
}
