package calculation

import (
	"fmt"

	"github.com/nlplan/finance-planner/internal/domain"
)

// Engine orchestrates the projection pipeline. One projection is one
// pure function call over an immutable settings snapshot; engines hold
// no per-run state and may be shared across runs.
type Engine struct {
	TaxCalc *DutchTaxCalculator
	RSUCalc *RSUCalculator
	Logger  Logger
}

// NewEngine creates an engine with the built-in 2025 Dutch tax rules.
func NewEngine() *Engine {
	return NewEngineWithRules(nil)
}

// NewEngineWithRules creates an engine with a custom tax rule set; nil
// selects the 2025 defaults.
func NewEngineWithRules(rules *domain.TaxRules) *Engine {
	logger := NopLogger{}
	taxCalc := NewDutchTaxCalculatorWithRules(rules)
	return &Engine{
		TaxCalc: taxCalc,
		RSUCalc: NewRSUCalculator(taxCalc, logger),
		Logger:  logger,
	}
}

// SetLogger sets the engine logger. Nil restores the no-op logger.
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		l = NopLogger{}
	}
	e.Logger = l
	e.RSUCalc.Logger = l
}

// Project runs the complete pipeline once and returns the per-year
// result arrays, all of equal length and index-aligned to
// settings.Planning.StartYear + i.
//
// The snapshot's tax rules override the engine's rule set for this run
// when present. Settings are expected to be validated by the caller;
// the pipeline itself never fails partway — degenerate arithmetic
// degrades to zero so the output arrays always have matching lengths.
func (e *Engine) Project(s *domain.Settings) (*domain.FinancialProjections, error) {
	if s == nil {
		return nil, fmt.Errorf("nil settings")
	}
	if s.Planning.ProjectionYears <= 0 {
		return nil, fmt.Errorf("projection years must be positive, got %d", s.Planning.ProjectionYears)
	}

	runEngine := e
	if s.TaxRules != nil {
		runEngine = NewEngineWithRules(s.TaxRules)
		runEngine.SetLogger(e.Logger)
	}

	return runEngine.GenerateProjections(s), nil
}
