// Package hetero implements the four supported heteroscedasticity tests
// behind a single dispatch engine. Each test consumes the residuals of a
// fitted regression together with the covariates, and reports whether the
// residual variance depends on the covariate at the given significance level.
package hetero

import (
	"context"

	"hetcal/internal/errors"
	"hetcal/ports"
)

// Test is one heteroscedasticity test variant. Implementations are stateless
// and safe for concurrent use.
type Test interface {
	ID() ports.TestID
	Run(xs, residuals []float64, alpha float64) (*ports.TestVerdict, error)
}

// Engine dispatches verdict requests over the closed set of tests
type Engine struct {
	tests map[ports.TestID]Test
}

// NewEngine creates an engine with all four tests registered
func NewEngine() *Engine {
	e := &Engine{tests: make(map[ports.TestID]Test)}
	for _, t := range []Test{
		NewBreuschPagan(),
		NewWhite(),
		NewGoldfeldQuandt(),
		NewDetteMunkWagner(),
	} {
		e.tests[t.ID()] = t
	}
	return e
}

// ListTests returns the registered test identifiers
func (e *Engine) ListTests() []ports.TestID {
	ids := make([]ports.TestID, 0, len(e.tests))
	for _, t := range ports.AllTests() {
		if _, ok := e.tests[t]; ok {
			ids = append(ids, t)
		}
	}
	return ids
}

// Evaluate computes residuals from the fitted model and runs the named test
func (e *Engine) Evaluate(ctx context.Context, model ports.FittedModel, xs, ys []float64, test ports.TestID, alpha float64) (*ports.TestVerdict, error) {
	impl, ok := e.tests[test]
	if !ok {
		return nil, errors.UnknownTest(string(test))
	}
	if len(xs) != len(ys) {
		return nil, errors.InvalidInput("covariate and response lengths differ")
	}
	if alpha <= 0 || alpha >= 1 {
		return nil, errors.InvalidInput("alpha must lie strictly between 0 and 1")
	}

	residuals := model.Residuals(xs, ys)
	return impl.Run(xs, residuals, alpha)
}
