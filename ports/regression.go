package ports

import "context"

// FittedModel is a fitted nonparametric regression, produced by a
// RegressionPort and consumed by a HeteroTestPort. The trial engine treats it
// as opaque beyond passing it along.
type FittedModel interface {
	// Predict evaluates the fitted mean function at a single covariate value
	Predict(x float64) float64

	// Residuals returns y - Predict(x) for each observation
	Residuals(xs, ys []float64) []float64
}

// RegressionPort fits a kernel regression to a dataset.
// Fit must be a pure function of its inputs: no hidden configuration and no
// shared mutable state, so concurrent trials can call it freely.
type RegressionPort interface {
	Fit(ctx context.Context, xs, ys []float64, bandwidth float64) (FittedModel, error)
}
