package ports

import "context"

// TestVerdict contains the outcome of a heteroscedasticity test on one dataset
type TestVerdict struct {
	TestID            TestID  `json:"test_id"`
	IsHeteroscedastic bool    `json:"is_heteroscedastic"`
	PValue            float64 `json:"p_value"`
	Statistic         float64 `json:"statistic"`
}

// HeteroTestPort evaluates a heteroscedasticity test against the residuals of
// a fitted model. The trial engine only consumes IsHeteroscedastic; the rest
// of the verdict exists for diagnostics and reporting.
type HeteroTestPort interface {
	Evaluate(ctx context.Context, model FittedModel, xs, ys []float64, test TestID, alpha float64) (*TestVerdict, error)
}
