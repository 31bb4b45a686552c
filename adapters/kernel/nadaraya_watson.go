package kernel

import (
	"context"
	"math"

	"gonum.org/v1/gonum/stat"

	"hetcal/internal/errors"
	"hetcal/ports"
)

// NadarayaWatson fits a Gaussian-kernel local-average regression.
// It is stateless; every Fit returns an independent model.
type NadarayaWatson struct{}

// New creates a Nadaraya-Watson regression adapter
func New() *NadarayaWatson {
	return &NadarayaWatson{}
}

// Fit validates the inputs and captures copies of them in a fitted model.
// Copying keeps the model safe when the caller's slices are reused.
func (nw *NadarayaWatson) Fit(ctx context.Context, xs, ys []float64, bandwidth float64) (ports.FittedModel, error) {
	if len(xs) == 0 {
		return nil, errors.InvalidInput("cannot fit regression on empty data")
	}
	if len(xs) != len(ys) {
		return nil, errors.InvalidInput("covariate and response lengths differ")
	}
	if bandwidth <= 0 {
		return nil, errors.InvalidInput("bandwidth must be positive")
	}

	m := &Model{
		xs:        make([]float64, len(xs)),
		ys:        make([]float64, len(ys)),
		bandwidth: bandwidth,
	}
	copy(m.xs, xs)
	copy(m.ys, ys)
	m.mean = stat.Mean(m.ys, nil)
	return m, nil
}

// Model is a fitted Nadaraya-Watson estimator
type Model struct {
	xs        []float64
	ys        []float64
	bandwidth float64
	mean      float64
}

// Predict evaluates the kernel-weighted local average at x
func (m *Model) Predict(x float64) float64 {
	var num, den float64
	for i, xi := range m.xs {
		u := (x - xi) / m.bandwidth
		w := math.Exp(-0.5 * u * u)
		num += w * m.ys[i]
		den += w
	}
	if den == 0 {
		// Far outside the support every weight underflows; fall back to
		// the global mean rather than dividing by zero.
		return m.mean
	}
	return num / den
}

// Residuals returns y - Predict(x) per observation
func (m *Model) Residuals(xs, ys []float64) []float64 {
	res := make([]float64, len(xs))
	for i, x := range xs {
		res[i] = ys[i] - m.Predict(x)
	}
	return res
}

// Bandwidth returns the smoothing parameter the model was fitted with
func (m *Model) Bandwidth() float64 {
	return m.bandwidth
}
