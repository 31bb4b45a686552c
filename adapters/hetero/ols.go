package hetero

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// olsFitted regresses y on the columns of the design matrix via QR and
// returns the fitted values. Errors when the design is rank deficient.
func olsFitted(design *mat.Dense, y []float64) ([]float64, error) {
	n, _ := design.Dims()
	if n != len(y) {
		return nil, fmt.Errorf("design has %d rows for %d responses", n, len(y))
	}

	var qr mat.QR
	qr.Factorize(design)

	var beta mat.Dense
	if err := qr.SolveTo(&beta, false, mat.NewDense(n, 1, y)); err != nil {
		return nil, fmt.Errorf("auxiliary regression is ill-conditioned: %w", err)
	}

	var fitted mat.Dense
	fitted.Mul(design, &beta)

	out := make([]float64, n)
	for i := range out {
		out[i] = fitted.At(i, 0)
	}
	return out, nil
}

// explainedSumSquares is the sum of squared deviations of fitted values from
// the response mean.
func explainedSumSquares(fitted, y []float64) float64 {
	mean := stat.Mean(y, nil)
	var ess float64
	for _, f := range fitted {
		d := f - mean
		ess += d * d
	}
	return ess
}

// totalSumSquares is the sum of squared deviations of the response from its mean
func totalSumSquares(y []float64) float64 {
	mean := stat.Mean(y, nil)
	var tss float64
	for _, v := range y {
		d := v - mean
		tss += d * d
	}
	return tss
}

// squared returns elementwise squares
func squared(v []float64) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = x * x
	}
	return out
}
