package hetero

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"hetcal/ports"
)

// White is White's general test: an auxiliary regression of squared residuals
// on the covariate and its square, with an n*R-squared statistic against
// chi-squared(2).
type White struct{}

// NewWhite creates a White test
func NewWhite() *White {
	return &White{}
}

// ID returns the test identifier
func (t *White) ID() ports.TestID {
	return ports.TestWhite
}

// Run executes the test on covariate-aligned residuals
func (t *White) Run(xs, residuals []float64, alpha float64) (*ports.TestVerdict, error) {
	n := len(residuals)
	if n < 10 {
		return nil, fmt.Errorf("white test needs at least 10 observations, got %d", n)
	}

	u2 := squared(residuals)
	tss := totalSumSquares(u2)
	if tss == 0 {
		return nil, fmt.Errorf("squared residuals are constant")
	}

	design := mat.NewDense(n, 3, nil)
	for i, x := range xs {
		design.Set(i, 0, 1)
		design.Set(i, 1, x)
		design.Set(i, 2, x*x)
	}

	fitted, err := olsFitted(design, u2)
	if err != nil {
		return nil, err
	}

	r2 := explainedSumSquares(fitted, u2) / tss
	lm := float64(n) * r2
	pValue := 1 - distuv.ChiSquared{K: 2}.CDF(lm)

	return &ports.TestVerdict{
		TestID:            t.ID(),
		IsHeteroscedastic: pValue < alpha,
		PValue:            pValue,
		Statistic:         lm,
	}, nil
}
