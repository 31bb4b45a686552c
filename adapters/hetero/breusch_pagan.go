package hetero

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"hetcal/ports"
)

// BreuschPagan is the Breusch-Pagan Lagrange-multiplier test: it regresses
// scaled squared residuals on the covariate and rejects when the explained
// variation is too large for a chi-squared(1) draw.
type BreuschPagan struct{}

// NewBreuschPagan creates a Breusch-Pagan test
func NewBreuschPagan() *BreuschPagan {
	return &BreuschPagan{}
}

// ID returns the test identifier
func (t *BreuschPagan) ID() ports.TestID {
	return ports.TestBreuschPagan
}

// Run executes the test on covariate-aligned residuals
func (t *BreuschPagan) Run(xs, residuals []float64, alpha float64) (*ports.TestVerdict, error) {
	n := len(residuals)
	if n < 10 {
		return nil, fmt.Errorf("breusch-pagan needs at least 10 observations, got %d", n)
	}

	u2 := squared(residuals)
	sigma2 := stat.Mean(u2, nil)
	if sigma2 == 0 {
		return nil, fmt.Errorf("residuals have zero variance")
	}

	// Scaled squared residuals, regressed on [1, x]
	g := make([]float64, n)
	for i, v := range u2 {
		g[i] = v / sigma2
	}

	design := mat.NewDense(n, 2, nil)
	for i, x := range xs {
		design.Set(i, 0, 1)
		design.Set(i, 1, x)
	}

	fitted, err := olsFitted(design, g)
	if err != nil {
		return nil, err
	}

	lm := explainedSumSquares(fitted, g) / 2
	pValue := 1 - distuv.ChiSquared{K: 1}.CDF(lm)

	return &ports.TestVerdict{
		TestID:            t.ID(),
		IsHeteroscedastic: pValue < alpha,
		PValue:            pValue,
		Statistic:         lm,
	}, nil
}
