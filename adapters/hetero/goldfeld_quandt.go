package hetero

import (
	"fmt"
	"sort"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"

	"hetcal/ports"
)

// GoldfeldQuandt orders residuals by the covariate, drops the middle fifth,
// and compares residual variances between the low-x and high-x groups with an
// F ratio. Rejects when variance is significantly larger at high x.
type GoldfeldQuandt struct{}

// NewGoldfeldQuandt creates a Goldfeld-Quandt test
func NewGoldfeldQuandt() *GoldfeldQuandt {
	return &GoldfeldQuandt{}
}

// ID returns the test identifier
func (t *GoldfeldQuandt) ID() ports.TestID {
	return ports.TestGoldfeldQuandt
}

// Run executes the test on covariate-aligned residuals
func (t *GoldfeldQuandt) Run(xs, residuals []float64, alpha float64) (*ports.TestVerdict, error) {
	n := len(residuals)
	if n < 20 {
		return nil, fmt.Errorf("goldfeld-quandt needs at least 20 observations, got %d", n)
	}

	ordered := orderByCovariate(xs, residuals)

	// Drop the middle fifth to sharpen the contrast between the tails
	drop := n / 5
	lowEnd := (n - drop) / 2
	highStart := lowEnd + drop

	low := ordered[:lowEnd]
	high := ordered[highStart:]

	varLow, err := stats.SampleVariance(stats.Float64Data(low))
	if err != nil {
		return nil, fmt.Errorf("low-group variance: %w", err)
	}
	varHigh, err := stats.SampleVariance(stats.Float64Data(high))
	if err != nil {
		return nil, fmt.Errorf("high-group variance: %w", err)
	}
	if varLow == 0 {
		return nil, fmt.Errorf("low-covariate residuals have zero variance")
	}

	f := varHigh / varLow
	fDist := distuv.F{D1: float64(len(high) - 1), D2: float64(len(low) - 1)}
	pValue := 1 - fDist.CDF(f)

	return &ports.TestVerdict{
		TestID:            t.ID(),
		IsHeteroscedastic: pValue < alpha,
		PValue:            pValue,
		Statistic:         f,
	}, nil
}

// orderByCovariate returns residuals sorted by ascending covariate value
func orderByCovariate(xs, residuals []float64) []float64 {
	idx := make([]int, len(xs))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return xs[idx[a]] < xs[idx[b]] })

	out := make([]float64, len(residuals))
	for i, j := range idx {
		out[i] = residuals[j]
	}
	return out
}
