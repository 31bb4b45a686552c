package hetero

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"hetcal/ports"
)

// DetteMunkWagner is a difference-based variance-constancy test in the spirit
// of Dette, Munk & Wagner (1998). Squared first differences of x-ordered
// residuals estimate the local noise variance without re-estimating the mean,
// which keeps a smooth nonlinear mean from masquerading as heteroscedasticity.
// The test correlates those local estimates with the covariate.
type DetteMunkWagner struct{}

// NewDetteMunkWagner creates a Dette-Munk-Wagner test
func NewDetteMunkWagner() *DetteMunkWagner {
	return &DetteMunkWagner{}
}

// ID returns the test identifier
func (t *DetteMunkWagner) ID() ports.TestID {
	return ports.TestDetteMunkWagner
}

// Run executes the test on covariate-aligned residuals
func (t *DetteMunkWagner) Run(xs, residuals []float64, alpha float64) (*ports.TestVerdict, error) {
	n := len(residuals)
	if n < 10 {
		return nil, fmt.Errorf("dette-munk-wagner needs at least 10 observations, got %d", n)
	}

	ordered := orderByCovariate(xs, residuals)
	gridSorted := make([]float64, n)
	copy(gridSorted, xs)
	sort.Float64s(gridSorted)

	// Local variance pseudo-observations from first differences, placed at
	// the midpoint of each covariate pair.
	m := n - 1
	local := make([]float64, m)
	mids := make([]float64, m)
	for i := 0; i < m; i++ {
		d := ordered[i+1] - ordered[i]
		local[i] = d * d / 2
		mids[i] = (gridSorted[i] + gridSorted[i+1]) / 2
	}

	r := stat.Correlation(mids, local, nil)
	if math.IsNaN(r) {
		return nil, fmt.Errorf("local variance estimates are degenerate")
	}
	if r >= 1 {
		r = math.Nextafter(1, 0)
	}
	if r <= -1 {
		r = math.Nextafter(-1, 0)
	}

	// Studentized correlation against t(m-2), two-tailed
	df := float64(m - 2)
	tStat := r * math.Sqrt(df/(1-r*r))
	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	pValue := 2 * (1 - tDist.CDF(math.Abs(tStat)))

	return &ports.TestVerdict{
		TestID:            t.ID(),
		IsHeteroscedastic: pValue < alpha,
		PValue:            pValue,
		Statistic:         tStat,
	}, nil
}
