package scenario

import (
	"math"
	"math/rand"

	"hetcal/internal/errors"
)

// Noise-scale constants for the two ground truths. They are intentionally
// asymmetric: the null uses a flat 0.2 scale while the trumpet floor is 0.1,
// so Trumpet(strength=0) is NOT the null scenario. Callers that want "no
// effect" must route through KindNull.
const (
	// NullNoiseScale is the constant noise scale of the homoscedastic null
	NullNoiseScale = 0.2

	// AltNoiseFloor is the noise scale at x=0 under the trumpet alternative
	AltNoiseFloor = 0.1
)

// Kind selects the ground-truth data-generating process
type Kind string

const (
	// KindNull is a nonlinear mean with constant noise variance. The sine
	// curve is the trap: it looks like the spread varies, but it does not.
	KindNull Kind = "null"

	// KindTrumpet is the same mean with noise scale increasing in x
	KindTrumpet Kind = "trumpet"
)

// GenSpec fully determines one synthetic dataset. Identical specs reproduce
// bit-identical datasets; the seed is the only source of randomness.
type GenSpec struct {
	Kind     Kind    `json:"kind"`
	Strength float64 `json:"strength"` // trumpet slope, ignored for KindNull
	N        int     `json:"n"`
	Seed     int64   `json:"seed"`
}

// NullSpec builds a spec for the homoscedastic null scenario
func NullSpec(n int, seed int64) GenSpec {
	return GenSpec{Kind: KindNull, N: n, Seed: seed}
}

// TrumpetSpec builds a spec for the heteroscedastic trumpet scenario
func TrumpetSpec(n int, seed int64, strength float64) GenSpec {
	return GenSpec{Kind: KindTrumpet, Strength: strength, N: n, Seed: seed}
}

// Validate checks the spec before generation
func (s GenSpec) Validate() error {
	if s.Kind != KindNull && s.Kind != KindTrumpet {
		return errors.InvalidInput("unknown scenario kind " + string(s.Kind))
	}
	if s.N < 2 {
		return errors.InvalidInput("scenario needs at least 2 samples")
	}
	if s.Strength < 0 {
		return errors.InvalidInput("trumpet strength must be nonnegative")
	}
	return nil
}

// Dataset is one synthetic sample: covariates on the uniform [0,1] grid
// paired with noisy responses. Datasets are never mutated after generation.
type Dataset struct {
	X []float64
	Y []float64
}

// Generate constructs a dataset for the spec. It is a pure function: the RNG
// is created locally from the spec seed, so there is no shared random state
// and trials can generate concurrently.
func Generate(spec GenSpec) (*Dataset, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	xs := Grid(spec.N)
	rng := rand.New(rand.NewSource(spec.Seed))

	ys := make([]float64, spec.N)
	for i, x := range xs {
		scale := NullNoiseScale
		if spec.Kind == KindTrumpet {
			scale = AltNoiseFloor + spec.Strength*x
		}
		ys[i] = math.Sin(2*math.Pi*x) + rng.NormFloat64()*scale
	}

	return &Dataset{X: xs, Y: ys}, nil
}

// Grid returns n evenly spaced points on [0,1], endpoints included.
// The grid depends only on n, never on scenario or seed.
func Grid(n int) []float64 {
	xs := make([]float64, n)
	step := 1.0 / float64(n-1)
	for i := range xs {
		xs[i] = float64(i) * step
	}
	xs[n-1] = 1.0
	return xs
}
