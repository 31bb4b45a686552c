package app

import (
	"context"
	"sync"

	"hetcal/ports"
)

// fakeModel passes responses through as residuals so fake testers can decide
// on the raw dataset.
type fakeModel struct{}

func (m *fakeModel) Predict(x float64) float64 { return 0 }

func (m *fakeModel) Residuals(xs, ys []float64) []float64 {
	out := make([]float64, len(ys))
	copy(out, ys)
	return out
}

// fakeRegression records fitted datasets and optionally fails
type fakeRegression struct {
	mu    sync.Mutex
	calls int
	seen  map[float64]bool // first response value of each dataset fitted
	err   error
}

func newFakeRegression() *fakeRegression {
	return &fakeRegression{seen: make(map[float64]bool)}
}

func (f *fakeRegression) Fit(ctx context.Context, xs, ys []float64, bandwidth float64) (ports.FittedModel, error) {
	f.mu.Lock()
	f.calls++
	if len(ys) > 0 {
		f.seen[ys[0]] = true
	}
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return &fakeModel{}, nil
}

func (f *fakeRegression) sawResponse(y0 float64) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seen[y0]
}

// fakeTester decides rejection as a pure function of the dataset, so the
// tally is reproducible regardless of worker count.
type fakeTester struct {
	mu     sync.Mutex
	calls  int
	err    error
	decide func(xs, ys []float64) bool
}

func (f *fakeTester) Evaluate(ctx context.Context, model ports.FittedModel, xs, ys []float64, test ports.TestID, alpha float64) (*ports.TestVerdict, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	rejected := false
	if f.decide != nil {
		rejected = f.decide(xs, ys)
	}
	return &ports.TestVerdict{TestID: test, IsHeteroscedastic: rejected, PValue: 0.5}, nil
}

func (f *fakeTester) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func alwaysReject(xs, ys []float64) bool { return true }

func neverReject(xs, ys []float64) bool { return false }

// rejectOnPositiveStart is an arbitrary pure function of the dataset, useful
// for asserting order independence and sweep/size consistency.
func rejectOnPositiveStart(xs, ys []float64) bool { return ys[0] > 0 }
