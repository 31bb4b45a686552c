package app

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hetcal/domain/scenario"
	"hetcal/internal"
	"hetcal/internal/errors"
	"hetcal/ports"
)

func nullRequest(nTrials int) TrialRequest {
	return TrialRequest{
		TestID:    ports.TestBreuschPagan,
		NSamples:  50,
		NTrials:   nTrials,
		Alpha:     0.05,
		Bandwidth: 0.1,
		ScenarioFor: func(trial int) scenario.GenSpec {
			return scenario.NullSpec(50, int64(trial))
		},
	}
}

func TestTrialEngine_TallyGuarantees(t *testing.T) {
	ctx := context.Background()

	t.Run("always rejecting test", func(t *testing.T) {
		engine := NewTrialEngine(newFakeRegression(), &fakeTester{decide: alwaysReject}, 4, internal.DefaultLogger)
		tally, err := engine.Run(ctx, nullRequest(40))
		require.NoError(t, err)
		assert.Equal(t, 40, tally.Total)
		assert.Equal(t, 40, tally.Positives)
		assert.Equal(t, 1.0, tally.Rate())
	})

	t.Run("never rejecting test", func(t *testing.T) {
		engine := NewTrialEngine(newFakeRegression(), &fakeTester{decide: neverReject}, 4, internal.DefaultLogger)
		tally, err := engine.Run(ctx, nullRequest(40))
		require.NoError(t, err)
		assert.Equal(t, 40, tally.Total)
		assert.Equal(t, 0, tally.Positives)
	})
}

func TestTrialEngine_TallyIndependentOfWorkerCount(t *testing.T) {
	ctx := context.Background()
	req := nullRequest(60)

	var tallies []*TrialTally
	for _, workers := range []int{1, 4, 16} {
		engine := NewTrialEngine(newFakeRegression(), &fakeTester{decide: rejectOnPositiveStart}, workers, internal.DefaultLogger)
		tally, err := engine.Run(ctx, req)
		require.NoError(t, err)
		tallies = append(tallies, tally)
	}

	assert.Equal(t, tallies[0], tallies[1], "seeds are index-derived, so parallelism must not change the tally")
	assert.Equal(t, tallies[0], tallies[2])
}

func TestTrialEngine_TolerantCountsFailuresAsNonRejections(t *testing.T) {
	ctx := context.Background()
	tester := &fakeTester{err: fmt.Errorf("singular matrix")}
	engine := NewTrialEngine(newFakeRegression(), tester, 2, internal.NewLogger(internal.LogLevelError))

	req := nullRequest(25)
	req.Tolerant = true

	tally, err := engine.Run(ctx, req)
	require.NoError(t, err, "tolerant batches absorb trial failures")
	assert.Equal(t, 25, tally.Total, "every trial is still attempted")
	assert.Equal(t, 0, tally.Positives)
	assert.Equal(t, 25, tester.callCount())
}

func TestTrialEngine_FailFastPropagates(t *testing.T) {
	ctx := context.Background()
	engine := NewTrialEngine(newFakeRegression(), &fakeTester{err: fmt.Errorf("singular matrix")}, 2, internal.NewLogger(internal.LogLevelError))

	req := nullRequest(25)
	req.Tolerant = false

	_, err := engine.Run(ctx, req)
	require.Error(t, err)
	assert.Equal(t, errors.CodeTestFailed, errors.GetCode(err))
}

func TestTrialEngine_FitFailureCode(t *testing.T) {
	ctx := context.Background()
	reg := newFakeRegression()
	reg.err = fmt.Errorf("ill-conditioned")
	engine := NewTrialEngine(reg, &fakeTester{decide: neverReject}, 2, internal.NewLogger(internal.LogLevelError))

	_, err := engine.Run(ctx, nullRequest(5))
	require.Error(t, err)
	assert.Equal(t, errors.CodeFitFailed, errors.GetCode(err))
}

func TestTrialRequest_Validate(t *testing.T) {
	base := nullRequest(10)

	tests := []struct {
		name   string
		mutate func(r *TrialRequest)
		code   string
	}{
		{"unknown test", func(r *TrialRequest) { r.TestID = "levene" }, errors.CodeUnknownTest},
		{"zero trials", func(r *TrialRequest) { r.NTrials = 0 }, errors.CodeInvalidInput},
		{"one sample", func(r *TrialRequest) { r.NSamples = 1 }, errors.CodeInvalidInput},
		{"missing scenario mapping", func(r *TrialRequest) { r.ScenarioFor = nil }, errors.CodeInvalidInput},
	}

	engine := NewTrialEngine(newFakeRegression(), &fakeTester{}, 1, internal.DefaultLogger)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := base
			tt.mutate(&req)
			_, err := engine.Run(context.Background(), req)
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.GetCode(err))
		})
	}
}
