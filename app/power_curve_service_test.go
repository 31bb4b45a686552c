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

func sweepRequest(strengths []float64, nTrials int) SweepRequest {
	return SweepRequest{
		TestID:    ports.TestDetteMunkWagner,
		Strengths: strengths,
		NSamples:  50,
		NTrials:   nTrials,
		Alpha:     0.05,
		Bandwidth: 0.1,
	}
}

func TestPowerCurveService_OutputMatchesInputOrder(t *testing.T) {
	ctx := context.Background()
	engine := NewTrialEngine(newFakeRegression(), &fakeTester{decide: rejectOnPositiveStart}, 4, internal.DefaultLogger)
	svc := NewPowerCurveService(engine, internal.DefaultLogger)

	strengths := []float64{0, 0.5, 2.0, 1.0} // deliberately unordered
	curve, err := svc.Sweep(ctx, sweepRequest(strengths, 30))
	require.NoError(t, err)
	require.Len(t, curve, len(strengths))

	for i, p := range curve {
		assert.Equal(t, strengths[i], p.Strength)
		assert.GreaterOrEqual(t, p.DetectionRate, 0.0)
		assert.LessOrEqual(t, p.DetectionRate, 1.0)
	}
}

func TestPowerCurveService_ZeroStrengthRoutesThroughNull(t *testing.T) {
	ctx := context.Background()
	reg := newFakeRegression()
	engine := NewTrialEngine(reg, &fakeTester{decide: neverReject}, 4, internal.DefaultLogger)
	svc := NewPowerCurveService(engine, internal.DefaultLogger)

	const n = 50
	_, err := svc.Sweep(ctx, sweepRequest([]float64{0}, 10))
	require.NoError(t, err)

	nullFirst, err := scenario.Generate(scenario.NullSpec(n, 0))
	require.NoError(t, err)
	trumpetZero, err := scenario.Generate(scenario.TrumpetSpec(n, 0, 0))
	require.NoError(t, err)

	assert.True(t, reg.sawResponse(nullFirst.Y[0]), "strength 0 uses the null scenario")
	assert.False(t, reg.sawResponse(trumpetZero.Y[0]), "strength 0 must not use the trumpet floor")
}

// The sweep's zero point and the classifier's size arm share scenario, seeds,
// and trial count, so their rates must agree exactly.
func TestPowerCurveService_ZeroPointMatchesSizeArm(t *testing.T) {
	ctx := context.Background()
	const nTrials = 40

	engine := NewTrialEngine(newFakeRegression(), &fakeTester{decide: rejectOnPositiveStart}, 4, internal.DefaultLogger)

	curve, err := NewPowerCurveService(engine, internal.DefaultLogger).Sweep(ctx, sweepRequest([]float64{0}, nTrials))
	require.NoError(t, err)

	result, err := NewCalibrationService(engine, internal.DefaultLogger).Classify(ctx, CalibrationRequest{
		TestID:    ports.TestDetteMunkWagner,
		NSamples:  50,
		NTrials:   nTrials,
		Alpha:     0.05,
		Bandwidth: 0.1,
	})
	require.NoError(t, err)

	assert.Equal(t, result.EmpiricalSize, curve[0].DetectionRate)
}

func TestPowerCurveService_FailFast(t *testing.T) {
	ctx := context.Background()
	engine := NewTrialEngine(newFakeRegression(), &fakeTester{err: fmt.Errorf("singular matrix")}, 2, internal.NewLogger(internal.LogLevelError))
	svc := NewPowerCurveService(engine, internal.NewLogger(internal.LogLevelError))

	_, err := svc.Sweep(ctx, sweepRequest([]float64{0.5, 1.0}, 10))
	require.Error(t, err, "sweep failures are never absorbed")
}

func TestPowerCurveService_ValidatesStrengths(t *testing.T) {
	ctx := context.Background()
	engine := NewTrialEngine(newFakeRegression(), &fakeTester{decide: neverReject}, 2, internal.DefaultLogger)
	svc := NewPowerCurveService(engine, internal.DefaultLogger)

	_, err := svc.Sweep(ctx, sweepRequest(nil, 10))
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))

	_, err = svc.Sweep(ctx, sweepRequest([]float64{0.5, -1}, 10))
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}
