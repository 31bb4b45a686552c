package app

import (
	"context"

	"hetcal/domain/calibration"
	"hetcal/domain/scenario"
	"hetcal/internal"
	"hetcal/internal/errors"
	"hetcal/ports"
)

// PowerCurveService sweeps a test across effect strengths and records the
// detection rate at each one.
type PowerCurveService struct {
	engine *TrialEngine
	logger *internal.Logger
}

// NewPowerCurveService creates a power-curve service
func NewPowerCurveService(engine *TrialEngine, logger *internal.Logger) *PowerCurveService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &PowerCurveService{engine: engine, logger: logger}
}

// SweepRequest defines one power-curve sweep. Strengths are evaluated in the
// given order; ascending is the convention but not enforced.
type SweepRequest struct {
	TestID    ports.TestID
	Strengths []float64
	NSamples  int
	NTrials   int
	Alpha     float64
	Bandwidth float64
}

// Sweep runs the trial batches for each strength. Unlike calibration, the
// sweep is fail-fast: any trial failure aborts the whole sweep.
//
// Strength zero routes through the null scenario. Trumpet(0) still uses the
// alternative noise floor (0.1 vs the null's 0.2), so it is deliberately not
// treated as equivalent; the zero point of the curve must agree with the
// calibration size arm.
func (s *PowerCurveService) Sweep(ctx context.Context, req SweepRequest) ([]calibration.PowerCurvePoint, error) {
	if len(req.Strengths) == 0 {
		return nil, errors.InvalidInput("sweep needs at least one strength")
	}
	for _, strength := range req.Strengths {
		if strength < 0 {
			return nil, errors.InvalidInput("sweep strengths must be nonnegative")
		}
	}

	s.logger.Info("power curve for %s over %d strengths, trials=%d", req.TestID, len(req.Strengths), req.NTrials)

	curve := make([]calibration.PowerCurvePoint, 0, len(req.Strengths))
	for _, strength := range req.Strengths {
		strength := strength
		tally, err := s.engine.Run(ctx, TrialRequest{
			TestID:    req.TestID,
			NSamples:  req.NSamples,
			NTrials:   req.NTrials,
			Alpha:     req.Alpha,
			Bandwidth: req.Bandwidth,
			Tolerant:  false,
			ScenarioFor: func(trial int) scenario.GenSpec {
				if strength == 0 {
					return scenario.NullSpec(req.NSamples, int64(trial))
				}
				return scenario.TrumpetSpec(req.NSamples, int64(trial), strength)
			},
		})
		if err != nil {
			return nil, errors.Wrapf(err, "sweep aborted at strength %.2f", strength)
		}

		curve = append(curve, calibration.PowerCurvePoint{
			Strength:      strength,
			DetectionRate: tally.Rate(),
		})
	}

	return curve, nil
}
