package app

import (
	"context"

	"github.com/google/uuid"

	"hetcal/domain/calibration"
	"hetcal/domain/scenario"
	"hetcal/internal"
	"hetcal/ports"
)

// altSeedOffset separates the power arm's seed stream from the size arm's,
// so the two arms never reuse identical noise draws within one calibration.
const altSeedOffset = 100000

// CalibrationService measures empirical size and power for a test and turns
// the tallies into a classified calibration result.
type CalibrationService struct {
	engine *TrialEngine
	logger *internal.Logger
}

// NewCalibrationService creates a calibration service
func NewCalibrationService(engine *TrialEngine, logger *internal.Logger) *CalibrationService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &CalibrationService{engine: engine, logger: logger}
}

// CalibrationRequest defines the inputs for one test's calibration run
type CalibrationRequest struct {
	TestID    ports.TestID
	NSamples  int
	NTrials   int
	Alpha     float64
	Bandwidth float64
}

// Classify runs the size arm under the null scenario and the power arm under
// the moderate trumpet, both with the tolerant failure policy, and classifies
// the rates against the fixed thresholds.
func (s *CalibrationService) Classify(ctx context.Context, req CalibrationRequest) (*calibration.Result, error) {
	runID := uuid.NewString()

	s.logger.Info("calibrating %s run=%s n=%d trials=%d alpha=%.3f",
		req.TestID, runID, req.NSamples, req.NTrials, req.Alpha)

	nullTally, err := s.engine.Run(ctx, TrialRequest{
		TestID:    req.TestID,
		NSamples:  req.NSamples,
		NTrials:   req.NTrials,
		Alpha:     req.Alpha,
		Bandwidth: req.Bandwidth,
		Tolerant:  true,
		ScenarioFor: func(trial int) scenario.GenSpec {
			return scenario.NullSpec(req.NSamples, int64(trial))
		},
	})
	if err != nil {
		return nil, err
	}

	altTally, err := s.engine.Run(ctx, TrialRequest{
		TestID:    req.TestID,
		NSamples:  req.NSamples,
		NTrials:   req.NTrials,
		Alpha:     req.Alpha,
		Bandwidth: req.Bandwidth,
		Tolerant:  true,
		ScenarioFor: func(trial int) scenario.GenSpec {
			return scenario.TrumpetSpec(req.NSamples, int64(trial)+altSeedOffset, calibration.ModerateStrength)
		},
	})
	if err != nil {
		return nil, err
	}

	size := nullTally.Rate()
	power := altTally.Rate()
	sizeCalibrated, sizeExcellent := calibration.ClassifySize(size)

	s.logger.Info("calibrated %s run=%s size=%.3f power=%.3f", req.TestID, runID, size, power)

	return &calibration.Result{
		RunID:          runID,
		TestID:         req.TestID,
		Alpha:          req.Alpha,
		EmpiricalSize:  size,
		SizeCalibrated: sizeCalibrated,
		SizeExcellent:  sizeExcellent,
		Power:          power,
		PowerAdequate:  calibration.ClassifyPower(power),
		SampleSize:     req.NSamples,
		Trials:         req.NTrials,
	}, nil
}

// ClassifyAll calibrates each test in order and returns results in the same
// order. A failed calibration aborts the remainder; partial results are not
// returned.
func (s *CalibrationService) ClassifyAll(ctx context.Context, tests []ports.TestID, req CalibrationRequest) ([]calibration.Result, error) {
	results := make([]calibration.Result, 0, len(tests))
	for _, test := range tests {
		r := req
		r.TestID = test
		result, err := s.Classify(ctx, r)
		if err != nil {
			return nil, err
		}
		results = append(results, *result)
	}
	return results, nil
}
