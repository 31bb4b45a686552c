package app

import (
	"context"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"hetcal/domain/scenario"
	"hetcal/internal"
	"hetcal/internal/errors"
	"hetcal/ports"
)

// TrialEngine runs independent Monte Carlo trials of
// generate -> fit -> test -> classify and tallies rejections.
type TrialEngine struct {
	regression ports.RegressionPort
	tester     ports.HeteroTestPort
	workers    int
	logger     *internal.Logger
}

// NewTrialEngine creates a trial engine. workers <= 0 means one worker per CPU.
func NewTrialEngine(regression ports.RegressionPort, tester ports.HeteroTestPort, workers int, logger *internal.Logger) *TrialEngine {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &TrialEngine{
		regression: regression,
		tester:     tester,
		workers:    workers,
		logger:     logger,
	}
}

// TrialRequest defines one batch of Monte Carlo trials
type TrialRequest struct {
	TestID    ports.TestID
	NSamples  int
	NTrials   int
	Alpha     float64
	Bandwidth float64

	// ScenarioFor maps a trial index to its generation spec. Seeds must be
	// derived from the index here, never drawn from a shared stream, so the
	// tally is independent of execution order and worker count.
	ScenarioFor func(trial int) scenario.GenSpec

	// Tolerant selects the failure policy. When true a failing trial is
	// logged and counted as a non-rejection; when false the first failure
	// aborts the whole batch.
	Tolerant bool
}

// Validate checks the request before any trial runs
func (r TrialRequest) Validate() error {
	if !r.TestID.Valid() {
		return errors.UnknownTest(string(r.TestID))
	}
	if r.NTrials <= 0 {
		return errors.InvalidInput("trial count must be positive")
	}
	if r.NSamples < 2 {
		return errors.InvalidInput("sample size must be at least 2")
	}
	if r.ScenarioFor == nil {
		return errors.InvalidInput("trial request needs a scenario mapping")
	}
	return nil
}

// TrialTally is the aggregate outcome of a completed batch.
// Positives <= Total and Total always equals the requested trial count.
type TrialTally struct {
	Positives int `json:"positives"`
	Total     int `json:"total"`
}

// Rate returns Positives / Total
func (t TrialTally) Rate() float64 {
	return float64(t.Positives) / float64(t.Total)
}

// Run executes the batch. Trials fan out across the worker pool; rejections
// are counted with an atomic so the reduction is order-independent.
func (e *TrialEngine) Run(ctx context.Context, req TrialRequest) (*TrialTally, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var positives atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	for t := 0; t < req.NTrials; t++ {
		trial := t
		g.Go(func() error {
			rejected, err := e.runTrial(ctx, req, trial)
			if err != nil {
				if !req.Tolerant {
					return errors.Wrapf(err, "trial %d aborted batch", trial)
				}
				// Conservative bias: a failed trial counts as a
				// non-rejection rather than being retried or dropped.
				e.logger.Warn("trial %d failed, counting as non-rejection: %v", trial, err)
				return nil
			}
			if rejected {
				positives.Add(1)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &TrialTally{
		Positives: int(positives.Load()),
		Total:     req.NTrials,
	}, nil
}

// runTrial executes a single trial: the dataset and fitted model are owned by
// this call and discarded when it returns.
func (e *TrialEngine) runTrial(ctx context.Context, req TrialRequest, trial int) (bool, error) {
	ds, err := scenario.Generate(req.ScenarioFor(trial))
	if err != nil {
		return false, err
	}

	model, err := e.regression.Fit(ctx, ds.X, ds.Y, req.Bandwidth)
	if err != nil {
		return false, errors.FitFailed(err)
	}

	verdict, err := e.tester.Evaluate(ctx, model, ds.X, ds.Y, req.TestID, req.Alpha)
	if err != nil {
		return false, errors.TestFailed(string(req.TestID), err)
	}

	return verdict.IsHeteroscedastic, nil
}
