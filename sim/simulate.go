package sim

import (
	"context"
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/wsn-coverage/wsn-coverage/sim/trace"
)

// SweepOptions are optional hooks for RunSweep.
type SweepOptions struct {
	// Trace receives one record per trial across all radii.
	Trace *trace.SimulationTrace
	// OnRadius is called after each radius completes, in sweep order.
	OnRadius func(index int, result AggregateResult)
}

// Simulate runs cfg.Trials independent trials for one sensing radius (in
// length units) and returns their aggregate. The radius sweep in cfg is
// ignored. Results equal those of the first radius of a sweep starting at
// sensingRadius with the same seed.
func Simulate(ctx context.Context, sensingRadius float64, cfg ExperimentConfig) (AggregateResult, error) {
	cfg.Normalize()
	if err := cfg.ValidateRun(); err != nil {
		return AggregateResult{}, err
	}
	if !(sensingRadius > 0) || !isFinite(sensingRadius*cfg.Region.CellsPerUnit) {
		return AggregateResult{}, invalidf("sensing radius must be positive and finite, got %v", sensingRadius)
	}
	return simulateAt(ctx, &cfg, 0, sensingRadius, nil)
}

// RunSweep validates cfg and aggregates every radius of cfg.Sweep in order.
// Configuration errors are returned before any trial runs.
func RunSweep(ctx context.Context, cfg ExperimentConfig, opts SweepOptions) ([]AggregateResult, error) {
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	radii := cfg.Sweep.Radii()
	results := make([]AggregateResult, 0, len(radii))
	for idx, radius := range radii {
		logrus.Debugf("radius %d/%d (%v): starting %d trials", idx+1, len(radii), radius, cfg.Trials)
		res, err := simulateAt(ctx, &cfg, idx, radius, opts.Trace)
		if err != nil {
			return results, err
		}
		logrus.Debugf("radius %d/%d (%v): mean node count %.2f, %d excluded",
			idx+1, len(radii), radius, res.MeanNodeCount, res.NonConverged)
		results = append(results, res)
		if opts.OnRadius != nil {
			opts.OnRadius(idx, res)
		}
	}
	return results, nil
}

func simulateAt(ctx context.Context, cfg *ExperimentConfig, radiusIndex int, radius float64, st *trace.SimulationTrace) (AggregateResult, error) {
	rng := NewPartitionedRNG(NewSimulationKey(cfg.Seed))
	agg := &Aggregator{Workers: cfg.Workers, Trace: st, RadiusIndex: radiusIndex}
	return agg.Run(ctx, radius, cfg.TrialConfig(radius), cfg.Trials, func(trial int) *rand.Rand {
		return rng.ForTrial(radiusIndex, trial)
	})
}

// ReplayTrial re-runs a single trial of a sweep exactly as RunSweep ran it
// and returns the finished Trial, whose field can be inspected or rendered.
// A trial that hit MaxSensors is returned along with its ErrNonConvergence.
func ReplayTrial(ctx context.Context, cfg ExperimentConfig, radiusIndex, trial int) (*Trial, error) {
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	radii := cfg.Sweep.Radii()
	if radiusIndex < 0 || radiusIndex >= len(radii) {
		return nil, invalidf("radius index %d outside sweep of %d radii", radiusIndex, len(radii))
	}
	if trial < 0 || trial >= cfg.Trials {
		return nil, invalidf("trial %d outside [0, %d)", trial, cfg.Trials)
	}
	rng := NewPartitionedRNG(NewSimulationKey(cfg.Seed))
	t, err := NewTrial(cfg.TrialConfig(radii[radiusIndex]), rng.ForTrial(radiusIndex, trial))
	if err != nil {
		return nil, err
	}
	_, err = t.Run(ctx)
	return t, err
}
