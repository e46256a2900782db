package sim

import (
	"context"
	"errors"
	"math/rand"
	"slices"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/wsn-coverage/wsn-coverage/sim/trace"
)

// RNGFactory returns the random source for the given trial index.
// Each call must return a stream that shares no mutable state with the
// streams of other trials.
type RNGFactory func(trial int) *rand.Rand

// AggregateResult is the per-radius outcome of a set of trials.
// Only converged trials contribute to the means.
type AggregateResult struct {
	SensingRadius   float64 `yaml:"sensing_radius"` // length units
	Trials          int     `yaml:"trials"`
	Converged       int     `yaml:"converged"`
	NonConverged    int     `yaml:"non_converged"`
	MeanNodeCount   float64 `yaml:"mean_node_count"` // NaN when no trial converged
	NodeCountStdDev float64 `yaml:"node_count_stddev"`
	MinNodeCount    int     `yaml:"min_node_count"`
	MaxNodeCount    int     `yaml:"max_node_count"`

	// MeanMilestoneCoverage maps node count -> mean covered percentage over
	// the converged trials that reached that node count.
	MeanMilestoneCoverage map[int]float64 `yaml:"mean_milestone_coverage"`
	// MilestoneSamples maps node count -> number of trials averaged.
	MilestoneSamples map[int]int `yaml:"milestone_samples"`
}

// Milestones returns the node counts present in MeanMilestoneCoverage in
// increasing order.
func (r AggregateResult) Milestones() []int {
	keys := make([]int, 0, len(r.MeanMilestoneCoverage))
	for k := range r.MeanMilestoneCoverage {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Aggregator runs independent trials for one radius and combines them.
type Aggregator struct {
	// Workers bounds concurrent trials. Values below 1 run sequentially.
	Workers int
	// Trace, when non-nil, receives one record per trial in trial order.
	Trace *trace.SimulationTrace
	// RadiusIndex labels trace records with the radius' position in a sweep.
	RadiusIndex int
}

// Run executes trialCount trials of cfg, each with its own RNG from newRNG,
// and aggregates the results under the reported sensingRadius.
//
// Trials that hit the MaxSensors bound are counted in NonConverged and
// excluded from every mean; the remaining trials still run. Any other
// error, including context cancellation, aborts the run.
func (a *Aggregator) Run(ctx context.Context, sensingRadius float64, cfg TrialConfig, trialCount int, newRNG RNGFactory) (AggregateResult, error) {
	if trialCount <= 0 {
		return AggregateResult{}, invalidf("trial count must be positive, got %d", trialCount)
	}
	if err := cfg.Validate(); err != nil {
		return AggregateResult{}, err
	}

	// Derive every stream up front so that results do not depend on the
	// order in which workers pick up trials.
	rngs := make([]*rand.Rand, trialCount)
	for i := range rngs {
		rngs[i] = newRNG(i)
	}

	results := make([]TrialResult, trialCount)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(a.Workers, 1))
	for i := range trialCount {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := RunTrial(gctx, cfg, rngs[i])
			results[i] = res
			switch {
			case errors.Is(err, ErrNonConvergence):
				logrus.Warnf("radius %v trial %d excluded: %v", sensingRadius, i, err)
				return nil
			case err != nil:
				return err
			}
			logrus.Debugf("radius %v trial %d reached target with %d sensors", sensingRadius, i, res.NodeCount)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return AggregateResult{}, err
	}

	if a.Trace != nil {
		for i, res := range results {
			a.Trace.RecordTrial(trace.TrialRecord{
				RadiusIndex:   a.RadiusIndex,
				SensingRadius: sensingRadius,
				Trial:         i,
				NodeCount:     res.NodeCount,
				Converged:     res.Converged,
				FinalCoverage: res.FinalCoverage,
			})
		}
	}
	return AggregateTrials(sensingRadius, results), nil
}

// AggregateTrials combines finished trial results into an AggregateResult.
//
// Node counts are averaged over all converged trials. Each milestone is
// averaged only over the converged trials that recorded it; a milestone
// absent from a trial means that trial stopped before placing that many
// sensors, not that it was fully covered.
func AggregateTrials(sensingRadius float64, results []TrialResult) AggregateResult {
	agg := AggregateResult{
		SensingRadius:         sensingRadius,
		Trials:                len(results),
		MeanMilestoneCoverage: make(map[int]float64),
		MilestoneSamples:      make(map[int]int),
	}

	var counts []float64
	perMilestone := make(map[int][]float64)
	for _, res := range results {
		if !res.Converged {
			agg.NonConverged++
			continue
		}
		agg.Converged++
		counts = append(counts, float64(res.NodeCount))
		if agg.Converged == 1 || res.NodeCount < agg.MinNodeCount {
			agg.MinNodeCount = res.NodeCount
		}
		agg.MaxNodeCount = max(agg.MaxNodeCount, res.NodeCount)
		for m, cov := range res.MilestoneCoverage {
			perMilestone[m] = append(perMilestone[m], cov)
		}
	}

	agg.MeanNodeCount, agg.NodeCountStdDev = meanStdDev(counts)
	for m, covs := range perMilestone {
		agg.MeanMilestoneCoverage[m], _ = meanStdDev(covs)
		agg.MilestoneSamples[m] = len(covs)
	}
	return agg
}
