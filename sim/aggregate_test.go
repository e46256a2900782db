package sim

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wsn-coverage/wsn-coverage/sim/trace"
)

func TestAggregateTrials_SparseMilestonesAndExclusions(t *testing.T) {
	// GIVEN two converged trials, one stopping before milestone 5, and one non-converged trial
	results := []TrialResult{
		{NodeCount: 10, Converged: true, MilestoneCoverage: map[int]float64{1: 10, 5: 40}},
		{NodeCount: 20, Converged: true, MilestoneCoverage: map[int]float64{1: 20}},
		{NodeCount: 999, Converged: false, MilestoneCoverage: map[int]float64{1: 90, 5: 90}},
	}

	// WHEN aggregated
	agg := AggregateTrials(12.5, results)

	// THEN only converged trials count, and each milestone averages over the trials that reached it
	assert.Equal(t, 12.5, agg.SensingRadius)
	assert.Equal(t, 3, agg.Trials)
	assert.Equal(t, 2, agg.Converged)
	assert.Equal(t, 1, agg.NonConverged)
	assert.Equal(t, 15.0, agg.MeanNodeCount)
	assert.InDelta(t, math.Sqrt(50), agg.NodeCountStdDev, 1e-12)
	assert.Equal(t, 10, agg.MinNodeCount)
	assert.Equal(t, 20, agg.MaxNodeCount)
	assert.Equal(t, map[int]float64{1: 15, 5: 40}, agg.MeanMilestoneCoverage)
	assert.Equal(t, map[int]int{1: 2, 5: 1}, agg.MilestoneSamples)
	assert.Equal(t, []int{1, 5}, agg.Milestones())
}

func TestAggregateTrials_SingleTrialEqualsTrial(t *testing.T) {
	res, err := RunTrial(context.Background(), smallTrialConfig(), seededRNG(5))
	require.NoError(t, err)

	agg := AggregateTrials(2, []TrialResult{res})

	assert.Equal(t, float64(res.NodeCount), agg.MeanNodeCount)
	assert.Equal(t, 0.0, agg.NodeCountStdDev)
	assert.Equal(t, res.NodeCount, agg.MinNodeCount)
	assert.Equal(t, res.NodeCount, agg.MaxNodeCount)
	assert.Equal(t, res.MilestoneCoverage, agg.MeanMilestoneCoverage)
}

func TestAggregateTrials_NoneConverged_NaNMean(t *testing.T) {
	agg := AggregateTrials(1, []TrialResult{{NodeCount: 5, Converged: false}})

	assert.True(t, math.IsNaN(agg.MeanNodeCount))
	assert.Equal(t, 0, agg.Converged)
	assert.Equal(t, 1, agg.NonConverged)
	assert.Empty(t, agg.MeanMilestoneCoverage)
}

func trialRNGs(seed int64) RNGFactory {
	p := NewPartitionedRNG(NewSimulationKey(seed))
	return func(trial int) *rand.Rand { return p.ForTrial(0, trial) }
}

func TestAggregator_Run_IndependentOfWorkerCount(t *testing.T) {
	cfg := smallTrialConfig()

	seq := &Aggregator{Workers: 1}
	par := &Aggregator{Workers: 4}
	r1, err := seq.Run(context.Background(), 2, cfg, 6, trialRNGs(99))
	require.NoError(t, err)
	r2, err := par.Run(context.Background(), 2, cfg, 6, trialRNGs(99))
	require.NoError(t, err)

	assert.Equal(t, r1, r2)
	assert.Equal(t, 6, r1.Converged)
}

func TestAggregator_Run_TrialsAreIndependent(t *testing.T) {
	cfg := smallTrialConfig()
	newRNG := trialRNGs(1)

	r0, err := RunTrial(context.Background(), cfg, newRNG(0))
	require.NoError(t, err)
	r1, err := RunTrial(context.Background(), cfg, newRNG(1))
	require.NoError(t, err)

	assert.NotEqual(t, r0.CoverageSeries, r1.CoverageSeries)
}

func TestAggregator_Run_NonConvergedTrialsExcludedNotFatal(t *testing.T) {
	// GIVEN a safety bound too small for any trial
	cfg := smallTrialConfig()
	cfg.MaxSensors = 2
	st := trace.NewSimulationTrace(trace.TraceLevelTrials)
	a := &Aggregator{Workers: 2, Trace: st, RadiusIndex: 3}

	// WHEN aggregated
	agg, err := a.Run(context.Background(), 2, cfg, 5, trialRNGs(8))

	// THEN the run succeeds and every trial is counted as excluded
	require.NoError(t, err)
	assert.Equal(t, 5, agg.NonConverged)
	assert.Equal(t, 0, agg.Converged)
	require.Len(t, st.Trials, 5)
	for i, rec := range st.Trials {
		assert.Equal(t, i, rec.Trial)
		assert.Equal(t, 3, rec.RadiusIndex)
		assert.False(t, rec.Converged)
		assert.Equal(t, 2, rec.NodeCount)
	}
}

func TestAggregator_Run_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := (&Aggregator{}).Run(ctx, 2, smallTrialConfig(), 3, trialRNGs(1))

	assert.ErrorIs(t, err, context.Canceled)
}

func TestAggregator_Run_InvalidInputs(t *testing.T) {
	a := &Aggregator{}

	_, err := a.Run(context.Background(), 2, smallTrialConfig(), 0, trialRNGs(1))
	assert.ErrorIs(t, err, ErrInvalidConfiguration)

	bad := smallTrialConfig()
	bad.Milestones = nil
	_, err = a.Run(context.Background(), 2, bad, 3, trialRNGs(1))
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}
