package sim

import (
	"context"
	"fmt"
	"math/rand"
)

// TrialState is the lifecycle state of a Trial.
//
//	Running --(coverage >= target)--> Done
//	Running --(MaxSensors placed)---> Aborted
type TrialState int

const (
	TrialRunning TrialState = iota
	TrialDone
	TrialAborted
)

func (s TrialState) String() string {
	switch s {
	case TrialRunning:
		return "running"
	case TrialDone:
		return "done"
	case TrialAborted:
		return "aborted"
	default:
		return fmt.Sprintf("TrialState(%d)", int(s))
	}
}

// ctxCheckInterval is how many placements run between context checks.
const ctxCheckInterval = 1024

// TrialResult is the immutable outcome of one trial.
type TrialResult struct {
	SensingRadius     float64         // cells, as in TrialConfig
	NodeCount         int             // sensors placed when the trial stopped
	Converged         bool            // false if the trial hit MaxSensors first
	FinalCoverage     float64         // fraction in [0, 1]
	MilestoneCoverage map[int]float64 // node count -> covered percentage; sparse
	CoverageSeries    []float64       // CoverageSeries[n-1] = fraction after n placements
}

// Trial runs one simulation for a fixed sensing radius: sensors are placed
// uniformly at random into a fresh CoverageField until the target coverage
// fraction is reached or the MaxSensors safety bound is hit.
//
// A Trial owns its field and RNG and is not safe for concurrent use.
type Trial struct {
	cfg    TrialConfig
	rng    *rand.Rand
	field  *CoverageField
	state  TrialState
	series []float64
}

// NewTrial validates cfg and returns a Trial in the Running state.
func NewTrial(cfg TrialConfig, rng *rand.Rand) (*Trial, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, invalidf("trial requires a random source")
	}
	return &Trial{
		cfg:   cfg,
		rng:   rng,
		field: NewCoverageField(cfg.Width, cfg.Height, cfg.Milestones),
		state: TrialRunning,
	}, nil
}

// State returns the current lifecycle state.
func (t *Trial) State() TrialState { return t.state }

// Field returns the trial's coverage field.
func (t *Trial) Field() *CoverageField { return t.field }

// Step performs one placement and returns the resulting state.
// Calling Step on a finished trial is a no-op.
func (t *Trial) Step() TrialState {
	if t.state != TrialRunning {
		return t.state
	}
	if t.cfg.MaxSensors > 0 && t.field.SensorCount() >= t.cfg.MaxSensors {
		t.state = TrialAborted
		return t.state
	}
	n := t.field.PlaceRandomSensor(t.cfg.SensingRadius, t.rng)
	t.field.RecordMilestoneIfDue(n)
	t.series = append(t.series, t.field.CoverageFraction())
	if t.field.HasReached(t.cfg.TargetFraction) {
		t.state = TrialDone
	}
	return t.state
}

// Run steps the trial to completion. A trial that exhausts MaxSensors
// returns its partial result together with an error wrapping
// ErrNonConvergence. Context cancellation returns ctx.Err().
func (t *Trial) Run(ctx context.Context) (TrialResult, error) {
	for steps := 1; t.Step() == TrialRunning; steps++ {
		if steps%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return t.Result(), err
			}
		}
	}
	if t.state == TrialAborted {
		return t.Result(), fmt.Errorf("%w: coverage %.4f after %d sensors (target %.4f)",
			ErrNonConvergence, t.field.CoverageFraction(), t.field.SensorCount(), t.cfg.TargetFraction)
	}
	return t.Result(), nil
}

// Result snapshots the trial's current outcome.
func (t *Trial) Result() TrialResult {
	return TrialResult{
		SensingRadius:     t.cfg.SensingRadius,
		NodeCount:         t.field.SensorCount(),
		Converged:         t.state == TrialDone,
		FinalCoverage:     t.field.CoverageFraction(),
		MilestoneCoverage: t.field.MilestoneCoverage(),
		CoverageSeries:    append([]float64(nil), t.series...),
	}
}

// RunTrial is shorthand for NewTrial followed by Run.
func RunTrial(ctx context.Context, cfg TrialConfig, rng *rand.Rand) (TrialResult, error) {
	t, err := NewTrial(cfg, rng)
	if err != nil {
		return TrialResult{}, err
	}
	return t.Run(ctx)
}
