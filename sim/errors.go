package sim

import "errors"

// Error taxonomy for the coverage engine.
// Callers distinguish failure kinds with errors.Is; concrete errors wrap
// these sentinels with the offending values.
var (
	// ErrInvalidConfiguration is returned by ExperimentConfig.Validate and by
	// every entry point that validates its inputs before simulating.
	// It is fatal to the run and never retried.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrNonConvergence is returned by a trial that placed MaxSensors sensors
	// without reaching the target coverage. Aggregate counts such trials and
	// excludes them from the means instead of failing the run.
	ErrNonConvergence = errors.New("trial did not reach target coverage")
)
