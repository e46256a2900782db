// Package trace records per-trial outcomes of a coverage experiment.
// This package has no dependencies on sim/; it stores pure data types.
package trace

// TraceLevel controls the verbosity of trial tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing.
	TraceLevelNone TraceLevel = "none"
	// TraceLevelTrials captures one record per trial.
	TraceLevelTrials TraceLevel = "trials"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:   true,
	TraceLevelTrials: true,
	"":               true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TrialRecord captures the outcome of a single trial.
type TrialRecord struct {
	RadiusIndex   int
	SensingRadius float64 // length units
	Trial         int
	NodeCount     int
	Converged     bool
	FinalCoverage float64 // fraction in [0, 1]
}

// SimulationTrace collects trial records during an experiment.
// Not safe for concurrent use; the aggregator records after its workers finish.
type SimulationTrace struct {
	Level  TraceLevel
	Trials []TrialRecord
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
// Returns nil for TraceLevelNone so callers can pass the result straight
// through as an optional trace.
func NewSimulationTrace(level TraceLevel) *SimulationTrace {
	if level == TraceLevelNone || level == "" {
		return nil
	}
	return &SimulationTrace{
		Level:  level,
		Trials: make([]TrialRecord, 0),
	}
}

// RecordTrial appends a trial record.
func (st *SimulationTrace) RecordTrial(record TrialRecord) {
	st.Trials = append(st.Trials, record)
}
