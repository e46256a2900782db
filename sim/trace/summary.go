package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalTrials          int
	ConvergedCount       int
	NonConvergedCount    int
	MinNodeCount         int // over converged trials
	MaxNodeCount         int // over converged trials
	MeanFinalCoverage    float64
	NonConvergedByRadius map[float64]int // sensing radius -> excluded trials
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		NonConvergedByRadius: make(map[float64]int),
	}
	if st == nil || len(st.Trials) == 0 {
		return summary
	}

	summary.TotalTrials = len(st.Trials)
	totalCoverage := 0.0
	for _, r := range st.Trials {
		totalCoverage += r.FinalCoverage
		if !r.Converged {
			summary.NonConvergedCount++
			summary.NonConvergedByRadius[r.SensingRadius]++
			continue
		}
		summary.ConvergedCount++
		if summary.ConvergedCount == 1 || r.NodeCount < summary.MinNodeCount {
			summary.MinNodeCount = r.NodeCount
		}
		if r.NodeCount > summary.MaxNodeCount {
			summary.MaxNodeCount = r.NodeCount
		}
	}
	summary.MeanFinalCoverage = totalCoverage / float64(summary.TotalTrials)

	return summary
}
