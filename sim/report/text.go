package report

import (
	"bufio"
	"fmt"
	"io"

	"github.com/wsn-coverage/wsn-coverage/sim"
	"github.com/wsn-coverage/wsn-coverage/sim/trace"
)

// WriteText prints fixed-width tables: node counts per radius, then mean
// coverage percentage per milestone and radius.
func WriteText(w io.Writer, results []sim.AggregateResult, summary *trace.TraceSummary) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "=== Nodes Needed For Target Coverage ===")
	fmt.Fprintf(bw, "%-10s %8s %8s %8s %8s %8s %8s\n", "Radius", "Mean", "StdDev", "Min", "Max", "Trials", "Excluded")
	for _, r := range results {
		fmt.Fprintf(bw, "%-10s %8s %8.2f %8d %8d %8d %8d\n",
			formatRadius(r.SensingRadius), formatMean(r.MeanNodeCount), r.NodeCountStdDev,
			r.MinNodeCount, r.MaxNodeCount, r.Trials, r.NonConverged)
	}

	milestones := milestoneUnion(results)
	if len(milestones) > 0 {
		fmt.Fprintln(bw)
		fmt.Fprintln(bw, "=== Mean Coverage (%) By Node Count ===")
		fmt.Fprintf(bw, "%-8s", "Nodes")
		for _, r := range results {
			fmt.Fprintf(bw, " %9s", "r="+formatRadius(r.SensingRadius))
		}
		fmt.Fprintln(bw)
		for _, m := range milestones {
			fmt.Fprintf(bw, "%-8d", m)
			for _, r := range results {
				fmt.Fprintf(bw, " %9s", coverageCell(r, m))
			}
			fmt.Fprintln(bw)
		}
	}

	if summary != nil {
		fmt.Fprintln(bw)
		fmt.Fprintln(bw, "=== Trial Summary ===")
		fmt.Fprintf(bw, "Total Trials         : %d\n", summary.TotalTrials)
		fmt.Fprintf(bw, "Converged            : %d\n", summary.ConvergedCount)
		fmt.Fprintf(bw, "Non-converged        : %d\n", summary.NonConvergedCount)
		fmt.Fprintf(bw, "Node Count Range     : %d - %d\n", summary.MinNodeCount, summary.MaxNodeCount)
		fmt.Fprintf(bw, "Mean Final Coverage  : %.4f\n", summary.MeanFinalCoverage)
	}

	return bw.Flush()
}
