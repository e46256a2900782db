// Package report renders aggregate coverage results for people and tools.
// It is a consumer of sim.AggregateResult and holds no simulation logic.
package report

import (
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"

	"github.com/wsn-coverage/wsn-coverage/sim"
	"github.com/wsn-coverage/wsn-coverage/sim/trace"
)

// Format selects an output renderer.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatYAML     Format = "yaml"
)

// ValidFormats is the set of recognized format names.
var ValidFormats = map[Format]bool{FormatText: true, FormatMarkdown: true, FormatYAML: true}

// Write renders results in the given format. summary is optional.
func Write(w io.Writer, format Format, results []sim.AggregateResult, summary *trace.TraceSummary) error {
	switch format {
	case FormatText, "":
		return WriteText(w, results, summary)
	case FormatMarkdown:
		return WriteMarkdown(w, results, summary)
	case FormatYAML:
		return WriteYAML(w, results, summary)
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}

// milestoneUnion returns every milestone reported by any radius, sorted.
func milestoneUnion(results []sim.AggregateResult) []int {
	var all []int
	for _, r := range results {
		all = append(all, r.Milestones()...)
	}
	slices.Sort(all)
	return slices.Compact(all)
}

func formatRadius(r float64) string {
	return strconv.FormatFloat(r, 'f', -1, 64)
}

func formatMean(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// coverageCell formats the mean coverage for milestone m, or "-" when no
// converged trial placed that many sensors.
func coverageCell(r sim.AggregateResult, m int) string {
	cov, ok := r.MeanMilestoneCoverage[m]
	if !ok {
		return "-"
	}
	return strconv.FormatFloat(cov, 'f', 2, 64)
}
