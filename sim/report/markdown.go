package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"

	"github.com/wsn-coverage/wsn-coverage/sim"
	"github.com/wsn-coverage/wsn-coverage/sim/trace"
)

// WriteMarkdown renders the results as a Markdown document with one table
// of node counts and one table of milestone coverage.
func WriteMarkdown(w io.Writer, results []sim.AggregateResult, summary *trace.TraceSummary) error {
	md := markdown.NewMarkdown(w)

	md.H1("Sensor Coverage Experiment")
	md.PlainText("")

	writeNodeTable(md, results)
	writeMilestoneTable(md, results)
	writeExclusions(md, results)
	if summary != nil {
		writeSummary(md, summary)
	}

	return md.Build()
}

func writeNodeTable(md *markdown.Markdown, results []sim.AggregateResult) {
	md.H2("Nodes Needed For Target Coverage")
	md.PlainText("")

	rows := make([][]string, len(results))
	for i, r := range results {
		rows[i] = []string{
			formatRadius(r.SensingRadius),
			formatMean(r.MeanNodeCount),
			strconv.FormatFloat(r.NodeCountStdDev, 'f', 2, 64),
			strconv.Itoa(r.MinNodeCount),
			strconv.Itoa(r.MaxNodeCount),
			strconv.Itoa(r.Converged) + "/" + strconv.Itoa(r.Trials),
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Radius", "Mean Nodes", "Std Dev", "Min", "Max", "Converged"},
		Rows:   rows,
	})
	md.PlainText("")
}

func writeMilestoneTable(md *markdown.Markdown, results []sim.AggregateResult) {
	milestones := milestoneUnion(results)
	if len(milestones) == 0 {
		return
	}
	md.H2("Mean Coverage (%) By Node Count")
	md.PlainText("")

	header := []string{"Nodes"}
	for _, r := range results {
		header = append(header, "r="+formatRadius(r.SensingRadius))
	}
	rows := make([][]string, len(milestones))
	for i, m := range milestones {
		row := []string{strconv.Itoa(m)}
		for _, r := range results {
			row = append(row, coverageCell(r, m))
		}
		rows[i] = row
	}
	md.Table(markdown.TableSet{Header: header, Rows: rows})
	md.PlainText("")
}

func writeExclusions(md *markdown.Markdown, results []sim.AggregateResult) {
	excluded := 0
	for _, r := range results {
		excluded += r.NonConverged
	}
	if excluded == 0 {
		return
	}
	md.Warningf("%d trial(s) hit the sensor safety bound and were excluded from the means.", excluded)
	md.PlainText("")
}

func writeSummary(md *markdown.Markdown, summary *trace.TraceSummary) {
	md.H2("Trial Summary")
	md.PlainText("")
	md.BulletList(
		"Total trials: "+strconv.Itoa(summary.TotalTrials),
		"Converged: "+strconv.Itoa(summary.ConvergedCount),
		"Non-converged: "+strconv.Itoa(summary.NonConvergedCount),
		"Node count range: "+strconv.Itoa(summary.MinNodeCount)+" - "+strconv.Itoa(summary.MaxNodeCount),
		"Mean final coverage: "+strconv.FormatFloat(summary.MeanFinalCoverage, 'f', 4, 64),
	)
	md.PlainText("")
}
