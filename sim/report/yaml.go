package report

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/wsn-coverage/wsn-coverage/sim"
	"github.com/wsn-coverage/wsn-coverage/sim/trace"
)

// yamlSummary is the YAML shape of trace.TraceSummary.
type yamlSummary struct {
	TotalTrials       int     `yaml:"total_trials"`
	Converged         int     `yaml:"converged"`
	NonConverged      int     `yaml:"non_converged"`
	MinNodeCount      int     `yaml:"min_node_count"`
	MaxNodeCount      int     `yaml:"max_node_count"`
	MeanFinalCoverage float64 `yaml:"mean_final_coverage"`
}

type yamlDocument struct {
	Results []sim.AggregateResult `yaml:"results"`
	Summary *yamlSummary          `yaml:"summary,omitempty"`
}

// WriteYAML emits the results as a YAML document for downstream tooling.
// A radius with no converged trial has mean_node_count .nan.
func WriteYAML(w io.Writer, results []sim.AggregateResult, summary *trace.TraceSummary) error {
	doc := yamlDocument{Results: results}
	if summary != nil {
		doc.Summary = &yamlSummary{
			TotalTrials:       summary.TotalTrials,
			Converged:         summary.ConvergedCount,
			NonConverged:      summary.NonConvergedCount,
			MinNodeCount:      summary.MinNodeCount,
			MaxNodeCount:      summary.MaxNodeCount,
			MeanFinalCoverage: summary.MeanFinalCoverage,
		}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding results: %w", err)
	}
	return enc.Close()
}
