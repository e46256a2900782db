package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/wsn-coverage/wsn-coverage/sim"
	"github.com/wsn-coverage/wsn-coverage/sim/render"
	"github.com/wsn-coverage/wsn-coverage/sim/report"
	"github.com/wsn-coverage/wsn-coverage/sim/trace"
)

var (
	// Experiment configuration flags
	configPath       string  // YAML or TOML experiment config file
	defaultsFilePath string  // presets file
	presetName       string  // named preset from the defaults file
	regionWidth      float64 // region width in length units
	regionHeight     float64 // region height in length units
	cellsPerUnit     float64 // raster resolution
	radiusStart      float64 // first sensing radius of the sweep
	radiusEnd        float64 // last sensing radius of the sweep (inclusive)
	radiusStep       float64 // sweep increment
	trials           int     // independent trials per radius
	targetCoverage   float64 // target coverage percentage
	milestones       []int   // node counts snapshotted for the coverage table
	maxSensors       int     // per-trial safety bound
	workers          int     // concurrent trials
	seed             int64   // experiment seed

	// Output flags
	logLevel    string // Log verbosity level
	format      string // report format
	traceLevel  string // trial trace verbosity
	snapshotDir string // directory for per-radius PNG snapshots
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "wsn-coverage",
	Short: "Monte Carlo estimator of sensor counts needed for target area coverage",
}

// runCmd executes the radius sweep using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the coverage experiment over the sensing-radius sweep",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		if !report.ValidFormats[report.Format(format)] {
			logrus.Fatalf("Unknown --format %q (text, markdown, yaml)", format)
		}
		if !trace.IsValidTraceLevel(traceLevel) {
			logrus.Fatalf("Unknown --trace level %q (none, trials)", traceLevel)
		}

		cfg, err := resolveConfig(cmd)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		if err := cfg.Validate(); err != nil {
			logrus.Fatalf("%v", err)
		}

		w, h := cfg.CanvasSize()
		logrus.Infof("Starting sweep: region %vx%v (%dx%d cells), radii %v, %d trials/radius, target %v%%, seed %d",
			cfg.Region.Width, cfg.Region.Height, w, h, cfg.Sweep.Radii(), cfg.Trials, cfg.TargetCoverage, cfg.Seed)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		startTime := time.Now()
		st := trace.NewSimulationTrace(trace.TraceLevel(traceLevel))
		results, err := sim.RunSweep(ctx, cfg, sim.SweepOptions{
			Trace: st,
			OnRadius: func(index int, res sim.AggregateResult) {
				logrus.Infof("sensing radius %v: mean node count %.2f (%d/%d trials converged)",
					res.SensingRadius, res.MeanNodeCount, res.Converged, res.Trials)
			},
		})
		if err != nil {
			logrus.Fatalf("Sweep failed: %v", err)
		}
		logrus.Infof("Sweep finished in %v", time.Since(startTime))

		var summary *trace.TraceSummary
		if st != nil {
			summary = trace.Summarize(st)
		}
		if err := report.Write(os.Stdout, report.Format(format), results, summary); err != nil {
			logrus.Fatalf("Writing report failed: %v", err)
		}

		if snapshotDir != "" {
			if err := writeSnapshots(ctx, cfg, snapshotDir); err != nil {
				logrus.Fatalf("Writing snapshots failed: %v", err)
			}
		}
	},
}

// writeSnapshots replays trial 0 of every radius and renders its final field.
func writeSnapshots(ctx context.Context, cfg sim.ExperimentConfig, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create snapshot dir %s: %w", dir, err)
	}
	for idx, radius := range cfg.Sweep.Radii() {
		path := filepath.Join(dir, "radius_"+strconv.FormatFloat(radius, 'f', -1, 64)+".png")
		if err := renderTrial(ctx, cfg, idx, 0, path); err != nil {
			return err
		}
	}
	return nil
}

// renderTrial replays one trial and writes it as a PNG. A non-converged
// trial is still rendered, with a warning.
func renderTrial(ctx context.Context, cfg sim.ExperimentConfig, radiusIndex, trial int, path string) error {
	tr, err := sim.ReplayTrial(ctx, cfg, radiusIndex, trial)
	if tr == nil {
		return err
	}
	if err != nil {
		logrus.Warnf("rendering non-converged trial: %v", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	if err := render.WritePNG(file, tr.Field(), render.Options{DrawOutlines: true, DrawCenters: true}); err != nil {
		return err
	}
	logrus.Infof("wrote %s (%d sensors, coverage %.4f)", path, tr.Field().SensorCount(), tr.Field().CoverageFraction())
	return file.Close()
}

func setupLogging() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// addExperimentFlags registers the flags shared by every command that runs
// trials. Defaults mirror sim.DefaultExperimentConfig.
func addExperimentFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configPath, "config", "", "Path to experiment config file (.yaml, .yml or .toml)")
	cmd.Flags().StringVar(&defaultsFilePath, "defaults-filepath", "defaults.yaml", "Path to presets file")
	cmd.Flags().StringVar(&presetName, "preset", "", "Named preset from the defaults file")

	cmd.Flags().Float64Var(&regionWidth, "width", sim.DefaultRegionSize, "Region width in length units")
	cmd.Flags().Float64Var(&regionHeight, "height", sim.DefaultRegionSize, "Region height in length units")
	cmd.Flags().Float64Var(&cellsPerUnit, "cells-per-unit", sim.DefaultCellsPerUnit, "Raster cells per length unit")
	cmd.Flags().Float64Var(&radiusStart, "radius-start", sim.DefaultRadiusStart, "First sensing radius (length units)")
	cmd.Flags().Float64Var(&radiusEnd, "radius-end", sim.DefaultRadiusEnd, "Last sensing radius, inclusive (length units)")
	cmd.Flags().Float64Var(&radiusStep, "radius-step", sim.DefaultRadiusStep, "Sensing radius increment (length units)")
	cmd.Flags().IntVar(&trials, "trials", sim.DefaultTrials, "Independent trials per radius")
	cmd.Flags().Float64Var(&targetCoverage, "target", sim.DefaultTargetCoverage, "Target coverage percentage")
	cmd.Flags().IntSliceVar(&milestones, "milestones", slices.Clone(sim.DefaultMilestones), "Comma-separated node counts at which coverage is reported")
	cmd.Flags().IntVar(&maxSensors, "max-sensors", sim.DefaultMaxSensors, "Per-trial sensor safety bound")
	cmd.Flags().IntVar(&workers, "workers", 1, "Trials run concurrently")
	cmd.Flags().Int64Var(&seed, "seed", sim.DefaultSeed, "Experiment seed")

	cmd.Flags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")

	cmd.MarkFlagsMutuallyExclusive("config", "preset")
}

// init sets up CLI flags and subcommands
func init() {
	addExperimentFlags(runCmd)
	runCmd.Flags().StringVar(&format, "format", string(report.FormatText), "Report format (text, markdown, yaml)")
	runCmd.Flags().StringVar(&traceLevel, "trace", string(trace.TraceLevelNone), "Trial trace level (none, trials)")
	runCmd.Flags().StringVar(&snapshotDir, "snapshot-dir", "", "Render trial 0 of each radius as PNG into this directory")

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}
