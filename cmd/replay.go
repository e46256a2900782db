package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	replayRadiusIndex int
	replayTrial       int
	replayOut         string
)

// replayCmd re-runs a single trial from the sweep and renders its final field.
// Per-trial seeding makes the replay identical to the trial inside `run`.
var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Replay one trial of the sweep and render it as PNG",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		cfg, err := resolveConfig(cmd)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		if err := cfg.Validate(); err != nil {
			logrus.Fatalf("%v", err)
		}
		if replayOut == "" {
			logrus.Fatalf("--out is required")
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		if err := renderTrial(ctx, cfg, replayRadiusIndex, replayTrial, replayOut); err != nil {
			logrus.Fatalf("Replay failed: %v", err)
		}
	},
}

func init() {
	addExperimentFlags(replayCmd)
	replayCmd.Flags().IntVar(&replayRadiusIndex, "radius-index", 0, "Index into the radius sweep")
	replayCmd.Flags().IntVar(&replayTrial, "trial", 0, "Trial number within the radius")
	replayCmd.Flags().StringVar(&replayOut, "out", "", "Output PNG path")

	rootCmd.AddCommand(replayCmd)
}
