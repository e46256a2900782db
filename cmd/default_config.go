package cmd

import (
	"bytes"
	"fmt"
	"os"
	"slices"
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/wsn-coverage/wsn-coverage/sim"
)

// Config represents the full defaults.yaml structure.
// All top-level sections must be listed to satisfy KnownFields(true) strict parsing.
// Presets are kept as raw nodes so each one can be layered over the
// built-in defaults and only needs to list the fields it changes.
type Config struct {
	Version string               `yaml:"version"`
	Presets map[string]yaml.Node `yaml:"presets"`
}

// loadDefaultsConfig parses defaults.yaml into a Config struct.
// Uses strict field checking so that typos fail loudly.
func loadDefaultsConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading defaults file: %w", err)
	}
	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing defaults file %s: %w", path, err)
	}
	return cfg, nil
}

// loadPreset returns the named preset layered over sim.DefaultExperimentConfig.
func loadPreset(path, name string) (sim.ExperimentConfig, error) {
	defaults, err := loadDefaultsConfig(path)
	if err != nil {
		return sim.ExperimentConfig{}, err
	}
	node, ok := defaults.Presets[name]
	if !ok {
		return sim.ExperimentConfig{}, fmt.Errorf("unknown preset %q in %s (available: %v)", name, path, presetNames(defaults))
	}

	// Round-trip the node through a strict decoder; yaml.Node.Decode
	// has no KnownFields option.
	data, err := yaml.Marshal(&node)
	if err != nil {
		return sim.ExperimentConfig{}, fmt.Errorf("re-encoding preset %q: %w", name, err)
	}
	cfg := sim.DefaultExperimentConfig()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return sim.ExperimentConfig{}, fmt.Errorf("decoding preset %q: %w", name, err)
	}
	cfg.Normalize()
	return cfg, nil
}

func presetNames(cfg Config) []string {
	names := make([]string, 0, len(cfg.Presets))
	for name := range cfg.Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// resolveConfig builds the experiment config. Precedence, lowest first:
// built-in defaults, then --preset or --config, then explicitly set flags.
// Flags left at their defaults never overwrite file values.
func resolveConfig(cmd *cobra.Command) (sim.ExperimentConfig, error) {
	cfg := sim.DefaultExperimentConfig()
	switch {
	case presetName != "":
		preset, err := loadPreset(defaultsFilePath, presetName)
		if err != nil {
			return cfg, err
		}
		cfg = preset
	case configPath != "":
		fileCfg, err := sim.LoadExperimentConfig(configPath)
		if err != nil {
			return cfg, err
		}
		cfg = *fileCfg
	}

	flags := cmd.Flags()
	if flags.Changed("width") {
		cfg.Region.Width = regionWidth
	}
	if flags.Changed("height") {
		cfg.Region.Height = regionHeight
	}
	if flags.Changed("cells-per-unit") {
		cfg.Region.CellsPerUnit = cellsPerUnit
	}
	if flags.Changed("radius-start") {
		cfg.Sweep.Start = radiusStart
	}
	if flags.Changed("radius-end") {
		cfg.Sweep.End = radiusEnd
	}
	if flags.Changed("radius-step") {
		cfg.Sweep.Step = radiusStep
	}
	if flags.Changed("trials") {
		cfg.Trials = trials
	}
	if flags.Changed("target") {
		cfg.TargetCoverage = targetCoverage
	}
	if flags.Changed("milestones") {
		cfg.Milestones = slices.Clone(milestones)
	}
	if flags.Changed("max-sensors") {
		cfg.MaxSensors = maxSensors
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	cfg.Normalize()
	return cfg, nil
}

// presetsCmd lists the presets available in the defaults file.
var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List experiment presets from the defaults file",
	Run: func(cmd *cobra.Command, args []string) {
		defaults, err := loadDefaultsConfig(defaultsFilePath)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		for _, name := range presetNames(defaults) {
			preset, err := loadPreset(defaultsFilePath, name)
			if err != nil {
				logrus.Fatalf("%v", err)
			}
			w, h := preset.CanvasSize()
			fmt.Printf("%-16s region %vx%v (%dx%d cells), radii %v, %d trials, target %v%%\n",
				name, preset.Region.Width, preset.Region.Height, w, h,
				preset.Sweep.Radii(), preset.Trials, preset.TargetCoverage)
		}
	},
}

func init() {
	presetsCmd.Flags().StringVar(&defaultsFilePath, "defaults-filepath", "defaults.yaml", "Path to presets file")
	rootCmd.AddCommand(presetsCmd)
}
