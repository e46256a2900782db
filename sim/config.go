package sim

import (
	"fmt"
	"math"
	"slices"
)

// RegionConfig describes the target region in length units and the raster
// resolution used to discretize it.
type RegionConfig struct {
	Width        float64 `yaml:"width" toml:"width"`                   // length units (e.g. meters), must be > 0
	Height       float64 `yaml:"height" toml:"height"`                 // length units, must be > 0
	CellsPerUnit float64 `yaml:"cells_per_unit" toml:"cells_per_unit"` // raster cells per length unit, must be > 0
}

// RadiusSweep lists sensing radii start, start+step, ... up to end inclusive.
type RadiusSweep struct {
	Start float64 `yaml:"start" toml:"start"`
	End   float64 `yaml:"end" toml:"end"`
	Step  float64 `yaml:"step" toml:"step"`
}

// sweepTolerance absorbs float drift so that an end value reachable by an
// integral number of steps is always included.
const sweepTolerance = 1e-9

// MaxSweepRadii bounds the number of radii in one sweep.
const MaxSweepRadii = 10000

// MaxCanvasCells bounds the raster size; one cell costs one byte.
const MaxCanvasCells = 1 << 28

// count returns the number of radii in the sweep as a float so that callers
// can bound it before converting. NaN or Inf inputs yield a non-finite count.
func (s RadiusSweep) count() float64 {
	return math.Floor((s.End-s.Start)/s.Step+sweepTolerance) + 1
}

// Radii returns the sensing radii of the sweep in increasing order.
// Radii are computed as start + k*step to avoid accumulating error.
// Returns nil for an empty, non-finite or oversized sweep.
func (s RadiusSweep) Radii() []float64 {
	if !(s.Step > 0) || !(s.End >= s.Start) {
		return nil
	}
	n := s.count()
	if math.IsNaN(n) || n < 1 || n > MaxSweepRadii {
		return nil
	}
	radii := make([]float64, int(n))
	for k := range radii {
		radii[k] = s.Start + float64(k)*s.Step
	}
	return radii
}

// ExperimentConfig is the complete, explicit configuration of a coverage
// experiment. Loaded from YAML or TOML via LoadExperimentConfig, or built
// from CLI flags.
type ExperimentConfig struct {
	Region         RegionConfig `yaml:"region" toml:"region"`
	Sweep          RadiusSweep  `yaml:"sweep" toml:"sweep"`
	Trials         int          `yaml:"trials" toml:"trials"`                   // independent trials per radius
	TargetCoverage float64      `yaml:"target_coverage" toml:"target_coverage"` // percent in (0, 100]
	Milestones     []int        `yaml:"milestones" toml:"milestones"`           // node counts snapshotted for reporting
	MaxSensors     int          `yaml:"max_sensors" toml:"max_sensors"`         // per-trial safety bound
	Workers        int          `yaml:"workers" toml:"workers"`                 // concurrent trials; 0 or 1 = sequential
	Seed           int64        `yaml:"seed" toml:"seed"`
}

// Defaults reproduce the historical experiment: a 100m x 100m field sampled
// at 5 cells per meter, radii 10m..50m in 5m steps, 10 trials per radius.
const (
	DefaultRegionSize     = 100.0
	DefaultCellsPerUnit   = 5.0
	DefaultRadiusStart    = 10.0
	DefaultRadiusEnd      = 50.0
	DefaultRadiusStep     = 5.0
	DefaultTrials         = 10
	DefaultTargetCoverage = 99.0
	DefaultMaxSensors     = 100000
	DefaultSeed           = 42
)

// DefaultMilestones are the node counts reported in the coverage-by-node table.
var DefaultMilestones = []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 15, 20, 30, 50, 100, 150, 200}

// DefaultExperimentConfig returns the historical experiment configuration.
func DefaultExperimentConfig() ExperimentConfig {
	return ExperimentConfig{
		Region: RegionConfig{
			Width:        DefaultRegionSize,
			Height:       DefaultRegionSize,
			CellsPerUnit: DefaultCellsPerUnit,
		},
		Sweep: RadiusSweep{
			Start: DefaultRadiusStart,
			End:   DefaultRadiusEnd,
			Step:  DefaultRadiusStep,
		},
		Trials:         DefaultTrials,
		TargetCoverage: DefaultTargetCoverage,
		Milestones:     slices.Clone(DefaultMilestones),
		MaxSensors:     DefaultMaxSensors,
		Workers:        1,
		Seed:           DefaultSeed,
	}
}

// Validate checks every field and returns an error wrapping
// ErrInvalidConfiguration for the first problem found.
func (c *ExperimentConfig) Validate() error {
	if err := c.ValidateRun(); err != nil {
		return err
	}
	sw := c.Sweep
	if !isFinite(sw.Start) || !isFinite(sw.End) || !isFinite(sw.Step) {
		return invalidf("radius sweep bounds must be finite, got start %v end %v step %v", sw.Start, sw.End, sw.Step)
	}
	if !(sw.Step > 0) {
		return invalidf("radius sweep step must be positive, got %v", sw.Step)
	}
	if !(sw.Start > 0) {
		return invalidf("radius sweep start must be positive, got %v", sw.Start)
	}
	if sw.End < sw.Start {
		return invalidf("radius sweep end %v is below start %v", sw.End, sw.Start)
	}
	if n := sw.count(); n > MaxSweepRadii {
		return invalidf("radius sweep yields %v radii, limit is %d", n, MaxSweepRadii)
	}
	if r := sw.End * c.Region.CellsPerUnit; !isFinite(r) {
		return invalidf("radius %v is too large for %v cells per unit", sw.End, c.Region.CellsPerUnit)
	}
	return nil
}

// ValidateRun checks everything except the radius sweep, for single-radius
// runs.
func (c *ExperimentConfig) ValidateRun() error {
	if !(c.Region.Width > 0) || !(c.Region.Height > 0) || !isFinite(c.Region.Width) || !isFinite(c.Region.Height) {
		return invalidf("region dimensions must be positive and finite, got %vx%v", c.Region.Width, c.Region.Height)
	}
	if !(c.Region.CellsPerUnit > 0) || !isFinite(c.Region.CellsPerUnit) {
		return invalidf("cells_per_unit must be positive and finite, got %v", c.Region.CellsPerUnit)
	}
	// Checked in float space: CanvasSize would overflow int first.
	fw := math.Round(c.Region.Width * c.Region.CellsPerUnit)
	fh := math.Round(c.Region.Height * c.Region.CellsPerUnit)
	if fw < 1 || fh < 1 {
		return invalidf("raster must be at least 1x1 cells, got %vx%v", fw, fh)
	}
	if fw*fh > MaxCanvasCells {
		return invalidf("raster of %vx%v cells exceeds the limit of %d cells", fw, fh, MaxCanvasCells)
	}
	if c.Trials <= 0 {
		return invalidf("trials must be positive, got %d", c.Trials)
	}
	if !(c.TargetCoverage > 0) || c.TargetCoverage > 100 {
		return invalidf("target coverage must be in (0, 100] percent, got %v", c.TargetCoverage)
	}
	if err := validateMilestones(c.Milestones); err != nil {
		return err
	}
	if c.MaxSensors <= 0 {
		return invalidf("max_sensors must be positive, got %d", c.MaxSensors)
	}
	if c.Workers < 0 {
		return invalidf("workers must be non-negative, got %d", c.Workers)
	}
	return nil
}

func validateMilestones(milestones []int) error {
	if len(milestones) == 0 {
		return invalidf("milestone list must not be empty")
	}
	for _, m := range milestones {
		if m <= 0 {
			return invalidf("milestones must be positive node counts, got %d", m)
		}
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfiguration}, args...)...)
}

// Normalize replaces Milestones with a sorted, deduplicated copy.
func (c *ExperimentConfig) Normalize() {
	c.Milestones = slices.Compact(slices.Sorted(slices.Values(c.Milestones)))
}

// CanvasSize returns the raster dimensions in cells.
func (c *ExperimentConfig) CanvasSize() (width, height int) {
	width = int(math.Round(c.Region.Width * c.Region.CellsPerUnit))
	height = int(math.Round(c.Region.Height * c.Region.CellsPerUnit))
	return width, height
}

// TargetFraction returns TargetCoverage as a fraction in (0, 1].
func (c *ExperimentConfig) TargetFraction() float64 {
	return c.TargetCoverage / 100
}

// TrialConfig derives the per-trial parameters for a sensing radius given
// in length units.
func (c *ExperimentConfig) TrialConfig(sensingRadius float64) TrialConfig {
	w, h := c.CanvasSize()
	return TrialConfig{
		Width:          w,
		Height:         h,
		SensingRadius:  sensingRadius * c.Region.CellsPerUnit,
		TargetFraction: c.TargetFraction(),
		Milestones:     slices.Clone(c.Milestones),
		MaxSensors:     c.MaxSensors,
	}
}

// TrialConfig holds everything one trial needs, in raster cell units.
type TrialConfig struct {
	Width          int     // canvas columns
	Height         int     // canvas rows
	SensingRadius  float64 // cells
	TargetFraction float64 // in (0, 1]
	Milestones     []int
	MaxSensors     int // 0 = unbounded
}

// Validate checks the trial parameters directly, for callers that bypass
// ExperimentConfig.
func (tc TrialConfig) Validate() error {
	if tc.Width < 1 || tc.Height < 1 {
		return invalidf("canvas must be at least 1x1 cells, got %dx%d", tc.Width, tc.Height)
	}
	if tc.Width*tc.Height > MaxCanvasCells {
		return invalidf("canvas of %dx%d cells exceeds the limit of %d cells", tc.Width, tc.Height, MaxCanvasCells)
	}
	if !(tc.SensingRadius > 0) || !isFinite(tc.SensingRadius) {
		return invalidf("sensing radius must be positive and finite, got %v", tc.SensingRadius)
	}
	if !(tc.TargetFraction > 0) || tc.TargetFraction > 1 {
		return invalidf("target fraction must be in (0, 1], got %v", tc.TargetFraction)
	}
	if tc.MaxSensors < 0 {
		return invalidf("max sensors must be non-negative, got %d", tc.MaxSensors)
	}
	return validateMilestones(tc.Milestones)
}
