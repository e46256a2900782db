// Package sim provides the Monte Carlo coverage engine for wireless sensor
// network deployment studies: how many uniformly placed sensing disks are
// needed before a bounded 2D region reaches a target coverage fraction.
//
// # Reading Guide
//
// Start with these files, leaf to root:
//   - canvas.go: RasterCanvas, the discretized region with an incremental covered-cell counter
//   - field.go: CoverageField, one trial's sensors, placement and milestone snapshots
//   - trial.go: Trial state machine (running → done | aborted) and its safety bound
//   - aggregate.go: Aggregator, independent trials combined into per-radius means
//   - simulate.go: Simulate, RunSweep and ReplayTrial entry points
//
// # Units
//
// ExperimentConfig is expressed in length units (e.g. meters) plus a raster
// resolution in cells per unit. Everything below the config layer (Sensor,
// RasterCanvas, TrialConfig) works in cell units.
//
// # Reproducibility
//
// Each trial draws from its own stream derived from the experiment seed and
// the (radius index, trial index) pair, see rng.go. Results are identical
// for any worker count.
//
// Sub-packages:
//   - sim/trace/: per-trial outcome records
//   - sim/report/: text, Markdown and YAML rendering of aggregate results
//   - sim/render/: PNG rendering of a finished field
package sim
