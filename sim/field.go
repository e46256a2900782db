package sim

import (
	"maps"
	"math/rand"
	"slices"
)

// CoverageField owns one RasterCanvas and the ordered set of sensors placed
// on it during a single trial.
//
// Invariants:
//   - len(Sensors()) equals the number of PaintDisk calls made on the canvas.
//   - MilestoneCoverage only holds node counts from the configured milestone
//     set, each recorded at most once and only when that count was reached.
type CoverageField struct {
	canvas    *RasterCanvas
	sensors   []Sensor
	milestone map[int]bool
	coverage  map[int]float64 // node count -> covered percentage in [0, 100]
}

// NewCoverageField creates an empty field over a width x height cell region.
// milestones lists the node counts at which coverage is snapshotted.
func NewCoverageField(width, height int, milestones []int) *CoverageField {
	set := make(map[int]bool, len(milestones))
	for _, m := range milestones {
		set[m] = true
	}
	return &CoverageField{
		canvas:    NewRasterCanvas(width, height),
		milestone: set,
		coverage:  make(map[int]float64, len(milestones)),
	}
}

// Canvas exposes the underlying raster for read-only consumers such as
// renderers. Callers must not paint on it directly.
func (f *CoverageField) Canvas() *RasterCanvas { return f.canvas }

// SensorCount returns the number of sensors placed so far.
func (f *CoverageField) SensorCount() int { return len(f.sensors) }

// Sensors returns a copy of the placed sensors in placement order.
func (f *CoverageField) Sensors() []Sensor { return slices.Clone(f.sensors) }

// Place appends s to the field and paints its disk.
// Returns the new total sensor count.
func (f *CoverageField) Place(s Sensor) int {
	f.sensors = append(f.sensors, s)
	f.canvas.PaintDisk(s.X, s.Y, s.Radius)
	return len(f.sensors)
}

// PlaceRandomSensor draws a center uniformly from the closed region
// [0, width] x [0, height] (cell units), independent of existing sensors,
// and places a sensor of the given radius there. Sensors centered on the
// boundary are allowed and may cover only part of their disk.
func (f *CoverageField) PlaceRandomSensor(radius float64, rng *rand.Rand) int {
	x := closedUnit(rng) * float64(f.canvas.Width())
	y := closedUnit(rng) * float64(f.canvas.Height())
	return f.Place(NewSensor(x, y, radius))
}

// CoverageFraction returns the covered fraction of the region in [0, 1].
func (f *CoverageField) CoverageFraction() float64 {
	return f.canvas.CoveredFraction()
}

// HasReached reports whether coverage is at or above target (a fraction).
func (f *CoverageField) HasReached(target float64) bool {
	return f.CoverageFraction() >= target
}

// RecordMilestoneIfDue stores the current covered percentage under nodeCount
// when nodeCount is a configured milestone not yet recorded.
// Returns true if a value was recorded.
func (f *CoverageField) RecordMilestoneIfDue(nodeCount int) bool {
	if !f.milestone[nodeCount] {
		return false
	}
	if _, done := f.coverage[nodeCount]; done {
		return false
	}
	f.coverage[nodeCount] = 100 * f.CoverageFraction()
	return true
}

// MilestoneCoverage returns a copy of the recorded milestone snapshots.
// Milestones not reached by this field are absent, never defaulted.
func (f *CoverageField) MilestoneCoverage() map[int]float64 {
	return maps.Clone(f.coverage)
}
