package sim

import "math"

// RasterCanvas is a fixed-resolution grid over the target region.
// Cell (i, j) samples the point (i+0.5, j+0.5) in cell coordinates and is
// covered iff some painted disk contains that point.
//
// Cells only ever transition from uncovered to covered. The covered-cell
// count is maintained incrementally by PaintDisk, so CoveredFraction is O(1).
//
// A RasterCanvas is owned by exactly one CoverageField and is not safe for
// concurrent use.
type RasterCanvas struct {
	width   int
	height  int
	cells   []bool // row-major, len == width*height
	covered int
}

// NewRasterCanvas creates a width x height canvas with every cell uncovered.
// Dimensions are validated by the caller (see ExperimentConfig.Validate).
func NewRasterCanvas(width, height int) *RasterCanvas {
	return &RasterCanvas{
		width:  width,
		height: height,
		cells:  make([]bool, width*height),
	}
}

// Width returns the number of cell columns.
func (c *RasterCanvas) Width() int { return c.width }

// Height returns the number of cell rows.
func (c *RasterCanvas) Height() int { return c.height }

// TotalCells returns width*height.
func (c *RasterCanvas) TotalCells() int { return len(c.cells) }

// CoveredCells returns the running count of covered cells.
func (c *RasterCanvas) CoveredCells() int { return c.covered }

// IsCovered reports whether cell (i, j) is covered.
// Out-of-bounds cells are not represented and report false.
func (c *RasterCanvas) IsCovered(i, j int) bool {
	if i < 0 || j < 0 || i >= c.width || j >= c.height {
		return false
	}
	return c.cells[j*c.width+i]
}

// CoveredFraction returns covered / total as a value in [0, 1].
func (c *RasterCanvas) CoveredFraction() float64 {
	if len(c.cells) == 0 {
		return 0
	}
	return float64(c.covered) / float64(len(c.cells))
}

// PaintDisk marks every cell whose sample point lies in the closed disk
// centered at (cx, cy) as covered and returns the number of cells that were
// newly covered. Parts of the disk outside the canvas are clipped.
func (c *RasterCanvas) PaintDisk(cx, cy, radius float64) int {
	if !(radius >= 0) || math.IsNaN(cx) || math.IsNaN(cy) || c.width == 0 || c.height == 0 {
		return 0
	}
	r2 := radius * radius

	// Bounds are clamped before the int conversion, which overflows for
	// radii beyond the int64 range.
	j0 := clampIndex(math.Floor(cy-radius)-1, c.height)
	j1 := clampIndex(math.Ceil(cy+radius)+1, c.height)

	painted := 0
	for j := j0; j <= j1; j++ {
		dy := float64(j) + 0.5 - cy
		rem := r2 - dy*dy
		if rem < 0 {
			continue
		}
		i0, i1 := rowSpan(cx, dy, r2, math.Sqrt(rem), c.width)
		row := c.cells[j*c.width : (j+1)*c.width]
		for i := i0; i <= i1; i++ {
			if !row[i] {
				row[i] = true
				painted++
			}
		}
	}
	c.covered += painted
	return painted
}

// rowSpan returns the inclusive column range [i0, i1], within [0, width),
// whose sample points lie inside the disk on a row at vertical offset dy
// from the center. i0 > i1 means the row has no covered cells.
// The sqrt estimate is corrected against the exact predicate so that
// PaintDisk agrees with Sensor.Covers on boundary cells.
func rowSpan(cx, dy, r2, half float64, width int) (int, int) {
	inside := func(i int) bool {
		dx := float64(i) + 0.5 - cx
		return dx*dx+dy*dy <= r2
	}
	i0 := clampIndex(math.Ceil(cx-half-0.5), width)
	i1 := clampIndex(math.Floor(cx+half-0.5), width)
	for i0 > 0 && inside(i0-1) {
		i0--
	}
	for i0 <= i1 && !inside(i0) {
		i0++
	}
	for i1 < width-1 && inside(i1+1) {
		i1++
	}
	for i1 >= i0 && !inside(i1) {
		i1--
	}
	return i0, i1
}

// clampIndex converts v to an index in [0, n-1], clamping in float space.
func clampIndex(v float64, n int) int {
	return int(math.Min(math.Max(v, 0), float64(n-1)))
}
