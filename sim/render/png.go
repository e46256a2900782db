// Package render draws a finished coverage field as a PNG image: covered
// raster cells shaded, sensor disks outlined and centers marked.
package render

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/fogleman/gg"

	"github.com/wsn-coverage/wsn-coverage/sim"
)

// Options controls rendering. Zero values select the defaults.
type Options struct {
	Scale        float64 // output pixels per raster cell (default 1)
	DrawOutlines bool    // stroke each sensor's disk boundary
	DrawCenters  bool    // mark each sensor's center
}

var (
	uncoveredColor = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	coveredColor   = color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
)

// Image rasterizes the field's canvas, one pixel per cell, covered cells in
// grey and uncovered cells in white.
func Image(f *sim.CoverageField) *image.RGBA {
	c := f.Canvas()
	img := image.NewRGBA(image.Rect(0, 0, c.Width(), c.Height()))
	for j := 0; j < c.Height(); j++ {
		for i := 0; i < c.Width(); i++ {
			if c.IsCovered(i, j) {
				img.SetRGBA(i, j, coveredColor)
			} else {
				img.SetRGBA(i, j, uncoveredColor)
			}
		}
	}
	return img
}

// WritePNG draws f and encodes it as PNG to w.
func WritePNG(w io.Writer, f *sim.CoverageField, opts Options) error {
	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}
	c := f.Canvas()
	width := int(float64(c.Width()) * scale)
	height := int(float64(c.Height()) * scale)
	if width < 1 || height < 1 {
		return fmt.Errorf("render size %dx%d too small", width, height)
	}

	dc := gg.NewContext(width, height)
	dc.Scale(scale, scale)
	dc.DrawImage(Image(f), 0, 0)

	sensors := f.Sensors()
	if opts.DrawOutlines {
		dc.SetRGB(0.2, 0.2, 0.6)
		dc.SetLineWidth(1 / scale)
		for _, s := range sensors {
			dc.DrawCircle(s.X, s.Y, s.Radius)
			dc.Stroke()
		}
	}
	if opts.DrawCenters {
		dc.SetRGB(0.8, 0.1, 0.1)
		for _, s := range sensors {
			dc.DrawCircle(s.X, s.Y, 1.5/scale)
			dc.Fill()
		}
	}

	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}
