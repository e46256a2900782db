package render

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wsn-coverage/wsn-coverage/sim"
)

func TestImage_CoveredCellsGrey(t *testing.T) {
	f := sim.NewCoverageField(20, 10, []int{1})
	f.Place(sim.NewSensor(2, 2, 1))

	img := Image(f)

	assert.Equal(t, 20, img.Bounds().Dx())
	assert.Equal(t, 10, img.Bounds().Dy())
	assert.Equal(t, coveredColor, img.RGBAAt(1, 1))
	assert.Equal(t, uncoveredColor, img.RGBAAt(15, 8))
}

func TestWritePNG_DecodesWithScaledSize(t *testing.T) {
	f := sim.NewCoverageField(30, 20, []int{1})
	f.Place(sim.NewSensor(10, 10, 5))
	f.Place(sim.NewSensor(25, 5, 4))
	var buf bytes.Buffer

	err := WritePNG(&buf, f, Options{Scale: 2, DrawOutlines: true, DrawCenters: true})
	require.NoError(t, err)

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 60, img.Bounds().Dx())
	assert.Equal(t, 40, img.Bounds().Dy())
}

func TestWritePNG_DefaultScale(t *testing.T) {
	f := sim.NewCoverageField(8, 8, []int{1})
	var buf bytes.Buffer

	require.NoError(t, WritePNG(&buf, f, Options{}))

	cfg, err := png.DecodeConfig(&buf)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Width)
	assert.Equal(t, 8, cfg.Height)
}
