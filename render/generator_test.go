package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vacmap/vacmap/config"
	"github.com/vacmap/vacmap/mapdata"
)

func defaultGenerator(imageConfig config.ImageConfig) *Generator {
	return New(
		config.NewPalette(nil, nil),
		config.NewSizes(nil),
		config.AllDrawables(),
		imageConfig,
		nil,
	)
}

// testMap builds a 100x100 white map with an identity coordinate
// transform, so vacuum coordinates equal untrimmed map pixels.
func testMap(imageConfig config.ImageConfig) *mapdata.MapData {
	img := image.NewRGBA(image.Rect(0, 0, 100, 100))
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			img.SetRGBA(x, y, color.RGBA{255, 255, 255, 255})
		}
	}
	m := mapdata.New(0, 10)
	m.Image = mapdata.NewImageData(100*100, 0, 0, 100, 100, imageConfig, img,
		func(p mapdata.Point) mapdata.Point { return p }, nil)
	return m
}

func TestEmptyMap(t *testing.T) {
	g := defaultGenerator(config.DefaultImageConfig())

	img := g.EmptyMap("no map")

	require.Equal(t, 300, img.Bounds().Dx())
	require.Equal(t, 200, img.Bounds().Dy())

	// Corners carry the outside color, the text is centered.
	outside := g.palette.Color(config.ColorMapOutside)
	corner := img.RGBAAt(0, 0)
	assert.Equal(t, outside.R, corner.R)
	assert.Equal(t, outside.G, corner.G)
	assert.Equal(t, outside.B, corner.B)
}

func TestDrawNoImage(t *testing.T) {
	g := defaultGenerator(config.DefaultImageConfig())
	m := mapdata.New(0, 10)

	// Must not panic on a map without image data.
	g.Draw(m)
	assert.Nil(t, m.Image)
}

func TestDrawPath(t *testing.T) {
	g := New(
		config.NewPalette(nil, nil),
		config.NewSizes(map[config.Size]float64{config.SizePathWidth: 4}),
		[]config.Drawable{config.DrawablePath},
		config.DefaultImageConfig(),
		nil,
	)
	m := testMap(config.DefaultImageConfig())
	m.Path = mapdata.NewPath(nil, nil, nil, [][]mapdata.Point{
		{{X: 10, Y: 50}, {X: 90, Y: 50}},
	})

	g.Draw(m)

	// Vacuum y=50 lands on image row 49; a 4-wide stroke covers it.
	pathColor := g.palette.Color(config.ColorPath)
	got := m.Image.Image.RGBAAt(50, 49)
	assert.Equal(t, pathColor.R, got.R)
	assert.Equal(t, pathColor.G, got.G)
	assert.Equal(t, pathColor.B, got.B)

	// Pixels far from the path stay untouched.
	assert.Equal(t, uint8(255), m.Image.Image.RGBAAt(50, 10).R)
}

func TestDrawChargerChangesPixels(t *testing.T) {
	g := New(
		config.NewPalette(nil, nil),
		config.NewSizes(nil),
		[]config.Drawable{config.DrawableCharger},
		config.DefaultImageConfig(),
		nil,
	)
	m := testMap(config.DefaultImageConfig())
	m.Charger = chargerAt(50, 50, 0)

	g.Draw(m)

	// The charger color is translucent, so the marker is composited
	// over the white map and the center pixel is no longer white.
	got := m.Image.Image.RGBAAt(49, 49)
	assert.NotEqual(t, color.RGBA{255, 255, 255, 255}, got)
}

func chargerAt(x, y, angle float64) *mapdata.Point {
	p := mapdata.PointWithAngle(x, y, angle)
	return &p
}

func TestDrawZonesFillsArea(t *testing.T) {
	g := New(
		config.NewPalette(map[config.ColorName]config.Color{
			config.ColorZones:        config.RGB(10, 20, 30),
			config.ColorZonesOutline: config.RGB(10, 20, 30),
		}, nil),
		config.NewSizes(nil),
		[]config.Drawable{config.DrawableZones},
		config.DefaultImageConfig(),
		nil,
	)
	m := testMap(config.DefaultImageConfig())
	m.Zones = []mapdata.Zone{{X0: 20, Y0: 20, X1: 80, Y1: 80}}

	g.Draw(m)

	got := m.Image.Image.RGBAAt(50, 50)
	assert.Equal(t, uint8(10), got.R)
	assert.Equal(t, uint8(20), got.G)
	assert.Equal(t, uint8(30), got.B)
}

func TestDrawAppliesCaptions(t *testing.T) {
	g := New(
		config.NewPalette(nil, nil),
		config.NewSizes(nil),
		nil,
		config.DefaultImageConfig(),
		[]config.Text{{Text: "Floor 1", X: 50, Y: 50, Color: config.RGB(255, 0, 0)}},
	)
	m := testMap(config.DefaultImageConfig())

	g.Draw(m)

	// Some pixel near the center now carries the caption color.
	found := false
	for y := 35; y < 65 && !found; y++ {
		for x := 15; x < 85 && !found; x++ {
			px := m.Image.Image.RGBAAt(x, y)
			if px.R == 255 && px.G == 0 && px.B == 0 {
				found = true
			}
		}
	}
	assert.True(t, found, "caption pixels not found")
}

func TestScaleNearestKeepsHardEdges(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 1))
	src.SetRGBA(0, 0, color.RGBA{255, 0, 0, 255})
	src.SetRGBA(1, 0, color.RGBA{0, 0, 255, 255})

	dst := ScaleNearest(src, 2)

	require.Equal(t, 4, dst.Bounds().Dx())
	require.Equal(t, 2, dst.Bounds().Dy())
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, dst.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, dst.RGBAAt(1, 1))
	assert.Equal(t, color.RGBA{0, 0, 255, 255}, dst.RGBAAt(2, 0))
	assert.Equal(t, color.RGBA{0, 0, 255, 255}, dst.RGBAAt(3, 1))
}

func TestScaleNearestIdentity(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	assert.Same(t, src, ScaleNearest(src, 1))
}
