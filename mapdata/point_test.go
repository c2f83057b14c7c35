package mapdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func identityDims(width, height int, scale, rotation float64) ImageDimensions {
	return ImageDimensions{
		Top:       0,
		Left:      0,
		Height:    height,
		Width:     width,
		Scale:     scale,
		Rotation:  rotation,
		Transform: func(p Point) Point { return p },
	}
}

func TestPointHeading(t *testing.T) {
	assert.Equal(t, 0.0, Point{X: 1, Y: 2}.Heading())
	assert.Equal(t, 93.5, PointWithAngle(1, 2, 93.5).Heading())
}

func TestPointToImage(t *testing.T) {
	dim := ImageDimensions{
		Top:       10,
		Left:      20,
		Height:    100,
		Width:     200,
		Scale:     2,
		Transform: func(p Point) Point { return p },
	}

	got := Point{X: 25, Y: 30}.ToImage(dim)

	// X shifts by the left offset and scales; Y additionally flips,
	// vacuums count from the bottom and images from the top.
	assert.Equal(t, 10.0, got.X)
	assert.Equal(t, 158.0, got.Y)
}

func TestPointToImageAppliesTransform(t *testing.T) {
	dim := ImageDimensions{
		Height:    100,
		Width:     100,
		Scale:     1,
		Transform: func(p Point) Point { return p.Div(50) },
	}

	got := Point{X: 100, Y: 100}.ToImage(dim)

	assert.Equal(t, 2.0, got.X)
	assert.Equal(t, 97.0, got.Y)
}

func TestPointRotatedRightAngles(t *testing.T) {
	dim := identityDims(200, 100, 1, 0)
	p := Point{X: 10, Y: 20}

	tests := []struct {
		rotation float64
		want     Point
	}{
		{0, Point{X: 10, Y: 20}},
		{90, Point{X: 20, Y: 190}},
		{180, Point{X: 190, Y: 80}},
		{270, Point{X: 80, Y: 10}},
		{360, Point{X: 10, Y: 20}},
	}

	for _, tt := range tests {
		dim.Rotation = tt.rotation
		got := p.Rotated(dim)
		assert.Equal(t, tt.want.X, got.X, "rotation %v", tt.rotation)
		assert.Equal(t, tt.want.Y, got.Y, "rotation %v", tt.rotation)
	}
}

func TestPointRotatedArbitraryAngle(t *testing.T) {
	// The canvas center stays at the center of the expanded canvas.
	dim := identityDims(100, 100, 1, 45)
	got := Point{X: 50, Y: 50}.Rotated(dim)

	assert.InDelta(t, 70.7106781, got.X, 1e-6)
	assert.InDelta(t, 70.7106781, got.Y, 1e-6)
}

func TestPointRotatedRespectsScale(t *testing.T) {
	// At scale 2 the rotation pivots around the scaled canvas.
	dim := identityDims(100, 50, 2, 90)
	got := Point{X: 0, Y: 0}.Rotated(dim)

	assert.Equal(t, 0.0, got.X)
	assert.Equal(t, 200.0, got.Y)
}

func TestPointMulDiv(t *testing.T) {
	p := PointWithAngle(10, 20, 45)

	scaled := p.Mul(2)
	assert.Equal(t, 20.0, scaled.X)
	assert.Equal(t, 40.0, scaled.Y)
	assert.Equal(t, 45.0, scaled.Heading())

	back := scaled.Div(2)
	assert.Equal(t, 10.0, back.X)
	assert.Equal(t, 20.0, back.Y)
}
