package mapdata

import "math"

// Point is a position on a map, in vacuum coordinates.
// Angle is the heading in degrees and is optional; most map layers
// carry positions only, the vacuum pose and charger carry a heading.
type Point struct {
	X     float64  `json:"x"`
	Y     float64  `json:"y"`
	Angle *float64 `json:"a,omitempty"`
}

// PointWithAngle creates a point with a heading.
func PointWithAngle(x, y, angle float64) Point {
	return Point{X: x, Y: y, Angle: &angle}
}

// Heading returns the angle in degrees, or 0 when no angle is set.
func (p Point) Heading() float64 {
	if p.Angle == nil {
		return 0
	}
	return *p.Angle
}

// ToImage converts the point from vacuum coordinates to image pixels.
func (p Point) ToImage(dim ImageDimensions) Point {
	return dim.ToImage(p)
}

// Rotated returns the point's position after the image rotation
// configured in dim has been applied. Right-angle rotations use the
// exact coordinate-swap path; arbitrary angles use the expanded-canvas
// transform matching the renderer's rotation.
func (p Point) Rotated(dim ImageDimensions) Point {
	alpha := dim.Rotation
	w := int(float64(dim.Width) * dim.Scale)
	h := int(float64(dim.Height) * dim.Scale)
	x, y := p.X, p.Y
	if math.Mod(alpha, 90) == 0 {
		for alpha > 0 {
			x, y = y, float64(w)-x
			h, w = w, h
			alpha -= 90
		}
		return Point{X: x, Y: y}
	}
	xm := float64(w) / 2
	ym := float64(h) / 2
	a := alpha * math.Pi / 180
	wr := math.Abs(float64(w)*math.Cos(a)) + math.Abs(float64(h)*math.Sin(a))
	hr := math.Abs(float64(w)*math.Sin(a)) + math.Abs(float64(h)*math.Cos(a))
	xr := (x-xm)*math.Cos(a) + (y-ym)*math.Sin(a) + wr/2
	yr := -(x-xm)*math.Sin(a) + (y-ym)*math.Cos(a) + hr/2
	return Point{X: xr, Y: yr}
}

// Mul scales the point's position by a factor, keeping the angle.
func (p Point) Mul(f float64) Point {
	return Point{X: p.X * f, Y: p.Y * f, Angle: p.Angle}
}

// Div divides the point's position by a factor, keeping the angle.
func (p Point) Div(f float64) Point {
	return Point{X: p.X / f, Y: p.Y / f, Angle: p.Angle}
}
