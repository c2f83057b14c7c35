package mapdata

import "encoding/json"

// Zone is an axis-aligned rectangle in vacuum coordinates, given by
// two opposite corners.
type Zone struct {
	X0 float64 `json:"x0"`
	Y0 float64 `json:"y0"`
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
}

// AsArea expands the zone into a four-corner area.
func (z Zone) AsArea() Area {
	return Area{
		X0: z.X0, Y0: z.Y0,
		X1: z.X0, Y1: z.Y1,
		X2: z.X1, Y2: z.Y1,
		X3: z.X1, Y3: z.Y0,
	}
}

// Room is a named zone with an optional label position.
type Room struct {
	Zone
	Number int      `json:"number"`
	Name   string   `json:"name,omitempty"`
	PosX   *float64 `json:"pos_x,omitempty"`
	PosY   *float64 `json:"pos_y,omitempty"`
}

// LabelPoint returns where the room name should be drawn, or nil when
// the room has no name or no label position.
func (r Room) LabelPoint() *Point {
	if r.PosX == nil || r.PosY == nil || r.Name == "" {
		return nil
	}
	return &Point{X: *r.PosX, Y: *r.PosY}
}

// Wall is a virtual wall segment.
type Wall struct {
	X0 float64 `json:"x0"`
	Y0 float64 `json:"y0"`
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
}

// ToImage converts both endpoints to image pixels.
func (w Wall) ToImage(dim ImageDimensions) Wall {
	p0 := Point{X: w.X0, Y: w.Y0}.ToImage(dim)
	p1 := Point{X: w.X1, Y: w.Y1}.ToImage(dim)
	return Wall{X0: p0.X, Y0: p0.Y, X1: p1.X, Y1: p1.Y}
}

// AsList returns the endpoints as a flat coordinate list.
func (w Wall) AsList() []float64 {
	return []float64{w.X0, w.Y0, w.X1, w.Y1}
}

// Area is a four-corner polygon in vacuum coordinates.
type Area struct {
	X0 float64 `json:"x0"`
	Y0 float64 `json:"y0"`
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
	X3 float64 `json:"x3"`
	Y3 float64 `json:"y3"`
}

// ToImage converts all four corners to image pixels.
func (a Area) ToImage(dim ImageDimensions) Area {
	p0 := Point{X: a.X0, Y: a.Y0}.ToImage(dim)
	p1 := Point{X: a.X1, Y: a.Y1}.ToImage(dim)
	p2 := Point{X: a.X2, Y: a.Y2}.ToImage(dim)
	p3 := Point{X: a.X3, Y: a.Y3}.ToImage(dim)
	return Area{
		X0: p0.X, Y0: p0.Y,
		X1: p1.X, Y1: p1.Y,
		X2: p2.X, Y2: p2.Y,
		X3: p3.X, Y3: p3.Y,
	}
}

// AsList returns the corners as a flat coordinate list.
func (a Area) AsList() []float64 {
	return []float64{a.X0, a.Y0, a.X1, a.Y1, a.X2, a.Y2, a.X3, a.Y3}
}

// ObstacleDetails is the metadata a vacuum attaches to a detected
// obstacle.
type ObstacleDetails struct {
	Type            *int     `json:"type,omitempty"`
	Description     string   `json:"description,omitempty"`
	ConfidenceLevel *float64 `json:"confidence_level,omitempty"`
	PhotoName       string   `json:"photo_name,omitempty"`
}

// Obstacle is a detected obstacle: a position plus its metadata.
type Obstacle struct {
	Point
	Details ObstacleDetails
}

// NewObstacle creates an obstacle at the given position.
func NewObstacle(x, y float64, details ObstacleDetails) Obstacle {
	return Obstacle{Point: Point{X: x, Y: y}, Details: details}
}

// MarshalJSON flattens the obstacle details into the point fields.
func (o Obstacle) MarshalJSON() ([]byte, error) {
	out := map[string]any{"x": o.X, "y": o.Y}
	if o.Angle != nil {
		out["a"] = *o.Angle
	}
	if o.Details.Type != nil {
		out["type"] = *o.Details.Type
	}
	if o.Details.Description != "" {
		out["description"] = o.Details.Description
	}
	if o.Details.ConfidenceLevel != nil {
		out["confidence_level"] = *o.Details.ConfidenceLevel
	}
	if o.Details.PhotoName != "" {
		out["photo_name"] = o.Details.PhotoName
	}
	return json.Marshal(out)
}

// Path is a sequence of sub-paths traveled or planned by the vacuum.
type Path struct {
	PointLength *int `json:"point_length,omitempty"`
	PointSize   *int `json:"point_size,omitempty"`
	Angle       *int `json:"angle,omitempty"`
	// Points holds the sub-paths; a line is drawn through each.
	Points [][]Point `json:"path"`
}

// NewPath creates a path with optional metadata fields.
func NewPath(pointLength, pointSize, angle *int, points [][]Point) *Path {
	return &Path{PointLength: pointLength, PointSize: pointSize, Angle: angle, Points: points}
}
