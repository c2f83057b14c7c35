package mapdata

import (
	"encoding/json"
	"sort"
)

// IntSet is a set of ints that serializes as a sorted JSON array.
type IntSet map[int]struct{}

// NewIntSet creates a set holding the given values.
func NewIntSet(values ...int) IntSet {
	s := IntSet{}
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

// Add inserts a value into the set.
func (s IntSet) Add(v int) { s[v] = struct{}{} }

// Contains reports whether the set holds v.
func (s IntSet) Contains(v int) bool {
	_, ok := s[v]
	return ok
}

// Sorted returns the set's values in ascending order.
func (s IntSet) Sorted() []int {
	values := make([]int, 0, len(s))
	for v := range s {
		values = append(values, v)
	}
	sort.Ints(values)
	return values
}

// MarshalJSON serializes the set as a sorted array for deterministic
// output.
func (s IntSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

// UnmarshalJSON reads the set from a JSON array.
func (s *IntSet) UnmarshalJSON(data []byte) error {
	var values []int
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}
	*s = NewIntSet(values...)
	return nil
}

// CalibrationPoint pairs a vacuum coordinate with its position on the
// generated image. Three of them are enough for a consumer to derive
// the affine mapping between the two spaces.
type CalibrationPoint struct {
	Vacuum Point `json:"vacuum"`
	Map    Point `json:"map"`
}

// MapData is the result of parsing a raw map. Every layer is optional;
// concrete parsers populate what their format provides.
type MapData struct {
	calibrationCenter float64
	calibrationDiff   float64

	Charger                   *Point          `json:"charger,omitempty"`
	Goto                      []Point         `json:"goto,omitempty"`
	GotoPath                  *Path           `json:"goto_path,omitempty"`
	Image                     *ImageData      `json:"image,omitempty"`
	NoGoAreas                 []Area          `json:"no_go_areas,omitempty"`
	NoMoppingAreas            []Area          `json:"no_mopping_areas,omitempty"`
	NoCarpetAreas             []Area          `json:"no_carpet_areas,omitempty"`
	CarpetMap                 IntSet          `json:"carpet_map,omitempty"`
	Obstacles                 []Obstacle      `json:"obstacles,omitempty"`
	IgnoredObstacles          []Obstacle      `json:"ignored_obstacles,omitempty"`
	ObstaclesWithPhoto        []Obstacle      `json:"obstacles_with_photo,omitempty"`
	IgnoredObstaclesWithPhoto []Obstacle      `json:"ignored_obstacles_with_photo,omitempty"`
	Path                      *Path           `json:"path,omitempty"`
	PredictedPath             *Path           `json:"predicted_path,omitempty"`
	MopPath                   *Path           `json:"mop_path,omitempty"`
	Rooms                     map[int]Room    `json:"rooms,omitempty"`
	VacuumPosition            *Point          `json:"vacuum_position,omitempty"`
	VacuumRoom                *int            `json:"vacuum_room,omitempty"`
	VacuumRoomName            string          `json:"vacuum_room_name,omitempty"`
	Walls                     []Wall          `json:"walls,omitempty"`
	Zones                     []Zone          `json:"zones,omitempty"`
	CleanedRooms              IntSet          `json:"cleaned_rooms,omitempty"`
	MapName                   string          `json:"map_name,omitempty"`
}

// New creates a MapData with the given calibration parameters. Both
// may be zero for formats without calibration.
func New(calibrationCenter, calibrationDiff float64) *MapData {
	return &MapData{
		calibrationCenter: calibrationCenter,
		calibrationDiff:   calibrationDiff,
		CarpetMap:         IntSet{},
	}
}

// Calibration returns the three calibration points mapping vacuum
// coordinates onto the generated image, or nil when there is no image
// to calibrate against.
func (m *MapData) Calibration() []CalibrationPoint {
	if m.Image == nil || m.Image.Empty {
		return nil
	}
	c := m.calibrationCenter
	d := m.calibrationDiff
	points := []Point{
		{X: c, Y: c},
		{X: c + d*10, Y: c},
		{X: c, Y: c + d*10},
	}
	calibration := make([]CalibrationPoint, 0, len(points))
	for _, p := range points {
		img := p.ToImage(m.Image.Dimensions).Rotated(m.Image.Dimensions)
		calibration = append(calibration, CalibrationPoint{
			Vacuum: Point{X: p.X, Y: p.Y},
			Map:    Point{X: img.X, Y: img.Y},
		})
	}
	return calibration
}
