package gridmap

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/vacmap/vacmap/mapdata"
)

// Pose is a position with a heading, in vacuum coordinates.
type Pose struct {
	X, Y, Angle float64
}

// RoomDef describes a room for encoding.
type RoomDef struct {
	ID             int
	Name           string
	X0, Y0, X1, Y1 float64
	Label          *mapdata.Point
}

// ObstacleDef describes an obstacle for encoding.
type ObstacleDef struct {
	X, Y        float64
	Type        int
	Description string
	Confidence  float64
}

// Map is the encoder input: a pixel grid plus the optional entity
// layers. Width and Height are in grid pixels, Left and Top give the
// grid origin in grid pixels, PixelSize is millimeters per grid pixel.
type Map struct {
	Width, Height  int
	Left, Top      int
	PixelSize      int
	Name           string
	Grid           []byte
	Charger        *Pose
	Vacuum         *Pose
	Goto           *mapdata.Point
	Path           [][]mapdata.Point
	PredictedPath  [][]mapdata.Point
	Rooms          []RoomDef
	Zones          []mapdata.Zone
	Walls          []mapdata.Wall
	NoGoAreas      []mapdata.Area
	NoMoppingAreas []mapdata.Area
	Obstacles      []ObstacleDef
	CleanedRooms   []int
}

type writer struct {
	buf bytes.Buffer
}

func (w *writer) u8(v byte)    { w.buf.WriteByte(v) }
func (w *writer) u16(v uint16) { _ = binary.Write(&w.buf, binary.LittleEndian, v) }
func (w *writer) u32(v uint32) { _ = binary.Write(&w.buf, binary.LittleEndian, v) }
func (w *writer) i32(v int32)  { _ = binary.Write(&w.buf, binary.LittleEndian, v) }
func (w *writer) f32(v float64) {
	w.u32(math.Float32bits(float32(v)))
}

func (w *writer) str(s string) error {
	if len(s) > 255 {
		return fmt.Errorf("string too long for encoding: %d bytes", len(s))
	}
	w.u8(byte(len(s)))
	w.buf.WriteString(s)
	return nil
}

func (w *writer) points(points []mapdata.Point) {
	w.u16(uint16(len(points)))
	for _, p := range points {
		w.f32(p.X)
		w.f32(p.Y)
	}
}

// Encode serializes the map into the gridmap wire format: magic
// followed by the zlib-compressed payload.
func Encode(m *Map) ([]byte, error) {
	if len(m.Grid) != m.Width*m.Height {
		return nil, fmt.Errorf("grid has %d cells, want %d (%dx%d)",
			len(m.Grid), m.Width*m.Height, m.Width, m.Height)
	}
	for i, code := range m.Grid {
		if code == PixelRoomBase {
			return nil, fmt.Errorf("grid cell %d: room id 0 is not a valid pixel code", i)
		}
	}
	pixelSize := m.PixelSize
	if pixelSize == 0 {
		pixelSize = 50
	}

	var w writer
	w.u16(FormatVersion)
	w.u16(uint16(m.Width))
	w.u16(uint16(m.Height))
	w.i32(int32(m.Left))
	w.i32(int32(m.Top))
	w.u16(uint16(pixelSize))
	if err := w.str(m.Name); err != nil {
		return nil, err
	}
	w.buf.Write(m.Grid)

	var sections []sectionData
	if m.Charger != nil {
		sections = append(sections, encodePose(sectionCharger, *m.Charger))
	}
	if m.Vacuum != nil {
		sections = append(sections, encodePose(sectionVacuum, *m.Vacuum))
	}
	if m.Goto != nil {
		var sw writer
		sw.f32(m.Goto.X)
		sw.f32(m.Goto.Y)
		sections = append(sections, sectionData{sectionGoto, sw.buf.Bytes()})
	}
	if len(m.Path) > 0 {
		sections = append(sections, encodePath(sectionPath, m.Path))
	}
	if len(m.PredictedPath) > 0 {
		sections = append(sections, encodePath(sectionPredictedPath, m.PredictedPath))
	}
	if len(m.Rooms) > 0 {
		s, err := encodeRooms(m.Rooms)
		if err != nil {
			return nil, err
		}
		sections = append(sections, s)
	}
	if len(m.Zones) > 0 {
		var sw writer
		sw.u16(uint16(len(m.Zones)))
		for _, z := range m.Zones {
			sw.f32(z.X0)
			sw.f32(z.Y0)
			sw.f32(z.X1)
			sw.f32(z.Y1)
		}
		sections = append(sections, sectionData{sectionZones, sw.buf.Bytes()})
	}
	if len(m.Walls) > 0 {
		var sw writer
		sw.u16(uint16(len(m.Walls)))
		for _, wall := range m.Walls {
			sw.f32(wall.X0)
			sw.f32(wall.Y0)
			sw.f32(wall.X1)
			sw.f32(wall.Y1)
		}
		sections = append(sections, sectionData{sectionWalls, sw.buf.Bytes()})
	}
	if len(m.NoGoAreas) > 0 {
		sections = append(sections, encodeAreas(sectionNoGoAreas, m.NoGoAreas))
	}
	if len(m.NoMoppingAreas) > 0 {
		sections = append(sections, encodeAreas(sectionNoMopAreas, m.NoMoppingAreas))
	}
	if len(m.Obstacles) > 0 {
		s, err := encodeObstacles(m.Obstacles)
		if err != nil {
			return nil, err
		}
		sections = append(sections, s)
	}
	if len(m.CleanedRooms) > 0 {
		var sw writer
		sw.u16(uint16(len(m.CleanedRooms)))
		for _, id := range m.CleanedRooms {
			sw.u8(byte(id))
		}
		sections = append(sections, sectionData{sectionCleanedRooms, sw.buf.Bytes()})
	}

	w.u8(byte(len(sections)))
	for _, s := range sections {
		w.u8(s.kind)
		w.u32(uint32(len(s.body)))
		w.buf.Write(s.body)
	}

	var out bytes.Buffer
	out.WriteString(Magic)
	zw := zlib.NewWriter(&out)
	if _, err := zw.Write(w.buf.Bytes()); err != nil {
		return nil, fmt.Errorf("compress payload: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("compress payload: %w", err)
	}
	return out.Bytes(), nil
}

type sectionData struct {
	kind byte
	body []byte
}

func encodePose(kind byte, p Pose) sectionData {
	var sw writer
	sw.f32(p.X)
	sw.f32(p.Y)
	sw.f32(p.Angle)
	return sectionData{kind, sw.buf.Bytes()}
}

func encodePath(kind byte, subpaths [][]mapdata.Point) sectionData {
	var sw writer
	sw.u16(uint16(len(subpaths)))
	for _, sub := range subpaths {
		sw.points(sub)
	}
	return sectionData{kind, sw.buf.Bytes()}
}

func encodeAreas(kind byte, areas []mapdata.Area) sectionData {
	var sw writer
	sw.u16(uint16(len(areas)))
	for _, a := range areas {
		sw.f32(a.X0)
		sw.f32(a.Y0)
		sw.f32(a.X1)
		sw.f32(a.Y1)
		sw.f32(a.X2)
		sw.f32(a.Y2)
		sw.f32(a.X3)
		sw.f32(a.Y3)
	}
	return sectionData{kind, sw.buf.Bytes()}
}

func encodeRooms(rooms []RoomDef) (sectionData, error) {
	var sw writer
	sw.u16(uint16(len(rooms)))
	for _, room := range rooms {
		sw.u8(byte(room.ID))
		if err := sw.str(room.Name); err != nil {
			return sectionData{}, err
		}
		sw.f32(room.X0)
		sw.f32(room.Y0)
		sw.f32(room.X1)
		sw.f32(room.Y1)
		if room.Label != nil {
			sw.u8(1)
			sw.f32(room.Label.X)
			sw.f32(room.Label.Y)
		} else {
			sw.u8(0)
		}
	}
	return sectionData{sectionRooms, sw.buf.Bytes()}, nil
}

func encodeObstacles(obstacles []ObstacleDef) (sectionData, error) {
	var sw writer
	sw.u16(uint16(len(obstacles)))
	for _, o := range obstacles {
		sw.f32(o.X)
		sw.f32(o.Y)
		sw.u8(byte(o.Type))
		if err := sw.str(o.Description); err != nil {
			return sectionData{}, err
		}
		sw.f32(o.Confidence)
	}
	return sectionData{sectionObstacles, sw.buf.Bytes()}, nil
}
