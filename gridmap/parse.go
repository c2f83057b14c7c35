package gridmap

import (
	"bytes"
	"compress/zlib"
	"image"
	"io"

	"github.com/rs/zerolog"

	"github.com/vacmap/vacmap/config"
	"github.com/vacmap/vacmap/internal/log"
	"github.com/vacmap/vacmap/mapdata"
	"github.com/vacmap/vacmap/parser"
	"github.com/vacmap/vacmap/render"
)

// Parser parses gridmap payloads into map data.
type Parser struct {
	*parser.Base
	log zerolog.Logger
}

// NewParser creates a gridmap parser with the given render
// configuration.
func NewParser(
	palette *config.Palette,
	sizes *config.Sizes,
	drawables []config.Drawable,
	imageConfig config.ImageConfig,
	texts []config.Text,
) *Parser {
	return &Parser{
		Base: parser.NewBase(palette, sizes, drawables, imageConfig, texts),
		log:  log.WithComponent("gridmap"),
	}
}

// Unpack strips the magic and decompresses the zlib payload.
func (p *Parser) Unpack(raw []byte) ([]byte, error) {
	if len(raw) < len(Magic) || string(raw[:len(Magic)]) != Magic {
		return nil, &ParseError{Code: ErrCodeBadMagic, Message: "not a gridmap payload", Offset: -1}
	}
	zr, err := zlib.NewReader(bytes.NewReader(raw[len(Magic):]))
	if err != nil {
		return nil, &ParseError{Code: ErrCodeBadPayload, Message: "bad zlib stream: " + err.Error(), Offset: -1}
	}
	defer zr.Close()
	payload, err := io.ReadAll(zr)
	if err != nil {
		return nil, &ParseError{Code: ErrCodeBadPayload, Message: "bad zlib stream: " + err.Error(), Offset: -1}
	}
	return payload, nil
}

// Parse turns a decompressed payload into map data, building the base
// map image through the configured palette.
func (p *Parser) Parse(payload []byte) (*mapdata.MapData, error) {
	r := &reader{data: payload}

	version, err := r.u16("version")
	if err != nil {
		return nil, err
	}
	if version != FormatVersion {
		return nil, &ParseError{
			Code:    ErrCodeBadVersion,
			Message: "unsupported format version",
			Offset:  0,
		}
	}
	width, err := r.u16("width")
	if err != nil {
		return nil, err
	}
	height, err := r.u16("height")
	if err != nil {
		return nil, err
	}
	left, err := r.i32("left")
	if err != nil {
		return nil, err
	}
	top, err := r.i32("top")
	if err != nil {
		return nil, err
	}
	pixelSize, err := r.u16("pixel size")
	if err != nil {
		return nil, err
	}
	name, err := r.str("map name")
	if err != nil {
		return nil, err
	}
	grid, err := r.bytes(int(width)*int(height), "pixel grid")
	if err != nil {
		return nil, err
	}

	ps := float64(pixelSize)
	m := mapdata.New(0, ps)
	m.MapName = name

	sectionCount, err := r.u8("section count")
	if err != nil {
		return nil, err
	}
	for i := 0; i < int(sectionCount); i++ {
		if err := p.parseSection(r, m); err != nil {
			return nil, err
		}
	}

	transform := func(pt mapdata.Point) mapdata.Point { return pt.Div(ps) }
	img := p.buildImage(grid, int(width), int(height))
	m.Image = mapdata.NewImageData(
		int(width)*int(height), int(top), int(left), int(height), int(width),
		p.ImageConfig(), img, transform, nil)

	p.markCarpets(m, grid)
	p.locateVacuumRoom(m, grid, int(width), int(height), int(left), int(top), ps)

	p.log.Debug().
		Str("map", name).
		Int("width", int(width)).
		Int("height", int(height)).
		Int("rooms", len(m.Rooms)).
		Msg("parsed gridmap payload")
	return m, nil
}

func (p *Parser) parseSection(r *reader, m *mapdata.MapData) error {
	kind, err := r.u8("section type")
	if err != nil {
		return err
	}
	length, err := r.u32Len("section length")
	if err != nil {
		return err
	}
	if r.remaining() < length {
		return &ParseError{Code: ErrCodeBadSection, Message: "section length exceeds payload", Offset: r.off}
	}
	// Bound the reader to the section so a malformed body cannot run
	// into the next section.
	sr := &reader{data: r.data[:r.off+length], off: r.off}
	r.off += length

	switch kind {
	case sectionCharger:
		pose, err := parsePose(sr)
		if err != nil {
			return err
		}
		pt := mapdata.PointWithAngle(pose.X, pose.Y, pose.Angle)
		m.Charger = &pt
	case sectionVacuum:
		pose, err := parsePose(sr)
		if err != nil {
			return err
		}
		pt := mapdata.PointWithAngle(pose.X, pose.Y, pose.Angle)
		m.VacuumPosition = &pt
	case sectionGoto:
		x, err := sr.f32("goto x")
		if err != nil {
			return err
		}
		y, err := sr.f32("goto y")
		if err != nil {
			return err
		}
		m.Goto = []mapdata.Point{{X: x, Y: y}}
	case sectionPath:
		path, err := parsePathSection(sr)
		if err != nil {
			return err
		}
		m.Path = path
	case sectionPredictedPath:
		path, err := parsePathSection(sr)
		if err != nil {
			return err
		}
		m.PredictedPath = path
	case sectionRooms:
		rooms, err := parseRooms(sr)
		if err != nil {
			return err
		}
		m.Rooms = rooms
	case sectionZones:
		zones, err := parseZones(sr)
		if err != nil {
			return err
		}
		m.Zones = zones
	case sectionWalls:
		walls, err := parseWalls(sr)
		if err != nil {
			return err
		}
		m.Walls = walls
	case sectionNoGoAreas:
		areas, err := parseAreas(sr)
		if err != nil {
			return err
		}
		m.NoGoAreas = areas
	case sectionNoMopAreas:
		areas, err := parseAreas(sr)
		if err != nil {
			return err
		}
		m.NoMoppingAreas = areas
	case sectionObstacles:
		obstacles, err := parseObstacles(sr)
		if err != nil {
			return err
		}
		m.Obstacles = obstacles
	case sectionCleanedRooms:
		count, err := sr.u16("cleaned room count")
		if err != nil {
			return err
		}
		cleaned := mapdata.IntSet{}
		for i := 0; i < int(count); i++ {
			id, err := sr.u8("cleaned room id")
			if err != nil {
				return err
			}
			cleaned.Add(int(id))
		}
		m.CleanedRooms = cleaned
	default:
		// Unknown sections are skipped for forward compatibility.
		p.log.Debug().Int("type", int(kind)).Int("length", length).Msg("skipping unknown section")
	}
	return nil
}

func parsePose(r *reader) (Pose, error) {
	x, err := r.f32("pose x")
	if err != nil {
		return Pose{}, err
	}
	y, err := r.f32("pose y")
	if err != nil {
		return Pose{}, err
	}
	angle, err := r.f32("pose angle")
	if err != nil {
		return Pose{}, err
	}
	return Pose{X: x, Y: y, Angle: angle}, nil
}

func parsePathSection(r *reader) (*mapdata.Path, error) {
	subpathCount, err := r.u16("subpath count")
	if err != nil {
		return nil, err
	}
	points := make([][]mapdata.Point, 0, subpathCount)
	total := 0
	for i := 0; i < int(subpathCount); i++ {
		pointCount, err := r.u16("point count")
		if err != nil {
			return nil, err
		}
		sub := make([]mapdata.Point, 0, pointCount)
		for j := 0; j < int(pointCount); j++ {
			x, err := r.f32("path x")
			if err != nil {
				return nil, err
			}
			y, err := r.f32("path y")
			if err != nil {
				return nil, err
			}
			sub = append(sub, mapdata.Point{X: x, Y: y})
		}
		total += len(sub)
		points = append(points, sub)
	}
	return mapdata.NewPath(&total, nil, nil, points), nil
}

func parseRooms(r *reader) (map[int]mapdata.Room, error) {
	count, err := r.u16("room count")
	if err != nil {
		return nil, err
	}
	rooms := make(map[int]mapdata.Room, count)
	for i := 0; i < int(count); i++ {
		id, err := r.u8("room id")
		if err != nil {
			return nil, err
		}
		name, err := r.str("room name")
		if err != nil {
			return nil, err
		}
		var coords [4]float64
		for c := range coords {
			coords[c], err = r.f32("room bounds")
			if err != nil {
				return nil, err
			}
		}
		room := mapdata.Room{
			Zone:   mapdata.Zone{X0: coords[0], Y0: coords[1], X1: coords[2], Y1: coords[3]},
			Number: int(id),
			Name:   name,
		}
		hasLabel, err := r.u8("room label flag")
		if err != nil {
			return nil, err
		}
		if hasLabel != 0 {
			x, err := r.f32("room label x")
			if err != nil {
				return nil, err
			}
			y, err := r.f32("room label y")
			if err != nil {
				return nil, err
			}
			room.PosX = &x
			room.PosY = &y
		}
		rooms[int(id)] = room
	}
	return rooms, nil
}

func parseZones(r *reader) ([]mapdata.Zone, error) {
	count, err := r.u16("zone count")
	if err != nil {
		return nil, err
	}
	zones := make([]mapdata.Zone, 0, count)
	for i := 0; i < int(count); i++ {
		var coords [4]float64
		for c := range coords {
			coords[c], err = r.f32("zone bounds")
			if err != nil {
				return nil, err
			}
		}
		zones = append(zones, mapdata.Zone{X0: coords[0], Y0: coords[1], X1: coords[2], Y1: coords[3]})
	}
	return zones, nil
}

func parseWalls(r *reader) ([]mapdata.Wall, error) {
	count, err := r.u16("wall count")
	if err != nil {
		return nil, err
	}
	walls := make([]mapdata.Wall, 0, count)
	for i := 0; i < int(count); i++ {
		var coords [4]float64
		for c := range coords {
			coords[c], err = r.f32("wall endpoints")
			if err != nil {
				return nil, err
			}
		}
		walls = append(walls, mapdata.Wall{X0: coords[0], Y0: coords[1], X1: coords[2], Y1: coords[3]})
	}
	return walls, nil
}

func parseAreas(r *reader) ([]mapdata.Area, error) {
	count, err := r.u16("area count")
	if err != nil {
		return nil, err
	}
	areas := make([]mapdata.Area, 0, count)
	for i := 0; i < int(count); i++ {
		var coords [8]float64
		for c := range coords {
			coords[c], err = r.f32("area corners")
			if err != nil {
				return nil, err
			}
		}
		areas = append(areas, mapdata.Area{
			X0: coords[0], Y0: coords[1],
			X1: coords[2], Y1: coords[3],
			X2: coords[4], Y2: coords[5],
			X3: coords[6], Y3: coords[7],
		})
	}
	return areas, nil
}

func parseObstacles(r *reader) ([]mapdata.Obstacle, error) {
	count, err := r.u16("obstacle count")
	if err != nil {
		return nil, err
	}
	obstacles := make([]mapdata.Obstacle, 0, count)
	for i := 0; i < int(count); i++ {
		x, err := r.f32("obstacle x")
		if err != nil {
			return nil, err
		}
		y, err := r.f32("obstacle y")
		if err != nil {
			return nil, err
		}
		kind, err := r.u8("obstacle type")
		if err != nil {
			return nil, err
		}
		description, err := r.str("obstacle description")
		if err != nil {
			return nil, err
		}
		confidence, err := r.f32("obstacle confidence")
		if err != nil {
			return nil, err
		}
		kindInt := int(kind)
		obstacles = append(obstacles, mapdata.NewObstacle(x, y, mapdata.ObstacleDetails{
			Type:            &kindInt,
			Description:     description,
			ConfidenceLevel: &confidence,
		}))
	}
	return obstacles, nil
}

// buildImage colors the pixel grid through the palette, applies the
// configured trim crop and scales the result.
func (p *Parser) buildImage(grid []byte, width, height int) *image.RGBA {
	palette := p.Palette()
	outside := palette.Color(config.ColorMapOutside)
	floor := palette.Color(config.ColorMapInside)
	wall := palette.Color(config.ColorMapWall)
	carpet := palette.Color(config.ColorCarpets)

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			code := grid[y*width+x]
			var c config.Color
			switch {
			case code == PixelOutside:
				c = outside
			case code == PixelFloor:
				c = floor
			case code == PixelWall:
				c = wall
			case code == PixelCarpet:
				c = carpet
			case code > PixelRoomBase:
				c = palette.RoomColor(int(code - PixelRoomBase))
			default:
				c = palette.Color(config.ColorUnknown)
			}
			img.Set(x, y, c)
		}
	}

	cfg := p.ImageConfig()
	trimLeft := int(cfg.Trim.Left * float64(width) / 100)
	trimRight := int(cfg.Trim.Right * float64(width) / 100)
	trimTop := int(cfg.Trim.Top * float64(height) / 100)
	trimBottom := int(cfg.Trim.Bottom * float64(height) / 100)
	if trimLeft+trimRight+trimTop+trimBottom > 0 {
		cropped := image.NewRGBA(image.Rect(0, 0, width-trimLeft-trimRight, height-trimTop-trimBottom))
		for y := 0; y < cropped.Bounds().Dy(); y++ {
			for x := 0; x < cropped.Bounds().Dx(); x++ {
				cropped.SetRGBA(x, y, img.RGBAAt(x+trimLeft, y+trimTop))
			}
		}
		img = cropped
	}
	return render.ScaleNearest(img, cfg.Scale)
}

// markCarpets records the grid indexes of carpet pixels.
func (p *Parser) markCarpets(m *mapdata.MapData, grid []byte) {
	for i, code := range grid {
		if code == PixelCarpet {
			m.CarpetMap.Add(i)
		}
	}
}

// locateVacuumRoom resolves which room the vacuum is in from the grid
// pixel under its position.
func (p *Parser) locateVacuumRoom(m *mapdata.MapData, grid []byte, width, height, left, top int, pixelSize float64) {
	if m.VacuumPosition == nil {
		return
	}
	gx := int(m.VacuumPosition.X/pixelSize) - left
	gyFromBottom := int(m.VacuumPosition.Y/pixelSize) - top
	gy := height - 1 - gyFromBottom
	if gx < 0 || gx >= width || gy < 0 || gy >= height {
		return
	}
	code := grid[gy*width+gx]
	if code <= PixelRoomBase {
		return
	}
	roomID := int(code - PixelRoomBase)
	m.VacuumRoom = &roomID
	if room, ok := m.Rooms[roomID]; ok {
		m.VacuumRoomName = room.Name
	}
}
