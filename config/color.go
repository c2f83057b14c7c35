package config

import (
	"fmt"
	"image/color"
	"math/rand/v2"
	"strconv"
	"strings"
)

// Color is a non-premultiplied RGBA color. Map sources and settings
// files specify colors either opaque (alpha 255) or translucent;
// translucent colors force the renderer onto a separate layer that is
// alpha-composited over the map image.
type Color = color.NRGBA

// RGB creates an opaque color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 255}
}

// RGBA creates a color with an explicit alpha.
func RGBA(r, g, b, a uint8) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// IsTranslucent reports whether drawing with c requires alpha
// compositing.
func IsTranslucent(colors ...Color) bool {
	for _, c := range colors {
		if c.A != 255 {
			return true
		}
	}
	return false
}

// ParseColor parses a "#RRGGBB" or "#RRGGBBAA" hex string.
func ParseColor(s string) (Color, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return Color{}, fmt.Errorf("invalid color %q: want #RRGGBB or #RRGGBBAA", s)
	}
	v, err := strconv.ParseUint(hex, 16, 64)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	if len(hex) == 6 {
		return RGB(uint8(v>>16), uint8(v>>8), uint8(v)), nil
	}
	return RGBA(uint8(v>>24), uint8(v>>16), uint8(v>>8), uint8(v)), nil
}

// FormatColor renders a color as a hex string, using the short form
// for opaque colors.
func FormatColor(c Color) string {
	if c.A == 255 {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// ColorName identifies a color of a supported map element. The values
// double as keys in render-settings files.
type ColorName string

// Colors of supported map elements.
const (
	ColorCarpets                  ColorName = "color_carpets"
	ColorCharger                  ColorName = "color_charger"
	ColorChargerOutline           ColorName = "color_charger_outline"
	ColorCleanedArea              ColorName = "color_cleaned_area"
	ColorGotoPath                 ColorName = "color_goto_path"
	ColorGreyWall                 ColorName = "color_grey_wall"
	ColorIgnoredObstacle          ColorName = "color_ignored_obstacle"
	ColorIgnoredObstacleWithPhoto ColorName = "color_ignored_obstacle_with_photo"
	ColorMapInside                ColorName = "color_map_inside"
	ColorMapOutside               ColorName = "color_map_outside"
	ColorMapWall                  ColorName = "color_map_wall"
	ColorMapWallV2                ColorName = "color_map_wall_v2"
	ColorMopPath                  ColorName = "color_mop_path"
	ColorNewDiscoveredArea        ColorName = "color_new_discovered_area"
	ColorNoCarpetZones            ColorName = "color_no_carpet_zones"
	ColorNoCarpetZonesOutline     ColorName = "color_no_carpet_zones_outline"
	ColorNoGoZones                ColorName = "color_no_go_zones"
	ColorNoGoZonesOutline         ColorName = "color_no_go_zones_outline"
	ColorNoMoppingZones           ColorName = "color_no_mop_zones"
	ColorNoMoppingZonesOutline    ColorName = "color_no_mop_zones_outline"
	ColorObstacle                 ColorName = "color_obstacle"
	ColorObstacleWithPhoto        ColorName = "color_obstacle_with_photo"
	ColorPath                     ColorName = "color_path"
	ColorPredictedPath            ColorName = "color_predicted_path"
	ColorRobo                     ColorName = "color_robo"
	ColorRoboOutline              ColorName = "color_robo_outline"
	ColorRoomNames                ColorName = "color_room_names"
	ColorScan                     ColorName = "color_scan"
	ColorUnknown                  ColorName = "color_unknown"
	ColorVirtualWalls             ColorName = "color_virtual_walls"
	ColorZones                    ColorName = "color_zones"
	ColorZonesOutline             ColorName = "color_zones_outline"
)

// defaultColors is the built-in color table.
var defaultColors = map[ColorName]Color{
	ColorMapInside:                RGB(32, 115, 185),
	ColorMapOutside:               RGB(19, 87, 148),
	ColorMapWall:                  RGB(100, 196, 254),
	ColorMapWallV2:                RGB(93, 109, 126),
	ColorGreyWall:                 RGB(93, 109, 126),
	ColorCleanedArea:              RGBA(127, 127, 127, 127),
	ColorPath:                     RGB(147, 194, 238),
	ColorGotoPath:                 RGB(0, 255, 0),
	ColorPredictedPath:            RGB(255, 255, 0),
	ColorZones:                    RGBA(0xAD, 0xD8, 0xFF, 0x8F),
	ColorZonesOutline:             RGB(0xAD, 0xD8, 0xFF),
	ColorVirtualWalls:             RGB(255, 0, 0),
	ColorNewDiscoveredArea:        RGB(64, 64, 64),
	ColorCarpets:                  RGB(0xA9, 0xF7, 0xA9),
	ColorNoCarpetZones:            RGBA(255, 33, 55, 127),
	ColorNoCarpetZonesOutline:     RGB(255, 0, 0),
	ColorNoGoZones:                RGBA(255, 33, 55, 127),
	ColorNoGoZonesOutline:         RGB(255, 0, 0),
	ColorNoMoppingZones:           RGBA(163, 130, 211, 127),
	ColorNoMoppingZonesOutline:    RGB(163, 130, 211),
	ColorCharger:                  RGBA(0x66, 0xFE, 0xDA, 0x7F),
	ColorChargerOutline:           RGBA(0x66, 0xFE, 0xDA, 0x7F),
	ColorRobo:                     RGB(0xFF, 0xFF, 0xFF),
	ColorRoboOutline:              RGB(0, 0, 0),
	ColorRoomNames:                RGB(0, 0, 0),
	ColorObstacle:                 RGBA(0, 0, 0, 128),
	ColorIgnoredObstacle:          RGBA(0, 0, 0, 128),
	ColorObstacleWithPhoto:        RGBA(0, 0, 0, 128),
	ColorIgnoredObstacleWithPhoto: RGBA(0, 0, 0, 128),
	ColorUnknown:                  RGB(0, 0, 0),
	ColorScan:                     RGB(0xDF, 0xDF, 0xDF),
}

// defaultRoomColors is the built-in 16-entry room color table.
var defaultRoomColors = map[int]Color{
	1:  RGB(240, 178, 122),
	2:  RGB(133, 193, 233),
	3:  RGB(217, 136, 128),
	4:  RGB(52, 152, 219),
	5:  RGB(205, 97, 85),
	6:  RGB(243, 156, 18),
	7:  RGB(88, 214, 141),
	8:  RGB(245, 176, 65),
	9:  RGB(252, 212, 81),
	10: RGB(72, 201, 176),
	11: RGB(84, 153, 199),
	12: RGB(133, 193, 233),
	13: RGB(245, 176, 65),
	14: RGB(82, 190, 128),
	15: RGB(72, 201, 176),
	16: RGB(165, 105, 189),
}

// KnownColorNames returns every supported color identifier. Used by
// settings validation. ColorMopPath has no built-in default, so it is
// listed alongside the default table.
func KnownColorNames() []ColorName {
	names := make([]ColorName, 0, len(defaultColors)+1)
	for name := range defaultColors {
		names = append(names, name)
	}
	names = append(names, ColorMopPath)
	return names
}

// Palette resolves element and room colors, preferring per-instance
// overrides over the built-in tables.
type Palette struct {
	colors     map[ColorName]Color
	roomColors map[int]Color
}

// NewPalette creates a palette with the given overrides. Either map
// may be nil.
func NewPalette(colors map[ColorName]Color, roomColors map[int]Color) *Palette {
	p := &Palette{
		colors:     map[ColorName]Color{},
		roomColors: map[int]Color{},
	}
	for name, c := range colors {
		p.colors[name] = c
	}
	for id, c := range roomColors {
		p.roomColors[id] = c
	}
	return p
}

// Color returns the color for the given element, falling back to the
// built-in table and finally to the unknown-element color.
func (p *Palette) Color(name ColorName) Color {
	if c, ok := p.colors[name]; ok {
		return c
	}
	if c, ok := defaultColors[name]; ok {
		return c
	}
	return defaultColors[ColorUnknown]
}

// RoomColor returns the color for a room id. Ids beyond the 16-entry
// table wrap around; ids below 1 fall back to a random table entry.
func (p *Palette) RoomColor(roomID int) Color {
	if roomID > len(defaultRoomColors) {
		roomID = (roomID-1)%len(defaultRoomColors) + 1
	}
	if c, ok := p.roomColors[roomID]; ok {
		return c
	}
	if c, ok := defaultRoomColors[roomID]; ok {
		return c
	}
	return defaultRoomColors[rand.IntN(len(defaultRoomColors))+1]
}
