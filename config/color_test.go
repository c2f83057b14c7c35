package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Color
		wantErr bool
	}{
		{"opaque", "#2073b9", RGB(32, 115, 185), false},
		{"with alpha", "#ff21377f", RGBA(255, 33, 55, 127), false},
		{"uppercase", "#ADD8FF", RGB(0xAD, 0xD8, 0xFF), false},
		{"no hash", "2073b9", RGB(32, 115, 185), false},
		{"too short", "#fff", Color{}, true},
		{"not hex", "#zzzzzz", Color{}, true},
		{"empty", "", Color{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseColor(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatColorRoundTrip(t *testing.T) {
	assert.Equal(t, "#2073b9", FormatColor(RGB(32, 115, 185)))
	assert.Equal(t, "#ff21377f", FormatColor(RGBA(255, 33, 55, 127)))

	parsed, err := ParseColor(FormatColor(RGBA(1, 2, 3, 4)))
	require.NoError(t, err)
	assert.Equal(t, RGBA(1, 2, 3, 4), parsed)
}

func TestIsTranslucent(t *testing.T) {
	assert.False(t, IsTranslucent(RGB(1, 2, 3)))
	assert.True(t, IsTranslucent(RGBA(1, 2, 3, 254)))
	assert.True(t, IsTranslucent(RGB(1, 2, 3), RGBA(0, 0, 0, 0)))
}

func TestPaletteColorFallbacks(t *testing.T) {
	p := NewPalette(map[ColorName]Color{ColorPath: RGB(1, 2, 3)}, nil)

	// Override wins over the built-in table.
	assert.Equal(t, RGB(1, 2, 3), p.Color(ColorPath))
	// Built-in table serves everything else.
	assert.Equal(t, RGB(32, 115, 185), p.Color(ColorMapInside))
	// Unknown names resolve to the unknown-element color.
	assert.Equal(t, RGB(0, 0, 0), p.Color(ColorName("color_bogus")))
}

func TestPaletteRoomColor(t *testing.T) {
	p := NewPalette(nil, map[int]Color{2: RGB(9, 9, 9)})

	assert.Equal(t, RGB(9, 9, 9), p.RoomColor(2))
	assert.Equal(t, RGB(240, 178, 122), p.RoomColor(1))
	// Ids beyond the table wrap around: 17 -> 1.
	assert.Equal(t, RGB(240, 178, 122), p.RoomColor(17))
	assert.Equal(t, RGB(9, 9, 9), p.RoomColor(18))
}

func TestKnownColorNamesCoverDefaults(t *testing.T) {
	names := KnownColorNames()
	assert.Len(t, names, len(defaultColors)+1)
	assert.Contains(t, names, ColorMapOutside)
	// Configurable even though it has no default.
	assert.Contains(t, names, ColorMopPath)
}
