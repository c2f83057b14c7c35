package cli

import (
	"bytes"
	"encoding/json"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vacmap/vacmap/gridmap"
	"github.com/vacmap/vacmap/mapdata"
)

// writeMapFile encodes a small gridmap payload into a temp file.
func writeMapFile(t *testing.T) string {
	t.Helper()
	grid := make([]byte, 8*8)
	for i := range grid {
		grid[i] = gridmap.PixelFloor
	}
	grid[0] = gridmap.PixelWall
	raw, err := gridmap.Encode(&gridmap.Map{
		Width:     8,
		Height:    8,
		PixelSize: 50,
		Name:      "testmap",
		Grid:      grid,
		Charger:   &gridmap.Pose{X: 200, Y: 200, Angle: 0},
		Path:      [][]mapdata.Point{{{X: 50, Y: 50}, {X: 350, Y: 350}}},
	})
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "map.bin")
	require.NoError(t, os.WriteFile(path, raw, 0o644))
	return path
}

func TestRenderWritesPNG(t *testing.T) {
	mapFile := writeMapFile(t)
	outFile := filepath.Join(t.TempDir(), "map.png")

	buf := &bytes.Buffer{}
	cmd := NewRenderCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{mapFile, "-o", outFile})

	err := cmd.Execute()
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "✓ Rendered")

	f, err := os.Open(outFile)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 8, img.Bounds().Dx())
	assert.Equal(t, 8, img.Bounds().Dy())
}

func TestRenderJSON(t *testing.T) {
	mapFile := writeMapFile(t)
	outFile := filepath.Join(t.TempDir(), "map.png")

	buf := &bytes.Buffer{}
	cmd := NewRenderCommand(&RootOptions{Format: "json"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{mapFile, "-o", outFile})

	err := cmd.Execute()
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "testmap", data["map_name"])
	assert.Equal(t, 8.0, data["width"])
}

func TestRenderAppliesSettings(t *testing.T) {
	mapFile := writeMapFile(t)
	outFile := filepath.Join(t.TempDir(), "map.png")
	settings := writeSettings(t, "image:\n  scale: 2\n")

	cmd := NewRenderCommand(&RootOptions{Format: "text"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{mapFile, "-o", outFile, "--settings", settings})

	err := cmd.Execute()
	require.NoError(t, err)

	f, err := os.Open(outFile)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 16, img.Bounds().Dx())
}

func TestRenderSaveSnapshot(t *testing.T) {
	mapFile := writeMapFile(t)
	outFile := filepath.Join(t.TempDir(), "map.png")
	dbFile := filepath.Join(t.TempDir(), "history.db")

	buf := &bytes.Buffer{}
	cmd := NewRenderCommand(&RootOptions{Format: "json"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{mapFile, "-o", outFile, "--save", "--db", dbFile})

	err := cmd.Execute()
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.NotEmpty(t, data["snapshot_id"])
}

func TestRenderSaveRequiresDB(t *testing.T) {
	mapFile := writeMapFile(t)

	cmd := NewRenderCommand(&RootOptions{Format: "text"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{mapFile, "-o", filepath.Join(t.TempDir(), "map.png"), "--save"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestRenderMissingMapFile(t *testing.T) {
	cmd := NewRenderCommand(&RootOptions{Format: "text"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{filepath.Join(t.TempDir(), "nope.bin"), "-o", filepath.Join(t.TempDir(), "map.png")})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestRenderBadPayload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "map.bin")
	require.NoError(t, os.WriteFile(path, []byte("not a map"), 0o644))

	cmd := NewRenderCommand(&RootOptions{Format: "text"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{path, "-o", filepath.Join(t.TempDir(), "map.png")})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}
