package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInspectText(t *testing.T) {
	mapFile := writeMapFile(t)

	buf := &bytes.Buffer{}
	cmd := NewInspectCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{mapFile})

	err := cmd.Execute()
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "Map: testmap")
	assert.Contains(t, output, "Grid: 8x8 pixels")
	assert.Contains(t, output, "Charger: (200, 200)")
	assert.Contains(t, output, "Path: 2 point(s)")
}

func TestInspectJSON(t *testing.T) {
	mapFile := writeMapFile(t)

	buf := &bytes.Buffer{}
	cmd := NewInspectCommand(&RootOptions{Format: "json"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{mapFile})

	err := cmd.Execute()
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	m, ok := data["map"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "testmap", m["map_name"])
	assert.NotNil(t, m["charger"])
}

func TestInspectWithHash(t *testing.T) {
	mapFile := writeMapFile(t)

	buf := &bytes.Buffer{}
	cmd := NewInspectCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{mapFile, "--hash"})

	err := cmd.Execute()
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Content hash: ")
}

func TestInspectMissingFile(t *testing.T) {
	cmd := NewInspectCommand(&RootOptions{Format: "text"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"/nonexistent/map.bin"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
