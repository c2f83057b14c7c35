package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalibrateText(t *testing.T) {
	mapFile := writeMapFile(t)

	buf := &bytes.Buffer{}
	cmd := NewCalibrateCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{mapFile})

	err := cmd.Execute()
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	for _, line := range lines {
		assert.Contains(t, line, "vacuum (")
		assert.Contains(t, line, "-> map (")
	}
}

func TestCalibrateJSON(t *testing.T) {
	mapFile := writeMapFile(t)

	buf := &bytes.Buffer{}
	cmd := NewCalibrateCommand(&RootOptions{Format: "json"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{mapFile})

	err := cmd.Execute()
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)

	points, ok := resp.Data.([]any)
	require.True(t, ok)
	assert.Len(t, points, 3)
}

func TestCalibrateMissingFile(t *testing.T) {
	cmd := NewCalibrateCommand(&RootOptions{Format: "text"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"/nonexistent/map.bin"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
