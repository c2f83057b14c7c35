package mapdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotHashDeterministic(t *testing.T) {
	build := func() *MapData {
		m := New(0, 10)
		m.MapName = "kitchen"
		m.Charger = ptrPoint(PointWithAngle(2500, 2500, 90))
		m.Rooms = map[int]Room{
			1: {Zone: Zone{X1: 1000, Y1: 1000}, Number: 1, Name: "Kitchen"},
			2: {Zone: Zone{X0: 1000, X1: 2000, Y1: 1000}, Number: 2},
		}
		return m
	}

	h1, err := SnapshotHash(build())
	require.NoError(t, err)
	h2, err := SnapshotHash(build())
	require.NoError(t, err)

	assert.Equal(t, h1, h2)
	assert.Len(t, h1, 64) // hex-encoded SHA-256
}

func TestSnapshotHashDiffersOnContent(t *testing.T) {
	m1 := New(0, 10)
	m1.MapName = "kitchen"
	m2 := New(0, 10)
	m2.MapName = "hallway"

	assert.NotEqual(t, MustSnapshotHash(m1), MustSnapshotHash(m2))
}

func TestSnapshotHashIgnoresCalibrationParams(t *testing.T) {
	// Calibration parameters are parser inputs, not map content.
	m1 := New(0, 10)
	m1.MapName = "kitchen"
	m2 := New(500, 20)
	m2.MapName = "kitchen"

	assert.Equal(t, MustSnapshotHash(m1), MustSnapshotHash(m2))
}

func TestHashWithDomainBoundary(t *testing.T) {
	// The separator prevents domain/data ambiguity.
	assert.NotEqual(t,
		hashWithDomain("ab", []byte("c")),
		hashWithDomain("a", []byte("bc")))
}
