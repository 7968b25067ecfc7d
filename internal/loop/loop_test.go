package loop

import (
	"math"
	"testing"

	"Cinematic3D/internal/behaviour"
	"Cinematic3D/internal/easing"
	"Cinematic3D/internal/pose"
	"Cinematic3D/internal/timeline"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSwimAndWiggleRunIndependently(t *testing.T) {
	cam := &pose.Pose{Position: mgl64.Vec3{10, 22, 40}, Rotation: mgl64.Vec3{0, 6.2, 0}, Fov: 75}

	swim, err := Swim(cam, timeline.Abs(pose.PositionZ, -10), 10, easing.QuintInOut)
	require.NoError(t, err)
	wiggle, err := Wiggle(cam, pose.RotationY, 6.2, 0.02, 0.5, easing.SineInOut)
	require.NoError(t, err)

	players := behaviour.NewPlayerManager()
	h := Start(players, swim, wiggle)
	require.True(t, h.Running())

	for i := 0; i < 40; i++ {
		players.Advance(0.25)
	}

	assert.Equal(t, 1, swim.Iteration())
	assert.True(t, swim.Reversed(), "swim is at its turning point")
	assert.Equal(t, -10.0, cam.Position.Z())

	assert.Equal(t, 10, wiggle.Iteration(), "five full back-and-forth cycles")
	assert.False(t, wiggle.Reversed())
	assert.Equal(t, 6.2, cam.Rotation.Y())
	assert.Equal(t, 22.0, cam.Position.Y(), "loops leave other properties alone")
}

func TestWigglePeaks(t *testing.T) {
	var rig pose.Rig
	wiggle, err := Wiggle(&rig, pose.RotationY, 0, 0.2, 1.5, easing.SineInOut)
	require.NoError(t, err)
	assert.Equal(t, 3.0, wiggle.Duration())

	wiggle.Advance(1.5)
	assert.Equal(t, 0.2, rig.Rotation.Y())
	wiggle.Advance(1.5)
	assert.Equal(t, -0.2, rig.Rotation.Y())
	wiggle.Advance(1.5)
	assert.Equal(t, 0.2, rig.Rotation.Y())
}

func TestDriftIsSeededAndCloses(t *testing.T) {
	a := DriftOffsets(0.3, 8, 42)
	b := DriftOffsets(0.3, 8, 42)
	assert.Equal(t, a, b)
	assert.Equal(t, 0.0, a[0])

	moved := false
	for _, v := range a {
		assert.Less(t, math.Abs(v), 0.3*2)
		if v != 0 {
			moved = true
		}
	}
	assert.True(t, moved, "drift must actually move")

	cam := &pose.Pose{Position: mgl64.Vec3{0, 2, 0}}
	drift, err := Drift(cam, pose.PositionY, 0.3, 0.5, 8, 42)
	require.NoError(t, err)
	assert.Equal(t, 4.0, drift.Duration())

	drift.Advance(2)
	assert.InDelta(t, 2+a[4], cam.Position.Y(), 1e-9)

	drift.Advance(2)
	assert.InDelta(t, 2.0, cam.Position.Y(), 1e-9)
	assert.Equal(t, 1, drift.Iteration())

	// The next pass starts over from the exact start value.
	drift.Advance(0.25)
	assert.Equal(t, 0.25, drift.Position())
	assert.InDelta(t, 2+a[1]*easing.SineInOut(0.5), cam.Position.Y(), 1e-9)
}

func TestDriftNeedsSamples(t *testing.T) {
	_, err := Drift(&pose.Pose{}, pose.PositionY, 1, 1, 1, 7)
	assert.ErrorIs(t, err, timeline.ErrMalformedSegment)
}

func TestHandleStop(t *testing.T) {
	cam := &pose.Pose{}
	swim, err := Swim(cam, timeline.Rel(pose.PositionZ, -5), 2, nil)
	require.NoError(t, err)

	players := behaviour.NewPlayerManager()
	h := Start(players, swim)
	players.Advance(1)
	z := cam.Position.Z()

	h.Stop()
	h.Stop()
	assert.False(t, h.Running())
	assert.Equal(t, timeline.Stopped, swim.State())
	assert.Equal(t, 0, players.Len())

	players.Advance(1)
	assert.Equal(t, z, cam.Position.Z())
}
