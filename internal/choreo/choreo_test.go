package choreo

import (
	"errors"
	"math"
	"testing"

	"Cinematic3D/internal/easing"
	"Cinematic3D/internal/pose"
	"Cinematic3D/internal/timeline"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdvanceUsesHeadingAtCallTime(t *testing.T) {
	const d = 3.0
	h1, h2 := 0.4, -1.1

	s := State{Position: mgl64.Vec3{1, 2, 3}}.
		SetAxis(pose.RotationY, h1).
		AdvanceAlongHeading(d).
		SetAxis(pose.RotationY, h2).
		AdvanceAlongHeading(d)

	want := mgl64.Vec3{
		1 - d*math.Sin(h1) - d*math.Sin(h2),
		2,
		3 - d*math.Cos(h1) - d*math.Cos(h2),
	}
	assert.True(t, s.Position.ApproxEqualThreshold(want, 1e-12), "got %v, want %v", s.Position, want)
	assert.Equal(t, d, s.LastTravel)
}

func TestAdvanceAtZeroHeadingMovesDownNegativeZ(t *testing.T) {
	s := State{}.AdvanceAlongHeading(5)
	if s.Position.Z() != -5 || s.Position.X() != 0 {
		t.Errorf("Expected (0, 0, -5), got %v", s.Position)
	}
}

func TestRetraceReturnsToStart(t *testing.T) {
	start := State{Position: mgl64.Vec3{10, 20, 40}, Rotation: mgl64.Vec3{0, 6.2, 0}}
	s := start.AdvanceAlongHeading(7).Retrace()

	assert.True(t, s.Position.ApproxEqualThreshold(start.Position, 1e-12))
	assert.Equal(t, -7.0, s.LastTravel)
}

func TestStateIsAValue(t *testing.T) {
	a := State{Fov: 75}
	b := a.AddToAxis(pose.Fov, -15).AddToAxis(pose.PositionY, 2)

	assert.Equal(t, 75.0, a.Fov)
	assert.Equal(t, 60.0, b.Fov)
	assert.Equal(t, 2.0, b.Position.Y())
}

func TestCompileFoldsLeftToRight(t *testing.T) {
	initial := State{Position: mgl64.Vec3{0, 15, 10}, Rotation: mgl64.Vec3{-math.Pi / 4, 0, 0}, Fov: 75}

	final, items := Compile(initial,
		Tween("drop", 2, easing.BounceOut, Set(pose.PositionY, 2)),
		Tween("level", 1, nil, Chain(Set(pose.RotationX, 0), Set(pose.RotationZ, 0))),
		Tween("turn", 0.8, easing.CubicInOut, Add(pose.RotationY, math.Pi/6)),
		Tween("walk", 1, nil, Advance(4), Anchored(timeline.WithPrevious(0))),
	)

	require.Len(t, items, 4)

	assert.Equal(t, []timeline.Target{timeline.Abs(pose.PositionY, 2)}, items[0].Spec.Targets)
	assert.Equal(t, []timeline.Target{timeline.Abs(pose.RotationX, 0)}, items[1].Spec.Targets,
		"unchanged rotation.z is not recorded")
	assert.Equal(t, "turn", items[2].Spec.Label)

	walk := items[3].Spec
	assert.Equal(t, timeline.WithPrevious(0), walk.Anchor)
	require.Len(t, walk.Targets, 2)
	assert.Equal(t, pose.PositionX, walk.Targets[0].Prop)
	assert.InDelta(t, -2.0, walk.Targets[0].Value, 1e-12)
	assert.Equal(t, pose.PositionZ, walk.Targets[1].Prop)
	assert.InDelta(t, 10-4*math.Cos(math.Pi/6), walk.Targets[1].Value, 1e-12)

	assert.InDelta(t, math.Pi/6, final.Rotation.Y(), 1e-12)
	assert.Equal(t, 75.0, final.Fov)
}

func TestTweenSnapshotsAreNotLive(t *testing.T) {
	phase := Tween("zoom", 1, nil, Add(pose.Fov, -20))
	_, items := Compile(State{Fov: 75}, phase)
	require.Len(t, items, 1)

	// Compiling the same phase again from another state must not change the
	// first recording.
	Compile(State{Fov: 10}, phase)
	assert.Equal(t, 55.0, items[0].Spec.Targets[0].Value)
}

func TestOnlyPinsUnchangedProperties(t *testing.T) {
	_, items := Compile(State{Fov: 50, Position: mgl64.Vec3{1, 2, 3}},
		Tween("pin", 1, nil, nil, Only(pose.Fov, pose.PositionY)))

	assert.Equal(t, []timeline.Target{
		timeline.Abs(pose.Fov, 50),
		timeline.Abs(pose.PositionY, 2),
	}, items[0].Spec.Targets)
}

func TestNudgeRecordsRelativeTargets(t *testing.T) {
	final, items := Compile(State{},
		Nudge("bob", 1, easing.SineInOut, map[pose.Property]float64{pose.PositionY: 0.5, pose.RotationZ: 0.1}))

	assert.Equal(t, []timeline.Target{
		timeline.Rel(pose.PositionY, 0.5),
		timeline.Rel(pose.RotationZ, 0.1),
	}, items[0].Spec.Targets)
	assert.Equal(t, 0.5, final.Position.Y())
}

func TestSequencePlaysCompiledPhases(t *testing.T) {
	cam := &pose.Pose{Position: mgl64.Vec3{0, 15, 10}, Fov: 75}
	cues := 0

	tl, final, err := Sequence(cam, timeline.Options{Name: "fish"}, FromPose(*cam),
		Tween("drop", 2, easing.BounceOut, Set(pose.PositionY, 2)),
		Mark("look", timeline.AtEnd()),
		Tween("yaw", 1, nil, Set(pose.RotationY, 1.5), Anchored(timeline.With("look", 0))),
		Tween("zoom", 1, nil, Add(pose.Fov, -25), Anchored(timeline.With("look", 0))),
		Hold("beat", 0.5),
		Cue("splash", func() error { cues++; return nil }),
	)
	require.NoError(t, err)
	assert.Equal(t, 3.5, tl.Duration())

	tl.Advance(10)
	assert.Equal(t, final.Pose(), *cam)
	assert.Equal(t, 1, cues)
	assert.Equal(t, timeline.Completed, tl.State())
}

func TestSequenceReportsAuthoringErrors(t *testing.T) {
	rig := &pose.Rig{}
	_, _, err := Sequence(rig, timeline.Options{Name: "plane"}, State{},
		Tween("zoom", 1, nil, Add(pose.Fov, 10)),
		Tween("fly", 0, nil, Advance(3)),
	)
	require.Error(t, err)
	assert.True(t, errors.Is(err, timeline.ErrMalformedSegment))
	assert.Contains(t, err.Error(), "plane")
}
