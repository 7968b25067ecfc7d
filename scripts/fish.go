package scripts

import (
	"Cinematic3D/internal/behaviour"
	"Cinematic3D/internal/choreo"
	"Cinematic3D/internal/easing"
	"Cinematic3D/internal/logger"
	"Cinematic3D/internal/loop"
	"Cinematic3D/internal/pose"
	"Cinematic3D/internal/timeline"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
)

// Every aquarium version starts from the same spot above the tank.
var tankBase = pose.Pose{
	Position: mgl64.Vec3{10, 20, 40},
	Rotation: mgl64.Vec3{0, 6.2, 0},
	Fov:      75,
}

const (
	swimDistance  = 50
	swimDuration  = 10
	wiggleAngle   = 0.02
	wiggleHalf    = 1
	dropDuration  = 2
	glanceSeconds = 4
)

// fishScene is the state every aquarium script shares: the intro timeline and
// the idle loop it hands over to.
type fishScene struct {
	name  string
	intro *timeline.Timeline
	idle  *loop.Handle
}

func (f *fishScene) Name() string { return f.name }

// Intro is nil until the scene's assets arrived.
func (f *fishScene) Intro() *timeline.Timeline { return f.intro }

// Idle is nil until the intro handed over.
func (f *fishScene) Idle() *loop.Handle { return f.idle }

// swim returns the cue that starts the idle loop at the end of the intro.
// The loops are built when the cue fires so relative targets start from
// wherever the intro left the camera.
func (f *fishScene) swim(stage *behaviour.Stage, build func(pose.Pose) ([]*timeline.Timeline, error)) choreo.Phase {
	return choreo.Cue("swim", func() error {
		tls, err := build(pose.Snapshot(stage.Camera))
		if err != nil {
			return err
		}
		f.idle = loop.Start(stage.Players, tls...)
		return nil
	})
}

// play schedules the intro, logging instead of failing since it runs from a
// gate continuation.
func (f *fishScene) play(stage *behaviour.Stage, opts timeline.Options, initial choreo.State, phases ...choreo.Phase) {
	tl, _, err := choreo.Sequence(stage.Camera, opts, initial, phases...)
	if err != nil {
		logger.Log.Error("Intro not started", zap.String("scene", f.name), zap.Error(err))
		return
	}
	f.intro = tl
	stage.Play(tl)
}

// swimAndWiggle is the room_aquarium idle loop: a slow patrol along z and a
// small yaw wiggle around the heading the camera has when it starts.
func swimAndWiggle(cam pose.Subject, at pose.Pose) ([]*timeline.Timeline, error) {
	swim, err := loop.Swim(cam, timeline.Rel(pose.PositionZ, -swimDistance), swimDuration, easing.QuintInOut)
	if err != nil {
		return nil, err
	}
	wiggle, err := loop.Wiggle(cam, pose.RotationY, at.Rotation.Y(), wiggleAngle, wiggleHalf, easing.SineInOut)
	if err != nil {
		return nil, err
	}
	return []*timeline.Timeline{swim, wiggle}, nil
}
