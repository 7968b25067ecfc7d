package scripts

import (
	"math"

	"Cinematic3D/internal/behaviour"
	"Cinematic3D/internal/choreo"
	"Cinematic3D/internal/easing"
	"Cinematic3D/internal/loader"
	"Cinematic3D/internal/loop"
	"Cinematic3D/internal/pose"
	"Cinematic3D/internal/timeline"

	"github.com/go-gl/mathgl/mgl64"
)

// AquariumV1 is the first fish POV: every target is an absolute value.
type AquariumV1 struct {
	fishScene
}

func init() {
	behaviour.RegisterScript("aquarium_v1", func() behaviour.Script {
		return &AquariumV1{fishScene{name: "aquarium_v1"}}
	})
}

func (s *AquariumV1) Start(stage *behaviour.Stage) error {
	start := pose.Pose{Position: mgl64.Vec3{0, 15, 10}, Rotation: mgl64.Vec3{-math.Pi / 4, 0, 0}, Fov: 75}
	stage.Camera.SetPose(start)

	stage.Open("aquarium", func(*loader.Asset) {
		s.play(stage, timeline.Options{Name: s.name}, choreo.FromPose(start),
			choreo.Tween("drop", 2, easing.BounceOut, choreo.Set(pose.PositionY, 2)),
			choreo.Tween("level", 1, nil,
				choreo.Chain(choreo.Set(pose.RotationX, 0), choreo.Set(pose.RotationZ, 0)),
				choreo.Only(pose.RotationX, pose.RotationZ)),
			choreo.Tween("look-left", 0.8, easing.CubicInOut, choreo.Set(pose.RotationY, 1.5)),
			choreo.Tween("look-right", 0.8, easing.CubicInOut, choreo.Set(pose.RotationY, -1.5)),
			choreo.Tween("center", 0.5, nil, choreo.Set(pose.RotationY, 0)),
			choreo.Tween("close-in", 0.5, easing.CubicOut, choreo.Set(pose.PositionZ, 4)),
			choreo.Tween("back-up", 1, easing.CubicInOut, choreo.Set(pose.PositionZ, 10)),
			s.swim(stage, func(at pose.Pose) ([]*timeline.Timeline, error) {
				swim, err := loop.Swim(stage.Camera, timeline.Abs(pose.PositionZ, -5), 8, easing.SineInOut)
				if err != nil {
					return nil, err
				}
				wiggle, err := loop.Wiggle(stage.Camera, pose.RotationY, 0, 0.2, 1.5, easing.SineInOut)
				if err != nil {
					return nil, err
				}
				return []*timeline.Timeline{swim, wiggle}, nil
			}),
		)
	})
	return nil
}
