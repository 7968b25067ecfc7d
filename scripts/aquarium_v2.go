package scripts

import (
	"Cinematic3D/internal/behaviour"
	"Cinematic3D/internal/choreo"
	"Cinematic3D/internal/easing"
	"Cinematic3D/internal/loader"
	"Cinematic3D/internal/pose"
	"Cinematic3D/internal/timeline"
)

// AquariumV2 writes every target as an offset from the base pose.
type AquariumV2 struct {
	fishScene
}

func init() {
	behaviour.RegisterScript("aquarium_v2", func() behaviour.Script {
		return &AquariumV2{fishScene{name: "aquarium_v2"}}
	})
}

func (s *AquariumV2) Start(stage *behaviour.Stage) error {
	stage.Camera.SetPose(tankBase)
	y, rotY := tankBase.Position.Y(), tankBase.Rotation.Y()

	stage.Open("aquarium", func(*loader.Asset) {
		s.play(stage, timeline.Options{Name: s.name}, choreo.FromPose(tankBase),
			choreo.Tween("drop", dropDuration, easing.BounceOut, choreo.Set(pose.PositionY, y+2)),
			choreo.Tween("left", glanceSeconds, easing.QuadInOut, choreo.Set(pose.RotationY, rotY+1)),
			choreo.Tween("right", glanceSeconds, easing.QuadInOut, choreo.Set(pose.RotationY, rotY-1)),
			choreo.Tween("center", glanceSeconds, easing.QuadInOut, choreo.Set(pose.RotationY, rotY)),
			choreo.Tween("right-again", glanceSeconds, easing.QuadInOut, choreo.Set(pose.RotationY, rotY-1)),
			// the wiggle swings around the base heading, not the last glance
			s.swim(stage, func(pose.Pose) ([]*timeline.Timeline, error) {
				return swimAndWiggle(stage.Camera, tankBase)
			}),
		)
	})
	return nil
}
