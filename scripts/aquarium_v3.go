package scripts

import (
	"Cinematic3D/internal/behaviour"
	"Cinematic3D/internal/choreo"
	"Cinematic3D/internal/easing"
	"Cinematic3D/internal/loader"
	"Cinematic3D/internal/pose"
	"Cinematic3D/internal/timeline"
)

const (
	cruiseDistance = 6
	zoomFov        = 50
)

// AquariumV3 authors the intro against a running pose: turns change the
// heading later travel follows, and a fov zoom rides along the cruise.
type AquariumV3 struct {
	fishScene
}

func init() {
	behaviour.RegisterScript("aquarium_v3", func() behaviour.Script {
		return &AquariumV3{fishScene{name: "aquarium_v3"}}
	})
}

func (s *AquariumV3) Start(stage *behaviour.Stage) error {
	stage.Camera.SetPose(tankBase)

	stage.Open("aquarium", func(*loader.Asset) {
		s.play(stage, timeline.Options{Name: s.name, DefaultEase: easing.QuadInOut}, choreo.FromPose(tankBase),
			choreo.Tween("drop", dropDuration, easing.BounceOut, choreo.Add(pose.PositionY, 2)),
			choreo.Tween("turn-left", glanceSeconds, nil, choreo.Add(pose.RotationY, 1)),
			choreo.Tween("cruise", 3, easing.SineInOut, choreo.Advance(cruiseDistance)),
			choreo.Tween("zoom-in", 1, easing.CubicOut, choreo.Set(pose.Fov, zoomFov),
				choreo.Anchored(timeline.With("cruise", 1))),
			choreo.Tween("zoom-out", 1.5, easing.CubicInOut, choreo.Set(pose.Fov, tankBase.Fov)),
			choreo.Tween("turn-back", glanceSeconds, nil, choreo.Add(pose.RotationY, -1)),
			choreo.Tween("retrace", 3, easing.SineInOut, choreo.Retrace()),
			s.swim(stage, func(at pose.Pose) ([]*timeline.Timeline, error) {
				return swimAndWiggle(stage.Camera, at)
			}),
		)
	})
	return nil
}
