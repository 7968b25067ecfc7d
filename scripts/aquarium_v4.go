package scripts

import (
	"Cinematic3D/internal/audio"
	"Cinematic3D/internal/behaviour"
	"Cinematic3D/internal/choreo"
	"Cinematic3D/internal/easing"
	"Cinematic3D/internal/loader"
	"Cinematic3D/internal/pose"
	"Cinematic3D/internal/timeline"
)

// bounce.out first touches its target 1/2.75 of the way in.
const splashAt = dropDuration / 2.75

// AquariumV4 moves by deltas that resolve when each step starts, so the
// intro plays from wherever the camera happens to be. The splash sounds
// when the drop first hits the water.
type AquariumV4 struct {
	fishScene
}

func init() {
	behaviour.RegisterScript("aquarium_v4", func() behaviour.Script {
		return &AquariumV4{fishScene{name: "aquarium_v4"}}
	})
}

func (s *AquariumV4) Start(stage *behaviour.Stage) error {
	stage.Camera.SetPose(tankBase)

	stage.Open("aquarium", func(*loader.Asset) {
		idle := s.swim(stage, func(at pose.Pose) ([]*timeline.Timeline, error) {
			return swimAndWiggle(stage.Camera, at)
		})
		s.play(stage, timeline.Options{Name: s.name}, choreo.FromPose(tankBase), s.phases(stage, idle)...)
	})
	return nil
}

// phases is the intro, handing over to idle at the end.
func (s *AquariumV4) phases(stage *behaviour.Stage, idle choreo.Phase) []choreo.Phase {
	return []choreo.Phase{
		choreo.Nudge("drop", dropDuration, easing.BounceOut, map[pose.Property]float64{pose.PositionY: 2}),
		choreo.Cue("splash", audio.Trigger(stage.Audio, "splash"), choreo.Anchored(timeline.With("drop", splashAt))),
		choreo.Nudge("left", glanceSeconds, easing.QuadInOut, map[pose.Property]float64{pose.RotationY: 1},
			choreo.Anchored(timeline.With("drop", dropDuration))),
		choreo.Nudge("right", glanceSeconds, easing.QuadInOut, map[pose.Property]float64{pose.RotationY: -2}),
		choreo.Nudge("center", glanceSeconds, easing.QuadInOut, map[pose.Property]float64{pose.RotationY: 1}),
		choreo.Nudge("right-again", glanceSeconds, easing.QuadInOut, map[pose.Property]float64{pose.RotationY: -1}),
		idle,
	}
}
