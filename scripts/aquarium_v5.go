package scripts

import (
	"Cinematic3D/internal/behaviour"
	"Cinematic3D/internal/choreo"
	"Cinematic3D/internal/loop"
	"Cinematic3D/internal/pose"
	"Cinematic3D/internal/timeline"
)

const (
	driftAmplitude = 0.3
	driftStep      = 0.5
	driftSamples   = 16
	driftSeed      = 42
)

// AquariumV5 waits for both the room and the fish model, and lets the fish
// bob on perlin drift while it swims.
type AquariumV5 struct {
	AquariumV4
}

func init() {
	behaviour.RegisterScript("aquarium_v5", func() behaviour.Script {
		return &AquariumV5{AquariumV4{fishScene{name: "aquarium_v5"}}}
	})
}

func (s *AquariumV5) Start(stage *behaviour.Stage) error {
	stage.Camera.SetPose(tankBase)

	room := stage.Open("aquarium", nil)
	fish := stage.Open("fish", nil)
	stage.After(s.name, func() {
		idle := s.swim(stage, func(at pose.Pose) ([]*timeline.Timeline, error) {
			tls, err := swimAndWiggle(stage.Camera, at)
			if err != nil {
				return nil, err
			}
			drift, err := loop.Drift(stage.Camera, pose.PositionY, driftAmplitude, driftStep, driftSamples, driftSeed)
			if err != nil {
				return nil, err
			}
			return append(tls, drift), nil
		})
		s.play(stage, timeline.Options{Name: s.name}, choreo.FromPose(tankBase), s.phases(stage, idle)...)
	}, room, fish)
	return nil
}
