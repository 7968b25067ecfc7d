package scripts

import (
	"math"

	"Cinematic3D/internal/behaviour"
	"Cinematic3D/internal/easing"
	"Cinematic3D/internal/loader"
	"Cinematic3D/internal/logger"
	"Cinematic3D/internal/pose"
	"Cinematic3D/internal/timeline"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
)

const (
	flightDuration = 8
	planeMargin    = 1.5
)

// PaperPlane flies a rig carrying the camera towards the angel, rolling,
// yawing and pitching on the way, and starts over from the beginning.
type PaperPlane struct {
	flight *timeline.Timeline
	stopZ  float64
}

func init() {
	behaviour.RegisterScript("paper_plane", func() behaviour.Script { return &PaperPlane{} })
}

func (s *PaperPlane) Name() string { return "paper_plane" }

func (s *PaperPlane) Flight() *timeline.Timeline { return s.flight }

func (s *PaperPlane) Start(stage *behaviour.Stage) error {
	rig := stage.Rig("vehicle")
	rig.Position = mgl64.Vec3{0, 1.6, 8}

	// Behind and above the rig centre, looking at (0, 0, -5) in rig space.
	eye := mgl64.Vec3{0, 0.5, 2}
	pitch := -math.Atan2(eye.Y(), eye.Z()+5)
	stage.Camera.SetPose(pose.Pose{Position: eye, Rotation: mgl64.Vec3{pitch, 0, 0}, Fov: 75})
	stage.Mount(rig)

	stage.Open("paper_plane", nil)
	stage.Open("weeping_angel", func(angel *loader.Asset) {
		s.stopZ = angel.Bounds.Max.Z() + planeMargin
		logger.Log.Info("Calculated stopping point", zap.Float64("z", s.stopZ))

		tl, err := s.build(rig)
		if err != nil {
			logger.Log.Error("Flight not started", zap.Error(err))
			return
		}
		s.flight = tl
		stage.Play(tl)
	})
	return nil
}

func (s *PaperPlane) build(rig *pose.Rig) (*timeline.Timeline, error) {
	fly := timeline.With("fly", 0)
	return timeline.NewBuilder(rig, timeline.Options{
		Name:        "paper_plane",
		Repeat:      timeline.Infinite,
		DefaultEase: easing.CubicInOut,
	}).
		Label("fly", timeline.AtEnd()).
		To(timeline.Spec{
			Targets:  []timeline.Target{timeline.Abs(pose.PositionZ, s.stopZ)},
			Duration: flightDuration,
			Ease:     easing.QuadInOut,
			Anchor:   fly,
		}).
		To(timeline.Spec{
			Targets: []timeline.Target{
				timeline.Abs(pose.RotationZ, pose.Deg(45)),
				timeline.Abs(pose.RotationY, pose.Deg(-35)),
				timeline.Abs(pose.RotationX, pose.Deg(25)),
			},
			Duration: flightDuration,
			Anchor:   fly,
		}).
		Build()
}
