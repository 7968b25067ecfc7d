package scripts

import (
	"Cinematic3D/internal/behaviour"
	"Cinematic3D/internal/choreo"
	"Cinematic3D/internal/easing"
	"Cinematic3D/internal/logger"
	"Cinematic3D/internal/pose"
	"Cinematic3D/internal/timeline"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
)

const (
	corridorDuration = 10
	angelMargin      = 0.8
)

var corridorStart = pose.Pose{Position: mgl64.Vec3{-4, 4, 0}, Fov: 75}

// WeepingAngel walks the corridor up to the angel while the view tilts and
// pans, then plays it all back, forever. Nothing moves until both the
// corridor and the angel are in.
type WeepingAngel struct {
	walk  *timeline.Timeline
	stopZ float64
}

func init() {
	behaviour.RegisterScript("weeping_angel", func() behaviour.Script { return &WeepingAngel{} })
}

func (s *WeepingAngel) Name() string { return "weeping_angel" }

func (s *WeepingAngel) Walk() *timeline.Timeline { return s.walk }

func (s *WeepingAngel) Start(stage *behaviour.Stage) error {
	stage.Camera.SetPose(corridorStart)

	corridor := stage.Open("corridor", nil)
	angel := stage.Open("weeping_angel", nil)
	stage.After("weeping_angel", func() {
		s.stopZ = angel.Asset().Bounds.Max.Z() + angelMargin
		logger.Log.Info("Stopping point", zap.Float64("z", s.stopZ))

		tl, _, err := choreo.Sequence(stage.Camera,
			timeline.Options{Name: "weeping_angel", Repeat: timeline.Infinite, Yoyo: true},
			choreo.FromPose(corridorStart),
			s.phases()...)
		if err != nil {
			logger.Log.Error("Walk not started", zap.Error(err))
			return
		}
		s.walk = tl
		stage.Play(tl)
	}, corridor, angel)
	return nil
}

// The two pans both drive the heading; the later one wins while they overlap.
func (s *WeepingAngel) phases() []choreo.Phase {
	together := choreo.Anchored(timeline.WithPrevious(0))
	return []choreo.Phase{
		choreo.Tween("walk", corridorDuration, easing.QuadInOut, choreo.Set(pose.PositionZ, -s.stopZ)),
		choreo.Tween("tilt", corridorDuration, easing.QuartInOut, choreo.Set(pose.RotationX, pose.Deg(-45)), together),
		choreo.Tween("pan", corridorDuration, easing.QuadInOut, choreo.Set(pose.RotationY, pose.Deg(30)), together),
		choreo.Tween("pan-back", corridorDuration, easing.QuartInOut, choreo.Set(pose.RotationY, pose.Deg(-60)), together),
	}
}
