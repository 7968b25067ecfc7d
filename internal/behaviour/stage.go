package behaviour

import (
	"Cinematic3D/internal/audio"
	"Cinematic3D/internal/gate"
	"Cinematic3D/internal/loader"
	"Cinematic3D/internal/logger"
	"Cinematic3D/internal/pose"
	"Cinematic3D/internal/renderer"
	"Cinematic3D/internal/timeline"

	"go.uber.org/zap"
)

// AssetOpener starts loading a named scene asset and returns its gate.
type AssetOpener interface {
	Open(name string) *gate.Gate
}

// Stage is what a script gets to work with. Everything a scene touches is
// reached through it; there are no package level singletons.
type Stage struct {
	Camera  *renderer.Camera
	Players *PlayerManager
	Audio   audio.Player
	Assets  AssetOpener

	waiters []gate.Waiter
	rigs    map[string]*pose.Rig
}

func NewStage(camera *renderer.Camera, players *PlayerManager, sounds audio.Player, assets AssetOpener) *Stage {
	return &Stage{
		Camera:  camera,
		Players: players,
		Audio:   sounds,
		Assets:  assets,
		rigs:    make(map[string]*pose.Rig),
	}
}

// Open starts loading the asset called name; fn runs once it arrives.
func (s *Stage) Open(name string, fn func(*loader.Asset)) *gate.Gate {
	g := s.Assets.Open(name)
	g.OnReady(fn)
	s.waiters = append(s.waiters, g)
	return g
}

// After runs fn once every gate resolved. A failed gate means fn never runs.
func (s *Stage) After(name string, fn func(), gates ...*gate.Gate) *gate.Barrier {
	b := gate.All(name, gates...)
	b.OnReady(fn)
	s.waiters = append(s.waiters, b)
	return b
}

// Waiters returns what the frame loop still has to poll.
func (s *Stage) Waiters() []gate.Waiter {
	return s.waiters
}

// Play hands a timeline to the frame loop.
func (s *Stage) Play(tl *timeline.Timeline) {
	logger.Log.Info("Timeline scheduled",
		zap.String("timeline", tl.Name()),
		zap.Float64("duration", tl.Duration()),
		zap.Bool("infinite", tl.Infinite()))
	s.Players.Add(tl)
}

// Rig returns the rig called name, creating it at the origin on first use.
func (s *Stage) Rig(name string) *pose.Rig {
	if r, ok := s.rigs[name]; ok {
		return r
	}
	r := &pose.Rig{}
	s.rigs[name] = r
	return r
}

// Mount makes the camera ride rig; its pose becomes an offset from the rig.
func (s *Stage) Mount(rig *pose.Rig) {
	s.Camera.Mount = rig
	s.Camera.Sync()
}
