package scripts

import (
	"sort"

	"Cinematic3D/internal/behaviour"
	"Cinematic3D/internal/config"
	"Cinematic3D/internal/gate"
	"Cinematic3D/internal/loader"
	"Cinematic3D/internal/logger"
	"Cinematic3D/internal/loop"
	"Cinematic3D/internal/pose"
	"Cinematic3D/internal/timeline"

	"go.uber.org/zap"
)

// YAMLScene plays a sequence authored in the config file.
type YAMLScene struct {
	name string
	seq  config.SequenceConfig
	main *timeline.Timeline
	idle *loop.Handle
}

func NewYAMLScene(name string, seq config.SequenceConfig) *YAMLScene {
	return &YAMLScene{name: name, seq: seq}
}

// RegisterSequences makes every configured sequence available as a scene
// under its own name and returns the names registered. A sequence named like
// a builtin scene replaces it.
func RegisterSequences(cfg *config.Config) []string {
	names := make([]string, 0, len(cfg.Sequences))
	for name := range cfg.Sequences {
		names = append(names, name)
	}
	sort.Strings(names)

	builtin := make(map[string]bool)
	for _, n := range behaviour.GetAvailableScripts() {
		builtin[n] = true
	}
	for _, name := range names {
		seq := cfg.Sequences[name]
		if builtin[name] {
			logger.Log.Warn("Config sequence replaces builtin scene", zap.String("scene", name))
		}
		behaviour.RegisterScript(name, func() behaviour.Script { return NewYAMLScene(name, seq) })
	}
	return names
}

func (s *YAMLScene) Name() string { return s.name }

// Main is nil until every asset the sequence waits for arrived.
func (s *YAMLScene) Main() *timeline.Timeline { return s.main }

func (s *YAMLScene) Idle() *loop.Handle { return s.idle }

func (s *YAMLScene) Start(stage *behaviour.Stage) error {
	if err := s.seq.Validate(); err != nil {
		return err
	}
	stage.Camera.SetPose(s.seq.Initial.Pose(s.seq.Degrees))

	gates := make([]*gate.Gate, 0, len(s.seq.WaitFor))
	for _, name := range s.seq.WaitFor {
		gates = append(gates, stage.Open(name, nil))
	}
	stage.After(s.name, func() { s.play(stage, gates) }, gates...)
	return nil
}

func (s *YAMLScene) play(stage *behaviour.Stage, gates []*gate.Gate) {
	env := config.Env{Assets: make(map[string]*loader.Asset, len(gates)), Audio: stage.Audio}
	for _, g := range gates {
		env.Assets[g.Name()] = g.Asset()
	}

	tl, err := s.seq.Build(s.name, stage.Camera, env)
	if err != nil {
		logger.Log.Error("Sequence not started", zap.String("scene", s.name), zap.Error(err))
		return
	}
	if s.seq.Loop != nil {
		tl.OnComplete(func() {
			tls, err := s.seq.Loop.Timelines(stage.Camera, pose.Snapshot(stage.Camera))
			if err != nil {
				logger.Log.Error("Idle loop not started", zap.String("scene", s.name), zap.Error(err))
				return
			}
			s.idle = loop.Start(stage.Players, tls...)
		})
	}
	s.main = tl
	stage.Play(tl)
}
