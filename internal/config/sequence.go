package config

import (
	"errors"
	"fmt"
	"sort"

	"Cinematic3D/internal/audio"
	"Cinematic3D/internal/choreo"
	"Cinematic3D/internal/easing"
	"Cinematic3D/internal/loader"
	"Cinematic3D/internal/loop"
	"Cinematic3D/internal/pose"
	"Cinematic3D/internal/timeline"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/multierr"
)

// Phase kinds.
const (
	KindTween = "tween"
	KindNudge = "nudge"
	KindHold  = "hold"
	KindCue   = "cue"
	KindMark  = "mark"
)

var ErrBadPhase = errors.New("bad phase")

// SequenceConfig is a camera sequence authored in the config file.
type SequenceConfig struct {
	Initial PoseConfig `yaml:"initial"`
	// WaitFor names the assets that must be loaded before the sequence plays.
	WaitFor     []string      `yaml:"wait_for,omitempty"`
	Repeat      int           `yaml:"repeat"`
	Yoyo        bool          `yaml:"yoyo"`
	DefaultEase string        `yaml:"default_ease,omitempty"`
	Degrees     bool          `yaml:"degrees"` // rotations are written in degrees
	Phases      []PhaseConfig `yaml:"phases"`
	Loop        *LoopConfig   `yaml:"loop,omitempty"`
}

type PoseConfig struct {
	Position [3]float64 `yaml:"position"`
	Rotation [3]float64 `yaml:"rotation"`
	Fov      float64    `yaml:"fov"`
}

type PhaseConfig struct {
	Name     string       `yaml:"name"`
	Kind     string       `yaml:"kind,omitempty"` // tween when empty
	Duration float64      `yaml:"duration"`
	Ease     string       `yaml:"ease,omitempty"`
	Anchor   string       `yaml:"anchor,omitempty"`
	Label    string       `yaml:"label,omitempty"`
	Only     []string     `yaml:"only,omitempty"`
	Moves    []MoveConfig `yaml:"moves,omitempty"`
	Sound    string       `yaml:"sound,omitempty"`
}

// MoveConfig holds one authored move. Exactly one field is set.
type MoveConfig struct {
	Set      map[string]float64 `yaml:"set,omitempty"`
	Add      map[string]float64 `yaml:"add,omitempty"`
	Advance  *float64           `yaml:"advance,omitempty"`
	Retrace  bool               `yaml:"retrace,omitempty"`
	Approach *ApproachConfig    `yaml:"approach,omitempty"`
}

// ApproachConfig stops the camera margin past the far side of an asset along
// one position axis.
type ApproachConfig struct {
	Asset  string  `yaml:"asset"`
	Margin float64 `yaml:"margin"`
	Axis   string  `yaml:"axis,omitempty"` // z when empty
}

type LoopConfig struct {
	Swim   *SwimConfig   `yaml:"swim,omitempty"`
	Wiggle *WiggleConfig `yaml:"wiggle,omitempty"`
	Drift  *DriftConfig  `yaml:"drift,omitempty"`
}

type SwimConfig struct {
	Property string  `yaml:"property"`
	Target   float64 `yaml:"target"`
	Relative bool    `yaml:"relative"`
	Duration float64 `yaml:"duration"`
	Ease     string  `yaml:"ease,omitempty"`
}

type WiggleConfig struct {
	Property  string  `yaml:"property"`
	Amplitude float64 `yaml:"amplitude"`
	Half      float64 `yaml:"half"`
	Ease      string  `yaml:"ease,omitempty"`
}

type DriftConfig struct {
	Property  string  `yaml:"property"`
	Amplitude float64 `yaml:"amplitude"`
	Step      float64 `yaml:"step"`
	Samples   int     `yaml:"samples"`
	Seed      int64   `yaml:"seed"`
}

// Env is what compiling a sequence may refer to: loaded assets and the
// sound player for cues.
type Env struct {
	Assets map[string]*loader.Asset
	Audio  audio.Player

	// check compiles without assets; approaches use empty bounds.
	check bool
}

func (e Env) asset(name string) (*loader.Asset, error) {
	if e.check {
		return &loader.Asset{Path: name}, nil
	}
	a, ok := e.Assets[name]
	if !ok || a == nil {
		return nil, fmt.Errorf("%w %q is not loaded", ErrUnknownAsset, name)
	}
	return a, nil
}

func (p PoseConfig) Pose(degrees bool) pose.Pose {
	rot := mgl64.Vec3(p.Rotation)
	if degrees {
		rot = mgl64.Vec3{pose.Deg(rot.X()), pose.Deg(rot.Y()), pose.Deg(rot.Z())}
	}
	return pose.Pose{Position: mgl64.Vec3(p.Position), Rotation: rot, Fov: p.Fov}
}

// Options returns the timeline options for a sequence called name.
func (s SequenceConfig) Options(name string) (timeline.Options, error) {
	ease, err := easing.Lookup(s.DefaultEase)
	if err != nil {
		return timeline.Options{}, err
	}
	return timeline.Options{Name: name, Repeat: s.Repeat, Yoyo: s.Yoyo, DefaultEase: ease}, nil
}

// Validate builds the sequence on a scratch pose without assets and reports
// all problems.
func (s SequenceConfig) Validate() error {
	var err error
	if s.Repeat < timeline.Infinite {
		err = multierr.Append(err, fmt.Errorf("repeat must be -1 or more, got %d", s.Repeat))
	}
	if _, e := easing.Lookup(s.DefaultEase); e != nil {
		err = multierr.Append(err, e)
	}
	if len(s.Phases) == 0 {
		err = multierr.Append(err, errors.New("no phases"))
	}
	if _, e := s.Build("check", &pose.Pose{}, Env{check: true}); e != nil {
		err = multierr.Append(err, e)
	}
	if s.Loop != nil {
		if _, e := s.Loop.Timelines(&pose.Pose{}, pose.Pose{}); e != nil {
			err = multierr.Append(err, e)
		}
	}
	return err
}

// Compile turns the authored phases into choreo phases.
func (s SequenceConfig) Compile(env Env) ([]choreo.Phase, error) {
	var err error
	phases := make([]choreo.Phase, 0, len(s.Phases))
	for i, pc := range s.Phases {
		ph, e := pc.compile(env, s.Degrees)
		if e != nil {
			err = multierr.Append(err, fmt.Errorf("phase %d (%s): %w", i, pc.Name, e))
			continue
		}
		phases = append(phases, ph)
	}
	if err != nil {
		return nil, err
	}
	return phases, nil
}

// Build compiles the sequence and returns its timeline on subject, starting
// from the configured initial pose.
func (s SequenceConfig) Build(name string, subject pose.Subject, env Env) (*timeline.Timeline, error) {
	opts, err := s.Options(name)
	if err != nil {
		return nil, err
	}
	phases, err := s.Compile(env)
	if err != nil {
		return nil, fmt.Errorf("sequence %q: %w", name, err)
	}
	tl, _, err := choreo.Sequence(subject, opts, choreo.FromPose(s.Initial.Pose(s.Degrees)), phases...)
	return tl, err
}

func (p PhaseConfig) compile(env Env, degrees bool) (choreo.Phase, error) {
	if p.Name == "" {
		return choreo.Phase{}, fmt.Errorf("%w: phase needs a name", ErrBadPhase)
	}
	var opts []choreo.Option
	if p.Anchor != "" {
		a, err := timeline.ParseAnchor(p.Anchor)
		if err != nil {
			return choreo.Phase{}, err
		}
		opts = append(opts, choreo.Anchored(a))
	}
	if p.Label != "" {
		opts = append(opts, choreo.Labeled(p.Label))
	}

	switch p.Kind {
	case "", KindTween:
		ease, err := p.ease()
		if err != nil {
			return choreo.Phase{}, err
		}
		if len(p.Only) > 0 {
			only, err := parseProperties(p.Only)
			if err != nil {
				return choreo.Phase{}, err
			}
			opts = append(opts, choreo.Only(only...))
		}
		moves := make([]choreo.Move, 0, len(p.Moves))
		for _, mc := range p.Moves {
			m, err := mc.compile(env, degrees)
			if err != nil {
				return choreo.Phase{}, err
			}
			moves = append(moves, m)
		}
		return choreo.Tween(p.Name, p.Duration, ease, choreo.Chain(moves...), opts...), nil

	case KindNudge:
		ease, err := p.ease()
		if err != nil {
			return choreo.Phase{}, err
		}
		deltas := make(map[pose.Property]float64)
		for _, mc := range p.Moves {
			if mc.Add == nil || mc.Set != nil || mc.Advance != nil || mc.Retrace || mc.Approach != nil {
				return choreo.Phase{}, fmt.Errorf("%w: a nudge only takes add moves", ErrBadPhase)
			}
			err := eachValue(mc.Add, degrees, func(prop pose.Property, v float64) {
				deltas[prop] += v
			})
			if err != nil {
				return choreo.Phase{}, err
			}
		}
		return choreo.Nudge(p.Name, p.Duration, ease, deltas, opts...), nil

	case KindHold:
		return choreo.Hold(p.Name, p.Duration, opts...), nil

	case KindCue:
		if p.Sound == "" {
			return choreo.Phase{}, fmt.Errorf("%w: a cue needs a sound", ErrBadPhase)
		}
		return choreo.Cue(p.Name, audio.Trigger(env.Audio, p.Sound), opts...), nil

	case KindMark:
		a := timeline.AtEnd()
		if p.Anchor != "" {
			a, _ = timeline.ParseAnchor(p.Anchor)
		}
		return choreo.Mark(p.Name, a), nil
	}
	return choreo.Phase{}, fmt.Errorf("%w: unknown kind %q", ErrBadPhase, p.Kind)
}

func (p PhaseConfig) ease() (easing.Func, error) {
	if p.Ease == "" {
		// nil lets the timeline default apply
		return nil, nil
	}
	return easing.Lookup(p.Ease)
}

func (m MoveConfig) compile(env Env, degrees bool) (choreo.Move, error) {
	set := 0
	for _, present := range []bool{m.Set != nil, m.Add != nil, m.Advance != nil, m.Retrace, m.Approach != nil} {
		if present {
			set++
		}
	}
	if set != 1 {
		return nil, fmt.Errorf("%w: a move needs exactly one of set, add, advance, retrace, approach", ErrBadPhase)
	}

	switch {
	case m.Set != nil:
		var moves []choreo.Move
		err := eachValue(m.Set, degrees, func(prop pose.Property, v float64) {
			moves = append(moves, choreo.Set(prop, v))
		})
		return choreo.Chain(moves...), err
	case m.Add != nil:
		var moves []choreo.Move
		err := eachValue(m.Add, degrees, func(prop pose.Property, v float64) {
			moves = append(moves, choreo.Add(prop, v))
		})
		return choreo.Chain(moves...), err
	case m.Advance != nil:
		return choreo.Advance(*m.Advance), nil
	case m.Retrace:
		return choreo.Retrace(), nil
	}

	axis := m.Approach.Axis
	if axis == "" {
		axis = "z"
	}
	prop, err := pose.ParseProperty(axis)
	if err != nil {
		return nil, err
	}
	if prop > pose.PositionZ {
		return nil, fmt.Errorf("%w: approach axis must be a position, got %s", ErrBadPhase, prop)
	}
	a, err := env.asset(m.Approach.Asset)
	if err != nil {
		return nil, err
	}
	return choreo.Set(prop, a.Bounds.Max[prop]+m.Approach.Margin), nil
}

// eachValue visits values in property order so the compiled moves do not
// depend on map iteration.
func eachValue(values map[string]float64, degrees bool, fn func(pose.Property, float64)) error {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	props := make(map[pose.Property]float64, len(values))
	var err error
	for _, k := range keys {
		prop, e := pose.ParseProperty(k)
		if e != nil {
			err = multierr.Append(err, e)
			continue
		}
		v := values[k]
		if degrees && prop >= pose.RotationX && prop <= pose.RotationZ {
			v = pose.Deg(v)
		}
		props[prop] = v
	}
	if err != nil {
		return err
	}
	for _, prop := range pose.Properties() {
		if v, ok := props[prop]; ok {
			fn(prop, v)
		}
	}
	return nil
}

func parseProperties(names []string) ([]pose.Property, error) {
	props := make([]pose.Property, 0, len(names))
	for _, n := range names {
		p, err := pose.ParseProperty(n)
		if err != nil {
			return nil, err
		}
		props = append(props, p)
	}
	return props, nil
}

// Timelines builds the idle loops on subject. base is the pose the loops
// start from; a wiggle swings around its value there.
func (l LoopConfig) Timelines(subject pose.Subject, base pose.Pose) ([]*timeline.Timeline, error) {
	var out []*timeline.Timeline
	var err error

	if c := l.Swim; c != nil {
		tl, e := c.build(subject)
		if e != nil {
			err = multierr.Append(err, fmt.Errorf("swim: %w", e))
		} else {
			out = append(out, tl)
		}
	}
	if c := l.Wiggle; c != nil {
		tl, e := c.build(subject, base)
		if e != nil {
			err = multierr.Append(err, fmt.Errorf("wiggle: %w", e))
		} else {
			out = append(out, tl)
		}
	}
	if c := l.Drift; c != nil {
		tl, e := c.build(subject)
		if e != nil {
			err = multierr.Append(err, fmt.Errorf("drift: %w", e))
		} else {
			out = append(out, tl)
		}
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c SwimConfig) build(subject pose.Subject) (*timeline.Timeline, error) {
	prop, err := pose.ParseProperty(c.Property)
	if err != nil {
		return nil, err
	}
	ease, err := easing.Lookup(c.Ease)
	if err != nil {
		return nil, err
	}
	target := timeline.Abs(prop, c.Target)
	if c.Relative {
		target = timeline.Rel(prop, c.Target)
	}
	return loop.Swim(subject, target, c.Duration, ease)
}

func (c WiggleConfig) build(subject pose.Subject, base pose.Pose) (*timeline.Timeline, error) {
	prop, err := pose.ParseProperty(c.Property)
	if err != nil {
		return nil, err
	}
	ease, err := easing.Lookup(c.Ease)
	if err != nil {
		return nil, err
	}
	v, _ := base.Value(prop)
	return loop.Wiggle(subject, prop, v, c.Amplitude, c.Half, ease)
}

func (c DriftConfig) build(subject pose.Subject) (*timeline.Timeline, error) {
	prop, err := pose.ParseProperty(c.Property)
	if err != nil {
		return nil, err
	}
	return loop.Drift(subject, prop, c.Amplitude, c.Step, c.Samples, c.Seed)
}
