package timeline

import (
	"fmt"

	"Cinematic3D/internal/easing"
	"Cinematic3D/internal/pose"
)

// Target is the end value of one property. A relative target is a delta that
// is added to the value the property has when the segment starts playing.
type Target struct {
	Prop     pose.Property
	Value    float64
	Relative bool
}

func Abs(p pose.Property, v float64) Target {
	return Target{Prop: p, Value: v}
}

func Rel(p pose.Property, delta float64) Target {
	return Target{Prop: p, Value: delta, Relative: true}
}

// Spec describes a segment before it is placed on a timeline.
// A Spec without targets is a hold: it only takes up time.
type Spec struct {
	Label    string
	Targets  []Target
	Duration float64
	Ease     easing.Func
	Anchor   Anchor
}

// Segment is one eased transition of a subject's properties.
//
// Start values are captured, and relative targets resolved, the first time the
// segment is rendered. Every later pass reuses them, so a segment never reads
// the subject again once it has started.
type Segment struct {
	label    string
	subject  pose.Subject
	targets  []Target
	start    float64
	duration float64
	ease     easing.Func

	activated bool
	from      []float64
	to        []float64
}

func newSegment(subject pose.Subject, spec Spec, start float64) *Segment {
	ease := spec.Ease
	if ease == nil {
		ease = easing.Default
	}
	targets := make([]Target, len(spec.Targets))
	copy(targets, spec.Targets)
	return &Segment{
		label:    spec.Label,
		subject:  subject,
		targets:  targets,
		start:    start,
		duration: spec.Duration,
		ease:     ease,
	}
}

func validate(subject pose.Subject, spec Spec) error {
	if !(spec.Duration > 0) {
		return fmt.Errorf("%w: duration %v must be positive", ErrMalformedSegment, spec.Duration)
	}
	seen := make(map[pose.Property]bool, len(spec.Targets))
	for _, t := range spec.Targets {
		if !t.Prop.Valid() || !pose.Exposes(subject, t.Prop) {
			kind := "absolute"
			if t.Relative {
				kind = "relative"
			}
			return fmt.Errorf("%w: %s target on %s which the subject does not expose", ErrMalformedSegment, kind, t.Prop)
		}
		if seen[t.Prop] {
			return fmt.Errorf("%w: %s targeted twice", ErrMalformedSegment, t.Prop)
		}
		seen[t.Prop] = true
	}
	return nil
}

func (s *Segment) Label() string { return s.label }
func (s *Segment) Start() float64 { return s.start }
func (s *Segment) Duration() float64 { return s.duration }
func (s *Segment) End() float64 { return s.start + s.duration }
func (s *Segment) Targets() []Target { return s.targets }
func (s *Segment) Activated() bool { return s.activated }

func (s *Segment) activate() {
	if s.activated {
		return
	}
	s.activated = true
	s.from = make([]float64, len(s.targets))
	s.to = make([]float64, len(s.targets))
	for i, t := range s.targets {
		v, _ := s.subject.Value(t.Prop)
		s.from[i] = v
		if t.Relative {
			s.to[i] = v + t.Value
		} else {
			s.to[i] = t.Value
		}
	}
}

func (s *Segment) value(i int, elapsed float64) float64 {
	switch {
	case elapsed <= 0:
		return s.from[i]
	case elapsed >= s.duration:
		return s.to[i]
	}
	k := s.ease(elapsed / s.duration)
	return s.from[i] + k*(s.to[i]-s.from[i])
}

// ValueAt returns the value of every targeted property elapsed seconds into
// the segment. It activates the segment if it has not started yet.
func (s *Segment) ValueAt(elapsed float64) map[pose.Property]float64 {
	s.activate()
	out := make(map[pose.Property]float64, len(s.targets))
	for i, t := range s.targets {
		out[t.Prop] = s.value(i, elapsed)
	}
	return out
}

// Render writes the value at elapsed onto the subject.
func (s *Segment) Render(elapsed float64) {
	s.activate()
	for i, t := range s.targets {
		s.subject.SetValue(t.Prop, s.value(i, elapsed))
	}
}
