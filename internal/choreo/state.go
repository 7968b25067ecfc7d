package choreo

import (
	"Cinematic3D/internal/pose"

	"github.com/go-gl/mathgl/mgl64"
)

// State is the running pose a sequence is authored against. It is a value:
// every transform returns a new State and never touches a live subject.
type State struct {
	Position mgl64.Vec3
	Rotation mgl64.Vec3
	Fov      float64

	// LastTravel is the distance of the most recent AdvanceAlongHeading.
	LastTravel float64
}

func FromPose(p pose.Pose) State {
	return State{Position: p.Position, Rotation: p.Rotation, Fov: p.Fov}
}

func (s State) Pose() pose.Pose {
	return pose.Pose{Position: s.Position, Rotation: s.Rotation, Fov: s.Fov}
}

func (s State) Value(p pose.Property) float64 {
	snapshot := s.Pose()
	v, _ := snapshot.Value(p)
	return v
}

// Heading is the rotation around Y.
func (s State) Heading() float64 {
	return s.Rotation.Y()
}

func (s State) SetAxis(p pose.Property, v float64) State {
	snapshot := s.Pose()
	snapshot.SetValue(p, v)
	return s.with(snapshot)
}

func (s State) AddToAxis(p pose.Property, d float64) State {
	return s.SetAxis(p, s.Value(p)+d)
}

// AdvanceAlongHeading moves d along the ground plane in the direction the
// heading points at the time of the call.
func (s State) AdvanceAlongHeading(d float64) State {
	dx, dz := pose.Ground(s.Heading(), d)
	s.Position = mgl64.Vec3{s.Position.X() + dx, s.Position.Y(), s.Position.Z() + dz}
	s.LastTravel = d
	return s
}

// Retrace travels the last distance back along the current heading.
func (s State) Retrace() State {
	return s.AdvanceAlongHeading(-s.LastTravel)
}

func (s State) with(p pose.Pose) State {
	s.Position = p.Position
	s.Rotation = p.Rotation
	s.Fov = p.Fov
	return s
}

// Move is one authored change to a State.
type Move func(State) State

func Set(p pose.Property, v float64) Move {
	return func(s State) State { return s.SetAxis(p, v) }
}

func Add(p pose.Property, d float64) Move {
	return func(s State) State { return s.AddToAxis(p, d) }
}

func Advance(d float64) Move {
	return func(s State) State { return s.AdvanceAlongHeading(d) }
}

func Retrace() Move {
	return func(s State) State { return s.Retrace() }
}

// Chain applies moves left to right. Order matters: an Advance placed before
// a heading change travels along the old heading.
func Chain(moves ...Move) Move {
	return func(s State) State {
		for _, m := range moves {
			if m != nil {
				s = m(s)
			}
		}
		return s
	}
}
