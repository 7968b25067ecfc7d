package pose

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// Property names one scalar channel of a pose.
type Property int

const (
	PositionX Property = iota
	PositionY
	PositionZ
	RotationX
	RotationY
	RotationZ
	Fov
	propertyCount
)

var propertyNames = [propertyCount]string{
	"position.x", "position.y", "position.z",
	"rotation.x", "rotation.y", "rotation.z",
	"fov",
}

func (p Property) String() string {
	if p < 0 || p >= propertyCount {
		return fmt.Sprintf("property(%d)", int(p))
	}
	return propertyNames[p]
}

func (p Property) Valid() bool {
	return p >= 0 && p < propertyCount
}

// Properties lists every property in declaration order.
func Properties() []Property {
	props := make([]Property, 0, propertyCount)
	for p := Property(0); p < propertyCount; p++ {
		props = append(props, p)
	}
	return props
}

// ParseProperty accepts "position.y", "rotation.x", "fov" and the short
// forms "y" (position) and "rotY".
func ParseProperty(name string) (Property, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for p, n := range propertyNames {
		if key == n {
			return Property(p), nil
		}
	}
	switch key {
	case "x":
		return PositionX, nil
	case "y":
		return PositionY, nil
	case "z":
		return PositionZ, nil
	case "rotx":
		return RotationX, nil
	case "roty":
		return RotationY, nil
	case "rotz":
		return RotationZ, nil
	case "fieldofview":
		return Fov, nil
	}
	return 0, fmt.Errorf("unknown pose property %q", name)
}

// Subject is anything the scheduler can animate. Value and SetValue report
// false for properties the subject does not expose.
type Subject interface {
	Value(p Property) (float64, bool)
	SetValue(p Property, v float64) bool
}

// Pose is a camera pose. Rotation is in radians and applied in XYZ order,
// Fov is the vertical field of view in degrees.
type Pose struct {
	Position mgl64.Vec3
	Rotation mgl64.Vec3
	Fov      float64
}

func (p *Pose) Value(prop Property) (float64, bool) {
	switch {
	case prop >= PositionX && prop <= PositionZ:
		return p.Position[prop-PositionX], true
	case prop >= RotationX && prop <= RotationZ:
		return p.Rotation[prop-RotationX], true
	case prop == Fov:
		return p.Fov, true
	}
	return 0, false
}

func (p *Pose) SetValue(prop Property, v float64) bool {
	switch {
	case prop >= PositionX && prop <= PositionZ:
		p.Position[prop-PositionX] = v
	case prop >= RotationX && prop <= RotationZ:
		p.Rotation[prop-RotationX] = v
	case prop == Fov:
		p.Fov = v
	default:
		return false
	}
	return true
}

// Rig is a transform without a lens, like a group that carries the camera and
// a model together. It exposes position and rotation only.
type Rig struct {
	Position mgl64.Vec3
	Rotation mgl64.Vec3
}

func (r *Rig) Value(prop Property) (float64, bool) {
	switch {
	case prop >= PositionX && prop <= PositionZ:
		return r.Position[prop-PositionX], true
	case prop >= RotationX && prop <= RotationZ:
		return r.Rotation[prop-RotationX], true
	}
	return 0, false
}

func (r *Rig) SetValue(prop Property, v float64) bool {
	switch {
	case prop >= PositionX && prop <= PositionZ:
		r.Position[prop-PositionX] = v
	case prop >= RotationX && prop <= RotationZ:
		r.Rotation[prop-RotationX] = v
	default:
		return false
	}
	return true
}

// Exposes reports whether s accepts prop.
func Exposes(s Subject, prop Property) bool {
	_, ok := s.Value(prop)
	return ok
}

// Snapshot copies every exposed property of s into a Pose.
func Snapshot(s Subject) Pose {
	var out Pose
	for _, p := range Properties() {
		if v, ok := s.Value(p); ok {
			out.SetValue(p, v)
		}
	}
	return out
}

// Apply writes every property of src that dst exposes.
func Apply(dst Subject, src Pose) {
	for _, p := range Properties() {
		v, _ := src.Value(p)
		dst.SetValue(p, v)
	}
}

// Ground returns the ground plane step for a distance d travelled while facing
// heading (rotation around Y). Heading zero looks down -Z.
func Ground(heading, d float64) (dx, dz float64) {
	return -d * math.Sin(heading), -d * math.Cos(heading)
}

// Orientation turns an XYZ Euler rotation into a quaternion.
func Orientation(rotation mgl64.Vec3) mgl64.Quat {
	return mgl64.AnglesToQuat(rotation.X(), rotation.Y(), rotation.Z(), mgl64.XYZ)
}

// Forward is the full view direction for an XYZ Euler rotation.
func Forward(rotation mgl64.Vec3) mgl64.Vec3 {
	return Orientation(rotation).Rotate(mgl64.Vec3{0, 0, -1})
}

func Deg(d float64) float64 {
	return mgl64.DegToRad(d)
}
