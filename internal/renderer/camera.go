// camera.go
package renderer

import (
	"Cinematic3D/internal/pose"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

const defaultFov = 75.0

// Camera is the scripted camera. Timelines animate Pose through the
// pose.Subject methods; Sync turns it into the matrices the renderer reads.
type Camera struct {
	// HOT DATA - rebuilt by Sync once per frame
	Position   mgl32.Vec3 // World position
	Front      mgl32.Vec3 // Forward direction vector
	Up         mgl32.Vec3 // Up direction vector
	Right      mgl32.Vec3 // Right direction vector
	View       mgl32.Mat4
	Projection mgl32.Mat4

	// Pose is local to Mount when the camera rides a rig, world space otherwise.
	Pose  pose.Pose
	Mount *pose.Rig

	// COLD DATA
	WorldUp     mgl32.Vec3
	Near        float32
	Far         float32
	AspectRatio float32
	Name        string
}

type Plane struct {
	Normal   mgl32.Vec3
	Distance float32
}

type Frustum struct {
	Planes [6]Plane
}

func NewCamera(width, height int32, p pose.Pose) *Camera {
	camera := Camera{
		Pose:    p,
		WorldUp: mgl32.Vec3{0, 1, 0},
		Near:    0.1,
		Far:     1000.0,
		Name:    "main",
	}
	camera.SetAspectRatio(width, height)
	camera.Sync()
	return &camera
}

func (c *Camera) Value(p pose.Property) (float64, bool) {
	return c.Pose.Value(p)
}

func (c *Camera) SetValue(p pose.Property, v float64) bool {
	return c.Pose.SetValue(p, v)
}

// SetPose replaces the scripted pose, as scenes do before their sequence starts.
func (c *Camera) SetPose(p pose.Pose) {
	c.Pose = p
	c.Sync()
}

func (c *Camera) SetAspectRatio(width, height int32) {
	if width <= 0 || height <= 0 {
		c.AspectRatio = 1
		return
	}
	c.AspectRatio = float32(width) / float32(height)
}

// World returns the camera pose after applying its mount.
func (c *Camera) World() (mgl64.Vec3, mgl64.Quat) {
	local := pose.Orientation(c.Pose.Rotation)
	if c.Mount == nil {
		return c.Pose.Position, local
	}
	parent := pose.Orientation(c.Mount.Rotation)
	position := c.Mount.Position.Add(parent.Rotate(c.Pose.Position))
	return position, parent.Mul(local).Normalize()
}

// Sync rebuilds the direction vectors and matrices from the pose.
func (c *Camera) Sync() {
	position, orientation := c.World()

	c.Position = vec32(position)
	c.Front = vec32(orientation.Rotate(mgl64.Vec3{0, 0, -1})).Normalize()
	c.Up = vec32(orientation.Rotate(mgl64.Vec3{0, 1, 0})).Normalize()
	c.Right = c.Front.Cross(c.Up).Normalize()
	c.View = mgl32.LookAtV(c.Position, c.Position.Add(c.Front), c.Up)
	c.UpdateProjection()
}

func (c *Camera) UpdateProjection() {
	fov := c.Pose.Fov
	if fov <= 0 || fov >= 180 {
		fov = defaultFov
	}
	c.Projection = mgl32.Perspective(mgl32.DegToRad(float32(fov)), c.AspectRatio, c.Near, c.Far)
}

func (c *Camera) GetViewMatrix() mgl32.Mat4 {
	return c.View
}

func (c *Camera) GetProjectionMatrix() mgl32.Mat4 {
	return c.Projection
}

func (c *Camera) GetViewProjection() mgl32.Mat4 {
	return c.Projection.Mul4(c.View)
}

func vec32(v mgl64.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{float32(v[0]), float32(v[1]), float32(v[2])}
}

func (c *Camera) CalculateFrustum() Frustum {
	var frustum Frustum
	vp := c.GetViewProjection()

	// Left, right, bottom, top, near, far
	frustum.Planes[0] = Plane{Normal: mgl32.Vec3{vp[3] + vp[0], vp[7] + vp[4], vp[11] + vp[8]}, Distance: vp[15] + vp[12]}
	frustum.Planes[1] = Plane{Normal: mgl32.Vec3{vp[3] - vp[0], vp[7] - vp[4], vp[11] - vp[8]}, Distance: vp[15] - vp[12]}
	frustum.Planes[2] = Plane{Normal: mgl32.Vec3{vp[3] + vp[1], vp[7] + vp[5], vp[11] + vp[9]}, Distance: vp[15] + vp[13]}
	frustum.Planes[3] = Plane{Normal: mgl32.Vec3{vp[3] - vp[1], vp[7] - vp[5], vp[11] - vp[9]}, Distance: vp[15] - vp[13]}
	frustum.Planes[4] = Plane{Normal: mgl32.Vec3{vp[3] + vp[2], vp[7] + vp[6], vp[11] + vp[10]}, Distance: vp[15] + vp[14]}
	frustum.Planes[5] = Plane{Normal: mgl32.Vec3{vp[3] - vp[2], vp[7] - vp[6], vp[11] - vp[10]}, Distance: vp[15] - vp[14]}

	for i := 0; i < 6; i++ {
		length := frustum.Planes[i].Normal.Len()
		frustum.Planes[i].Normal = frustum.Planes[i].Normal.Mul(1.0 / length)
		frustum.Planes[i].Distance /= length
	}

	return frustum
}

func (p *Plane) DistanceToPoint(point mgl32.Vec3) float32 {
	return p.Normal.Dot(point) + p.Distance
}

func (f *Frustum) IntersectsSphere(center mgl32.Vec3, radius float32) bool {
	for _, plane := range f.Planes {
		if plane.DistanceToPoint(center) < -radius {
			return false
		}
	}
	return true
}

// Sees reports whether a sphere around center is inside the view.
func (c *Camera) Sees(center mgl64.Vec3, radius float64) bool {
	frustum := c.CalculateFrustum()
	return frustum.IntersectsSphere(vec32(center), float32(radius))
}
