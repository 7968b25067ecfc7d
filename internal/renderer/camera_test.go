package renderer

import (
	"math"
	"testing"

	"Cinematic3D/internal/pose"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestNewCamera(t *testing.T) {
	cam := NewCamera(800, 600, pose.Pose{Position: mgl64.Vec3{0, 15, 10}, Fov: 75})

	if cam == nil {
		t.Fatal("NewCamera returned nil")
	}
	if cam.Position != (mgl32.Vec3{0, 15, 10}) {
		t.Errorf("Expected position (0,15,10), got %v", cam.Position)
	}
	if math.Abs(float64(cam.AspectRatio)-800.0/600.0) > 1e-6 {
		t.Errorf("Expected aspect 4/3, got %v", cam.AspectRatio)
	}
}

func TestCameraIsAnimatable(t *testing.T) {
	cam := NewCamera(800, 600, pose.Pose{Fov: 75})

	assert.True(t, cam.SetValue(pose.Fov, 40))
	v, ok := cam.Value(pose.Fov)
	assert.True(t, ok)
	assert.Equal(t, 40.0, v)
}

func TestCameraLooksDownNegativeZ(t *testing.T) {
	cam := NewCamera(800, 600, pose.Pose{Fov: 75})

	assert.True(t, cam.Front.ApproxEqualThreshold(mgl32.Vec3{0, 0, -1}, 1e-6), "front %v", cam.Front)
	assert.True(t, cam.Up.ApproxEqualThreshold(mgl32.Vec3{0, 1, 0}, 1e-6), "up %v", cam.Up)
	assert.True(t, cam.Right.ApproxEqualThreshold(mgl32.Vec3{1, 0, 0}, 1e-6), "right %v", cam.Right)
}

func TestCameraYawTurnsLeft(t *testing.T) {
	cam := NewCamera(800, 600, pose.Pose{Rotation: mgl64.Vec3{0, math.Pi / 2, 0}, Fov: 75})

	assert.True(t, cam.Front.ApproxEqualThreshold(mgl32.Vec3{-1, 0, 0}, 1e-6), "front %v", cam.Front)
}

func TestCameraProjectionFollowsFov(t *testing.T) {
	cam := NewCamera(800, 600, pose.Pose{Fov: 75})
	wide := cam.GetProjectionMatrix()

	cam.SetValue(pose.Fov, 30)
	cam.Sync()
	narrow := cam.GetProjectionMatrix()

	if narrow.At(1, 1) <= wide.At(1, 1) {
		t.Errorf("Expected a narrower fov to scale up, got %v <= %v", narrow.At(1, 1), wide.At(1, 1))
	}
	if narrow.At(3, 3) != 0.0 {
		t.Error("Perspective projection should have w=0 at (3,3)")
	}
}

func TestCameraWithoutFovFallsBack(t *testing.T) {
	cam := NewCamera(800, 600, pose.Pose{})
	want := mgl32.Perspective(mgl32.DegToRad(defaultFov), cam.AspectRatio, cam.Near, cam.Far)

	assert.Equal(t, want, cam.Projection)
}

func TestMountedCameraRidesRig(t *testing.T) {
	rig := &pose.Rig{Position: mgl64.Vec3{0, 1.6, 8}}
	cam := NewCamera(800, 600, pose.Pose{Position: mgl64.Vec3{0, 0.5, 2}, Fov: 75})
	cam.Mount = rig
	cam.Sync()

	assert.True(t, cam.Position.ApproxEqualThreshold(mgl32.Vec3{0, 2.1, 10}, 1e-5), "position %v", cam.Position)

	// A half turn of the rig swings the camera to the other side.
	rig.Rotation = mgl64.Vec3{0, math.Pi, 0}
	cam.Sync()
	assert.True(t, cam.Position.ApproxEqualThreshold(mgl32.Vec3{0, 2.1, 6}, 1e-5), "position %v", cam.Position)
	assert.True(t, cam.Front.ApproxEqualThreshold(mgl32.Vec3{0, 0, 1}, 1e-5), "front %v", cam.Front)
}

func TestCameraSees(t *testing.T) {
	cam := NewCamera(800, 600, pose.Pose{Position: mgl64.Vec3{0, 0, 10}, Fov: 75})

	assert.True(t, cam.Sees(mgl64.Vec3{0, 0, 0}, 1))
	assert.False(t, cam.Sees(mgl64.Vec3{0, 0, 30}, 1), "behind the camera")
}

func TestCameraViewProjection(t *testing.T) {
	cam := NewCamera(800, 600, pose.Pose{Fov: 75})

	zero := mgl32.Mat4{}
	if cam.GetViewProjection() == zero {
		t.Error("ViewProjection should not be zero matrix")
	}
	if cam.GetViewMatrix().At(3, 3) != 1.0 {
		t.Error("View matrix should be valid (w component = 1)")
	}
}
