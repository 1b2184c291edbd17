// Package camera provides the orbit camera and the screen-to-world view.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/bouncebox/internal/engine/picking"
	"github.com/Faultbox/bouncebox/pkg/math"
)

// OrbitCamera orbits around a center point.
// At zero pitch and yaw it sits on +Z looking down -Z.
type OrbitCamera struct {
	Center math.Vec3

	// Spherical coordinates
	Distance float32
	Pitch    float32 // Vertical angle, radians
	Yaw      float32 // Horizontal angle, radians

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32
}

// NewOrbitCamera creates an orbit camera at the given distance from the origin.
func NewOrbitCamera(distance float32) *OrbitCamera {
	return &OrbitCamera{
		Distance:        distance,
		MinDistance:     distance / 4,
		MaxDistance:     distance * 4,
		MinPitch:        -1.5,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	cp := math32.Cos(c.Pitch)
	return c.Center.Add(math.Vec3{
		X: c.Distance * cp * math32.Sin(c.Yaw),
		Y: c.Distance * math32.Sin(c.Pitch),
		Z: c.Distance * cp * math32.Cos(c.Yaw),
	})
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position(), c.Center, math.Vec3{Y: 1})
}

// HandleDrag updates rotation based on mouse drag delta in pixels.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.Yaw -= deltaX * c.DragSensitivity
	c.Pitch += deltaY * c.DragSensitivity

	if c.Pitch < c.MinPitch {
		c.Pitch = c.MinPitch
	}
	if c.Pitch > c.MaxPitch {
		c.Pitch = c.MaxPitch
	}
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	if c.Distance < c.MinDistance {
		c.Distance = c.MinDistance
	}
	if c.Distance > c.MaxDistance {
		c.Distance = c.MaxDistance
	}
}

// View combines a camera with a perspective projection and a viewport.
type View struct {
	Camera     *OrbitCamera
	FOVDegrees float32
	Near, Far  float32

	width, height int
}

// NewView creates a view of the given viewport size.
func NewView(cam *OrbitCamera, fovDegrees, near, far float32, width, height int) *View {
	return &View{
		Camera:     cam,
		FOVDegrees: fovDegrees,
		Near:       near,
		Far:        far,
		width:      width,
		height:     height,
	}
}

// Resize updates the viewport size.
func (v *View) Resize(width, height int) {
	if width > 0 && height > 0 {
		v.width, v.height = width, height
	}
}

// Size returns the viewport size in pixels.
func (v *View) Size() (width, height int) {
	return v.width, v.height
}

// Projection returns the perspective projection matrix.
func (v *View) Projection() math.Mat4 {
	aspect := float32(v.width) / float32(v.height)
	return math.Perspective(math.Radians(v.FOVDegrees), aspect, v.Near, v.Far)
}

// ViewProjection returns projection * view.
func (v *View) ViewProjection() math.Mat4 {
	return v.Projection().Mul(v.Camera.ViewMatrix())
}

// ScreenToWorld converts a pixel position plus normalized depth
// (-1 near plane, 1 far plane) to a world-space point.
func (v *View) ScreenToWorld(screen math.Vec3) math.Vec3 {
	return picking.Unproject(screen, float32(v.width), float32(v.height), v.ViewProjection().Inverse())
}
