// Package camera provides the map viewer camera.
package camera

import "github.com/terravista/terravista/pkg/math"

// MapCamera orbits a point on the map surface. It can switch to an
// orthographic top-down projection for map overviews.
type MapCamera struct {
	// Center point on the map to orbit around
	Center math.Vec3

	// Spherical coordinates
	Distance float32 // Distance from center
	Pitch    float32 // Vertical angle, radians
	Yaw      float32 // Horizontal angle, radians

	// Projection
	FOV          float32 // Vertical field of view, radians
	Aspect       float32 // width / height
	NearPlane    float32
	FarPlane     float32
	Orthographic bool

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32
}

// New creates a map camera with default settings.
func New(aspect float32) *MapCamera {
	return &MapCamera{
		Distance:        600,
		Pitch:           0.7,
		Yaw:             0,
		FOV:             math.Pi / 3,
		Aspect:          aspect,
		NearPlane:       1,
		FarPlane:        5000,
		MinDistance:     20,
		MaxDistance:     4000,
		MinPitch:        0.1,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
	}
}

// Position returns the camera position in world space.
func (c *MapCamera) Position() math.Vec3 {
	x := c.Distance * math.Cos(c.Pitch) * math.Sin(c.Yaw)
	y := c.Distance * math.Sin(c.Pitch)
	z := c.Distance * math.Cos(c.Pitch) * math.Cos(c.Yaw)
	return c.Center.Add(math.Vec3{X: x, Y: y, Z: z})
}

// ViewMatrix returns the world-to-view transform.
func (c *MapCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position(), c.Center, math.Vec3{Y: 1})
}

// ProjectionMatrix returns the current projection. Orthographic mode
// sizes the view volume from the orbit distance so zooming still works.
func (c *MapCamera) ProjectionMatrix() math.Mat4 {
	if c.Orthographic {
		halfH := c.Distance * 0.5
		halfW := halfH * c.Aspect
		return math.Ortho(-halfW, halfW, -halfH, halfH, c.NearPlane, c.FarPlane)
	}
	return math.Perspective(c.FOV, c.Aspect, c.NearPlane, c.FarPlane)
}

// Near returns the near plane distance.
func (c *MapCamera) Near() float32 {
	return c.NearPlane
}

// Far returns the far plane distance.
func (c *MapCamera) Far() float32 {
	return c.FarPlane
}

// Resize updates the aspect ratio after a window resize.
func (c *MapCamera) Resize(width, height int) {
	if height > 0 {
		c.Aspect = float32(width) / float32(height)
	}
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *MapCamera) HandleDrag(deltaX, deltaY float32) {
	c.Yaw -= deltaX * c.DragSensitivity
	c.Pitch += deltaY * c.DragSensitivity
	c.Pitch = math.Clamp(c.Pitch, c.MinPitch, c.MaxPitch)
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *MapCamera) HandleZoom(delta float32) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	c.Distance = math.Clamp(c.Distance, c.MinDistance, c.MaxDistance)
}

// HandlePan moves the orbit center on the map plane relative to the
// current yaw.
func (c *MapCamera) HandlePan(forward, right float32) {
	speed := c.Distance * 0.01
	dirX := math.Sin(c.Yaw)
	dirZ := math.Cos(c.Yaw)

	c.Center.X += (-dirX*forward + dirZ*right) * speed
	c.Center.Z += (-dirZ*forward - dirX*right) * speed
}
