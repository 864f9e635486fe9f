// Package camera provides the orbit camera used to view the scene.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/orbitview/pkg/math"
)

// ElevationMargin keeps the camera this far (radians) from the poles so
// the view direction never becomes parallel to the world up vector.
const ElevationMargin = 0.05

// MaxElevation is the largest allowed elevation magnitude.
const MaxElevation = math32.Pi/2 - ElevationMargin

var worldUp = math.Vec3{X: 0, Y: 1, Z: 0}

// Settings holds the tunable camera parameters.
type Settings struct {
	// Initial pose, restored by Reset
	Azimuth   float32
	Elevation float32
	Radius    float32
	Target    math.Vec3

	// Constraints
	MinRadius float32
	MaxRadius float32

	// Sensitivity
	YawSpeed   float32 // radians per pixel
	PitchSpeed float32 // radians per pixel
	ZoomSpeed  float32 // log-radius per wheel unit

	// Projection
	FovY float32 // radians
	Near float32
	Far  float32
}

// DefaultSettings returns the default orbit around the origin.
func DefaultSettings() Settings {
	return Settings{
		Azimuth:    math32.Pi * 0.35,
		Elevation:  0.35,
		Radius:     4.0,
		MinRadius:  1.2,
		MaxRadius:  25.0,
		YawSpeed:   0.005,
		PitchSpeed: 0.005,
		ZoomSpeed:  0.001,
		FovY:       math.DegToRad(60),
		Near:       0.1,
		Far:        100,
	}
}

// Frame is the per-frame camera output.
type Frame struct {
	Eye  math.Vec3
	View math.Mat4
	Proj math.Mat4
}

// OrbitCamera orbits around a target point.
// Azimuth and elevation are spherical angles of the eye around Target.
type OrbitCamera struct {
	Azimuth   float32
	Elevation float32
	Radius    float32
	Target    math.Vec3

	settings Settings

	dragging     bool
	lastX, lastY float32
}

// NewOrbitCamera creates a camera at the initial pose of s.
func NewOrbitCamera(s Settings) *OrbitCamera {
	c := &OrbitCamera{settings: s}
	c.Reset()
	return c
}

// Settings returns the camera configuration.
func (c *OrbitCamera) Settings() Settings {
	return c.settings
}

// Reset restores the initial pose.
func (c *OrbitCamera) Reset() {
	c.Azimuth = c.settings.Azimuth
	c.Elevation = c.settings.Elevation
	c.Radius = c.settings.Radius
	c.Target = c.settings.Target
	c.dragging = false
	c.clamp()
}

// Dragging reports whether a drag is in progress.
func (c *OrbitCamera) Dragging() bool {
	return c.dragging
}

// BeginDrag starts a drag at the given pointer position.
func (c *OrbitCamera) BeginDrag(x, y float32) {
	c.dragging = true
	c.lastX = x
	c.lastY = y
}

// Drag rotates the camera by the pointer movement since the last position.
// It does nothing unless a drag is in progress.
func (c *OrbitCamera) Drag(x, y float32) {
	if !c.dragging {
		return
	}
	dx := x - c.lastX
	dy := y - c.lastY
	c.lastX = x
	c.lastY = y

	c.Azimuth -= dx * c.settings.YawSpeed
	c.Elevation += dy * c.settings.PitchSpeed
	c.clamp()
}

// EndDrag finishes the current drag.
func (c *OrbitCamera) EndDrag() {
	c.dragging = false
}

// Zoom scales the radius by exp(delta*ZoomSpeed): positive delta moves away.
func (c *OrbitCamera) Zoom(delta float32) {
	c.Radius *= math32.Exp(delta * c.settings.ZoomSpeed)
	c.clamp()
}

// Eye returns the camera position in world space.
func (c *OrbitCamera) Eye() math.Vec3 {
	cosEl := math32.Cos(c.Elevation)
	offset := math.Vec3{
		X: c.Radius * cosEl * math32.Sin(c.Azimuth),
		Y: c.Radius * math32.Sin(c.Elevation),
		Z: c.Radius * cosEl * math32.Cos(c.Azimuth),
	}
	return c.Target.Add(offset)
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Eye(), c.Target, worldUp)
}

// ProjectionMatrix returns the perspective projection for the viewport aspect.
func (c *OrbitCamera) ProjectionMatrix(aspect float32) math.Mat4 {
	return math.Perspective(c.settings.FovY, aspect, c.settings.Near, c.settings.Far)
}

// Compute derives eye, view and projection for the current state.
func (c *OrbitCamera) Compute(aspect float32) Frame {
	eye := c.Eye()
	return Frame{
		Eye:  eye,
		View: math.LookAt(eye, c.Target, worldUp),
		Proj: c.ProjectionMatrix(aspect),
	}
}

func (c *OrbitCamera) clamp() {
	if c.Elevation < -MaxElevation {
		c.Elevation = -MaxElevation
	}
	if c.Elevation > MaxElevation {
		c.Elevation = MaxElevation
	}
	if c.Radius < c.settings.MinRadius {
		c.Radius = c.settings.MinRadius
	}
	if c.Radius > c.settings.MaxRadius {
		c.Radius = c.settings.MaxRadius
	}
}
