// Package scene owns the viewer state and drives the per-frame
// update and draw sequence.
package scene

import (
	"github.com/Faultbox/orbitview/internal/engine/animation"
	"github.com/Faultbox/orbitview/internal/engine/camera"
	"github.com/Faultbox/orbitview/internal/engine/geometry"
)

// Object is one drawable scene entry. It is never mutated after load;
// the animation policy only derives a model matrix from time.
type Object struct {
	Name      string
	Mesh      *geometry.Mesh
	Color     [3]float32
	Animation animation.Policy
}

// Viewport is the drawable size in pixels.
type Viewport struct {
	W, H int
}

// Empty reports whether nothing can be drawn.
func (v Viewport) Empty() bool {
	return v.W <= 0 || v.H <= 0
}

// Aspect returns width over height, or 1 for an empty viewport.
func (v Viewport) Aspect() float32 {
	if v.Empty() {
		return 1
	}
	return float32(v.W) / float32(v.H)
}

// DefaultAxisColors are X red, Y green, Z blue.
var DefaultAxisColors = [3][3]float32{
	{1.0, 0.15, 0.15},
	{0.15, 1.0, 0.25},
	{0.2, 0.4, 1.0},
}

// State is everything the render loop reads and mutates.
type State struct {
	Camera *camera.OrbitCamera
	Clock  *animation.Clock

	Objects []*Object

	// Reference geometry, drawn while ShowGrid is set
	Grid       *geometry.Mesh
	GridColor  [3]float32
	Axes       [3]*geometry.Mesh
	AxisColors [3][3]float32
	ShowGrid   bool

	Viewport Viewport
}
