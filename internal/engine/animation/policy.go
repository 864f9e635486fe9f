// Package animation computes time-driven object transforms and keeps the
// pausable animation clock.
package animation

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/orbitview/pkg/math"
)

// Pulse oscillates the uniform scale between BaseScale and BaseScale+Amplitude.
type Pulse struct {
	Enabled   bool
	Amplitude float32
	Speed     float32 // radians of oscillation phase per second
}

// Spin rotates the object about its own Y axis.
type Spin struct {
	Speed float32 // radians per second
}

// Orbit moves the object on a circle of Radius in the XZ plane.
type Orbit struct {
	Speed  float32 // radians per second
	Radius float32
	Phase  float32 // starting angle in radians
}

// Active reports whether the orbit contributes a translation.
func (o Orbit) Active() bool {
	return o.Speed != 0 && o.Radius != 0
}

// Policy is the complete animation description of one scene object.
// Behaviors compose: pulse and base scale first, then spin, then orbit,
// then the fixed placement Offset.
type Policy struct {
	BaseScale float32
	Pulse     Pulse
	Spin      Spin
	Orbit     Orbit
	Offset    math.Vec3
}

// Static returns the neutral policy: unit scale, no motion, no offset.
func Static() Policy {
	return Policy{BaseScale: 1}
}

// ScaleAt returns the uniform scale at animation time t (seconds).
func (p Policy) ScaleAt(t float32) float32 {
	s := p.BaseScale
	if p.Pulse.Enabled {
		s += p.Pulse.Amplitude * (0.5 + 0.5*math32.Sin(t*p.Pulse.Speed))
	}
	return s
}

// Model returns the model matrix at animation time t (seconds).
func (p Policy) Model(t float32) math.Mat4 {
	s := p.ScaleAt(t)
	model := math.UniformScale(s)

	if p.Spin.Speed != 0 {
		model = model.Mul(math.RotateY(t * p.Spin.Speed))
	}

	if p.Orbit.Active() {
		angle := p.Orbit.Phase + t*p.Orbit.Speed
		offset := math.Translate(
			p.Orbit.Radius*math32.Cos(angle),
			0,
			p.Orbit.Radius*math32.Sin(angle),
		)
		model = offset.Mul(model)
	}

	if !p.Offset.IsZero() {
		model = math.TranslateVec(p.Offset).Mul(model)
	}

	return model
}
