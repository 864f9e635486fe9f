// Package geometry builds the immutable meshes drawn by the renderer:
// procedural shapes, JSON-described meshes and glTF primitives.
package geometry

import (
	"errors"
	"fmt"
)

// ErrInvalidMesh is returned when mesh data violates the layout rules.
var ErrInvalidMesh = errors.New("invalid mesh")

// Mode selects the primitive type used to draw a mesh.
type Mode int

const (
	// Triangles draws independent triangles.
	Triangles Mode = iota
	// Lines draws independent line segments.
	Lines
)

// String returns the primitive name.
func (m Mode) String() string {
	switch m {
	case Triangles:
		return "triangles"
	case Lines:
		return "lines"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Mesh holds vertex data ready for GPU upload.
// Positions and Normals are flat xyz triples of equal length; Indices is nil
// for non-indexed lists. A Mesh is never modified after it is built and may be
// shared by several scene objects.
type Mesh struct {
	Positions []float32
	Normals   []float32
	Indices   []uint32
	Mode      Mode
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Positions) / 3
}

// Indexed reports whether the mesh is drawn through an index buffer.
func (m *Mesh) Indexed() bool {
	return m.Indices != nil
}

// DrawCount returns the element count passed to the draw call.
func (m *Mesh) DrawCount() int {
	if m.Indexed() {
		return len(m.Indices)
	}
	return m.VertexCount()
}

// Validate checks the layout invariants.
func (m *Mesh) Validate() error {
	if len(m.Positions)%3 != 0 {
		return fmt.Errorf("%w: %d position floats is not a multiple of 3", ErrInvalidMesh, len(m.Positions))
	}
	if len(m.Normals) != len(m.Positions) {
		return fmt.Errorf("%w: %d normal floats for %d position floats", ErrInvalidMesh, len(m.Normals), len(m.Positions))
	}
	per := 3
	if m.Mode == Lines {
		per = 2
	}
	n := m.DrawCount()
	if n%per != 0 {
		return fmt.Errorf("%w: %d elements do not form whole %s", ErrInvalidMesh, n, m.Mode)
	}
	vc := uint32(m.VertexCount())
	for i, idx := range m.Indices {
		if idx >= vc {
			return fmt.Errorf("%w: index %d at %d out of range (%d vertices)", ErrInvalidMesh, idx, i, vc)
		}
	}
	return nil
}

// NewIndexed builds a smooth-shaded triangle mesh from flat positions and
// triangle indices. Normals are computed with ComputeVertexNormals.
func NewIndexed(positions []float32, indices []uint32) (*Mesh, error) {
	if len(indices) == 0 {
		return nil, fmt.Errorf("%w: no triangles", ErrInvalidMesh)
	}
	normals, err := ComputeVertexNormals(positions, indices)
	if err != nil {
		return nil, err
	}
	return &Mesh{
		Positions: positions,
		Normals:   normals,
		Indices:   indices,
		Mode:      Triangles,
	}, nil
}
