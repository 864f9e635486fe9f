package geometry

import (
	"fmt"

	"github.com/Faultbox/orbitview/pkg/math"
)

// ComputeVertexNormals returns smooth per-vertex normals for an indexed
// triangle list. Each triangle adds its unnormalized face normal
// (b-a)x(c-a) to its three vertices; every sum is then normalized, with a
// divisor of 1 for zero-length sums so isolated vertices get (0,0,0).
func ComputeVertexNormals(positions []float32, indices []uint32) ([]float32, error) {
	if len(positions)%3 != 0 {
		return nil, fmt.Errorf("%w: %d position floats is not a multiple of 3", ErrInvalidMesh, len(positions))
	}
	if len(indices)%3 != 0 {
		return nil, fmt.Errorf("%w: %d indices do not form whole triangles", ErrInvalidMesh, len(indices))
	}

	vertexCount := uint32(len(positions) / 3)
	sums := make([]math.Vec3, vertexCount)

	for t := 0; t < len(indices); t += 3 {
		ia, ib, ic := indices[t], indices[t+1], indices[t+2]
		if ia >= vertexCount || ib >= vertexCount || ic >= vertexCount {
			return nil, fmt.Errorf("%w: triangle %d references vertex beyond %d", ErrInvalidMesh, t/3, vertexCount)
		}
		a, b, c := vertexAt(positions, ia), vertexAt(positions, ib), vertexAt(positions, ic)
		face := b.Sub(a).Cross(c.Sub(a))

		sums[ia] = sums[ia].Add(face)
		sums[ib] = sums[ib].Add(face)
		sums[ic] = sums[ic].Add(face)
	}

	normals := make([]float32, len(positions))
	for i, s := range sums {
		n := s.Normalize()
		normals[i*3+0] = n.X
		normals[i*3+1] = n.Y
		normals[i*3+2] = n.Z
	}
	return normals, nil
}

// FlatNormals returns per-vertex normals for a non-indexed triangle list:
// every vertex of a triangle receives that triangle's unit face normal.
func FlatNormals(positions []float32) ([]float32, error) {
	if len(positions)%9 != 0 {
		return nil, fmt.Errorf("%w: %d floats do not form whole triangles", ErrInvalidMesh, len(positions))
	}

	normals := make([]float32, 0, len(positions))
	for i := 0; i < len(positions); i += 9 {
		a := vertexAt(positions, uint32(i/3))
		b := vertexAt(positions, uint32(i/3+1))
		c := vertexAt(positions, uint32(i/3+2))
		n := b.Sub(a).Cross(c.Sub(a)).Normalize()
		for k := 0; k < 3; k++ {
			normals = append(normals, n.X, n.Y, n.Z)
		}
	}
	return normals, nil
}

// constantNormals fills count normals with n.
func constantNormals(count int, n math.Vec3) []float32 {
	out := make([]float32, count*3)
	for i := 0; i < count; i++ {
		out[i*3+0] = n.X
		out[i*3+1] = n.Y
		out[i*3+2] = n.Z
	}
	return out
}

func vertexAt(positions []float32, i uint32) math.Vec3 {
	return math.Vec3{X: positions[i*3], Y: positions[i*3+1], Z: positions[i*3+2]}
}
