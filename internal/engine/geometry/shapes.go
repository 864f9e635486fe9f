package geometry

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/orbitview/pkg/math"
)

var up = math.Vec3{X: 0, Y: 1, Z: 0}

// Grid generates a ground grid as a line list on the plane y.
// It spans [-size/2, size/2] on X and Z with divisions cells per side:
// divisions+1 lines along X and divisions+1 lines along Z, 4*(divisions+1)
// vertices in total. Normals all point up.
func Grid(size float32, divisions int, y float32) (*Mesh, error) {
	if divisions <= 0 {
		return nil, fmt.Errorf("%w: grid divisions must be positive, got %d", ErrInvalidMesh, divisions)
	}
	if size <= 0 {
		return nil, fmt.Errorf("%w: grid size must be positive, got %f", ErrInvalidMesh, size)
	}

	half := size / 2
	step := size / float32(divisions)
	positions := make([]float32, 0, 12*(divisions+1))

	for i := 0; i <= divisions; i++ {
		t := -half + float32(i)*step
		// Line along X at z = t
		positions = append(positions, -half, y, t, half, y, t)
		// Line along Z at x = t
		positions = append(positions, t, y, -half, t, y, half)
	}

	return &Mesh{
		Positions: positions,
		Normals:   constantNormals(len(positions)/3, up),
		Mode:      Lines,
	}, nil
}

// Axes returns three 2-vertex line meshes from the origin along +X, +Y and +Z.
func Axes(length float32) (x, y, z *Mesh) {
	line := func(dx, dy, dz float32) *Mesh {
		return &Mesh{
			Positions: []float32{0, 0, 0, dx, dy, dz},
			Normals:   constantNormals(2, up),
			Mode:      Lines,
		}
	}
	return line(length, 0, 0), line(0, length, 0), line(0, 0, length)
}

// Sphere generates an indexed UV sphere centered at the origin.
// It has (latBands+1)*(lonBands+1) vertices using polar angle v*pi and
// azimuth u*2pi; each quad becomes two triangles with a row stride of
// lonBands+1. Normals are the unit position directions.
func Sphere(latBands, lonBands int, radius float32) (*Mesh, error) {
	if latBands < 2 || lonBands < 3 {
		return nil, fmt.Errorf("%w: sphere needs at least 2x3 bands, got %dx%d", ErrInvalidMesh, latBands, lonBands)
	}
	if radius <= 0 {
		return nil, fmt.Errorf("%w: sphere radius must be positive, got %f", ErrInvalidMesh, radius)
	}

	vertexCount := (latBands + 1) * (lonBands + 1)
	positions := make([]float32, 0, vertexCount*3)
	normals := make([]float32, 0, vertexCount*3)

	for lat := 0; lat <= latBands; lat++ {
		theta := float32(lat) / float32(latBands) * math32.Pi
		sinT, cosT := math32.Sin(theta), math32.Cos(theta)

		for lon := 0; lon <= lonBands; lon++ {
			phi := float32(lon) / float32(lonBands) * 2 * math32.Pi
			sinP, cosP := math32.Sin(phi), math32.Cos(phi)

			nx := cosP * sinT
			ny := cosT
			nz := sinP * sinT

			normals = append(normals, nx, ny, nz)
			positions = append(positions, radius*nx, radius*ny, radius*nz)
		}
	}

	stride := uint32(lonBands + 1)
	indices := make([]uint32, 0, latBands*lonBands*6)
	for lat := uint32(0); lat < uint32(latBands); lat++ {
		for lon := uint32(0); lon < uint32(lonBands); lon++ {
			first := lat*stride + lon
			second := first + stride
			indices = append(indices,
				first, second, first+1,
				second, second+1, first+1,
			)
		}
	}

	return &Mesh{
		Positions: positions,
		Normals:   normals,
		Indices:   indices,
		Mode:      Triangles,
	}, nil
}

// unitCube is a 36-vertex triangle list for a cube of edge 1 centered at the origin.
var unitCube = []float32{
	// Front face (z = +0.5)
	-0.5, -0.5, 0.5, 0.5, -0.5, 0.5, 0.5, 0.5, 0.5,
	-0.5, -0.5, 0.5, 0.5, 0.5, 0.5, -0.5, 0.5, 0.5,
	// Back face (z = -0.5)
	-0.5, -0.5, -0.5, -0.5, 0.5, -0.5, 0.5, 0.5, -0.5,
	-0.5, -0.5, -0.5, 0.5, 0.5, -0.5, 0.5, -0.5, -0.5,
	// Left
	-0.5, -0.5, -0.5, -0.5, -0.5, 0.5, -0.5, 0.5, 0.5,
	-0.5, -0.5, -0.5, -0.5, 0.5, 0.5, -0.5, 0.5, -0.5,
	// Right
	0.5, -0.5, -0.5, 0.5, 0.5, -0.5, 0.5, 0.5, 0.5,
	0.5, -0.5, -0.5, 0.5, 0.5, 0.5, 0.5, -0.5, 0.5,
	// Top
	-0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, -0.5,
	-0.5, 0.5, 0.5, 0.5, 0.5, -0.5, -0.5, 0.5, -0.5,
	// Bottom
	-0.5, -0.5, 0.5, -0.5, -0.5, -0.5, 0.5, -0.5, -0.5,
	-0.5, -0.5, 0.5, 0.5, -0.5, -0.5, 0.5, -0.5, 0.5,
}

// Cube returns a flat-shaded, non-indexed cube with the given edge length.
func Cube(size float32) *Mesh {
	positions := make([]float32, len(unitCube))
	for i, v := range unitCube {
		positions[i] = v * size
	}
	// unitCube is a whole number of triangles, so this cannot fail.
	normals, _ := FlatNormals(positions)

	return &Mesh{
		Positions: positions,
		Normals:   normals,
		Mode:      Triangles,
	}
}
