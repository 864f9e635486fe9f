package geometry

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
	"testing"

	"github.com/chewxy/math32"

	"github.com/Faultbox/orbitview/pkg/math"
)

func TestGridCounts(t *testing.T) {
	tests := []struct {
		size      float32
		divisions int
		vertices  int
	}{
		{20, 20, 84},
		{6, 12, 52},
		{1, 1, 8},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%vx%d", tt.size, tt.divisions), func(t *testing.T) {
			g, err := Grid(tt.size, tt.divisions, 0)
			if err != nil {
				t.Fatalf("Grid: %v", err)
			}
			if got := g.VertexCount(); got != tt.vertices {
				t.Errorf("vertex count = %d, want %d", got, tt.vertices)
			}
			if segs := g.DrawCount() / 2; segs != 2*(tt.divisions+1) {
				t.Errorf("segments = %d, want %d", segs, 2*(tt.divisions+1))
			}
			if g.Mode != Lines || g.Indexed() {
				t.Errorf("grid should be a non-indexed line list")
			}
			if err := g.Validate(); err != nil {
				t.Errorf("Validate: %v", err)
			}
		})
	}
}

func TestGridLayout(t *testing.T) {
	g, err := Grid(4, 2, -0.5)
	if err != nil {
		t.Fatalf("Grid: %v", err)
	}

	// First pair of lines: along X at z=-2, along Z at x=-2.
	want := []float32{
		-2, -0.5, -2, 2, -0.5, -2,
		-2, -0.5, -2, -2, -0.5, 2,
	}
	for i, w := range want {
		if g.Positions[i] != w {
			t.Fatalf("position[%d] = %v, want %v", i, g.Positions[i], w)
		}
	}
	// Last line along Z sits at x=+2.
	n := len(g.Positions)
	if g.Positions[n-6] != 2 || g.Positions[n-3] != 2 {
		t.Errorf("last line x = %v/%v, want 2", g.Positions[n-6], g.Positions[n-3])
	}
	for i := 0; i < len(g.Normals); i += 3 {
		if g.Normals[i] != 0 || g.Normals[i+1] != 1 || g.Normals[i+2] != 0 {
			t.Fatalf("normal %d = %v, want up", i/3, g.Normals[i:i+3])
		}
	}
}

func TestGridInvalid(t *testing.T) {
	if _, err := Grid(10, 0, 0); !errors.Is(err, ErrInvalidMesh) {
		t.Errorf("zero divisions: got %v, want ErrInvalidMesh", err)
	}
	if _, err := Grid(-1, 4, 0); !errors.Is(err, ErrInvalidMesh) {
		t.Errorf("negative size: got %v, want ErrInvalidMesh", err)
	}
}

func TestSphere(t *testing.T) {
	s, err := Sphere(8, 12, 2)
	if err != nil {
		t.Fatalf("Sphere: %v", err)
	}
	if got, want := s.VertexCount(), 9*13; got != want {
		t.Errorf("vertex count = %d, want %d", got, want)
	}
	if got, want := len(s.Indices), 8*12*6; got != want {
		t.Errorf("index count = %d, want %d", got, want)
	}
	if err := s.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	for i := 0; i < s.VertexCount(); i++ {
		p := vertexAt(s.Positions, uint32(i))
		n := vertexAt(s.Normals, uint32(i))
		if d := math32.Abs(p.Length() - 2); d > 1e-5 {
			t.Fatalf("vertex %d at distance %v, want 2", i, p.Length())
		}
		if d := n.Sub(p.Scale(0.5)).Length(); d > 1e-5 {
			t.Fatalf("normal %d = %v, want direction of %v", i, n, p)
		}
	}

	// Second triangle of the first quad uses the row stride.
	if s.Indices[3] != 13 || s.Indices[4] != 14 || s.Indices[5] != 1 {
		t.Errorf("second triangle = %v, want [13 14 1]", s.Indices[3:6])
	}
}

func TestSphereInvalid(t *testing.T) {
	if _, err := Sphere(1, 12, 1); err == nil {
		t.Error("expected error for too few latitude bands")
	}
	if _, err := Sphere(8, 12, 0); err == nil {
		t.Error("expected error for zero radius")
	}
}

func TestSingleTriangleNormals(t *testing.T) {
	positions := []float32{
		0, 0, 0,
		2, 0, 0,
		0, 0, -3,
	}
	normals, err := ComputeVertexNormals(positions, []uint32{0, 1, 2})
	if err != nil {
		t.Fatalf("ComputeVertexNormals: %v", err)
	}

	// (2,0,0) x (0,0,-3) = (0,6,0) -> up
	for v := uint32(0); v < 3; v++ {
		n := vertexAt(normals, v)
		if n.Sub(math.Vec3{Y: 1}).Length() > 1e-6 {
			t.Errorf("vertex %d normal = %v, want (0,1,0)", v, n)
		}
		if math32.Abs(n.Length()-1) > 1e-6 {
			t.Errorf("vertex %d normal not unit: %v", v, n.Length())
		}
	}
}

func TestSharedEdgeNormalsAverage(t *testing.T) {
	// Two triangles folded 90 degrees along the edge (0,0,0)-(0,0,1):
	// one lies in the XZ plane facing +Y, the other in the YZ plane facing +X.
	positions := []float32{
		0, 0, 0, // 0 shared
		0, 0, 1, // 1 shared
		1, 0, 0, // 2 floor
		0, 1, 0, // 3 wall
	}
	indices := []uint32{
		0, 1, 2,
		0, 3, 1,
	}
	normals, err := ComputeVertexNormals(positions, indices)
	if err != nil {
		t.Fatalf("ComputeVertexNormals: %v", err)
	}

	floor := vertexAt(normals, 2)
	wall := vertexAt(normals, 3)
	if floor.Sub(math.Vec3{Y: 1}).Length() > 1e-6 {
		t.Errorf("unshared floor vertex normal = %v, want (0,1,0)", floor)
	}
	if wall.Sub(math.Vec3{X: 1}).Length() > 1e-6 {
		t.Errorf("unshared wall vertex normal = %v, want (1,0,0)", wall)
	}

	want := math.Vec3{X: 1, Y: 1}.Normalize()
	for _, v := range []uint32{0, 1} {
		n := vertexAt(normals, v)
		if n.Sub(want).Length() > 1e-6 {
			t.Errorf("shared vertex %d normal = %v, want %v", v, n, want)
		}
	}
}

func TestIsolatedVertexNormalIsNotNaN(t *testing.T) {
	positions := []float32{
		0, 0, 0,
		1, 0, 0,
		0, 1, 0,
		5, 5, 5, // unused
	}
	normals, err := ComputeVertexNormals(positions, []uint32{0, 1, 2})
	if err != nil {
		t.Fatalf("ComputeVertexNormals: %v", err)
	}
	n := vertexAt(normals, 3)
	if math32.IsNaN(n.X) || !n.IsZero() {
		t.Errorf("isolated vertex normal = %v, want zero", n)
	}
}

func TestComputeVertexNormalsInvalid(t *testing.T) {
	positions := []float32{0, 0, 0, 1, 0, 0, 0, 1, 0}
	if _, err := ComputeVertexNormals(positions, []uint32{0, 1, 3}); !errors.Is(err, ErrInvalidMesh) {
		t.Errorf("out of range index: got %v, want ErrInvalidMesh", err)
	}
	if _, err := ComputeVertexNormals(positions, []uint32{0, 1}); !errors.Is(err, ErrInvalidMesh) {
		t.Errorf("partial triangle: got %v, want ErrInvalidMesh", err)
	}
}

func TestCubeFlatNormals(t *testing.T) {
	c := Cube(2)
	if c.VertexCount() != 36 || c.Indexed() {
		t.Fatalf("cube should be 36 non-indexed vertices, got %d", c.VertexCount())
	}
	for i := 0; i < c.VertexCount(); i++ {
		p := vertexAt(c.Positions, uint32(i))
		n := vertexAt(c.Normals, uint32(i))
		if math32.Abs(n.Length()-1) > 1e-6 {
			t.Fatalf("normal %d not unit: %v", i, n)
		}
		// Outward facing: the normal points the same way as the vertex.
		if n.Dot(p) <= 0 {
			t.Fatalf("normal %d = %v points inward at %v", i, n, p)
		}
	}
}

func TestAxes(t *testing.T) {
	x, y, z := Axes(2)
	for i, m := range []*Mesh{x, y, z} {
		if m.VertexCount() != 2 || m.Mode != Lines {
			t.Fatalf("axis %d: %d vertices mode %v", i, m.VertexCount(), m.Mode)
		}
		if err := m.Validate(); err != nil {
			t.Fatalf("axis %d: %v", i, err)
		}
	}
	if x.Positions[3] != 2 || y.Positions[4] != 2 || z.Positions[5] != 2 {
		t.Errorf("axis endpoints wrong: %v %v %v", x.Positions, y.Positions, z.Positions)
	}
}

func TestParseJSON(t *testing.T) {
	data := []byte(`{
		"vertices": [0,0,0, 1,0,0, 0,1,0],
		"indices": [0,1,2],
		"color": [0.5, 0.25, 1]
	}`)
	md, err := ParseJSON(data)
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	if !md.HasColor || md.Color != [3]float32{0.5, 0.25, 1} {
		t.Errorf("color = %v (has=%v)", md.Color, md.HasColor)
	}
	if md.Mesh.VertexCount() != 3 || len(md.Mesh.Indices) != 3 {
		t.Errorf("mesh = %d vertices %d indices", md.Mesh.VertexCount(), len(md.Mesh.Indices))
	}
	if n := vertexAt(md.Mesh.Normals, 0); n != (math.Vec3{Z: 1}) {
		t.Errorf("normal = %v, want (0,0,1)", n)
	}
}

func TestParseJSONWithoutColor(t *testing.T) {
	md, err := ParseJSON([]byte(`{"vertices":[0,0,0,1,0,0,0,1,0],"indices":[0,1,2]}`))
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	if md.HasColor {
		t.Error("HasColor should be false")
	}
}

func TestParseJSONMalformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"syntax", `{"vertices": [0,0,`},
		{"wrong type", `{"vertices": "abc", "indices": []}`},
		{"no vertices", `{"vertices": [], "indices": [0,1,2]}`},
		{"no indices", `{"vertices": [0,0,0,1,0,0,0,1,0]}`},
		{"partial vertex", `{"vertices": [0,0,0,1,0,0,0,1], "indices": [0,1,2]}`},
		{"partial triangle", `{"vertices": [0,0,0,1,0,0,0,1,0], "indices": [0,1]}`},
		{"index out of range", `{"vertices": [0,0,0,1,0,0,0,1,0], "indices": [0,1,3]}`},
		{"negative index", `{"vertices": [0,0,0,1,0,0,0,1,0], "indices": [0,-1,2]}`},
		{"fractional index", `{"vertices": [0,0,0,1,0,0,0,1,0], "indices": [0,1.5,2]}`},
		{"bad color", `{"vertices": [0,0,0,1,0,0,0,1,0], "indices": [0,1,2], "color": [1,1]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseJSON([]byte(tt.data))
			if !errors.Is(err, ErrInvalidMesh) {
				t.Errorf("got %v, want ErrInvalidMesh", err)
			}
		})
	}
}

func TestLoadGLTF(t *testing.T) {
	var buf bytes.Buffer
	for _, f := range []float32{0, 0, 0, 1, 0, 0, 0, 1, 0} {
		binary.Write(&buf, binary.LittleEndian, f)
	}
	for _, i := range []uint16{0, 1, 2} {
		binary.Write(&buf, binary.LittleEndian, i)
	}
	payload := base64.StdEncoding.EncodeToString(buf.Bytes())

	doc := fmt.Sprintf(`{
		"asset": {"version": "2.0"},
		"buffers": [{"byteLength": %d, "uri": "data:application/octet-stream;base64,%s"}],
		"bufferViews": [
			{"buffer": 0, "byteOffset": 0, "byteLength": 36},
			{"buffer": 0, "byteOffset": 36, "byteLength": 6}
		],
		"accessors": [
			{"bufferView": 0, "componentType": 5126, "count": 3, "type": "VEC3", "min": [0,0,0], "max": [1,1,0]},
			{"bufferView": 1, "componentType": 5123, "count": 3, "type": "SCALAR"}
		],
		"meshes": [{"primitives": [{"attributes": {"POSITION": 0}, "indices": 1}]}]
	}`, buf.Len(), payload)

	m, err := LoadGLTF([]byte(doc))
	if err != nil {
		t.Fatalf("LoadGLTF: %v", err)
	}
	if m.VertexCount() != 3 || len(m.Indices) != 3 {
		t.Fatalf("mesh = %d vertices %d indices", m.VertexCount(), len(m.Indices))
	}
	if n := vertexAt(m.Normals, 1); n != (math.Vec3{Z: 1}) {
		t.Errorf("normal = %v, want (0,0,1)", n)
	}
}

func TestLoadGLTFGarbage(t *testing.T) {
	if _, err := LoadGLTF([]byte("not a gltf")); err == nil {
		t.Error("expected error for garbage input")
	}
}
