package geometry

import (
	"encoding/json"
	"fmt"
	gomath "math"
)

// meshDocument is the shape of embedded mesh data:
//
//	{ "vertices": [x, y, z, ...], "indices": [a, b, c, ...], "color": [r, g, b] }
type meshDocument struct {
	Vertices []float32 `json:"vertices"`
	Indices  []float64 `json:"indices"`
	Color    []float32 `json:"color"`
}

// MeshData is a parsed mesh plus the optional color carried by the document.
type MeshData struct {
	Mesh     *Mesh
	Color    [3]float32
	HasColor bool
}

// ParseJSON parses a JSON mesh document into a smooth-shaded indexed mesh.
// The index list describes independent triangles.
func ParseJSON(data []byte) (*MeshData, error) {
	var doc meshDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMesh, err)
	}

	if len(doc.Vertices) == 0 {
		return nil, fmt.Errorf("%w: no vertices", ErrInvalidMesh)
	}

	indices := make([]uint32, len(doc.Indices))
	for i, f := range doc.Indices {
		if f < 0 || f != gomath.Trunc(f) || f > gomath.MaxUint32 {
			return nil, fmt.Errorf("%w: index %d is not a vertex number: %v", ErrInvalidMesh, i, f)
		}
		indices[i] = uint32(f)
	}

	mesh, err := NewIndexed(doc.Vertices, indices)
	if err != nil {
		return nil, err
	}

	md := &MeshData{Mesh: mesh}
	if doc.Color != nil {
		if len(doc.Color) != 3 {
			return nil, fmt.Errorf("%w: color has %d components, want 3", ErrInvalidMesh, len(doc.Color))
		}
		md.Color = [3]float32{doc.Color[0], doc.Color[1], doc.Color[2]}
		md.HasColor = true
	}
	return md, nil
}
