package geometry

import (
	"bytes"
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// LoadGLTF decodes a glTF or GLB document and returns its first triangle
// primitive as an indexed mesh. Buffers must be embedded (GLB or data URIs).
// Source normals are ignored and recomputed with ComputeVertexNormals so every
// indexed mesh shades the same way.
func LoadGLTF(data []byte) (*Mesh, error) {
	doc := new(gltf.Document)
	if err := gltf.NewDecoder(bytes.NewReader(data)).Decode(doc); err != nil {
		return nil, fmt.Errorf("decoding gltf: %w", err)
	}

	for _, mesh := range doc.Meshes {
		for _, prim := range mesh.Primitives {
			if prim.Mode != gltf.PrimitiveTriangles {
				continue
			}
			return loadPrimitive(doc, prim)
		}
	}
	return nil, fmt.Errorf("%w: gltf has no triangle primitive", ErrInvalidMesh)
}

func loadPrimitive(doc *gltf.Document, prim *gltf.Primitive) (*Mesh, error) {
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil, fmt.Errorf("%w: primitive has no POSITION attribute", ErrInvalidMesh)
	}
	if int(posIdx) >= len(doc.Accessors) {
		return nil, fmt.Errorf("%w: POSITION accessor %d out of range", ErrInvalidMesh, posIdx)
	}

	points, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return nil, fmt.Errorf("reading positions: %w", err)
	}

	positions := make([]float32, 0, len(points)*3)
	for _, p := range points {
		positions = append(positions, p[0], p[1], p[2])
	}

	var indices []uint32
	if prim.Indices != nil {
		if int(*prim.Indices) >= len(doc.Accessors) {
			return nil, fmt.Errorf("%w: index accessor %d out of range", ErrInvalidMesh, *prim.Indices)
		}
		indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return nil, fmt.Errorf("reading indices: %w", err)
		}
	} else {
		indices = make([]uint32, len(points))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}

	return NewIndexed(positions, indices)
}
