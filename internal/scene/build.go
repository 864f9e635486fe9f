package scene

import (
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/orbitview/internal/config"
	"github.com/Faultbox/orbitview/internal/engine/animation"
	"github.com/Faultbox/orbitview/internal/engine/camera"
	"github.com/Faultbox/orbitview/internal/engine/geometry"
	"github.com/Faultbox/orbitview/internal/logger"
	"github.com/Faultbox/orbitview/pkg/math"
)

// Built-in mesh parameters.
const (
	CubeSize     = 1.0
	SphereRadius = 0.5
	SphereLat    = 24
	SphereLon    = 32

	assetPrefix = "asset:"
)

// DefaultObjectColor is used when neither the config nor the mesh data
// provides a color.
var DefaultObjectColor = [3]float32{0.8, 0.8, 0.8}

// MeshSource provides raw geometry data.
type MeshSource interface {
	// Load reads a path relative to the asset roots.
	Load(name string) ([]byte, error)
	// LoadFile reads a path on the OS file system.
	LoadFile(filename string) ([]byte, error)
}

// CameraSettings converts the camera config section.
func CameraSettings(c config.CameraConfig) camera.Settings {
	return camera.Settings{
		Azimuth:    c.Azimuth,
		Elevation:  c.Elevation,
		Radius:     c.Radius,
		Target:     math.V3(c.Target),
		MinRadius:  c.MinRadius,
		MaxRadius:  c.MaxRadius,
		YawSpeed:   c.YawSpeed,
		PitchSpeed: c.PitchSpeed,
		ZoomSpeed:  c.ZoomSpeed,
		FovY:       math.DegToRad(c.FovDeg),
		Near:       c.Near,
		Far:        c.Far,
	}
}

// Policy converts an object's animation config. A zero scale means 1.
func Policy(a config.AnimationConfig) animation.Policy {
	p := animation.Policy{
		BaseScale: a.Scale,
		Pulse: animation.Pulse{
			Enabled:   a.Pulse.Enabled,
			Amplitude: a.Pulse.Amplitude,
			Speed:     a.Pulse.Speed,
		},
		Spin: animation.Spin{Speed: a.SpinSpeed},
		Orbit: animation.Orbit{
			Speed:  a.Orbit.Speed,
			Radius: a.Orbit.Radius,
			Phase:  a.Orbit.Phase,
		},
		Offset: math.V3(a.Offset),
	}
	if p.BaseScale == 0 {
		p.BaseScale = 1
	}
	return p
}

// Build creates the initial state from configuration.
// Objects whose geometry cannot be loaded are logged and skipped; the
// reference grid is required and its failure is returned.
func Build(cfg *config.Config, src MeshSource) (*State, error) {
	sc := cfg.Scene

	grid, err := geometry.Grid(sc.Grid.Size, sc.Grid.Divisions, sc.Grid.Y)
	if err != nil {
		return nil, fmt.Errorf("building grid: %w", err)
	}
	ax, ay, az := geometry.Axes(sc.AxesLength)

	s := &State{
		Camera:     camera.NewOrbitCamera(CameraSettings(cfg.Camera)),
		Clock:      animation.NewClock(sc.AnimationRunning),
		Grid:       grid,
		GridColor:  sc.Grid.Color,
		Axes:       [3]*geometry.Mesh{ax, ay, az},
		AxisColors: DefaultAxisColors,
		ShowGrid:   sc.Grid.Visible,
	}

	b := builder{src: src, meshes: make(map[string]loadedMesh)}
	for i, oc := range sc.Objects {
		obj, err := b.object(oc)
		if err != nil {
			logger.Warn("skipping object",
				zap.Int("index", i),
				zap.String("name", oc.Name),
				zap.String("mesh", oc.Mesh),
				zap.Error(err),
			)
			continue
		}
		s.Objects = append(s.Objects, obj)
		logger.Debug("object loaded",
			zap.String("name", obj.Name),
			zap.Int("vertices", obj.Mesh.VertexCount()),
		)
	}

	logger.Info("scene built",
		zap.Int("objects", len(s.Objects)),
		zap.Int("skipped", len(sc.Objects)-len(s.Objects)),
	)
	return s, nil
}

type loadedMesh struct {
	mesh     *geometry.Mesh
	color    [3]float32
	hasColor bool
}

// builder shares one mesh per reference across objects.
type builder struct {
	src    MeshSource
	meshes map[string]loadedMesh
}

func (b *builder) object(oc config.ObjectConfig) (*Object, error) {
	lm, err := b.mesh(oc.Mesh)
	if err != nil {
		return nil, err
	}
	if lm.mesh.Mode != geometry.Triangles {
		return nil, fmt.Errorf("mesh %q is %s, objects need triangles", oc.Mesh, lm.mesh.Mode)
	}

	color := DefaultObjectColor
	switch {
	case oc.Color != nil:
		color = *oc.Color
	case lm.hasColor:
		color = lm.color
	}

	name := oc.Name
	if name == "" {
		name = oc.Mesh
	}

	return &Object{
		Name:      name,
		Mesh:      lm.mesh,
		Color:     color,
		Animation: Policy(oc.Animation),
	}, nil
}

func (b *builder) mesh(ref string) (loadedMesh, error) {
	ref = strings.TrimSpace(ref)
	if lm, ok := b.meshes[ref]; ok {
		return lm, nil
	}

	lm, err := b.load(ref)
	if err != nil {
		return loadedMesh{}, err
	}
	b.meshes[ref] = lm
	return lm, nil
}

func (b *builder) load(ref string) (loadedMesh, error) {
	switch ref {
	case "":
		return loadedMesh{}, fmt.Errorf("no mesh given")
	case "cube":
		return loadedMesh{mesh: geometry.Cube(CubeSize)}, nil
	case "sphere":
		m, err := geometry.Sphere(SphereLat, SphereLon, SphereRadius)
		return loadedMesh{mesh: m}, err
	}

	if b.src == nil {
		return loadedMesh{}, fmt.Errorf("mesh %q: no geometry source", ref)
	}

	var (
		data []byte
		err  error
	)
	if name, ok := strings.CutPrefix(ref, assetPrefix); ok {
		data, err = b.src.Load(name)
	} else {
		data, err = b.src.LoadFile(ref)
	}
	if err != nil {
		return loadedMesh{}, err
	}
	return decode(ref, data)
}

func decode(ref string, data []byte) (loadedMesh, error) {
	switch ext := strings.ToLower(filepath.Ext(ref)); ext {
	case ".json":
		md, err := geometry.ParseJSON(data)
		if err != nil {
			return loadedMesh{}, fmt.Errorf("parsing %s: %w", ref, err)
		}
		return loadedMesh{mesh: md.Mesh, color: md.Color, hasColor: md.HasColor}, nil
	case ".gltf", ".glb":
		m, err := geometry.LoadGLTF(data)
		if err != nil {
			return loadedMesh{}, fmt.Errorf("loading %s: %w", ref, err)
		}
		return loadedMesh{mesh: m}, nil
	default:
		return loadedMesh{}, fmt.Errorf("mesh %q: unsupported format %q", ref, ext)
	}
}
