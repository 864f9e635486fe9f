// Package renderer provides OpenGL rendering functionality.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/orbitview/internal/engine/camera"
	"github.com/Faultbox/orbitview/internal/engine/geometry"
	"github.com/Faultbox/orbitview/internal/engine/renderer/shaders"
	"github.com/Faultbox/orbitview/internal/engine/shader"
	"github.com/Faultbox/orbitview/internal/logger"
	"github.com/Faultbox/orbitview/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	ClearColor [3]float32
	LightDir   [3]float32
}

var (
	gridAttribs    = []string{"aPos"}
	gridUniforms   = []string{"uProj", "uView", "uColor"}
	objectAttribs  = []string{"aPos", "aNor"}
	objectUniforms = []string{"uProj", "uView", "uModel", "uEye", "uColor", "uLightDir"}
)

// gpuMesh is a mesh uploaded for one program.
type gpuMesh struct {
	vao, vbo, nbo, ebo uint32
	count              int32
	mode               uint32
	indexed            bool
}

type meshKey struct {
	mesh    *geometry.Mesh
	program *shader.Program
}

// Renderer handles all OpenGL rendering. Meshes are uploaded on first
// draw and kept until Close, so they must not change after that.
type Renderer struct {
	config Config

	gridProgram   *shader.Program
	objectProgram *shader.Program

	meshes map[meshKey]*gpuMesh
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
		meshes: make(map[meshKey]*gpuMesh),
	}

	// Initialize OpenGL
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	// Log OpenGL info
	version := gl.GoStr(gl.GetString(gl.VERSION))
	rendererName := gl.GoStr(gl.GetString(gl.RENDERER))
	logger.Info("OpenGL initialized",
		zap.String("version", version),
		zap.String("renderer", rendererName),
	)

	// Setup default OpenGL state
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.ClearColor(cfg.ClearColor[0], cfg.ClearColor[1], cfg.ClearColor[2], 1.0)

	var err error
	r.gridProgram, err = loadProgram("grid", shaders.GridVertexShader, shaders.GridFragmentShader, gridAttribs, gridUniforms)
	if err != nil {
		return nil, err
	}
	r.objectProgram, err = loadProgram("object", shaders.ObjectVertexShader, shaders.ObjectFragmentShader, objectAttribs, objectUniforms)
	if err != nil {
		r.gridProgram.Delete()
		return nil, err
	}

	return r, nil
}

func loadProgram(name, vs, fs string, attribs, uniforms []string) (*shader.Program, error) {
	p, err := shader.Load(name, vs, fs)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}
	if err := p.Require(attribs, uniforms); err != nil {
		p.Delete()
		return nil, err
	}
	logger.Debug("shader program ready", zap.String("name", name), zap.Uint32("id", p.ID))
	return p, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer", zap.Int("meshes", len(r.meshes)))
	for key, m := range r.meshes {
		if m != nil {
			m.delete()
		}
		delete(r.meshes, key)
	}
	if r.gridProgram != nil {
		r.gridProgram.Delete()
	}
	if r.objectProgram != nil {
		r.objectProgram.Delete()
	}
}

// SetViewport resizes the GL viewport.
func (r *Renderer) SetViewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Enable(gl.DEPTH_TEST)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// DrawLines draws an unlit mesh in world space.
func (r *Renderer) DrawLines(m *geometry.Mesh, color [3]float32, view, proj math.Mat4) {
	p := r.gridProgram
	p.Use()
	gl.UniformMatrix4fv(p.Uniform("uProj"), 1, false, proj.Ptr())
	gl.UniformMatrix4fv(p.Uniform("uView"), 1, false, view.Ptr())
	gl.Uniform3f(p.Uniform("uColor"), color[0], color[1], color[2])

	r.draw(m, p)
}

// DrawMesh draws a shaded mesh with the given model matrix.
func (r *Renderer) DrawMesh(m *geometry.Mesh, color [3]float32, model math.Mat4, f camera.Frame) {
	p := r.objectProgram
	p.Use()
	gl.UniformMatrix4fv(p.Uniform("uProj"), 1, false, f.Proj.Ptr())
	gl.UniformMatrix4fv(p.Uniform("uView"), 1, false, f.View.Ptr())
	gl.UniformMatrix4fv(p.Uniform("uModel"), 1, false, model.Ptr())
	eye := f.Eye.Array()
	gl.Uniform3fv(p.Uniform("uEye"), 1, &eye[0])
	gl.Uniform3f(p.Uniform("uColor"), color[0], color[1], color[2])
	l := r.config.LightDir
	gl.Uniform3f(p.Uniform("uLightDir"), l[0], l[1], l[2])

	r.draw(m, p)
}

// ReadPixels returns the back buffer as RGBA rows, bottom row first.
func (r *Renderer) ReadPixels(width, height int) []byte {
	pixels := make([]byte, width*height*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadBuffer(gl.BACK)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels
}

func (r *Renderer) draw(m *geometry.Mesh, p *shader.Program) {
	key := meshKey{m, p}
	gm, ok := r.meshes[key]
	if !ok {
		var err error
		gm, err = upload(m, p)
		if err != nil {
			// Remembered as nil so the warning is logged once per mesh.
			logger.Warn("mesh upload failed", zap.String("program", p.Name), zap.Error(err))
		}
		r.meshes[key] = gm
	}
	if gm == nil {
		return
	}

	gl.BindVertexArray(gm.vao)
	if gm.indexed {
		gl.DrawElementsWithOffset(gm.mode, gm.count, gl.UNSIGNED_INT, 0)
	} else {
		gl.DrawArrays(gm.mode, 0, gm.count)
	}
	gl.BindVertexArray(0)
}

func upload(m *geometry.Mesh, p *shader.Program) (*gpuMesh, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if m.VertexCount() == 0 {
		return nil, fmt.Errorf("%w: no vertices", geometry.ErrInvalidMesh)
	}

	gm := &gpuMesh{
		count:   int32(m.DrawCount()),
		indexed: m.Indexed(),
		mode:    gl.TRIANGLES,
	}
	if m.Mode == geometry.Lines {
		gm.mode = gl.LINES
	}

	// Create VAO
	gl.GenVertexArrays(1, &gm.vao)
	gl.BindVertexArray(gm.vao)

	// Position attribute
	gm.vbo = attribBuffer(p.Attrib("aPos"), m.Positions)

	// Normal attribute, only if the program reads it
	if loc := p.Attrib("aNor"); loc >= 0 {
		gm.nbo = attribBuffer(loc, m.Normals)
	}

	// Create EBO
	if gm.indexed {
		gl.GenBuffers(1, &gm.ebo)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, gm.ebo)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, gl.Ptr(m.Indices), gl.STATIC_DRAW)
	}

	gl.BindVertexArray(0)

	logger.Debug("mesh uploaded",
		zap.String("program", p.Name),
		zap.Stringer("mode", m.Mode),
		zap.Int("vertices", m.VertexCount()),
	)
	return gm, nil
}

// attribBuffer uploads a flat vec3 array and binds it to loc on the current VAO.
func attribBuffer(loc int32, data []float32) uint32 {
	var buf uint32
	gl.GenBuffers(1, &buf)
	gl.BindBuffer(gl.ARRAY_BUFFER, buf)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
	gl.VertexAttribPointerWithOffset(uint32(loc), 3, gl.FLOAT, false, 0, 0)
	gl.EnableVertexAttribArray(uint32(loc))
	return buf
}

func (gm *gpuMesh) delete() {
	for _, buf := range []uint32{gm.vbo, gm.nbo, gm.ebo} {
		if buf != 0 {
			gl.DeleteBuffers(1, &buf)
		}
	}
	if gm.vao != 0 {
		gl.DeleteVertexArrays(1, &gm.vao)
	}
}
