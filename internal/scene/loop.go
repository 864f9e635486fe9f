package scene

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/orbitview/internal/engine/camera"
	"github.com/Faultbox/orbitview/internal/engine/geometry"
	"github.com/Faultbox/orbitview/internal/logger"
	"github.com/Faultbox/orbitview/pkg/math"
)

// Surface is the drawable the loop renders into.
type Surface interface {
	DrawableSize() (int, int)
	SwapBuffers()
}

// Renderer draws meshes. Implementations own all GPU state.
type Renderer interface {
	SetViewport(w, h int)
	// Begin clears color and depth and enables depth testing.
	Begin()
	// DrawLines draws an unlit line mesh with no model transform.
	DrawLines(m *geometry.Mesh, color [3]float32, view, proj math.Mat4)
	DrawMesh(m *geometry.Mesh, color [3]float32, model math.Mat4, f camera.Frame)
	// ReadPixels returns the back buffer as bottom-up RGBA rows.
	ReadPixels(w, h int) []byte
}

// InputSource translates pending platform events into commands.
type InputSource interface {
	Poll(q *Queue)
}

// Capturer writes a screenshot and returns the file it created.
type Capturer interface {
	CaptureFromPixels(pixels []byte, width, height int) (string, error)
}

// Loop runs the update and draw sequence over a State.
type Loop struct {
	state    *State
	surface  Surface
	renderer Renderer
	input    InputSource
	capturer Capturer

	queue Queue
	now   func() time.Time

	last    time.Time
	started bool
	quit    bool

	screenshotPending bool
	captures          sync.WaitGroup

	// FPS counter
	frameCount int
	fpsTimer   time.Time
}

// NewLoop creates a loop. input and capturer may be nil.
func NewLoop(state *State, surface Surface, renderer Renderer, input InputSource, capturer Capturer) (*Loop, error) {
	switch {
	case state == nil:
		return nil, errors.New("scene: nil state")
	case state.Camera == nil:
		return nil, errors.New("scene: state has no camera")
	case state.Clock == nil:
		return nil, errors.New("scene: state has no clock")
	case state.Grid == nil:
		return nil, errors.New("scene: state has no grid")
	case surface == nil || renderer == nil:
		return nil, errors.New("scene: surface and renderer are required")
	}

	return &Loop{
		state:    state,
		surface:  surface,
		renderer: renderer,
		input:    input,
		capturer: capturer,
		now:      time.Now,
	}, nil
}

// State returns the state the loop mutates.
func (l *Loop) State() *State {
	return l.state
}

// Queue returns the command queue drained at the start of each frame.
func (l *Loop) Queue() *Queue {
	return &l.queue
}

// Quitting reports whether a quit command has been processed.
func (l *Loop) Quitting() bool {
	return l.quit
}

// Frame runs one update and draw step at wall time now.
func (l *Loop) Frame(now time.Time) {
	s := l.state

	// 1. Viewport
	w, h := l.surface.DrawableSize()
	if w != s.Viewport.W || h != s.Viewport.H {
		s.Viewport = Viewport{W: w, H: h}
		l.renderer.SetViewport(w, h)
		logger.Debug("viewport resized", zap.Int("width", w), zap.Int("height", h))
	}

	// 2. Delta time
	var dt float64
	if l.started {
		dt = now.Sub(l.last).Seconds()
	}
	l.last = now
	l.started = true

	// 3. Input
	for _, cmd := range l.queue.Drain() {
		l.apply(cmd)
	}

	// 4. Clock (a paused clock ignores dt)
	s.Clock.Advance(dt)

	if s.Viewport.Empty() {
		return
	}

	// 5. Camera
	frame := s.Camera.Compute(s.Viewport.Aspect())

	// 6-8. Draw
	l.renderer.Begin()

	if s.ShowGrid {
		l.renderer.DrawLines(s.Grid, s.GridColor, frame.View, frame.Proj)
		for i, axis := range s.Axes {
			if axis != nil {
				l.renderer.DrawLines(axis, s.AxisColors[i], frame.View, frame.Proj)
			}
		}
	}

	t := float32(s.Clock.Time())
	for _, obj := range s.Objects {
		l.renderer.DrawMesh(obj.Mesh, obj.Color, obj.Animation.Model(t), frame)
	}

	// 9. Screenshot
	if l.screenshotPending {
		l.screenshotPending = false
		l.capture(s.Viewport)
	}
}

// Run polls input, renders and presents frames until ctx is cancelled or
// a quit command is processed. It returns ctx.Err() on cancellation.
func (l *Loop) Run(ctx context.Context) error {
	defer l.captures.Wait()

	logger.Info("starting render loop", zap.Int("objects", len(l.state.Objects)))
	l.fpsTimer = l.now()

	for {
		if err := ctx.Err(); err != nil {
			logger.Info("render loop cancelled")
			return err
		}

		if l.input != nil {
			l.input.Poll(&l.queue)
		}

		now := l.now()
		l.Frame(now)
		l.surface.SwapBuffers()

		if l.quit {
			logger.Info("render loop stopped")
			return nil
		}

		l.frameCount++
		if now.Sub(l.fpsTimer) >= time.Second {
			logger.Debug("fps", zap.Int("count", l.frameCount), zap.Float64("anim_time", l.state.Clock.Time()))
			l.frameCount = 0
			l.fpsTimer = now
		}
	}
}

func (l *Loop) apply(cmd Command) {
	s := l.state

	switch cmd.Type {
	case CmdNone:
	case CmdDragStart:
		s.Camera.BeginDrag(cmd.X, cmd.Y)
	case CmdDragMove:
		s.Camera.Drag(cmd.X, cmd.Y)
	case CmdDragEnd:
		s.Camera.EndDrag()
	case CmdZoom:
		s.Camera.Zoom(cmd.Delta)
	case CmdToggleAnimation:
		running := s.Clock.Toggle()
		logger.Info("animation", logger.OnOff("state", running))
	case CmdResetCamera:
		s.Camera.Reset()
		logger.Info("camera reset")
	case CmdToggleGrid:
		s.ShowGrid = !s.ShowGrid
		logger.Info("grid/axes", logger.OnOff("state", s.ShowGrid))
	case CmdScreenshot:
		l.screenshotPending = true
	case CmdQuit:
		l.quit = true
	default:
		logger.Warn("unknown command", zap.Stringer("type", cmd.Type))
	}
}

// capture reads the frame now and writes the file in the background.
func (l *Loop) capture(vp Viewport) {
	if l.capturer == nil {
		logger.Warn("screenshot requested but no capturer is configured")
		return
	}

	pixels := l.renderer.ReadPixels(vp.W, vp.H)

	l.captures.Add(1)
	go func() {
		defer l.captures.Done()

		path, err := l.capturer.CaptureFromPixels(pixels, vp.W, vp.H)
		if err != nil {
			logger.Warn("screenshot failed", zap.Error(err))
			return
		}
		logger.Info("screenshot saved", zap.String("path", path))
	}()
}

// WaitCaptures blocks until background screenshot writes finish.
func (l *Loop) WaitCaptures() {
	l.captures.Wait()
}
