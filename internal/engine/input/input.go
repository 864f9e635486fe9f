// Package input translates SDL2 events into scene commands.
package input

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/orbitview/internal/scene"
)

// WheelStep converts one wheel notch into zoom units, about one
// scrolled line of a browser page.
const WheelStep = 100

// DefaultBindings maps keys to the commands they trigger.
var DefaultBindings = map[sdl.Scancode]scene.CommandType{
	sdl.SCANCODE_A:      scene.CmdToggleAnimation,
	sdl.SCANCODE_G:      scene.CmdToggleGrid,
	sdl.SCANCODE_R:      scene.CmdResetCamera,
	sdl.SCANCODE_F12:    scene.CmdScreenshot,
	sdl.SCANCODE_ESCAPE: scene.CmdQuit,
}

// Input handles all input processing.
type Input struct {
	bindings map[sdl.Scancode]scene.CommandType
	dragging bool
}

// New creates a new input handler with the default key bindings.
func New() *Input {
	return &Input{
		bindings: DefaultBindings,
	}
}

// Poll drains pending SDL events into q.
func (i *Input) Poll(q *scene.Queue) {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		if cmd, ok := i.Translate(event); ok {
			q.Push(cmd)
		}
	}
}

// Translate converts one SDL event. It reports false for events that do
// not map to a command.
func (i *Input) Translate(event sdl.Event) (scene.Command, bool) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return scene.Command{Type: scene.CmdQuit}, true

	case *sdl.KeyboardEvent:
		if e.Type != sdl.KEYDOWN || e.Repeat != 0 {
			return scene.Command{}, false
		}
		if t, ok := i.bindings[e.Keysym.Scancode]; ok {
			return scene.Command{Type: t}, true
		}

	case *sdl.MouseButtonEvent:
		if e.Button != sdl.BUTTON_LEFT {
			return scene.Command{}, false
		}
		if e.Type == sdl.MOUSEBUTTONDOWN {
			i.dragging = true
			return scene.DragStart(float32(e.X), float32(e.Y)), true
		}
		if e.Type == sdl.MOUSEBUTTONUP && i.dragging {
			i.dragging = false
			return scene.DragEnd(), true
		}

	case *sdl.MouseMotionEvent:
		if i.dragging {
			return scene.DragMove(float32(e.X), float32(e.Y)), true
		}

	case *sdl.MouseWheelEvent:
		// SDL reports positive Y when scrolling away from the user,
		// which zooms in.
		y := e.Y
		if e.Direction == sdl.MOUSEWHEEL_FLIPPED {
			y = -y
		}
		if y != 0 {
			return scene.Zoom(float32(-y) * WheelStep), true
		}
	}

	return scene.Command{}, false
}
