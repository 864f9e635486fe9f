package scene

// CommandType identifies a user action.
type CommandType int

const (
	CmdNone CommandType = iota
	CmdDragStart
	CmdDragMove
	CmdDragEnd
	CmdZoom
	CmdToggleAnimation
	CmdResetCamera
	CmdToggleGrid
	CmdScreenshot
	CmdQuit
)

var commandNames = [...]string{
	CmdNone:            "none",
	CmdDragStart:       "drag-start",
	CmdDragMove:        "drag-move",
	CmdDragEnd:         "drag-end",
	CmdZoom:            "zoom",
	CmdToggleAnimation: "toggle-animation",
	CmdResetCamera:     "reset-camera",
	CmdToggleGrid:      "toggle-grid",
	CmdScreenshot:      "screenshot",
	CmdQuit:            "quit",
}

func (t CommandType) String() string {
	if t < 0 || int(t) >= len(commandNames) {
		return "unknown"
	}
	return commandNames[t]
}

// Command is a queued user action.
// X and Y are pointer coordinates in pixels; Delta is the wheel amount
// where positive values zoom out.
type Command struct {
	Type  CommandType
	X, Y  float32
	Delta float32
}

// DragStart begins a camera drag at the pointer position.
func DragStart(x, y float32) Command {
	return Command{Type: CmdDragStart, X: x, Y: y}
}

// DragMove continues a camera drag.
func DragMove(x, y float32) Command {
	return Command{Type: CmdDragMove, X: x, Y: y}
}

// DragEnd finishes a camera drag.
func DragEnd() Command {
	return Command{Type: CmdDragEnd}
}

// Zoom changes the camera distance.
func Zoom(delta float32) Command {
	return Command{Type: CmdZoom, Delta: delta}
}

// Queue collects commands between frames. The loop drains it once per
// frame, so state is only mutated at a single point in the frame.
// It is not safe for concurrent use.
type Queue struct {
	cmds []Command
}

// Push appends a command.
func (q *Queue) Push(c Command) {
	q.cmds = append(q.cmds, c)
}

// Len returns the number of pending commands.
func (q *Queue) Len() int {
	return len(q.cmds)
}

// Drain returns the pending commands in arrival order and empties the queue.
// The returned slice is only valid until the next Push.
func (q *Queue) Drain() []Command {
	cmds := q.cmds
	q.cmds = q.cmds[:0]
	return cmds
}
