package platform

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/viraasat/explorer"
)

func init() {
	// GLFW calls must come from the main thread.
	runtime.LockOSThread()
}

var ErrWindowClosed = errors.New("window is closed")

var glfwToKey = map[glfw.Key]explorer.KeyCode{
	glfw.KeyW:          explorer.KeyW,
	glfw.KeyA:          explorer.KeyA,
	glfw.KeyS:          explorer.KeyS,
	glfw.KeyD:          explorer.KeyD,
	glfw.KeySpace:      explorer.KeySpace,
	glfw.KeyLeftShift:  explorer.KeyShift,
	glfw.KeyRightShift: explorer.KeyShift,
	glfw.KeyEscape:     explorer.KeyEscape,
	glfw.KeyTab:        explorer.KeyTab,
}

func translateKey(key glfw.Key) (explorer.KeyCode, bool) {
	k, ok := glfwToKey[key]
	return k, ok
}

// Window is a GLFW window acting as the explorer's input source, pointer
// locker and camera sink. Rendering stays with whoever owns the surface.
type Window struct {
	win        *glfw.Window
	dispatcher *explorer.Dispatcher
	pending    []explorer.Event
	title      string
	lastTitle  string

	locked       bool
	lastX, lastY float64
}

func Open(width, height int, title string) (*Window, error) {
	if width <= 0 {
		width = 1280
	}
	if height <= 0 {
		height = 720
	}
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize glfw: %w", err)
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	w := &Window{
		win:        win,
		dispatcher: explorer.NewDispatcher(),
		title:      title,
	}
	win.SetKeyCallback(w.onKey)
	win.SetCursorPosCallback(w.onCursor)
	win.SetMouseButtonCallback(w.onMouseButton)
	win.SetFocusCallback(func(_ *glfw.Window, focused bool) {
		if !focused {
			w.releasePointer()
		}
	})
	return w, nil
}

func (w *Window) Subscribe(handler func(explorer.Event)) func() {
	return w.dispatcher.Subscribe(handler)
}

// RequestPointerLock hides and captures the cursor. The lock change is
// delivered on the next PollEvents, like any other window event.
func (w *Window) RequestPointerLock() error {
	if w.win == nil || w.win.ShouldClose() {
		return ErrWindowClosed
	}
	if glfw.RawMouseMotionSupported() {
		w.win.SetInputMode(glfw.RawMouseMotion, glfw.True)
	}
	w.win.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	w.lastX, w.lastY = w.win.GetCursorPos()
	w.locked = true
	w.pending = append(w.pending, explorer.Event{Kind: explorer.EventPointerLockChange, Locked: true})
	return nil
}

func (w *Window) releasePointer() {
	if !w.locked {
		return
	}
	w.locked = false
	w.win.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	w.dispatcher.PointerLock(false)
}

// SetPose shows the camera position in the title bar.
func (w *Window) SetPose(pose explorer.CameraPose) {
	p := pose.Position
	title := fmt.Sprintf("%s  (%.1f, %.1f, %.1f)", w.title, p.X(), p.Y(), p.Z())
	if title != w.lastTitle && w.win != nil {
		w.win.SetTitle(title)
		w.lastTitle = title
	}
}

// PollEvents flushes queued lock changes and pumps the GLFW event queue.
func (w *Window) PollEvents() {
	pending := w.pending
	w.pending = nil
	for _, ev := range pending {
		w.dispatcher.Dispatch(ev)
	}
	glfw.PollEvents()
}

func (w *Window) ShouldClose() bool {
	return w.win == nil || w.win.ShouldClose()
}

func (w *Window) Close() {
	if w.win == nil {
		return
	}
	w.win.Destroy()
	w.win = nil
	glfw.Terminate()
}

func (w *Window) onKey(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
	if action == glfw.Repeat {
		return
	}
	code, ok := translateKey(key)
	if !ok {
		return
	}
	if code == explorer.KeyEscape && action == glfw.Press {
		w.releasePointer()
		return
	}
	if action == glfw.Press {
		w.dispatcher.KeyDown(code)
	} else {
		w.dispatcher.KeyUp(code)
	}
}

func (w *Window) onCursor(_ *glfw.Window, x, y float64) {
	dx, dy := x-w.lastX, y-w.lastY
	w.lastX, w.lastY = x, y
	if w.locked {
		w.dispatcher.MouseMove(dx, dy)
	}
}

func (w *Window) onMouseButton(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
	if button == glfw.MouseButtonLeft && action == glfw.Press {
		w.dispatcher.Click()
	}
}
