package explorer

import (
	"github.com/go-gl/mathgl/mgl32"
)

type KeyCode int

const (
	KeyUnknown KeyCode = iota
	KeyW
	KeyA
	KeyS
	KeyD
	KeySpace
	KeyShift
	KeyEscape
	KeyTab
)

var domKeyCodes = map[string]KeyCode{
	"KeyW":       KeyW,
	"KeyA":       KeyA,
	"KeyS":       KeyS,
	"KeyD":       KeyD,
	"Space":      KeySpace,
	"ShiftLeft":  KeyShift,
	"ShiftRight": KeyShift,
	"Escape":     KeyEscape,
	"Tab":        KeyTab,
}

// ParseKeyCode maps a DOM KeyboardEvent.code value to a KeyCode.
func ParseKeyCode(code string) (KeyCode, bool) {
	k, ok := domKeyCodes[code]
	return k, ok
}

type EventKind int

const (
	EventKeyDown EventKind = iota
	EventKeyUp
	EventMouseMove
	EventPointerLockChange
	EventClick
)

// Event is one raw input sample from the host. Locked is only meaningful for
// EventPointerLockChange and reports whether this scene's surface holds the lock.
type Event struct {
	Kind   EventKind
	Key    KeyCode
	DX, DY float64
	Locked bool
}

// EventSource delivers host input events. Subscribe returns the matching
// unsubscribe func; calling it more than once is harmless.
type EventSource interface {
	Subscribe(handler func(Event)) (unsubscribe func())
}

type MovementState struct {
	Forward  bool
	Backward bool
	Left     bool
	Right    bool
	Jump     bool
	Crouch   bool
}

// Moving reports whether any horizontal movement key is held.
func (m MovementState) Moving() bool {
	return m.Forward || m.Backward || m.Left || m.Right
}

// Input is the per-scene input tracker.
type Input struct {
	Movement      MovementState
	MouseVelocity mgl32.Vec2
	PointerLocked bool
	Sensitivity   float32

	jumpQueued  bool
	clickQueued bool
	logger      Logger
}

func (in *Input) HandleEvent(ev Event) {
	switch ev.Kind {
	case EventKeyDown:
		in.setKey(ev.Key, true)
	case EventKeyUp:
		in.setKey(ev.Key, false)
	case EventMouseMove:
		if !in.PointerLocked {
			return
		}
		in.MouseVelocity[0] += float32(ev.DX) * in.Sensitivity
		in.MouseVelocity[1] += float32(ev.DY) * in.Sensitivity
	case EventPointerLockChange:
		in.PointerLocked = ev.Locked
		if !ev.Locked {
			in.MouseVelocity = mgl32.Vec2{}
		}
		if in.logger != nil {
			in.logger.Debugf("pointer lock changed: locked=%v", ev.Locked)
		}
	case EventClick:
		in.clickQueued = true
	}
}

func (in *Input) setKey(key KeyCode, down bool) {
	switch key {
	case KeyW:
		in.Movement.Forward = down
	case KeyS:
		in.Movement.Backward = down
	case KeyA:
		in.Movement.Left = down
	case KeyD:
		in.Movement.Right = down
	case KeySpace:
		if down && !in.Movement.Jump {
			in.jumpQueued = true
		}
		in.Movement.Jump = down
	case KeyShift:
		in.Movement.Crouch = down
	}
}

// takeJump reports and clears a pending jump press.
func (in *Input) takeJump() bool {
	j := in.jumpQueued
	in.jumpQueued = false
	return j
}

func (in *Input) takeClick() bool {
	c := in.clickQueued
	in.clickQueued = false
	return c
}

// Reset releases every held key and drops mouse state.
func (in *Input) Reset() {
	in.Movement = MovementState{}
	in.MouseVelocity = mgl32.Vec2{}
	in.PointerLocked = false
	in.jumpQueued = false
	in.clickQueued = false
}

type InputModule struct {
	Source      EventSource
	Sensitivity float32
}

func (mod InputModule) Install(app *App, cmd *Commands) {
	input := &Input{
		Sensitivity: mod.Sensitivity,
		logger:      cmd.Logger(),
	}
	cmd.AddResources(input)

	if mod.Source != nil {
		unsubscribe := mod.Source.Subscribe(input.HandleEvent)
		cmd.OnTeardown(func() {
			unsubscribe()
			input.Reset()
		})
	} else {
		cmd.OnTeardown(input.Reset)
	}
}
