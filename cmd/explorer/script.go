package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/viraasat/explorer"
)

// maxFPS bounds the simulated frame rate so a frame never rounds to zero.
const maxFPS = 1000

var scriptKeys = map[string]explorer.KeyCode{
	"forward": explorer.KeyW,
	"back":    explorer.KeyS,
	"left":    explorer.KeyA,
	"right":   explorer.KeyD,
	"crouch":  explorer.KeyShift,
}

// step is one segment of a scripted walk: keys held for a duration, or an
// instant look or jump.
type step struct {
	keys []explorer.KeyCode
	look float64
	jump bool
	dur  time.Duration
}

// parseScript reads a comma separated walk such as
// "forward=2s,look=300,forward+left=1s,jump,wait=500ms".
func parseScript(s string) ([]step, error) {
	var steps []step
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		name, arg, hasArg := strings.Cut(item, "=")

		switch name {
		case "jump":
			steps = append(steps, step{jump: true})
			continue
		case "look":
			dx, err := strconv.ParseFloat(arg, 64)
			if !hasArg || err != nil {
				return nil, fmt.Errorf("look needs a pixel delta, got %q", item)
			}
			steps = append(steps, step{look: dx})
			continue
		}

		if !hasArg {
			return nil, fmt.Errorf("%q needs a duration", item)
		}
		dur, err := time.ParseDuration(arg)
		if err != nil || dur < 0 {
			return nil, fmt.Errorf("bad duration in %q", item)
		}

		st := step{dur: dur}
		if name != "wait" {
			for _, k := range strings.Split(name, "+") {
				code, ok := scriptKeys[k]
				if !ok {
					code, ok = explorer.ParseKeyCode(k)
				}
				if !ok {
					return nil, fmt.Errorf("unknown action %q", k)
				}
				st.keys = append(st.keys, code)
			}
		}
		steps = append(steps, st)
	}
	if len(steps) == 0 {
		return nil, fmt.Errorf("empty walk script")
	}
	return steps, nil
}

func frameDuration(fps int) (time.Duration, error) {
	if fps <= 0 || fps > maxFPS {
		return 0, fmt.Errorf("fps must be between 1 and %d, got %d", maxFPS, fps)
	}
	return time.Second / time.Duration(fps), nil
}

// runScript replays steps at a fixed frame rate and calls onFrame after every tick.
func runScript(e *explorer.Explorer, steps []step, fps int, onFrame func()) error {
	frame, err := frameDuration(fps)
	if err != nil {
		return err
	}
	tick := func() {
		e.Tick(frame)
		if onFrame != nil {
			onFrame()
		}
	}

	for _, st := range steps {
		switch {
		case st.jump:
			e.HandleEvent(explorer.Event{Kind: explorer.EventKeyDown, Key: explorer.KeySpace})
			tick()
			e.HandleEvent(explorer.Event{Kind: explorer.EventKeyUp, Key: explorer.KeySpace})
		case st.look != 0:
			if !e.Input().PointerLocked {
				e.HandleEvent(explorer.Event{Kind: explorer.EventPointerLockChange, Locked: true})
			}
			e.HandleEvent(explorer.Event{Kind: explorer.EventMouseMove, DX: st.look})
			tick()
		default:
			for _, k := range st.keys {
				e.HandleEvent(explorer.Event{Kind: explorer.EventKeyDown, Key: k})
			}
			for n := int(st.dur / frame); n > 0; n-- {
				tick()
			}
			for _, k := range st.keys {
				e.HandleEvent(explorer.Event{Kind: explorer.EventKeyUp, Key: k})
			}
		}
	}
	return nil
}
