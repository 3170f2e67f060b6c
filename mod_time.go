package explorer

import (
	"time"
)

// Time is the frame clock. The host supplies the delta through App.Tick; Dt is
// that delta capped at MaxDt so a stalled frame cannot explode velocities.
type Time struct {
	Raw     time.Duration
	Dt      time.Duration
	MaxDt   time.Duration
	Elapsed time.Duration
	Frame   uint64
}

func (t *Time) advance(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	t.Raw = dt
	if t.MaxDt > 0 && dt > t.MaxDt {
		dt = t.MaxDt
	}
	t.Dt = dt
	t.Elapsed += dt
	t.Frame++
}

// Seconds returns the clamped delta in seconds.
func (t *Time) Seconds() float32 {
	return float32(t.Dt.Seconds())
}

type TimeModule struct {
	MaxDt time.Duration
}

func (mod TimeModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&Time{
		MaxDt: mod.MaxDt,
	})
}
