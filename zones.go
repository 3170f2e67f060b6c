package explorer

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/viraasat/explorer/bvh"
)

var unbounded = math32.Inf(1)

type ZoneShape int

const (
	ZoneBox ZoneShape = iota
	ZoneSphere
)

// Zone is a named region of a scene with the text shown while the player is in it.
type Zone struct {
	Name  string
	Info  string
	Shape ZoneShape

	Box    bvh.AABB
	Center mgl32.Vec3
	Radius float32
}

func BoxZone(name, info string, min, max mgl32.Vec3) Zone {
	return Zone{Name: name, Info: info, Shape: ZoneBox, Box: bvh.AABB{Min: min, Max: max}}
}

func SphereZone(name, info string, center mgl32.Vec3, radius float32) Zone {
	return Zone{Name: name, Info: info, Shape: ZoneSphere, Center: center, Radius: radius}
}

func (z Zone) Contains(p mgl32.Vec3) bool {
	switch z.Shape {
	case ZoneSphere:
		return p.Sub(z.Center).Len() < z.Radius
	default:
		return z.Box.Contains(p)
	}
}

// ZoneTracker reports which zone the player stands in. The first matching
// zone wins; Default applies when none match.
type ZoneTracker struct {
	Zones    []Zone
	Default  Zone
	OnChange func(from, to Zone)

	current Zone
	started bool
}

func NewZoneTracker(def Zone, zones ...Zone) *ZoneTracker {
	return &ZoneTracker{Zones: zones, Default: def, current: def}
}

func (zt *ZoneTracker) Locate(p mgl32.Vec3) Zone {
	for _, z := range zt.Zones {
		if z.Contains(p) {
			return z
		}
	}
	return zt.Default
}

// Update moves the tracker to p and reports whether the zone changed. The
// first update always counts as a change.
func (zt *ZoneTracker) Update(p mgl32.Vec3) (Zone, bool) {
	next := zt.Locate(p)
	if zt.started && next.Name == zt.current.Name {
		return next, false
	}
	prev := zt.current
	zt.current = next
	zt.started = true
	if zt.OnChange != nil {
		zt.OnChange(prev, next)
	}
	return next, true
}

func (zt *ZoneTracker) Current() Zone {
	return zt.current
}

// ZoneStage runs after PostUpdate, once the frame's movement callbacks have fired.
var ZoneStage = Stage{Name: "Zones"}

type ZoneModule struct {
	Tracker *ZoneTracker
}

func (mod ZoneModule) Install(app *App, cmd *Commands) {
	tracker := mod.Tracker
	if tracker == nil {
		tracker = NewZoneTracker(Zone{Name: "outdoor"})
	}
	cmd.AddResources(tracker)

	app.UseStage(ZoneStage, AfterStage(PostUpdate))
	app.UseSystem(
		System(zoneSystem).
			InStage(ZoneStage),
	)
}

func zoneSystem(player *Player, tracker *ZoneTracker, cmd *Commands) {
	if tracker.started && !player.Moved {
		return
	}
	if z, changed := tracker.Update(player.Pose.Position); changed {
		cmd.Logger().Debugf("entered zone %q", z.Name)
	}
}
