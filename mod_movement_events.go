package explorer

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// MovementEvents carries the optional per-frame callbacks for an ambience or
// narration layer.
type MovementEvents struct {
	// OnMove fires at most once per frame, after the frame's position is final.
	OnMove func(pos mgl32.Vec3)
	// OnFootstep fires while walking, no more often than Interval.
	OnFootstep func(pos mgl32.Vec3)
	Interval   time.Duration

	lastStep time.Duration
	stepped  bool
}

type MovementEventsModule struct {
	OnMove     func(pos mgl32.Vec3)
	OnFootstep func(pos mgl32.Vec3)
	Interval   time.Duration
}

func (mod MovementEventsModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&MovementEvents{
		OnMove:     mod.OnMove,
		OnFootstep: mod.OnFootstep,
		Interval:   mod.Interval,
	})

	app.UseSystem(
		System(movementEventsSystem).
			InStage(PostUpdate),
	)
}

func movementEventsSystem(t *Time, input *Input, player *Player, events *MovementEvents) {
	if !player.Moved {
		return
	}
	pos := player.Pose.Position

	if events.OnMove != nil {
		events.OnMove(pos)
	}

	if events.OnFootstep == nil || !input.Movement.Moving() || player.Airborne {
		return
	}
	if events.stepped && t.Elapsed-events.lastStep < events.Interval {
		return
	}
	events.stepped = true
	events.lastStep = t.Elapsed
	events.OnFootstep(pos)
}

type cameraSinkResource struct {
	sink CameraSink
}

// CameraSyncModule writes the finished pose into the host camera every frame.
type CameraSyncModule struct {
	Sink CameraSink
}

func (mod CameraSyncModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&cameraSinkResource{sink: mod.Sink})

	app.UseSystem(
		System(cameraSyncSystem).
			InStage(Sync),
	)
}

func cameraSyncSystem(player *Player, res *cameraSinkResource) {
	if res.sink != nil {
		res.sink.SetPose(player.Pose)
	}
}
