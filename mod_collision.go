package explorer

import (
	"github.com/go-gl/mathgl/mgl32"
)

// MoveResult is the outcome of one resolved step.
type MoveResult struct {
	CanMove  bool
	CanMoveX bool
	CanMoveZ bool
	Position mgl32.Vec3
	// Grounded is set when the ground probe found a surface within step height.
	Grounded     bool
	GroundHeight float32
}

// Resolver validates a candidate step against a CollisionWorld using rays only.
type Resolver struct {
	World *CollisionWorld

	PlayerRadius float32
	StepHeight   float32
	// RayHeight lifts the horizontal probes above the feet so they do not graze the floor.
	RayHeight    float32
	GroundOffset float32
	// The ground probe starts GroundProbeHeight above the feet and reaches
	// GroundProbeDistance below them.
	GroundProbeHeight   float32
	GroundProbeDistance float32
	Epsilon             float32

	logger Logger
}

func NewResolver(world *CollisionWorld, cfg CollisionConfig, logger Logger) *Resolver {
	if logger == nil {
		logger = NewNopLogger()
	}
	return &Resolver{
		World:               world,
		PlayerRadius:        cfg.PlayerRadius,
		StepHeight:          cfg.StepHeight,
		RayHeight:           cfg.RayHeight,
		GroundOffset:        cfg.GroundOffset,
		GroundProbeHeight:   cfg.GroundProbeHeight,
		GroundProbeDistance: cfg.GroundProbeDistance,
		Epsilon:             cfg.Epsilon,
		logger:              logger,
	}
}

// Resolve moves from current toward candidate. Both are camera positions;
// eyeHeight is the distance from the feet up to the camera.
func (r *Resolver) Resolve(current, candidate mgl32.Vec3, eyeHeight float32) MoveResult {
	free := MoveResult{CanMove: true, CanMoveX: true, CanMoveZ: true, Position: candidate}
	if r.World == nil || r.World.Empty() {
		return free
	}
	if !finite(current) || !finite(candidate) {
		return MoveResult{Position: current}
	}
	if candidate.Sub(current).Len() < r.Epsilon {
		return free
	}

	feet := current.Y() - eyeHeight
	rayY := feet + r.RayHeight
	pos := current
	res := MoveResult{CanMoveX: true, CanMoveZ: true}
	// a purely vertical candidate still counts as a move
	advanced := candidate.X() == current.X() && candidate.Z() == current.Z()

	if dx := candidate.X() - current.X(); dx != 0 {
		if r.blocked(mgl32.Vec3{pos.X(), rayY, pos.Z()}, 0, dx) {
			res.CanMoveX = false
		} else {
			pos[0] = candidate.X()
			advanced = true
		}
	}
	if dz := candidate.Z() - current.Z(); dz != 0 {
		if r.blocked(mgl32.Vec3{pos.X(), rayY, pos.Z()}, 2, dz) {
			res.CanMoveZ = false
		} else {
			pos[2] = candidate.Z()
			advanced = true
		}
	}
	pos[1] = candidate.Y()

	probeFrom := mgl32.Vec3{pos.X(), feet + r.GroundProbeHeight, pos.Z()}
	ground := r.World.Raycast(probeFrom, mgl32.Vec3{0, -1, 0}, r.GroundProbeHeight+r.GroundProbeDistance)
	if ground.Hit {
		groundY := ground.Point.Y()
		gap := groundY - feet
		if gap < 0 {
			gap = -gap
		}
		if gap > r.StepHeight {
			r.logger.Debugf("move rejected: ground gap %.3f exceeds step height %.3f at (%.2f, %.2f)",
				gap, r.StepHeight, pos.X(), pos.Z())
			return MoveResult{Position: current, GroundHeight: groundY}
		}
		pos[1] = groundY + r.GroundOffset + eyeHeight
		res.Grounded = true
		res.GroundHeight = groundY
	}

	// CanMove is set only when some axis advanced
	res.CanMove = advanced
	res.Position = pos
	return res
}

func (r *Resolver) blocked(origin mgl32.Vec3, axis int, delta float32) bool {
	var dir mgl32.Vec3
	dist := delta
	if delta > 0 {
		dir[axis] = 1
	} else {
		dir[axis] = -1
		dist = -delta
	}
	return r.World.Raycast(origin, dir, r.PlayerRadius+dist).Hit
}

// CollisionModule installs the scene's CollisionWorld and Resolver.
type CollisionModule struct {
	Config CollisionConfig
}

func (mod CollisionModule) Install(app *App, cmd *Commands) {
	world := NewCollisionWorld(cmd.Logger())
	cmd.AddResources(world, NewResolver(world, mod.Config, cmd.Logger()))
}
