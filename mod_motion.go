package explorer

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Player is the explorer's owned camera state plus the vertical state machine
// that sits on top of the ground-snapped stance height.
type Player struct {
	Pose     CameraPose
	Velocity mgl32.Vec3
	// EyeHeight is the current, possibly crouched, feet-to-camera distance.
	EyeHeight float32
	Airborne  bool
	// Moved is set for the frame in which the horizontal position changed.
	Moved    bool
	LastMove MoveResult

	stanceY      float32
	jumpHeight   float32
	jumpVelocity float32
}

func newPlayer(cfg Config) *Player {
	pos := cfg.Boundary.Clamp(cfg.Start)
	return &Player{
		Pose: CameraPose{
			Position: pos,
			Yaw:      cfg.StartYaw,
			Pitch:    mgl32.Clamp(cfg.StartPitch, -cfg.Look.PitchLimit, cfg.Look.PitchLimit),
		},
		EyeHeight: cfg.EyeHeight,
		stanceY:   pos.Y(),
	}
}

// StanceHeight is the grounded camera height, excluding any jump offset.
func (p *Player) StanceHeight() float32 {
	return p.stanceY
}

// MotionIntegrator turns held keys into a horizontal displacement and drives
// jump and crouch.
type MotionIntegrator struct {
	Config    MotionConfig
	Jump      JumpConfig
	Crouch    CrouchConfig
	EyeHeight float32
}

func NewMotionIntegrator(cfg Config) *MotionIntegrator {
	return &MotionIntegrator{
		Config:    cfg.Motion,
		Jump:      cfg.Jump,
		Crouch:    cfg.Crouch,
		EyeHeight: cfg.EyeHeight,
	}
}

// Direction is the normalized sum of held directions relative to pose, or zero.
func (m *MotionIntegrator) Direction(pose CameraPose, move MovementState) mgl32.Vec3 {
	forward := pose.HorizontalForward()
	right := pose.Right()

	var dir mgl32.Vec3
	if move.Forward {
		dir = dir.Add(forward)
	}
	if move.Backward {
		dir = dir.Sub(forward)
	}
	if move.Right {
		dir = dir.Add(right)
	}
	if move.Left {
		dir = dir.Sub(right)
	}
	dir[1] = 0
	if l := dir.Len(); l > 1e-6 {
		return dir.Mul(1 / l)
	}
	return mgl32.Vec3{}
}

// Step updates velocity for one frame of dt seconds and returns the
// displacement. The displacement never has a vertical component.
func (m *MotionIntegrator) Step(pose CameraPose, move MovementState, velocity *mgl32.Vec3, dt float32) mgl32.Vec3 {
	if !(dt > 0) {
		return mgl32.Vec3{}
	}

	dir := m.Direction(pose, move)
	target := dir.Mul(m.Config.Speed)
	v := *velocity

	switch m.Config.Locomotion {
	case LocomotionDamped:
		k := min(m.Config.Damping*dt, 1)
		v = v.Mul(1 - k).Add(target.Mul(k))
	case LocomotionAccelerated:
		if dir.Len() > 0 {
			t := min(m.Config.Acceleration*dt, 1)
			v = v.Add(target.Sub(v).Mul(t))
		} else {
			v = v.Mul(m.Config.Friction)
		}
		if v.Len() < 0.001 {
			v = mgl32.Vec3{}
		}
	default:
		v = target
	}

	v[1] = 0
	if !finite(v) {
		v = mgl32.Vec3{}
	}
	*velocity = v

	disp := v.Mul(dt)
	disp[1] = 0
	return disp
}

// stepVertical advances jump and crouch. Crouching moves the stance height
// with the eye height so the feet stay put.
func (m *MotionIntegrator) stepVertical(p *Player, input *Input, dt float32) {
	jump := input.takeJump()
	if m.Jump.Enabled && jump && !p.Airborne {
		p.Airborne = true
		p.jumpVelocity = m.Jump.LaunchSpeed
	}
	if p.Airborne {
		p.jumpVelocity -= m.Jump.Gravity * dt
		p.jumpHeight += p.jumpVelocity * dt
		if p.jumpHeight <= 0 {
			p.jumpHeight = 0
			p.jumpVelocity = 0
			p.Airborne = false
		}
	}

	if !m.Crouch.Enabled || p.Airborne {
		return
	}
	target := m.EyeHeight
	if input.Movement.Crouch {
		target -= m.Crouch.Drop
	}
	delta := (target - p.EyeHeight) * m.Crouch.Easing
	if diff := target - p.EyeHeight; diff > -1e-4 && diff < 1e-4 {
		delta = diff
	}
	p.EyeHeight += delta
	p.stanceY += delta
}

type MotionModule struct {
	Config Config
}

func (mod MotionModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(newPlayer(mod.Config), NewMotionIntegrator(mod.Config))

	app.UseSystem(
		System(motionSystem).
			InStage(Update),
	)
}

func motionSystem(t *Time, input *Input, player *Player, motion *MotionIntegrator, resolver *Resolver, boundary *Boundary) {
	dt := t.Seconds()
	prev := player.Pose.Position

	motion.stepVertical(player, input, dt)

	disp := motion.Step(player.Pose, input.Movement, &player.Velocity, dt)
	pos := player.Pose.Position
	if disp.Len() > 0 {
		current := mgl32.Vec3{pos.X(), player.stanceY, pos.Z()}
		res := resolver.Resolve(current, current.Add(disp), player.EyeHeight)
		player.LastMove = res
		if res.CanMove {
			pos[0] = res.Position.X()
			pos[2] = res.Position.Z()
			player.stanceY = res.Position.Y()
		}
	}

	player.stanceY = mgl32.Clamp(player.stanceY, boundary.Min.Y(), boundary.Max.Y())
	pos[1] = player.stanceY + player.jumpHeight
	player.Pose.Position = boundary.Clamp(pos)
	player.Moved = player.Pose.Position.X() != prev.X() || player.Pose.Position.Z() != prev.Z()
}
