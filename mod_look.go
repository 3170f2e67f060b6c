package explorer

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// LookController turns accumulated mouse velocity into yaw and pitch.
type LookController struct {
	PitchLimit    float32
	Smoothing     float32
	SnapThreshold float32
}

func NewLookController(cfg LookConfig) *LookController {
	return &LookController{
		PitchLimit:    cfg.PitchLimit,
		Smoothing:     cfg.Smoothing,
		SnapThreshold: cfg.SnapThreshold,
	}
}

// Apply rotates pose by the input's mouse velocity and decays it. Nothing
// rotates unless the pointer is locked.
func (lc *LookController) Apply(pose *CameraPose, input *Input) {
	v := input.MouseVelocity
	if !finite(mgl32.Vec3{v[0], v[1], 0}) {
		input.MouseVelocity = mgl32.Vec2{}
		return
	}

	if input.PointerLocked {
		// mouse right turns left-handed: yaw decreases
		pose.Yaw = wrapAngle(pose.Yaw - v[0])
		pose.Pitch -= v[1]
	}
	pose.Pitch = mgl32.Clamp(pose.Pitch, -lc.PitchLimit, lc.PitchLimit)

	v = v.Mul(lc.Smoothing)
	for i := range v {
		if v[i] > -lc.SnapThreshold && v[i] < lc.SnapThreshold {
			v[i] = 0
		}
	}
	input.MouseVelocity = v
}

func wrapAngle(a float32) float32 {
	if a > math32.Pi || a < -math32.Pi {
		a = math32.Remainder(a, 2*math32.Pi)
	}
	return a
}

// PointerLocker asks the host to capture the pointer for this scene. The
// outcome arrives later as an EventPointerLockChange.
type PointerLocker interface {
	RequestPointerLock() error
}

type pointerLockResource struct {
	locker PointerLocker
}

type LookModule struct {
	Config LookConfig
	Locker PointerLocker
}

func (mod LookModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(NewLookController(mod.Config), &pointerLockResource{locker: mod.Locker})

	app.UseSystem(
		System(pointerLockSystem).
			InStage(PreUpdate),
	)
	app.UseSystem(
		System(lookSystem).
			InStage(PreUpdate),
	)
}

func pointerLockSystem(input *Input, res *pointerLockResource, cmd *Commands) {
	if !input.takeClick() || input.PointerLocked || res.locker == nil {
		return
	}
	if err := res.locker.RequestPointerLock(); err != nil {
		cmd.Logger().Warnf("pointer lock request failed: %v", err)
	}
}

func lookSystem(input *Input, player *Player, look *LookController) {
	look.Apply(&player.Pose, input)
}
