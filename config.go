package explorer

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

type Locomotion string

const (
	// LocomotionDirect moves at full speed the frame a key is held.
	LocomotionDirect Locomotion = "direct"
	// LocomotionDamped pushes the velocity toward the target and bleeds it off
	// at Damping per second.
	LocomotionDamped Locomotion = "damped"
	// LocomotionAccelerated lerps toward the target at Acceleration and applies
	// Friction per frame when idle.
	LocomotionAccelerated Locomotion = "accelerated"
)

func (l Locomotion) Valid() bool {
	switch l {
	case LocomotionDirect, LocomotionDamped, LocomotionAccelerated:
		return true
	}
	return false
}

type MotionConfig struct {
	Speed        float32       `mapstructure:"speed"`
	Locomotion   Locomotion    `mapstructure:"locomotion"`
	Acceleration float32       `mapstructure:"acceleration"`
	Friction     float32       `mapstructure:"friction"`
	Damping      float32       `mapstructure:"damping"`
	MaxDt        time.Duration `mapstructure:"max_dt"`
}

type LookConfig struct {
	Sensitivity float32 `mapstructure:"sensitivity"`
	// Smoothing is the per-frame decay of mouse velocity. Zero applies each
	// delta once with no inertia.
	Smoothing     float32 `mapstructure:"smoothing"`
	PitchLimit    float32 `mapstructure:"pitch_limit"`
	SnapThreshold float32 `mapstructure:"snap_threshold"`
}

type CollisionConfig struct {
	PlayerRadius        float32 `mapstructure:"player_radius"`
	StepHeight          float32 `mapstructure:"step_height"`
	RayHeight           float32 `mapstructure:"ray_height"`
	GroundOffset        float32 `mapstructure:"ground_offset"`
	GroundProbeHeight   float32 `mapstructure:"ground_probe_height"`
	GroundProbeDistance float32 `mapstructure:"ground_probe_distance"`
	Epsilon             float32 `mapstructure:"epsilon"`
}

type JumpConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	LaunchSpeed float32 `mapstructure:"launch_speed"`
	Gravity     float32 `mapstructure:"gravity"`
}

type CrouchConfig struct {
	Enabled bool    `mapstructure:"enabled"`
	Drop    float32 `mapstructure:"drop"`
	// Easing is the fraction of the remaining eye height change closed per frame.
	Easing float32 `mapstructure:"easing"`
}

// Config holds every tunable of one explorer instance.
type Config struct {
	Name       string     `mapstructure:"name"`
	EyeHeight  float32    `mapstructure:"eye_height"`
	Start      mgl32.Vec3 `mapstructure:"start"`
	StartYaw   float32    `mapstructure:"start_yaw"`
	StartPitch float32    `mapstructure:"start_pitch"`
	Boundary   Boundary   `mapstructure:"boundary"`

	Motion    MotionConfig    `mapstructure:"motion"`
	Look      LookConfig      `mapstructure:"look"`
	Collision CollisionConfig `mapstructure:"collision"`
	Jump      JumpConfig      `mapstructure:"jump"`
	Crouch    CrouchConfig    `mapstructure:"crouch"`

	FootstepInterval time.Duration `mapstructure:"footstep_interval"`
}

const DefaultPitchLimit = 0.45 * math.Pi

func DefaultCollisionConfig() CollisionConfig {
	return CollisionConfig{
		PlayerRadius:        0.3,
		StepHeight:          0.2,
		RayHeight:           0.5,
		GroundOffset:        0.1,
		GroundProbeHeight:   1,
		GroundProbeDistance: 10,
		Epsilon:             0.001,
	}
}

func DefaultConfig() Config {
	return Config{
		Name:      "scene",
		EyeHeight: 1.6,
		Start:     mgl32.Vec3{0, 1.6, 8},
		Boundary: Boundary{
			Min: mgl32.Vec3{-25, -1, -25},
			Max: mgl32.Vec3{25, 8, 25},
		},
		Motion: MotionConfig{
			Speed:        7,
			Locomotion:   LocomotionDirect,
			Acceleration: 30,
			Friction:     0.8,
			Damping:      10,
			MaxDt:        100 * time.Millisecond,
		},
		Look: LookConfig{
			Sensitivity:   0.002,
			Smoothing:     0.85,
			PitchLimit:    DefaultPitchLimit,
			SnapThreshold: 0.0001,
		},
		Collision: DefaultCollisionConfig(),
		Jump: JumpConfig{
			LaunchSpeed: 9,
			Gravity:     72,
		},
		Crouch: CrouchConfig{
			Drop:   0.4,
			Easing: 0.2,
		},
		FootstepInterval: 500 * time.Millisecond,
	}
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Motion.Speed > 0, "motion.speed must be positive, got %v", c.Motion.Speed)
	check(c.Motion.Locomotion.Valid(), "motion.locomotion %q is not one of direct, damped, accelerated", c.Motion.Locomotion)
	check(c.Motion.MaxDt > 0, "motion.max_dt must be positive, got %v", c.Motion.MaxDt)
	check(c.Motion.Friction >= 0 && c.Motion.Friction <= 1, "motion.friction must be in [0, 1], got %v", c.Motion.Friction)
	check(c.Motion.Acceleration >= 0, "motion.acceleration must not be negative")
	check(c.Motion.Damping >= 0, "motion.damping must not be negative")

	check(c.Look.Sensitivity >= 0, "look.sensitivity must not be negative")
	check(c.Look.Smoothing >= 0 && c.Look.Smoothing < 1, "look.smoothing must be in [0, 1), got %v", c.Look.Smoothing)
	check(c.Look.PitchLimit > 0 && c.Look.PitchLimit < math.Pi/2, "look.pitch_limit must be in (0, pi/2), got %v", c.Look.PitchLimit)

	check(c.Collision.PlayerRadius >= 0, "collision.player_radius must not be negative")
	check(c.Collision.StepHeight >= 0, "collision.step_height must not be negative")
	check(c.Collision.Epsilon >= 0, "collision.epsilon must not be negative")
	check(c.Collision.GroundProbeHeight >= 0 && c.Collision.GroundProbeDistance >= 0, "collision ground probe must not be negative")

	check(c.EyeHeight >= 0, "eye_height must not be negative")
	check(finite(c.Start), "start must be finite")
	for i, axis := range []string{"x", "y", "z"} {
		check(c.Boundary.Min[i] <= c.Boundary.Max[i], "boundary.min.%s %v exceeds boundary.max.%s %v",
			axis, c.Boundary.Min[i], axis, c.Boundary.Max[i])
	}

	if c.Jump.Enabled {
		check(c.Jump.LaunchSpeed > 0 && c.Jump.Gravity > 0, "jump needs positive launch_speed and gravity")
	}
	if c.Crouch.Enabled {
		check(c.Crouch.Drop >= 0 && c.Crouch.Drop < c.EyeHeight, "crouch.drop must be in [0, eye_height)")
		check(c.Crouch.Easing > 0 && c.Crouch.Easing <= 1, "crouch.easing must be in (0, 1]")
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}
