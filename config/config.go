package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/viraasat/explorer"
)

// EnvPrefix prefixes every environment override, e.g. EXPLORER_MOTION_SPEED.
const EnvPrefix = "EXPLORER"

// Settings is a resolved scene file.
type Settings struct {
	Monument string
	// ModelPath is the STL file for the monument, relative paths as written.
	ModelPath string
	Debug     bool
	Scene     explorer.Scene
}

// Load reads a scene file (YAML, JSON or TOML by extension) on top of the
// monument preset it names. An empty path loads the preset from the
// environment alone. overrides win over both, keyed like the file.
func Load(path string, overrides map[string]any) (*Settings, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("monument", "sanchi-stupa")
	v.SetDefault("debug", false)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}
	for key, value := range overrides {
		v.Set(key, value)
	}

	scene, err := explorer.LookupMonument(v.GetString("monument"))
	if err != nil {
		return nil, err
	}
	setDefaults(v, scene)

	var cfg explorer.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	scene.Config = cfg
	scene.ModelScale = float32(v.GetFloat64("model_scale"))

	return &Settings{
		Monument:  v.GetString("monument"),
		ModelPath: v.GetString("model"),
		Debug:     v.GetBool("debug"),
		Scene:     scene,
	}, nil
}

func setDefaults(v *viper.Viper, scene explorer.Scene) {
	c := scene.Config

	v.SetDefault("model", scene.ModelPath)
	v.SetDefault("model_scale", scene.ModelScale)

	v.SetDefault("name", c.Name)
	v.SetDefault("eye_height", c.EyeHeight)
	v.SetDefault("start", c.Start)
	v.SetDefault("start_yaw", c.StartYaw)
	v.SetDefault("start_pitch", c.StartPitch)
	v.SetDefault("boundary.min", c.Boundary.Min)
	v.SetDefault("boundary.max", c.Boundary.Max)
	v.SetDefault("footstep_interval", c.FootstepInterval)

	v.SetDefault("motion.speed", c.Motion.Speed)
	v.SetDefault("motion.locomotion", string(c.Motion.Locomotion))
	v.SetDefault("motion.acceleration", c.Motion.Acceleration)
	v.SetDefault("motion.friction", c.Motion.Friction)
	v.SetDefault("motion.damping", c.Motion.Damping)
	v.SetDefault("motion.max_dt", c.Motion.MaxDt)

	v.SetDefault("look.sensitivity", c.Look.Sensitivity)
	v.SetDefault("look.smoothing", c.Look.Smoothing)
	v.SetDefault("look.pitch_limit", c.Look.PitchLimit)
	v.SetDefault("look.snap_threshold", c.Look.SnapThreshold)

	v.SetDefault("collision.player_radius", c.Collision.PlayerRadius)
	v.SetDefault("collision.step_height", c.Collision.StepHeight)
	v.SetDefault("collision.ray_height", c.Collision.RayHeight)
	v.SetDefault("collision.ground_offset", c.Collision.GroundOffset)
	v.SetDefault("collision.ground_probe_height", c.Collision.GroundProbeHeight)
	v.SetDefault("collision.ground_probe_distance", c.Collision.GroundProbeDistance)
	v.SetDefault("collision.epsilon", c.Collision.Epsilon)

	v.SetDefault("jump.enabled", c.Jump.Enabled)
	v.SetDefault("jump.launch_speed", c.Jump.LaunchSpeed)
	v.SetDefault("jump.gravity", c.Jump.Gravity)

	v.SetDefault("crouch.enabled", c.Crouch.Enabled)
	v.SetDefault("crouch.drop", c.Crouch.Drop)
	v.SetDefault("crouch.easing", c.Crouch.Easing)
}
