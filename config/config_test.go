package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viraasat/explorer"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_YAMLOverridesPreset(t *testing.T) {
	path := writeFile(t, "scene.yaml", `
monument: taj-mahal
model: models/taj.stl
debug: true
start: [1, 1.55, 4]
motion:
  speed: 5
  max_dt: 20ms
collision:
  player_radius: 0.4
`)

	s, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "taj-mahal", s.Monument)
	assert.Equal(t, "models/taj.stl", s.ModelPath)
	assert.True(t, s.Debug)

	cfg := s.Scene.Config
	assert.Equal(t, mgl32.Vec3{1, 1.55, 4}, cfg.Start)
	assert.Equal(t, float32(5), cfg.Motion.Speed)
	assert.Equal(t, 20*time.Millisecond, cfg.Motion.MaxDt)
	assert.Equal(t, float32(0.4), cfg.Collision.PlayerRadius)

	// untouched keys keep the preset values
	assert.Equal(t, explorer.LocomotionAccelerated, cfg.Motion.Locomotion)
	assert.True(t, cfg.Jump.Enabled)
	assert.Equal(t, float32(1.55), cfg.EyeHeight)
	assert.Equal(t, mgl32.Vec3{35, 3, 35}, cfg.Boundary.Max)
	assert.Equal(t, float32(2.8), s.Scene.ModelScale)
}

func TestLoad_DefaultValues(t *testing.T) {
	path := writeFile(t, "scene.json", `{}`)

	s, err := Load(path, nil)
	require.NoError(t, err)

	want := explorer.SanchiStupa()
	assert.Equal(t, "sanchi-stupa", s.Monument)
	assert.Equal(t, want.ModelPath, s.ModelPath)
	assert.Equal(t, want.Config, s.Scene.Config)
	assert.False(t, s.Debug)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("EXPLORER_MONUMENT", "sun-temple")
	t.Setenv("EXPLORER_MOTION_SPEED", "9")

	s, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "sun-temple", s.Monument)
	assert.Equal(t, float32(9), s.Scene.Config.Motion.Speed)
	assert.Equal(t, explorer.LocomotionDamped, s.Scene.Config.Motion.Locomotion)
}

func TestLoad_UnknownMonument(t *testing.T) {
	path := writeFile(t, "scene.yaml", "monument: red-fort\n")

	_, err := Load(path, nil)
	assert.ErrorIs(t, err, explorer.ErrUnknownMonument)
}

func TestLoad_InvalidConfig(t *testing.T) {
	path := writeFile(t, "scene.toml", `
[motion]
speed = -1
locomotion = "teleport"
`)

	_, err := Load(path, nil)
	assert.ErrorIs(t, err, explorer.ErrInvalidConfig)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	assert.Error(t, err)
}

func TestLoad_OverridesWin(t *testing.T) {
	path := writeFile(t, "scene.yaml", "monument: taj-mahal\nmotion:\n  speed: 5\n")

	s, err := Load(path, map[string]any{
		"monument":     "sun-temple",
		"motion.speed": 3,
	})
	require.NoError(t, err)

	assert.Equal(t, "sun-temple", s.Monument)
	assert.Equal(t, float32(3), s.Scene.Config.Motion.Speed)
}
