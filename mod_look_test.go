package explorer

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLook() *LookController {
	return NewLookController(LookConfig{
		Sensitivity:   0.002,
		Smoothing:     0.85,
		PitchLimit:    DefaultPitchLimit,
		SnapThreshold: 0.0001,
	})
}

func TestLookController_PitchStaysClamped(t *testing.T) {
	lc := newTestLook()
	in := &Input{Sensitivity: 0.002, PointerLocked: true}
	pose := &CameraPose{}

	for i := 0; i < 200; i++ {
		in.HandleEvent(Event{Kind: EventMouseMove, DX: 5000, DY: -100000})
		lc.Apply(pose, in)
		require.LessOrEqual(t, pose.Pitch, float32(DefaultPitchLimit))
		require.GreaterOrEqual(t, pose.Pitch, float32(-DefaultPitchLimit))
	}
	assert.InDelta(t, DefaultPitchLimit, pose.Pitch, 1e-6)

	for i := 0; i < 200; i++ {
		in.HandleEvent(Event{Kind: EventMouseMove, DY: 100000})
		lc.Apply(pose, in)
	}
	assert.InDelta(t, -DefaultPitchLimit, pose.Pitch, 1e-6)
	assert.LessOrEqual(t, pose.Yaw, float32(math.Pi))
	assert.GreaterOrEqual(t, pose.Yaw, float32(-math.Pi))
}

func TestLookController_NoRotationWhenUnlocked(t *testing.T) {
	lc := newTestLook()
	in := &Input{PointerLocked: false, MouseVelocity: mgl32.Vec2{0.3, 0.2}}
	pose := &CameraPose{Yaw: 0.5, Pitch: 0.1}

	lc.Apply(pose, in)

	assert.Equal(t, float32(0.5), pose.Yaw)
	assert.Equal(t, float32(0.1), pose.Pitch)
}

func TestLookController_MouseRightTurnsYawDown(t *testing.T) {
	lc := newTestLook()
	in := &Input{PointerLocked: true, MouseVelocity: mgl32.Vec2{0.1, 0.05}}
	pose := &CameraPose{}

	lc.Apply(pose, in)

	assert.InDelta(t, -0.1, pose.Yaw, 1e-6)
	assert.InDelta(t, -0.05, pose.Pitch, 1e-6)
	assert.InDelta(t, 0.085, in.MouseVelocity.X(), 1e-6, "velocity decays by the smoothing factor")
}

func TestLookController_VelocitySnapsToZero(t *testing.T) {
	lc := newTestLook()
	in := &Input{PointerLocked: true, MouseVelocity: mgl32.Vec2{0.01, -0.01}}
	pose := &CameraPose{}

	for i := 0; i < 100; i++ {
		lc.Apply(pose, in)
	}
	assert.Equal(t, mgl32.Vec2{}, in.MouseVelocity)

	yaw := pose.Yaw
	lc.Apply(pose, in)
	assert.Equal(t, yaw, pose.Yaw, "a settled controller stops rotating")
}

func TestLookController_ZeroSmoothingIsDirect(t *testing.T) {
	lc := NewLookController(LookConfig{PitchLimit: DefaultPitchLimit, SnapThreshold: 0.0001})
	in := &Input{PointerLocked: true, MouseVelocity: mgl32.Vec2{0.2, 0}}
	pose := &CameraPose{}

	lc.Apply(pose, in)
	lc.Apply(pose, in)

	assert.InDelta(t, -0.2, pose.Yaw, 1e-6)
	assert.Equal(t, mgl32.Vec2{}, in.MouseVelocity)
}

func TestLookController_NaNVelocityDropped(t *testing.T) {
	lc := newTestLook()
	nan := float32(math.NaN())
	in := &Input{PointerLocked: true, MouseVelocity: mgl32.Vec2{nan, 0}}
	pose := &CameraPose{Yaw: 0.25}

	lc.Apply(pose, in)

	assert.Equal(t, float32(0.25), pose.Yaw)
	assert.Equal(t, mgl32.Vec2{}, in.MouseVelocity)
}

type mockLocker struct {
	calls int
	err   error
}

func (m *mockLocker) RequestPointerLock() error {
	m.calls++
	return m.err
}

func TestPointerLockSystem(t *testing.T) {
	locker := &mockLocker{err: errors.New("denied")}
	in := &Input{}
	res := &pointerLockResource{locker: locker}
	cmd := NewApp().Commands()

	pointerLockSystem(in, res, cmd)
	assert.Equal(t, 0, locker.calls, "no click, no request")

	in.HandleEvent(Event{Kind: EventClick})
	pointerLockSystem(in, res, cmd)
	assert.Equal(t, 1, locker.calls)

	in.HandleEvent(Event{Kind: EventPointerLockChange, Locked: true})
	in.HandleEvent(Event{Kind: EventClick})
	pointerLockSystem(in, res, cmd)
	assert.Equal(t, 1, locker.calls, "already locked")
}

func TestCameraPose_Vectors(t *testing.T) {
	pose := CameraPose{}
	assertVec3(t, mgl32.Vec3{0, 0, -1}, pose.Forward(), 1e-6)
	assertVec3(t, mgl32.Vec3{1, 0, 0}, pose.Right(), 1e-6)

	pose.Yaw = math.Pi / 2
	assertVec3(t, mgl32.Vec3{-1, 0, 0}, pose.Forward(), 1e-5)
	assertVec3(t, mgl32.Vec3{0, 0, -1}, pose.Right(), 1e-5)

	pose = CameraPose{Pitch: 0.4}
	h := pose.HorizontalForward()
	assert.InDelta(t, 0, h.Y(), 1e-6)
	assert.InDelta(t, 1, h.Len(), 1e-5)

	pose = CameraPose{Pitch: math.Pi / 2}
	assert.Equal(t, mgl32.Vec3{}, pose.HorizontalForward())
	assert.Equal(t, mgl32.Vec3{}, pose.Right())
}

func TestCameraPose_ViewMatrix(t *testing.T) {
	pose := CameraPose{Position: mgl32.Vec3{3, 1.6, -2}, Yaw: 0.7, Pitch: -0.3}
	view := pose.ViewMatrix()

	eye := view.Mul4x1(pose.Position.Vec4(1)).Vec3()
	assertVec3(t, mgl32.Vec3{}, eye, 1e-5)

	ahead := view.Mul4x1(pose.Position.Add(pose.Forward().Mul(2)).Vec4(1)).Vec3()
	assertVec3(t, mgl32.Vec3{0, 0, -2}, ahead, 1e-5)
}

func TestCameraPose_RotationMatchesForward(t *testing.T) {
	pose := CameraPose{Yaw: 0.7, Pitch: -0.3}
	rotated := pose.Rotation().Rotate(mgl32.Vec3{0, 0, -1})
	assertVec3(t, pose.Forward(), rotated, 1e-5, "got %v want %v", rotated, pose.Forward())
}
