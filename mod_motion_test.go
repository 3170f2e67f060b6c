package explorer

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMotion(loco Locomotion) *MotionIntegrator {
	cfg := DefaultConfig()
	cfg.Motion.Locomotion = loco
	return NewMotionIntegrator(cfg)
}

func TestMotionIntegrator_NeverMovesVertically(t *testing.T) {
	pose := CameraPose{Yaw: 0.3, Pitch: 0.4}
	for _, loco := range []Locomotion{LocomotionDirect, LocomotionDamped, LocomotionAccelerated} {
		m := newTestMotion(loco)
		for mask := 0; mask < 16; mask++ {
			move := MovementState{
				Forward:  mask&1 != 0,
				Backward: mask&2 != 0,
				Left:     mask&4 != 0,
				Right:    mask&8 != 0,
			}
			var v mgl32.Vec3
			for i := 0; i < 10; i++ {
				disp := m.Step(pose, move, &v, 1.0/60)
				if disp.Y() != 0 || v.Y() != 0 {
					t.Fatalf("%s %+v: vertical motion disp=%v v=%v", loco, move, disp, v)
				}
			}
		}
	}
}

func TestMotionIntegrator_DirectSpeed(t *testing.T) {
	m := newTestMotion(LocomotionDirect)
	var v mgl32.Vec3

	disp := m.Step(CameraPose{}, MovementState{Forward: true}, &v, 0.5)
	assertVec3(t, mgl32.Vec3{0, 0, -3.5}, disp, 1e-5, "got %v", disp)

	disp = m.Step(CameraPose{}, MovementState{Forward: true, Right: true}, &v, 1)
	assert.InDelta(t, 7, disp.Len(), 1e-4, "diagonals are not faster")
	assert.Greater(t, disp.X(), float32(0))

	disp = m.Step(CameraPose{}, MovementState{Forward: true, Backward: true}, &v, 1)
	assert.Equal(t, mgl32.Vec3{}, disp, "opposing keys cancel")

	disp = m.Step(CameraPose{}, MovementState{}, &v, 1)
	assert.Equal(t, mgl32.Vec3{}, v, "direct locomotion stops at once")
}

func TestMotionIntegrator_IgnoresBadDt(t *testing.T) {
	m := newTestMotion(LocomotionDirect)
	v := mgl32.Vec3{1, 0, 0}
	for _, dt := range []float32{0, -1, float32(math.NaN())} {
		assert.Equal(t, mgl32.Vec3{}, m.Step(CameraPose{}, MovementState{Forward: true}, &v, dt))
	}
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, v)
}

func TestMotionIntegrator_DampedSettlesAtSpeed(t *testing.T) {
	m := newTestMotion(LocomotionDamped)
	var v mgl32.Vec3
	move := MovementState{Forward: true}

	first := m.Step(CameraPose{}, move, &v, 1.0/60)
	assert.Less(t, first.Len(), float32(7.0/60), "damped locomotion eases in")

	for i := 0; i < 240; i++ {
		m.Step(CameraPose{}, move, &v, 1.0/60)
	}
	assert.InDelta(t, 7, v.Len(), 1e-3)

	for i := 0; i < 240; i++ {
		m.Step(CameraPose{}, MovementState{}, &v, 1.0/60)
	}
	assert.InDelta(t, 0, v.Len(), 1e-3)
}

func TestMotionIntegrator_AcceleratedFriction(t *testing.T) {
	m := newTestMotion(LocomotionAccelerated)
	var v mgl32.Vec3
	move := MovementState{Left: true}

	for i := 0; i < 60; i++ {
		m.Step(CameraPose{}, move, &v, 0.016)
	}
	assert.InDelta(t, 7, v.Len(), 1e-3)
	assert.Less(t, v.X(), float32(0))

	m.Step(CameraPose{}, MovementState{}, &v, 0.016)
	assert.InDelta(t, 7*0.8, v.Len(), 1e-2, "friction applies per idle frame")

	for i := 0; i < 100; i++ {
		m.Step(CameraPose{}, MovementState{}, &v, 0.016)
	}
	assert.Equal(t, mgl32.Vec3{}, v, "tiny velocities snap to zero")
}

func TestMotionIntegrator_DirectionFollowsYaw(t *testing.T) {
	m := newTestMotion(LocomotionDirect)
	pose := CameraPose{Yaw: math.Pi / 2, Pitch: -0.8}

	dir := m.Direction(pose, MovementState{Forward: true})
	assertVec3(t, mgl32.Vec3{-1, 0, 0}, dir, 1e-5, "got %v", dir)

	dir = m.Direction(pose, MovementState{Backward: true})
	assertVec3(t, mgl32.Vec3{1, 0, 0}, dir, 1e-5, "got %v", dir)
}

func TestMotionSystem_WalkForwardOneSecond(t *testing.T) {
	e, err := New(DefaultConfig(), WithLogger(NewNopLogger()))
	require.NoError(t, err)
	defer e.Close()

	e.HandleEvent(Event{Kind: EventKeyDown, Key: KeyW})
	tickFor(e, 60, 60)

	pos := e.Pose().Position
	assert.InDelta(t, 0, pos.X(), 1e-4)
	assert.InDelta(t, 1.6, pos.Y(), 1e-5)
	assert.InDelta(t, 1, pos.Z(), 1e-3)
	assert.Less(t, pos.Z(), float32(8))
	assert.True(t, e.Config().Boundary.Contains(pos))
}

func TestMotionSystem_BoundaryHolds(t *testing.T) {
	e, err := New(DefaultConfig(), WithLogger(NewNopLogger()))
	require.NoError(t, err)
	defer e.Close()

	e.HandleEvent(Event{Kind: EventKeyDown, Key: KeyW})
	e.HandleEvent(Event{Kind: EventKeyDown, Key: KeyA})
	for i := 0; i < 600; i++ {
		e.Tick(tickDt(60))
		require.True(t, e.Config().Boundary.Contains(e.Pose().Position), "frame %d at %v", i, e.Pose().Position)
	}
	pos := e.Pose().Position
	assert.InDelta(t, -25, pos.X(), 1e-5)
	assert.InDelta(t, -25, pos.Z(), 1e-5)
}

func TestMotionSystem_StartIsClamped(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Start = mgl32.Vec3{100, 1.6, -100}
	e, err := New(cfg, WithLogger(NewNopLogger()))
	require.NoError(t, err)
	defer e.Close()

	assert.Equal(t, mgl32.Vec3{25, 1.6, -25}, e.Pose().Position)
}

func TestMotionSystem_RespectsWalls(t *testing.T) {
	e, err := New(DefaultConfig(), WithLogger(NewNopLogger()))
	require.NoError(t, err)
	defer e.Close()

	_, err = e.RegisterMesh(CreatePlaneMesh("ground", 100, 100).WithTransform(At(mgl32.Vec3{0.3, -0.1, 0.2})))
	require.NoError(t, err)
	_, err = e.RegisterMesh(CreateBoxMesh("wall", 20, 4, 1).WithTransform(At(mgl32.Vec3{0, 2, 4})))
	require.NoError(t, err)

	e.HandleEvent(Event{Kind: EventKeyDown, Key: KeyW})
	tickFor(e, 60, 60)

	pos := e.Pose().Position
	assert.GreaterOrEqual(t, pos.Z(), float32(4.5+0.3-0.2), "stopped in front of the wall, got %v", pos)
	assert.InDelta(t, 1.6, pos.Y(), 1e-4)
	assert.False(t, e.LastMove().CanMove)
}

func TestMotionSystem_JumpAndLand(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Jump.Enabled = true
	e, err := New(cfg, WithLogger(NewNopLogger()))
	require.NoError(t, err)
	defer e.Close()

	e.HandleEvent(Event{Kind: EventKeyDown, Key: KeySpace})
	e.Tick(tickDt(60))
	require.True(t, e.Airborne())

	peak := float32(0)
	for i := 0; i < 60; i++ {
		e.Tick(tickDt(60))
		peak = max(peak, e.Pose().Position.Y())
	}
	assert.False(t, e.Airborne())
	assert.InDelta(t, 1.6+9.0*9.0/(2*72), peak, 0.1)
	assert.InDelta(t, 1.6, e.Pose().Position.Y(), 1e-5)

	// holding space does not bounce
	tickFor(e, 30, 60)
	assert.False(t, e.Airborne())
}

func TestMotionSystem_JumpDisabled(t *testing.T) {
	e, err := New(DefaultConfig(), WithLogger(NewNopLogger()))
	require.NoError(t, err)
	defer e.Close()

	e.HandleEvent(Event{Kind: EventKeyDown, Key: KeySpace})
	tickFor(e, 10, 60)

	assert.False(t, e.Airborne())
	assert.InDelta(t, 1.6, e.Pose().Position.Y(), 1e-6)
}

func TestMotionSystem_Crouch(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Crouch.Enabled = true
	e, err := New(cfg, WithLogger(NewNopLogger()))
	require.NoError(t, err)
	defer e.Close()

	e.HandleEvent(Event{Kind: EventKeyDown, Key: KeyShift})
	e.Tick(tickDt(60))
	assert.InDelta(t, 1.6-0.4*0.2, e.EyeHeight(), 1e-5, "crouch eases in")

	tickFor(e, 120, 60)
	assert.InDelta(t, 1.2, e.EyeHeight(), 1e-4)
	assert.InDelta(t, 1.2, e.Pose().Position.Y(), 1e-4)

	e.HandleEvent(Event{Kind: EventKeyUp, Key: KeyShift})
	tickFor(e, 120, 60)
	assert.InDelta(t, 1.6, e.EyeHeight(), 1e-4)
	assert.InDelta(t, 1.6, e.Pose().Position.Y(), 1e-4)
}
