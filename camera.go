package explorer

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	worldUp    = mgl32.Vec3{0, 1, 0}
	worldRight = mgl32.Vec3{1, 0, 0}
)

// CameraPose is the explorer camera: Y-up, yaw about +Y, pitch about the camera's
// right axis. Zero yaw and pitch look down -Z.
type CameraPose struct {
	Position mgl32.Vec3
	Yaw      float32
	Pitch    float32
}

func (c CameraPose) Forward() mgl32.Vec3 {
	sy, cy := math32.Sincos(c.Yaw)
	sp, cp := math32.Sincos(c.Pitch)
	return mgl32.Vec3{-sy * cp, sp, -cy * cp}
}

// HorizontalForward is Forward with the vertical component dropped and the rest
// renormalized. It is the zero vector when the camera looks straight up or down.
func (c CameraPose) HorizontalForward() mgl32.Vec3 {
	f := c.Forward()
	f[1] = 0
	l := f.Len()
	if l < 1e-6 {
		return mgl32.Vec3{}
	}
	return f.Mul(1 / l)
}

// Right is the normalized cross product of the horizontal forward and world up.
func (c CameraPose) Right() mgl32.Vec3 {
	f := c.HorizontalForward()
	if f.Len() == 0 {
		return mgl32.Vec3{}
	}
	return f.Cross(worldUp).Normalize()
}

func (c CameraPose) Rotation() mgl32.Quat {
	yaw := mgl32.QuatRotate(c.Yaw, worldUp)
	pitch := mgl32.QuatRotate(c.Pitch, worldRight)
	return yaw.Mul(pitch)
}

func (c CameraPose) ViewMatrix() mgl32.Mat4 {
	eye := c.Position
	return mgl32.LookAtV(eye, eye.Add(c.Forward()), worldUp)
}

// CameraSink is the host engine camera the finished pose is written into.
type CameraSink interface {
	SetPose(pose CameraPose)
}

// CameraSinkFunc adapts a plain func to CameraSink.
type CameraSinkFunc func(pose CameraPose)

func (f CameraSinkFunc) SetPose(pose CameraPose) { f(pose) }
