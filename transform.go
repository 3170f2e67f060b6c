package explorer

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Transform places a mesh in the world. Meshes are baked with it once at
// registration; the collision world never re-reads it.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3
}

func NewTransform() Transform {
	return Transform{
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

// At returns an identity transform translated to pos.
func At(pos mgl32.Vec3) Transform {
	t := NewTransform()
	t.Position = pos
	return t
}

// Scaled returns a copy with a uniform scale applied on top of the current one.
func (t Transform) Scaled(s float32) Transform {
	t.Scale = t.Scale.Mul(s)
	return t
}

func (t Transform) normalized() Transform {
	if t.Rotation == (mgl32.Quat{}) {
		t.Rotation = mgl32.QuatIdent()
	}
	if t.Scale == (mgl32.Vec3{}) {
		t.Scale = mgl32.Vec3{1, 1, 1}
	}
	return t
}

func (t Transform) ObjectToWorld() mgl32.Mat4 {
	t = t.normalized()
	// M = T * R * S
	translate := mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z())
	rotate := t.Rotation.Mat4()
	scale := mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z())

	return translate.Mul4(rotate).Mul4(scale)
}

func (t Transform) Apply(p mgl32.Vec3) mgl32.Vec3 {
	return mgl32.TransformCoordinate(p, t.ObjectToWorld())
}
