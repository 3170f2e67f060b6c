package explorer

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"

	"github.com/viraasat/explorer/bvh"
)

type ColliderId string

func makeColliderId() ColliderId {
	return ColliderId(uuid.NewString())
}

type Triangle struct {
	A, B, C mgl32.Vec3
}

func (t Triangle) Bounds() bvh.AABB {
	return bvh.FromPoints(t.A, t.B, t.C)
}

// Normal returns the unit face normal following the A, B, C winding, or the
// zero vector for a degenerate triangle.
func (t Triangle) Normal() mgl32.Vec3 {
	n := t.B.Sub(t.A).Cross(t.C.Sub(t.A))
	l := n.Len()
	if l < 1e-12 {
		return mgl32.Vec3{}
	}
	return n.Mul(1 / l)
}

func (t Triangle) Transformed(m mgl32.Mat4) Triangle {
	return Triangle{
		A: mgl32.TransformCoordinate(t.A, m),
		B: mgl32.TransformCoordinate(t.B, m),
		C: mgl32.TransformCoordinate(t.C, m),
	}
}

// Intersect is a double-sided Möller-Trumbore test. dir must be normalized for
// the returned distance to be in world units.
func (t Triangle) Intersect(origin, dir mgl32.Vec3, maxDist float32) (float32, bool) {
	const eps = 1e-7

	e1 := t.B.Sub(t.A)
	e2 := t.C.Sub(t.A)
	p := dir.Cross(e2)
	det := e1.Dot(p)
	if det > -eps && det < eps {
		return 0, false
	}
	inv := 1 / det

	s := origin.Sub(t.A)
	u := s.Dot(p) * inv
	if u < 0 || u > 1 {
		return 0, false
	}
	q := s.Cross(e1)
	v := dir.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}

	d := e2.Dot(q) * inv
	if d < 0 || d > maxDist {
		return 0, false
	}
	return d, true
}

type ColliderKind int

const (
	KindMonument ColliderKind = iota
	KindGround
	KindProp
)

func (k ColliderKind) String() string {
	switch k {
	case KindMonument:
		return "monument"
	case KindGround:
		return "ground"
	case KindProp:
		return "prop"
	}
	return fmt.Sprintf("ColliderKind(%d)", int(k))
}

// Mesh is triangle data in object space plus the transform that places it.
type Mesh struct {
	Name      string
	Kind      ColliderKind
	Triangles []Triangle
	Transform Transform
}

// NewMesh builds a mesh from a flat vertex list and a triangle index list.
func NewMesh(name string, kind ColliderKind, vertices []mgl32.Vec3, indexes []uint32) (Mesh, error) {
	if len(indexes)%3 != 0 {
		return Mesh{}, fmt.Errorf("mesh %q: index count %d is not a multiple of 3", name, len(indexes))
	}
	tris := make([]Triangle, 0, len(indexes)/3)
	for i := 0; i < len(indexes); i += 3 {
		a, b, c := indexes[i], indexes[i+1], indexes[i+2]
		if int(a) >= len(vertices) || int(b) >= len(vertices) || int(c) >= len(vertices) {
			return Mesh{}, fmt.Errorf("mesh %q: triangle %d references a missing vertex", name, i/3)
		}
		tris = append(tris, Triangle{vertices[a], vertices[b], vertices[c]})
	}
	if len(tris) == 0 {
		return Mesh{}, fmt.Errorf("mesh %q: %w", name, ErrEmptyMesh)
	}
	return Mesh{Name: name, Kind: kind, Triangles: tris, Transform: NewTransform()}, nil
}

// WithTransform returns a copy of the mesh placed by tr.
func (m Mesh) WithTransform(tr Transform) Mesh {
	m.Transform = tr
	return m
}

// WorldTriangles bakes the transform into every triangle.
func (m Mesh) WorldTriangles() []Triangle {
	mat := m.Transform.ObjectToWorld()
	out := make([]Triangle, len(m.Triangles))
	for i, t := range m.Triangles {
		out[i] = t.Transformed(mat)
	}
	return out
}
