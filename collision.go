package explorer

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/viraasat/explorer/bvh"
)

// RaycastHit is the result of one ray query. It is only meaningful when Hit is set.
type RaycastHit struct {
	Hit      bool
	Distance float32
	Point    mgl32.Vec3
	Normal   mgl32.Vec3
	Collider ColliderId
}

type collider struct {
	id        ColliderId
	name      string
	kind      ColliderKind
	triangles []Triangle
	tree      *bvh.Tree
}

// ColliderInfo describes one registered mesh.
type ColliderInfo struct {
	Id        ColliderId
	Name      string
	Kind      ColliderKind
	Triangles int
	Bounds    bvh.AABB
}

// CollisionWorld is the append-only registry of static geometry for one scene.
// Triangles are baked into world space when registered.
type CollisionWorld struct {
	colliders []*collider
	top       *bvh.Tree
	logger    Logger
}

func NewCollisionWorld(logger Logger) *CollisionWorld {
	if logger == nil {
		logger = NewNopLogger()
	}
	return &CollisionWorld{
		top:    bvh.Build(nil),
		logger: logger,
	}
}

// Register bakes mesh into world space and adds it to the registry.
func (w *CollisionWorld) Register(mesh Mesh) (ColliderId, error) {
	if len(mesh.Triangles) == 0 {
		return "", fmt.Errorf("register %q: %w", mesh.Name, ErrEmptyMesh)
	}

	tris := mesh.WorldTriangles()
	boxes := make([]bvh.AABB, len(tris))
	for i, t := range tris {
		for _, v := range [3]mgl32.Vec3{t.A, t.B, t.C} {
			if !finite(v) {
				return "", fmt.Errorf("register %q: triangle %d has a non-finite vertex", mesh.Name, i)
			}
		}
		boxes[i] = t.Bounds()
	}

	c := &collider{
		id:        makeColliderId(),
		name:      mesh.Name,
		kind:      mesh.Kind,
		triangles: tris,
		tree:      bvh.Build(boxes),
	}
	w.colliders = append(w.colliders, c)
	w.rebuild()

	w.logger.Infof("registered %s collider %q id=%s triangles=%d", c.kind, c.name, c.id, len(tris))
	return c.id, nil
}

func (w *CollisionWorld) rebuild() {
	boxes := make([]bvh.AABB, len(w.colliders))
	for i, c := range w.colliders {
		boxes[i] = c.tree.Bounds()
	}
	w.top = bvh.Build(boxes)
}

func (w *CollisionWorld) Len() int {
	return len(w.colliders)
}

// Empty reports whether nothing has been registered yet. An empty world never
// blocks movement.
func (w *CollisionWorld) Empty() bool {
	return len(w.colliders) == 0
}

func (w *CollisionWorld) Colliders() []ColliderInfo {
	out := make([]ColliderInfo, len(w.colliders))
	for i, c := range w.colliders {
		out[i] = ColliderInfo{
			Id:        c.id,
			Name:      c.name,
			Kind:      c.kind,
			Triangles: len(c.triangles),
			Bounds:    c.tree.Bounds(),
		}
	}
	return out
}

// Bounds returns the box around every registered triangle.
func (w *CollisionWorld) Bounds() bvh.AABB {
	return w.top.Bounds()
}

// Raycast returns the nearest triangle hit within maxDist. dir need not be
// normalized; a zero or non-finite direction never hits.
func (w *CollisionWorld) Raycast(origin, dir mgl32.Vec3, maxDist float32) RaycastHit {
	if w == nil || len(w.colliders) == 0 || !(maxDist > 0) || !finite(origin) || !finite(dir) {
		return RaycastHit{}
	}
	l := dir.Len()
	if l < 1e-9 {
		return RaycastHit{}
	}
	dir = dir.Mul(1 / l)

	var hitTri Triangle
	idx, dist, ok := w.top.Raycast(origin, dir, maxDist, func(ci int, limit float32) (float32, bool) {
		c := w.colliders[ci]
		ti, td, ok := c.tree.Raycast(origin, dir, limit, func(i int, lim float32) (float32, bool) {
			return c.triangles[i].Intersect(origin, dir, lim)
		})
		if !ok {
			return 0, false
		}
		hitTri = c.triangles[ti]
		return td, true
	})
	if !ok {
		return RaycastHit{}
	}

	normal := hitTri.Normal()
	if normal.Dot(dir) > 0 {
		normal = normal.Mul(-1)
	}
	return RaycastHit{
		Hit:      true,
		Distance: dist,
		Point:    origin.Add(dir.Mul(dist)),
		Normal:   normal,
		Collider: w.colliders[idx].id,
	}
}

func finite(v mgl32.Vec3) bool {
	for _, c := range v {
		if math32.IsNaN(c) || math32.IsInf(c, 0) {
			return false
		}
	}
	return true
}
