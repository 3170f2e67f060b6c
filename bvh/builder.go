package bvh

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
)

// MaxLeafItems is the largest number of items a leaf holds before it is split.
const MaxLeafItems = 4

type AABB struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// Empty returns an inverted box that any Union replaces.
func Empty() AABB {
	inf := float32(math.Inf(1))
	return AABB{
		Min: mgl32.Vec3{inf, inf, inf},
		Max: mgl32.Vec3{-inf, -inf, -inf},
	}
}

func FromPoints(points ...mgl32.Vec3) AABB {
	box := Empty()
	for _, p := range points {
		box = box.Extend(p)
	}
	return box
}

func (a AABB) Valid() bool {
	return a.Min.X() <= a.Max.X() && a.Min.Y() <= a.Max.Y() && a.Min.Z() <= a.Max.Z()
}

func (a AABB) Extend(p mgl32.Vec3) AABB {
	return AABB{
		Min: mgl32.Vec3{min(a.Min.X(), p.X()), min(a.Min.Y(), p.Y()), min(a.Min.Z(), p.Z())},
		Max: mgl32.Vec3{max(a.Max.X(), p.X()), max(a.Max.Y(), p.Y()), max(a.Max.Z(), p.Z())},
	}
}

func (a AABB) Union(b AABB) AABB {
	return a.Extend(b.Min).Extend(b.Max)
}

func (a AABB) Centroid() mgl32.Vec3 {
	return a.Min.Add(a.Max).Mul(0.5)
}

func (a AABB) Contains(p mgl32.Vec3) bool {
	for i := 0; i < 3; i++ {
		if p[i] < a.Min[i] || p[i] > a.Max[i] {
			return false
		}
	}
	return true
}

// IntersectRay runs the slab test and returns the entry distance along dir.
// A ray starting inside the box enters at 0.
func (a AABB) IntersectRay(origin, dir mgl32.Vec3, maxDist float32) (float32, bool) {
	tNear := float32(0)
	tFar := maxDist
	for i := 0; i < 3; i++ {
		if dir[i] > -1e-12 && dir[i] < 1e-12 {
			if origin[i] < a.Min[i] || origin[i] > a.Max[i] {
				return 0, false
			}
			continue
		}
		inv := 1 / dir[i]
		t1 := (a.Min[i] - origin[i]) * inv
		t2 := (a.Max[i] - origin[i]) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tNear = max(tNear, t1)
		tFar = min(tFar, t2)
		if tNear > tFar {
			return 0, false
		}
	}
	return tNear, true
}

// Node is a flattened tree node. Interior nodes have Left and Right set and
// LeafCount 0; leaves point at Order[LeafFirst : LeafFirst+LeafCount].
type Node struct {
	Bounds    AABB
	Left      int32
	Right     int32
	LeafFirst int32
	LeafCount int32
}

func (n Node) IsLeaf() bool {
	return n.LeafCount > 0
}

// Tree is an immutable bounding volume hierarchy over caller-owned items.
type Tree struct {
	Nodes []Node
	// Order maps leaf slots back to the indices passed to Build.
	Order []int
}

type item struct {
	bounds   AABB
	centroid mgl32.Vec3
	index    int
}

// Build splits items along the longest axis at the median centroid.
func Build(boxes []AABB) *Tree {
	t := &Tree{}
	if len(boxes) == 0 {
		return t
	}

	items := make([]item, len(boxes))
	for i, b := range boxes {
		items[i] = item{bounds: b, centroid: b.Centroid(), index: i}
	}

	t.Nodes = make([]Node, 0, 2*len(boxes)/MaxLeafItems+1)
	t.Order = make([]int, 0, len(boxes))
	t.recursiveBuild(items)
	return t
}

func (t *Tree) recursiveBuild(items []item) int32 {
	idx := int32(len(t.Nodes))
	t.Nodes = append(t.Nodes, Node{Left: -1, Right: -1, LeafFirst: -1})

	bounds := Empty()
	for _, it := range items {
		bounds = bounds.Union(it.bounds)
	}
	t.Nodes[idx].Bounds = bounds

	if len(items) <= MaxLeafItems {
		t.Nodes[idx].LeafFirst = int32(len(t.Order))
		t.Nodes[idx].LeafCount = int32(len(items))
		for _, it := range items {
			t.Order = append(t.Order, it.index)
		}
		return idx
	}

	extent := bounds.Max.Sub(bounds.Min)
	axis := 0
	if extent.Y() > extent.X() {
		axis = 1
	}
	if extent.Z() > extent[axis] {
		axis = 2
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].centroid[axis] < items[j].centroid[axis]
	})

	mid := len(items) / 2
	left := t.recursiveBuild(items[:mid])
	right := t.recursiveBuild(items[mid:])
	t.Nodes[idx].Left = left
	t.Nodes[idx].Right = right

	return idx
}

func (t *Tree) Len() int {
	return len(t.Order)
}

// Bounds returns the root box, or an invalid box for an empty tree.
func (t *Tree) Bounds() AABB {
	if len(t.Nodes) == 0 {
		return Empty()
	}
	return t.Nodes[0].Bounds
}

// HitFunc tests one item against the ray and returns the hit distance.
// maxDist is the closest hit found so far.
type HitFunc func(index int, maxDist float32) (float32, bool)

// Raycast walks the tree front to back and returns the item with the nearest
// hit within maxDist.
func (t *Tree) Raycast(origin, dir mgl32.Vec3, maxDist float32, hit HitFunc) (int, float32, bool) {
	if len(t.Nodes) == 0 {
		return -1, 0, false
	}

	best := maxDist
	bestIndex := -1
	stack := make([]int32, 0, 32)
	stack = append(stack, 0)

	for len(stack) > 0 {
		n := t.Nodes[stack[len(stack)-1]]
		stack = stack[:len(stack)-1]

		if _, ok := n.Bounds.IntersectRay(origin, dir, best); !ok {
			continue
		}

		if n.IsLeaf() {
			for _, index := range t.Order[n.LeafFirst : n.LeafFirst+n.LeafCount] {
				if d, ok := hit(index, best); ok && d <= best {
					best = d
					bestIndex = index
				}
			}
			continue
		}

		// visit the nearer child first
		l, r := t.Nodes[n.Left], t.Nodes[n.Right]
		dl, okL := l.Bounds.IntersectRay(origin, dir, best)
		dr, okR := r.Bounds.IntersectRay(origin, dir, best)
		switch {
		case okL && okR:
			if dl < dr {
				stack = append(stack, n.Right, n.Left)
			} else {
				stack = append(stack, n.Left, n.Right)
			}
		case okL:
			stack = append(stack, n.Left)
		case okR:
			stack = append(stack, n.Right)
		}
	}

	if bestIndex < 0 {
		return -1, 0, false
	}
	return bestIndex, best, true
}
