package explorer

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// CreatePlaneMesh returns a horizontal width x depth quad centered on the origin at y=0.
func CreatePlaneMesh(name string, width, depth float32) Mesh {
	hw, hd := width*0.5, depth*0.5
	vertices := []mgl32.Vec3{
		{-hw, 0, -hd},
		{hw, 0, -hd},
		{hw, 0, hd},
		{-hw, 0, hd},
	}
	indexes := []uint32{0, 2, 1, 0, 3, 2}
	return mustMesh(name, KindGround, vertices, indexes)
}

// CreateBoxMesh returns an axis-aligned box centered on the origin.
func CreateBoxMesh(name string, sizeX, sizeY, sizeZ float32) Mesh {
	x, y, z := sizeX*0.5, sizeY*0.5, sizeZ*0.5
	vertices := []mgl32.Vec3{
		{-x, -y, -z}, {x, -y, -z}, {x, y, -z}, {-x, y, -z},
		{-x, -y, z}, {x, -y, z}, {x, y, z}, {-x, y, z},
	}
	indexes := []uint32{
		0, 2, 1, 0, 3, 2, // back
		4, 5, 6, 4, 6, 7, // front
		0, 4, 7, 0, 7, 3, // left
		1, 2, 6, 1, 6, 5, // right
		3, 7, 6, 3, 6, 2, // top
		0, 1, 5, 0, 5, 4, // bottom
	}
	return mustMesh(name, KindProp, vertices, indexes)
}

// CreateSphereMesh returns a UV sphere. Segment counts below the minimum are raised.
func CreateSphereMesh(name string, radius float32, widthSegments, heightSegments int) Mesh {
	widthSegments = max(widthSegments, 3)
	heightSegments = max(heightSegments, 2)

	var vertices []mgl32.Vec3
	for iy := 0; iy <= heightSegments; iy++ {
		v := float64(iy) / float64(heightSegments)
		theta := v * math.Pi
		for ix := 0; ix <= widthSegments; ix++ {
			u := float64(ix) / float64(widthSegments)
			phi := u * 2 * math.Pi
			vertices = append(vertices, mgl32.Vec3{
				float32(-float64(radius) * math.Cos(phi) * math.Sin(theta)),
				float32(float64(radius) * math.Cos(theta)),
				float32(float64(radius) * math.Sin(phi) * math.Sin(theta)),
			})
		}
	}

	row := uint32(widthSegments + 1)
	var indexes []uint32
	for iy := 0; iy < heightSegments; iy++ {
		for ix := 0; ix < widthSegments; ix++ {
			a := uint32(iy)*row + uint32(ix) + 1
			b := uint32(iy)*row + uint32(ix)
			c := uint32(iy+1)*row + uint32(ix)
			d := uint32(iy+1)*row + uint32(ix) + 1
			if iy != 0 {
				indexes = append(indexes, a, b, d)
			}
			if iy != heightSegments-1 {
				indexes = append(indexes, b, c, d)
			}
		}
	}
	return mustMesh(name, KindProp, vertices, indexes)
}

// CreateCylinderMesh returns a capped cylinder or frustum spanning y in [-h/2, h/2].
func CreateCylinderMesh(name string, radiusTop, radiusBottom, height float32, segments int) Mesh {
	segments = max(segments, 3)
	hh := height * 0.5

	var vertices []mgl32.Vec3
	for i := 0; i < segments; i++ {
		a := float64(i) / float64(segments) * 2 * math.Pi
		s, c := float32(math.Sin(a)), float32(math.Cos(a))
		vertices = append(vertices,
			mgl32.Vec3{radiusTop * s, hh, radiusTop * c},
			mgl32.Vec3{radiusBottom * s, -hh, radiusBottom * c},
		)
	}
	top := uint32(len(vertices))
	vertices = append(vertices, mgl32.Vec3{0, hh, 0})
	bottom := uint32(len(vertices))
	vertices = append(vertices, mgl32.Vec3{0, -hh, 0})

	var indexes []uint32
	n := uint32(segments)
	for i := uint32(0); i < n; i++ {
		j := (i + 1) % n
		t0, b0 := 2*i, 2*i+1
		t1, b1 := 2*j, 2*j+1
		indexes = append(indexes,
			t0, b0, t1,
			b0, b1, t1,
			top, t0, t1,
			bottom, b1, b0,
		)
	}
	return mustMesh(name, KindProp, vertices, indexes)
}

// CreateTreeMesh returns a trunk and foliage pair standing on y=0, placed at
// pos and uniformly scaled by size.
func CreateTreeMesh(name string, pos mgl32.Vec3, size float32) Mesh {
	trunk := CreateCylinderMesh(name+"/trunk", 0.3, 0.4, 3, 8)
	foliage := CreateSphereMesh(name+"/foliage", 1.5, 8, 6)

	tris := make([]Triangle, 0, len(trunk.Triangles)+len(foliage.Triangles))
	trunkAt := At(mgl32.Vec3{0, 1.5, 0}).ObjectToWorld()
	for _, t := range trunk.Triangles {
		tris = append(tris, t.Transformed(trunkAt))
	}
	foliageAt := At(mgl32.Vec3{0, 4, 0}).ObjectToWorld()
	for _, t := range foliage.Triangles {
		tris = append(tris, t.Transformed(foliageAt))
	}

	return Mesh{
		Name:      name,
		Kind:      KindProp,
		Triangles: tris,
		Transform: At(pos).Scaled(size),
	}
}

func mustMesh(name string, kind ColliderKind, vertices []mgl32.Vec3, indexes []uint32) Mesh {
	m, err := NewMesh(name, kind, vertices, indexes)
	if err != nil {
		panic(err)
	}
	return m
}
