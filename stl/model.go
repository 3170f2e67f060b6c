package stl

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Facet is one STL triangle with its stored normal.
type Facet struct {
	Normal     mgl32.Vec3
	V1, V2, V3 mgl32.Vec3
}

// Model represents a complete STL model
type Model struct {
	Name   string
	Facets []Facet
}

func NewModel(name string) *Model {
	return &Model{
		Name:   name,
		Facets: make([]Facet, 0),
	}
}

func (m *Model) AddFacet(f Facet) {
	m.Facets = append(m.Facets, f)
}

func (m *Model) TriangleCount() int {
	return len(m.Facets)
}

// Bounds returns the min and max corners. Both are zero for an empty model.
func (m *Model) Bounds() (mgl32.Vec3, mgl32.Vec3) {
	if len(m.Facets) == 0 {
		return mgl32.Vec3{}, mgl32.Vec3{}
	}
	lo, hi := m.Facets[0].V1, m.Facets[0].V1
	for _, f := range m.Facets {
		for _, v := range [3]mgl32.Vec3{f.V1, f.V2, f.V3} {
			for i := 0; i < 3; i++ {
				lo[i] = min(lo[i], v[i])
				hi[i] = max(hi[i], v[i])
			}
		}
	}
	return lo, hi
}

// Indexed flattens the model into an unwelded vertex list and triangle indexes.
func (m *Model) Indexed() ([]mgl32.Vec3, []uint32) {
	vertices := make([]mgl32.Vec3, 0, len(m.Facets)*3)
	indexes := make([]uint32, 0, len(m.Facets)*3)
	for _, f := range m.Facets {
		base := uint32(len(vertices))
		vertices = append(vertices, f.V1, f.V2, f.V3)
		indexes = append(indexes, base, base+1, base+2)
	}
	return vertices, indexes
}
