package explorer

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Boundary is the hard axis-aligned envelope of a scene.
type Boundary struct {
	Min mgl32.Vec3 `mapstructure:"min"`
	Max mgl32.Vec3 `mapstructure:"max"`
}

// Clamp moves p into the box one axis at a time. NaN components land on Min.
func (b Boundary) Clamp(p mgl32.Vec3) mgl32.Vec3 {
	for i := 0; i < 3; i++ {
		switch {
		case !(p[i] >= b.Min[i]):
			p[i] = b.Min[i]
		case p[i] > b.Max[i]:
			p[i] = b.Max[i]
		}
	}
	return p
}

func (b Boundary) Contains(p mgl32.Vec3) bool {
	for i := 0; i < 3; i++ {
		if !(p[i] >= b.Min[i] && p[i] <= b.Max[i]) {
			return false
		}
	}
	return true
}

type BoundaryModule struct {
	Boundary Boundary
}

func (mod BoundaryModule) Install(app *App, cmd *Commands) {
	b := mod.Boundary
	cmd.AddResources(&b)
}
