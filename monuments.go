package explorer

import (
	"fmt"
	"sort"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// Scene is a monument preset: the explorer config plus the static props and
// zones laid out around the monument model.
type Scene struct {
	Name  string
	Title string
	// ModelPath names the monument asset; ModelScale is applied when it is registered.
	ModelPath  string
	ModelScale float32
	Config     Config

	props func() []Mesh
	zones func() *ZoneTracker
}

// Props returns fresh meshes for the ground and decorative props.
func (s Scene) Props() []Mesh {
	if s.props == nil {
		return nil
	}
	return s.props()
}

func (s Scene) Zones() *ZoneTracker {
	if s.zones == nil {
		return NewZoneTracker(Zone{Name: "outdoor"})
	}
	return s.zones()
}

// ModelTransform places the monument model at the origin with the preset scale.
func (s Scene) ModelTransform() Transform {
	scale := s.ModelScale
	if scale == 0 {
		scale = 1
	}
	return NewTransform().Scaled(scale)
}

func groundMesh() Mesh {
	return CreatePlaneMesh("ground", 100, 100).WithTransform(At(mgl32.Vec3{0, -0.1, 0}))
}

func crateMesh() Mesh {
	return CreateBoxMesh("crate", 1, 1, 1).WithTransform(At(mgl32.Vec3{8, 0.5, 8}))
}

type treePlacement struct {
	pos  mgl32.Vec3
	size float32
}

var tajForest = []treePlacement{
	{mgl32.Vec3{12, 0, 5}, 1.2},
	{mgl32.Vec3{-10, 0, 8}, 1.1},
	{mgl32.Vec3{8, 0, -6}, 0.9},
	{mgl32.Vec3{-7, 0, -8}, 1.3},
	{mgl32.Vec3{25, 0, 15}, 1.4},
	{mgl32.Vec3{-20, 0, 18}, 1.1},
	{mgl32.Vec3{18, 0, -12}, 0.8},
	{mgl32.Vec3{-15, 0, -14}, 1.2},
	{mgl32.Vec3{30, 0, -5}, 1.0},
	{mgl32.Vec3{-25, 0, 5}, 1.3},
}

func SunTemple() Scene {
	cfg := DefaultConfig()
	cfg.Name = "sun-temple"
	cfg.Start = mgl32.Vec3{0, 1.6, 5}
	cfg.Boundary = Boundary{Min: mgl32.Vec3{-10, 0, -10}, Max: mgl32.Vec3{10, 5, 10}}
	cfg.Motion.Locomotion = LocomotionDamped
	cfg.Look.Sensitivity = 0.002
	cfg.Look.Smoothing = 0

	return Scene{
		Name:       cfg.Name,
		Title:      "Sun Temple, Konark",
		ModelPath:  "models/suntemple_base_basic_shaded.stl",
		ModelScale: 0.8,
		Config:     cfg,
		props: func() []Mesh {
			return []Mesh{groundMesh()}
		},
	}
}

func SanchiStupa() Scene {
	cfg := DefaultConfig()
	cfg.Name = "sanchi-stupa"
	cfg.Start = mgl32.Vec3{0, 1.6, 8}
	cfg.Boundary = Boundary{Min: mgl32.Vec3{-25, -1, -25}, Max: mgl32.Vec3{25, 8, 25}}
	cfg.Motion.Locomotion = LocomotionDirect
	cfg.Look.Sensitivity = 0.0008
	cfg.Look.Smoothing = 0.85

	return Scene{
		Name:       cfg.Name,
		Title:      "Sanchi Stupa",
		ModelPath:  "models/sanchistupa_base_basic_shaded.stl",
		ModelScale: 0.8,
		Config:     cfg,
		props: func() []Mesh {
			return []Mesh{
				groundMesh(),
				crateMesh(),
				CreateSphereMesh("boulder", 0.6, 16, 12).WithTransform(At(mgl32.Vec3{-6, 0.3, -4})),
			}
		},
		zones: func() *ZoneTracker {
			return NewZoneTracker(
				Zone{Name: "outdoor", Info: "Walking the grounds around the Great Stupa."},
				SphereZone("temple_interior", "Standing beneath the dome of the Great Stupa.", mgl32.Vec3{}, 5),
			)
		},
	}
}

func TajMahal() Scene {
	cfg := DefaultConfig()
	cfg.Name = "taj-mahal"
	cfg.EyeHeight = 1.55
	cfg.Start = mgl32.Vec3{0, 1.55, 8}
	cfg.Boundary = Boundary{Min: mgl32.Vec3{-35, 0.3, -35}, Max: mgl32.Vec3{35, 3, 35}}
	cfg.Motion.Locomotion = LocomotionAccelerated
	cfg.Motion.MaxDt = 16 * time.Millisecond
	cfg.Look.Sensitivity = 0.002
	cfg.Look.Smoothing = 0
	cfg.Jump.Enabled = true
	cfg.Crouch.Enabled = true

	return Scene{
		Name:       cfg.Name,
		Title:      "Taj Mahal, Agra",
		ModelPath:  "models/tajmahal_compressed.stl",
		ModelScale: 2.8,
		Config:     cfg,
		props: func() []Mesh {
			meshes := []Mesh{groundMesh(), crateMesh()}
			for i, t := range tajForest {
				meshes = append(meshes, CreateTreeMesh(fmt.Sprintf("tree-%d", i), t.pos, t.size))
			}
			return meshes
		},
		zones: func() *ZoneTracker {
			return NewZoneTracker(
				Zone{Name: "grounds", Info: "Wandering the sacred grounds of the Taj Mahal from a natural human perspective."},
				BoxZone("main_gate", "You are approaching the grand main gate, Darwaza-i Rauza.",
					mgl32.Vec3{-unbounded, -unbounded, 15}, mgl32.Vec3{unbounded, unbounded, unbounded}),
				BoxZone("riverside", "Wandering behind the mausoleum, near the Yamuna river.",
					mgl32.Vec3{-unbounded, -unbounded, -unbounded}, mgl32.Vec3{unbounded, unbounded, -10}),
				BoxZone("mosque", "Exploring the grounds near the beautiful mosque.",
					mgl32.Vec3{5, -unbounded, -unbounded}, mgl32.Vec3{15, unbounded, 10}),
				BoxZone("jawab", "You are walking past the Jawab, the \"answer\" to the mosque.",
					mgl32.Vec3{-unbounded, -unbounded, -unbounded}, mgl32.Vec3{-10, unbounded, 10}),
			)
		},
	}
}

var monuments = map[string]func() Scene{
	"sun-temple":   SunTemple,
	"sanchi-stupa": SanchiStupa,
	"taj-mahal":    TajMahal,
}

// Monuments lists every preset ordered by name.
func Monuments() []Scene {
	names := make([]string, 0, len(monuments))
	for name := range monuments {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]Scene, 0, len(names))
	for _, name := range names {
		out = append(out, monuments[name]())
	}
	return out
}

func LookupMonument(name string) (Scene, error) {
	fn, ok := monuments[name]
	if !ok {
		return Scene{}, fmt.Errorf("%w: %q", ErrUnknownMonument, name)
	}
	return fn(), nil
}
