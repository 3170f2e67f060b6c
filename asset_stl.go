package explorer

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/viraasat/explorer/stl"
)

// MeshFromSTL converts a parsed STL model into a collision mesh.
func MeshFromSTL(name string, kind ColliderKind, model *stl.Model) (Mesh, error) {
	vertices, indexes := model.Indexed()
	return NewMesh(name, kind, vertices, indexes)
}

// LoadSTLMesh reads an STL file and places it with tr.
func LoadSTLMesh(path string, kind ColliderKind, tr Transform) (Mesh, error) {
	model, err := stl.Parse(path)
	if err != nil {
		return Mesh{}, fmt.Errorf("load %s: %w", path, err)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	mesh, err := MeshFromSTL(name, kind, model)
	if err != nil {
		return Mesh{}, fmt.Errorf("load %s: %w", path, err)
	}
	return mesh.WithTransform(tr), nil
}
