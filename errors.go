package explorer

import "errors"

var (
	ErrUnresolvedDependency = errors.New("unresolved system dependency")
	ErrInvalidConfig        = errors.New("invalid explorer config")
	ErrEmptyMesh            = errors.New("mesh has no triangles")
	ErrUnknownMonument      = errors.New("unknown monument")
)
