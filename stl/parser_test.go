package stl

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const asciiWall = `solid wall
  facet normal 0 0 1
    outer loop
      vertex -1 0 0
      vertex 1 0 0
      vertex 1 2 0
    endloop
  endfacet
  facet normal 0 0 1
    outer loop
      vertex -1 0 0
      vertex 1 2 0
      vertex -1 2 0
    endloop
  endfacet
endsolid wall
`

func TestParseASCII(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wall.stl")
	require.NoError(t, os.WriteFile(path, []byte(asciiWall), 0o644))

	model, err := Parse(path)
	require.NoError(t, err)

	assert.Equal(t, "wall", model.Name)
	assert.Equal(t, 2, model.TriangleCount())
	assert.Equal(t, mgl32.Vec3{0, 0, 1}, model.Facets[0].Normal)
	assert.Equal(t, mgl32.Vec3{1, 2, 0}, model.Facets[1].V2)

	lo, hi := model.Bounds()
	assert.Equal(t, mgl32.Vec3{-1, 0, 0}, lo)
	assert.Equal(t, mgl32.Vec3{1, 2, 0}, hi)
}

func TestBinaryRoundTripWithSolidHeader(t *testing.T) {
	model := NewModel("solid exported by a modeler")
	model.AddFacet(Facet{
		Normal: mgl32.Vec3{0, 1, 0},
		V1:     mgl32.Vec3{0, 0, 0},
		V2:     mgl32.Vec3{0, 0, 1},
		V3:     mgl32.Vec3{1, 0, 0},
	})

	var buf bytes.Buffer
	require.NoError(t, WriteBinary(&buf, model))
	assert.Equal(t, 80+4+50, buf.Len())

	decoded, err := Decode(buf.Bytes())
	require.NoError(t, err)
	require.Equal(t, 1, decoded.TriangleCount())
	assert.Equal(t, model.Facets[0], decoded.Facets[0])
	assert.Equal(t, "solid exported by a modeler", decoded.Name)
}

func TestDecodeRejectsMalformedInput(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty", ""},
		{"bad vertex", "solid x\nfacet normal 0 0 1\nouter loop\nvertex a b c\nendloop\nendfacet\nendsolid x\n"},
		{"short facet", "solid x\nfacet normal 0 0 1\nouter loop\nvertex 0 0 0\nendloop\nendfacet\nendsolid x\n"},
		{"truncated binary", string(truncatedBinary())},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.data))
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func truncatedBinary() []byte {
	data := make([]byte, 84)
	data[80] = 5
	return data
}

func TestIndexed(t *testing.T) {
	model, err := Decode([]byte(asciiWall))
	require.NoError(t, err)

	vertices, indexes := model.Indexed()
	assert.Len(t, vertices, 6)
	assert.Equal(t, []uint32{0, 1, 2, 3, 4, 5}, indexes)
}

func TestParseMissingFile(t *testing.T) {
	_, err := Parse(filepath.Join(t.TempDir(), "missing.stl"))
	assert.Error(t, err)
}
