package stl

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	binaryHeaderSize = 80
	binaryFacetSize  = 50
)

var ErrMalformed = errors.New("malformed STL")

// Parse reads an STL file and returns a Model.
// It detects whether the file is ASCII or binary.
func Parse(filename string) (*Model, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return Decode(data)
}

// Decode parses STL bytes. A "solid" prefix alone does not make a file ASCII:
// many exporters write it into binary headers, so the binary size is checked first.
func Decode(data []byte) (*Model, error) {
	if isBinary(data) {
		return parseBinary(bytes.NewReader(data))
	}
	if bytes.HasPrefix(bytes.TrimLeft(data, " \t\r\n"), []byte("solid")) {
		return parseASCII(bytes.NewReader(data))
	}
	return parseBinary(bytes.NewReader(data))
}

func isBinary(data []byte) bool {
	if len(data) < binaryHeaderSize+4 {
		return false
	}
	count := binary.LittleEndian.Uint32(data[binaryHeaderSize : binaryHeaderSize+4])
	return uint64(len(data)) == binaryHeaderSize+4+uint64(count)*binaryFacetSize
}

func parseASCII(reader io.Reader) (*Model, error) {
	scanner := bufio.NewScanner(reader)
	model := NewModel("")

	var normal mgl32.Vec3
	var vertices []mgl32.Vec3
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "solid":
			if len(fields) > 1 {
				model.Name = strings.Join(fields[1:], " ")
			}

		case "facet":
			if len(fields) >= 5 && fields[1] == "normal" {
				v, err := parseVec(fields[2:5])
				if err != nil {
					return nil, fmt.Errorf("%w: line %d: normal: %w", ErrMalformed, lineNo, err)
				}
				normal = v
			}
			vertices = vertices[:0]

		case "vertex":
			if len(fields) < 4 {
				return nil, fmt.Errorf("%w: line %d: vertex needs 3 coordinates", ErrMalformed, lineNo)
			}
			v, err := parseVec(fields[1:4])
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: vertex: %w", ErrMalformed, lineNo, err)
			}
			vertices = append(vertices, v)

		case "endfacet":
			if len(vertices) != 3 {
				return nil, fmt.Errorf("%w: line %d: facet has %d vertices", ErrMalformed, lineNo, len(vertices))
			}
			model.AddFacet(Facet{Normal: normal, V1: vertices[0], V2: vertices[1], V3: vertices[2]})
			vertices = vertices[:0]
			normal = mgl32.Vec3{}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading ASCII STL: %w", err)
	}
	return model, nil
}

func parseVec(fields []string) (mgl32.Vec3, error) {
	var v mgl32.Vec3
	for i, f := range fields {
		x, err := strconv.ParseFloat(f, 32)
		if err != nil {
			return v, err
		}
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return v, fmt.Errorf("non-finite coordinate %q", f)
		}
		v[i] = float32(x)
	}
	return v, nil
}

type binaryFacet struct {
	Normal     [3]float32
	V1, V2, V3 [3]float32
	Attribute  uint16
}

func parseBinary(reader io.Reader) (*Model, error) {
	model := NewModel("")

	header := make([]byte, binaryHeaderSize)
	if _, err := io.ReadFull(reader, header); err != nil {
		return nil, fmt.Errorf("%w: failed to read header: %w", ErrMalformed, err)
	}
	model.Name = strings.TrimSpace(string(bytes.TrimRight(header, "\x00")))

	var count uint32
	if err := binary.Read(reader, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("%w: failed to read triangle count: %w", ErrMalformed, err)
	}

	model.Facets = make([]Facet, 0, min(count, 1<<20))
	for i := uint32(0); i < count; i++ {
		var f binaryFacet
		if err := binary.Read(reader, binary.LittleEndian, &f); err != nil {
			return nil, fmt.Errorf("%w: failed to read triangle %d: %w", ErrMalformed, i, err)
		}
		model.AddFacet(Facet{
			Normal: mgl32.Vec3(f.Normal),
			V1:     mgl32.Vec3(f.V1),
			V2:     mgl32.Vec3(f.V2),
			V3:     mgl32.Vec3(f.V3),
		})
	}

	return model, nil
}

// WriteBinary encodes model as binary STL.
func WriteBinary(w io.Writer, model *Model) error {
	header := make([]byte, binaryHeaderSize)
	copy(header, model.Name)
	if _, err := w.Write(header); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(model.Facets))); err != nil {
		return err
	}
	for _, f := range model.Facets {
		bf := binaryFacet{
			Normal: [3]float32(f.Normal),
			V1:     [3]float32(f.V1),
			V2:     [3]float32(f.V2),
			V3:     [3]float32(f.V3),
		}
		if err := binary.Write(w, binary.LittleEndian, bf); err != nil {
			return err
		}
	}
	return nil
}
