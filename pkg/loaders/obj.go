// Package loaders parses external mesh file formats into vertex/index
// arrays the geometry package can build a Mesh from. This is a boundary
// concern, not part of the rendering core.
package loaders

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/df07/go-progressive-raytracer/pkg/core"
)

// OBJData is the flat vertex/face representation parsed from a Wavefront
// .obj file, ready to hand to geometry.NewMesh. Per-vertex normals and
// texture coordinates in the file are read but not retained — the
// renderer computes its own face normals and does not sample textures.
type OBJData struct {
	Vertices []core.Vec3
	Faces    []int // 3 indices per triangle, into Vertices
}

// LoadOBJ parses a Wavefront .obj file. Only "v" (vertex) and "f" (face)
// records are interpreted; faces with more than three vertices are
// triangulated by a fan from the face's first vertex. Face records may use
// the "v", "v/vt", "v//vn", or "v/vt/vn" forms; only the leading vertex
// index is used. Negative (relative) indices are resolved against the
// vertex count seen so far, per the OBJ spec.
//
// No stdlib or pack library parses OBJ, and the format's grammar (a
// handful of whitespace-delimited record types) doesn't warrant one — this
// is the one place in the renderer where a hand-rolled parser over
// bufio.Scanner is the right tool rather than an ecosystem dependency.
func LoadOBJ(path string) (*OBJData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loaders: failed to open OBJ file: %w", err)
	}
	defer f.Close()

	data := &OBJData{}

	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			v, err := parseVertex(fields)
			if err != nil {
				return nil, fmt.Errorf("loaders: OBJ line %d: %w", lineNum, err)
			}
			data.Vertices = append(data.Vertices, v)

		case "f":
			indices, err := parseFace(fields, len(data.Vertices))
			if err != nil {
				return nil, fmt.Errorf("loaders: OBJ line %d: %w", lineNum, err)
			}
			for i := 2; i < len(indices); i++ {
				data.Faces = append(data.Faces, indices[0], indices[i-1], indices[i])
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("loaders: failed to read OBJ file: %w", err)
	}

	return data, nil
}

func parseVertex(fields []string) (core.Vec3, error) {
	if len(fields) < 4 {
		return core.Vec3{}, fmt.Errorf("vertex record needs 3 coordinates, got %d", len(fields)-1)
	}
	x, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return core.Vec3{}, fmt.Errorf("invalid x coordinate: %w", err)
	}
	y, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return core.Vec3{}, fmt.Errorf("invalid y coordinate: %w", err)
	}
	z, err := strconv.ParseFloat(fields[3], 64)
	if err != nil {
		return core.Vec3{}, fmt.Errorf("invalid z coordinate: %w", err)
	}
	return core.NewVec3(x, y, z), nil
}

func parseFace(fields []string, vertexCount int) ([]int, error) {
	if len(fields) < 4 {
		return nil, fmt.Errorf("face record needs at least 3 vertices, got %d", len(fields)-1)
	}
	indices := make([]int, len(fields)-1)
	for i, f := range fields[1:] {
		vStr := f
		if slash := strings.IndexByte(f, '/'); slash >= 0 {
			vStr = f[:slash]
		}
		idx, err := strconv.Atoi(vStr)
		if err != nil {
			return nil, fmt.Errorf("invalid face vertex index %q: %w", f, err)
		}
		if idx < 0 {
			idx = vertexCount + idx + 1
		}
		if idx < 1 {
			return nil, fmt.Errorf("face vertex index %d out of range", idx)
		}
		indices[i] = idx - 1 // OBJ indices are 1-based
	}
	return indices, nil
}
