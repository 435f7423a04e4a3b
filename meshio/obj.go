// Package meshio reads the file formats query's mesh inputs are built
// from: Wavefront OBJ for triangle meshes and a companion line format for
// tetrahedral meshes with precomputed face adjacency.
package meshio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/achilleasa/go-bvhquery/geom"
	"github.com/achilleasa/go-bvhquery/types"
)

// ReadOBJ parses a Wavefront OBJ stream into a flat triangle list. Only
// vertex ("v") and face ("f") lines are interpreted; materials, normals,
// texture coordinates and grouping directives are ignored since query's
// triangle meshes carry geometry only. Quad faces are triangulated using
// the fan (0,1,2),(0,2,3) the way the teacher's reader does.
func ReadOBJ(r io.Reader) ([]geom.Triangle, error) {
	var vertices []types.Vec3
	var triangles []geom.Triangle

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		tokens := strings.Fields(scanner.Text())
		if len(tokens) == 0 || strings.HasPrefix(tokens[0], "#") {
			continue
		}

		switch tokens[0] {
		case "v":
			v, err := parseVertex(tokens)
			if err != nil {
				return nil, fmt.Errorf("meshio: line %d: %w", lineNum, err)
			}
			vertices = append(vertices, v)
		case "f":
			tris, err := parseFace(tokens, vertices)
			if err != nil {
				return nil, fmt.Errorf("meshio: line %d: %w", lineNum, err)
			}
			triangles = append(triangles, tris...)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("meshio: %w", err)
	}
	return triangles, nil
}

func parseVertex(tokens []string) (types.Vec3, error) {
	if len(tokens) < 4 {
		return types.Vec3{}, fmt.Errorf(`unsupported syntax for "v"; expected 3 arguments; got %d`, len(tokens)-1)
	}
	var v types.Vec3
	for i := 0; i < 3; i++ {
		c, err := strconv.ParseFloat(tokens[i+1], 32)
		if err != nil {
			return types.Vec3{}, err
		}
		v[i] = float32(c)
	}
	return v, nil
}

func parseFace(tokens []string, vertices []types.Vec3) ([]geom.Triangle, error) {
	if len(tokens) < 4 || len(tokens) > 5 {
		return nil, fmt.Errorf(`unsupported syntax for "f"; expected 3 arguments for a triangular face or 4 for a quad; got %d`, len(tokens)-1)
	}

	var verts [4]types.Vec3
	for i := 0; i < len(tokens)-1; i++ {
		// Only the vertex index (before the first "/") matters here.
		vToken := strings.SplitN(tokens[i+1], "/", 2)[0]
		if vToken == "" {
			return nil, fmt.Errorf("face argument %d does not include a vertex index", i)
		}
		idx, err := selectVertexIndex(vToken, len(vertices))
		if err != nil {
			return nil, fmt.Errorf("could not parse vertex index for face argument %d: %w", i, err)
		}
		verts[i] = vertices[idx]
	}

	indiceList := [][3]int{{0, 1, 2}}
	if len(tokens) == 5 {
		indiceList = append(indiceList, [3]int{0, 2, 3})
	}

	tris := make([]geom.Triangle, 0, len(indiceList))
	for _, idx := range indiceList {
		tris = append(tris, geom.Triangle{A: verts[idx[0]], B: verts[idx[1]], C: verts[idx[2]]})
	}
	return tris, nil
}

// selectVertexIndex resolves an OBJ face index token (1-based, or negative
// and relative to the end of the vertex list) to a slice index.
func selectVertexIndex(indexToken string, vertexListLen int) (int, error) {
	index, err := strconv.ParseInt(indexToken, 10, 32)
	if err != nil {
		return -1, err
	}

	var idx int
	if index < 0 {
		idx = vertexListLen + int(index)
	} else {
		idx = int(index - 1)
	}
	if idx < 0 || idx >= vertexListLen {
		return -1, fmt.Errorf("index out of bounds")
	}
	return idx, nil
}
