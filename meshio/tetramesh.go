package meshio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/achilleasa/go-bvhquery/geom"
	"github.com/achilleasa/go-bvhquery/tetramarch"
	"github.com/achilleasa/go-bvhquery/types"
)

// ReadTetraMesh parses a line-oriented tetrahedral mesh format: "v x y z"
// vertex lines, followed by "t i0 i1 i2 i3 a0 a1 a2 a3" tetra lines. i0..i3
// are 0-based indices into the vertex list, in the winding Tetra.Face
// expects; a0..a3 are the adjacent tetra index across the face opposite the
// same-numbered vertex, or -1 on the mesh boundary. There is no third-party
// format library in the retrieval pack this module draws from, so this
// reader follows the teacher's bufio.Scanner/strings.Fields line-dispatch
// idiom rather than reaching for encoding/csv or encoding/json.
func ReadTetraMesh(r io.Reader) (tetramarch.Mesh, error) {
	var vertices []types.Vec3
	var mesh tetramarch.Mesh

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
				return tetramarch.Mesh{}, fmt.Errorf("meshio: line %d: %w", lineNum, err)
			}
			vertices = append(vertices, v)
		case "t":
			tetra, adj, err := parseTetra(tokens, vertices)
			if err != nil {
				return tetramarch.Mesh{}, fmt.Errorf("meshio: line %d: %w", lineNum, err)
			}
			mesh.Tetras = append(mesh.Tetras, tetra)
			mesh.Topology = append(mesh.Topology, adj)
		}
	}
	if err := scanner.Err(); err != nil {
		return tetramarch.Mesh{}, fmt.Errorf("meshio: %w", err)
	}
	return mesh, nil
}

func parseTetra(tokens []string, vertices []types.Vec3) (geom.Tetra, [4]int32, error) {
	if len(tokens) != 9 {
		return geom.Tetra{}, [4]int32{}, fmt.Errorf(`unsupported syntax for "t"; expected 8 arguments: i0 i1 i2 i3 a0 a1 a2 a3; got %d`, len(tokens)-1)
	}

	var vidx [4]int
	for i := 0; i < 4; i++ {
		n, err := strconv.Atoi(tokens[i+1])
		if err != nil {
			return geom.Tetra{}, [4]int32{}, err
		}
		if n < 0 || n >= len(vertices) {
			return geom.Tetra{}, [4]int32{}, fmt.Errorf("vertex index %d out of bounds", n)
		}
		vidx[i] = n
	}

	var adj [4]int32
	for i := 0; i < 4; i++ {
		n, err := strconv.Atoi(tokens[i+5])
		if err != nil {
			return geom.Tetra{}, [4]int32{}, err
		}
		adj[i] = int32(n)
	}

	tetra := geom.Tetra{V: [4]types.Vec3{
		vertices[vidx[0]], vertices[vidx[1]], vertices[vidx[2]], vertices[vidx[3]],
	}}
	return tetra, adj, nil
}
