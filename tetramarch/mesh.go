// Package tetramarch implements the tetrahedral ray marcher: given a mesh
// of tetrahedra and their face adjacency, it walks a ray from tetra to
// tetra through shared faces, emitting uniform-step samples with
// per-sample barycentric coordinates (§4.7 of the design notes).
package tetramarch

import "github.com/achilleasa/go-bvhquery/geom"

// Mesh is a tetrahedral mesh: one tetra per element of Tetras, and its
// face-adjacency topology in the parallel Topology slice. Topology[i][f] is
// the index of the tetra sharing face f of tetra i, or -1 if that face is
// on the mesh boundary.
type Mesh struct {
	Tetras   []geom.Tetra
	Topology [][4]int32
}
