package lbvh

import "github.com/achilleasa/go-bvhquery/geom"

// RootBbox returns the bounding box at the tree's root, i.e. the bbox of
// the whole mesh.
func (t *Tree) RootBbox() geom.AABB {
	return childBbox(t, t.Root)
}

// LeafTriangle returns the triangle a leaf represents, resolving through
// the leaf's pre-sort TriIndex back into the caller's original triangle
// slice.
func (t *Tree) LeafTriangle(leafIdx int32) geom.Triangle {
	return t.Triangles[t.Leaves[leafIdx].TriIndex]
}

// NumTriangles returns the number of triangles (and leaves) in the tree.
func (t *Tree) NumTriangles() int {
	return len(t.Leaves)
}
