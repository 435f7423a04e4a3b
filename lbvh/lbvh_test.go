package lbvh

import (
	"testing"

	"github.com/achilleasa/go-bvhquery/geom"
	"github.com/achilleasa/go-bvhquery/types"
)

func gridTriangles(n int) []geom.Triangle {
	tris := make([]geom.Triangle, n)
	for i := 0; i < n; i++ {
		x := float32(i)
		tris[i] = geom.Triangle{
			A: types.XYZ(x, 0, 0),
			B: types.XYZ(x+1, 0, 0),
			C: types.XYZ(x, 1, 0),
		}
	}
	return tris
}

func TestBuildTooFewTriangles(t *testing.T) {
	for _, n := range []int{0, 1} {
		tris := gridTriangles(n)
		if _, err := Build(tris); err != ErrTooFewTriangles {
			t.Fatalf("n=%d: expected ErrTooFewTriangles, got %v", n, err)
		}
	}
}

func TestBuildNodeCounts(t *testing.T) {
	for _, n := range []int{2, 3, 7, 32, 100} {
		tris := gridTriangles(n)
		tree, err := Build(tris)
		if err != nil {
			t.Fatalf("n=%d: unexpected error: %v", n, err)
		}
		if len(tree.Leaves) != n {
			t.Fatalf("n=%d: expected %d leaves, got %d", n, n, len(tree.Leaves))
		}
		if len(tree.Internals) != n-1 {
			t.Fatalf("n=%d: expected %d internals, got %d", n, n-1, len(tree.Internals))
		}
		if tree.Root.IsLeaf() || tree.Root.InternalIndex() != 0 {
			t.Fatalf("n=%d: expected root to be internals[0]", n)
		}
	}
}

// subtreeBbox recomputes the union of leaf bboxes under r by brute-force
// descent, independent of the builder's own bottom-up fill, so it can be
// used as an oracle.
func subtreeBbox(tree *Tree, r Ref) geom.AABB {
	if r.IsLeaf() {
		return tree.Leaves[r.LeafIndex()].Bbox
	}
	node := tree.Internals[r.InternalIndex()]
	return subtreeBbox(tree, node.Left).Union(subtreeBbox(tree, node.Right))
}

func TestBuildInternalBboxesMatchSubtreeUnion(t *testing.T) {
	tris := gridTriangles(50)
	tree, err := Build(tris)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := range tree.Internals {
		want := subtreeBbox(tree, InternalRef(int32(i)))
		got := tree.Internals[i].Bbox
		if got.Min != want.Min || got.Max != want.Max {
			t.Fatalf("internal %d bbox mismatch: got %+v want %+v", i, got, want)
		}
	}
}

func TestBuildDeterministic(t *testing.T) {
	tris := gridTriangles(40)
	t1, err := Build(tris)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t2, err := Build(tris)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := range t1.Leaves {
		if t1.Leaves[i].TriIndex != t2.Leaves[i].TriIndex {
			t.Fatalf("leaf order differs between builds at %d: %d vs %d", i, t1.Leaves[i].TriIndex, t2.Leaves[i].TriIndex)
		}
	}
	for i := range t1.Internals {
		if t1.Internals[i].Left != t2.Internals[i].Left || t1.Internals[i].Right != t2.Internals[i].Right {
			t.Fatalf("internal node %d topology differs between builds", i)
		}
	}
}

func TestTreeAccessors(t *testing.T) {
	tris := gridTriangles(20)
	tree, err := Build(tris)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if tree.NumTriangles() != len(tris) {
		t.Fatalf("expected NumTriangles to be %d, got %d", len(tris), tree.NumTriangles())
	}

	want := subtreeBbox(tree, tree.Root)
	got := tree.RootBbox()
	if got.Min != want.Min || got.Max != want.Max {
		t.Fatalf("RootBbox mismatch: got %+v want %+v", got, want)
	}

	for i := int32(0); i < int32(len(tris)); i++ {
		triIdx := tree.Leaves[i].TriIndex
		if tree.LeafTriangle(i) != tree.Triangles[triIdx] {
			t.Fatalf("leaf %d: LeafTriangle did not resolve to triangle %d", i, triIdx)
		}
	}
}

func TestAllLeavesCovered(t *testing.T) {
	tris := gridTriangles(20)
	tree, err := Build(tris)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	seen := make([]bool, len(tris))
	var walk func(r Ref)
	walk = func(r Ref) {
		if r.IsLeaf() {
			seen[tree.Leaves[r.LeafIndex()].TriIndex] = true
			return
		}
		node := tree.Internals[r.InternalIndex()]
		walk(node.Left)
		walk(node.Right)
	}
	walk(tree.Root)
	for i, ok := range seen {
		if !ok {
			t.Fatalf("triangle %d never reached by tree walk", i)
		}
	}
}
