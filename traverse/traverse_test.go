package traverse

import (
	"testing"

	"github.com/achilleasa/go-bvhquery/geom"
	"github.com/achilleasa/go-bvhquery/lbvh"
	"github.com/achilleasa/go-bvhquery/types"
)

// gridTriangles lays out n disjoint unit triangles along the X axis, each
// at z=0, so nearest-point and nearest-ray-hit answers are easy to reason
// about by hand.
func gridTriangles(n int) []geom.Triangle {
	tris := make([]geom.Triangle, n)
	for i := 0; i < n; i++ {
		x := float32(i) * 4
		tris[i] = geom.Triangle{
			A: types.XYZ(x, 0, 0),
			B: types.XYZ(x+1, 0, 0),
			C: types.XYZ(x, 1, 0),
		}
	}
	return tris
}

func buildTree(t *testing.T, n int) *lbvh.Tree {
	t.Helper()
	tree, err := lbvh.Build(gridTriangles(n))
	if err != nil {
		t.Fatalf("unexpected build error: %v", err)
	}
	return tree
}

func TestNearestPointInvalidCapacity(t *testing.T) {
	tree := buildTree(t, 4)
	if _, err := NearestPoint(tree, types.XYZ(0, 0, 0), 100, false); err != ErrInvalidCapacity {
		t.Fatalf("expected ErrInvalidCapacity, got %v", err)
	}
}

func TestNearestPointAgreesStackVsBestFirst(t *testing.T) {
	tree := buildTree(t, 30)
	query := types.XYZ(12.2, 0.1, 0)

	stackResult, err := NearestPoint(tree, query, 64, false)
	if err != nil {
		t.Fatalf("stack: unexpected error: %v", err)
	}
	bestFirstResult, err := NearestPoint(tree, query, 64, true)
	if err != nil {
		t.Fatalf("best-first: unexpected error: %v", err)
	}
	if stackResult != bestFirstResult {
		t.Fatalf("stack and best-first disagree: %+v vs %+v", stackResult, bestFirstResult)
	}
	if stackResult.Face != 3 {
		t.Fatalf("expected triangle 3 to be closest to %v, got face %d (distSq=%f)", query, stackResult.Face, stackResult.DistSq)
	}
}

func TestNearestPointTieBreaksLowerIndex(t *testing.T) {
	// Two triangles equidistant from the query point; the lower original
	// index must win regardless of traversal order.
	tris := []geom.Triangle{
		{A: types.XYZ(-2, 0, 0), B: types.XYZ(-1, 0, 0), C: types.XYZ(-2, 1, 0)},
		{A: types.XYZ(2, 0, 0), B: types.XYZ(1, 0, 0), C: types.XYZ(2, 1, 0)},
	}
	tree, err := lbvh.Build(tris)
	if err != nil {
		t.Fatalf("unexpected build error: %v", err)
	}
	query := types.XYZ(0, 0, 0)
	result, err := NearestPoint(tree, query, 32, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Face != 0 {
		t.Fatalf("expected tie to resolve to triangle 0, got %d", result.Face)
	}
}

// buildChainTree hand-assembles a Tree shaped like a long chain: at every
// level, one branch is a two-leaf subtree and the other continues the
// chain, so descending it defers one sibling per level onto the stack.
// A balanced Karras tree never gets this deep relative to its leaf count
// (height is O(log n)), so this is built directly rather than via
// lbvh.Build to exercise the fixed-capacity overflow path at all.
func buildChainTree(depth int) *lbvh.Tree {
	numPairs := depth + 1
	numLeaves := 2 * numPairs
	numInternals := numPairs + depth

	tri := geom.Triangle{A: types.XYZ(-1, -1, 0), B: types.XYZ(1, -1, 0), C: types.XYZ(0, 1, 0)}
	box := tri.AABB()

	tris := make([]geom.Triangle, numLeaves)
	leaves := make([]lbvh.Node, numLeaves)
	for i := range leaves {
		tris[i] = tri
		leaves[i] = lbvh.Node{Bbox: box, IsLeaf: true, TriIndex: int32(i), LeafIndex: int32(i)}
	}

	internals := make([]lbvh.Node, numInternals)
	for p := 0; p < numPairs; p++ {
		internals[p] = lbvh.Node{
			Bbox:  box,
			Left:  lbvh.LeafRef(int32(2 * p)),
			Right: lbvh.LeafRef(int32(2*p + 1)),
		}
	}
	for c := 0; c < depth; c++ {
		idx := numPairs + c
		right := lbvh.InternalRef(int32(numPairs + c + 1))
		if c == depth-1 {
			right = lbvh.InternalRef(int32(depth)) // final leaf-pair subtree
		}
		internals[idx] = lbvh.Node{
			Bbox:  box,
			Left:  lbvh.InternalRef(int32(c)),
			Right: right,
		}
	}

	return &lbvh.Tree{
		Leaves:    leaves,
		Internals: internals,
		Triangles: tris,
		Root:      lbvh.InternalRef(int32(numPairs)),
	}
}

func TestNearestPointOverflow(t *testing.T) {
	tree := buildChainTree(40)
	if _, err := NearestPoint(tree, types.XYZ(0, 0, 0), 32, false); err != ErrOverflow {
		t.Fatalf("expected ErrOverflow against a 40-deep chain tree with a 32-entry stack, got %v", err)
	}
}

func TestNearestRayHitAgreesStackVsBestFirst(t *testing.T) {
	tree := buildTree(t, 30)
	origin := types.XYZ(12.2, 0.2, -5)
	dir := types.XYZ(0, 0, 1)

	stackResult, err := NearestRayHit(tree, origin, dir, 64, false)
	if err != nil {
		t.Fatalf("stack: unexpected error: %v", err)
	}
	bestFirstResult, err := NearestRayHit(tree, origin, dir, 64, true)
	if err != nil {
		t.Fatalf("best-first: unexpected error: %v", err)
	}
	if stackResult != bestFirstResult {
		t.Fatalf("stack and best-first disagree: %+v vs %+v", stackResult, bestFirstResult)
	}
	if stackResult.Face != 3 {
		t.Fatalf("expected ray to hit triangle 3, got face %d", stackResult.Face)
	}
	if stackResult.Dist != 5 {
		t.Fatalf("expected hit distance 5, got %f", stackResult.Dist)
	}
}

func TestNearestRayHitMiss(t *testing.T) {
	tree := buildTree(t, 10)
	origin := types.XYZ(0, 100, -5)
	dir := types.XYZ(0, 0, 1)

	result, err := NearestRayHit(tree, origin, dir, 64, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Face != -1 {
		t.Fatalf("expected a miss (Face=-1), got face %d", result.Face)
	}
	if !math32IsInf(result.Dist) {
		t.Fatalf("expected +Inf distance on a miss, got %f", result.Dist)
	}
}

func TestNearestRayHitInvalidCapacity(t *testing.T) {
	tree := buildTree(t, 4)
	if _, err := NearestRayHit(tree, types.XYZ(0, 0, -5), types.XYZ(0, 0, 1), 7, false); err != ErrInvalidCapacity {
		t.Fatalf("expected ErrInvalidCapacity, got %v", err)
	}
}

func math32IsInf(v float32) bool {
	return v > 3.4e38
}
