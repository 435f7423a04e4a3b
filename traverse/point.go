package traverse

import (
	"github.com/chewxy/math32"

	"github.com/achilleasa/go-bvhquery/geom"
	"github.com/achilleasa/go-bvhquery/lbvh"
	"github.com/achilleasa/go-bvhquery/types"
)

// PointResult is the outcome of a nearest-point query. Face is -1 if the
// tree held no triangles (never true for a *lbvh.Tree returned by
// lbvh.Build, which always has at least two).
type PointResult struct {
	Face   int32
	DistSq float32
	Point  types.Vec3
	Bary   types.Vec3
}

// NearestPoint finds the triangle in tree closest to query, using either
// the explicit-stack or best-first traversal depending on bestFirst.
// Ties (equal DistSq) resolve to the lower original triangle index,
// independent of visit order, so both variants always agree.
func NearestPoint(tree *lbvh.Tree, query types.Vec3, capacity int, bestFirst bool) (PointResult, error) {
	if !validCapacity(capacity) {
		return PointResult{}, ErrInvalidCapacity
	}

	best := PointResult{Face: -1, DistSq: math32.Inf(1)}

	bboxDist := func(box geom.AABB) float32 {
		return box.SqDistToPoint(query)
	}
	promising := func(d float32) bool {
		return d <= best.DistSq
	}
	visitLeaf := func(r lbvh.Ref) {
		node := tree.Leaves[r.LeafIndex()]
		closest, bary, distSq := tree.Triangles[node.TriIndex].ClosestPoint(query)
		if distSq < best.DistSq || (distSq == best.DistSq && node.TriIndex < best.Face) {
			best = PointResult{Face: node.TriIndex, DistSq: distSq, Point: closest, Bary: bary}
		}
	}

	var err error
	if bestFirst {
		err = runBestFirst(tree, capacity, bboxDist, promising, visitLeaf)
	} else {
		err = runStack(tree, capacity, bboxDist, promising, visitLeaf)
	}
	if err != nil {
		return PointResult{}, err
	}
	return best, nil
}
