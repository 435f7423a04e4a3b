package traverse

import (
	"github.com/chewxy/math32"

	"github.com/achilleasa/go-bvhquery/geom"
	"github.com/achilleasa/go-bvhquery/lbvh"
	"github.com/achilleasa/go-bvhquery/types"
)

// RayResult is the outcome of a nearest-ray-hit query. Face is -1 and Dist
// is +Inf when the ray misses every triangle in the tree — not an error
// (§7).
type RayResult struct {
	Face  int32
	Dist  float32
	Point types.Vec3
	Bary  types.Vec3
}

// NearestRayHit finds the closest triangle the ray (origin, dir) hits,
// using either the explicit-stack or best-first traversal depending on
// bestFirst. Unlike NearestPoint, the "promising" test is a strict "<"
// against the current best hit distance (§9): a bbox exactly as far as the
// current best hit cannot contain a strictly closer one.
func NearestRayHit(tree *lbvh.Tree, origin, dir types.Vec3, capacity int, bestFirst bool) (RayResult, error) {
	if !validCapacity(capacity) {
		return RayResult{}, ErrInvalidCapacity
	}

	invDir := geom.InvDir(dir)
	best := RayResult{Face: -1, Dist: math32.Inf(1)}

	bboxDist := func(box geom.AABB) float32 {
		tEnter, _, ok := box.IntersectRay(origin, invDir)
		if !ok {
			return math32.Inf(1)
		}
		return tEnter
	}
	promising := func(d float32) bool {
		return d < best.Dist
	}
	visitLeaf := func(r lbvh.Ref) {
		node := tree.Leaves[r.LeafIndex()]
		dist, bary, hit, ok := tree.Triangles[node.TriIndex].IntersectRay(origin, dir)
		if !ok {
			return
		}
		if dist < best.Dist || (dist == best.Dist && node.TriIndex < best.Face) {
			best = RayResult{Face: node.TriIndex, Dist: dist, Point: hit, Bary: bary}
		}
	}

	var err error
	if bestFirst {
		err = runBestFirst(tree, capacity, bboxDist, promising, visitLeaf)
	} else {
		err = runStack(tree, capacity, bboxDist, promising, visitLeaf)
	}
	if err != nil {
		return RayResult{}, err
	}
	return best, nil
}
