package query

import (
	"fmt"

	"github.com/achilleasa/go-bvhquery/config"
	"github.com/achilleasa/go-bvhquery/geom"
	"github.com/achilleasa/go-bvhquery/lbvh"
	"github.com/achilleasa/go-bvhquery/log"
	"github.com/achilleasa/go-bvhquery/traverse"
	"github.com/achilleasa/go-bvhquery/types"
)

// RayBatchElement is one mesh and its nearest-ray-hit queries; Origins and
// Dirs are parallel slices of equal length.
type RayBatchElement struct {
	Triangles []geom.Triangle
	Origins   []types.Vec3
	Dirs      []types.Vec3
}

// RayBatchResult holds one RayResult per query, in the caller's original
// query order.
type RayBatchResult struct {
	Results []traverse.RayResult
}

// NearestRayHit runs the ray-mesh intersection query (§4.6) over every
// batch element in turn. Reordering, when enabled, keys on ray origin —
// the same Morton cube used for nearest-point reordering.
func NearestRayHit(elements []RayBatchElement, opts config.TraversalOptions) ([]RayBatchResult, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	results := make([]RayBatchResult, len(elements))
	for b, elem := range elements {
		timer := log.NewStageTimer(logger, "nearest_ray_hit", b, len(elem.Origins))

		tree, err := lbvh.Build(elem.Triangles)
		if err != nil {
			return nil, fmt.Errorf("query: %w", err)
		}

		n := len(elem.Origins)
		out := make([]traverse.RayResult, n)
		errs := make([]error, n)

		if opts.Reorder {
			perm := reorderPermutation(elem.Origins)
			reorderedOut := make([]traverse.RayResult, len(perm))
			dispatch(len(perm), config.ThreadBlockWidth, func(i int) {
				idx := perm[i]
				r, err := traverse.NearestRayHit(tree, elem.Origins[idx], elem.Dirs[idx], opts.Capacity, opts.BestFirst)
				if err != nil {
					errs[i] = err
					return
				}
				reorderedOut[i] = r
			})
			for i, origIdx := range perm {
				out[origIdx] = reorderedOut[i]
			}
		} else {
			dispatch(n, config.ThreadBlockWidth, func(i int) {
				r, err := traverse.NearestRayHit(tree, elem.Origins[i], elem.Dirs[i], opts.Capacity, opts.BestFirst)
				if err != nil {
					errs[i] = err
					return
				}
				out[i] = r
			})
		}

		if err := firstError(errs); err != nil {
			return nil, fmt.Errorf("query: %w", err)
		}

		results[b] = RayBatchResult{Results: out}
		timer.Done()
	}
	return results, nil
}
