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

var logger = log.New("query")

// PointBatchElement is one mesh and its nearest-point queries.
type PointBatchElement struct {
	Triangles []geom.Triangle
	Queries   []types.Vec3
}

// PointBatchResult holds one PointResult per query, in the caller's
// original query order.
type PointBatchResult struct {
	Results []traverse.PointResult
}

// NearestPoint runs the nearest-surface-point query (§4.6) over every
// batch element in turn. Batch elements are processed sequentially;
// within an element, queries run across goroutine work-groups.
func NearestPoint(elements []PointBatchElement, opts config.TraversalOptions) ([]PointBatchResult, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	results := make([]PointBatchResult, len(elements))
	for b, elem := range elements {
		timer := log.NewStageTimer(logger, "nearest_point", b, len(elem.Queries))

		tree, err := lbvh.Build(elem.Triangles)
		if err != nil {
			return nil, fmt.Errorf("query: %w", err)
		}
		logger.Debugf("batch %d: built LBVH over %d triangles, root bbox %+v", b, tree.NumTriangles(), tree.RootBbox())

		out := make([]traverse.PointResult, len(elem.Queries))
		errs := make([]error, len(elem.Queries))

		if opts.Reorder {
			perm := reorderPermutation(elem.Queries)
			reorderedOut := make([]traverse.PointResult, len(perm))
			dispatch(len(perm), config.ThreadBlockWidth, func(i int) {
				r, err := traverse.NearestPoint(tree, elem.Queries[perm[i]], opts.Capacity, opts.BestFirst)
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
			dispatch(len(elem.Queries), config.ThreadBlockWidth, func(i int) {
				r, err := traverse.NearestPoint(tree, elem.Queries[i], opts.Capacity, opts.BestFirst)
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

		results[b] = PointBatchResult{Results: out}
		timer.Done()
	}
	return results, nil
}
