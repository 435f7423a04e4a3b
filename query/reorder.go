package query

import (
	"github.com/achilleasa/go-bvhquery/morton"
	"github.com/achilleasa/go-bvhquery/types"
)

// reorderPermutation returns, for each output slot i, the index into points
// of the point that should be processed i'th under Morton order in the
// fixed query cube (§4.2). Applying the traversal to points[perm[i]] and
// scattering result i back to output slot perm[i] is the full reorder
// round-trip; it never changes which result a query gets, only the order
// queries are visited in.
func reorderPermutation(points []types.Vec3) []uint32 {
	keyed := make([]morton.Keyed, len(points))
	for i, p := range points {
		keyed[i] = morton.Keyed{Code: morton.EncodePoint(p, morton.QueryCube), ID: uint32(i)}
	}
	morton.SortKeyed(keyed)

	perm := make([]uint32, len(points))
	for i, k := range keyed {
		perm[i] = k.ID
	}
	return perm
}
