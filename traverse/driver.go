package traverse

import (
	"github.com/achilleasa/go-bvhquery/geom"
	"github.com/achilleasa/go-bvhquery/lbvh"
)

func childBbox(tree *lbvh.Tree, r lbvh.Ref) geom.AABB {
	if r.IsLeaf() {
		return tree.Leaves[r.LeafIndex()].Bbox
	}
	return tree.Internals[r.InternalIndex()].Bbox
}

// runStack drives the §4.4 explicit-stack traversal. bboxDist scores a
// child's AABB against the query (squared distance for nearest-point,
// slab t_enter for nearest-ray-hit); promising reports whether that score
// still beats the caller's current best. visitLeaf is invoked for every
// leaf child whose bbox is promising and may tighten the caller's best.
func runStack(tree *lbvh.Tree, capacity int, bboxDist func(geom.AABB) float32, promising func(float32) bool, visitLeaf func(lbvh.Ref)) error {
	stack := newRefStack(capacity)
	if err := stack.push(tree.Root); err != nil {
		return err
	}
	for {
		r, ok := stack.pop()
		if !ok {
			return nil
		}
		if r.IsLeaf() {
			visitLeaf(r)
			continue
		}
		node := tree.Internals[r.InternalIndex()]
		for _, child := range [2]lbvh.Ref{node.Left, node.Right} {
			d := bboxDist(childBbox(tree, child))
			if !promising(d) {
				continue
			}
			if child.IsLeaf() {
				visitLeaf(child)
				continue
			}
			if err := stack.push(child); err != nil {
				return err
			}
		}
	}
}

// runBestFirst drives the §4.5 priority-queue traversal. Internal children
// are scheduled with their bbox score as the queue key; the queue is
// drained lowest-score-first and stops as soon as the popped entry is no
// longer promising, since every remaining entry can only score higher.
func runBestFirst(tree *lbvh.Tree, capacity int, bboxDist func(geom.AABB) float32, promising func(float32) bool, visitLeaf func(lbvh.Ref)) error {
	pq := newRefPQueue(capacity)
	if err := pq.push(pqEntry{ref: tree.Root, dist: bboxDist(childBbox(tree, tree.Root))}); err != nil {
		return err
	}
	for {
		entry, ok := pq.pop()
		if !ok {
			return nil
		}
		if !promising(entry.dist) {
			return nil
		}
		if entry.ref.IsLeaf() {
			visitLeaf(entry.ref)
			continue
		}
		node := tree.Internals[entry.ref.InternalIndex()]
		for _, child := range [2]lbvh.Ref{node.Left, node.Right} {
			d := bboxDist(childBbox(tree, child))
			if !promising(d) {
				continue
			}
			if child.IsLeaf() {
				visitLeaf(child)
				continue
			}
			if err := pq.push(pqEntry{ref: child, dist: d}); err != nil {
				return err
			}
		}
	}
}
