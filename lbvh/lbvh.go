// Package lbvh builds a Linear Bounding Volume Hierarchy over a batch
// element's triangles: per-triangle AABBs are reduced to a scene bbox,
// triangle centroids are Morton-coded and sorted, a Karras (2012) radix tree
// is grown over the sorted keys in parallel, and internal-node bounding
// boxes are then filled bottom-up using one atomic counter per internal
// node — the classic LBVH construction pipeline, reimplemented with
// goroutines standing in for GPU thread-per-work-item kernels (§9 of the
// design notes explicitly sanctions dispatching at this boundary).
package lbvh

import (
	"errors"
	"math/bits"
	"sync"
	"sync/atomic"

	"github.com/achilleasa/go-bvhquery/geom"
	"github.com/achilleasa/go-bvhquery/log"
	"github.com/achilleasa/go-bvhquery/morton"
)

var logger = log.New("lbvh")

// ErrTooFewTriangles is returned by Build when the input has fewer than two
// triangles: a radix tree needs at least one internal node, and the
// "F<2" case is called out in the design notes as undefined for the core,
// so the Go reimplementation turns it into a reported error rather than
// leaving callers to guess.
var ErrTooFewTriangles = errors.New("lbvh: need at least 2 triangles to build a tree")

// Tree is the LBVH built for one batch element. Leaves are indexed
// [0, N) in Morton-sorted order; Internals are indexed [0, N-1) with
// Internals[0] the root.
type Tree struct {
	Leaves    []Node
	Internals []Node
	Triangles []geom.Triangle

	// Root addresses the entry point for traversal; always an internal
	// node index.
	Root Ref
}

// Build constructs an LBVH over the given triangles. The returned Tree
// retains the triangle slice by reference (§9 ownership note); callers must
// keep it alive for as long as the Tree is used.
func Build(triangles []geom.Triangle) (*Tree, error) {
	n := len(triangles)
	if n < 2 {
		return nil, ErrTooFewTriangles
	}

	timer := log.NewStageTimer(logger, "build", 0, n)
	defer timer.Done()

	leaves := make([]Node, n)
	keyed := make([]morton.Keyed, n)

	sceneBox := reduceSceneBBox(triangles)

	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			box := triangles[i].AABB()
			leaves[i].Bbox = box
			leaves[i].TriIndex = int32(i)
			leaves[i].IsLeaf = true
			keyed[i] = morton.Keyed{
				Code: morton.EncodePoint(triangles[i].Centroid(), sceneBox),
				ID:   uint32(i),
			}
		}(i)
	}
	wg.Wait()

	morton.SortKeyed(keyed)

	// Reorder leaves into Morton-sorted order and remember each leaf's
	// position (LeafIndex), matching §3's invariant that leaf order
	// corresponds to Morton-sorted triangle order.
	sorted := make([]Node, n)
	codes := make([]uint32, n)
	for i, k := range keyed {
		sorted[i] = leaves[k.ID]
		sorted[i].LeafIndex = int32(i)
		codes[i] = k.Code
	}
	leaves = sorted

	tree := &Tree{Leaves: leaves, Triangles: triangles}

	internals := make([]Node, n-1)
	for i := range internals {
		internals[i].Parent = -1
		internals[i].TriIndex = -1
		internals[i].LeafIndex = -1
	}

	wg.Add(n - 1)
	for i := 0; i < n-1; i++ {
		go func(i int) {
			defer wg.Done()
			buildInternalNode(i, codes, internals, leaves)
		}(i)
	}
	wg.Wait()

	tree.Internals = internals
	tree.Root = InternalRef(0)

	fillBottomUp(tree)

	return tree, nil
}

// reduceSceneBBox unions all triangle AABBs, splitting the work across a
// fixed pool of goroutines and merging their partial results — a parallel
// reduction standing in for a GPU-side tree reduction over the same data.
func reduceSceneBBox(triangles []geom.Triangle) geom.AABB {
	n := len(triangles)
	workers := n
	if workers > 64 {
		workers = 64
	}
	partial := make([]geom.AABB, workers)
	for i := range partial {
		partial[i] = geom.EmptyAABB()
	}

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(w int) {
			defer wg.Done()
			box := geom.EmptyAABB()
			for i := w; i < n; i += workers {
				box = box.Union(triangles[i].AABB())
			}
			partial[w] = box
		}(w)
	}
	wg.Wait()

	box := geom.EmptyAABB()
	for _, p := range partial {
		box = box.Union(p)
	}
	return box
}

// delta returns the length of the longest common prefix, in bits, between
// the effective keys of leaves i and j. The effective key is the 30-bit
// Morton code extended with the 32-bit sorted leaf position so that every
// pair of leaves compares unequal even under duplicate Morton codes (§4.3,
// §9) — equivalent to Karras's suggestion of appending index bits to the
// key. Returns -1 if j is out of range.
func delta(codes []uint32, n, i, j int) int {
	if j < 0 || j >= n {
		return -1
	}
	if codes[i] != codes[j] {
		return bits.LeadingZeros32(codes[i] ^ codes[j])
	}
	// Duplicate codes: fall back to comparing leaf indices, offset by 32
	// so the result is always greater than any non-duplicate prefix
	// length (32 bits max) and strictly ordered by index.
	return 32 + bits.LeadingZeros32(uint32(i)^uint32(j))
}

// buildInternalNode computes internal node i's range and split point using
// Karras's constant-work-per-node radix tree construction, and wires its
// two children's refs and parent pointers.
func buildInternalNode(i int, codes []uint32, internals, leaves []Node) {
	n := len(leaves)

	d := 1
	if delta(codes, n, i, i+1) < delta(codes, n, i, i-1) {
		d = -1
	}
	deltaMin := delta(codes, n, i, i-d)

	// Exponential search for an upper bound on the range length.
	lenMax := 2
	for delta(codes, n, i, i+lenMax*d) > deltaMin {
		lenMax *= 2
	}

	// Binary search within the bound for the exact far end.
	length := 0
	for step := lenMax / 2; step >= 1; step /= 2 {
		if delta(codes, n, i, i+(length+step)*d) > deltaMin {
			length += step
		}
	}
	j := i + length*d

	// Binary search for the split position within [i, j].
	deltaNode := delta(codes, n, i, j)
	split := 0
	stride := length
	for {
		stride = (stride + 1) / 2
		newSplit := split + stride
		if newSplit < length && delta(codes, n, i, i+newSplit*d) > deltaNode {
			split = newSplit
		}
		if stride <= 1 {
			break
		}
	}
	gamma := i + split*d + minInt(d, 0)

	var left, right Ref
	lo, hi := minInt(i, j), maxInt(i, j)

	if lo == gamma {
		left = LeafRef(int32(gamma))
		leaves[gamma].Parent = int32(i)
	} else {
		left = InternalRef(int32(gamma))
		internals[gamma].Parent = int32(i)
	}

	if hi == gamma+1 {
		right = LeafRef(int32(gamma + 1))
		leaves[gamma+1].Parent = int32(i)
	} else {
		right = InternalRef(int32(gamma + 1))
		internals[gamma+1].Parent = int32(i)
	}

	internals[i].Left = left
	internals[i].Right = right
}

// fillBottomUp computes every internal node's bounding box as the union of
// its children's, ascending from the leaves using one atomic counter per
// internal node (§4.3 step 8, §5 atomics). Each internal node is visited
// exactly twice across all goroutines; only the second (post-increment
// value 2) goroutine computes that node's bbox and continues upward, giving
// single-producer semantics for every internal node without locks.
func fillBottomUp(tree *Tree) {
	counters := make([]int32, len(tree.Internals))

	var wg sync.WaitGroup
	wg.Add(len(tree.Leaves))
	for i := range tree.Leaves {
		go func(i int) {
			defer wg.Done()
			node := tree.Leaves[i].Parent
			for {
				if atomic.AddInt32(&counters[node], 1) < 2 {
					return
				}
				internal := &tree.Internals[node]
				internal.Bbox = childBbox(tree, internal.Left).Union(childBbox(tree, internal.Right))

				if node == 0 {
					return
				}
				node = internal.Parent
			}
		}(i)
	}
	wg.Wait()
}

func childBbox(tree *Tree, r Ref) geom.AABB {
	if r.IsLeaf() {
		return tree.Leaves[r.LeafIndex()].Bbox
	}
	return tree.Internals[r.InternalIndex()].Bbox
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

