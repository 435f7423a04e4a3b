package lbvh

import "github.com/achilleasa/go-bvhquery/geom"

// Ref addresses a node in the combined leaf/internal node space using a
// single signed integer, the way GPU LBVH implementations pack child
// pointers into one int so a traversal stack slot doesn't need a separate
// "kind" tag: non-negative values index Tree.Internals directly; negative
// values index Tree.Leaves via bitwise complement.
type Ref int32

func LeafRef(i int32) Ref {
	return Ref(^i)
}

func InternalRef(i int32) Ref {
	return Ref(i)
}

func (r Ref) IsLeaf() bool {
	return r < 0
}

func (r Ref) LeafIndex() int32 {
	return ^int32(r)
}

func (r Ref) InternalIndex() int32 {
	return int32(r)
}

// Node is a single BVH node. Internal nodes populate Left/Right/Bbox; leaf
// nodes populate TriIndex/LeafIndex/Bbox. Parent is set on every node except
// the root and is always an internal-node index (Karras trees never parent a
// node under a leaf).
type Node struct {
	Bbox geom.AABB

	// Left and Right are only meaningful when IsLeaf is false.
	Left, Right Ref

	// Parent is the internal-node index of this node's parent, or -1 for
	// the root.
	Parent int32

	// TriIndex is the original (pre-sort) triangle index this leaf
	// represents. -1 on internal nodes.
	TriIndex int32

	// LeafIndex is this leaf's position in Morton-sorted order, i.e. its
	// own index within Tree.Leaves. -1 on internal nodes.
	LeafIndex int32

	IsLeaf bool
}
