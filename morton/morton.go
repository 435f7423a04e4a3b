// Package morton implements the 30-bit Morton (Z-order) codec used to give
// the LBVH builder and the query reordering stage a space-filling-curve
// ordering over 3D points, following the classic bit-interleaving trick
// (compare VOPL's voxel Morton order, applied here to a continuous [0,1]³
// coordinate instead of a fixed voxel grid).
package morton

import (
	"sort"

	"github.com/achilleasa/go-bvhquery/geom"
	"github.com/achilleasa/go-bvhquery/types"
)

// bits is the per-axis quantization width; the packed code uses 3*bits = 30
// bits total.
const bits = 10
const quantMax = (1 << bits) - 1 // 1023

// expandBits spreads the low 10 bits of v across 30 bits, leaving two zero
// bits between every source bit, so that three such values can be OR'd
// together (shifted by 0/1/2) without their bits colliding.
func expandBits(v uint32) uint32 {
	v = (v | (v << 16)) & 0x030000FF
	v = (v | (v << 8)) & 0x0300F00F
	v = (v | (v << 4)) & 0x030C30C3
	v = (v | (v << 2)) & 0x09249249
	return v
}

// Code3 interleaves three 10-bit coordinates into a single 30-bit Morton
// code, packed as (x<<2)|(y<<1)|z.
func Code3(x, y, z uint32) uint32 {
	return (expandBits(x) << 2) | (expandBits(y) << 1) | expandBits(z)
}

// quantize clamps a normalized [0,1] coordinate and scales it into
// [0, 1023].
func quantize(v float32) uint32 {
	if v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}
	q := uint32(v * float32(quantMax))
	if q > quantMax {
		q = quantMax
	}
	return q
}

// EncodePoint computes the Morton code of p after normalizing it into the
// given bounding box. Points outside the box are clamped to its surface
// before quantization.
func EncodePoint(p types.Vec3, box geom.AABB) uint32 {
	extent := box.Max.Sub(box.Min)
	var nx, ny, nz float32
	if extent[0] > 0 {
		nx = (p[0] - box.Min[0]) / extent[0]
	}
	if extent[1] > 0 {
		ny = (p[1] - box.Min[1]) / extent[1]
	}
	if extent[2] > 0 {
		nz = (p[2] - box.Min[2]) / extent[2]
	}
	return Code3(quantize(nx), quantize(ny), quantize(nz))
}

// QueryCube is the fixed [-1,1]³ normalization box used exclusively for
// query-point Morton reordering (§4.2); it is deliberately independent of
// any mesh's scene bbox so reordering never perturbs traversal results.
var QueryCube = geom.AABB{Min: types.XYZ(-1, -1, -1), Max: types.XYZ(1, 1, 1)}

// Keyed pairs a Morton code with the original index of the item it was
// computed from, before a stable sort disturbs that association.
type Keyed struct {
	Code uint32
	ID   uint32
}

// SortKeyed stable-sorts a slice of (code, id) pairs by code, breaking ties
// on id — the tie-break rule that keeps LBVH tree topology deterministic
// under duplicate Morton codes (§4.3, §9).
func SortKeyed(items []Keyed) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Code != items[j].Code {
			return items[i].Code < items[j].Code
		}
		return items[i].ID < items[j].ID
	})
}
