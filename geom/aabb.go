// Package geom implements the primitive math the BVH builder, the BVH
// traversal kernels and the tetrahedral marcher are built on: triangle/AABB
// intersection, point-triangle closest point, and tetrahedron containment
// and barycentric coordinates.
package geom

import (
	"math"

	"github.com/chewxy/math32"

	"github.com/achilleasa/go-bvhquery/types"
)

// AABB is an axis-aligned bounding box in ℝ³.
type AABB struct {
	Min types.Vec3
	Max types.Vec3
}

// EmptyAABB returns an AABB whose bounds are inverted such that unioning it
// with any other AABB (or point) yields that other AABB unchanged.
func EmptyAABB() AABB {
	return AABB{
		Min: types.XYZ(math32.MaxFloat32, math32.MaxFloat32, math32.MaxFloat32),
		Max: types.XYZ(-math32.MaxFloat32, -math32.MaxFloat32, -math32.MaxFloat32),
	}
}

// Union returns the smallest AABB containing both a and b.
func (a AABB) Union(b AABB) AABB {
	return AABB{
		Min: types.MinVec3(a.Min, b.Min),
		Max: types.MaxVec3(a.Max, b.Max),
	}
}

// GrowPoint returns the smallest AABB containing a and p.
func (a AABB) GrowPoint(p types.Vec3) AABB {
	return AABB{
		Min: types.MinVec3(a.Min, p),
		Max: types.MaxVec3(a.Max, p),
	}
}

// Center returns the midpoint of the box.
func (a AABB) Center() types.Vec3 {
	return a.Min.Add(a.Max).Mul(0.5)
}

// SqDistToPoint returns the squared distance from p to the closest point on
// the box (0 if p is inside the box).
func (a AABB) SqDistToPoint(p types.Vec3) float32 {
	var sum float32
	for i := 0; i < 3; i++ {
		v := p[i]
		if v < a.Min[i] {
			d := a.Min[i] - v
			sum += d * d
		} else if v > a.Max[i] {
			d := v - a.Max[i]
			sum += d * d
		}
	}
	return sum
}

// IntersectRay performs the slab test against the box and returns the entry
// and exit distances along the ray. ok is false if the ray misses the box
// entirely (including when the box is entirely behind the ray origin).
func (a AABB) IntersectRay(origin, invDir types.Vec3) (tEnter, tExit float32, ok bool) {
	tEnter = -math32.MaxFloat32
	tExit = math32.MaxFloat32

	for i := 0; i < 3; i++ {
		t0 := (a.Min[i] - origin[i]) * invDir[i]
		t1 := (a.Max[i] - origin[i]) * invDir[i]
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		if t0 > tEnter {
			tEnter = t0
		}
		if t1 < tExit {
			tExit = t1
		}
		if tEnter > tExit {
			return 0, 0, false
		}
	}
	if tExit < 0 {
		return 0, 0, false
	}
	return tEnter, tExit, true
}

// InvDir precomputes the component-wise reciprocal of a ray direction for
// repeated slab tests, matching the standard 1/d optimization; zero
// components map to +Inf so the slab test still behaves as an axis-aligned
// half-space test rather than dividing by zero.
func InvDir(dir types.Vec3) types.Vec3 {
	inv := types.Vec3{}
	for i := 0; i < 3; i++ {
		if dir[i] == 0 {
			inv[i] = float32(math.Inf(1))
		} else {
			inv[i] = 1.0 / dir[i]
		}
	}
	return inv
}
