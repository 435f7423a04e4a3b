package geom

import (
	"github.com/chewxy/math32"

	"github.com/achilleasa/go-bvhquery/types"
)

// Triangle is a triangle in ℝ³ defined by three vertices, ordered A, B, C.
type Triangle struct {
	A, B, C types.Vec3
}

// AABB returns the triangle's axis-aligned bounding box.
func (t Triangle) AABB() AABB {
	return AABB{
		Min: types.MinVec3(types.MinVec3(t.A, t.B), t.C),
		Max: types.MaxVec3(types.MaxVec3(t.A, t.B), t.C),
	}
}

// Centroid returns the arithmetic mean of the triangle's vertices.
func (t Triangle) Centroid() types.Vec3 {
	return t.A.Add(t.B).Add(t.C).Mul(1.0 / 3.0)
}

// ClosestPoint implements Ericson's Voronoi-region closest-point-on-triangle
// test (Real-Time Collision Detection, section 5.1.5). It returns the
// closest point on the triangle to p, the barycentric coordinates of that
// point with respect to (A, B, C), and the squared distance from p to the
// closest point. Region ties (points exactly on a shared feature) resolve in
// the fixed order: vertex A, vertex B, edge AB, vertex C, edge AC, edge BC,
// interior face — the order the sequence of early-outs below checks them in.
func (t Triangle) ClosestPoint(p types.Vec3) (closest types.Vec3, bary types.Vec3, distSq float32) {
	ab := t.B.Sub(t.A)
	ac := t.C.Sub(t.A)
	ap := p.Sub(t.A)

	d1 := ab.Dot(ap)
	d2 := ac.Dot(ap)
	if d1 <= 0 && d2 <= 0 {
		return t.A, types.XYZ(1, 0, 0), p.Sub(t.A).LenSq()
	}

	bp := p.Sub(t.B)
	d3 := ab.Dot(bp)
	d4 := ac.Dot(bp)
	if d3 >= 0 && d4 <= d3 {
		return t.B, types.XYZ(0, 1, 0), p.Sub(t.B).LenSq()
	}

	vc := d1*d4 - d3*d2
	if vc <= 0 && d1 >= 0 && d3 <= 0 {
		v := d1 / (d1 - d3)
		c := t.A.Add(ab.Mul(v))
		return c, types.XYZ(1-v, v, 0), p.Sub(c).LenSq()
	}

	cp := p.Sub(t.C)
	d5 := ab.Dot(cp)
	d6 := ac.Dot(cp)
	if d6 >= 0 && d5 <= d6 {
		return t.C, types.XYZ(0, 0, 1), p.Sub(t.C).LenSq()
	}

	vb := d5*d2 - d1*d6
	if vb <= 0 && d2 >= 0 && d6 <= 0 {
		w := d2 / (d2 - d6)
		c := t.A.Add(ac.Mul(w))
		return c, types.XYZ(1-w, 0, w), p.Sub(c).LenSq()
	}

	va := d3*d6 - d5*d4
	if va <= 0 && (d4-d3) >= 0 && (d5-d6) >= 0 {
		w := (d4 - d3) / ((d4 - d3) + (d5 - d6))
		c := t.B.Add(t.C.Sub(t.B).Mul(w))
		return c, types.XYZ(0, 1-w, w), p.Sub(c).LenSq()
	}

	denom := 1.0 / (va + vb + vc)
	v := vb * denom
	w := vc * denom
	u := 1 - v - w
	c := t.A.Add(ab.Mul(v)).Add(ac.Mul(w))
	return c, types.XYZ(u, v, w), p.Sub(c).LenSq()
}

// rayEpsilon guards the parallel-ray and near-zero-determinant cases in
// IntersectRay.
const rayEpsilon float32 = 1e-8

// IntersectRay performs a Möller–Trumbore ray-triangle intersection test.
// ok is false (and t is +Inf) for parallel rays, rays that miss the
// triangle's extent (u∉[0,1], v∉[0,1] or u+v>1), or hits behind the ray
// origin (t<0). bary is (1-u-v, u, v), the barycentric weights of A, B, C.
func (t Triangle) IntersectRay(origin, dir types.Vec3) (dist float32, bary types.Vec3, hit types.Vec3, ok bool) {
	edge1 := t.B.Sub(t.A)
	edge2 := t.C.Sub(t.A)

	h := dir.Cross(edge2)
	det := edge1.Dot(h)
	if math32.Abs(det) < rayEpsilon {
		return math32.Inf(1), types.Vec3{}, types.Vec3{}, false
	}
	invDet := 1.0 / det

	s := origin.Sub(t.A)
	u := invDet * s.Dot(h)
	if u < 0 || u > 1 {
		return math32.Inf(1), types.Vec3{}, types.Vec3{}, false
	}

	q := s.Cross(edge1)
	v := invDet * dir.Dot(q)
	if v < 0 || u+v > 1 {
		return math32.Inf(1), types.Vec3{}, types.Vec3{}, false
	}

	tHit := invDet * edge2.Dot(q)
	if tHit < 0 {
		return math32.Inf(1), types.Vec3{}, types.Vec3{}, false
	}

	hitPoint := origin.Add(dir.Mul(tHit))
	return tHit, types.XYZ(1-u-v, u, v), hitPoint, true
}
