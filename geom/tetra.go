package geom

import "github.com/achilleasa/go-bvhquery/types"

// Tetra is a tetrahedron in ℝ³ defined by four vertices. Face i is opposite
// vertex i and is wound (V[(i+1)%4], V[(i+2)%4], V[(i+3)%4]) — this fixes a
// deterministic face-iteration order used both when a caller intersects a
// tetra's faces during marching (§4.7) and when reconstructing a tetra's
// vertices from its four boundary triangles.
type Tetra struct {
	V [4]types.Vec3
}

// tetraFaceVerts maps a face index to the indices of the three vertices that
// bound it, opposite vertex faceIdx.
var tetraFaceVerts = [4][3]int{
	{1, 2, 3},
	{0, 2, 3},
	{0, 1, 3},
	{0, 1, 2},
}

// Face returns the triangle bounding face i (0..3).
func (t Tetra) Face(i int) Triangle {
	idx := tetraFaceVerts[i]
	return Triangle{A: t.V[idx[0]], B: t.V[idx[1]], C: t.V[idx[2]]}
}

// signedVolume6 returns six times the signed volume of the tetrahedron
// (a,b,c,d); its sign flips with vertex winding.
func signedVolume6(a, b, c, d types.Vec3) float32 {
	ab := b.Sub(a)
	ac := c.Sub(a)
	ad := d.Sub(a)
	return ab.Cross(ac).Dot(ad)
}

// Barycentric returns the barycentric coordinates of p with respect to the
// tetrahedron's four vertices as a ratio of scalar triple products. The
// components sum to 1; p lies inside the tetrahedron iff all four are ≥ 0.
func (t Tetra) Barycentric(p types.Vec3) types.Vec4 {
	v0, v1, v2, v3 := t.V[0], t.V[1], t.V[2], t.V[3]

	vol := signedVolume6(v0, v1, v2, v3)
	if vol == 0 {
		return types.Vec4{}
	}
	invVol := 1.0 / vol

	a := signedVolume6(p, v1, v2, v3) * invVol
	b := signedVolume6(v0, p, v2, v3) * invVol
	c := signedVolume6(v0, v1, p, v3) * invVol
	d := signedVolume6(v0, v1, v2, p) * invVol
	return types.XYZW(a, b, c, d)
}

// Contains reports whether p lies inside (or on the boundary of) the
// tetrahedron, implemented as four same-side tests against the reference
// signed volume — equivalent to, but cheaper than, checking that
// Barycentric(p) has no negative component.
func (t Tetra) Contains(p types.Vec3) bool {
	v0, v1, v2, v3 := t.V[0], t.V[1], t.V[2], t.V[3]
	ref := signedVolume6(v0, v1, v2, v3)
	if ref == 0 {
		return false
	}
	sign := ref > 0
	sameSide := func(v float32) bool {
		return v == 0 || (v > 0) == sign
	}

	if !sameSide(signedVolume6(p, v1, v2, v3)) {
		return false
	}
	if !sameSide(signedVolume6(v0, p, v2, v3)) {
		return false
	}
	if !sameSide(signedVolume6(v0, v1, p, v3)) {
		return false
	}
	if !sameSide(signedVolume6(v0, v1, v2, p)) {
		return false
	}
	return true
}

// FromFaces reconstructs a tetrahedron's four vertices from its four
// boundary triangles, for input that describes a tetra by its faces only
// (§3); meshio.ReadTetraMesh stores vertex indices and does not use it. It
// relies on the mesh's face winding matching tetraFaceVerts: face i is the
// triangle opposite vertex i, so vertex i is the one vertex absent from
// face i's three corners.
func FromFaces(faces [4]Triangle) Tetra {
	var t Tetra
	// Face 3 (opposite vertex 3) carries vertices 0,1,2 directly.
	t.V[0] = faces[3].A
	t.V[1] = faces[3].B
	t.V[2] = faces[3].C
	// Vertex 3 is whichever corner of face 0 (opposite vertex 0, i.e.
	// vertices 1,2,3) is not already accounted for by V[1] or V[2].
	candidates := [3]types.Vec3{faces[0].A, faces[0].B, faces[0].C}
	for _, c := range candidates {
		if c != t.V[1] && c != t.V[2] {
			t.V[3] = c
			break
		}
	}
	return t
}
