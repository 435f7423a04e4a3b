package tetramarch

import (
	"github.com/chewxy/math32"

	"github.com/achilleasa/go-bvhquery/config"
	"github.com/achilleasa/go-bvhquery/log"
	"github.com/achilleasa/go-bvhquery/types"
)

var logger = log.New("tetramarch")

// Sample is one marched sample along a ray.
type Sample struct {
	Position   types.Vec3
	TetraIndex int32
	Bary       types.Vec4
	TStart     float32
	TEnd       float32
}

// March walks the ray (origin, dir) through mesh starting inside tetra
// startTetra at parameter startT, writing samples into out (a
// caller-owned, preallocated buffer of length opts.MaxSamples) and
// returning the number written. Slots beyond the returned count are left
// with TetraIndex -1.
//
// Rays with startT > opts.MaxMarchStartT are skipped, emitting zero
// samples. The walk terminates early — before filling out — once the ray
// exits the mesh through a boundary face.
func March(mesh Mesh, origin, dir types.Vec3, startTetra int32, startT float32, opts config.MarchOptions, out []Sample) int {
	for i := range out {
		out[i] = Sample{TetraIndex: -1}
	}
	if startTetra < 0 || int(startTetra) >= len(mesh.Tetras) {
		logger.Warningf("march: out-of-range start tetra %d for a mesh of %d tetras", startTetra, len(mesh.Tetras))
		return 0
	}
	if startT > opts.MaxMarchStartT {
		return 0
	}
	if !mesh.Tetras[startTetra].Contains(origin.Add(dir.Mul(startT))) {
		logger.Warningf("march: start point for tetra %d does not lie inside it", startTetra)
	}

	currentTetra := startTetra
	previousTetra := startTetra
	t := startT

	exitT, nextTetra, haveExit := findExitFace(mesh, currentTetra, previousTetra, origin, dir)

	emitted := 0
	for emitted < len(out) {
		p := origin.Add(dir.Mul(t))
		bary := mesh.Tetras[currentTetra].Barycentric(p)
		out[emitted] = Sample{
			Position:   p,
			TetraIndex: currentTetra,
			Bary:       bary,
			TStart:     t,
			TEnd:       t + opts.StepSize,
		}
		emitted++
		t += opts.StepSize

		if haveExit && t > exitT {
			previousTetra = currentTetra
			currentTetra = nextTetra
			exitT, nextTetra, haveExit = findExitFace(mesh, currentTetra, previousTetra, origin, dir)
			if !haveExit {
				logger.Debugf("ray left mesh at tetra %d after %d samples", currentTetra, emitted)
				break
			}
		}
	}
	return emitted
}

// findExitFace tests the ray against tetraIdx's four faces and returns the
// neighbor (and hit distance) of the first face — in face-iteration order,
// on ties — the ray crosses at a finite positive t, excluding boundary
// faces (-1) and the face shared with previousTetra. ok is false if the
// ray crosses none of the remaining faces, i.e. it is leaving the mesh.
func findExitFace(mesh Mesh, tetraIdx, previousTetra int32, origin, dir types.Vec3) (exitT float32, nextTetra int32, ok bool) {
	tetra := mesh.Tetras[tetraIdx]
	neighbors := mesh.Topology[tetraIdx]

	bestT := math32.Inf(1)
	best := int32(-1)
	for face := 0; face < 4; face++ {
		neighbor := neighbors[face]
		if neighbor == -1 || neighbor == previousTetra {
			continue
		}
		dist, _, _, hit := tetra.Face(face).IntersectRay(origin, dir)
		if !hit || dist <= 0 {
			continue
		}
		if dist < bestT {
			bestT = dist
			best = neighbor
		}
	}
	if best == -1 {
		return 0, -1, false
	}
	return bestT, best, true
}
