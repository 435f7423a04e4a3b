package tetramarch

import (
	"testing"

	"github.com/achilleasa/go-bvhquery/config"
	"github.com/achilleasa/go-bvhquery/geom"
	"github.com/achilleasa/go-bvhquery/types"
)

func isolatedTetraMesh() Mesh {
	tetra := geom.Tetra{V: [4]types.Vec3{
		types.XYZ(0, 0, 0),
		types.XYZ(10, 0, 0),
		types.XYZ(0, 10, 0),
		types.XYZ(0, 0, 10),
	}}
	return Mesh{
		Tetras:   []geom.Tetra{tetra},
		Topology: [][4]int32{{-1, -1, -1, -1}},
	}
}

func TestMarchFillsBufferWithinIsolatedTetra(t *testing.T) {
	mesh := isolatedTetraMesh()
	opts := config.MarchOptions{MaxSamples: 5, StepSize: 0.1, MaxMarchStartT: 10}
	out := make([]Sample, opts.MaxSamples)

	n := March(mesh, types.XYZ(0.1, 0.1, 0.1), types.XYZ(1, 0, 0), 0, 0, opts, out)
	if n != opts.MaxSamples {
		t.Fatalf("expected all %d slots filled in an isolated tetra, got %d", opts.MaxSamples, n)
	}
	for i, s := range out {
		if s.TetraIndex != 0 {
			t.Fatalf("sample %d: expected tetra 0, got %d", i, s.TetraIndex)
		}
	}
}

func TestMarchRejectsOutOfRangeStartTetra(t *testing.T) {
	mesh := isolatedTetraMesh()
	opts := config.MarchOptions{MaxSamples: 5, StepSize: 0.1, MaxMarchStartT: 10}
	out := make([]Sample, opts.MaxSamples)

	n := March(mesh, types.XYZ(0.1, 0.1, 0.1), types.XYZ(1, 0, 0), 7, 0, opts, out)
	if n != 0 {
		t.Fatalf("expected 0 samples for an out-of-range start tetra, got %d", n)
	}
}

func TestMarchSkipsRaysPastMaxStartT(t *testing.T) {
	mesh := isolatedTetraMesh()
	opts := config.MarchOptions{MaxSamples: 5, StepSize: 0.1, MaxMarchStartT: 10}
	out := make([]Sample, opts.MaxSamples)

	n := March(mesh, types.XYZ(0.1, 0.1, 0.1), types.XYZ(1, 0, 0), 0, 11, opts, out)
	if n != 0 {
		t.Fatalf("expected 0 samples for a ray past MaxMarchStartT, got %d", n)
	}
	for i, s := range out {
		if s.TetraIndex != -1 {
			t.Fatalf("sample slot %d not left at sentinel, got tetra %d", i, s.TetraIndex)
		}
	}
}

// twoTetraMesh builds tetra A (apex at the origin) and tetra B (apex at
// (1,1,1)) sharing face 0, the triangle (1,0,0)-(0,1,0)-(0,0,1). B's only
// other faces are on the mesh boundary, so a ray that enters B has nowhere
// further to go.
func twoTetraMesh() Mesh {
	a := geom.Tetra{V: [4]types.Vec3{
		types.XYZ(0, 0, 0),
		types.XYZ(1, 0, 0),
		types.XYZ(0, 1, 0),
		types.XYZ(0, 0, 1),
	}}
	b := geom.Tetra{V: [4]types.Vec3{
		types.XYZ(1, 1, 1),
		types.XYZ(1, 0, 0),
		types.XYZ(0, 1, 0),
		types.XYZ(0, 0, 1),
	}}
	return Mesh{
		Tetras: []geom.Tetra{a, b},
		Topology: [][4]int32{
			{1, -1, -1, -1},
			{0, -1, -1, -1},
		},
	}
}

func TestMarchTerminatesWhenNextTetraHasNoForwardExit(t *testing.T) {
	mesh := twoTetraMesh()
	opts := config.MarchOptions{MaxSamples: 12, StepSize: 0.1, MaxMarchStartT: 10}
	out := make([]Sample, opts.MaxSamples)

	dir := types.XYZ(1, 1, 1).Normalize()
	n := March(mesh, types.XYZ(0.05, 0.05, 0.05), dir, 0, 0, opts, out)

	if n != 5 {
		t.Fatalf("expected the walk to stop after 5 samples inside tetra A, got %d", n)
	}
	for i := 0; i < n; i++ {
		if out[i].TetraIndex != 0 {
			t.Fatalf("sample %d: expected tetra 0 (A), got %d", i, out[i].TetraIndex)
		}
	}
	for i := n; i < len(out); i++ {
		if out[i].TetraIndex != -1 {
			t.Fatalf("sample slot %d beyond emitted count not left at sentinel", i)
		}
	}
}
