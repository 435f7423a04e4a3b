package query

import (
	"errors"
	"testing"

	"github.com/achilleasa/go-bvhquery/config"
	"github.com/achilleasa/go-bvhquery/geom"
	"github.com/achilleasa/go-bvhquery/lbvh"
	"github.com/achilleasa/go-bvhquery/tetramarch"
	"github.com/achilleasa/go-bvhquery/types"
)

func gridTriangles(n int) []geom.Triangle {
	tris := make([]geom.Triangle, n)
	for i := 0; i < n; i++ {
		x := float32(i) * 4
		tris[i] = geom.Triangle{
			A: types.XYZ(x, 0, 0),
			B: types.XYZ(x+1, 0, 0),
			C: types.XYZ(x, 1, 0),
		}
	}
	return tris
}

func TestNearestPointInvalidCapacity(t *testing.T) {
	elements := []PointBatchElement{{Triangles: gridTriangles(4), Queries: []types.Vec3{types.XYZ(0, 0, 0)}}}
	_, err := NearestPoint(elements, config.TraversalOptions{Capacity: 13})
	if err != ErrInvalidCapacity {
		t.Fatalf("expected ErrInvalidCapacity, got %v", err)
	}
}

func TestNearestPointWrapsTooFewTriangles(t *testing.T) {
	elements := []PointBatchElement{{Triangles: gridTriangles(1), Queries: []types.Vec3{types.XYZ(0, 0, 0)}}}
	_, err := NearestPoint(elements, config.TraversalOptions{Capacity: 32})
	if !errors.Is(err, lbvh.ErrTooFewTriangles) {
		t.Fatalf("expected wrapped ErrTooFewTriangles, got %v", err)
	}
}

func TestNearestPointReorderMatchesUnordered(t *testing.T) {
	tris := gridTriangles(20)
	queries := []types.Vec3{
		types.XYZ(0.2, 0.1, 0), types.XYZ(40, 0.5, 0), types.XYZ(20.1, 0.2, 0),
		types.XYZ(8.1, 0.3, 0), types.XYZ(-5, 0, 0), types.XYZ(76, 1, 0),
	}

	direct, err := NearestPoint([]PointBatchElement{{Triangles: tris, Queries: queries}}, config.TraversalOptions{Capacity: 64})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	reordered, err := NearestPoint([]PointBatchElement{{Triangles: tris, Queries: queries}}, config.TraversalOptions{Capacity: 64, Reorder: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := range queries {
		if direct[0].Results[i] != reordered[0].Results[i] {
			t.Fatalf("query %d: reordering changed the result: %+v vs %+v", i, direct[0].Results[i], reordered[0].Results[i])
		}
	}
}

func TestNearestRayHitBasic(t *testing.T) {
	tris := gridTriangles(5)
	elements := []RayBatchElement{{
		Triangles: tris,
		Origins:   []types.Vec3{types.XYZ(0.2, 0.2, -5)},
		Dirs:      []types.Vec3{types.XYZ(0, 0, 1)},
	}}
	results, err := NearestRayHit(elements, config.TraversalOptions{Capacity: 32})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if results[0].Results[0].Face != 0 {
		t.Fatalf("expected hit on triangle 0, got %d", results[0].Results[0].Face)
	}
}

func TestMarchBasic(t *testing.T) {
	tetra := geom.Tetra{V: [4]types.Vec3{
		types.XYZ(0, 0, 0), types.XYZ(10, 0, 0), types.XYZ(0, 10, 0), types.XYZ(0, 0, 10),
	}}
	mesh := tetramarch.Mesh{
		Tetras:   []geom.Tetra{tetra},
		Topology: [][4]int32{{-1, -1, -1, -1}},
	}
	elements := []MarchBatchElement{{
		Mesh:       mesh,
		Origins:    []types.Vec3{types.XYZ(0.1, 0.1, 0.1)},
		Dirs:       []types.Vec3{types.XYZ(1, 0, 0)},
		StartTetra: []int32{0},
		StartT:     []float32{0},
	}}
	opts := config.MarchOptions{MaxSamples: 4, StepSize: 0.1, MaxMarchStartT: 10}
	results := March(elements, opts)
	if results[0].Counts[0] != 4 {
		t.Fatalf("expected 4 samples, got %d", results[0].Counts[0])
	}
	if len(results[0].Samples[0]) != 4 {
		t.Fatalf("expected sample buffer length 4, got %d", len(results[0].Samples[0]))
	}
}
