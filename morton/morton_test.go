package morton

import (
	"testing"

	"github.com/achilleasa/go-bvhquery/geom"
	"github.com/achilleasa/go-bvhquery/types"
)

func TestExpandBitsNoOverlap(t *testing.T) {
	x := expandBits(0x3FF)
	y := expandBits(0x3FF) << 1
	z := expandBits(0x3FF) << 2
	if x&y != 0 || y&z != 0 || x&z != 0 {
		t.Fatalf("expanded bit fields overlap: x=%x y=%x z=%x", x, y, z)
	}
}

func TestCode3Origin(t *testing.T) {
	if c := Code3(0, 0, 0); c != 0 {
		t.Fatalf("expected code 0 at origin, got %d", c)
	}
}

func TestEncodePointMonotoneAlongAxis(t *testing.T) {
	box := geom.AABB{Min: types.XYZ(0, 0, 0), Max: types.XYZ(1, 1, 1)}
	prev := uint32(0)
	for i := 1; i <= 10; i++ {
		p := types.XYZ(float32(i)/10.0, 0, 0)
		c := EncodePoint(p, box)
		if c < prev {
			t.Fatalf("expected non-decreasing code along x axis, got %d after %d", c, prev)
		}
		prev = c
	}
}

func TestSortKeyedStableOnDuplicates(t *testing.T) {
	items := []Keyed{
		{Code: 5, ID: 2},
		{Code: 5, ID: 0},
		{Code: 1, ID: 1},
	}
	SortKeyed(items)
	if items[0].Code != 1 || items[0].ID != 1 {
		t.Fatalf("expected smallest code first, got %+v", items[0])
	}
	if items[1].ID != 0 || items[2].ID != 2 {
		t.Fatalf("expected duplicate codes broken by id, got %+v", items)
	}
}
