package meshio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/achilleasa/go-bvhquery/types"
)

// ReadPoints parses a CSV file of "x,y,z" rows into query points. There is
// no third-party CSV library in the retrieval pack this module draws from,
// so this uses the standard library's encoding/csv.
func ReadPoints(r io.Reader) ([]types.Vec3, error) {
	rows, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("meshio: %w", err)
	}

	points := make([]types.Vec3, 0, len(rows))
	for i, row := range rows {
		v, err := parseFloatRow(row, 3)
		if err != nil {
			return nil, fmt.Errorf("meshio: row %d: %w", i+1, err)
		}
		points = append(points, types.XYZ(v[0], v[1], v[2]))
	}
	return points, nil
}

// ReadRays parses a CSV file of "ox,oy,oz,dx,dy,dz" rows into ray origins
// and directions.
func ReadRays(r io.Reader) (origins, dirs []types.Vec3, err error) {
	rows, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("meshio: %w", err)
	}

	origins = make([]types.Vec3, 0, len(rows))
	dirs = make([]types.Vec3, 0, len(rows))
	for i, row := range rows {
		v, err := parseFloatRow(row, 6)
		if err != nil {
			return nil, nil, fmt.Errorf("meshio: row %d: %w", i+1, err)
		}
		origins = append(origins, types.XYZ(v[0], v[1], v[2]))
		dirs = append(dirs, types.XYZ(v[3], v[4], v[5]))
	}
	return origins, dirs, nil
}

// ReadMarchRays parses a CSV file of "ox,oy,oz,dx,dy,dz,start_tetra,start_t"
// rows, the additional two columns a marcher query needs over a plain ray.
func ReadMarchRays(r io.Reader) (origins, dirs []types.Vec3, startTetra []int32, startT []float32, err error) {
	rows, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("meshio: %w", err)
	}

	for i, row := range rows {
		v, err := parseFloatRow(row, 8)
		if err != nil {
			return nil, nil, nil, nil, fmt.Errorf("meshio: row %d: %w", i+1, err)
		}
		origins = append(origins, types.XYZ(v[0], v[1], v[2]))
		dirs = append(dirs, types.XYZ(v[3], v[4], v[5]))
		startTetra = append(startTetra, int32(v[6]))
		startT = append(startT, v[7])
	}
	return origins, dirs, startTetra, startT, nil
}

func parseFloatRow(row []string, n int) ([]float32, error) {
	if len(row) != n {
		return nil, fmt.Errorf("expected %d columns, got %d", n, len(row))
	}
	out := make([]float32, n)
	for i, tok := range row {
		c, err := strconv.ParseFloat(tok, 32)
		if err != nil {
			return nil, err
		}
		out[i] = float32(c)
	}
	return out, nil
}
