package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/chewxy/math32"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/achilleasa/go-bvhquery/meshio"
	"github.com/achilleasa/go-bvhquery/query"
)

// NearestPoint runs query.NearestPoint against a mesh and a list of query
// points and prints the result of each as a table, mirroring the teacher's
// tablewriter use in list_devices.go.
func NearestPoint(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 2 {
		return errors.New("usage: query nearest <mesh.obj> <points.csv>")
	}

	meshFile, pointsFile := ctx.Args().Get(0), ctx.Args().Get(1)

	triangles, _, err := readOBJFile(meshFile)
	if err != nil {
		return err
	}

	pointsFh, err := os.Open(pointsFile)
	if err != nil {
		return err
	}
	defer pointsFh.Close()

	points, err := meshio.ReadPoints(pointsFh)
	if err != nil {
		return err
	}

	results, err := query.NearestPoint(
		[]query.PointBatchElement{{Triangles: triangles, Queries: points}},
		traversalOptions(ctx),
	)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Query", "Face", "Distance", "Point"})
	for i, r := range results[0].Results {
		table.Append([]string{
			fmt.Sprintf("%d", i),
			fmt.Sprintf("%d", r.Face),
			fmt.Sprintf("%.4f", math32.Sqrt(r.DistSq)),
			fmt.Sprintf("(%.3f, %.3f, %.3f)", r.Point[0], r.Point[1], r.Point[2]),
		})
	}
	table.Render()
	logger.Noticef("nearest point results\n%s", buf.String())

	return nil
}
