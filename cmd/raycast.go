package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/achilleasa/go-bvhquery/meshio"
	"github.com/achilleasa/go-bvhquery/query"
)

// RayCast runs query.NearestRayHit against a mesh and a list of rays and
// prints the result of each as a table.
func RayCast(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 2 {
		return errors.New("usage: query raycast <mesh.obj> <rays.csv>")
	}

	meshFile, raysFile := ctx.Args().Get(0), ctx.Args().Get(1)

	triangles, _, err := readOBJFile(meshFile)
	if err != nil {
		return err
	}

	raysFh, err := os.Open(raysFile)
	if err != nil {
		return err
	}
	defer raysFh.Close()

	origins, dirs, err := meshio.ReadRays(raysFh)
	if err != nil {
		return err
	}

	results, err := query.NearestRayHit(
		[]query.RayBatchElement{{Triangles: triangles, Origins: origins, Dirs: dirs}},
		traversalOptions(ctx),
	)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Ray", "Face", "Distance", "Hit point"})
	for i, r := range results[0].Results {
		hit := "-"
		if r.Face >= 0 {
			hit = fmt.Sprintf("(%.3f, %.3f, %.3f)", r.Point[0], r.Point[1], r.Point[2])
		}
		table.Append([]string{
			fmt.Sprintf("%d", i),
			fmt.Sprintf("%d", r.Face),
			fmt.Sprintf("%.4f", r.Dist),
			hit,
		})
	}
	table.Render()
	logger.Noticef("raycast results\n%s", buf.String())

	return nil
}
