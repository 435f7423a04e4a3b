package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/achilleasa/go-bvhquery/config"
	"github.com/achilleasa/go-bvhquery/meshio"
	"github.com/achilleasa/go-bvhquery/query"
)

// March runs the tetrahedral ray marcher against a tetra mesh and a list of
// rays, and prints the sample count and first/last sample position of each.
func March(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 2 {
		return errors.New("usage: query march <tetmesh> <rays.csv>")
	}

	meshFile, raysFile := ctx.Args().Get(0), ctx.Args().Get(1)

	mesh, _, err := readTetraMeshFile(meshFile)
	if err != nil {
		return err
	}

	raysFh, err := os.Open(raysFile)
	if err != nil {
		return err
	}
	defer raysFh.Close()

	origins, dirs, startTetra, startT, err := meshio.ReadMarchRays(raysFh)
	if err != nil {
		return err
	}

	opts := config.DefaultMarchOptions()
	if n := ctx.GlobalInt("max-samples"); n > 0 {
		opts.MaxSamples = n
	}

	results := query.March(
		[]query.MarchBatchElement{{
			Mesh:       mesh,
			Origins:    origins,
			Dirs:       dirs,
			StartTetra: startTetra,
			StartT:     startT,
		}},
		opts,
	)

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Ray", "Samples", "First", "Last"})
	for i, count := range results[0].Counts {
		first, last := "-", "-"
		if count > 0 {
			samples := results[0].Samples[i]
			p := samples[0].Position
			first = fmt.Sprintf("(%.3f, %.3f, %.3f)", p[0], p[1], p[2])
			p = samples[count-1].Position
			last = fmt.Sprintf("(%.3f, %.3f, %.3f)", p[0], p[1], p[2])
		}
		table.Append([]string{fmt.Sprintf("%d", i), fmt.Sprintf("%d", count), first, last})
	}
	table.Render()
	logger.Noticef("march results\n%s", buf.String())

	return nil
}
