package main

import (
	"os"

	"github.com/urfave/cli"

	"github.com/achilleasa/go-bvhquery/cmd"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "go-bvhquery"
	app.Usage = "build LBVH trees over triangle meshes and run nearest-point, nearest-ray-hit and tetrahedral marching queries against them"
	app.Version = "0.0.1"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
		cli.IntFlag{
			Name:  "capacity",
			Value: 64,
			Usage: "traversal stack or priority-queue capacity; one of 32, 64, 128, 256, 512, 1024",
		},
		cli.BoolFlag{
			Name:  "best-first",
			Usage: "use the best-first priority-queue traversal variant instead of the explicit stack",
		},
		cli.BoolFlag{
			Name:  "reorder",
			Usage: "Morton-reorder queries before dispatch for worker-group coherence",
		},
		cli.IntFlag{
			Name:  "max-samples",
			Usage: "override the marcher's per-ray sample buffer size",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "query",
			Usage: "run a spatial query against a mesh",
			Subcommands: []cli.Command{
				{
					Name:      "nearest",
					Usage:     "find the nearest surface point to each query point",
					ArgsUsage: "mesh.obj points.csv",
					Action:    cmd.NearestPoint,
				},
				{
					Name:      "raycast",
					Usage:     "find the nearest ray-triangle hit for each ray",
					ArgsUsage: "mesh.obj rays.csv",
					Action:    cmd.RayCast,
				},
				{
					Name:      "march",
					Usage:     "walk each ray through a tetrahedral mesh, sampling at a fixed step",
					ArgsUsage: "tetmesh rays.csv",
					Action:    cmd.March,
				},
			},
		},
		{
			Name:   "devices",
			Usage:  "list available traversal backends and their configured capacities",
			Action: cmd.ListDevices,
		},
	}

	if err := app.Run(os.Args); err != nil {
		os.Exit(1)
	}
}
