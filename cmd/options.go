package cmd

import (
	"github.com/urfave/cli"

	"github.com/achilleasa/go-bvhquery/config"
)

func traversalOptions(ctx *cli.Context) config.TraversalOptions {
	return config.TraversalOptions{
		Capacity:  ctx.GlobalInt("capacity"),
		BestFirst: ctx.GlobalBool("best-first"),
		Reorder:   ctx.GlobalBool("reorder"),
	}
}
