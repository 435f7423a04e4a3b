package cmd

import (
	"bytes"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/achilleasa/go-bvhquery/config"
)

// traversalCapacities are the fixed scratch sizes the stack and best-first
// traversal kernels are templated on.
var traversalCapacities = []int{32, 64, 128, 256, 512, 1024}

// ListDevices lists the available traversal backends and their configured
// capacities, repointing the teacher's OpenCL device-enumeration command at
// this module's domain: there are no physical devices here, only traversal
// variants and the scratch sizes they can run with.
func ListDevices(ctx *cli.Context) error {
	setupLogging(ctx)

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Backend", "Capacity", "Thread block width"})
	for _, variant := range []string{"stack", "best-first"} {
		for _, capacity := range traversalCapacities {
			table.Append([]string{variant, fmt.Sprintf("%d", capacity), fmt.Sprintf("%d", config.ThreadBlockWidth)})
		}
	}
	table.Render()
	logger.Noticef("available traversal backends\n%s", buf.String())

	return nil
}
