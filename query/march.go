package query

import (
	"github.com/achilleasa/go-bvhquery/config"
	"github.com/achilleasa/go-bvhquery/log"
	"github.com/achilleasa/go-bvhquery/tetramarch"
	"github.com/achilleasa/go-bvhquery/types"
)

// MarchBatchElement is one tetrahedral mesh and its rays; Origins, Dirs,
// StartTetra and StartT are parallel slices of equal length.
type MarchBatchElement struct {
	Mesh       tetramarch.Mesh
	Origins    []types.Vec3
	Dirs       []types.Vec3
	StartTetra []int32
	StartT     []float32
}

// MarchBatchResult holds the emitted samples and sample count per ray, in
// the caller's original query order. Samples[i] is always
// opts.MaxSamples long; only the first Counts[i] entries are real.
type MarchBatchResult struct {
	Samples [][]tetramarch.Sample
	Counts  []int
}

// March runs the tetrahedral ray marcher (§4.7) over every batch element
// in turn. The marcher has no traversal capacity to validate and no
// reordering stage — its scratch is the per-ray sample buffer, not a
// stack/queue, and its cost is walk length rather than tree coherence.
func March(elements []MarchBatchElement, opts config.MarchOptions) []MarchBatchResult {
	results := make([]MarchBatchResult, len(elements))
	for b, elem := range elements {
		n := len(elem.Origins)
		timer := log.NewStageTimer(logger, "march", b, n)

		samples := make([][]tetramarch.Sample, n)
		counts := make([]int, n)

		dispatch(n, config.ThreadBlockWidth, func(i int) {
			buf := make([]tetramarch.Sample, opts.MaxSamples)
			count := tetramarch.March(elem.Mesh, elem.Origins[i], elem.Dirs[i], elem.StartTetra[i], elem.StartT[i], opts, buf)
			samples[i] = buf
			counts[i] = count
		})

		results[b] = MarchBatchResult{Samples: samples, Counts: counts}
		timer.Done()
	}
	return results
}
