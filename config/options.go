// Package config holds the tunables shared by the query orchestrator and
// the CLI, validated once at the boundary rather than threaded through as
// loose function arguments (mirroring the teacher's renderer.Options).
package config

import (
	"errors"
	"time"
)

// ErrInvalidCapacity is returned by TraversalOptions.Validate when Capacity
// is not one of the fixed sizes the traversal kernels are templated on.
var ErrInvalidCapacity = errors.New("config: capacity must be one of 32, 64, 128, 256, 512, 1024")

// ThreadBlockWidth is the default worker-batch size used to fan queries out
// across goroutines, mirroring the teacher's OpenCL work-group sizing.
const ThreadBlockWidth = 256

// TraversalOptions configures a BVH traversal: which fixed-capacity
// scratch size to use, which traversal variant, and whether queries are
// Morton-reordered before dispatch.
type TraversalOptions struct {
	// Capacity of the per-query stack or priority queue. Must be one of
	// 32, 64, 128, 256, 512, 1024.
	Capacity int

	// BestFirst selects the priority-queue traversal variant instead of
	// the explicit-stack one.
	BestFirst bool

	// Reorder enables Morton-code query reordering for worker-group
	// coherence. Never changes results.
	Reorder bool
}

// Validate rejects a capacity outside the fixed set traversal kernels are
// templated on.
func (o TraversalOptions) Validate() error {
	switch o.Capacity {
	case 32, 64, 128, 256, 512, 1024:
		return nil
	default:
		return ErrInvalidCapacity
	}
}

// MarchOptions configures the tetrahedral ray marcher.
type MarchOptions struct {
	// MaxSamples bounds the number of samples emitted per ray; the
	// output buffer's capacity.
	MaxSamples int

	// StepSize is the fixed distance advanced along the ray between
	// samples.
	StepSize float32

	// MaxMarchStartT skips rays whose start_t exceeds this threshold.
	// Exposed as a tunable rather than a hard-coded magic constant (see
	// §4.7 and §9 of SPEC_FULL.md); default 10.0.
	MaxMarchStartT float32
}

// DefaultMarchOptions returns the marcher defaults used when the CLI does
// not override them.
func DefaultMarchOptions() MarchOptions {
	return MarchOptions{
		MaxSamples:     64,
		StepSize:       0.1,
		MaxMarchStartT: 10.0,
	}
}

// MeshSource identifies where a batch element's geometry came from, for
// logging. It carries no geometry itself and never crosses into the
// query/lbvh/traverse/tetramarch packages — those operate on plain
// triangle and tetra slices regardless of where the CLI loaded them from.
type MeshSource struct {
	Name     string
	Path     string
	LoadedAt time.Time
}

// NewMeshSource stamps a MeshSource with the current time, the way the CLI
// records when it loaded a mesh file for the batch-lifecycle log lines.
func NewMeshSource(name, path string) MeshSource {
	return MeshSource{Name: name, Path: path, LoadedAt: time.Now()}
}
