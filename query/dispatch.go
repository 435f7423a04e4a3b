// Package query is the orchestrator: per batch element it builds an LBVH
// (or takes a prebuilt tetrahedral mesh), optionally Morton-reorders the
// queries for worker-group coherence, dispatches the traversal/marching
// kernels across goroutine work-groups, and writes results into the
// caller's preallocated output buffers (§4.6 of the design notes).
package query

import (
	"sync"

	"github.com/achilleasa/go-bvhquery/config"
)

// dispatch runs work(i) for i in [0,n) across goroutine work-groups of
// blockWidth items each, mirroring the teacher's OpenCL work-group
// sizing (§5). Blocks until every group has finished.
func dispatch(n, blockWidth int, work func(i int)) {
	if blockWidth <= 0 {
		blockWidth = config.ThreadBlockWidth
	}
	var wg sync.WaitGroup
	for start := 0; start < n; start += blockWidth {
		end := start + blockWidth
		if end > n {
			end = n
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				work(i)
			}
		}(start, end)
	}
	wg.Wait()
}

// firstError returns the first non-nil error in errs, scanning in index
// order so the result doesn't depend on goroutine completion order.
func firstError(errs []error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
