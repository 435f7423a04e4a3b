package traverse

import "github.com/achilleasa/go-bvhquery/lbvh"

// refStack is a fixed-capacity LIFO of node refs, preallocated once and
// never grown, standing in for the small per-thread scratch stack a GPU
// traversal kernel would keep in local memory.
type refStack struct {
	buf []lbvh.Ref
}

func newRefStack(capacity int) *refStack {
	return &refStack{buf: make([]lbvh.Ref, 0, capacity)}
}

func (s *refStack) push(r lbvh.Ref) error {
	if len(s.buf) == cap(s.buf) {
		return ErrOverflow
	}
	s.buf = append(s.buf, r)
	return nil
}

func (s *refStack) pop() (lbvh.Ref, bool) {
	n := len(s.buf)
	if n == 0 {
		return 0, false
	}
	r := s.buf[n-1]
	s.buf = s.buf[:n-1]
	return r, true
}
