package traverse

import "github.com/achilleasa/go-bvhquery/lbvh"

// pqEntry is one scheduled node in the best-first queue, keyed by its
// bbox's distance to the query (squared distance for nearest-point,
// slab t_enter for nearest-ray-hit).
type pqEntry struct {
	ref  lbvh.Ref
	dist float32
}

// refPQueue is a fixed-capacity binary min-heap over pqEntry.dist,
// preallocated once and never grown. A hand-rolled array heap is used
// instead of container/heap because container/heap's sort.Interface grows
// its backing slice on demand; here overflow must be a reported error, not
// a reallocation, to honor the fixed-capacity contract of §4.5.
type refPQueue struct {
	buf []pqEntry
}

func newRefPQueue(capacity int) *refPQueue {
	return &refPQueue{buf: make([]pqEntry, 0, capacity)}
}

func (q *refPQueue) len() int {
	return len(q.buf)
}

func (q *refPQueue) push(e pqEntry) error {
	if len(q.buf) == cap(q.buf) {
		return ErrOverflow
	}
	q.buf = append(q.buf, e)
	i := len(q.buf) - 1
	for i > 0 {
		parent := (i - 1) / 2
		if q.buf[parent].dist <= q.buf[i].dist {
			break
		}
		q.buf[parent], q.buf[i] = q.buf[i], q.buf[parent]
		i = parent
	}
	return nil
}

func (q *refPQueue) peek() (pqEntry, bool) {
	if len(q.buf) == 0 {
		return pqEntry{}, false
	}
	return q.buf[0], true
}

func (q *refPQueue) pop() (pqEntry, bool) {
	n := len(q.buf)
	if n == 0 {
		return pqEntry{}, false
	}
	top := q.buf[0]
	n--
	q.buf[0] = q.buf[n]
	q.buf = q.buf[:n]

	i := 0
	for {
		left, right := 2*i+1, 2*i+2
		smallest := i
		if left < n && q.buf[left].dist < q.buf[smallest].dist {
			smallest = left
		}
		if right < n && q.buf[right].dist < q.buf[smallest].dist {
			smallest = right
		}
		if smallest == i {
			break
		}
		q.buf[i], q.buf[smallest] = q.buf[smallest], q.buf[i]
		i = smallest
	}
	return top, true
}
