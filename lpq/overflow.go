package lpq

import (
	"github.com/adiar-go/adiar/internal/diag"
	"github.com/adiar-go/adiar/store"
)

// overflowSpillThreshold is how many far-future requests the overflow
// buffer holds in memory before sorting and sealing its contents out to a
// store.Store[R] run, picked via store.Backing the same way product
// chooses a backing for its arc stream. It is a var
// rather than a const purely so tests can shrink it instead of pushing
// tens of thousands of requests to exercise the spill path.
var overflowSpillThreshold = store.CutBudget

// overflowRun is one sorted batch of overflow requests already sealed out
// to a store.Store[R], read forward with its current head cached so
// overflowStore can merge it against the live in-memory heap without
// re-reading on every peek.
type overflowRun[R any] struct {
	backing store.Store[overflowItem[R]]
	reader  store.Reader[overflowItem[R]]
	head    overflowItem[R]
	has     bool
	left    int // items not yet read from reader, not counting head
}

func newOverflowRun[R any](backing store.Store[overflowItem[R]]) (*overflowRun[R], error) {
	reader, err := backing.Reader(false)
	if err != nil {
		return nil, err
	}
	run := &overflowRun[R]{backing: backing, reader: reader, left: backing.Len()}
	if err := run.advance(); err != nil {
		return nil, err
	}
	return run, nil
}

// advance loads the next item into head, if any remain.
func (r *overflowRun[R]) advance() error {
	if r.left <= 0 {
		r.has = false
		return nil
	}
	v, _, err := r.reader.Next()
	if err != nil {
		return err
	}
	r.head, r.has = v, true
	r.left--
	return nil
}

func (r *overflowRun[R]) exhausted() bool { return !r.has }

func (r *overflowRun[R]) remaining() int {
	if r.has {
		return r.left + 1
	}
	return 0
}

func (r *overflowRun[R]) close() error {
	_ = r.reader.Close()
	return r.backing.Close()
}

// overflowStore is the far-future side of an LPQ: a small in-memory heap
// that, once it grows past overflowSpillThreshold, sorts and seals its
// entire contents out to a store.Store[R] run and keeps merging new runs
// against the live heap and any older runs for peek/pop — spec_FULL.md
// §4.C's "backing stores (in-memory vs external)" parameter applied to
// the overflow itself, not just the near-level buckets. It exposes the
// same Len/peek/pushItem/popItem shape genHeap does, so LPQ's call sites
// don't need to know whether a given request is still in memory or
// already spilled.
type overflowStore[R any] struct {
	less func(a, b overflowItem[R]) bool
	heap *genHeap[overflowItem[R]]
	runs []*overflowRun[R]
}

func newOverflowStore[R any](less func(a, b overflowItem[R]) bool) *overflowStore[R] {
	return &overflowStore[R]{less: less, heap: newGenHeap(less)}
}

func (s *overflowStore[R]) Len() int {
	n := s.heap.Len()
	for _, r := range s.runs {
		n += r.remaining()
	}
	return n
}

// pushItem buffers v in the in-memory heap, spilling once the buffer
// grows past overflowSpillThreshold.
func (s *overflowStore[R]) pushItem(v overflowItem[R]) {
	s.heap.pushItem(v)
	if s.heap.Len() > overflowSpillThreshold {
		s.spill()
	}
}

// spill drains the in-memory heap in sorted order and seals it out to a
// fresh store.Store[R] run, backed by Mem or File per store.Backing. A
// failure at any step falls back to keeping the batch in memory rather
// than losing requests, logged via diag since it silently defeats the
// point of spilling.
func (s *overflowStore[R]) spill() {
	n := s.heap.Len()
	sorted := make([]overflowItem[R], 0, n)
	for s.heap.Len() > 0 {
		v, _ := s.heap.popItem()
		sorted = append(sorted, v)
	}

	run, err := sealRun[R](sorted)
	if err != nil {
		diag.Warnf("lpq: overflow spill of %d requests failed, keeping them in memory: %v", n, err)
		for _, v := range sorted {
			s.heap.pushItem(v)
		}
		return
	}
	s.runs = append(s.runs, run)
	diag.Infof("lpq: spilled %d overflow requests to a %v-backed run (%d live runs)", n, store.Backing(n), len(s.runs))
}

func sealRun[R any](sorted []overflowItem[R]) (*overflowRun[R], error) {
	var backing store.Store[overflowItem[R]]
	var err error
	if store.Backing(len(sorted)) == store.File {
		backing, err = store.NewFileStore[overflowItem[R]]("")
	} else {
		backing = store.NewMemStore[overflowItem[R]]()
	}
	if err != nil {
		return nil, err
	}

	w, err := backing.Writer()
	if err == nil {
		for _, v := range sorted {
			if err = w.Append(v); err != nil {
				break
			}
		}
	}
	if err == nil {
		err = w.Seal()
	}
	if err != nil {
		_ = backing.Close()
		return nil, err
	}

	run, err := newOverflowRun(backing)
	if err != nil {
		_ = backing.Close()
		return nil, err
	}
	return run, nil
}

// peek returns the smallest buffered item without removing it, merging
// the in-memory heap with every spilled run.
func (s *overflowStore[R]) peek() (overflowItem[R], bool) {
	best, ok := s.heap.peek()
	for _, r := range s.runs {
		if r.has && (!ok || s.less(r.head, best)) {
			best, ok = r.head, true
		}
	}
	return best, ok
}

// popItem removes and returns the smallest buffered item, draining from
// whichever of the heap or the spilled runs currently holds it. A run
// that becomes exhausted is closed and dropped immediately.
func (s *overflowStore[R]) popItem() (overflowItem[R], bool) {
	best, bestOK := s.heap.peek()
	bestRun := -1
	for i, r := range s.runs {
		if r.has && (!bestOK || s.less(r.head, best)) {
			best, bestOK, bestRun = r.head, true, i
		}
	}
	if !bestOK {
		var zero overflowItem[R]
		return zero, false
	}
	if bestRun < 0 {
		return s.heap.popItem()
	}

	r := s.runs[bestRun]
	v := r.head
	if err := r.advance(); err != nil {
		diag.Warnf("lpq: overflow run read failed, dropping remainder of run: %v", err)
		r.has = false
	}
	if r.exhausted() {
		if err := r.close(); err != nil {
			diag.Warnf("lpq: overflow run close failed: %v", err)
		}
		s.runs = append(s.runs[:bestRun], s.runs[bestRun+1:]...)
	}
	return v, true
}

// close releases every spilled run's backing store. Safe to call on an
// overflowStore with no runs.
func (s *overflowStore[R]) close() error {
	var first error
	for _, r := range s.runs {
		if err := r.close(); err != nil && first == nil {
			first = err
		}
	}
	s.runs = nil
	return first
}
