package product

import (
	"github.com/adiar-go/adiar/internal/diag"
	"github.com/adiar-go/adiar/reduce"
	"github.com/adiar-go/adiar/store"
)

// newArcSource seals arcs into a sorted stream store and opens a forward
// reader over it, letting product feed its traversal's output straight
// into reduce.Reduce through the same store.Reader contract every other
// stream in the engine uses. The store itself is Mem- or File-backed per
// store.Backing(len(arcs)) — the same 1-level-cut budget that decides
// whether a graph's working set still fits in RAM, applied here to the
// arc file rather than the LPQ. The returned cleanup releases whatever
// backing storage was allocated; callers must run it once the reader is
// drained.
func newArcSource(arcs []reduce.Arc) (store.Reader[reduce.Arc], func() error, error) {
	kind := store.Backing(len(arcs))
	ms, err := store.NewMultiStream(kind)
	if err != nil {
		return nil, nil, err
	}
	s, err := store.OpenSub[reduce.Arc](ms, "node_arcs")
	if err != nil {
		_ = ms.Close()
		return nil, nil, err
	}

	cleanup := func() error {
		err := s.Close()
		if cerr := ms.Close(); err == nil {
			err = cerr
		}
		return err
	}

	w, err := s.Writer()
	if err != nil {
		_ = cleanup()
		return nil, nil, err
	}
	for _, a := range arcs {
		if err := w.Append(a); err != nil {
			_ = cleanup()
			return nil, nil, err
		}
	}
	if err := w.Seal(); err != nil {
		_ = cleanup()
		return nil, nil, err
	}
	r, err := s.Reader(false)
	if err != nil {
		_ = cleanup()
		return nil, nil, err
	}

	diag.Infof("product: arc stream backed by %v (%d arcs)", kind, len(arcs))
	return r, cleanup, nil
}
