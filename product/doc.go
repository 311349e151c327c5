// Package product implements the product-construction core of spec_FULL.md
// §4.E: Apply (k=2), Ite (k=3), Quantify and Substitute/Restrict (k=1).
// Apply and Ite share one synchronized, level-ordered traversal engine
// driven by an lpq.LPQ as spec §4.E's "common loop" describes — determine
// the minimum pending level, drain every request at that level, cofactor
// each operand, let the policy decide 0/1/2 child recursions, and either
// emit a suppression arc straight to a sink (or to another operand's
// subgraph, passed through unchanged) or allocate a fresh output uid and
// push the two child requests back onto the queue. Quantify and Substitute
// do not use the engine or an LPQ; each is a memoized recursive walk over
// its single operand.
//
// Every exported entry point runs product construction and then feeds the
// resulting arc stream straight into reduce.Reduce, returning an already
// canonical node file — mirroring how the teacher's flow package always
// returns a fully resolved result rather than a half-built intermediate.
package product

import (
	"errors"

	"github.com/adiar-go/adiar/ptr"
	"github.com/adiar-go/adiar/reduce"
)

// ErrCanceled is returned when ctx is canceled between levels.
var ErrCanceled = errors.New("product: canceled between levels")

// Operand is one read-only input diagram: an already-reduced node file, its
// designated root, and a negate flag applied to every sink the traversal
// reads from it (bdd.Handle's complement-edge convention).
type Operand struct {
	File   *reduce.Output
	Root   ptr.Ptr
	Negate bool
}

// Result is the canonical output of a product-construction entry point.
// Negate is set only by shortcuts that pass an input operand through
// verbatim (e.g. Ite's Brace-Rudell-Bryant reductions) — every result that
// actually ran the traversal and reduce.Reduce carries real sink values
// and leaves Negate false.
type Result struct {
	File         *reduce.Output
	Root         ptr.Ptr
	Negate       bool
	Max1LevelCut int
}

func indexOf(f *reduce.Output) map[ptr.Ptr]reduce.Node {
	idx := make(map[ptr.Ptr]reduce.Node, len(f.Nodes))
	for _, n := range f.Nodes {
		idx[n.UID] = n
	}
	return idx
}
