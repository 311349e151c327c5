package product

import (
	"context"

	"github.com/adiar-go/adiar/policy"
	"github.com/adiar-go/adiar/ptr"
	"github.com/adiar-go/adiar/stats"
)

// Ite runs the k=3 if-then-else product construction. Before entering the
// traversal it checks the classical Brace-Rudell-Bryant reductions spec
// §4.E names (ite(⊤,G,H)=G, ite(⊥,G,H)=H, ite(F,G,G)=G, ite(F,⊤,⊥)=F) as
// cheap root-level identity checks, each an O(1) passthrough of an
// existing operand rather than a fresh traversal.
func Ite(ctx context.Context, pol policy.Policy, f, g, h Operand, reg *stats.Registry) (*Result, error) {
	if r, ok := iteBRB(f, g, h); ok {
		return r, nil
	}

	ops := []operand{newOperand(f), newOperand(g), newOperand(h)}
	e := newEngine(ops, iteCombine())

	root, arcs, cut, err := e.run(ctx, []ptr.Ptr{f.Root, g.Root, h.Root})
	if err != nil {
		return nil, err
	}
	return finalize(ctx, pol, root, arcs, cut, reg)
}

func iteBRB(f, g, h Operand) (*Result, bool) {
	if ptr.IsSink(f.Root) {
		if ptr.Value(f.Root) != f.Negate {
			return &Result{File: g.File, Root: g.Root, Negate: g.Negate}, true
		}
		return &Result{File: h.File, Root: h.Root, Negate: h.Negate}, true
	}
	if sameOperand(g, h) {
		return &Result{File: g.File, Root: g.Root, Negate: g.Negate}, true
	}
	if ptr.IsSink(g.Root) && ptr.IsSink(h.Root) &&
		ptr.Value(g.Root) != g.Negate && ptr.Value(h.Root) == h.Negate {
		return &Result{File: f.File, Root: f.Root, Negate: f.Negate}, true
	}
	return nil, false
}

func sameOperand(a, b Operand) bool {
	return a.File == b.File && ptr.Equal(a.Root, b.Root) && a.Negate == b.Negate
}

func iteCombine() combineFunc {
	return func(lowOps, highOps []ptr.Ptr) (branchResult, branchResult) {
		return iteBranch(lowOps[0], lowOps[1], lowOps[2]), iteBranch(highOps[0], highOps[1], highOps[2])
	}
}

func iteBranch(f, g, h ptr.Ptr) branchResult {
	if ptr.IsSink(f) {
		if ptr.Value(f) {
			return passthrough(1, g)
		}
		return passthrough(2, h)
	}
	if ptr.IsSink(g) && ptr.IsSink(h) && ptr.Value(g) == ptr.Value(h) {
		return sinkResult(ptr.MakeSink(ptr.Value(g)))
	}
	return pending()
}
