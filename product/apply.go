package product

import (
	"context"

	"github.com/adiar-go/adiar/policy"
	"github.com/adiar-go/adiar/ptr"
	"github.com/adiar-go/adiar/reduce"
	"github.com/adiar-go/adiar/stats"
)

// Apply runs the k=2 binary-operator product construction spec_FULL.md
// §4.E names, applying pol's per-operator shortcut and irrelevant-operand
// predicates at every recursion step rather than only at the root — an
// operand that becomes a determining sink partway down one branch still
// short-circuits that branch in O(1).
func Apply(ctx context.Context, pol policy.Policy, op policy.BinOp, a, b Operand, reg *stats.Registry) (*Result, error) {
	ops := []operand{newOperand(a), newOperand(b)}
	e := newEngine(ops, applyCombine(pol, op))

	root, arcs, cut, err := e.run(ctx, []ptr.Ptr{a.Root, b.Root})
	if err != nil {
		return nil, err
	}
	return finalize(ctx, pol, root, arcs, cut, reg)
}

func applyCombine(pol policy.Policy, op policy.BinOp) combineFunc {
	return func(lowOps, highOps []ptr.Ptr) (branchResult, branchResult) {
		return applyPair(pol, op, lowOps[0], lowOps[1]), applyPair(pol, op, highOps[0], highOps[1])
	}
}

// applyPair resolves a single (a, b) pair of cofactors for a binary
// operator, or reports that it is not yet resolvable (both operands are
// still internal with no determining sink).
func applyPair(pol policy.Policy, op policy.BinOp, a, b ptr.Ptr) branchResult {
	if ptr.IsSink(a) {
		v := ptr.Value(a)
		if r, ok := pol.CanLeftShortcut(op, v); ok {
			return sinkResult(r)
		}
		if pol.IsLeftIrrelevant(op, v) {
			return passthrough(1, b)
		}
	}
	if ptr.IsSink(b) {
		v := ptr.Value(b)
		if r, ok := pol.CanRightShortcut(op, v); ok {
			return sinkResult(r)
		}
		if pol.IsRightIrrelevant(op, v) {
			return passthrough(0, a)
		}
	}
	if ptr.IsSink(a) && ptr.IsSink(b) {
		return sinkResult(ptr.MakeSink(policy.Apply(op, ptr.Value(a), ptr.Value(b))))
	}
	return pending()
}

// finalize feeds a traversal's arc stream through reduce.Reduce to produce
// a canonical result, short-circuiting when the whole computation already
// resolved to a bare root with no arcs at all.
func finalize(ctx context.Context, pol policy.Policy, root ptr.Ptr, arcs []reduce.Arc, cut int, reg *stats.Registry) (*Result, error) {
	if reg != nil {
		reg.ObserveMax1LevelCut(int64(cut))
		reg.IncOperations()
	}
	if len(arcs) == 0 {
		out := &reduce.Output{Roots: []ptr.Ptr{root}}
		if ptr.IsSink(root) {
			v := ptr.Value(root)
			out.SingleSink = &v
		}
		return &Result{File: out, Root: root, Max1LevelCut: cut}, nil
	}
	s, cleanup, err := newArcSource(arcs)
	if err != nil {
		return nil, err
	}
	defer cleanup()
	out, err := reduce.Reduce(ctx, pol, s, []ptr.Ptr{root}, reg)
	if err != nil {
		return nil, err
	}
	return &Result{File: out, Root: out.Roots[0], Max1LevelCut: cut}, nil
}
