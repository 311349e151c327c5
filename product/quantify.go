package product

import (
	"context"

	"github.com/adiar-go/adiar/policy"
	"github.com/adiar-go/adiar/ptr"
	"github.com/adiar-go/adiar/reduce"
	"github.com/adiar-go/adiar/stats"
)

// Quantify eliminates variable level from a, combining its two cofactors
// with op (policy.Or for ∃, policy.And for ∀) at exactly that level and
// leaving every other level untouched. Because this is k=1, there is no
// cross-operand synchronization to drive through an LPQ — the traversal
// is a plain memoized recursive copy, the same shape as
// engine.importSubgraph, specialized to collapse one target level.
func Quantify(ctx context.Context, pol policy.Policy, a Operand, level int, op policy.BinOp, reg *stats.Registry) (*Result, error) {
	q := &quantifier{
		op:     op,
		idx:    indexOf(a.File),
		negate: a.Negate,
		level:  level,
		memo:   map[ptr.Ptr]ptr.Ptr{},
	}
	root, err := q.walk(ctx, a.Root)
	if err != nil {
		return nil, err
	}
	return finalize(ctx, pol, root, q.arcs, 0, reg)
}

type quantifier struct {
	op     policy.BinOp
	idx    map[ptr.Ptr]reduce.Node
	negate bool
	level  int
	memo   map[ptr.Ptr]ptr.Ptr
	arcs   []reduce.Arc
	next   int
}

func (q *quantifier) resolveSink(t ptr.Ptr) ptr.Ptr {
	if q.negate && ptr.IsSink(t) {
		return ptr.MakeSink(!ptr.Value(t))
	}
	return t
}

func (q *quantifier) walk(ctx context.Context, t ptr.Ptr) (ptr.Ptr, error) {
	if err := ctx.Err(); err != nil {
		return ptr.Nil, err
	}
	if ptr.IsSink(t) || ptr.Level(t) > q.level {
		return q.resolveSink(t), nil
	}

	n := q.idx[t]
	low, err := q.walk(ctx, n.Low)
	if err != nil {
		return ptr.Nil, err
	}
	high, err := q.walk(ctx, n.High)
	if err != nil {
		return ptr.Nil, err
	}

	if ptr.Level(t) < q.level {
		return q.emit(t, low, high), nil
	}

	if existing, ok := q.memo[t]; ok {
		return existing, nil
	}
	var result ptr.Ptr
	if ptr.IsSink(low) && ptr.IsSink(high) {
		result = ptr.MakeSink(policy.Apply(q.op, ptr.Value(low), ptr.Value(high)))
	} else {
		result = q.emit(t, low, high)
	}
	q.memo[t] = result
	return result, nil
}

func (q *quantifier) emit(orig, low, high ptr.Ptr) ptr.Ptr {
	uid := ptr.MakeInternal(ptr.Level(orig), q.next)
	q.next++
	q.arcs = append(q.arcs, reduce.Arc{Parent: uid, High: false, Child: low})
	q.arcs = append(q.arcs, reduce.Arc{Parent: uid, High: true, Child: high})
	return uid
}
