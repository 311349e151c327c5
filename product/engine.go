package product

import (
	"context"
	"encoding/binary"
	"fmt"

	"github.com/adiar-go/adiar/lpq"
	"github.com/adiar-go/adiar/ptr"
	"github.com/adiar-go/adiar/reduce"
)

// operand is one input's read-only view during a product traversal: an
// index from uid to node plus the negate flag applied to any sink the
// traversal reads, per the complemented-edge convention spec_FULL.md §4.G
// describes for bdd.Handle.
type operand struct {
	idx    map[ptr.Ptr]reduce.Node
	negate bool
}

func newOperand(o Operand) operand {
	return operand{idx: indexOf(o.File), negate: o.Negate}
}

func (o operand) negateSink(t ptr.Ptr) ptr.Ptr {
	if o.negate && ptr.IsSink(t) {
		return ptr.MakeSink(!ptr.Value(t))
	}
	return t
}

// cofactor returns (low, high) for operand pointer t restricted to level:
// if t is a sink or lives deeper than level, both cofactors equal t (the
// variable at level is simply absent from t's support); otherwise the
// node's own children are used.
func (o operand) cofactor(t ptr.Ptr, level int) (low, high ptr.Ptr) {
	if ptr.IsSink(t) || ptr.Level(t) > level {
		v := o.negateSink(t)
		return v, v
	}
	n := o.idx[t]
	return o.negateSink(n.Low), o.negateSink(n.High)
}

// request is one pending unit of work in the traversal's LPQ: Parent is
// the output uid this request's result feeds into (ptr.Nil for the final
// root), High selects which of parent's two slots, and Ops holds the
// current per-operand pointers. Fields are exported so gob (via
// lpq's store.FileStore-backed overflow spill) can actually serialize a
// request — an all-unexported struct has nothing for gob to encode.
type request struct {
	Parent ptr.Ptr
	High   bool
	Ops    []ptr.Ptr
}

func levelOfRequest(r request) int {
	best := ptr.MaxLevel + 1
	for _, o := range r.Ops {
		if ptr.IsInternal(o) && ptr.Level(o) < best {
			best = ptr.Level(o)
		}
	}
	return best
}

func lessRequest(a, b request) bool {
	for i := range a.Ops {
		if !ptr.Equal(a.Ops[i], b.Ops[i]) {
			return ptr.Less(a.Ops[i], b.Ops[i])
		}
	}
	return ptr.Less(a.Parent, b.Parent)
}

func groupKey(ops []ptr.Ptr) string {
	buf := make([]byte, 0, len(ops)*8)
	for _, o := range ops {
		buf = binary.BigEndian.AppendUint64(buf, uint64(o))
	}
	return string(buf)
}

// group collects every pending request sharing the same operand tuple at
// the current level, so they share exactly one output node (or one
// suppression result) instead of duplicating work per incoming arc.
type group struct {
	ops     []ptr.Ptr
	members []request
}

// branchResult is what combine decides for one child slot (low or high):
// either it is not yet resolved (recurse with the cofactor tuple the
// engine already computed), or it resolves to a plain output-namespace
// sink (operandIdx < 0), or it passes through another operand's subgraph
// unchanged (operandIdx selects which operand, ptr is that operand's own
// pointer and must be imported before use).
type branchResult struct {
	done       bool
	operandIdx int
	ptr        ptr.Ptr
}

func pending() branchResult { return branchResult{done: false} }
func sinkResult(p ptr.Ptr) branchResult {
	return branchResult{done: true, operandIdx: -1, ptr: p}
}
func passthrough(operandIdx int, p ptr.Ptr) branchResult {
	return branchResult{done: true, operandIdx: operandIdx, ptr: p}
}

// combineFunc decides, given the cofactored low/high tuples for every
// operand, what each child slot resolves to.
type combineFunc func(lowOps, highOps []ptr.Ptr) (low, high branchResult)

type importKey struct {
	operand int
	src     ptr.Ptr
}

// engine runs the shared synchronized traversal of spec_FULL.md §4.E's
// common loop over k operands, producing an arc stream consumable by
// reduce.Reduce.
type engine struct {
	ops     []operand
	combine combineFunc

	q          *lpq.LPQ[request]
	nextID     map[int]int
	arcs       []reduce.Arc
	importMemo map[importKey]ptr.Ptr

	root     ptr.Ptr
	haveRoot bool
}

func newEngine(ops []operand, combine combineFunc) *engine {
	e := &engine{
		ops:        ops,
		combine:    combine,
		nextID:     map[int]int{},
		importMemo: map[importKey]ptr.Ptr{},
	}
	e.q = lpq.New(levelOfRequest, lessRequest)
	return e
}

func (e *engine) alloc(level int) ptr.Ptr {
	id := e.nextID[level]
	e.nextID[level]++
	return ptr.MakeInternal(level, id)
}

func (e *engine) push(r request) { e.q.Push(r) }

// run drives the level-synchronized loop to completion and returns the
// root pointer (already import-resolved if the whole computation collapsed
// to a passthrough or a sink), the emitted arcs, and the LPQ's high-water
// mark (the 1-level cut).
func (e *engine) run(ctx context.Context, rootOps []ptr.Ptr) (ptr.Ptr, []reduce.Arc, int, error) {
	defer func() { _ = e.q.Close() }()
	e.push(request{Parent: ptr.Nil, Ops: rootOps})

	for !e.q.Empty() {
		if err := ctx.Err(); err != nil {
			return ptr.Nil, nil, 0, fmt.Errorf("%w: %v", ErrCanceled, err)
		}
		e.q.SetupNextLevel()
		level := e.q.CurrentLevel()

		groups := map[string]*group{}
		var order []string
		for e.q.CanPull() {
			r, _ := e.q.Pull()
			key := groupKey(r.Ops)
			g, ok := groups[key]
			if !ok {
				g = &group{ops: r.Ops}
				groups[key] = g
				order = append(order, key)
			}
			g.members = append(g.members, r)
		}

		for _, key := range order {
			e.resolveGroup(level, groups[key])
		}
	}

	if !e.haveRoot {
		e.root = ptr.Nil
	}
	return e.root, e.arcs, e.q.MaxSize(), nil
}

func (e *engine) resolveGroup(level int, g *group) {
	lowOps := make([]ptr.Ptr, len(g.ops))
	highOps := make([]ptr.Ptr, len(g.ops))
	for i, o := range g.ops {
		lo, hi := e.ops[i].cofactor(o, level)
		lowOps[i], highOps[i] = lo, hi
	}

	lowBranch, highBranch := e.combine(lowOps, highOps)

	var finalLow, finalHigh ptr.Ptr
	if lowBranch.done {
		finalLow = e.resolveBranch(lowBranch)
	}
	if highBranch.done {
		finalHigh = e.resolveBranch(highBranch)
	}

	if lowBranch.done && highBranch.done && ptr.Equal(finalLow, finalHigh) {
		e.finish(g, finalLow)
		return
	}

	newUID := e.alloc(level)
	e.finish(g, newUID)

	if lowBranch.done {
		e.arcs = append(e.arcs, reduce.Arc{Parent: newUID, High: false, Child: finalLow})
	} else {
		e.push(request{Parent: newUID, High: false, Ops: lowOps})
	}
	if highBranch.done {
		e.arcs = append(e.arcs, reduce.Arc{Parent: newUID, High: true, Child: finalHigh})
	} else {
		e.push(request{Parent: newUID, High: true, Ops: highOps})
	}
}

func (e *engine) resolveBranch(b branchResult) ptr.Ptr {
	if b.operandIdx < 0 {
		return b.ptr
	}
	return e.importSubgraph(b.operandIdx, b.ptr)
}

func (e *engine) finish(g *group, result ptr.Ptr) {
	for _, m := range g.members {
		if ptr.IsNil(m.Parent) {
			e.root, e.haveRoot = result, true
			continue
		}
		e.arcs = append(e.arcs, reduce.Arc{Parent: m.Parent, High: m.High, Child: result})
	}
}

// importSubgraph copies operand idx's subgraph rooted at src into the
// output arc stream unchanged, used whenever a policy's irrelevant-operand
// rule passes another operand's structure through as-is (e.g. OR with a
// false left operand returns the right operand verbatim). This is a plain
// recursive copy rather than a level-synchronized one: the source subgraph
// is already finite and already reduced, so no cross-operand
// synchronization is needed, only per-operand memoization to avoid
// revisiting shared nodes. src is a cofactor as operand.cofactor returns
// it, so a sink src already carries the operand's negate flag; children
// read from the operand's own nodes are resolved here, once.
func (e *engine) importSubgraph(operandIdx int, src ptr.Ptr) ptr.Ptr {
	o := e.ops[operandIdx]
	if ptr.IsSink(src) {
		return src
	}
	key := importKey{operand: operandIdx, src: src}
	if existing, ok := e.importMemo[key]; ok {
		return existing
	}
	n := o.idx[src]
	newUID := e.alloc(ptr.Level(src))
	e.importMemo[key] = newUID
	lowChild := e.importSubgraph(operandIdx, o.negateSink(n.Low))
	highChild := e.importSubgraph(operandIdx, o.negateSink(n.High))
	e.arcs = append(e.arcs, reduce.Arc{Parent: newUID, High: false, Child: lowChild})
	e.arcs = append(e.arcs, reduce.Arc{Parent: newUID, High: true, Child: highChild})
	return newUID
}
