package bdd

import (
	"github.com/adiar-go/adiar/policy"
	"github.com/adiar-go/adiar/product"
	"github.com/adiar-go/adiar/ptr"
	"github.com/adiar-go/adiar/reduce"
)

// defaultPolicy is the reduction-rule/shortcut contract every bdd.Handle
// operation runs under. ZDD exists as a second instance of policy.Policy
// proving the core is family-generic, but this package's own constructors
// and operators only ever hand out BDD handles.
var defaultPolicy = policy.BDD{}

// Handle holds a shared reference to an immutable, already-reduced node
// file plus a negate flag, per spec_FULL.md §4.G. Two handles over the
// same file with the same flag are the same diagram; Not flips the flag
// without touching the file at all.
type Handle struct {
	file   *reduce.Output
	root   ptr.Ptr
	negate bool
}

// Sink returns the constant-value diagram.
func Sink(value bool) Handle {
	v := value
	return Handle{file: &reduce.Output{SingleSink: &v}, root: ptr.MakeSink(value)}
}

// Variable returns the single-node diagram for the boolean variable at
// level: low is the false sink, high is the true sink.
func Variable(level int) Handle {
	uid := ptr.MakeInternal(level, 0)
	return Handle{
		file: &reduce.Output{
			Nodes: []reduce.Node{{UID: uid, Low: ptr.MakeSink(false), High: ptr.MakeSink(true)}},
			Level: []reduce.LevelInfo{{Level: level, Width: 1}},
		},
		root: uid,
	}
}

// Not flips h's negate flag — O(1), no traversal of the underlying file.
func (h Handle) Not() Handle {
	return Handle{file: h.file, root: h.root, negate: !h.negate}
}

// Equal reports whether h and other denote the same diagram by the cheap
// pointer-identity-and-flag rule spec_FULL.md §4.G's Equal uses: same
// shared file, same root, same negate flag. Two handles that happen to be
// structurally isomorphic but were built independently are not Equal —
// use DeepEqual for that.
func (h Handle) Equal(other Handle) bool {
	return h.file == other.file && ptr.Equal(h.root, other.root) && h.negate == other.negate
}

// DeepEqual reports whether h and other denote the same function, even if
// built from independent node files. It first checks cheap invariants
// (node count, variable count, and the resolved true/false sink-edge
// counts) and only falls back to a streaming structural comparison if
// those agree — canonicalization guarantees that two diagrams computing
// the same function get identical (low, high) pairs at every surviving
// level, so the fallback is a plain pairwise node comparison, not a
// general graph-isomorphism search.
func (h Handle) DeepEqual(other Handle) bool {
	if h.Equal(other) {
		return true
	}
	if len(h.file.Nodes) != len(other.file.Nodes) || len(h.file.Level) != len(other.file.Level) {
		return false
	}
	for i := range h.file.Level {
		if h.file.Level[i] != other.file.Level[i] {
			return false
		}
	}
	ht, hf := h.sinkEdgeCounts()
	ot, of := other.sinkEdgeCounts()
	if ht != ot || hf != of {
		return false
	}
	return h.streamEqual(other)
}

func (h Handle) sinkEdgeCounts() (trueEdges, falseEdges int) {
	for _, n := range h.file.Nodes {
		for _, c := range [2]ptr.Ptr{n.Low, n.High} {
			if !ptr.IsSink(c) {
				continue
			}
			if h.resolve(c) == ptr.MakeSink(true) {
				trueEdges++
			} else {
				falseEdges++
			}
		}
	}
	return
}

func (h Handle) streamEqual(other Handle) bool {
	for i := range h.file.Nodes {
		a, b := h.file.Nodes[i], other.file.Nodes[i]
		if !ptr.Equal(a.UID, b.UID) {
			return false
		}
		if !ptr.Equal(h.resolve(a.Low), other.resolve(b.Low)) {
			return false
		}
		if !ptr.Equal(h.resolve(a.High), other.resolve(b.High)) {
			return false
		}
	}
	return ptr.Equal(h.resolve(h.root), other.resolve(other.root))
}

// resolve applies h's negate flag the way NegatingReader does: XOR sinks
// on the fly, leave internal pointers alone.
func (h Handle) resolve(p ptr.Ptr) ptr.Ptr {
	if h.negate && ptr.IsSink(p) {
		return ptr.MakeSink(!ptr.Value(p))
	}
	return p
}

// NegatingReader iterates over a handle's surviving nodes, presenting
// every Low/High child the way this handle's negate flag would have a
// caller read it — sinks are XORed on the fly, internal pointers pass
// through unchanged. The traversing queries (PathCount, SatCount, SatMin,
// SatMax) and ToGraph build their working index through this reader so
// they never have to special-case the negate flag themselves.
type NegatingReader struct {
	h Handle
	i int
}

// Reader builds a NegatingReader over h.
func (h Handle) Reader() *NegatingReader { return &NegatingReader{h: h} }

// Next returns the next node with Low/High pre-resolved for h's negate
// flag, or ok=false once the stream is exhausted.
func (r *NegatingReader) Next() (n reduce.Node, ok bool) {
	ns := r.h.file.Nodes
	if r.i >= len(ns) {
		return reduce.Node{}, false
	}
	raw := ns[r.i]
	r.i++
	return reduce.Node{UID: raw.UID, Low: r.h.resolve(raw.Low), High: r.h.resolve(raw.High)}, true
}

// resolvedIndex builds a map from uid to a node whose children already
// have h's negate flag resolved, plus h's own resolved root — every query
// below works entirely in this "already resolved" space so it never has
// to think about negate again.
func (h Handle) resolvedIndex() (map[ptr.Ptr]reduce.Node, ptr.Ptr) {
	idx := make(map[ptr.Ptr]reduce.Node, len(h.file.Nodes))
	r := h.Reader()
	for {
		n, ok := r.Next()
		if !ok {
			break
		}
		idx[n.UID] = n
	}
	return idx, h.resolve(h.root)
}

func (h Handle) operand() product.Operand {
	return product.Operand{File: h.file, Root: h.root, Negate: h.negate}
}

func fromResult(r *product.Result) Handle {
	return Handle{file: r.File, root: r.Root, negate: r.Negate}
}
