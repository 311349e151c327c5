package product

import (
	"context"

	"github.com/adiar-go/adiar/policy"
	"github.com/adiar-go/adiar/ptr"
	"github.com/adiar-go/adiar/reduce"
	"github.com/adiar-go/adiar/stats"
)

// Assignment fixes variable Level to Value for Substitute — the "side
// stream of (level, value) pairs" spec_FULL.md §4.E describes.
type Assignment struct {
	Level int
	Value bool
}

// Substitute walks a, and at every level named in assignment skips
// straight to the assigned branch instead of emitting a node — the
// generalization of Restrict/Cofactor to many simultaneous levels.
func Substitute(ctx context.Context, pol policy.Policy, a Operand, assignment []Assignment, reg *stats.Registry) (*Result, error) {
	assigned := make(map[int]bool, len(assignment))
	for _, asn := range assignment {
		assigned[asn.Level] = asn.Value
	}
	s := &substituter{
		idx:      indexOf(a.File),
		negate:   a.Negate,
		assigned: assigned,
		memo:     map[ptr.Ptr]ptr.Ptr{},
	}
	root, err := s.walk(ctx, a.Root)
	if err != nil {
		return nil, err
	}
	return finalize(ctx, pol, root, s.arcs, 0, reg)
}

// Restrict fixes a single variable to value — Substitute with one
// assignment. Cofactor is the same operation under a different name spec
// §4.E uses interchangeably.
func Restrict(ctx context.Context, pol policy.Policy, a Operand, level int, value bool, reg *stats.Registry) (*Result, error) {
	return Substitute(ctx, pol, a, []Assignment{{Level: level, Value: value}}, reg)
}

type substituter struct {
	idx      map[ptr.Ptr]reduce.Node
	negate   bool
	assigned map[int]bool
	memo     map[ptr.Ptr]ptr.Ptr
	arcs     []reduce.Arc
	next     int
}

func (s *substituter) resolveSink(t ptr.Ptr) ptr.Ptr {
	if s.negate && ptr.IsSink(t) {
		return ptr.MakeSink(!ptr.Value(t))
	}
	return t
}

func (s *substituter) walk(ctx context.Context, t ptr.Ptr) (ptr.Ptr, error) {
	if err := ctx.Err(); err != nil {
		return ptr.Nil, err
	}
	if ptr.IsSink(t) {
		return s.resolveSink(t), nil
	}

	if value, ok := s.assigned[ptr.Level(t)]; ok {
		n := s.idx[t]
		if value {
			return s.walk(ctx, n.High)
		}
		return s.walk(ctx, n.Low)
	}

	if existing, ok := s.memo[t]; ok {
		return existing, nil
	}
	n := s.idx[t]
	low, err := s.walk(ctx, n.Low)
	if err != nil {
		return ptr.Nil, err
	}
	high, err := s.walk(ctx, n.High)
	if err != nil {
		return ptr.Nil, err
	}

	var result ptr.Ptr
	if ptr.Equal(low, high) {
		result = low
	} else {
		uid := ptr.MakeInternal(ptr.Level(t), s.next)
		s.next++
		s.arcs = append(s.arcs, reduce.Arc{Parent: uid, High: false, Child: low})
		s.arcs = append(s.arcs, reduce.Arc{Parent: uid, High: true, Child: high})
		result = uid
	}
	s.memo[t] = result
	return result, nil
}
