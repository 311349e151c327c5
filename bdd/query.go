package bdd

import (
	"github.com/adiar-go/adiar/ptr"
	"github.com/adiar-go/adiar/reduce"
)

// NodeCount returns the number of surviving internal nodes.
func (h Handle) NodeCount() int { return len(h.file.Nodes) }

// VarCount returns the number of distinct variable levels that actually
// survive in h's reduced file.
func (h Handle) VarCount() int { return len(h.file.Level) }

// PathCount returns the number of root-to-leaf paths in the reduced
// graph, counting both true- and false-sink leaves and ignoring skipped
// levels — the structural count spec_FULL.md §8 names, not a weighted
// satisfying-assignment count (see SatCount for that).
func (h Handle) PathCount() (uint64, error) {
	idx, root := h.resolvedIndex()
	return pathCountWalk(root, idx, map[ptr.Ptr]uint64{})
}

func pathCountWalk(p ptr.Ptr, idx map[ptr.Ptr]reduce.Node, memo map[ptr.Ptr]uint64) (uint64, error) {
	if ptr.IsSink(p) {
		return 1, nil
	}
	if v, ok := memo[p]; ok {
		return v, nil
	}
	n := idx[p]
	lowC, err := pathCountWalk(n.Low, idx, memo)
	if err != nil {
		return 0, err
	}
	highC, err := pathCountWalk(n.High, idx, memo)
	if err != nil {
		return 0, err
	}
	sum, err := addOverflow(lowC, highC)
	if err != nil {
		return 0, err
	}
	memo[p] = sum
	return sum, nil
}

// SatCount returns the number of satisfying assignments over totalVars
// variables (levels 0..totalVars-1) — the classical BDD sat-count
// algorithm, weighting each root-to-true-leaf path by 2 raised to the
// number of variables it skips.
func (h Handle) SatCount(totalVars int) (uint64, error) {
	return h.SatCountRange(0, totalVars)
}

// SatCountRange is SatCount generalized to count only over the half-open
// level range [lo, hi) — the second form of SatCount spec_FULL.md §6's
// supplement names alongside the plain total-variable-count form.
func (h Handle) SatCountRange(lo, hi int) (uint64, error) {
	idx, root := h.resolvedIndex()
	return satCountWalk(root, lo, hi, idx, map[satKey]uint64{})
}

type satKey struct {
	p   ptr.Ptr
	lvl int
}

func satCountWalk(p ptr.Ptr, curLevel, totalVars int, idx map[ptr.Ptr]reduce.Node, memo map[satKey]uint64) (uint64, error) {
	if ptr.IsSink(p) {
		if !ptr.Value(p) {
			return 0, nil
		}
		return pow2(totalVars - curLevel)
	}
	key := satKey{p, curLevel}
	if v, ok := memo[key]; ok {
		return v, nil
	}
	n := idx[p]
	l := ptr.Level(p)
	lowCount, err := satCountWalk(n.Low, l+1, totalVars, idx, memo)
	if err != nil {
		return 0, err
	}
	highCount, err := satCountWalk(n.High, l+1, totalVars, idx, memo)
	if err != nil {
		return 0, err
	}
	sum, err := addOverflow(lowCount, highCount)
	if err != nil {
		return 0, err
	}
	factor, err := pow2(l - curLevel)
	if err != nil {
		return 0, err
	}
	result, err := mulOverflow(sum, factor)
	if err != nil {
		return 0, err
	}
	memo[key] = result
	return result, nil
}

// SatMin returns the lexicographically smallest satisfying assignment
// over totalVars variables, preferring false at every variable the
// diagram leaves free. Returns ErrUnsatisfiable if h is never true.
func (h Handle) SatMin(totalVars int) ([]bool, error) {
	return h.satExtreme(totalVars, false)
}

// SatMax returns the lexicographically largest satisfying assignment,
// preferring true at every free variable.
func (h Handle) SatMax(totalVars int) ([]bool, error) {
	return h.satExtreme(totalVars, true)
}

func (h Handle) satExtreme(totalVars int, preferHigh bool) ([]bool, error) {
	idx, root := h.resolvedIndex()
	memo := map[ptr.Ptr]bool{}
	if !anySat(root, idx, memo) {
		return nil, ErrUnsatisfiable
	}

	assign := make([]bool, totalVars)
	cur := root
	level := 0
	for !ptr.IsSink(cur) {
		l := ptr.Level(cur)
		for ; level < l; level++ {
			assign[level] = preferHigh
		}
		n := idx[cur]
		lowSat := anySat(n.Low, idx, memo)
		highSat := anySat(n.High, idx, memo)
		var goHigh bool
		if preferHigh {
			goHigh = highSat
		} else {
			goHigh = !lowSat
		}
		assign[l] = goHigh
		level = l + 1
		if goHigh {
			cur = n.High
		} else {
			cur = n.Low
		}
	}
	for ; level < totalVars; level++ {
		assign[level] = preferHigh
	}
	return assign, nil
}

func anySat(p ptr.Ptr, idx map[ptr.Ptr]reduce.Node, memo map[ptr.Ptr]bool) bool {
	if ptr.IsSink(p) {
		return ptr.Value(p)
	}
	if v, ok := memo[p]; ok {
		return v
	}
	n := idx[p]
	v := anySat(n.Low, idx, memo) || anySat(n.High, idx, memo)
	memo[p] = v
	return v
}

func pow2(e int) (uint64, error) {
	if e < 0 || e >= 64 {
		return 0, ErrCountOverflow
	}
	return uint64(1) << uint(e), nil
}

func addOverflow(a, b uint64) (uint64, error) {
	s := a + b
	if s < a {
		return 0, ErrCountOverflow
	}
	return s, nil
}

func mulOverflow(a, b uint64) (uint64, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	p := a * b
	if p/a != b {
		return 0, ErrCountOverflow
	}
	return p, nil
}
