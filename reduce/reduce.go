package reduce

import (
	"context"
	"fmt"
	"sort"

	"github.com/adiar-go/adiar/policy"
	"github.com/adiar-go/adiar/ptr"
	"github.com/adiar-go/adiar/stats"
	"github.com/adiar-go/adiar/store"
)

// Arc is one child-slot edge of the unreduced arc file: parent owns the
// low (High==false) or high (High==true) slot, and Child is either a sink
// or a uid that parent's own creator (product construction) had already
// allocated deeper in the diagram.
type Arc struct {
	Parent ptr.Ptr
	High   bool
	Child  ptr.Ptr
}

// Node is one surviving node of the canonical reduced output.
type Node struct {
	UID  ptr.Ptr
	Low  ptr.Ptr
	High ptr.Ptr
}

// LevelInfo records the width of one surviving level, parallel to spec
// §6's node-file level_info sub-stream.
type LevelInfo struct {
	Level int
	Width int
}

// Output is the canonical reduced node file Reduce produces.
type Output struct {
	// Nodes is ordered by descending level and, within a level, by
	// descending id (the order ids are assigned in), so the root is last.
	Nodes []Node
	Level []LevelInfo
	// Roots holds the final, fully-resolved pointer for each input root,
	// in the same order the caller supplied them.
	Roots []ptr.Ptr
	// SingleSink is non-nil when the whole diagram collapsed to a single
	// sink value and Nodes/Level are empty — spec §4.D's short-circuit.
	SingleSink *bool
}

// Reduce runs the bottom-up sweep described in spec_FULL.md §4.D over
// arcs, under policy pol, counting rule-1/rule-2 removals into reg (may be
// nil to skip instrumentation). roots names the tentative parent uids the
// caller considers output roots; every one of them must appear as a
// Parent somewhere in arcs unless it is already a sink.
//
// ctx is checked only between levels — long sweeps are not cancellable
// mid-level, matching the cancellation granularity spec §5 allows.
func Reduce(ctx context.Context, pol policy.Policy, arcs store.Reader[Arc], roots []ptr.Ptr, reg *stats.Registry) (*Output, error) {
	all, err := drainAll(arcs)
	if err != nil {
		return nil, err
	}

	byParentLevel := map[int][]Arc{}
	levelsSeen := map[int]struct{}{}
	for _, a := range all {
		if ptr.IsInternal(a.Child) && ptr.Level(a.Parent) >= ptr.Level(a.Child) {
			return nil, fmt.Errorf("%w: parent %s child %s", ErrForwardArc, a.Parent, a.Child)
		}
		lvl := ptr.Level(a.Parent)
		byParentLevel[lvl] = append(byParentLevel[lvl], a)
		levelsSeen[lvl] = struct{}{}
	}

	levels := make([]int, 0, len(levelsSeen))
	for l := range levelsSeen {
		levels = append(levels, l)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(levels)))

	resolved := make(map[ptr.Ptr]ptr.Ptr, len(all)/2+1)
	out := &Output{}

	for _, lvl := range levels {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		type pending struct {
			uid        ptr.Ptr
			low, high  ptr.Ptr
			haveLow    bool
			haveHigh   bool
		}
		byParent := map[ptr.Ptr]*pending{}
		order := make([]ptr.Ptr, 0, len(byParentLevel[lvl])/2+1)

		for _, a := range byParentLevel[lvl] {
			p, ok := byParent[a.Parent]
			if !ok {
				p = &pending{uid: a.Parent}
				byParent[a.Parent] = p
				order = append(order, a.Parent)
			}

			child := a.Child
			if ptr.IsInternal(child) {
				resolvedChild, ok := resolved[child]
				if !ok {
					return nil, fmt.Errorf("%w: %s", ErrUnresolvedArc, child)
				}
				child = resolvedChild
			}

			if a.High {
				if p.haveHigh {
					return nil, fmt.Errorf("%w: parent %s high slot", ErrDuplicateSource, a.Parent)
				}
				p.high, p.haveHigh = child, true
			} else {
				if p.haveLow {
					return nil, fmt.Errorf("%w: parent %s low slot", ErrDuplicateSource, a.Parent)
				}
				p.low, p.haveLow = child, true
			}
		}

		survivors := make([]*pending, 0, len(order))
		for _, uid := range order {
			p := byParent[uid]
			low, high := pol.ComputeCofactor(true, p.low, p.high)
			canonical := pol.ReductionRule(p.uid, low, high)
			if ptr.Equal(canonical, p.uid) {
				p.low, p.high = low, high
				survivors = append(survivors, p)
				continue
			}
			resolved[p.uid] = canonical
			if reg != nil {
				reg.AddRule1Removed(1)
			}
		}

		sort.Slice(survivors, func(i, j int) bool {
			if !ptr.Equal(survivors[i].low, survivors[j].low) {
				return ptr.Less(survivors[i].low, survivors[j].low)
			}
			return ptr.Less(survivors[i].high, survivors[j].high)
		})

		width := 0
		var prevLow, prevHigh ptr.Ptr
		havePrev := false
		groupStart := 0
		assignGroup := func(start, end, nextID int) {
			canonical := ptr.MakeInternal(lvl, nextID)
			for _, p := range survivors[start:end] {
				resolved[p.uid] = canonical
			}
			out.Nodes = append(out.Nodes, Node{UID: canonical, Low: survivors[start].low, High: survivors[start].high})
		}

		// Assign dense ids descending from width-1, one per distinct
		// (low, high) group, per spec_FULL.md's deterministic tie-break:
		// ascending (low, high) order gets descending ids.
		groups := make([][2]int, 0, len(survivors))
		for i, p := range survivors {
			if havePrev && ptr.Equal(prevLow, p.low) && ptr.Equal(prevHigh, p.high) {
				if reg != nil {
					reg.AddRule2Removed(1)
				}
				continue
			}
			if havePrev {
				groups = append(groups, [2]int{groupStart, i})
			}
			groupStart = i
			prevLow, prevHigh = p.low, p.high
			havePrev = true
		}
		if havePrev {
			groups = append(groups, [2]int{groupStart, len(survivors)})
		}
		width = len(groups)
		nextID := width - 1
		for _, g := range groups {
			assignGroup(g[0], g[1], nextID)
			nextID--
		}

		if width > 0 {
			out.Level = append(out.Level, LevelInfo{Level: lvl, Width: width})
		}
	}

	out.Roots = make([]ptr.Ptr, len(roots))
	for i, r := range roots {
		if ptr.IsSink(r) {
			out.Roots[i] = r
			continue
		}
		final, ok := resolved[r]
		if !ok {
			return nil, fmt.Errorf("%w: root %s", ErrUnresolvedArc, r)
		}
		out.Roots[i] = final
	}

	if len(out.Nodes) == 0 && len(out.Roots) == 1 && ptr.IsSink(out.Roots[0]) {
		v := ptr.Value(out.Roots[0])
		out.SingleSink = &v
	}

	if reg != nil {
		reg.AddNodesEmitted(int64(len(out.Nodes)))
	}

	return out, nil
}

func drainAll(r store.Reader[Arc]) ([]Arc, error) {
	var all []Arc
	for {
		v, ok, err := r.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return all, nil
		}
		all = append(all, v)
	}
}
