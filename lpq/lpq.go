package lpq

import (
	"fmt"
	"sort"
)

// WindowSize is the small fixed number of near-future levels an LPQ
// absorbs into in-memory buckets before overflowing to the far store, per
// spec_FULL.md §4.C ("a small fixed number of 'near' future levels"). The
// far store itself starts as an in-memory heap and spills to an external
// store.Store[R] run past overflowSpillThreshold; see overflow.go.
const WindowSize = 8

// LevelOf projects a request onto its target level.
type LevelOf[R any] func(r R) int

// Less orders two requests that share a target level (ascending by the
// target pointer, in the caller's domain).
type Less[R any] func(a, b R) bool

// overflowItem pairs a request with its level so the overflow heap can
// order by (level, Less) without re-deriving the level on every
// comparison. Fields are exported so gob (via the store.FileStore-backed
// spill path in overflow.go) can actually serialize one.
type overflowItem[R any] struct {
	Level int
	Rec   R
}

// bucket is one near-level slot: either inactive, or actively representing
// exactly one target level.
type bucket[R any] struct {
	active bool
	level  int
	items  *genHeap[R]
}

// LPQ is a levelized priority queue over requests of type R.
type LPQ[R any] struct {
	levelOf LevelOf[R]
	less    Less[R]

	near     [WindowSize]bucket[R]
	overflow *overflowStore[R]

	current    int
	hasCurrent bool

	metaLevels []int // sorted, deduplicated union of hooked meta-stream levels
	maxSize    int
}

// New constructs an empty LPQ. levelOf and less must be non-nil.
func New[R any](levelOf LevelOf[R], less Less[R]) *LPQ[R] {
	if levelOf == nil || less == nil {
		panic("lpq: levelOf and less must both be non-nil")
	}
	q := &LPQ[R]{
		levelOf: levelOf,
		less:    less,
	}
	q.overflow = newOverflowStore(func(a, b overflowItem[R]) bool {
		if a.Level != b.Level {
			return a.Level < b.Level
		}
		return less(a.Rec, b.Rec)
	})
	return q
}

// Close releases any external storage the overflow side of the LPQ has
// spilled to. Safe to call even if the LPQ never spilled.
func (q *LPQ[R]) Close() error { return q.overflow.close() }

// HookMetaStream unions levels into the LPQ's known schedule of near
// levels, harvested from an input graph's level-info sub-stream per
// spec_FULL.md §4.C. It may be called more than once (once per input, for
// a multi-source LPQ); the union of all hooked levels drives which levels
// get a pre-activated near bucket. Must be called before the first Push.
func (q *LPQ[R]) HookMetaStream(levels []int) {
	seen := make(map[int]struct{}, len(q.metaLevels)+len(levels))
	for _, l := range q.metaLevels {
		seen[l] = struct{}{}
	}
	for _, l := range levels {
		seen[l] = struct{}{}
	}
	merged := make([]int, 0, len(seen))
	for l := range seen {
		merged = append(merged, l)
	}
	sort.Ints(merged)
	q.metaLevels = merged
	q.activateFromMeta()
}

// activateFromMeta fills any inactive bucket slots with the smallest
// hooked levels that are >= current and not already represented.
func (q *LPQ[R]) activateFromMeta() {
	represented := map[int]bool{}
	for i := range q.near {
		if q.near[i].active {
			represented[q.near[i].level] = true
		}
	}
	for _, level := range q.metaLevels {
		if level < q.current || represented[level] {
			continue
		}
		slot := q.freeSlot()
		if slot < 0 {
			return
		}
		q.activate(slot, level)
		represented[level] = true
	}
}

func (q *LPQ[R]) freeSlot() int {
	for i := range q.near {
		if !q.near[i].active {
			return i
		}
	}
	return -1
}

func (q *LPQ[R]) activate(slot, level int) {
	q.near[slot] = bucket[R]{
		active: true,
		level:  level,
		items:  newGenHeap(q.less),
	}
}

func (q *LPQ[R]) bucketFor(level int) int {
	for i := range q.near {
		if q.near[i].active && q.near[i].level == level {
			return i
		}
	}
	return -1
}

func (q *LPQ[R]) totalSize() int {
	total := q.overflow.Len()
	for i := range q.near {
		if q.near[i].active {
			total += q.near[i].items.Len()
		}
	}
	return total
}

func (q *LPQ[R]) observeSize() {
	if t := q.totalSize(); t > q.maxSize {
		q.maxSize = t
	}
}

// Push inserts r. Panics (a fatal contract violation, per spec_FULL.md §7)
// if the LPQ has a current level and level(r) < CurrentLevel().
func (q *LPQ[R]) Push(r R) {
	level := q.levelOf(r)
	if q.hasCurrent && level < q.current {
		panic(fmt.Sprintf("lpq: push at level %d below current level %d", level, q.current))
	}

	if i := q.bucketFor(level); i >= 0 {
		q.near[i].items.pushItem(r)
		q.observeSize()
		return
	}
	if slot := q.freeSlot(); slot >= 0 {
		q.activate(slot, level)
		q.near[slot].items.pushItem(r)
		q.observeSize()
		return
	}
	q.overflow.pushItem(overflowItem[R]{Level: level, Rec: r})
	q.observeSize()
}

// CurrentLevel returns the level LPQ is positioned at. Valid only once
// SetupNextLevel has established a level; Push does not set it.
func (q *LPQ[R]) CurrentLevel() int { return q.current }

// Empty reports whether the LPQ holds no pending requests at all, at any
// level.
func (q *LPQ[R]) Empty() bool { return q.totalSize() == 0 }

// EmptyLevel reports whether there are no pending requests at the current
// level specifically (there may still be requests at deeper levels).
func (q *LPQ[R]) EmptyLevel() bool {
	if i := q.bucketFor(q.current); i >= 0 {
		return q.near[i].items.Len() == 0
	}
	if v, ok := q.overflow.peek(); ok {
		return v.Level != q.current
	}
	return true
}

// CanPull reports whether Top/Pull would succeed right now.
func (q *LPQ[R]) CanPull() bool { return !q.EmptyLevel() }

// Top returns, without removing, the smallest pending request at the
// current level.
func (q *LPQ[R]) Top() (R, bool) {
	if i := q.bucketFor(q.current); i >= 0 {
		return q.near[i].items.peek()
	}
	var zero R
	if v, ok := q.overflow.peek(); ok && v.Level == q.current {
		return v.Rec, true
	}
	return zero, false
}

// Pull removes and returns the smallest pending request at the current
// level. Pulls within a level are monotone non-decreasing, per
// spec_FULL.md §4.C.
func (q *LPQ[R]) Pull() (R, bool) {
	if i := q.bucketFor(q.current); i >= 0 {
		return q.near[i].items.popItem()
	}
	var zero R
	if v, ok := q.overflow.peek(); ok && v.Level == q.current {
		popped, _ := q.overflow.popItem()
		return popped.Rec, true
	}
	return zero, false
}

// MaxSize reports the maximum simultaneous size this LPQ has held, for
// 1-level-cut bookkeeping per spec_FULL.md §4.C/§4.E.
func (q *LPQ[R]) MaxSize() int { return q.maxSize }

// SetupNextLevel advances CurrentLevel to the smallest pending level
// across all buckets and the overflow heap, then refills empty bucket
// slots by peeling the smallest levels off the overflow. Must be called
// only when EmptyLevel() is true (spec_FULL.md §4.C: "must be called on
// empty-at-level"); calling it otherwise is a contract violation.
func (q *LPQ[R]) SetupNextLevel() {
	if q.hasCurrent && !q.EmptyLevel() {
		panic("lpq: SetupNextLevel called while the current level still has pending requests")
	}

	// Free the (now-empty) bucket for the outgoing current level, if any,
	// so it can be reused immediately below. Before the first
	// SetupNextLevel call there is no outgoing level to free.
	if q.hasCurrent {
		if i := q.bucketFor(q.current); i >= 0 && q.near[i].items.Len() == 0 {
			q.near[i] = bucket[R]{}
		}
	}

	next, found := q.smallestPendingLevel()
	if !found {
		// Nothing left at all; leave current where it is but note there
		// is no current level to speak of until the next Push.
		return
	}
	q.current = next
	q.hasCurrent = true

	// Ensure the new current level has an active bucket, then refill any
	// other free slots from the overflow and from the meta schedule.
	if q.bucketFor(q.current) < 0 {
		if slot := q.freeSlot(); slot >= 0 {
			q.activate(slot, q.current)
		}
	}
	q.drainOverflowInto(q.current)
	q.refillFromOverflow()
	q.activateFromMeta()
}

// drainOverflowInto moves every overflow item at exactly the given level
// into that level's (now-guaranteed-active) bucket.
func (q *LPQ[R]) drainOverflowInto(level int) {
	i := q.bucketFor(level)
	if i < 0 {
		return
	}
	for {
		v, ok := q.overflow.peek()
		if !ok || v.Level != level {
			return
		}
		popped, _ := q.overflow.popItem()
		q.near[i].items.pushItem(popped.Rec)
	}
}

// refillFromOverflow activates free bucket slots for the smallest distinct
// levels remaining in the overflow heap, draining each into its new
// bucket — the "peel the minima off the overflow store" step of
// spec_FULL.md §4.C.
func (q *LPQ[R]) refillFromOverflow() {
	for {
		slot := q.freeSlot()
		if slot < 0 {
			return
		}
		v, ok := q.overflow.peek()
		if !ok {
			return
		}
		q.activate(slot, v.Level)
		q.drainOverflowInto(v.Level)
	}
}

// smallestPendingLevel scans active buckets and the overflow heap for the
// smallest level holding at least one request.
func (q *LPQ[R]) smallestPendingLevel() (int, bool) {
	best := 0
	found := false
	for i := range q.near {
		if q.near[i].active && q.near[i].items.Len() > 0 {
			if !found || q.near[i].level < best {
				best = q.near[i].level
				found = true
			}
		}
	}
	if v, ok := q.overflow.peek(); ok {
		if !found || v.Level < best {
			best = v.Level
			found = true
		}
	}
	return best, found
}
