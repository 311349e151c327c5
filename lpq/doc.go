// Package lpq implements the levelized priority queue (LPQ): the
// level-synchronous forwarding structure shared by reduce and product
// construction.
//
// An LPQ holds pending "recursion requests" targeted at a level, and
// guarantees that while the consumer is processing level ℓ, it observes
// every request targeted at ℓ exactly once, in ascending order (by the
// caller-supplied Less), and that requests for levels > ℓ are deferred.
// Pushing a request whose level is below the current level is a
// programmer-contract violation and panics — LPQ never recovers from it,
// per spec_FULL.md §7.
//
// Internally, LPQ partitions its contents by target level: a small fixed
// number of "near" buckets (container/heap min-heaps, the same idiom the
// teacher corpus's dijkstra package uses for its frontier) absorb pushes
// for levels expected soon, while everything farther out overflows into a
// store ordered by (level, Less). At a level transition, the queue drains
// the current bucket, promotes the next, and refills empty slots by
// peeling the smallest levels off the overflow — the design spec_FULL.md
// §4.C describes. The overflow buffers requests in an in-memory heap and,
// past a threshold, spills sorted runs to a store.Store (see overflow.go),
// merging the heap and every open run on each read.
//
// LPQ is generic over the element type, the level-projection function, the
// intra-level ordering function, and (conceptually) the backing policy —
// the four axes spec_FULL.md §9 calls out for "priority-queue templating".
package lpq
