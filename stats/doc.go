// Package stats holds the advisory, process-wide counters the engine
// updates while running product construction and reduce passes: node
// counts, rule-1/rule-2 removal counts, and the high-water mark of the
// 1-level cut.
//
// These counters are advisory only, as spec_FULL.md §5 describes. Each
// counter is an atomic.Int64, so a concurrent reader never sees a torn
// value, but updates to different counters are independent and a
// concurrent reader may observe a snapshot that mixes old and new values.
// They are not part of the algorithmic core's correctness — nothing in
// ptr, store, lpq, reduce, product, policy, or bdd reads a stats value back
// to make a decision, aside from the 1-level-cut estimate used to pick a
// store backing, which each call computes fresh rather than trusting a
// prior run's counters.
//
// Registry exposes the counters as Prometheus metrics so a long-running
// process embedding this engine can scrape them the same way the
// ClusterCockpit and network-logistics example services instrument their
// own hot paths.
package stats
