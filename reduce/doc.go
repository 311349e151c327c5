// Package reduce implements the single bottom-up sweep that turns an arc
// file emitted by product construction into a canonical reduced node file,
// per spec_FULL.md §4.D: per-level sink-arc and node-arc draining, rule-1
// (redundant-node suppression, with retroactive forwarding of every arc
// still pointing at a suppressed node), rule-2 (duplicate-child merge with
// deterministic id reassignment), level-info emission, and the single-sink
// short-circuit.
//
// The sweep processes levels strictly from deepest to shallowest (largest
// level number to smallest), exactly as spec_FULL.md requires: an arc
// pointing from a shallow parent into a deep child can only be finalized
// once the deep child's own level has already been canonicalized, so by
// construction every Child a level ℓ node references has either already
// been resolved by an earlier loop iteration or is itself a sink.
package reduce

import "errors"

// ErrForwardArc is returned when an arc's parent is not strictly shallower
// than its internal child — a malformed-input failure mode per
// spec_FULL.md §4.D/§7. Reduce never attempts repair.
var ErrForwardArc = errors.New("reduce: arc points from parent to a non-deeper child")

// ErrDuplicateSource is returned when a single parent uid supplies more
// than one arc for the same child slot (low or high).
var ErrDuplicateSource = errors.New("reduce: duplicate arc for the same parent/slot")

// ErrUnresolvedArc is returned when an arc's internal child was never
// itself defined as a parent anywhere in the stream — a dangling
// reference.
var ErrUnresolvedArc = errors.New("reduce: arc targets a child that was never defined")
