// Package ptr implements the bit-packed pointer/sink encoding that underlies
// every node and arc in the adiar-go engine.
//
// A Ptr is a 64-bit tagged value that is either:
//
//   - an internal reference carrying (level, id), with level ∈ [0, MaxLevel]
//     and id ∈ [0, MaxID];
//   - a sink carrying a single boolean payload; sinks compare greater than
//     every internal pointer;
//   - the distinguished value Nil.
//
// Ptr additionally carries a flag bit, used by arcs to mark "this arc is the
// parent's high-child edge" without growing the arc record. The flag bit is
// excluded from the total order: Less and Compare always operate on the
// unflagged value, per the ordering spec_FULL.md §3 requires.
//
// Every exported function here fails only by contract (it panics on a
// malformed Ptr passed where a specific shape is required) and never returns
// a runtime error — the encoding is a closed, internal concern with no user
// input to validate.
package ptr
