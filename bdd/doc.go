// Package bdd is the user-facing handle type and operation set spec_FULL.md
// §4.G/§6 describe: constructors, negation, the binary/ternary operators,
// quantification and substitution, and the counting/satisfaction queries,
// all built on top of product and reduce rather than re-implementing any
// graph algorithm of their own.
//
// A Handle is deliberately a small value type — a shared node-file pointer
// plus a negate flag — so that Not and copying a Handle around are both
// O(1), the same "cheap to pass by value, expensive only to build" shape
// the teacher's own small value types (ptr.Ptr, matrix coordinates) use.
package bdd

import (
	"errors"

	"github.com/adiar-go/adiar/stats"
)

// ErrNotImplemented is returned by Reorder, which spec_FULL.md §4.G keeps
// as a named entry point for an intentionally unimplemented operation.
var ErrNotImplemented = errors.New("bdd: not implemented")

// ErrCountOverflow is returned by the counting queries when the true
// result does not fit in 64 bits, per spec_FULL.md §7's "arithmetic
// overflow in counters" error kind. The partial computation is discarded.
var ErrCountOverflow = errors.New("bdd: count overflow")

// ErrUnsatisfiable is returned by SatMin/SatMax when the handle has no
// satisfying assignment at all.
var ErrUnsatisfiable = errors.New("bdd: no satisfying assignment")

// Stats, if non-nil, receives advisory counters from every product
// construction and reduce pass this package runs — the same pattern
// internal/diag uses for its package-level Writer vars: a var a caller can
// point at their own *stats.Registry, left nil by default.
var Stats *stats.Registry
