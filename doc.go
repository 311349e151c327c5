// Package adiar is an external-memory binary/zero-suppressed decision
// diagram engine: a tagged-pointer handle type (bdd) backed by a
// levelized-priority-queue product construction (product) and a
// bottom-up canonicalizing reduce sweep (reduce), parameterized over the
// decision-diagram family by a small policy interface (policy).
//
// Start with package bdd — it is the only package most callers need:
//
//	x0, x1 := bdd.Variable(0), bdd.Variable(1)
//	and, err := x0.And(ctx, x1)
//	sat, err := and.SatCount(2)
//
// The lower layers (ptr, store, lpq, reduce, product, policy, stats) are
// the engine bdd.Handle is built on; they are exported for callers who
// want to drive product construction directly, e.g. over a ZDD policy.
package adiar
