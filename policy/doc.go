// Package policy defines the reduction-rule and shortcut contract that
// parameterizes product construction (package product) and reduce
// (package reduce) over decision-diagram family: BDD today, with ZDD
// included as a second instance of the same interface to prove the core
// is genuinely policy-generic, per spec_FULL.md §4.F and §1's framing that
// "ZDD variants... reuse the same core via a different policy".
//
// Policy is an ordinary Go interface with two concrete implementations
// (BDD{}, ZDD{}), passed directly to product and reduce rather than looked
// up in a registry. Product and reduce call its methods through the
// interface value (dynamic dispatch, not monomorphized), and the interface
// is not sealed: any type with these methods satisfies it.
package policy

import "github.com/adiar-go/adiar/ptr"

// Policy is the reduction-rule and shortcut contract a decision-diagram
// family supplies to product construction and reduce.
type Policy interface {
	// ReductionRule returns the canonical Ptr a tentative node with the
	// given (low, high) children collapses to, or the node's own uid if
	// it must survive. For BDD this is low iff low==high; for ZDD it is
	// low iff high is the false sink.
	ReductionRule(uid, low, high ptr.Ptr) ptr.Ptr

	// ReductionRuleInv recovers the (low, high) pair implied by a child
	// pointer under this policy's reduction rule. Nothing in product or
	// reduce calls it; Substitute reads the operand's own nodes instead.
	ReductionRuleInv(child ptr.Ptr) (low, high ptr.Ptr)

	// ComputeCofactor lets a policy rewrite (low, high) for a level that
	// is not the current level being processed — ZDD's implicit
	// present/absent variable semantics; BDD returns (low, high)
	// unchanged.
	ComputeCofactor(onCurrentLevel bool, low, high ptr.Ptr) (ptr.Ptr, ptr.Ptr)

	// CanLeftShortcut/CanRightShortcut report whether a sink operand on
	// the left/right determines Apply's result regardless of the other
	// operand, for the given binary operator.
	CanLeftShortcut(op BinOp, sinkValue bool) (result ptr.Ptr, ok bool)
	CanRightShortcut(op BinOp, sinkValue bool) (result ptr.Ptr, ok bool)

	// IsLeftIrrelevant/IsRightIrrelevant report whether a left/right
	// operand that is a sink with the given value is irrelevant to the
	// result, so the result is just the other operand (e.g. OR with a
	// false left operand returns the right operand unchanged).
	IsLeftIrrelevant(op BinOp, sinkValue bool) bool
	IsRightIrrelevant(op BinOp, sinkValue bool) bool
}

// BinOp enumerates the binary operators spec_FULL.md §6 names.
type BinOp int

const (
	And BinOp = iota
	Or
	Xor
	Nand
	Nor
	Xnor
	Imp
	ImpBy
	Diff
	Less
)

// Apply evaluates op on two boolean operands — the truth-table semantics
// every Policy's shortcut predicates must agree with.
func Apply(op BinOp, a, b bool) bool {
	switch op {
	case And:
		return a && b
	case Or:
		return a || b
	case Xor:
		return a != b
	case Nand:
		return !(a && b)
	case Nor:
		return !(a || b)
	case Xnor:
		return a == b
	case Imp:
		return !a || b
	case ImpBy:
		return a || !b
	case Diff:
		return a && !b
	case Less:
		return !a && b
	default:
		panic("policy: unknown BinOp")
	}
}
