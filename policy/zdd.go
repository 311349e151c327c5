package policy

import "github.com/adiar-go/adiar/ptr"

// ZDD is a second Policy instance proving the product/reduce core is
// genuinely policy-generic (spec_FULL.md §1/§4.F). It reuses BDD's
// shortcut tables unchanged — those operate purely on boolean sink values,
// independent of the reduction rule — and differs only in ReductionRule,
// ReductionRuleInv, and ComputeCofactor, which encode ZDD's
// present/absent-variable semantics. ZDD-specific set operators beyond the
// shared BinOp preset remain out of scope per spec.md §1's Non-goals.
type ZDD struct{}

// ReductionRule returns low iff high is the false sink — Bryant's rule 1
// specialized to ZDD's "variable never selected if its high edge is
// dead" semantics — else uid.
func (ZDD) ReductionRule(uid, low, high ptr.Ptr) ptr.Ptr {
	if ptr.IsSink(high) && !ptr.Value(high) {
		return low
	}
	return uid
}

// ReductionRuleInv reconstructs the (low, high) a suppressed ZDD node
// implies: the surviving child as low, the false sink as high.
func (ZDD) ReductionRuleInv(child ptr.Ptr) (ptr.Ptr, ptr.Ptr) {
	return child, ptr.MakeSink(false)
}

// ComputeCofactor rewrites (low, high) when the variable at this level is
// implicitly absent from the operand (the operand's stream has already
// advanced past this level without a node at it): the high edge — the
// branch that would include this variable — becomes the false sink, since
// a ZDD path that never mentions the variable can never have selected it;
// low passes the value through unchanged.
func (ZDD) ComputeCofactor(onCurrentLevel bool, low, high ptr.Ptr) (ptr.Ptr, ptr.Ptr) {
	if onCurrentLevel {
		return low, high
	}
	return low, ptr.MakeSink(false)
}

func (ZDD) CanLeftShortcut(op BinOp, v bool) (ptr.Ptr, bool)  { return BDD{}.CanLeftShortcut(op, v) }
func (ZDD) CanRightShortcut(op BinOp, v bool) (ptr.Ptr, bool) { return BDD{}.CanRightShortcut(op, v) }
func (ZDD) IsLeftIrrelevant(op BinOp, v bool) bool            { return BDD{}.IsLeftIrrelevant(op, v) }
func (ZDD) IsRightIrrelevant(op BinOp, v bool) bool           { return BDD{}.IsRightIrrelevant(op, v) }

var _ Policy = ZDD{}
