package policy

import "github.com/adiar-go/adiar/ptr"

// BDD is the reduced-ordered-BDD policy: rule 1 suppresses a node whose
// children are equal, per spec_FULL.md §4.F.
type BDD struct{}

// ReductionRule returns low iff low == high, else uid — Bryant's rule 1.
func (BDD) ReductionRule(uid, low, high ptr.Ptr) ptr.Ptr {
	if ptr.Equal(low, high) {
		return low
	}
	return uid
}

// ReductionRuleInv reconstructs the (low, high) pair a suppressed BDD node
// implies: both children equal the surviving child.
func (BDD) ReductionRuleInv(child ptr.Ptr) (ptr.Ptr, ptr.Ptr) { return child, child }

// ComputeCofactor is the identity for BDD: a variable absent from a
// function's support simply has low == high == the passed-through value,
// which is already what the caller computed.
func (BDD) ComputeCofactor(_ bool, low, high ptr.Ptr) (ptr.Ptr, ptr.Ptr) { return low, high }

func (BDD) CanLeftShortcut(op BinOp, v bool) (ptr.Ptr, bool) {
	switch op {
	case And:
		if !v {
			return ptr.MakeSink(false), true
		}
	case Or:
		if v {
			return ptr.MakeSink(true), true
		}
	case Nand:
		if !v {
			return ptr.MakeSink(true), true
		}
	case Nor:
		if v {
			return ptr.MakeSink(false), true
		}
	case Imp: // a -> b == !a || b
		if !v {
			return ptr.MakeSink(true), true
		}
	case ImpBy: // a || !b
		if v {
			return ptr.MakeSink(true), true
		}
	case Diff: // a && !b
		if !v {
			return ptr.MakeSink(false), true
		}
	case Less: // !a && b
		if v {
			return ptr.MakeSink(false), true
		}
	}
	return ptr.Nil, false
}

func (BDD) CanRightShortcut(op BinOp, v bool) (ptr.Ptr, bool) {
	switch op {
	case And:
		if !v {
			return ptr.MakeSink(false), true
		}
	case Or:
		if v {
			return ptr.MakeSink(true), true
		}
	case Nand:
		if !v {
			return ptr.MakeSink(true), true
		}
	case Nor:
		if v {
			return ptr.MakeSink(false), true
		}
	case Imp: // !a || b
		if v {
			return ptr.MakeSink(true), true
		}
	case ImpBy: // a || !b
		if !v {
			return ptr.MakeSink(true), true
		}
	case Diff: // a && !b
		if v {
			return ptr.MakeSink(false), true
		}
	case Less: // !a && b
		if !v {
			return ptr.MakeSink(false), true
		}
	}
	return ptr.Nil, false
}

func (BDD) IsLeftIrrelevant(op BinOp, v bool) bool {
	switch op {
	case And:
		return v
	case Or:
		return !v
	case Xor:
		return !v
	case Xnor:
		return v
	case Imp:
		return v
	case Less:
		return !v
	default:
		return false
	}
}

func (BDD) IsRightIrrelevant(op BinOp, v bool) bool {
	switch op {
	case And:
		return v
	case Or:
		return !v
	case Xor:
		return !v
	case Xnor:
		return v
	case ImpBy:
		return v
	case Diff:
		return !v
	default:
		return false
	}
}

var _ Policy = BDD{}
