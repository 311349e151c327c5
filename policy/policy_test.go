package policy_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/adiar-go/adiar/policy"
	"github.com/adiar-go/adiar/ptr"
)

func TestApplyTruthTables(t *testing.T) {
	cases := []struct {
		op       policy.BinOp
		expected [4]bool // (F,F) (F,T) (T,F) (T,T)
	}{
		{policy.And, [4]bool{false, false, false, true}},
		{policy.Or, [4]bool{false, true, true, true}},
		{policy.Xor, [4]bool{false, true, true, false}},
		{policy.Nand, [4]bool{true, true, true, false}},
		{policy.Nor, [4]bool{true, false, false, false}},
		{policy.Xnor, [4]bool{true, false, false, true}},
		{policy.Imp, [4]bool{true, true, false, true}},
		{policy.ImpBy, [4]bool{true, false, true, true}},
		{policy.Diff, [4]bool{false, false, true, false}},
		{policy.Less, [4]bool{false, true, false, false}},
	}
	inputs := [4][2]bool{{false, false}, {false, true}, {true, false}, {true, true}}
	for _, c := range cases {
		for i, in := range inputs {
			got := policy.Apply(c.op, in[0], in[1])
			require.Equal(t, c.expected[i], got, "op=%v a=%v b=%v", c.op, in[0], in[1])
		}
	}
}

func TestBDDReductionRule(t *testing.T) {
	bdd := policy.BDD{}
	uid := ptr.MakeInternal(0, 0)
	low := ptr.MakeSink(false)
	high := ptr.MakeSink(false)
	require.Equal(t, low, bdd.ReductionRule(uid, low, high))

	high = ptr.MakeSink(true)
	require.Equal(t, uid, bdd.ReductionRule(uid, low, high))
}

func TestZDDReductionRule(t *testing.T) {
	zdd := policy.ZDD{}
	uid := ptr.MakeInternal(0, 0)
	low := ptr.MakeInternal(1, 0)

	require.Equal(t, low, zdd.ReductionRule(uid, low, ptr.MakeSink(false)))
	require.Equal(t, uid, zdd.ReductionRule(uid, low, ptr.MakeSink(true)))
	require.Equal(t, uid, zdd.ReductionRule(uid, low, ptr.MakeInternal(1, 1)))
}

// TestShortcutsAgreeWithApply checks that every (op, side, sinkValue) which
// claims a shortcut produces the same boolean result Apply would, for
// every possible other-operand value.
func TestShortcutsAgreeWithApply(t *testing.T) {
	bdd := policy.BDD{}
	ops := []policy.BinOp{
		policy.And, policy.Or, policy.Xor, policy.Nand, policy.Nor,
		policy.Xnor, policy.Imp, policy.ImpBy, policy.Diff, policy.Less,
	}
	for _, op := range ops {
		for _, v := range []bool{false, true} {
			if result, ok := bdd.CanLeftShortcut(op, v); ok {
				for _, other := range []bool{false, true} {
					want := policy.Apply(op, v, other)
					require.Equal(t, want, ptr.Value(result), "left shortcut op=%v v=%v other=%v", op, v, other)
				}
			}
			if result, ok := bdd.CanRightShortcut(op, v); ok {
				for _, other := range []bool{false, true} {
					want := policy.Apply(op, other, v)
					require.Equal(t, want, ptr.Value(result), "right shortcut op=%v v=%v other=%v", op, v, other)
				}
			}
		}
	}
}

func TestIrrelevantAgreesWithApply(t *testing.T) {
	bdd := policy.BDD{}
	ops := []policy.BinOp{
		policy.And, policy.Or, policy.Xor, policy.Nand, policy.Nor,
		policy.Xnor, policy.Imp, policy.ImpBy, policy.Diff, policy.Less,
	}
	for _, op := range ops {
		for _, v := range []bool{false, true} {
			if bdd.IsLeftIrrelevant(op, v) {
				for _, other := range []bool{false, true} {
					require.Equal(t, other, policy.Apply(op, v, other), "left-irrelevant op=%v v=%v other=%v", op, v, other)
				}
			}
			if bdd.IsRightIrrelevant(op, v) {
				for _, other := range []bool{false, true} {
					require.Equal(t, other, policy.Apply(op, other, v), "right-irrelevant op=%v v=%v other=%v", op, v, other)
				}
			}
		}
	}
}
