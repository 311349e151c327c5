package bdd_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/adiar-go/adiar/bdd"
	"github.com/adiar-go/adiar/policy"
)

// Scenario 1: x0 AND x1 over vars {0,1}.
func TestScenario1_AndOfTwoVariables(t *testing.T) {
	ctx := context.Background()
	x0, x1 := bdd.Variable(0), bdd.Variable(1)

	h, err := x0.And(ctx, x1)
	require.NoError(t, err)
	require.Equal(t, 2, h.NodeCount())

	sc, err := h.SatCount(2)
	require.NoError(t, err)
	require.Equal(t, uint64(1), sc)
}

// Scenario 2: ite(x0, x1, x2).
func TestScenario2_IteOfThreeVariables(t *testing.T) {
	ctx := context.Background()
	x0, x1, x2 := bdd.Variable(0), bdd.Variable(1), bdd.Variable(2)

	h, err := bdd.Ite(ctx, x0, x1, x2)
	require.NoError(t, err)
	require.Equal(t, 3, h.NodeCount())

	sc, err := h.SatCount(3)
	require.NoError(t, err)
	require.Equal(t, uint64(4), sc)
}

// Scenario 3: restrict the scenario-2 BDD with x0=true; result equals x1.
func TestScenario3_RestrictCollapsesToSingleVariable(t *testing.T) {
	ctx := context.Background()
	x0, x1, x2 := bdd.Variable(0), bdd.Variable(1), bdd.Variable(2)
	ite, err := bdd.Ite(ctx, x0, x1, x2)
	require.NoError(t, err)

	restricted, err := ite.Restrict(ctx, 0, true)
	require.NoError(t, err)
	require.True(t, restricted.DeepEqual(x1))
}

// Scenario 4: exists(x1) over x0 AND x1 equals x0.
func TestScenario4_ExistsOverAndEqualsRemainingVariable(t *testing.T) {
	ctx := context.Background()
	x0, x1 := bdd.Variable(0), bdd.Variable(1)
	and, err := x0.And(ctx, x1)
	require.NoError(t, err)

	existed, err := and.Exists(ctx, 1)
	require.NoError(t, err)
	require.True(t, existed.DeepEqual(x0))
}

// Scenario 5: not(x0 xor x1 xor x2) is true on exactly the even-parity
// assignments — 4 of the 8 possible assignments over 3 variables.
func TestScenario5_NotOfXorParitySatisfiesHalfTheAssignments(t *testing.T) {
	ctx := context.Background()
	x0, x1, x2 := bdd.Variable(0), bdd.Variable(1), bdd.Variable(2)

	xorAll, err := x0.Xor(ctx, x1)
	require.NoError(t, err)
	xorAll, err = xorAll.Xor(ctx, x2)
	require.NoError(t, err)

	notXor := xorAll.Not()
	sc, err := notXor.SatCount(3)
	require.NoError(t, err)
	require.Equal(t, uint64(4), sc)
}

// Scenario 6: sat_min of not(the path x0=F,x1=F,x2=T,x3=T) is the
// all-false assignment.
func TestScenario6_SatMinOfNegatedPathIsAllFalse(t *testing.T) {
	ctx := context.Background()
	x0, x1, x2, x3 := bdd.Variable(0), bdd.Variable(1), bdd.Variable(2), bdd.Variable(3)

	path, err := x0.Not().Apply(ctx, policy.And, x1.Not())
	require.NoError(t, err)
	path, err = path.Apply(ctx, policy.And, x2)
	require.NoError(t, err)
	path, err = path.Apply(ctx, policy.And, x3)
	require.NoError(t, err)

	notPath := path.Not()
	got, err := notPath.SatMin(4)
	require.NoError(t, err)
	require.Equal(t, []bool{false, false, false, false}, got)
}

func TestDoubleNegationRestoresOriginalHandle(t *testing.T) {
	x0 := bdd.Variable(0)
	require.True(t, x0.Equal(x0.Not().Not()))
}

func TestOperatorIdentities(t *testing.T) {
	ctx := context.Background()
	x0, x1 := bdd.Variable(0), bdd.Variable(1)

	andSelf, err := x0.And(ctx, x0)
	require.NoError(t, err)
	require.True(t, andSelf.DeepEqual(x0))

	orFalse, err := x0.Or(ctx, bdd.Sink(false))
	require.NoError(t, err)
	require.True(t, orFalse.DeepEqual(x0))

	xorSelf, err := x0.Xor(ctx, x0)
	require.NoError(t, err)
	require.True(t, xorSelf.DeepEqual(bdd.Sink(false)))

	iteTrue, err := bdd.Ite(ctx, bdd.Sink(true), x0, x1)
	require.NoError(t, err)
	require.True(t, iteTrue.DeepEqual(x0))

	iteSameBranches, err := bdd.Ite(ctx, x1, x0, x0)
	require.NoError(t, err)
	require.True(t, iteSameBranches.DeepEqual(x0))

	iteSinkBranches, err := bdd.Ite(ctx, x0, bdd.Sink(true), bdd.Sink(false))
	require.NoError(t, err)
	require.True(t, iteSinkBranches.DeepEqual(x0))
}

func TestSatCountComplementsOverTheFullSpace(t *testing.T) {
	ctx := context.Background()
	x0, x1, x2 := bdd.Variable(0), bdd.Variable(1), bdd.Variable(2)
	h, err := bdd.Ite(ctx, x0, x1, x2)
	require.NoError(t, err)

	pos, err := h.SatCount(3)
	require.NoError(t, err)
	neg, err := h.Not().SatCount(3)
	require.NoError(t, err)
	require.Equal(t, uint64(8), pos+neg)
}

func TestReorderIsUnimplemented(t *testing.T) {
	_, err := bdd.Reorder(bdd.Variable(0))
	require.ErrorIs(t, err, bdd.ErrNotImplemented)
}
