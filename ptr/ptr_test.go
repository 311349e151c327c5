package ptr_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/adiar-go/adiar/ptr"
)

func TestMakeInternalRoundTrip(t *testing.T) {
	cases := []struct{ level, id int }{
		{0, 0},
		{0, 1},
		{5, 42},
		{ptr.MaxLevel, 0},
		{0, ptr.MaxID},
	}
	for _, c := range cases {
		p := ptr.MakeInternal(c.level, c.id)
		require.True(t, ptr.IsInternal(p))
		require.False(t, ptr.IsSink(p))
		require.False(t, ptr.IsNil(p))
		require.Equal(t, c.level, ptr.Level(p))
		require.Equal(t, c.id, ptr.ID(p))
	}
}

func TestMakeSinkRoundTrip(t *testing.T) {
	for _, v := range []bool{true, false} {
		p := ptr.MakeSink(v)
		require.True(t, ptr.IsSink(p))
		require.False(t, ptr.IsInternal(p))
		require.False(t, ptr.IsNil(p))
		require.Equal(t, v, ptr.Value(p))
	}
}

func TestNilIsDistinguished(t *testing.T) {
	require.True(t, ptr.IsNil(ptr.Nil))
	require.False(t, ptr.IsSink(ptr.Nil))
	require.False(t, ptr.IsInternal(ptr.Nil))
}

func TestTotalOrder_InternalsByLevelThenID(t *testing.T) {
	a := ptr.MakeInternal(0, 5)
	b := ptr.MakeInternal(0, 6)
	c := ptr.MakeInternal(1, 0)

	require.True(t, ptr.Less(a, b))
	require.True(t, ptr.Less(b, c))
	require.True(t, ptr.Less(a, c))
}

func TestTotalOrder_SinksAfterAllInternals(t *testing.T) {
	internal := ptr.MakeInternal(ptr.MaxLevel, ptr.MaxID)
	require.True(t, ptr.Less(internal, ptr.MakeSink(false)))
	require.True(t, ptr.Less(internal, ptr.MakeSink(true)))
}

func TestFlagIsIgnoredByOrderingAndEquality(t *testing.T) {
	p := ptr.MakeInternal(3, 7)
	flagged := ptr.Flag(p)

	require.True(t, ptr.IsFlagged(flagged))
	require.False(t, ptr.IsFlagged(p))
	require.True(t, ptr.Equal(p, flagged))
	require.False(t, ptr.Less(p, flagged))
	require.False(t, ptr.Less(flagged, p))
	require.Equal(t, p, ptr.Unflag(flagged))
}

func TestFirstSecondThird(t *testing.T) {
	a := ptr.MakeInternal(2, 0)
	b := ptr.MakeInternal(0, 9)
	c := ptr.MakeInternal(1, 4)

	require.Equal(t, b, ptr.First(a, b))
	require.Equal(t, c, ptr.Second(a, b, c))
	require.Equal(t, a, ptr.Third(a, b, c))

	// Order of arguments must not matter.
	require.Equal(t, b, ptr.First(c, b))
	require.Equal(t, c, ptr.Second(c, a, b))
	require.Equal(t, a, ptr.Third(b, a, c))
}

func TestMakeInternalPanicsOnOutOfRange(t *testing.T) {
	require.Panics(t, func() { ptr.MakeInternal(-1, 0) })
	require.Panics(t, func() { ptr.MakeInternal(0, -1) })
	require.Panics(t, func() { ptr.MakeInternal(ptr.MaxLevel+1, 0) })
	require.Panics(t, func() { ptr.MakeInternal(0, ptr.MaxID+1) })
}

func TestValueLevelIDPanicOnWrongShape(t *testing.T) {
	sink := ptr.MakeSink(true)
	internal := ptr.MakeInternal(0, 0)

	require.Panics(t, func() { ptr.Level(sink) })
	require.Panics(t, func() { ptr.ID(sink) })
	require.Panics(t, func() { ptr.Value(internal) })
}
