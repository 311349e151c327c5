package lpq

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type overflowReq struct {
	level  int
	target int
}

func overflowLevelOf(r overflowReq) int  { return r.level }
func overflowLess(a, b overflowReq) bool { return a.target < b.target }

// withLowSpillThreshold temporarily shrinks overflowSpillThreshold so
// tests can force a spill without pushing tens of thousands of requests.
func withLowSpillThreshold(t *testing.T, n int) {
	t.Helper()
	prev := overflowSpillThreshold
	overflowSpillThreshold = n
	t.Cleanup(func() { overflowSpillThreshold = prev })
}

// fillNearWindow occupies every near-bucket slot with its own distinct
// level, so any further distinct level pushed afterwards has nowhere to
// go but the overflow.
func fillNearWindow(q *LPQ[overflowReq]) {
	for lvl := 0; lvl < WindowSize; lvl++ {
		q.Push(overflowReq{level: lvl, target: 0})
	}
}

func TestOverflowSpillsPastThresholdAndStaysOrdered(t *testing.T) {
	withLowSpillThreshold(t, 3)

	q := New(overflowLevelOf, overflowLess)
	fillNearWindow(q)

	const farLevel = WindowSize + 10
	for target := 10; target >= 1; target-- {
		q.Push(overflowReq{level: farLevel, target: target})
	}
	require.Greater(t, len(q.overflow.runs), 0, "expected at least one spilled run")

	q.SetupNextLevel()
	var farOrder []int
	for {
		for q.CanPull() {
			r, ok := q.Pull()
			require.True(t, ok)
			if r.level == farLevel {
				farOrder = append(farOrder, r.target)
			}
		}
		if q.Empty() {
			break
		}
		q.SetupNextLevel()
	}
	require.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, farOrder)
}

func TestOverflowMergesAcrossMultipleSpilledRuns(t *testing.T) {
	withLowSpillThreshold(t, 2)

	q := New(overflowLevelOf, overflowLess)
	fillNearWindow(q)

	const farLevel = WindowSize + 10
	targets := []int{7, 2, 9, 1, 8, 3, 6, 4, 5}
	for _, target := range targets {
		q.Push(overflowReq{level: farLevel, target: target})
	}
	require.GreaterOrEqual(t, len(q.overflow.runs), 2, "expected multiple spilled runs")

	q.SetupNextLevel()
	var farOrder []int
	for {
		for q.CanPull() {
			r, ok := q.Pull()
			require.True(t, ok)
			if r.level == farLevel {
				farOrder = append(farOrder, r.target)
			}
		}
		if q.Empty() {
			break
		}
		q.SetupNextLevel()
	}
	require.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9}, farOrder)
}

func TestLPQCloseReleasesSpilledRuns(t *testing.T) {
	withLowSpillThreshold(t, 2)

	q := New(overflowLevelOf, overflowLess)
	fillNearWindow(q)
	const farLevel = WindowSize + 10
	for target := 0; target < 6; target++ {
		q.Push(overflowReq{level: farLevel, target: target})
	}
	require.Greater(t, len(q.overflow.runs), 0)
	require.NoError(t, q.Close())
}
