package lpq_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/adiar-go/adiar/lpq"
)

type req struct {
	level  int
	target int
}

func levelOf(r req) int  { return r.level }
func less(a, b req) bool { return a.target < b.target }

func TestPushPullOrderingWithinLevel(t *testing.T) {
	q := lpq.New(levelOf, less)
	q.Push(req{level: 0, target: 5})
	q.Push(req{level: 0, target: 1})
	q.Push(req{level: 0, target: 3})
	q.SetupNextLevel()

	require.Equal(t, 0, q.CurrentLevel())

	var order []int
	for q.CanPull() {
		r, ok := q.Pull()
		require.True(t, ok)
		order = append(order, r.target)
	}
	require.Equal(t, []int{1, 3, 5}, order)
}

func TestLevelTransitionOrdering(t *testing.T) {
	q := lpq.New(levelOf, less)
	q.Push(req{level: 2, target: 1})
	q.Push(req{level: 0, target: 9})
	q.Push(req{level: 1, target: 4})
	q.SetupNextLevel()

	var seenLevels []int
	for {
		for q.CanPull() {
			r, _ := q.Pull()
			seenLevels = append(seenLevels, r.level)
		}
		if q.Empty() {
			break
		}
		q.SetupNextLevel()
	}
	require.Equal(t, []int{0, 1, 2}, seenLevels)
}

func TestPushBelowCurrentLevelPanics(t *testing.T) {
	q := lpq.New(levelOf, less)
	q.Push(req{level: 3, target: 0})
	q.SetupNextLevel()
	require.Equal(t, 3, q.CurrentLevel())

	require.Panics(t, func() {
		q.Push(req{level: 1, target: 0})
	})
}

func TestSetupNextLevelPanicsWhileCurrentLevelNonEmpty(t *testing.T) {
	q := lpq.New(levelOf, less)
	q.Push(req{level: 0, target: 1})
	q.SetupNextLevel()
	require.Panics(t, func() { q.SetupNextLevel() })
}

func TestMaxSizeTracksHighWaterMark(t *testing.T) {
	q := lpq.New(levelOf, less)
	for i := 0; i < 5; i++ {
		q.Push(req{level: 0, target: i})
	}
	require.Equal(t, 5, q.MaxSize())
	q.SetupNextLevel()
	for q.CanPull() {
		q.Pull()
	}
	require.Equal(t, 5, q.MaxSize(), "MaxSize must not shrink as the queue drains")
}

func TestOverflowBeyondWindowSizeStillOrdersCorrectly(t *testing.T) {
	q := lpq.New(levelOf, less)
	// Push more distinct future levels than WindowSize, forcing overflow.
	for lvl := lpq.WindowSize + 5; lvl >= 0; lvl-- {
		q.Push(req{level: lvl, target: 0})
	}
	var levels []int
	q.SetupNextLevel()
	for {
		for q.CanPull() {
			r, _ := q.Pull()
			levels = append(levels, r.level)
		}
		if q.Empty() {
			break
		}
		q.SetupNextLevel()
	}
	for i := 1; i < len(levels); i++ {
		require.Less(t, levels[i-1], levels[i])
	}
	require.Equal(t, lpq.WindowSize+6, len(levels))
}

func TestHookMetaStreamUnionsAcrossCalls(t *testing.T) {
	q := lpq.New(levelOf, less)
	q.HookMetaStream([]int{0, 2, 4})
	q.HookMetaStream([]int{1, 3})

	// All five levels should be push-able without growing past WindowSize
	// buckets (5 <= WindowSize), each landing directly in its pre-activated
	// bucket.
	for lvl := 0; lvl < 5; lvl++ {
		q.Push(req{level: lvl, target: lvl})
	}
	q.SetupNextLevel()
	var levels []int
	for {
		for q.CanPull() {
			r, _ := q.Pull()
			levels = append(levels, r.level)
		}
		if q.Empty() {
			break
		}
		q.SetupNextLevel()
	}
	require.Equal(t, []int{0, 1, 2, 3, 4}, levels)
}
