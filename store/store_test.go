package store_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/adiar-go/adiar/store"
)

func writeAll[T any](t *testing.T, s store.Store[T], values []T) {
	t.Helper()
	w, err := s.Writer()
	require.NoError(t, err)
	for _, v := range values {
		require.NoError(t, w.Append(v))
	}
	require.NoError(t, w.Seal())
}

func readAll[T any](t *testing.T, s store.Store[T], reversed bool) []T {
	t.Helper()
	r, err := s.Reader(reversed)
	require.NoError(t, err)
	defer r.Close()

	var out []T
	for {
		v, ok, err := r.Next()
		require.NoError(t, err)
		if !ok {
			break
		}
		out = append(out, v)
	}
	return out
}

func testStoreRoundTrip(t *testing.T, newStore func() store.Store[int]) {
	values := []int{3, 1, 4, 1, 5, 9, 2, 6}

	s := newStore()
	writeAll(t, s, values)

	require.Equal(t, len(values), s.Len())
	require.True(t, s.Sealed())

	require.Equal(t, values, readAll(t, s, false))

	reversed := make([]int, len(values))
	for i, v := range values {
		reversed[len(values)-1-i] = v
	}
	require.Equal(t, reversed, readAll(t, s, true))
}

func TestMemStoreRoundTrip(t *testing.T) {
	testStoreRoundTrip(t, func() store.Store[int] { return store.NewMemStore[int]() })
}

func TestFileStoreRoundTrip(t *testing.T) {
	testStoreRoundTrip(t, func() store.Store[int] {
		fs, err := store.NewFileStore[int]("")
		require.NoError(t, err)
		t.Cleanup(func() { _ = fs.Close() })
		return fs
	})
}

func TestPeekDoesNotAdvance(t *testing.T) {
	s := store.NewMemStore[string]()
	writeAll(t, s, []string{"a", "b", "c"})

	r, err := s.Reader(false)
	require.NoError(t, err)
	defer r.Close()

	v, ok, err := r.Peek()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "a", v)

	v, ok, err = r.Peek()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "a", v, "Peek must be idempotent")

	v, ok, err = r.Next()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "a", v)

	v, ok, err = r.Next()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "b", v)
}

func TestAppendAfterSealFails(t *testing.T) {
	s := store.NewMemStore[int]()
	w, err := s.Writer()
	require.NoError(t, err)
	require.NoError(t, w.Append(1))
	require.NoError(t, w.Seal())
	require.ErrorIs(t, w.Append(2), store.ErrSealed)
}

func TestReaderBeforeSealFails(t *testing.T) {
	s := store.NewMemStore[int]()
	_, err := s.Reader(false)
	require.ErrorIs(t, err, store.ErrNotSealed)
}

func TestMultiStreamMem(t *testing.T) {
	ms, err := store.NewMultiStream(store.Mem)
	require.NoError(t, err)
	defer ms.Close()

	nodes, err := store.OpenSub[int](ms, "nodes")
	require.NoError(t, err)
	levels, err := store.OpenSub[string](ms, "level_info")
	require.NoError(t, err)

	writeAll(t, nodes, []int{1, 2, 3})
	writeAll(t, levels, []string{"L0", "L1"})

	require.Equal(t, []int{1, 2, 3}, readAll(t, nodes, false))
	require.Equal(t, []string{"L0", "L1"}, readAll(t, levels, false))
}

func TestMultiStreamFile(t *testing.T) {
	ms, err := store.NewMultiStream(store.File)
	require.NoError(t, err)
	defer ms.Close()

	sub, err := store.OpenSub[int](ms, "node_arcs")
	require.NoError(t, err)
	writeAll(t, sub, []int{10, 20, 30})
	require.Equal(t, []int{30, 20, 10}, readAll(t, sub, true))
}

func TestBackingPicksMemBelowBudgetAndFileAbove(t *testing.T) {
	require.Equal(t, store.Mem, store.Backing(10))
	require.Equal(t, store.Mem, store.Backing(store.CutBudget))
	require.Equal(t, store.File, store.Backing(store.CutBudget+1))
}

func TestFileStoreCacheStatsPublishesBound(t *testing.T) {
	fs, err := store.NewFileStore[int]("")
	require.NoError(t, err)
	defer fs.Close()

	writeAll(t, fs, []int{1, 2, 3})
	capacity, length := fs.CacheStats()
	require.Greater(t, capacity, 0)
	require.GreaterOrEqual(t, capacity, length)
}
